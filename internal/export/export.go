// Package export flattens DocumentResults into issuer-agnostic rows and
// writes them as CSV, JSON or XLSX. Column names and value encodings are
// stable across issuers: downstream consumers need no issuer-specific
// knowledge to read them.
package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/FACorreiaa/statement-extractor/internal/domain/statement"
)

// Row is one document flattened for tabular output. Each field carries its
// canonical value and its extraction status side by side, so PARTIAL
// documents stay reviewable in a spreadsheet.
type Row struct {
	SourceFile          string `csv:"source_file"`
	Issuer              string `csv:"issuer"`
	CardNetwork         string `csv:"card_network"`
	Status              string `csv:"status"`
	StatementDate       string `csv:"statement_date"`
	StatementDateStatus string `csv:"statement_date_status"`
	PaymentDueDate      string `csv:"payment_due_date"`
	PaymentDueStatus    string `csv:"payment_due_date_status"`
	MinimumPayment      string `csv:"minimum_payment"`
	MinimumPayStatus    string `csv:"minimum_payment_status"`
	TotalBalance        string `csv:"total_balance"`
	TotalBalanceStatus  string `csv:"total_balance_status"`
	AccountLast4        string `csv:"account_last4"`
	AccountStatus       string `csv:"account_last4_status"`
}

// headers must stay in sync with Row's csv tags; the XLSX writer shares them.
var headers = []string{
	"source_file", "issuer", "card_network", "status",
	"statement_date", "statement_date_status",
	"payment_due_date", "payment_due_date_status",
	"minimum_payment", "minimum_payment_status",
	"total_balance", "total_balance_status",
	"account_last4", "account_last4_status",
}

// FlattenResult converts one DocumentResult into a Row.
func FlattenResult(r statement.DocumentResult) Row {
	value := func(name statement.FieldName) (string, string) {
		f := r.Field(name)
		return f.Value.String(), string(f.Status)
	}

	row := Row{
		SourceFile:  r.SourceFile,
		Issuer:      r.IssuerID,
		CardNetwork: r.CardNetwork,
		Status:      string(r.Status),
	}
	row.StatementDate, row.StatementDateStatus = value(statement.StatementDate)
	row.PaymentDueDate, row.PaymentDueStatus = value(statement.PaymentDueDate)
	row.MinimumPayment, row.MinimumPayStatus = value(statement.MinimumPayment)
	row.TotalBalance, row.TotalBalanceStatus = value(statement.TotalBalance)
	row.AccountLast4, row.AccountStatus = value(statement.AccountIdentifier)
	return row
}

// WriteCSV writes one header row plus one row per result.
func WriteCSV(w io.Writer, results []statement.DocumentResult) error {
	rows := make([]Row, 0, len(results))
	for _, r := range results {
		rows = append(rows, FlattenResult(r))
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// WriteJSON writes the full results, raw matches and reasons included, for
// audit pipelines that want more than the flattened table.
func WriteJSON(w io.Writer, results []statement.DocumentResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}
