package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/statement-extractor/internal/domain/statement"
	"github.com/FACorreiaa/statement-extractor/pkg/money"
)

func sampleResult() statement.DocumentResult {
	return statement.DocumentResult{
		SourceFile:  "chase-2024-03.txt",
		IssuerID:    "chase",
		IssuerName:  "Chase",
		CardNetwork: "VISA",
		Status:      statement.StatusPartial,
		Fields: []statement.FieldResult{
			{
				Field:    statement.StatementDate,
				Status:   statement.StatusFound,
				Value:    statement.DateValue(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)),
				RawMatch: "Statement Date: 03/15/2024",
			},
			{Field: statement.PaymentDueDate, Status: statement.StatusNotFound, Reason: "no candidate pattern matched"},
			{
				Field:  statement.MinimumPayment,
				Status: statement.StatusFound,
				Value:  statement.AmountValue(money.New(3500, money.USD)),
			},
			{
				Field:    statement.TotalBalance,
				Status:   statement.StatusAmbiguous,
				RawMatch: "New Balance: $100.00",
				Reason:   "2 distinct matches and no disambiguation anchor applied",
			},
			{
				Field:  statement.AccountIdentifier,
				Status: statement.StatusFound,
				Value:  statement.AccountValue("1234"),
			},
		},
	}
}

func TestFlattenResult(t *testing.T) {
	row := FlattenResult(sampleResult())

	assert.Equal(t, "chase-2024-03.txt", row.SourceFile)
	assert.Equal(t, "chase", row.Issuer)
	assert.Equal(t, "VISA", row.CardNetwork)
	assert.Equal(t, "PARTIAL", row.Status)

	assert.Equal(t, "2024-03-15", row.StatementDate)
	assert.Equal(t, "FOUND", row.StatementDateStatus)

	assert.Empty(t, row.PaymentDueDate, "fields without a value render empty")
	assert.Equal(t, "NOT_FOUND", row.PaymentDueStatus)

	assert.Equal(t, "35", row.MinimumPayment)
	assert.Equal(t, "FOUND", row.MinimumPayStatus)

	assert.Empty(t, row.TotalBalance)
	assert.Equal(t, "AMBIGUOUS", row.TotalBalanceStatus)

	assert.Equal(t, "1234", row.AccountLast4)
	assert.Equal(t, "FOUND", row.AccountStatus)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []statement.DocumentResult{sampleResult()}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(headers, ","), strings.TrimSpace(lines[0]))
	assert.Contains(t, lines[1], "chase-2024-03.txt")
	assert.Contains(t, lines[1], "2024-03-15")
	assert.Contains(t, lines[1], "AMBIGUOUS")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, []statement.DocumentResult{sampleResult()}))

	var decoded []statement.DocumentResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "chase", decoded[0].IssuerID)
	require.Len(t, decoded[0].Fields, 5)
	assert.Equal(t, "New Balance: $100.00", decoded[0].Fields[3].RawMatch, "raw matches survive the round trip")
}
