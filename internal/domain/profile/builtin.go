package profile

import "github.com/FACorreiaa/statement-extractor/internal/domain/statement"

// Shared pattern fragments for the built-in profiles. reDate captures one
// date in the shapes US issuers print; reDateNC is the same shape without a
// capture group, for period patterns where only the closing date matters.
const (
	reDate   = `((?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Sept|Oct|Nov|Dec)[a-z]*\.?\s+\d{1,2},?\s+\d{2,4}|\d{1,2}/\d{1,2}/\d{2,4}|\d{4}-\d{2}-\d{2})`
	reDateNC = `(?:(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Sept|Oct|Nov|Dec)[a-z]*\.?\s+\d{1,2},?\s+\d{2,4}|\d{1,2}/\d{1,2}/\d{2,4}|\d{4}-\d{2}-\d{2})`
	reAmount = `(\(?-?\$?\s?[\d,]+\.\d{2}\)?)`
	reMasked = `((?:[*xX•#]{2,}[\s\-]*)+\d{2,4})`
)

// Builtin returns the built-in issuer profiles, most-specific first. The
// order matters: the classifier breaks score ties by registration order.
func Builtin() []IssuerProfile {
	return []IssuerProfile{
		{
			ID:          "chase",
			DisplayName: "Chase",
			Signals:     []string{"chase.com/cardhelp", "JPMorgan Chase Bank", "Chase Card Services"},
			Rules: map[statement.FieldName]FieldRule{
				statement.StatementDate: {
					Kind: statement.KindDate,
					Patterns: []string{
						`Opening/Closing Date\s+` + reDateNC + `\s*[-–]\s*` + reDate,
						`Statement Date[:\s]+` + reDate,
					},
					Anchor: "Statement Date",
				},
				statement.PaymentDueDate: {
					Kind:     statement.KindDate,
					Patterns: []string{`Payment Due Date[:\s]+` + reDate},
					Anchor:   "Payment Due Date",
				},
				statement.MinimumPayment: {
					Kind:     statement.KindCurrency,
					Patterns: []string{`Minimum Payment(?:\s+Due)?[:\s]+` + reAmount},
					Anchor:   "Minimum Payment",
					Window:   2,
				},
				statement.TotalBalance: {
					Kind:     statement.KindCurrency,
					Patterns: []string{`New Balance[:\s]+` + reAmount},
					Anchor:   "New Balance",
				},
				statement.AccountIdentifier: {
					Kind: statement.KindMaskedAccount,
					Patterns: []string{
						`Account Number[:\s]+` + reMasked,
						reMasked,
					},
				},
			},
		},
		{
			ID:          "amex",
			DisplayName: "American Express",
			Signals:     []string{"American Express", "americanexpress.com", "Membership Rewards"},
			DateLayouts: []string{"01/02/06", "01/02/2006", "January 2, 2006"},
			Rules: map[statement.FieldName]FieldRule{
				statement.StatementDate: {
					Kind:     statement.KindDate,
					Patterns: []string{`Closing Date[:\s]+` + reDate},
				},
				statement.PaymentDueDate: {
					Kind:     statement.KindDate,
					Patterns: []string{`Payment Due Date[:\s]+` + reDate},
					Anchor:   "Payment Due Date",
				},
				statement.MinimumPayment: {
					Kind:     statement.KindCurrency,
					Patterns: []string{`Minimum Payment Due[:\s]+` + reAmount},
					Window:   2,
				},
				statement.TotalBalance: {
					Kind:     statement.KindCurrency,
					Patterns: []string{`New Balance[:\s]+` + reAmount},
				},
				statement.AccountIdentifier: {
					Kind: statement.KindMaskedAccount,
					Patterns: []string{
						`Account Ending(?:\s+in)?\s*(?:\d-)?(\d{4})`,
						reMasked,
					},
				},
			},
		},
		{
			ID:          "citi",
			DisplayName: "Citi",
			Signals:     []string{"Citibank", "citicards.com", "Citi ThankYou"},
			Rules: map[statement.FieldName]FieldRule{
				statement.StatementDate: {
					Kind: statement.KindDate,
					Patterns: []string{
						`Billing Period[:\s]+` + reDateNC + `\s*(?:to|[-–])\s*` + reDate,
						`Statement Date[:\s]+` + reDate,
					},
				},
				statement.PaymentDueDate: {
					Kind: statement.KindDate,
					Patterns: []string{
						`Payment Due Date[:\s]+` + reDate,
						`Due Date[:\s]+` + reDate,
					},
					Anchor: "Payment Due",
				},
				statement.MinimumPayment: {
					Kind:     statement.KindCurrency,
					Patterns: []string{`Minimum Payment Due[:\s]+` + reAmount},
					Window:   2,
				},
				statement.TotalBalance: {
					Kind: statement.KindCurrency,
					Patterns: []string{
						`New Balance[:\s]+` + reAmount,
						`Statement Balance[:\s]+` + reAmount,
					},
					Anchor: "New Balance",
				},
				statement.AccountIdentifier: {
					Kind: statement.KindMaskedAccount,
					Patterns: []string{
						`Account number ending in[:\s]*(\d{2,4})`,
						reMasked,
					},
				},
			},
		},
		{
			ID:          "capitalone",
			DisplayName: "Capital One",
			Signals:     []string{"Capital One", "capitalone.com", "days in Billing Cycle"},
			DateLayouts: []string{"Jan. 2, 2006", "Jan 2, 2006", "01/02/2006", "01/02/06"},
			Rules: map[statement.FieldName]FieldRule{
				statement.StatementDate: {
					Kind: statement.KindDate,
					Patterns: []string{
						reDateNC + `\s*[-–]\s*` + reDate + `\s*\|\s*\d+ days in Billing Cycle`,
						`Statement Date[:\s]+` + reDate,
					},
					Window: 2,
				},
				statement.PaymentDueDate: {
					Kind:     statement.KindDate,
					Patterns: []string{`Payment Due Date[:\s]+` + reDate},
					Anchor:   "Payment Due Date",
				},
				statement.MinimumPayment: {
					Kind:     statement.KindCurrency,
					Patterns: []string{`Minimum Payment Due[:\s]+` + reAmount},
					Window:   2,
				},
				statement.TotalBalance: {
					Kind:     statement.KindCurrency,
					Patterns: []string{`New Balance[:\s]+` + reAmount},
				},
				statement.AccountIdentifier: {
					Kind: statement.KindMaskedAccount,
					Patterns: []string{
						`Account Ending in[:\s]*(\d{4})`,
						reMasked,
					},
				},
			},
		},
		{
			ID:          "discover",
			DisplayName: "Discover",
			Signals:     []string{"Discover", "discover.com", "Cashback Bonus"},
			Rules: map[statement.FieldName]FieldRule{
				statement.StatementDate: {
					Kind: statement.KindDate,
					Patterns: []string{
						`Open to Close Date[:\s]+` + reDateNC + `\s*[-–]\s*` + reDate,
						`Close Date[:\s]+` + reDate,
					},
				},
				statement.PaymentDueDate: {
					Kind:     statement.KindDate,
					Patterns: []string{`Payment Due Date[:\s]+` + reDate},
					Anchor:   "Payment Due Date",
				},
				statement.MinimumPayment: {
					Kind:     statement.KindCurrency,
					Patterns: []string{`Minimum Payment Due[:\s]+` + reAmount},
					Window:   2,
				},
				statement.TotalBalance: {
					Kind:     statement.KindCurrency,
					Patterns: []string{`New Balance[:\s]+` + reAmount},
					Anchor:   "New Balance",
				},
				statement.AccountIdentifier: {
					Kind: statement.KindMaskedAccount,
					Patterns: []string{
						`Account number ending in\s*(\d{4})`,
						reMasked,
					},
				},
			},
		},
	}
}
