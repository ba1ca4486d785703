package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/statement-extractor/internal/domain/profile"
	"github.com/FACorreiaa/statement-extractor/internal/domain/statement"
)

// compiled builds a one-issuer registry around the given rule overrides so a
// single behavior can be exercised in isolation.
func compiled(t *testing.T, overrides map[statement.FieldName]profile.FieldRule) *profile.CompiledProfile {
	t.Helper()

	rules := map[statement.FieldName]profile.FieldRule{
		statement.StatementDate:     {Kind: statement.KindDate, Patterns: []string{`Statement Date[:\s]+(\d{2}/\d{2}/\d{4})`}},
		statement.PaymentDueDate:    {Kind: statement.KindDate, Patterns: []string{`Due Date[:\s]+(\d{2}/\d{2}/\d{4})`}},
		statement.MinimumPayment:    {Kind: statement.KindCurrency, Patterns: []string{`Minimum Payment[:\s]+\$?([\d,]+\.\d{2})`}},
		statement.TotalBalance:      {Kind: statement.KindCurrency, Patterns: []string{`New Balance[:\s]+\$?([\d,]+\.\d{2})`}},
		statement.AccountIdentifier: {Absent: true},
	}
	for name, rule := range overrides {
		rules[name] = rule
	}

	reg, err := profile.NewRegistry([]profile.IssuerProfile{{
		ID:          "testbank",
		DisplayName: "Test Bank",
		Signals:     []string{"TEST BANK"},
		Rules:       rules,
	}})
	require.NoError(t, err)
	p, _ := reg.ByID("testbank")
	return p
}

func chase(t *testing.T) *profile.CompiledProfile {
	t.Helper()
	reg, err := profile.NewRegistry(profile.Builtin())
	require.NoError(t, err)
	p, ok := reg.ByID("chase")
	require.True(t, ok)
	return p
}

func doc(lines ...string) statement.RawDocumentText {
	return statement.RawDocumentText{SourceFile: "test.txt", PageCount: 1, Lines: lines}
}

func fieldByName(t *testing.T, results []statement.FieldResult, name statement.FieldName) statement.FieldResult {
	t.Helper()
	for _, f := range results {
		if f.Field == name {
			return f
		}
	}
	t.Fatalf("field %s missing from results", name)
	return statement.FieldResult{}
}

func TestExtract(t *testing.T) {
	t.Run("returns five results in canonical order", func(t *testing.T) {
		results := Extract(doc("nothing useful here"), compiled(t, nil))
		require.Len(t, results, 5)
		for i, name := range statement.AllFieldNames() {
			assert.Equal(t, name, results[i].Field)
		}
	})

	t.Run("labeled date extracts to a calendar date", func(t *testing.T) {
		results := Extract(doc("Statement Date: 03/15/2024"), chase(t))

		f := fieldByName(t, results, statement.StatementDate)
		require.Equal(t, statement.StatusFound, f.Status)
		require.NotNil(t, f.Value)
		assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), f.Value.Date)
		assert.Equal(t, "2024-03-15", f.Value.String())
		assert.Contains(t, f.RawMatch, "03/15/2024")
	})

	t.Run("statement period yields the closing date", func(t *testing.T) {
		results := Extract(doc("Opening/Closing Date 02/16/2024 - 03/15/2024"), chase(t))

		f := fieldByName(t, results, statement.StatementDate)
		require.Equal(t, statement.StatusFound, f.Status)
		assert.Equal(t, "2024-03-15", f.Value.String())
	})

	t.Run("value split across lines is found within the window", func(t *testing.T) {
		results := Extract(doc(
			"Payment Information",
			"Minimum Payment Due",
			"$35.00",
		), chase(t))

		f := fieldByName(t, results, statement.MinimumPayment)
		require.Equal(t, statement.StatusFound, f.Status)
		require.NotNil(t, f.Value)
		assert.Equal(t, int64(3500), f.Value.Amount.Amount())
	})

	t.Run("masked account keeps the visible digits", func(t *testing.T) {
		results := Extract(doc("Account Number: **** **** **** 1234"), chase(t))

		f := fieldByName(t, results, statement.AccountIdentifier)
		require.Equal(t, statement.StatusFound, f.Status)
		assert.Equal(t, "1234", f.Value.Account)
	})

	t.Run("two distinct matches without an anchor are ambiguous", func(t *testing.T) {
		p := compiled(t, nil) // PAYMENT_DUE_DATE rule carries no anchor
		results := Extract(doc(
			"Due Date: 04/10/2024",
			"Due Date: 05/10/2024",
		), p)

		f := fieldByName(t, results, statement.PaymentDueDate)
		assert.Equal(t, statement.StatusAmbiguous, f.Status)
		assert.Nil(t, f.Value)
		assert.Contains(t, f.RawMatch, "04/10/2024", "first match in document order is kept for audit")
		assert.NotEmpty(t, f.Reason)
	})

	t.Run("anchor picks the labeled occurrence", func(t *testing.T) {
		p := compiled(t, map[statement.FieldName]profile.FieldRule{
			statement.PaymentDueDate: {
				Kind:     statement.KindDate,
				Patterns: []string{`(\d{2}/\d{2}/\d{4})`},
				Anchor:   "Payment Due Date",
			},
		})
		results := Extract(doc(
			"Statement Date",
			"03/15/2024",
			"Payment Due Date",
			"04/10/2024",
		), p)

		f := fieldByName(t, results, statement.PaymentDueDate)
		require.Equal(t, statement.StatusFound, f.Status)
		assert.Equal(t, "2024-04-10", f.Value.String())
	})

	t.Run("nearest preceding anchor wins", func(t *testing.T) {
		p := compiled(t, map[statement.FieldName]profile.FieldRule{
			statement.PaymentDueDate: {
				Kind:     statement.KindDate,
				Patterns: []string{`(\d{2}/\d{2}/\d{4})`},
				Anchor:   "Due Date",
			},
		})
		results := Extract(doc(
			"Due Date",
			"summary section",
			"03/15/2024",
			"details",
			"Due Date",
			"04/10/2024",
		), p)

		f := fieldByName(t, results, statement.PaymentDueDate)
		require.Equal(t, statement.StatusFound, f.Status)
		assert.Equal(t, "2024-04-10", f.Value.String())
	})

	t.Run("anchor out of reach leaves the field ambiguous", func(t *testing.T) {
		p := compiled(t, map[statement.FieldName]profile.FieldRule{
			statement.PaymentDueDate: {
				Kind:     statement.KindDate,
				Patterns: []string{`(\d{2}/\d{2}/\d{4})`},
				Anchor:   "Due Date",
			},
		})
		results := Extract(doc(
			"Due Date",
			"line",
			"line",
			"line",
			"03/15/2024",
			"04/10/2024",
		), p)

		f := fieldByName(t, results, statement.PaymentDueDate)
		assert.Equal(t, statement.StatusAmbiguous, f.Status)
	})

	t.Run("identical repeated value is not ambiguous", func(t *testing.T) {
		results := Extract(doc(
			"New Balance: $250.00",
			"carried forward",
			"New Balance: $250.00",
		), compiled(t, nil))

		f := fieldByName(t, results, statement.TotalBalance)
		require.Equal(t, statement.StatusFound, f.Status)
		assert.Equal(t, int64(25000), f.Value.Amount.Amount())
	})

	t.Run("first matching pattern settles the field", func(t *testing.T) {
		p := compiled(t, map[statement.FieldName]profile.FieldRule{
			statement.TotalBalance: {
				Kind: statement.KindCurrency,
				Patterns: []string{
					`New Balance[:\s]+\$?([\d,]+\.\d{2})`,
					`Statement Balance[:\s]+\$?([\d,]+\.\d{2})`,
				},
			},
		})
		results := Extract(doc(
			"Statement Balance: $999.99",
			"New Balance: $100.00",
		), p)

		f := fieldByName(t, results, statement.TotalBalance)
		require.Equal(t, statement.StatusFound, f.Status)
		assert.Equal(t, int64(10000), f.Value.Amount.Amount())
	})

	t.Run("unparsable value downgrades to not found", func(t *testing.T) {
		results := Extract(doc("Statement Date: 02/31/2024"), compiled(t, nil))

		f := fieldByName(t, results, statement.StatementDate)
		assert.Equal(t, statement.StatusNotFound, f.Status)
		assert.Nil(t, f.Value)
		assert.Contains(t, f.RawMatch, "02/31/2024", "raw match stays for audit")
		assert.NotEmpty(t, f.Reason)
	})

	t.Run("absent rule reports not found with a reason", func(t *testing.T) {
		results := Extract(doc("anything"), compiled(t, nil))

		f := fieldByName(t, results, statement.AccountIdentifier)
		assert.Equal(t, statement.StatusNotFound, f.Status)
		assert.Equal(t, "issuer does not print this field", f.Reason)
	})

	t.Run("no pattern match reports not found", func(t *testing.T) {
		results := Extract(doc("a page with no field labels at all"), compiled(t, nil))

		f := fieldByName(t, results, statement.TotalBalance)
		assert.Equal(t, statement.StatusNotFound, f.Status)
		assert.Equal(t, "no candidate pattern matched", f.Reason)
	})
}
