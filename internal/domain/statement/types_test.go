package statement_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/statement-extractor/internal/domain/statement"
	"github.com/FACorreiaa/statement-extractor/pkg/money"
)

func TestOverallStatusFor(t *testing.T) {
	found := statement.FieldResult{Status: statement.StatusFound}
	missing := statement.FieldResult{Status: statement.StatusNotFound}
	ambiguous := statement.FieldResult{Status: statement.StatusAmbiguous}

	t.Run("all found is complete", func(t *testing.T) {
		fields := []statement.FieldResult{found, found, found, found, found}
		assert.Equal(t, statement.StatusComplete, statement.OverallStatusFor(fields))
	})

	t.Run("any not found is partial", func(t *testing.T) {
		fields := []statement.FieldResult{found, missing, found, found, found}
		assert.Equal(t, statement.StatusPartial, statement.OverallStatusFor(fields))
	})

	t.Run("ambiguous counts as not extracted", func(t *testing.T) {
		fields := []statement.FieldResult{found, found, ambiguous, found, found}
		assert.Equal(t, statement.StatusPartial, statement.OverallStatusFor(fields))
	})
}

func TestNotFoundFields(t *testing.T) {
	fields := statement.NotFoundFields("issuer not recognized")
	require.Len(t, fields, 5)
	for i, name := range statement.AllFieldNames() {
		assert.Equal(t, name, fields[i].Field)
		assert.Equal(t, statement.StatusNotFound, fields[i].Status)
		assert.Equal(t, "issuer not recognized", fields[i].Reason)
	}
}

func TestDocumentResultField(t *testing.T) {
	r := statement.DocumentResult{Fields: statement.NotFoundFields("x")}

	f := r.Field(statement.TotalBalance)
	assert.Equal(t, statement.TotalBalance, f.Field)

	empty := statement.DocumentResult{}
	f = empty.Field(statement.StatementDate)
	assert.Equal(t, statement.StatusNotFound, f.Status)
}

func TestFieldValue(t *testing.T) {
	t.Run("date canonical form", func(t *testing.T) {
		v := statement.DateValue(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, "2024-03-15", v.String())
	})

	t.Run("amount canonical form", func(t *testing.T) {
		v := statement.AmountValue(money.New(123456, money.USD))
		assert.Equal(t, "1234.56", v.String())
	})

	t.Run("account canonical form", func(t *testing.T) {
		assert.Equal(t, "1234", statement.AccountValue("1234").String())
	})

	t.Run("nil renders empty", func(t *testing.T) {
		var v *statement.FieldValue
		assert.Equal(t, "", v.String())
	})

	t.Run("equal compares kind and content", func(t *testing.T) {
		d1 := statement.DateValue(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC))
		d2 := statement.DateValue(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC))
		d3 := statement.DateValue(time.Date(2024, time.April, 10, 0, 0, 0, 0, time.UTC))
		assert.True(t, d1.Equal(d2))
		assert.False(t, d1.Equal(d3))

		a1 := statement.AmountValue(money.New(3500, money.USD))
		a2 := statement.AmountValue(money.New(3500, money.USD))
		assert.True(t, a1.Equal(a2))
		assert.False(t, a1.Equal(d1), "different kinds never compare equal")

		var nilValue *statement.FieldValue
		assert.False(t, nilValue.Equal(d1))
		assert.True(t, nilValue.Equal(nil))
	})
}
