package service

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/statement-extractor/internal/domain/profile"
	"github.com/FACorreiaa/statement-extractor/internal/domain/statement"
)

func newProcessor(t *testing.T) *Processor {
	t.Helper()
	reg, err := profile.NewRegistry(profile.Builtin())
	require.NoError(t, err)
	return NewProcessor(reg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func chaseDoc() statement.RawDocumentText {
	return statement.RawDocumentText{
		SourceFile: "chase-2024-03.txt",
		PageCount:  2,
		Lines: []string{
			"JPMorgan Chase Bank, N.A.",
			"VISA Signature account summary",
			"Manage your account at chase.com/cardhelp",
			"Opening/Closing Date 02/16/2024 - 03/15/2024",
			"Payment Due Date: 04/10/2024",
			"New Balance: $4,522.10",
			"Minimum Payment Due: $35.00",
			"Account Number: **** **** **** 1234",
		},
	}
}

func TestProcess(t *testing.T) {
	t.Run("recognized issuer with every field", func(t *testing.T) {
		p := newProcessor(t)
		result := p.Process(chaseDoc())

		assert.Equal(t, "chase-2024-03.txt", result.SourceFile)
		assert.Equal(t, "chase", result.IssuerID)
		assert.Equal(t, "Chase", result.IssuerName)
		assert.Equal(t, "VISA", result.CardNetwork)
		assert.Equal(t, statement.StatusComplete, result.Status)

		assert.Equal(t, "2024-03-15", result.Field(statement.StatementDate).Value.String())
		assert.Equal(t, "2024-04-10", result.Field(statement.PaymentDueDate).Value.String())
		assert.Equal(t, int64(3500), result.Field(statement.MinimumPayment).Value.Amount.Amount())
		assert.Equal(t, int64(452210), result.Field(statement.TotalBalance).Value.Amount.Amount())
		assert.Equal(t, "1234", result.Field(statement.AccountIdentifier).Value.Account)
	})

	t.Run("missing field makes the document partial", func(t *testing.T) {
		p := newProcessor(t)
		doc := chaseDoc()
		doc.Lines = append(doc.Lines[:6], doc.Lines[7:]...) // drop the Minimum Payment line

		result := p.Process(doc)

		assert.Equal(t, statement.StatusPartial, result.Status)
		assert.Equal(t, statement.StatusNotFound, result.Field(statement.MinimumPayment).Status)
		assert.Equal(t, statement.StatusFound, result.Field(statement.TotalBalance).Status)
	})

	t.Run("unrecognized issuer", func(t *testing.T) {
		p := newProcessor(t)
		result := p.Process(statement.RawDocumentText{
			SourceFile: "mystery.txt",
			PageCount:  1,
			Lines: []string{
				"World Mastercard member statement",
				"Balance summary enclosed",
			},
		})

		assert.Equal(t, statement.StatusUnrecognizedIssuer, result.Status)
		assert.Empty(t, result.IssuerID)
		assert.Equal(t, "MASTERCARD", result.CardNetwork, "network detection is independent of issuer recognition")
		require.Len(t, result.Fields, 5)
		for _, f := range result.Fields {
			assert.Equal(t, statement.StatusNotFound, f.Status)
			assert.Equal(t, "issuer not recognized", f.Reason)
		}
	})

	t.Run("always five fields in canonical order", func(t *testing.T) {
		p := newProcessor(t)
		for _, doc := range []statement.RawDocumentText{
			chaseDoc(),
			{SourceFile: "empty.txt", PageCount: 1, Lines: []string{""}},
		} {
			result := p.Process(doc)
			require.Len(t, result.Fields, 5, doc.SourceFile)
			for i, name := range statement.AllFieldNames() {
				assert.Equal(t, name, result.Fields[i].Field, doc.SourceFile)
			}
		}
	})

	t.Run("deterministic for identical input", func(t *testing.T) {
		p := newProcessor(t)
		first := p.Process(chaseDoc())
		second := p.Process(chaseDoc())
		require.Equal(t, first, second)
	})
}
