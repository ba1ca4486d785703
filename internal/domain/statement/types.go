// Package statement defines the core data model for credit-card statement
// extraction: the raw text handed over by the page-to-text collaborator, the
// five mandated field names, and the per-field / per-document result types.
package statement

import (
	"time"

	"github.com/FACorreiaa/statement-extractor/pkg/money"
)

// RawDocumentText is the ordered line sequence for one document, produced by
// an external text-extraction collaborator. It is treated as immutable once
// constructed; Process never mutates it.
type RawDocumentText struct {
	SourceFile string   `json:"source_file"`
	PageCount  int      `json:"page_count"`
	Lines      []string `json:"lines"`
}

// FieldName identifies one of the five mandated data points.
type FieldName string

const (
	StatementDate     FieldName = "STATEMENT_DATE"
	PaymentDueDate    FieldName = "PAYMENT_DUE_DATE"
	MinimumPayment    FieldName = "MINIMUM_PAYMENT"
	TotalBalance      FieldName = "TOTAL_BALANCE"
	AccountIdentifier FieldName = "ACCOUNT_IDENTIFIER"
)

// AllFieldNames returns the five field names in canonical extraction order.
func AllFieldNames() [5]FieldName {
	return [5]FieldName{StatementDate, PaymentDueDate, MinimumPayment, TotalBalance, AccountIdentifier}
}

// NormalizeKind selects which normalizer turns a raw match into a typed value.
type NormalizeKind string

const (
	KindDate          NormalizeKind = "DATE"
	KindCurrency      NormalizeKind = "CURRENCY"
	KindMaskedAccount NormalizeKind = "MASKED_ACCOUNT"
)

// Valid reports whether k is one of the three supported kinds.
func (k NormalizeKind) Valid() bool {
	switch k {
	case KindDate, KindCurrency, KindMaskedAccount:
		return true
	}
	return false
}

// FieldStatus is the outcome of extracting a single field.
type FieldStatus string

const (
	StatusFound     FieldStatus = "FOUND"
	StatusNotFound  FieldStatus = "NOT_FOUND"
	StatusAmbiguous FieldStatus = "AMBIGUOUS"
)

// OverallStatus is the aggregate outcome for one document.
type OverallStatus string

const (
	StatusComplete           OverallStatus = "COMPLETE"
	StatusPartial            OverallStatus = "PARTIAL"
	StatusUnrecognizedIssuer OverallStatus = "UNRECOGNIZED_ISSUER"
)

// FieldValue is a normalized, typed field value. Exactly one of Date, Amount
// or Account is populated, selected by Kind.
type FieldValue struct {
	Kind    NormalizeKind `json:"kind"`
	Date    time.Time     `json:"date,omitzero"`
	Amount  *money.Money  `json:"amount,omitempty"`
	Account string        `json:"account,omitempty"`
}

// DateValue wraps a calendar date as a FieldValue.
func DateValue(t time.Time) *FieldValue {
	return &FieldValue{Kind: KindDate, Date: t}
}

// AmountValue wraps a monetary amount as a FieldValue.
func AmountValue(m *money.Money) *FieldValue {
	return &FieldValue{Kind: KindCurrency, Amount: m}
}

// AccountValue wraps the visible digits of a masked account as a FieldValue.
func AccountValue(digits string) *FieldValue {
	return &FieldValue{Kind: KindMaskedAccount, Account: digits}
}

// String renders the canonical form: ISO-8601 for dates, a plain decimal
// string for amounts, the bare digit group for accounts. Re-parsing the
// canonical form yields an equal value.
func (v *FieldValue) String() string {
	if v == nil {
		return ""
	}
	switch v.Kind {
	case KindDate:
		return v.Date.Format("2006-01-02")
	case KindCurrency:
		return v.Amount.String()
	case KindMaskedAccount:
		return v.Account
	}
	return ""
}

// Equal compares two field values by kind and canonical content.
func (v *FieldValue) Equal(other *FieldValue) bool {
	if v == nil || other == nil {
		return v == other
	}
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindDate:
		return v.Date.Equal(other.Date)
	case KindCurrency:
		return v.Amount.Equals(other.Amount)
	case KindMaskedAccount:
		return v.Account == other.Account
	}
	return false
}

// FieldResult is the outcome for one field. Value is set only when Status is
// FOUND. RawMatch keeps the original substring for audit, including the first
// match of an AMBIGUOUS field. Reason explains NOT_FOUND and AMBIGUOUS.
type FieldResult struct {
	Field    FieldName   `json:"field"`
	Status   FieldStatus `json:"status"`
	Value    *FieldValue `json:"value,omitempty"`
	RawMatch string      `json:"raw_match,omitempty"`
	Reason   string      `json:"reason,omitempty"`
}

// DocumentResult aggregates the five field results for one document.
// Fields always holds exactly five entries in canonical order, one per
// FieldName, even when the issuer was not recognized.
type DocumentResult struct {
	SourceFile  string        `json:"source_file"`
	IssuerID    string        `json:"issuer_id,omitempty"`
	IssuerName  string        `json:"issuer_name,omitempty"`
	CardNetwork string        `json:"card_network,omitempty"`
	Status      OverallStatus `json:"status"`
	Fields      []FieldResult `json:"fields"`
}

// Field returns the result for the named field, or a zero FieldResult if the
// invariant of five entries was somehow violated by the caller.
func (r *DocumentResult) Field(name FieldName) FieldResult {
	for _, f := range r.Fields {
		if f.Field == name {
			return f
		}
	}
	return FieldResult{Field: name, Status: StatusNotFound}
}

// OverallStatusFor derives the aggregate status from five field results:
// COMPLETE iff all are FOUND, otherwise PARTIAL. UNRECOGNIZED_ISSUER is
// decided by the orchestrator before extraction runs.
func OverallStatusFor(fields []FieldResult) OverallStatus {
	for _, f := range fields {
		if f.Status != StatusFound {
			return StatusPartial
		}
	}
	return StatusComplete
}

// NotFoundFields returns five NOT_FOUND results in canonical order, used for
// unrecognized documents so the completeness invariant still holds.
func NotFoundFields(reason string) []FieldResult {
	names := AllFieldNames()
	fields := make([]FieldResult, 0, len(names))
	for _, name := range names {
		fields = append(fields, FieldResult{Field: name, Status: StatusNotFound, Reason: reason})
	}
	return fields
}
