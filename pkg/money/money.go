// Package money provides currency-safe fixed-point amounts using integer
// minor units and the Fowler Money pattern. It handles the string shapes that
// appear on card statements: currency symbols, thousands separators in US and
// European placement, and accounting-style parenthesised negatives.
package money

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Common ISO-4217 currency codes.
const (
	USD = "USD"
	EUR = "EUR"
	GBP = "GBP"
	CAD = "CAD"
	BRL = "BRL"
)

var (
	ErrEmptyAmount       = fmt.Errorf("empty amount")
	ErrMultipleDecimals  = fmt.Errorf("amount has multiple decimal points")
	ErrNonNumericResidue = fmt.Errorf("amount has non-numeric residue")
)

// plainAmount is what must remain after symbols and separators are stripped:
// an optional sign, digits, and at most one decimal point.
var plainAmount = regexp.MustCompile(`^-?\d+(\.\d{1,2})?$`)

var currencySymbols = []string{"US$", "R$", "$", "€", "£", "¥", "₹"}

// Money represents a monetary value with currency. It wraps go-money for safe
// arithmetic and shopspring/decimal for precise conversions.
type Money struct {
	m *money.Money
}

// New creates a Money value from minor units (cents) and a currency code.
func New(amountCents int64, currencyCode string) *Money {
	return &Money{m: money.New(amountCents, currencyCode)}
}

// NewFromDecimal creates Money from a decimal value, rounding to the
// currency's minor unit.
func NewFromDecimal(amount decimal.Decimal, currencyCode string) *Money {
	currency := money.GetCurrency(currencyCode)
	if currency == nil {
		currency = money.GetCurrency(USD)
	}
	multiplier := decimal.New(1, int32(currency.Fraction))
	cents := amount.Mul(multiplier).Round(0).IntPart()
	return New(cents, currencyCode)
}

// Zero returns a zero value in the given currency.
func Zero(currencyCode string) *Money {
	return New(0, currencyCode)
}

// NewFromString parses a statement amount string such as "$1,234.56",
// "1.234,56" (European), "-42.00" or "(42.00)". It is strict: after symbol
// and separator stripping the residue must be a plain signed decimal with at
// most two fraction digits, otherwise an error describes what was wrong.
func NewFromString(amount string, currencyCode string, europeanFormat bool) (*Money, error) {
	s := strings.TrimSpace(amount)
	if s == "" {
		return nil, ErrEmptyAmount
	}

	for _, sym := range currencySymbols {
		s = strings.ReplaceAll(s, sym, "")
	}
	s = strings.ReplaceAll(s, " ", "")

	// Accounting negatives: (42.00) means -42.00.
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	}
	if strings.HasPrefix(s, "-") {
		negative = true
		s = strings.TrimPrefix(s, "-")
	}

	if europeanFormat {
		// European: 1.234,56 -> 1234.56
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	} else {
		// US: 1,234.56 -> 1234.56
		s = strings.ReplaceAll(s, ",", "")
	}

	if s == "" {
		return nil, ErrEmptyAmount
	}
	if strings.Count(s, ".") > 1 {
		return nil, ErrMultipleDecimals
	}
	if !plainAmount.MatchString(s) {
		return nil, fmt.Errorf("%w: %q", ErrNonNumericResidue, amount)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}
	if negative {
		d = d.Neg()
	}
	return NewFromDecimal(d, currencyCode), nil
}

// Amount returns the value in minor units (cents).
func (m *Money) Amount() int64 {
	if m == nil || m.m == nil {
		return 0
	}
	return m.m.Amount()
}

// Currency returns the ISO-4217 currency code.
func (m *Money) Currency() string {
	if m == nil || m.m == nil {
		return ""
	}
	return m.m.Currency().Code
}

// IsZero returns true if the amount is zero.
func (m *Money) IsZero() bool {
	return m == nil || m.m == nil || m.m.IsZero()
}

// IsNegative returns true if the amount is below zero.
func (m *Money) IsNegative() bool {
	return m != nil && m.m != nil && m.m.IsNegative()
}

// Equals compares amount and currency; nil behaves like zero.
func (m *Money) Equals(other *Money) bool {
	if m == nil || m.m == nil {
		return other == nil || other.m == nil || other.IsZero()
	}
	if other == nil || other.m == nil {
		return m.IsZero()
	}
	eq, _ := m.m.Equals(other.m)
	return eq
}

// ToDecimal converts to a decimal value in major units.
func (m *Money) ToDecimal() decimal.Decimal {
	if m == nil || m.m == nil {
		return decimal.Zero
	}
	d := decimal.NewFromInt(m.m.Amount())
	divisor := decimal.New(1, int32(m.m.Currency().Fraction))
	return d.Div(divisor)
}

// String returns the canonical decimal string (e.g. "1234.56"). Parsing the
// canonical string back with NewFromString yields an equal value.
func (m *Money) String() string {
	if m == nil || m.m == nil {
		return "0.00"
	}
	return m.ToDecimal().String()
}

// Display returns a locale-formatted string with symbol (e.g. "$1,234.56").
func (m *Money) Display() string {
	if m == nil || m.m == nil {
		return "$0.00"
	}
	return m.m.Display()
}

// MarshalJSON emits amount in minor units plus currency and display forms.
func (m *Money) MarshalJSON() ([]byte, error) {
	if m == nil || m.m == nil {
		return json.Marshal(nil)
	}
	return json.Marshal(map[string]any{
		"amount":   m.Amount(),
		"currency": m.Currency(),
		"display":  m.Display(),
	})
}

// UnmarshalJSON restores a Money from its marshaled form.
func (m *Money) UnmarshalJSON(data []byte) error {
	var v struct {
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	m.m = money.New(v.Amount, v.Currency)
	return nil
}
