// Package normalize turns raw matched substrings into canonical typed values.
// Every normalizer is total over its declared failure set: any input string
// yields either a value or a specific error, never a panic. Failures here
// downgrade a field to NOT_FOUND; they are routine data, not faults.
package normalize

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/FACorreiaa/statement-extractor/pkg/money"
)

var (
	ErrEmptyInput   = errors.New("empty input")
	ErrNoDateLayout = errors.New("no accepted date layout matched")
	ErrTooFewDigits = errors.New("fewer than two visible digits")
	ErrNoDigitGroup = errors.New("no trailing digit group")
)

// Date parses a raw date string against an ordered list of accepted layouts
// and returns a canonical calendar date (midnight UTC). time.Parse rejects
// impossible dates like February 31, which keeps the calendar validation in
// one place.
func Date(raw string, layouts []string) (time.Time, error) {
	s := strings.Join(strings.Fields(raw), " ")
	if s == "" {
		return time.Time{}, ErrEmptyInput
	}
	// Issuers print "Sept"; Go's month layouts only know "Sep".
	s = strings.Replace(s, "Sept ", "Sep ", 1)
	s = strings.Replace(s, "Sept. ", "Sep. ", 1)

	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrNoDateLayout, raw)
}

// Currency parses a raw amount string into a fixed-point value in the
// profile's home currency. Symbols, thousands separators (US or European per
// the profile) and accounting parentheses are stripped; multiple decimal
// points or leftover non-numeric text fail.
func Currency(raw string, currencyCode string, europeanFormat bool) (*money.Money, error) {
	m, err := money.NewFromString(raw, currencyCode, europeanFormat)
	if err != nil {
		return nil, fmt.Errorf("normalize currency: %w", err)
	}
	return m, nil
}

var trailingDigits = regexp.MustCompile(`(\d+)\D*$`)

// MaskedAccount extracts the visible trailing digit group from a masked
// account string such as "**** **** **** 1234" or the capture of an
// "ending in 1234" phrase. Statements show two to four visible digits; fewer
// than two fail, and anything longer is truncated to the last four.
func MaskedAccount(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", ErrEmptyInput
	}
	m := trailingDigits.FindStringSubmatch(s)
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrNoDigitGroup, raw)
	}
	digits := m[1]
	if len(digits) < 2 {
		return "", fmt.Errorf("%w: %q", ErrTooFewDigits, raw)
	}
	if len(digits) > 4 {
		digits = digits[len(digits)-4:]
	}
	return digits, nil
}
