// Package profile holds the declarative per-issuer recognition and extraction
// rules. A profile describes how to recognize one issuer's statements and
// where each of the five fields lives in its text; adding an issuer is a data
// change, never a code change. Profiles are compiled and validated once at
// startup and are read-only afterwards, so a Registry is safe to share across
// concurrent callers.
package profile

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/FACorreiaa/statement-extractor/internal/domain/statement"
	"github.com/FACorreiaa/statement-extractor/pkg/money"
)

// maxWindow caps how many adjacent lines a rule may join when hunting for
// values split by line wrapping.
const maxWindow = 5

// defaultDateLayouts covers the formats US card issuers are known to print.
// Profiles may override with their own ordered list.
var defaultDateLayouts = []string{
	"01/02/2006",
	"01/02/06",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"Jan. 2, 2006",
	"January 2 2006",
}

// FieldRule locates one field within an issuer's text. Patterns are tried in
// declared order; the first candidate that matches wins. Anchor names a label
// that disambiguates when a pattern matches more than once. Window > 1 lets
// the pattern span that many joined adjacent lines. Absent is the explicit
// "this issuer never prints this field" rule — the five-field coverage
// invariant forbids simply omitting the key.
type FieldRule struct {
	Patterns []string                `json:"patterns,omitempty"`
	Kind     statement.NormalizeKind `json:"kind,omitempty"`
	Anchor   string                  `json:"anchor,omitempty"`
	Window   int                     `json:"window,omitempty"`
	Absent   bool                    `json:"absent,omitempty"`
}

// IssuerProfile is the declarative record for one issuer. Signals are text
// fragments expected only in genuine documents of this issuer; the classifier
// scores them case-insensitively.
type IssuerProfile struct {
	ID              string                            `json:"id"`
	DisplayName     string                            `json:"display_name"`
	Signals         []string                          `json:"signals"`
	Currency        string                            `json:"currency,omitempty"`
	EuropeanAmounts bool                              `json:"european_amounts,omitempty"`
	DateLayouts     []string                          `json:"date_layouts,omitempty"`
	Rules           map[statement.FieldName]FieldRule `json:"rules"`
}

// Error is a profile configuration error. It is fatal at startup: a broken
// profile set must stop the process before any document is touched.
type Error struct {
	ProfileID string
	Field     statement.FieldName
	Msg       string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("profile %q, field %s: %s", e.ProfileID, e.Field, e.Msg)
	}
	return fmt.Sprintf("profile %q: %s", e.ProfileID, e.Msg)
}

// CompiledRule is a FieldRule with its patterns compiled, ready for the
// extractor. Patterns are compiled case-insensitively.
type CompiledRule struct {
	Patterns []*regexp.Regexp
	Kind     statement.NormalizeKind
	Anchor   string
	Window   int
	Absent   bool
}

// CompiledProfile pairs the declarative record with its compiled rules and
// resolved defaults.
type CompiledProfile struct {
	IssuerProfile

	rules map[statement.FieldName]*CompiledRule
}

// Rule returns the compiled rule for a field. Registry validation guarantees
// every field has one.
func (p *CompiledProfile) Rule(name statement.FieldName) *CompiledRule {
	return p.rules[name]
}

// Registry is the process-wide, immutable set of compiled profiles, ordered
// by registration (most-specific first). Build it once at startup and pass it
// by reference into every Process call.
type Registry struct {
	profiles []*CompiledProfile
	byID     map[string]*CompiledProfile
}

// NewRegistry validates and compiles the given profiles. Any violation — a
// missing field rule, an uncompilable pattern, an unknown normalization kind —
// returns an *Error and no Registry; callers must treat that as fatal.
func NewRegistry(profiles []IssuerProfile) (*Registry, error) {
	if len(profiles) == 0 {
		return nil, &Error{Msg: "no profiles registered"}
	}

	reg := &Registry{
		profiles: make([]*CompiledProfile, 0, len(profiles)),
		byID:     make(map[string]*CompiledProfile, len(profiles)),
	}

	for _, p := range profiles {
		compiled, err := compileProfile(p)
		if err != nil {
			return nil, err
		}
		if _, dup := reg.byID[compiled.ID]; dup {
			return nil, &Error{ProfileID: compiled.ID, Msg: "duplicate profile id"}
		}
		reg.byID[compiled.ID] = compiled
		reg.profiles = append(reg.profiles, compiled)
	}

	return reg, nil
}

// Profiles returns the compiled profiles in registration order.
func (r *Registry) Profiles() []*CompiledProfile {
	return r.profiles
}

// ByID looks a profile up by issuer id.
func (r *Registry) ByID(id string) (*CompiledProfile, bool) {
	p, ok := r.byID[id]
	return p, ok
}

// Len returns the number of registered profiles.
func (r *Registry) Len() int {
	return len(r.profiles)
}

func compileProfile(p IssuerProfile) (*CompiledProfile, error) {
	if strings.TrimSpace(p.ID) == "" {
		return nil, &Error{ProfileID: p.ID, Msg: "empty profile id"}
	}
	if len(p.Signals) == 0 {
		return nil, &Error{ProfileID: p.ID, Msg: "no classification signals"}
	}
	if p.Currency == "" {
		p.Currency = money.USD
	}
	if len(p.DateLayouts) == 0 {
		p.DateLayouts = defaultDateLayouts
	}

	compiled := &CompiledProfile{
		IssuerProfile: p,
		rules:         make(map[statement.FieldName]*CompiledRule, len(statement.AllFieldNames())),
	}

	for _, name := range statement.AllFieldNames() {
		rule, ok := p.Rules[name]
		if !ok {
			return nil, &Error{ProfileID: p.ID, Field: name, Msg: "missing rule (use an absent rule, never omit the field)"}
		}
		cr, err := compileRule(p.ID, name, rule)
		if err != nil {
			return nil, err
		}
		compiled.rules[name] = cr
	}

	// Reject stray keys so typos in field names surface at startup.
	for name := range p.Rules {
		if _, known := compiled.rules[name]; !known {
			return nil, &Error{ProfileID: p.ID, Field: name, Msg: "unknown field name"}
		}
	}

	return compiled, nil
}

func compileRule(profileID string, name statement.FieldName, rule FieldRule) (*CompiledRule, error) {
	if rule.Absent {
		if len(rule.Patterns) > 0 {
			return nil, &Error{ProfileID: profileID, Field: name, Msg: "absent rule must not carry patterns"}
		}
		return &CompiledRule{Absent: true}, nil
	}

	if len(rule.Patterns) == 0 {
		return nil, &Error{ProfileID: profileID, Field: name, Msg: "rule has no candidate patterns"}
	}
	if !rule.Kind.Valid() {
		return nil, &Error{ProfileID: profileID, Field: name, Msg: fmt.Sprintf("unknown normalization kind %q", rule.Kind)}
	}
	if rule.Window < 0 || rule.Window > maxWindow {
		return nil, &Error{ProfileID: profileID, Field: name, Msg: fmt.Sprintf("window %d out of range (0-%d)", rule.Window, maxWindow)}
	}

	window := rule.Window
	if window == 0 {
		window = 1
	}

	cr := &CompiledRule{
		Patterns: make([]*regexp.Regexp, 0, len(rule.Patterns)),
		Kind:     rule.Kind,
		Anchor:   strings.ToLower(strings.TrimSpace(rule.Anchor)),
		Window:   window,
	}
	for _, pat := range rule.Patterns {
		re, err := regexp.Compile("(?i)" + pat)
		if err != nil {
			return nil, &Error{ProfileID: profileID, Field: name, Msg: fmt.Sprintf("bad pattern %q: %v", pat, err)}
		}
		cr.Patterns = append(cr.Patterns, re)
	}
	return cr, nil
}
