// Package extract runs a profile's field rules against document text and
// produces the five field results. It is a pure function of its inputs: all
// "failure" outcomes (no match, ambiguous match, unparsable value) are data
// on the result, never errors that abort the remaining fields.
package extract

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/FACorreiaa/statement-extractor/internal/domain/normalize"
	"github.com/FACorreiaa/statement-extractor/internal/domain/profile"
	"github.com/FACorreiaa/statement-extractor/internal/domain/statement"
)

// anchorReach is how many lines a disambiguation anchor may precede its value
// by and still claim it ("nearest preceding label").
const anchorReach = 3

// candidate is one distinct match of a rule pattern.
type candidate struct {
	lineIdx int
	capture string // the value substring (first capture group, or whole match)
	raw     string // the whole matched text, kept for audit
}

// Extract evaluates every field rule of the profile against the text and
// returns exactly five results in canonical field order.
func Extract(text statement.RawDocumentText, p *profile.CompiledProfile) []statement.FieldResult {
	names := statement.AllFieldNames()
	results := make([]statement.FieldResult, 0, len(names))
	for _, name := range names {
		results = append(results, extractField(text, p, name))
	}
	return results
}

func extractField(text statement.RawDocumentText, p *profile.CompiledProfile, name statement.FieldName) statement.FieldResult {
	rule := p.Rule(name)
	if rule.Absent {
		return statement.FieldResult{
			Field:  name,
			Status: statement.StatusNotFound,
			Reason: "issuer does not print this field",
		}
	}

	// Candidates are tried in declared precedence order; the first pattern
	// that matches anything settles the field.
	for _, re := range rule.Patterns {
		cands := findCandidates(text.Lines, re, rule.Window)
		if len(cands) == 0 {
			continue
		}

		chosen, ok := resolve(cands, text.Lines, rule.Anchor)
		if !ok {
			return statement.FieldResult{
				Field:    name,
				Status:   statement.StatusAmbiguous,
				RawMatch: cands[0].raw,
				Reason:   fmt.Sprintf("%d distinct matches and no disambiguation anchor applied", len(cands)),
			}
		}
		return normalizeCandidate(chosen, rule, p, name)
	}

	return statement.FieldResult{
		Field:  name,
		Status: statement.StatusNotFound,
		Reason: "no candidate pattern matched",
	}
}

// findCandidates scans each line, then each window of adjacent joined lines
// when the rule allows spanning, and returns the distinct matches in document
// order. Identical captured text on several lines is one candidate: the same
// value repeated is a layout artifact, not an ambiguity.
func findCandidates(lines []string, re *regexp.Regexp, window int) []candidate {
	var cands []candidate
	seen := make(map[string]bool)

	add := func(lineIdx int, raw, capture string) {
		capture = strings.TrimSpace(capture)
		if capture == "" || seen[capture] {
			return
		}
		seen[capture] = true
		cands = append(cands, candidate{lineIdx: lineIdx, capture: capture, raw: raw})
	}

	scan := func(lineIdx int, s string) {
		for _, m := range re.FindAllStringSubmatch(s, -1) {
			capture := m[0]
			if len(m) > 1 && m[1] != "" {
				capture = m[1]
			}
			add(lineIdx, m[0], capture)
		}
	}

	for i, line := range lines {
		scan(i, line)
	}

	if window > 1 {
		for i := 0; i+window <= len(lines); i++ {
			scan(i, strings.Join(lines[i:i+window], " "))
		}
	}

	sort.SliceStable(cands, func(a, b int) bool {
		return cands[a].lineIdx < cands[b].lineIdx
	})
	return cands
}

// resolve picks one candidate. A single candidate stands on its own. Several
// distinct candidates need the rule's anchor: the candidate with the nearest
// preceding occurrence of the anchor label (same line or up to anchorReach
// lines above) wins, document order breaking ties. Without an applicable
// anchor the field is ambiguous.
func resolve(cands []candidate, lines []string, anchor string) (candidate, bool) {
	if len(cands) == 1 {
		return cands[0], true
	}
	if anchor == "" {
		return candidate{}, false
	}

	var anchorLines []int
	for i, line := range lines {
		if strings.Contains(strings.ToLower(line), anchor) {
			anchorLines = append(anchorLines, i)
		}
	}

	best := -1
	bestDist := anchorReach + 1
	for ci, cand := range cands {
		for _, ai := range anchorLines {
			if ai > cand.lineIdx {
				break
			}
			if dist := cand.lineIdx - ai; dist <= anchorReach && dist < bestDist {
				bestDist = dist
				best = ci
			}
		}
	}
	if best < 0 {
		return candidate{}, false
	}
	return cands[best], true
}

// normalizeCandidate invokes the normalizer for the rule's kind. A value the
// normalizer rejects downgrades the field to NOT_FOUND with the reason
// recorded; the raw match stays for audit either way.
func normalizeCandidate(cand candidate, rule *profile.CompiledRule, p *profile.CompiledProfile, name statement.FieldName) statement.FieldResult {
	result := statement.FieldResult{
		Field:    name,
		Status:   statement.StatusFound,
		RawMatch: cand.raw,
	}

	switch rule.Kind {
	case statement.KindDate:
		t, err := normalize.Date(cand.capture, p.DateLayouts)
		if err != nil {
			return notFound(result, err)
		}
		result.Value = statement.DateValue(t)
	case statement.KindCurrency:
		m, err := normalize.Currency(cand.capture, p.Currency, p.EuropeanAmounts)
		if err != nil {
			return notFound(result, err)
		}
		result.Value = statement.AmountValue(m)
	case statement.KindMaskedAccount:
		digits, err := normalize.MaskedAccount(cand.capture)
		if err != nil {
			return notFound(result, err)
		}
		result.Value = statement.AccountValue(digits)
	}

	return result
}

func notFound(r statement.FieldResult, err error) statement.FieldResult {
	r.Status = statement.StatusNotFound
	r.Value = nil
	r.Reason = err.Error()
	return r
}
