// Package classify selects the issuer profile that best matches a document's
// text. All profile signals are compiled into a single Aho-Corasick matcher so
// classification is one pass over the text regardless of how many issuers are
// registered; a fuzzy second pass catches signals mangled by noisy extraction.
package classify

import (
	"regexp"
	"strings"

	"github.com/cloudflare/ahocorasick"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/FACorreiaa/statement-extractor/internal/domain/profile"
	"github.com/FACorreiaa/statement-extractor/internal/domain/statement"
)

// A profile qualifies only when at least one signal matched exactly and its
// normalized score clears minScore. Exact signal hits count full weight,
// fuzzy (noise-tolerant) hits half.
const (
	minScore    = 0.25
	exactWeight = 1.0
	fuzzyWeight = 0.5
)

type signalRef struct {
	profileIdx int
	signalIdx  int
}

// Classifier scores documents against an immutable profile registry. Build it
// once at startup; Classify is a pure function and safe for concurrent use.
type Classifier struct {
	reg      *profile.Registry
	matcher  *ahocorasick.Matcher
	patterns []string
	refs     [][]signalRef
}

// New builds the classifier's matcher from every signal of every registered
// profile. Duplicate signal text across profiles shares one matcher entry.
func New(reg *profile.Registry) *Classifier {
	c := &Classifier{reg: reg}

	patternToIdx := make(map[string]int)
	for pi, p := range reg.Profiles() {
		for si, signal := range p.Signals {
			upper := strings.ToUpper(strings.TrimSpace(signal))
			if upper == "" {
				continue
			}
			idx, exists := patternToIdx[upper]
			if !exists {
				idx = len(c.patterns)
				patternToIdx[upper] = idx
				c.patterns = append(c.patterns, upper)
				c.refs = append(c.refs, nil)
			}
			c.refs[idx] = append(c.refs[idx], signalRef{profileIdx: pi, signalIdx: si})
		}
	}

	if len(c.patterns) > 0 {
		bytePatterns := make([][]byte, len(c.patterns))
		for i, p := range c.patterns {
			bytePatterns[i] = []byte(p)
		}
		c.matcher = ahocorasick.NewMatcher(bytePatterns)
	}
	return c
}

// Classify returns the best-matching profile, or false when no profile
// clears the threshold. Ties on score go to the earliest registered profile,
// so registration order expresses specificity.
func (c *Classifier) Classify(text statement.RawDocumentText) (*profile.CompiledProfile, bool) {
	profiles := c.reg.Profiles()
	if c.matcher == nil || len(profiles) == 0 {
		return nil, false
	}

	joined := strings.ToUpper(strings.Join(text.Lines, "\n"))

	// Exact pass: one scan finds every signal of every profile.
	exact := make(map[signalRef]bool)
	for _, idx := range c.matcher.Match([]byte(joined)) {
		if idx >= 0 && idx < len(c.refs) {
			for _, ref := range c.refs[idx] {
				exact[ref] = true
			}
		}
	}

	var best *profile.CompiledProfile
	bestScore := 0.0

	for pi, p := range profiles {
		exactHits := 0
		fuzzyHits := 0
		for si, signal := range p.Signals {
			if exact[signalRef{profileIdx: pi, signalIdx: si}] {
				exactHits++
			} else if fuzzySignalMatch(signal, text.Lines) {
				fuzzyHits++
			}
		}
		if exactHits == 0 {
			continue
		}

		score := (exactWeight*float64(exactHits) + fuzzyWeight*float64(fuzzyHits)) / float64(len(p.Signals))
		if score < minScore {
			continue
		}
		if score > bestScore {
			bestScore = score
			best = p
		}
	}

	return best, best != nil
}

// fuzzySignalMatch slides a token window the width of the signal over each
// line and accepts a small edit distance, tolerating one-off extraction noise
// like "0" for "o". The allowance scales with signal length.
func fuzzySignalMatch(signal string, lines []string) bool {
	sig := strings.ToUpper(strings.TrimSpace(signal))
	words := strings.Fields(sig)
	if len(words) == 0 {
		return false
	}
	allowed := len(sig) / 8
	if allowed < 1 {
		allowed = 1
	}

	for _, line := range lines {
		tokens := strings.Fields(strings.ToUpper(line))
		if len(tokens) < len(words) {
			continue
		}
		for i := 0; i+len(words) <= len(tokens); i++ {
			window := strings.Join(tokens[i:i+len(words)], " ")
			if fuzzy.LevenshteinDistance(sig, window) <= allowed {
				return true
			}
		}
	}
	return false
}

// cardNetworks lists the networks stamped on statements, checked in order.
var cardNetworks = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bVISA\b`),
	regexp.MustCompile(`(?i)\bMASTERCARD\b`),
	regexp.MustCompile(`(?i)\bAMERICAN EXPRESS\b`),
	regexp.MustCompile(`(?i)\bAMEX\b`),
	regexp.MustCompile(`(?i)\bDISCOVER\b`),
}

var cardNetworkNames = []string{"VISA", "MASTERCARD", "AMERICAN EXPRESS", "AMEX", "DISCOVER"}

// DetectNetwork reports the card network named in the text, independent of
// issuer classification. Empty when none is found.
func DetectNetwork(text statement.RawDocumentText) string {
	joined := strings.Join(text.Lines, "\n")
	for i, re := range cardNetworks {
		if re.MatchString(joined) {
			return cardNetworkNames[i]
		}
	}
	return ""
}
