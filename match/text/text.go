// Package text provides the tokenization and similarity primitives the
// scoring pipeline is built on. All comparisons are case-insensitive and
// stop-word filtered.
package text

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// DefaultMinTokenLen is the shortest token kept by keyword extraction.
const DefaultMinTokenLen = 2

// Normalize lowercases s, replaces every rune outside letters, digits and
// the symbols + # . with a space, and collapses runs of whitespace.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '+', r == '#', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// ExtractKeywords returns the normalized tokens of s minus stop words and
// tokens shorter than minLen. Sentence periods are trimmed so "cloud." and
// "cloud" collapse while "node.js" keeps its interior dot.
func ExtractKeywords(s string, minLen int) map[string]struct{} {
	if minLen <= 0 {
		minLen = DefaultMinTokenLen
	}
	out := make(map[string]struct{})
	for _, tok := range strings.Fields(Normalize(s)) {
		tok = strings.Trim(tok, ".")
		if len(tok) < minLen || stopWords[tok] {
			continue
		}
		out[tok] = struct{}{}
	}
	return out
}

// SortedKeywords flattens a keyword set into a sorted slice for stable
// display and assertions.
func SortedKeywords(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Overlap reports what share of b's keywords also appear in a, 0..100.
// Asymmetric: b is the reference side, usually the job text.
func Overlap(a, b string) float64 {
	ka := ExtractKeywords(a, DefaultMinTokenLen)
	kb := ExtractKeywords(b, DefaultMinTokenLen)
	if len(kb) == 0 {
		return 0
	}
	hits := 0
	for k := range kb {
		if _, ok := ka[k]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(kb)) * 100
}

// Similarity returns the Jaccard similarity of the two keyword sets, 0..100.
// Symmetric in its arguments; 0 when either side has no keywords.
func Similarity(a, b string) float64 {
	ka := ExtractKeywords(a, DefaultMinTokenLen)
	kb := ExtractKeywords(b, DefaultMinTokenLen)
	if len(ka) == 0 || len(kb) == 0 {
		return 0
	}
	intersection := 0
	for k := range ka {
		if _, ok := kb[k]; ok {
			intersection++
		}
	}
	union := len(ka) + len(kb) - intersection
	return float64(intersection) / float64(union) * 100
}

var (
	acronymRe = regexp.MustCompile(`\b[A-Z]{2,}\b`)
	dottedRe  = regexp.MustCompile(`\b[A-Za-z][A-Za-z0-9]*\.[A-Za-z][A-Za-z0-9.]*\b`)
	plusRe    = regexp.MustCompile(`\b[A-Za-z][A-Za-z0-9]*\+\+`)
	sharpRe   = regexp.MustCompile(`\b[A-Za-z][A-Za-z0-9]*#`)
)

// TechnicalTerms pulls out tokens written the way technologies usually are:
// all-caps acronyms (AWS, SQL), dotted names (node.js), and the ++/# forms.
// Results are case-folded.
func TechnicalTerms(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, re := range []*regexp.Regexp{acronymRe, dottedRe, plusRe, sharpRe} {
		for _, m := range re.FindAllString(s, -1) {
			out[strings.ToLower(m)] = struct{}{}
		}
	}
	return out
}

var yearsRe = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*\+?\s*(?:years?|yrs?)\b`)

// Years returns every experience duration mentioned in s, in document order.
// "5 years", "3+ yrs" and "2.5 years" all count.
func Years(s string) []float64 {
	matches := yearsRe.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return nil
	}
	out := make([]float64, 0, len(matches))
	for _, m := range matches {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}
