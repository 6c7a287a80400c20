package skills

import (
	"regexp"
	"strconv"
	"strings"
)

// experienceRe matches "3 years", "5+ years of experience", "2-4 yrs" and the
// like. Group 1 is the lower bound, group 2 the optional upper bound.
var experienceRe = regexp.MustCompile(`(?i)(\d+)[+\-–]?(\d+)?\s*(?:years?|yrs?)\s*(?:of)?\s*(?:experience)?`)

// ExperiencePhrase is a single experience mention found in text.
type ExperiencePhrase struct {
	Text string
	Min  int
	Max  int
}

// ExperiencePhrases returns every experience mention in text in order of
// appearance. Numbers that fail to parse are reported as 0. Max equals Min
// when the mention carries a single number.
func ExperiencePhrases(text string) []ExperiencePhrase {
	matches := experienceRe.FindAllStringSubmatch(text, -1)
	phrases := make([]ExperiencePhrase, 0, len(matches))
	for _, m := range matches {
		p := ExperiencePhrase{
			Text: normalize(m[0]),
			Min:  atoi(m[1]),
		}
		p.Max = p.Min
		if m[2] != "" {
			p.Max = atoi(m[2])
		}
		phrases = append(phrases, p)
	}
	return phrases
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// Extractor turns free text into normalized skill tokens.
type Extractor struct {
	catalog *Catalog
}

// NewExtractor returns an Extractor backed by catalog, or by the default
// catalog when catalog is nil.
func NewExtractor(catalog *Catalog) *Extractor {
	if catalog == nil {
		catalog = Default()
	}
	return &Extractor{catalog: catalog}
}

// Catalog returns the catalog the extractor scans with.
func (e *Extractor) Catalog() *Catalog { return e.catalog }

// Extract returns the deduplicated skill tokens found in text. Tokens keep
// the order in which they were first found: catalog phrases, catalog words,
// experience phrases, then auto-detected tags.
func (e *Extractor) Extract(text string) []string {
	lower := strings.ToLower(text)
	raw := make([]string, 0, 16)

	for _, t := range e.catalog.terms {
		if t.in(lower) {
			raw = append(raw, t.tag)
		}
	}

	for _, p := range ExperiencePhrases(text) {
		raw = append(raw, p.Text)
	}

	for _, r := range e.catalog.rules {
		if r.applies(lower) {
			raw = append(raw, r.Tag)
		}
	}

	seen := make(map[string]struct{}, len(raw))
	tokens := make([]string, 0, len(raw))
	for _, token := range raw {
		token = normalize(token)
		if !e.catalog.keep(token) {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		tokens = append(tokens, token)
	}

	return tokens
}
