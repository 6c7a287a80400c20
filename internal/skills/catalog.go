package skills

import (
	"regexp"
	"strings"
)

// minTokenLength is the shortest token kept unless it is explicitly allowed.
const minTokenLength = 3

// Rule emits Tag when any of Triggers occurs in the lower-cased text. When
// Context is not empty, at least one of its substrings must be present too.
type Rule struct {
	Tag      string
	Triggers []string
	Context  []string
}

func (r Rule) applies(lower string) bool {
	if len(r.Context) > 0 && !containsAny(lower, r.Context) {
		return false
	}
	return containsAny(lower, r.Triggers)
}

// CatalogConfig is the raw material a Catalog is built from.
type CatalogConfig struct {
	Blacklist       []string
	Education       []string
	MultiWord       []string
	SingleWord      []string
	AllowedShort    []string
	AutoDetectRules []Rule
}

// Catalog holds the vocabulary driving extraction. It is immutable once built
// and safe for concurrent use.
type Catalog struct {
	blacklist    map[string]struct{}
	education    map[string]struct{}
	allowedShort map[string]struct{}
	terms        []term
	rules        []Rule
}

// term is a single catalog entry. Phrases match by substring containment,
// single words by whole-word match.
type term struct {
	tag string
	re  *regexp.Regexp
}

func newTerm(tag string) term {
	t := term{tag: tag}
	if !strings.Contains(tag, " ") {
		t.re = wordPattern(tag)
	}
	return t
}

func (t term) in(lower string) bool {
	if t.re == nil {
		return strings.Contains(lower, t.tag)
	}
	return t.re.MatchString(lower)
}

func (t term) count(lower string) int {
	if t.re == nil {
		return strings.Count(lower, t.tag)
	}
	return len(t.re.FindAllStringIndex(lower, -1))
}

func wordPattern(word string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(word) + `\b`)
}

// NewCatalog normalizes cfg into an immutable Catalog. Multi-word entries are
// scanned before single-word entries, each list in its given order. Single
// words that are blacklisted are never scanned.
func NewCatalog(cfg CatalogConfig) *Catalog {
	c := &Catalog{
		blacklist:    toSet(cfg.Blacklist),
		education:    toSet(cfg.Education),
		allowedShort: toSet(cfg.AllowedShort),
	}

	seen := make(map[string]struct{})
	add := func(raw string, phrases bool) {
		tag := normalize(raw)
		if tag == "" || strings.Contains(tag, " ") != phrases {
			return
		}
		if _, ok := seen[tag]; ok {
			return
		}
		if _, ok := c.blacklist[tag]; ok && !phrases {
			return
		}
		seen[tag] = struct{}{}
		c.terms = append(c.terms, newTerm(tag))
	}

	all := append(append([]string{}, cfg.MultiWord...), cfg.SingleWord...)
	for _, s := range all {
		add(s, true)
	}
	for _, s := range all {
		add(s, false)
	}

	for _, r := range cfg.AutoDetectRules {
		tag := normalize(r.Tag)
		if tag == "" || len(r.Triggers) == 0 {
			continue
		}
		c.rules = append(c.rules, Rule{
			Tag:      tag,
			Triggers: normalizeAll(r.Triggers),
			Context:  normalizeAll(r.Context),
		})
	}

	return c
}

// Len returns the number of scannable catalog entries.
func (c *Catalog) Len() int { return len(c.terms) }

// Blacklisted reports whether token is a stop-word.
func (c *Catalog) Blacklisted(token string) bool {
	_, ok := c.blacklist[normalize(token)]
	return ok
}

// Occurrences counts how many times skill appears in text, using substring
// counting for phrases and whole-word counting otherwise.
func Occurrences(text, skill string) int {
	skill = normalize(skill)
	if skill == "" {
		return 0
	}
	return newTerm(skill).count(strings.ToLower(text))
}

func (c *Catalog) keep(token string) bool {
	if token == "" {
		return false
	}
	if _, ok := c.blacklist[token]; ok {
		return false
	}
	if _, ok := c.education[token]; ok {
		return false
	}
	if len(token) < minTokenLength {
		_, ok := c.allowedShort[token]
		return ok
	}
	return true
}

// With returns a copy of cfg extended with extra.
func (cfg CatalogConfig) With(extra CatalogConfig) CatalogConfig {
	return CatalogConfig{
		Blacklist:       concat(cfg.Blacklist, extra.Blacklist),
		Education:       concat(cfg.Education, extra.Education),
		MultiWord:       concat(cfg.MultiWord, extra.MultiWord),
		SingleWord:      concat(cfg.SingleWord, extra.SingleWord),
		AllowedShort:    concat(cfg.AllowedShort, extra.AllowedShort),
		AutoDetectRules: append(append([]Rule{}, cfg.AutoDetectRules...), extra.AutoDetectRules...),
	}
}

func concat(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizeAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = normalize(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range normalizeAll(values) {
		set[v] = struct{}{}
	}
	return set
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
