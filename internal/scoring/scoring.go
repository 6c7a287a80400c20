// Package scoring turns extracted skill tokens into numeric signals and a
// short human-readable summary.
package scoring

import (
	"math"
	"strings"

	"github.com/spigell/skillmatch/internal/skills"
)

const (
	// FullMatch is the maximum value of every percentage signal.
	FullMatch = 100

	maxPlausibleYears = 50
	densityScale      = 1000
)

// MatchScore returns the rounded percentage of job tokens that were matched.
// An empty job side scores 0.
func MatchScore(matched, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(FullMatch) * float64(matched) / float64(total)))
}

// KeywordDensity returns the occurrences of matched skills per thousand words
// of resume, rounded to one decimal place.
func KeywordDensity(matched []string, resume string) float64 {
	occurrences := 0
	for _, skill := range matched {
		occurrences += skills.Occurrences(resume, skill)
	}

	words := len(strings.Fields(resume))
	if words < 1 {
		words = 1
	}

	density := float64(occurrences) / float64(words) * densityScale
	return math.Round(density*10) / 10
}

// Requirement is the experience range a job asks for.
type Requirement struct {
	MinYears int
	MaxYears int
}

// ParseRequirement reads the first experience mention in text.
func ParseRequirement(text string) (Requirement, bool) {
	phrases := skills.ExperiencePhrases(text)
	if len(phrases) == 0 {
		return Requirement{}, false
	}
	return Requirement{MinYears: phrases[0].Min, MaxYears: phrases[0].Max}, true
}

// CandidateYears returns the largest plausible years-of-experience figure in
// text. Mentions of zero or more than 50 years are ignored.
func CandidateYears(text string) (int, bool) {
	best, ok := 0, false
	for _, p := range skills.ExperiencePhrases(text) {
		if p.Min <= 0 || p.Min > maxPlausibleYears {
			continue
		}
		if p.Min > best {
			best = p.Min
		}
		ok = true
	}
	return best, ok
}

// ExperienceMatch rates how well the resume meets the job's experience
// requirement on a 0-100 scale. A job without a requirement yields 100; a
// resume without a usable mention yields 0.
func ExperienceMatch(job, resume string) int {
	req, ok := ParseRequirement(job)
	if !ok {
		return FullMatch
	}

	years, ok := CandidateYears(resume)
	if !ok {
		return 0
	}

	return req.Fit(years)
}

// Fit rates years against r.
func (r Requirement) Fit(years int) int {
	if years >= r.MaxYears {
		return FullMatch
	}

	if years >= r.MinYears {
		span := r.MaxYears - r.MinYears
		if span < 1 {
			span = 1
		}
		progress := float64(years-r.MinYears) / float64(span)
		return int(math.Round(80 + 20*progress))
	}

	ratio := float64(years) / float64(r.MinYears)
	switch {
	case ratio >= 0.75:
		return 70
	case ratio >= 0.5:
		return 50
	case ratio >= 0.25:
		return 30
	default:
		return 10
	}
}
