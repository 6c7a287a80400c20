// Package filtering narrows down and ranks a batch of analyzed resumes.
package filtering

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spigell/skillmatch/internal/analysis"
)

// Candidate is one analyzed resume.
type Candidate struct {
	Name   string           `json:"name"`
	Path   string           `json:"path,omitempty"`
	Result *analysis.Result `json:"result"`
}

type Candidates struct {
	Items []*Candidate
}

func (c *Candidates) Len() int {
	return len(c.Items)
}

func (c *Candidates) Names() []string {
	names := make([]string, 0, len(c.Items))
	for _, candidate := range c.Items {
		names = append(names, candidate.Name)
	}
	return names
}

func (c *Candidates) FindByName(name string) *Candidate {
	for _, candidate := range c.Items {
		if candidate.Name == name {
			return candidate
		}
	}
	return nil
}

// Exclude removes every candidate for which drop returns true and reports
// their names. Order of the remaining candidates is preserved.
func (c *Candidates) Exclude(drop func(*Candidate) bool) []string {
	var excluded []string
	kept := c.Items[:0]
	for _, candidate := range c.Items {
		if drop(candidate) {
			excluded = append(excluded, candidate.Name)
			continue
		}
		kept = append(kept, candidate)
	}
	for i := len(kept); i < len(c.Items); i++ {
		c.Items[i] = nil
	}
	c.Items = kept
	return excluded
}

// Rank orders candidates by match score, highest first, then by name.
func (c *Candidates) Rank() {
	sort.SliceStable(c.Items, func(i, j int) bool {
		a, b := c.Items[i], c.Items[j]
		if a.Result.MatchScore != b.Result.MatchScore {
			return a.Result.MatchScore > b.Result.MatchScore
		}
		return a.Name < b.Name
	})
}

// ReportEntry is a flattened view of a ranked candidate.
type ReportEntry struct {
	Rank            int      `json:"rank"`
	Name            string   `json:"name"`
	MatchScore      int      `json:"match_score"`
	ExperienceMatch int      `json:"experience_match"`
	KeywordDensity  float64  `json:"keyword_density"`
	MissingSkills   []string `json:"missing_skills"`
	Summary         string   `json:"summary"`
}

// Report lists the candidates in their current order.
func (c *Candidates) Report() []ReportEntry {
	report := make([]ReportEntry, 0, len(c.Items))
	for i, candidate := range c.Items {
		report = append(report, ReportEntry{
			Rank:            i + 1,
			Name:            candidate.Name,
			MatchScore:      candidate.Result.MatchScore,
			ExperienceMatch: candidate.Result.ExperienceMatch,
			KeywordDensity:  candidate.Result.KeywordDensity,
			MissingSkills:   candidate.Result.MissingSkills,
			Summary:         candidate.Result.Summary,
		})
	}
	return report
}

// ReadExcludeFile reads candidate names, one per line. Blank lines and lines
// starting with '#' are skipped.
func ReadExcludeFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var names []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return names, nil
}
