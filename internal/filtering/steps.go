package filtering

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/skillmatch/internal/scoring"
)

const noThresholdMsg = "no threshold configured"

type thresholdFilter struct {
	name     string
	field    string
	minimum  int
	value    func(*Candidate) int
	disabled bool
	reason   string
}

// NewMinimumScore drops candidates whose match score is below minimum. A
// minimum of zero disables the filter.
func NewMinimumScore(minimum int) Filter {
	return newThreshold("minimum_match_score", "match_score", minimum, func(c *Candidate) int {
		return c.Result.MatchScore
	})
}

// NewMinimumExperience drops candidates whose experience match is below
// minimum. A minimum of zero disables the filter.
func NewMinimumExperience(minimum int) Filter {
	return newThreshold("minimum_experience_match", "experience_match", minimum, func(c *Candidate) int {
		return c.Result.ExperienceMatch
	})
}

func newThreshold(name, field string, minimum int, value func(*Candidate) int) *thresholdFilter {
	f := &thresholdFilter{name: name, field: field, minimum: minimum, value: value}
	if minimum == 0 {
		f.Disable(noThresholdMsg)
	}
	return f
}

func (f *thresholdFilter) Name() string { return f.name }

func (f *thresholdFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *thresholdFilter) IsEnabled() bool { return !f.disabled }

func (f *thresholdFilter) Validate() error {
	if f.minimum < 0 || f.minimum > scoring.FullMatch {
		return fmt.Errorf("minimum %d is outside 0-%d", f.minimum, scoring.FullMatch)
	}
	return nil
}

func (f *thresholdFilter) Apply(_ context.Context, log *zap.Logger, c *Candidates) (Step, error) {
	initial := c.Len()
	excluded := c.Exclude(func(candidate *Candidate) bool {
		return f.value(candidate) < f.minimum
	})
	if len(excluded) > 0 {
		log.Info("excluding candidates below threshold",
			zap.String("field", f.field),
			zap.Int("minimum", f.minimum),
			zap.Strings("excluded_candidates", excluded),
			zap.Int("candidates_left", c.Len()),
		)
	}

	return Step{Initial: initial, Dropped: len(excluded), Left: c.Len()}, nil
}

func (f *thresholdFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"minimum": strconv.Itoa(f.minimum)},
	}
}

type excludeFileFilter struct {
	path     string
	disabled bool
	reason   string
}

// NewExcludeFile creates a filter that removes candidates listed by name in
// the file at path. An empty path disables the filter.
func NewExcludeFile(path string) Filter {
	f := &excludeFileFilter{path: strings.TrimSpace(path)}
	if f.path == "" {
		f.Disable("no exclude file configured")
	}
	return f
}

func (f *excludeFileFilter) Name() string { return "exclude_file" }

func (f *excludeFileFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *excludeFileFilter) IsEnabled() bool { return !f.disabled }

func (f *excludeFileFilter) Validate() error {
	if f.path == "" {
		return fmt.Errorf("exclude file path is required")
	}
	return nil
}

func (f *excludeFileFilter) Apply(_ context.Context, log *zap.Logger, c *Candidates) (Step, error) {
	initial := c.Len()

	names, err := ReadExcludeFile(f.path)
	if err != nil {
		return Step{}, fmt.Errorf("getting excluded candidates from file: %w", err)
	}

	skip := make(map[string]struct{}, len(names))
	for _, name := range names {
		skip[name] = struct{}{}
	}

	removed := c.Exclude(func(candidate *Candidate) bool {
		_, ok := skip[candidate.Name]
		return ok
	})
	if len(removed) > 0 {
		log.Info("excluding candidates based on exclude file",
			zap.String("path", f.path),
			zap.Strings("excluded_candidates", removed),
			zap.Int("candidates_left", c.Len()),
		)
	}

	return Step{Initial: initial, Dropped: len(removed), Left: c.Len()}, nil
}

func (f *excludeFileFilter) Status() Status {
	details := map[string]string{}
	if f.path != "" {
		details["path"] = f.path
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
