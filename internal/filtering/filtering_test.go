package filtering

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/skillmatch/internal/analysis"
)

func candidate(name string, score, experience int) *Candidate {
	return &Candidate{
		Name: name,
		Result: &analysis.Result{
			MatchScore:      score,
			ExperienceMatch: experience,
			MatchedSkills:   []string{},
			MissingSkills:   []string{},
		},
	}
}

func batch() *Candidates {
	return &Candidates{Items: []*Candidate{
		candidate("alice.txt", 80, 100),
		candidate("bob.txt", 40, 50),
		candidate("carol.txt", 80, 30),
		candidate("dave.txt", 100, 70),
	}}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "exclude.txt")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write exclude file: %v", err)
	}
	return path
}

func TestCandidatesExcludePreservesOrder(t *testing.T) {
	c := batch()
	excluded := c.Exclude(func(c *Candidate) bool { return c.Result.MatchScore == 80 })

	if want := []string{"alice.txt", "carol.txt"}; !reflect.DeepEqual(excluded, want) {
		t.Fatalf("excluded = %v, want %v", excluded, want)
	}
	if want := []string{"bob.txt", "dave.txt"}; !reflect.DeepEqual(c.Names(), want) {
		t.Fatalf("left = %v, want %v", c.Names(), want)
	}
}

func TestCandidatesRank(t *testing.T) {
	c := batch()
	c.Rank()

	want := []string{"dave.txt", "alice.txt", "carol.txt", "bob.txt"}
	if !reflect.DeepEqual(c.Names(), want) {
		t.Fatalf("ranked = %v, want %v", c.Names(), want)
	}

	report := c.Report()
	if len(report) != 4 {
		t.Fatalf("expected 4 report entries, got %d", len(report))
	}
	if report[0].Rank != 1 || report[0].Name != "dave.txt" || report[0].MatchScore != 100 {
		t.Fatalf("unexpected first entry: %+v", report[0])
	}
	if report[3].Rank != 4 || report[3].Name != "bob.txt" {
		t.Fatalf("unexpected last entry: %+v", report[3])
	}
}

func TestReadExcludeFile(t *testing.T) {
	path := writeFile(t, "# reviewed already\nalice.txt\n\n  carol.txt  \n")

	names, err := ReadExcludeFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"alice.txt", "carol.txt"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("names = %v, want %v", names, want)
	}

	names, err = ReadExcludeFile(writeFile(t, ""))
	if err != nil {
		t.Fatalf("unexpected error for empty file: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("expected no names, got %v", names)
	}

	if _, err := ReadExcludeFile(filepath.Join(t.TempDir(), "missing")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestRunDefaultPipeline(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	steps := Default(Config{
		MinimumMatchScore:      50,
		MinimumExperienceMatch: 40,
		ExcludeFile:            writeFile(t, "dave.txt\n"),
	})

	c := batch()
	if err := Run(context.Background(), zap.New(core), steps, c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := []string{"alice.txt"}; !reflect.DeepEqual(c.Names(), want) {
		t.Fatalf("left = %v, want %v", c.Names(), want)
	}

	stepLogs := logs.FilterMessage("filter step").All()
	if len(stepLogs) != 3 {
		t.Fatalf("expected 3 filter step logs, got %d", len(stepLogs))
	}

	want := []struct {
		name             string
		initial, dropped int64
	}{
		{name: "exclude_file", initial: 4, dropped: 1},
		{name: "minimum_match_score", initial: 3, dropped: 1},
		{name: "minimum_experience_match", initial: 2, dropped: 1},
	}
	for i, w := range want {
		fields := stepLogs[i].ContextMap()
		if fields["name"] != w.name || fields["initial"] != w.initial || fields["dropped"] != w.dropped {
			t.Fatalf("step %d logged %v, want %+v", i, fields, w)
		}
	}
}

func TestRunSkipsDisabledFilters(t *testing.T) {
	steps := Default(Config{})
	c := batch()

	if err := Run(context.Background(), nil, steps, c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Len() != 4 {
		t.Fatalf("expected all candidates to survive, got %v", c.Names())
	}

	for _, status := range Describe(steps) {
		if status.Enabled {
			t.Fatalf("expected %s to be disabled", status.Name)
		}
		if status.Reason == "" {
			t.Fatalf("expected a disable reason for %s", status.Name)
		}
	}
}

func TestDisableByName(t *testing.T) {
	steps := Default(Config{MinimumMatchScore: 90})
	DisableByName(steps, "minimum_match_score", "disabled by flag")

	c := batch()
	if err := Run(context.Background(), nil, steps, c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Len() != 4 {
		t.Fatalf("expected disabled filter to keep all candidates, got %v", c.Names())
	}

	statuses := Describe(steps)
	if statuses[1].Name != "minimum_match_score" || statuses[1].Reason != "disabled by flag" {
		t.Fatalf("unexpected status: %+v", statuses[1])
	}
	if statuses[1].Details["minimum"] != "90" {
		t.Fatalf("expected minimum detail, got %v", statuses[1].Details)
	}
}

func TestRunValidatesBeforeApplying(t *testing.T) {
	steps := []Filter{
		NewExcludeFile(writeFile(t, "alice.txt\n")),
		NewMinimumScore(150),
	}

	c := batch()
	err := Run(context.Background(), nil, steps, c)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if c.Len() != 4 {
		t.Fatalf("expected no filter to run, got %v", c.Names())
	}
}

func TestRunReportsMissingExcludeFile(t *testing.T) {
	steps := []Filter{NewExcludeFile(filepath.Join(t.TempDir(), "missing.txt"))}

	err := Run(context.Background(), nil, steps, batch())
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Run(ctx, nil, Default(Config{MinimumMatchScore: 10}), batch())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
