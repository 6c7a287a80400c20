package skills

import (
	"reflect"
	"testing"
)

func TestMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		job     []string
		resume  []string
		matched []string
		missing []string
	}{
		{
			name:    "partial overlap",
			job:     []string{"python", "react"},
			resume:  []string{"python"},
			matched: []string{"python"},
			missing: []string{"react"},
		},
		{
			name:    "empty job",
			job:     nil,
			resume:  []string{"python"},
			matched: []string{},
			missing: []string{},
		},
		{
			name:    "fuzzy variants",
			job:     []string{"react", "node.js", "java"},
			resume:  []string{"reactjs", "nodejs", "javascript"},
			matched: []string{"react", "node.js"},
			missing: []string{"java"},
		},
		{
			name:    "job duplicates collapse in order",
			job:     []string{"sql", "excel", "sql"},
			resume:  []string{"excel"},
			matched: []string{"excel"},
			missing: []string{"sql"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			matched, missing := Match(tt.job, tt.resume)
			if !reflect.DeepEqual(matched, tt.matched) {
				t.Fatalf("matched: expected %q, got %q", tt.matched, matched)
			}
			if !reflect.DeepEqual(missing, tt.missing) {
				t.Fatalf("missing: expected %q, got %q", tt.missing, missing)
			}
		})
	}
}

func TestMatchPartitionsJobTokens(t *testing.T) {
	t.Parallel()

	job := []string{"python", "docker", "client service", "3+ years", "excel"}
	resume := []string{"docker", "3 years", "client services"}

	matched, missing := Match(job, resume)
	if len(matched)+len(missing) != len(job) {
		t.Fatalf("expected every job token to land in exactly one list: %q / %q", matched, missing)
	}

	inMatched := make(map[string]bool)
	for _, m := range matched {
		inMatched[m] = true
	}
	for _, m := range missing {
		if inMatched[m] {
			t.Fatalf("token %q is both matched and missing", m)
		}
	}
}

func TestSimilar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b   string
		expect bool
	}{
		{"react", "reactjs", true},
		{"manage", "managed", true},
		{"node.js", "nodejs", true},
		{"ci/cd", "CICD", true},
		{"3+ years", "3 years", true},
		{"java", "javascript", false},
		{"sql", "nosql", true},
		{"sql", "mysql", true},
		{"sql", "postgresql", false},
		{"excel", "python", false},
	}

	for _, tt := range tests {
		if got := Similar(tt.a, tt.b); got != tt.expect {
			t.Fatalf("Similar(%q, %q): expected %v, got %v", tt.a, tt.b, tt.expect, got)
		}
		if got := Similar(tt.b, tt.a); got != tt.expect {
			t.Fatalf("Similar(%q, %q): expected %v, got %v", tt.b, tt.a, tt.expect, got)
		}
	}
}
