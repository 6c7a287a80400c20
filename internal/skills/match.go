package skills

import "strings"

// maxFuzzyLengthDiff bounds how far two stripped tokens may differ in length
// and still be treated as the same skill when one contains the other.
const maxFuzzyLengthDiff = 2

// Match splits jobTokens into those present in resumeTokens, exactly or
// fuzzily, and those missing. Both results follow jobTokens order, contain no
// duplicates and are never nil.
func Match(jobTokens, resumeTokens []string) (matched, missing []string) {
	matched = make([]string, 0, len(jobTokens))
	missing = make([]string, 0, len(jobTokens))
	seen := make(map[string]struct{}, len(jobTokens))

	for _, job := range jobTokens {
		if _, ok := seen[job]; ok {
			continue
		}
		seen[job] = struct{}{}

		if found(job, resumeTokens) {
			matched = append(matched, job)
		} else {
			missing = append(missing, job)
		}
	}

	return matched, missing
}

func found(job string, resumeTokens []string) bool {
	for _, resume := range resumeTokens {
		if job == resume || Similar(job, resume) {
			return true
		}
	}
	return false
}

// Similar reports whether a and b name the same skill once every character
// other than ASCII letters and digits is removed: they are equal, or one
// contains the other and their lengths differ by at most two.
func Similar(a, b string) bool {
	s1, s2 := stripped(a), stripped(b)
	if s1 == s2 {
		return true
	}

	if !strings.Contains(s1, s2) && !strings.Contains(s2, s1) {
		return false
	}

	diff := len(s1) - len(s2)
	if diff < 0 {
		diff = -diff
	}
	return diff <= maxFuzzyLengthDiff
}

func stripped(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		if ('a' <= c && c <= 'z') || ('0' <= c && c <= '9') {
			out = append(out, c)
		}
	}
	return string(out)
}
