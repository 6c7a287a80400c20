package scoring

import (
	"fmt"
	"strings"
)

// Summarize renders the signals into a short sentence. Band thresholds are
// inclusive: a score of exactly 80 is an excellent match.
func Summarize(score, matched, missing, experience int) string {
	var b strings.Builder

	switch {
	case score >= 80:
		fmt.Fprintf(&b, "Excellent match! %d key skills matched.", matched)
	case score >= 60:
		fmt.Fprintf(&b, "Good match with %d skills found.", matched)
	case score >= 40:
		fmt.Fprintf(&b, "Moderate match. %d skills aligned, but %d important skills missing.", matched, missing)
	default:
		fmt.Fprintf(&b, "Limited match. Only %d skills found.", matched)
	}

	if experience > 0 && experience < FullMatch {
		switch {
		case experience >= 70:
			b.WriteString(" Experience level is close to requirements.")
		case experience >= 40:
			b.WriteString(" Some experience gap exists.")
		default:
			b.WriteString(" Significant experience gap noted.")
		}
	}

	if missing > 0 {
		if score >= 60 {
			fmt.Fprintf(&b, " Consider adding %d missing %s.", missing, plural(missing, "skill"))
		} else {
			b.WriteString(" Consider upskilling in missing areas.")
		}
	}

	return b.String()
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
