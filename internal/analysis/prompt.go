package analysis

import (
	_ "embed"
	"strconv"
	"strings"

	"github.com/spigell/skillmatch/internal/util"
)

const (
	analysisSystemMessage = "You are a career coach. Provide SHORT, bullet-point suggestions. Each point should be ONE sentence max."
	tipsSystemMessage     = "You are a resume coach. Be extremely concise."
)

//go:embed prompt.md
var analysisTemplate string

//go:embed tips.md
var tipsTemplate string

func buildAnalysisPrompt(job, resume string, r *Result, topSkills, excerptLen int) string {
	return strings.NewReplacer(
		"{{MATCH_SCORE}}", strconv.Itoa(r.MatchScore),
		"{{MATCHED_SKILLS}}", strings.Join(head(r.MatchedSkills, topSkills), ", "),
		"{{MISSING_SKILLS}}", strings.Join(head(r.MissingSkills, topSkills), ", "),
		"{{JOB_EXCERPT}}", util.Truncate(job, excerptLen),
		"{{RESUME_EXCERPT}}", util.Truncate(resume, excerptLen),
	).Replace(analysisTemplate)
}

func buildTipsPrompt(job, resume string, excerptLen int) string {
	return strings.NewReplacer(
		"{{JOB_EXCERPT}}", util.Truncate(job, excerptLen),
		"{{RESUME_EXCERPT}}", util.Truncate(resume, excerptLen),
	).Replace(tipsTemplate)
}

func head(values []string, n int) []string {
	if n >= 0 && len(values) > n {
		return values[:n]
	}
	return values
}
