// Package analysis runs the deterministic resume-to-job matching pipeline and,
// on request, enriches its result with advisory suggestions.
package analysis

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/skillmatch/internal/ai"
	"github.com/spigell/skillmatch/internal/logger"
	"github.com/spigell/skillmatch/internal/scoring"
	"github.com/spigell/skillmatch/internal/skills"
)

// PlaceholderSuggestion replaces advisory text whenever the advisor cannot
// deliver.
const PlaceholderSuggestion = "AI suggestions currently unavailable. Try again later."

const (
	DefaultTimeout       = 30 * time.Second
	DefaultTopSkills     = 5
	DefaultExcerptLength = 500

	tipsExcerptLength = 400
)

// ErrEmptyInput is returned when the job description or resume text is blank.
var ErrEmptyInput = errors.New("job_description and resume_text are required")

// Result is the outcome of one analysis. AISuggestions is nil unless advisory
// suggestions were requested.
type Result struct {
	MatchScore      int      `json:"match_score"`
	MatchedSkills   []string `json:"matched_skills"`
	MissingSkills   []string `json:"missing_skills"`
	Summary         string   `json:"summary"`
	KeywordDensity  float64  `json:"keyword_density"`
	ExperienceMatch int      `json:"experience_match"`
	AISuggestions   *string  `json:"ai_suggestions"`
}

// Observer receives timings and outcomes, typically for metrics.
type Observer interface {
	ObserveAnalysis(elapsed time.Duration, r *Result)
	ObserveAdvisory(outcome ai.Outcome, elapsed time.Duration)
}

// Options configures an Engine. Zero values fall back to defaults; a nil
// Advisor makes every advisory request yield the placeholder.
type Options struct {
	Advisor       ai.Advisor
	Timeout       time.Duration
	TopSkills     int
	ExcerptLength int
	Logger        *zap.Logger
	Observer      Observer
}

// Engine is safe for concurrent use; it holds no mutable state.
type Engine struct {
	extractor  *skills.Extractor
	advisor    ai.Advisor
	timeout    time.Duration
	topSkills  int
	excerptLen int
	logger     *zap.Logger
	observer   Observer
}

// New creates an Engine. A nil extractor uses the default catalog.
func New(extractor *skills.Extractor, opts Options) *Engine {
	if extractor == nil {
		extractor = skills.NewExtractor(nil)
	}

	e := &Engine{
		extractor:  extractor,
		advisor:    opts.Advisor,
		timeout:    opts.Timeout,
		topSkills:  opts.TopSkills,
		excerptLen: opts.ExcerptLength,
		logger:     logger.OrNop(opts.Logger),
		observer:   opts.Observer,
	}

	if e.timeout <= 0 {
		e.timeout = DefaultTimeout
	}
	if e.topSkills <= 0 {
		e.topSkills = DefaultTopSkills
	}
	if e.excerptLen <= 0 {
		e.excerptLen = DefaultExcerptLength
	}

	return e
}

// Match runs the deterministic pipeline only. It performs no I/O.
func (e *Engine) Match(job, resume string) (*Result, error) {
	if strings.TrimSpace(job) == "" || strings.TrimSpace(resume) == "" {
		return nil, ErrEmptyInput
	}

	start := time.Now()

	jobTokens := e.extractor.Extract(job)
	resumeTokens := e.extractor.Extract(resume)
	matched, missing := skills.Match(jobTokens, resumeTokens)

	score := scoring.MatchScore(len(matched), len(jobTokens))
	experience := scoring.ExperienceMatch(job, resume)

	r := &Result{
		MatchScore:      score,
		MatchedSkills:   matched,
		MissingSkills:   missing,
		Summary:         scoring.Summarize(score, len(matched), len(missing), experience),
		KeywordDensity:  scoring.KeywordDensity(matched, resume),
		ExperienceMatch: experience,
	}

	elapsed := time.Since(start)
	e.logger.Debug("analysis completed",
		append(logger.AnalysisFields(r.MatchScore, len(matched), len(missing), r.ExperienceMatch, r.KeywordDensity),
			zap.Int("job_tokens", len(jobTokens)),
			zap.Int("resume_tokens", len(resumeTokens)),
			zap.Duration("elapsed", elapsed),
		)...,
	)
	if e.observer != nil {
		e.observer.ObserveAnalysis(elapsed, r)
	}

	return r, nil
}

// Analyze runs the deterministic pipeline and, when useAdvisory is set, asks
// the advisor for suggestions. Advisory failures never surface as errors and
// never change the deterministic fields; they yield PlaceholderSuggestion.
func (e *Engine) Analyze(ctx context.Context, job, resume string, useAdvisory bool) (*Result, error) {
	r, err := e.Match(job, resume)
	if err != nil {
		return nil, err
	}

	if !useAdvisory {
		return r, nil
	}

	prompt := buildAnalysisPrompt(job, resume, r, e.topSkills, e.excerptLen)
	suggestion := e.advise(ctx, prompt, analysisSystemMessage)
	r.AISuggestions = &suggestion

	return r, nil
}

// Suggest asks the advisor for three short tips based on the raw texts alone.
func (e *Engine) Suggest(ctx context.Context, job, resume string) (string, error) {
	if strings.TrimSpace(job) == "" || strings.TrimSpace(resume) == "" {
		return "", ErrEmptyInput
	}

	return e.advise(ctx, buildTipsPrompt(job, resume, tipsExcerptLength), tipsSystemMessage), nil
}

func (e *Engine) advise(ctx context.Context, prompt, system string) string {
	if e.advisor == nil {
		e.logger.Warn("advisory requested but no advisor is configured")
		e.observeAdvisory(ai.OutcomeConfigurationError, 0)
		return PlaceholderSuggestion
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	start := time.Now()
	text, err := e.advisor.Advise(ctx, prompt, system)
	elapsed := time.Since(start)

	outcome := ai.Classify(err)
	e.observeAdvisory(outcome, elapsed)

	if err != nil {
		e.logger.Warn("advisory suggestions unavailable",
			zap.String(logger.FieldOutcome, string(outcome)),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		return PlaceholderSuggestion
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return PlaceholderSuggestion
	}

	e.logger.Debug("advisory suggestions received",
		zap.String(logger.FieldOutcome, string(outcome)),
		zap.Duration("elapsed", elapsed),
	)

	return text
}

func (e *Engine) observeAdvisory(outcome ai.Outcome, elapsed time.Duration) {
	if e.observer != nil {
		e.observer.ObserveAdvisory(outcome, elapsed)
	}
}
