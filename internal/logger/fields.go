package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldProvider is the structured log field key for the AI provider name.
	FieldProvider = "ai_provider"
	// FieldModel is the structured log field key for the AI model identifier.
	FieldModel = "ai_model"
	// FieldOutcome is the structured log field key for an advisory outcome.
	FieldOutcome = "ai_outcome"
)

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

// CommonFields returns the provider and model fields, skipping blank values.
func CommonFields(provider, model string) []zap.Field {
	fields := make([]zap.Field, 0, 2)
	if v := strings.TrimSpace(provider); v != "" {
		fields = append(fields, zap.String(FieldProvider, v))
	}
	if v := strings.TrimSpace(model); v != "" {
		fields = append(fields, zap.String(FieldModel, v))
	}
	return fields
}

// WithCommonFields attaches the provider and model fields to l. A nil l
// becomes a no-op logger.
func WithCommonFields(l *zap.Logger, provider, model string) *zap.Logger {
	l = OrNop(l)
	fields := CommonFields(provider, model)
	if len(fields) == 0 {
		return l
	}
	return l.With(fields...)
}

// AnalysisFields describes a finished deterministic analysis.
func AnalysisFields(score, matched, missing, experience int, density float64) []zap.Field {
	return []zap.Field{
		zap.Int("match_score", score),
		zap.Int("matched_skills", matched),
		zap.Int("missing_skills", missing),
		zap.Int("experience_match", experience),
		zap.Float64("keyword_density", density),
	}
}
