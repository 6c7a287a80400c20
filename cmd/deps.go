package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/skillmatch/internal/ai"
	"github.com/spigell/skillmatch/internal/ai/gemini"
	"github.com/spigell/skillmatch/internal/ai/openrouter"
	"github.com/spigell/skillmatch/internal/analysis"
	"github.com/spigell/skillmatch/internal/logger"
	"github.com/spigell/skillmatch/internal/secrets"
	"github.com/spigell/skillmatch/internal/skills"
)

const (
	providerGemini     = gemini.Provider
	providerOpenRouter = openrouter.Provider

	geminiKeyEnv     = "GEMINI_API_KEY"
	openRouterKeyEnv = "OPENROUTER_API_KEY"

	stdinPath = "-"
)

func newLogger() (*zap.Logger, error) {
	return logger.New(logger.Options{
		JSON:  viper.GetBool("json"),
		Debug: viper.GetBool("debug"),
	})
}

func newExtractor(cfg CatalogConfig) *skills.Extractor {
	catalog := skills.DefaultConfig().With(skills.CatalogConfig{
		AllowedShort: cfg.AllowedShort,
		SingleWord:   cfg.ExtraSkills,
		Blacklist:    cfg.ExtraBlacklist,
	})
	return skills.NewExtractor(skills.NewCatalog(catalog))
}

// newAdvisor builds the configured advisory client. A missing API key is
// tolerated: the advisor then fails every call with ai.ConfigurationError.
func newAdvisor(ctx context.Context, cfg AdvisoryConfig, log *zap.Logger) (ai.Advisor, error) {
	switch provider := strings.ToLower(strings.TrimSpace(cfg.Provider)); provider {
	case "", providerGemini:
		apiKey, err := secrets.Optional(secrets.Source{
			Name:  "gemini api key",
			File:  cfg.Gemini.APIKeyFile,
			Value: cfg.Gemini.APIKey,
			Env:   geminiKeyEnv,
		})
		if err != nil {
			return nil, err
		}
		return gemini.New(ctx, apiKey, cfg.Gemini.Model, log, cfg.MaxLogLength)

	case providerOpenRouter:
		apiKey, err := secrets.Optional(secrets.Source{
			Name:  "openrouter api key",
			File:  cfg.OpenRouter.APIKeyFile,
			Value: cfg.OpenRouter.APIKey,
			Env:   openRouterKeyEnv,
		})
		if err != nil {
			return nil, err
		}
		return openrouter.New(openrouter.Config{
			APIKey:       apiKey,
			Model:        cfg.OpenRouter.Model,
			BaseURL:      cfg.OpenRouter.BaseURL,
			MaxLogLength: cfg.MaxLogLength,
		}, log), nil

	default:
		return nil, fmt.Errorf("unsupported advisory provider: %s", cfg.Provider)
	}
}

// newEngine wires the extractor and, when withAdvisor is set, the advisory
// client into an analysis engine.
func newEngine(ctx context.Context, config *Config, log *zap.Logger, observer analysis.Observer, withAdvisor bool) (*analysis.Engine, error) {
	opts := analysis.Options{
		Timeout:       config.Advisory.Timeout,
		TopSkills:     config.Advisory.TopSkills,
		ExcerptLength: config.Advisory.ExcerptLength,
		Logger:        log,
		Observer:      observer,
	}

	if withAdvisor {
		advisor, err := newAdvisor(ctx, config.Advisory, log)
		if err != nil {
			return nil, fmt.Errorf("creating advisor: %w", err)
		}
		opts.Advisor = advisor
	}

	return analysis.New(newExtractor(config.Catalog), opts), nil
}

// readText reads a whole file, or stdin when path is "-".
func readText(path string, stdin io.Reader) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("path is required")
	}

	if path == stdinPath {
		if stdin == nil {
			return "", fmt.Errorf("stdin is not available here")
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
