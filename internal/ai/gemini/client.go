package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/skillmatch/internal/ai"
	"github.com/spigell/skillmatch/internal/logger"
	"github.com/spigell/skillmatch/internal/util"
)

const (
	Provider     = "gemini"
	DefaultModel = "gemini-2.5-flash"

	defaultMaxLogLength = 200
)

var errEmptyResponse = errors.New("gemini api returned empty response")

// models is the subset of *genai.Models used by the advisor.
type models interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Advisor implements ai.Advisor on top of the Gemini API.
type Advisor struct {
	models    models
	model     string
	logger    *zap.Logger
	maxLogLen int
}

// New creates a Gemini advisor. A blank apiKey is not an error here: the
// advisor is returned unconfigured and every Advise call fails with an
// ai.ConfigurationError without touching the network.
func New(ctx context.Context, apiKey, model string, log *zap.Logger, maxLogLength int) (*Advisor, error) {
	if model = strings.TrimSpace(model); model == "" {
		model = DefaultModel
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	a := &Advisor{
		model:     model,
		logger:    logger.WithCommonFields(log, Provider, model),
		maxLogLen: maxLogLength,
	}

	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		a.logger.Warn("gemini api key is not set; advisory calls will fail")
		return a, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	a.models = client.Models

	return a, nil
}

// Advise sends prompt to Gemini, with systemMessage as the system
// instruction when set, and returns the concatenated text parts.
func (a *Advisor) Advise(ctx context.Context, prompt, systemMessage string) (string, error) {
	if a == nil || a.models == nil {
		return "", &ai.ConfigurationError{Provider: Provider, Err: ai.ErrNotConfigured}
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	var config *genai.GenerateContentConfig
	if system := strings.TrimSpace(systemMessage); system != "" {
		config = &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: system}}},
		}
	}

	a.logger.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", util.TruncateForLog(prompt, a.maxLogLen)),
	)

	resp, err := a.models.GenerateContent(ctx, a.model, genai.Text(prompt), config)
	if err != nil {
		upErr := &ai.UpstreamError{Provider: Provider, Err: fmt.Errorf("generate content: %w", err)}
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			upErr.Status = apiErr.Code
		}
		return "", upErr
	}

	output := responseText(resp)
	if output == "" {
		return "", &ai.UpstreamError{Provider: Provider, Err: errEmptyResponse}
	}

	a.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(output)),
		zap.String("response_preview", util.TruncateForLog(output, a.maxLogLen)),
	)

	return output, nil
}

// Model returns the configured model name.
func (a *Advisor) Model() string {
	if a == nil {
		return ""
	}
	return a.model
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	return strings.TrimSpace(builder.String())
}
