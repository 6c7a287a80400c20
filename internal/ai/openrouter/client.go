// Package openrouter implements ai.Advisor against the OpenRouter chat
// completions API.
package openrouter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/spigell/skillmatch/internal/ai"
	"github.com/spigell/skillmatch/internal/logger"
	"github.com/spigell/skillmatch/internal/util"
)

const (
	Provider       = "openrouter"
	DefaultModel   = "openai/gpt-4o-mini"
	DefaultBaseURL = "https://openrouter.ai/api/v1"

	completionsPath     = "/chat/completions"
	contentPath         = "choices.0.message.content"
	errorMessagePath    = "error.message"
	defaultMaxLogLength = 200
	defaultTimeout      = 60 * time.Second
)

var errEmptyResponse = errors.New("openrouter returned empty response")

// Config configures an Advisor.
type Config struct {
	APIKey       string
	Model        string
	BaseURL      string
	MaxLogLength int
}

// Advisor implements ai.Advisor over OpenRouter.
type Advisor struct {
	client    *resty.Client
	apiKey    string
	model     string
	logger    *zap.Logger
	maxLogLen int
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
}

// New creates an OpenRouter advisor. As with the Gemini advisor, a blank API
// key yields an advisor whose calls fail with ai.ConfigurationError.
func New(cfg Config, log *zap.Logger) *Advisor {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	maxLogLen := cfg.MaxLogLength
	if maxLogLen <= 0 {
		maxLogLen = defaultMaxLogLength
	}

	a := &Advisor{
		client: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(defaultTimeout).
			SetHeader("Content-Type", "application/json"),
		apiKey:    strings.TrimSpace(cfg.APIKey),
		model:     model,
		logger:    logger.WithCommonFields(log, Provider, model),
		maxLogLen: maxLogLen,
	}

	if a.apiKey == "" {
		a.logger.Warn("openrouter api key is not set; advisory calls will fail")
	}

	return a
}

// Advise posts a chat completion with an optional system message and returns
// the first choice's content.
func (a *Advisor) Advise(ctx context.Context, prompt, systemMessage string) (string, error) {
	if a == nil || a.apiKey == "" {
		return "", &ai.ConfigurationError{Provider: Provider, Err: ai.ErrNotConfigured}
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	messages := make([]message, 0, 2)
	if system := strings.TrimSpace(systemMessage); system != "" {
		messages = append(messages, message{Role: "system", Content: system})
	}
	messages = append(messages, message{Role: "user", Content: prompt})

	a.logger.Debug("openrouter completion request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", util.TruncateForLog(prompt, a.maxLogLen)),
	)

	resp, err := a.client.R().
		SetContext(ctx).
		SetAuthToken(a.apiKey).
		SetBody(completionRequest{Model: a.model, Messages: messages}).
		Post(completionsPath)
	if err != nil {
		return "", &ai.UpstreamError{Provider: Provider, Err: fmt.Errorf("post completion: %w", err)}
	}

	body := resp.String()
	if resp.IsError() {
		reason := gjson.Get(body, errorMessagePath).String()
		if reason == "" {
			reason = util.TruncateForLog(body, a.maxLogLen)
		}
		return "", &ai.UpstreamError{Provider: Provider, Status: resp.StatusCode(), Err: errors.New(reason)}
	}

	if !gjson.Valid(body) {
		return "", &ai.UpstreamError{Provider: Provider, Status: resp.StatusCode(), Err: errors.New("malformed response payload")}
	}

	output := strings.TrimSpace(gjson.Get(body, contentPath).String())
	if output == "" {
		return "", &ai.UpstreamError{Provider: Provider, Status: resp.StatusCode(), Err: errEmptyResponse}
	}

	a.logger.Debug("openrouter completion response",
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
