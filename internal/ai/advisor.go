// Package ai defines the contract for external text-generation services that
// produce advisory suggestions.
package ai

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotConfigured is wrapped by ConfigurationError when an advisor has no
// API key.
var ErrNotConfigured = errors.New("api key is not configured")

// Advisor sends a prompt with an optional system message to a text-generation
// service and returns its reply as opaque text.
type Advisor interface {
	Advise(ctx context.Context, prompt, systemMessage string) (string, error)
}

// ConfigurationError reports an advisor that cannot be used as configured.
// It is raised before any network call.
type ConfigurationError struct {
	Provider string
	Err      error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s advisor configuration: %v", e.Provider, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// UpstreamError reports a failed call to the advisory endpoint: transport
// failure, non-2xx status or an unusable payload.
type UpstreamError struct {
	Provider string
	Status   int
	Err      error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s advisor upstream (status %d): %v", e.Provider, e.Status, e.Err)
	}
	return fmt.Sprintf("%s advisor upstream: %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Outcome classifies the result of an advisory call for logs and metrics.
type Outcome string

const (
	OutcomeSuccess            Outcome = "success"
	OutcomeConfigurationError Outcome = "configuration_error"
	OutcomeUpstreamError      Outcome = "upstream_error"
	OutcomeTimeout            Outcome = "timeout"
)

// Classify maps an advisory error to its Outcome. Errors that are neither
// configuration nor timeout errors count as upstream errors.
func Classify(err error) Outcome {
	var cfgErr *ConfigurationError
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.As(err, &cfgErr):
		return OutcomeConfigurationError
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return OutcomeTimeout
	default:
		return OutcomeUpstreamError
	}
}
