package gemini

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/skillmatch/internal/ai"
)

type callRecord struct {
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

type fakeModels struct {
	mu    sync.Mutex
	calls []callRecord
	resp  *genai.GenerateContentResponse
	err   error
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, callRecord{model: model, contents: contents, config: config})
	return f.resp, f.err
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: content}}}
}

func newTestAdvisor(m models) *Advisor {
	return &Advisor{models: m, model: "gemini-test", logger: zap.NewNop(), maxLogLen: defaultMaxLogLength}
}

func TestAdviseSendsSystemInstruction(t *testing.T) {
	fake := &fakeModels{resp: textResponse("1. Add Docker.", " ", "2. Quantify results.")}
	advisor := newTestAdvisor(fake)

	output, err := advisor.Advise(context.Background(), "  analyse this  ", "You are a career coach.")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if output != "1. Add Docker.\n2. Quantify results." {
		t.Fatalf("unexpected output: %q", output)
	}

	if len(fake.calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(fake.calls))
	}

	call := fake.calls[0]
	if call.model != "gemini-test" {
		t.Fatalf("unexpected model: %q", call.model)
	}
	if call.config == nil || call.config.SystemInstruction == nil {
		t.Fatalf("expected system instruction to be set")
	}
	if got := call.config.SystemInstruction.Parts[0].Text; got != "You are a career coach." {
		t.Fatalf("unexpected system instruction: %q", got)
	}
	if got := call.contents[0].Parts[0].Text; got != "analyse this" {
		t.Fatalf("unexpected prompt: %q", got)
	}
}

func TestAdviseWithoutSystemMessage(t *testing.T) {
	fake := &fakeModels{resp: textResponse("ok")}
	advisor := newTestAdvisor(fake)

	if _, err := advisor.Advise(context.Background(), "prompt", ""); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if fake.calls[0].config != nil {
		t.Fatalf("expected no config without system message")
	}
}

func TestAdviseWithoutAPIKey(t *testing.T) {
	advisor, err := New(context.Background(), "  ", "", zap.NewNop(), 0)
	if err != nil {
		t.Fatalf("expected unconfigured advisor, got error %v", err)
	}

	if advisor.Model() != DefaultModel {
		t.Fatalf("expected default model, got %q", advisor.Model())
	}

	_, err = advisor.Advise(context.Background(), "prompt", "")
	var cfgErr *ai.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if !errors.Is(err, ai.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestAdviseUpstreamErrors(t *testing.T) {
	t.Run("api error keeps status", func(t *testing.T) {
		fake := &fakeModels{err: genai.APIError{Code: http.StatusTooManyRequests, Status: "RESOURCE_EXHAUSTED"}}

		_, err := newTestAdvisor(fake).Advise(context.Background(), "prompt", "sys")
		var upErr *ai.UpstreamError
		if !errors.As(err, &upErr) {
			t.Fatalf("expected upstream error, got %v", err)
		}
		if upErr.Status != http.StatusTooManyRequests {
			t.Fatalf("expected status 429, got %d", upErr.Status)
		}
		if len(fake.calls) != 1 {
			t.Fatalf("expected a single attempt, got %d", len(fake.calls))
		}
	})

	t.Run("empty response", func(t *testing.T) {
		fake := &fakeModels{resp: textResponse("   ")}

		_, err := newTestAdvisor(fake).Advise(context.Background(), "prompt", "")
		if !errors.Is(err, errEmptyResponse) {
			t.Fatalf("expected empty response error, got %v", err)
		}
		if ai.Classify(err) != ai.OutcomeUpstreamError {
			t.Fatalf("expected upstream classification")
		}
	})

	t.Run("deadline", func(t *testing.T) {
		fake := &fakeModels{err: context.DeadlineExceeded}

		_, err := newTestAdvisor(fake).Advise(context.Background(), "prompt", "")
		if ai.Classify(err) != ai.OutcomeTimeout {
			t.Fatalf("expected timeout classification, got %v", err)
		}
	})
}

func TestAdviseRejectsEmptyPrompt(t *testing.T) {
	fake := &fakeModels{resp: textResponse("ok")}

	if _, err := newTestAdvisor(fake).Advise(context.Background(), "   ", ""); err == nil {
		t.Fatal("expected error for empty prompt")
	}
	if len(fake.calls) != 0 {
		t.Fatalf("expected no calls, got %d", len(fake.calls))
	}
}
