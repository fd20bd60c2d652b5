package backend

import (
	"context"
	stderrors "errors"
	"strings"

	"google.golang.org/genai"

	"github.com/caseatlas/caseatlas/pkg/errors"
)

// GeminiBackend is the long-context backend backed by the Gemini API.
// It accepts whole judgments in a single call and answers in the marker
// protocol.
type GeminiBackend struct {
	client *genai.Client
	model  string
}

// NewGeminiBackend creates the long-form backend. The API key is
// required; the model defaults to a long-context Gemini model when
// empty.
func NewGeminiBackend(ctx context.Context, apiKey, model string) (*GeminiBackend, error) {
	if apiKey == "" {
		return nil, &errors.ConfigError{Component: "gemini", Message: "API key required"}
	}
	if model == "" {
		model = "gemini-2.5-pro"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &errors.ConfigError{Component: "gemini", Message: "creating client", Err: err}
	}

	return &GeminiBackend{client: client, model: model}, nil
}

// Kind implements the Backend interface.
func (b *GeminiBackend) Kind() Kind { return KindLongForm }

// Name implements the Backend interface.
func (b *GeminiBackend) Name() string { return "gemini/" + b.model }

// Call implements the Backend interface. Extraction runs at temperature
// zero so repeated runs over the same judgment are reproducible.
func (b *GeminiBackend) Call(ctx context.Context, req Request) (string, error) {
	prompt := req.Instructions
	if req.Document != "" {
		prompt = prompt + "\n\n" + req.Document
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0),
	}
	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}

	resp, err := b.client.Models.GenerateContent(ctx, b.model, genai.Text(prompt), config)
	if err != nil {
		return "", classifyGenAIError(b.Name(), err)
	}

	return strings.TrimSpace(resp.Text()), nil
}

// classifyGenAIError maps Gemini SDK errors onto the backend error
// taxonomy so retry policies can distinguish rate limiting from other
// failures.
func classifyGenAIError(name string, err error) error {
	var apiErr genai.APIError
	if stderrors.As(err, &apiErr) {
		return &errors.BackendError{
			Backend:    name,
			StatusCode: apiErr.Code,
			Message:    apiErr.Message,
			Err:        err,
		}
	}
	// Network-level failures have no status; treat as transient.
	return &errors.BackendError{Backend: name, StatusCode: 503, Message: err.Error(), Err: err}
}
