package backend

import (
	"context"
	"strings"

	"github.com/caseatlas/caseatlas/internal/transport"
	"github.com/caseatlas/caseatlas/pkg/errors"
)

// DefaultOpenAIBaseURL is the standard endpoint for the short-form
// backend's responses API.
const DefaultOpenAIBaseURL = "https://api.openai.com/v1"

// OpenAIBackend is the short-context backend speaking the single-line
// tab-separated protocol via an OpenAI-compatible responses API.
type OpenAIBackend struct {
	transport *transport.Client
	baseURL   string
	apiKey    string
	model     string
}

// NewOpenAIBackend creates the short-form backend. The base URL may
// point at any OpenAI-compatible server; empty selects the default.
func NewOpenAIBackend(apiKey, model, baseURL string) (*OpenAIBackend, error) {
	if apiKey == "" {
		return nil, &errors.ConfigError{Component: "openai", Message: "API key required"}
	}
	if model == "" {
		model = "gpt-4o"
	}
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}

	return &OpenAIBackend{
		transport: transport.New(&transport.BearerAuth{}),
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    apiKey,
		model:     model,
	}, nil
}

// Kind implements the Backend interface.
func (b *OpenAIBackend) Kind() Kind { return KindShortForm }

// Name implements the Backend interface.
func (b *OpenAIBackend) Name() string { return "openai/" + b.model }

// responsesRequest is the request body for the responses endpoint.
type responsesRequest struct {
	Model           string  `json:"model"`
	Instructions    string  `json:"instructions,omitempty"`
	Input           string  `json:"input"`
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"max_output_tokens,omitempty"`
}

// responsesResponse is the subset of the responses payload we consume.
type responsesResponse struct {
	Output []struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
}

// Call implements the Backend interface.
func (b *OpenAIBackend) Call(ctx context.Context, req Request) (string, error) {
	body := responsesRequest{
		Model:           b.model,
		Instructions:    req.Instructions,
		Input:           req.Document,
		Temperature:     0,
		MaxOutputTokens: req.MaxTokens,
	}

	resp, err := b.transport.PostJSON(ctx, b.baseURL+"/responses", b.apiKey, body)
	if err != nil {
		// Request never reached the server; let the retry policy decide.
		return "", &errors.BackendError{Backend: b.Name(), StatusCode: 503, Message: err.Error(), Err: err}
	}

	var decoded responsesResponse
	if err := transport.DecodeResponse(resp, b.Name(), &decoded); err != nil {
		return "", err
	}

	var out strings.Builder
	for _, item := range decoded.Output {
		for _, content := range item.Content {
			if content.Type == "output_text" {
				out.WriteString(content.Text)
			}
		}
	}

	return strings.TrimSpace(out.String()), nil
}
