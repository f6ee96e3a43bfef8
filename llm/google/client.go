// Package google adapts the managed Gemini API and its Vertex-hosted
// flavor to the llm.ContentGenerator contract. The underlying genai client
// already speaks the canonical schema, so the adapter is a passthrough that
// selects the backend flavor at construction, stamps the outbound
// user-agent, and wraps failures with the backend identity.
package google

import (
	"context"
	"iter"
	"net/http"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/genbridge/genbridge/llm"
)

// Provider identifies this backend in wrapped errors.
const Provider = "google"

// Client implements llm.ContentGenerator for both Google backends.
type Client struct {
	client *genai.Client
	model  string
	logger zerolog.Logger
}

// Config carries the construction parameters for a Client.
type Config struct {
	// APIKey authenticates against the managed API, or enables express
	// mode on Vertex when no project is configured.
	APIKey string

	// VertexAI selects the cloud-hosted flavor.
	VertexAI bool

	// Project and Location bind the Vertex flavor to a cloud project. When
	// unset the SDK falls back to its own environment discovery.
	Project  string
	Location string

	// Model is the default model when the request has none.
	Model string

	Logger zerolog.Logger
}

// NewClient constructs the underlying genai client for the configured
// backend flavor. Opening credential contexts is the SDK's business; this
// only shapes its configuration.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	clientConfig := &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			Headers: http.Header{"User-Agent": []string{llm.UserAgent()}},
		},
	}
	if cfg.VertexAI {
		clientConfig.Backend = genai.BackendVertexAI
		clientConfig.Project = cfg.Project
		clientConfig.Location = cfg.Location
		if cfg.Project == "" {
			// Express mode: Vertex with an API key and no project binding.
			clientConfig.APIKey = cfg.APIKey
		}
	} else {
		clientConfig.APIKey = cfg.APIKey
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, llm.NewBackendError(Provider, "creating genai client failed", err)
	}
	return &Client{
		client: client,
		model:  cfg.Model,
		logger: cfg.Logger,
	}, nil
}

// GenerateContent implements llm.ContentGenerator.
func (c *Client) GenerateContent(ctx context.Context, req *llm.Request) (*genai.GenerateContentResponse, error) {
	model, err := c.resolveModel(req)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Models.GenerateContent(ctx, model, req.Contents, req.Config)
	if err != nil {
		return nil, llm.NewBackendError(Provider, "generate content failed", err)
	}
	return resp, nil
}

// GenerateContentStream implements llm.ContentGenerator. The SDK's chunk
// sequence is wrapped into a pull-driven Stream; closing the stream stops
// the sequence, releasing the transport at its next suspension point.
func (c *Client) GenerateContentStream(ctx context.Context, req *llm.Request) (llm.Stream, error) {
	model, err := c.resolveModel(req)
	if err != nil {
		return nil, err
	}
	seq := c.client.Models.GenerateContentStream(ctx, model, req.Contents, req.Config)
	return llm.NewSeqStream(wrapSeqErrors(seq)), nil
}

// CountTokens implements llm.ContentGenerator using the native endpoint.
func (c *Client) CountTokens(ctx context.Context, req *llm.Request) (*genai.CountTokensResponse, error) {
	model, err := c.resolveModel(req)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Models.CountTokens(ctx, model, req.Contents, nil)
	if err != nil {
		return nil, llm.NewBackendError(Provider, "count tokens failed", err)
	}
	return resp, nil
}

// EmbedContent implements llm.ContentGenerator.
func (c *Client) EmbedContent(ctx context.Context, req *llm.EmbedRequest) (*genai.EmbedContentResponse, error) {
	if req == nil {
		return nil, llm.NewInvalidRequestError("google: request is required")
	}
	model := req.Model
	if model == "" {
		model = llm.DefaultEmbeddingModel
	}
	resp, err := c.client.Models.EmbedContent(ctx, model, req.Contents, req.Config)
	if err != nil {
		return nil, llm.NewBackendError(Provider, "embed content failed", err)
	}
	return resp, nil
}

func (c *Client) resolveModel(req *llm.Request) (string, error) {
	if req == nil {
		return "", llm.NewInvalidRequestError("google: request is required")
	}
	model := req.Model
	if model == "" {
		model = c.model
	}
	if model == "" {
		return "", llm.NewInvalidRequestError("google: model is required")
	}
	return model, nil
}

// wrapSeqErrors converts chunk errors to backend errors without disturbing
// chunk order or pacing.
func wrapSeqErrors(seq iter.Seq2[*genai.GenerateContentResponse, error]) iter.Seq2[*genai.GenerateContentResponse, error] {
	return func(yield func(*genai.GenerateContentResponse, error) bool) {
		for resp, err := range seq {
			if err != nil {
				yield(nil, llm.NewBackendError(Provider, "streaming generate content failed", err))
				return
			}
			if !yield(resp, nil) {
				return
			}
		}
	}
}

var _ llm.ContentGenerator = (*Client)(nil)
