// Package factory is the composition root: it turns a resolved
// GeneratorConfig into exactly one backend adapter, dispatching purely on
// the auth kind.
package factory

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/genbridge/genbridge/llm"
	"github.com/genbridge/genbridge/llm/codeassist"
	"github.com/genbridge/genbridge/llm/google"
	"github.com/genbridge/genbridge/llm/openai"
)

// Option customizes adapter construction.
type Option func(*options)

type options struct {
	codeAssist   codeassist.Caller
	baseURL      string
	organization string
	project      string
	location     string
	httpClient   *http.Client
	logger       zerolog.Logger
}

// WithCodeAssistCaller injects the interactive-login transport. Required
// for the oauth-personal auth kind.
func WithCodeAssistCaller(caller codeassist.Caller) Option {
	return func(o *options) { o.codeAssist = caller }
}

// WithBaseURL overrides the OpenAI-compatible endpoint.
func WithBaseURL(baseURL string) Option {
	return func(o *options) { o.baseURL = baseURL }
}

// WithOrganization sets the OpenAI organization id.
func WithOrganization(org string) Option {
	return func(o *options) { o.organization = org }
}

// WithProject binds the Vertex flavor to a cloud project and location.
func WithProject(project, location string) Option {
	return func(o *options) {
		o.project = project
		o.location = location
	}
}

// WithHTTPClient overrides the HTTP client for the OpenAI-compatible
// backend.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) { o.httpClient = client }
}

// WithLogger sets the logger handed to the constructed adapter.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// New constructs the adapter for the configuration's auth kind. Dispatch is
// a pure function of cfg.AuthType; nothing persists across calls. An auth
// kind outside the closed enumeration is a terminal failure naming the
// offending value.
func New(ctx context.Context, cfg *llm.GeneratorConfig, opts ...Option) (llm.ContentGenerator, error) {
	if cfg == nil {
		return nil, llm.NewInvalidRequestError("factory: generator config is required")
	}
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	switch cfg.AuthType {
	case llm.AuthGeminiAPIKey, llm.AuthVertexAI:
		return google.NewClient(ctx, google.Config{
			APIKey:   cfg.APIKey,
			VertexAI: cfg.VertexAI || cfg.AuthType == llm.AuthVertexAI,
			Project:  o.project,
			Location: o.location,
			Model:    cfg.Model,
			Logger:   o.logger,
		})

	case llm.AuthLoginWithGoogle:
		return codeassist.NewGenerator(o.codeAssist, cfg.Model, o.logger)

	case llm.AuthOpenAI:
		return openai.NewClient(openai.Config{
			APIKey:       cfg.APIKey,
			BaseURL:      o.baseURL,
			Model:        cfg.Model,
			Organization: o.organization,
			HTTPClient:   o.httpClient,
			Logger:       o.logger,
		})

	default:
		return nil, llm.NewUnsupportedAuthError(string(cfg.AuthType))
	}
}
