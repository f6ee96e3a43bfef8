package llm

import (
	"context"
	"os"
)

// ResolveOptions carries the inputs to config resolution. Environment
// lookups go through LookupEnv so the resolution logic stays free of
// ambient global state and is testable by injection.
type ResolveOptions struct {
	// Model is the caller-specified model name. Optional.
	Model string

	// AuthType selects the credential flow. Required.
	AuthType AuthType

	// SessionModel, when set, returns the current model of a live session
	// and takes precedence over Model.
	SessionModel func() string

	// EffectiveModel, when set, is the probe consulted for API-key-based
	// Google backends. Its return value is authoritative and may downgrade
	// the requested model (e.g. due to quota).
	EffectiveModel func(ctx context.Context, apiKey, model string) string

	// LookupEnv overrides environment lookup. Defaults to os.Getenv.
	LookupEnv func(key string) string
}

// ResolveGeneratorConfig derives a concrete GeneratorConfig from caller
// hints, environment-provided credentials and the default model.
//
// The effective model is the session override if present, else the caller
// model, else DefaultModel. The interactive-login kind returns immediately
// with no credential validation. The gemini-api-key and vertex-ai kinds
// attach their environment credential when present and replace the model
// with the effective-model probe's answer. The openai kind attaches its
// credential with no probe. When a kind's required environment values are
// incomplete the resolver falls through and returns the configuration with
// the model set, no credential, and the auth kind preserved; downstream use
// may still fail.
func ResolveGeneratorConfig(ctx context.Context, opts ResolveOptions) *GeneratorConfig {
	getenv := opts.LookupEnv
	if getenv == nil {
		getenv = os.Getenv
	}

	model := opts.Model
	if opts.SessionModel != nil {
		if m := opts.SessionModel(); m != "" {
			model = m
		}
	}
	if model == "" {
		model = DefaultModel
	}

	cfg := &GeneratorConfig{
		Model:    model,
		AuthType: opts.AuthType,
	}

	if opts.AuthType == AuthLoginWithGoogle {
		return cfg
	}

	geminiKey := getenv(EnvGeminiAPIKey)
	googleKey := getenv(EnvGoogleAPIKey)
	project := getenv(EnvGoogleCloudProject)
	location := getenv(EnvGoogleCloudLocation)
	openaiKey := getenv(EnvOpenAIAPIKey)

	switch {
	case opts.AuthType == AuthGeminiAPIKey && geminiKey != "":
		cfg.APIKey = geminiKey
		cfg.Model = effectiveModel(ctx, opts, geminiKey, model)

	case opts.AuthType == AuthVertexAI && googleKey != "" && project != "" && location != "":
		cfg.APIKey = googleKey
		cfg.VertexAI = true
		cfg.Model = effectiveModel(ctx, opts, googleKey, model)

	case opts.AuthType == AuthOpenAI && openaiKey != "":
		cfg.APIKey = openaiKey
	}

	return cfg
}

func effectiveModel(ctx context.Context, opts ResolveOptions, apiKey, model string) string {
	if opts.EffectiveModel == nil {
		return model
	}
	return opts.EffectiveModel(ctx, apiKey, model)
}
