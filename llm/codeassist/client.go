// Package codeassist adapts the interactive-login (Code Assist) backend to
// the llm.ContentGenerator contract. The login/device-code flow and its
// transport are external collaborators: they are injected as a Caller and
// this package only adapts the call surface. Outbound headers are delegated
// to that transport as well.
package codeassist

import (
	"context"
	"iter"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/genbridge/genbridge/llm"
)

// Provider identifies this backend in wrapped errors.
const Provider = "codeassist"

// Caller is the transport behind the interactive-login flow. It already
// speaks the canonical schema over the Code Assist wire protocol.
type Caller interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	GenerateContentStream(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error]
	CountTokens(ctx context.Context, model string, contents []*genai.Content) (*genai.CountTokensResponse, error)
}

// Generator implements llm.ContentGenerator over an injected Caller.
type Generator struct {
	caller Caller
	model  string
	logger zerolog.Logger
}

// NewGenerator creates a Generator. The caller is required.
func NewGenerator(caller Caller, model string, logger zerolog.Logger) (*Generator, error) {
	if caller == nil {
		return nil, llm.NewInvalidRequestError("codeassist: caller is required")
	}
	return &Generator{caller: caller, model: model, logger: logger}, nil
}

// GenerateContent implements llm.ContentGenerator.
func (g *Generator) GenerateContent(ctx context.Context, req *llm.Request) (*genai.GenerateContentResponse, error) {
	model, err := g.resolveModel(req)
	if err != nil {
		return nil, err
	}
	resp, err := g.caller.GenerateContent(ctx, model, req.Contents, req.Config)
	if err != nil {
		return nil, llm.NewBackendError(Provider, "generate content failed", err)
	}
	return resp, nil
}

// GenerateContentStream implements llm.ContentGenerator.
func (g *Generator) GenerateContentStream(ctx context.Context, req *llm.Request) (llm.Stream, error) {
	model, err := g.resolveModel(req)
	if err != nil {
		return nil, err
	}
	seq := g.caller.GenerateContentStream(ctx, model, req.Contents, req.Config)
	return llm.NewSeqStream(wrapSeqErrors(seq)), nil
}

// CountTokens implements llm.ContentGenerator using the transport's native
// counting endpoint.
func (g *Generator) CountTokens(ctx context.Context, req *llm.Request) (*genai.CountTokensResponse, error) {
	model, err := g.resolveModel(req)
	if err != nil {
		return nil, err
	}
	resp, err := g.caller.CountTokens(ctx, model, req.Contents)
	if err != nil {
		return nil, llm.NewBackendError(Provider, "count tokens failed", err)
	}
	return resp, nil
}

// EmbedContent implements llm.ContentGenerator. The Code Assist backend has
// no embeddings endpoint.
func (g *Generator) EmbedContent(ctx context.Context, req *llm.EmbedRequest) (*genai.EmbedContentResponse, error) {
	return nil, llm.NewBackendError(Provider, "embedding is not supported by the code assist backend", nil)
}

func (g *Generator) resolveModel(req *llm.Request) (string, error) {
	if req == nil {
		return "", llm.NewInvalidRequestError("codeassist: request is required")
	}
	model := req.Model
	if model == "" {
		model = g.model
	}
	if model == "" {
		return "", llm.NewInvalidRequestError("codeassist: model is required")
	}
	return model, nil
}

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

var _ llm.ContentGenerator = (*Generator)(nil)
