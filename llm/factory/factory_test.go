package factory

import (
	"context"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/genbridge/genbridge/llm"
	"github.com/genbridge/genbridge/llm/codeassist"
	llmgoogle "github.com/genbridge/genbridge/llm/google"
	llmopenai "github.com/genbridge/genbridge/llm/openai"
)

type nopCaller struct{}

func (nopCaller) GenerateContent(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return nil, nil
}

func (nopCaller) GenerateContentStream(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error] {
	return func(func(*genai.GenerateContentResponse, error) bool) {}
}

func (nopCaller) CountTokens(context.Context, string, []*genai.Content) (*genai.CountTokensResponse, error) {
	return nil, nil
}

func TestNewUnsupportedAuthKind(t *testing.T) {
	tests := []struct {
		name     string
		authType llm.AuthType
	}{
		{"unknown value", llm.AuthType("magic-link")},
		{"unset value", llm.AuthType("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(context.Background(), &llm.GeneratorConfig{
				Model:    "m",
				AuthType: tt.authType,
			})

			require.Error(t, err)
			require.True(t, llm.IsUnsupportedAuth(err))
			assert.Contains(t, err.Error(), string(tt.authType), "the error names the offending value")
		})
	}
}

func TestNewRequiresConfig(t *testing.T) {
	_, err := New(context.Background(), nil)
	require.Error(t, err)

	var llmErr *llm.Error
	require.ErrorAs(t, err, &llmErr)
	assert.Equal(t, llm.ErrorTypeInvalidRequest, llmErr.Type)
}

func TestNewGeminiAPIKey(t *testing.T) {
	gen, err := New(context.Background(), &llm.GeneratorConfig{
		Model:    "gemini-2.5-pro",
		APIKey:   "test-key",
		AuthType: llm.AuthGeminiAPIKey,
	})
	require.NoError(t, err)
	assert.IsType(t, &llmgoogle.Client{}, gen)
}

func TestNewOpenAI(t *testing.T) {
	gen, err := New(context.Background(), &llm.GeneratorConfig{
		Model:    "gpt-4o",
		APIKey:   "test-key",
		AuthType: llm.AuthOpenAI,
	}, WithBaseURL("http://localhost:1/v1"))
	require.NoError(t, err)
	assert.IsType(t, &llmopenai.Client{}, gen)
}

func TestNewOpenAIWithoutCredentialFails(t *testing.T) {
	// A fallen-through resolution still dispatches, and the adapter
	// constructor is where the missing credential surfaces.
	_, err := New(context.Background(), &llm.GeneratorConfig{
		Model:    "gpt-4o",
		AuthType: llm.AuthOpenAI,
	})
	require.Error(t, err)
}

func TestNewLoginWithGoogle(t *testing.T) {
	gen, err := New(context.Background(), &llm.GeneratorConfig{
		Model:    "gemini-2.5-pro",
		AuthType: llm.AuthLoginWithGoogle,
	}, WithCodeAssistCaller(nopCaller{}))
	require.NoError(t, err)
	assert.IsType(t, &codeassist.Generator{}, gen)
}

func TestNewLoginWithGoogleRequiresCaller(t *testing.T) {
	_, err := New(context.Background(), &llm.GeneratorConfig{
		Model:    "gemini-2.5-pro",
		AuthType: llm.AuthLoginWithGoogle,
	})
	require.Error(t, err)

	var llmErr *llm.Error
	require.ErrorAs(t, err, &llmErr)
	assert.Equal(t, llm.ErrorTypeInvalidRequest, llmErr.Type)
}
