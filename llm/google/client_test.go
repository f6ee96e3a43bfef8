package google

import (
	"context"
	"errors"
	"iter"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/genbridge/genbridge/llm"
)

func TestNewClientManaged(t *testing.T) {
	client, err := NewClient(context.Background(), Config{
		APIKey: "test-key",
		Model:  "gemini-2.5-pro",
		Logger: zerolog.Nop(),
	})
	require.NoError(t, err)
	require.NotNil(t, client)
}

func TestResolveModel(t *testing.T) {
	client := &Client{model: "default-model"}

	tests := []struct {
		name    string
		req     *llm.Request
		want    string
		wantErr bool
	}{
		{"request model wins", &llm.Request{Model: "override"}, "override", false},
		{"falls back to client default", &llm.Request{}, "default-model", false},
		{"nil request", nil, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, err := client.resolveModel(tt.req)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, model)
		})
	}
}

func TestResolveModelRequiresSomeModel(t *testing.T) {
	client := &Client{}
	_, err := client.resolveModel(&llm.Request{})
	require.Error(t, err)

	var llmErr *llm.Error
	require.ErrorAs(t, err, &llmErr)
	assert.Equal(t, llm.ErrorTypeInvalidRequest, llmErr.Type)
}

func TestWrapSeqErrors(t *testing.T) {
	cause := errors.New("quota exceeded")
	seq := iter.Seq2[*genai.GenerateContentResponse, error](func(yield func(*genai.GenerateContentResponse, error) bool) {
		if !yield(&genai.GenerateContentResponse{}, nil) {
			return
		}
		yield(nil, cause)
	})

	var chunks int
	var got error
	for resp, err := range wrapSeqErrors(seq) {
		if err != nil {
			got = err
			break
		}
		require.NotNil(t, resp)
		chunks++
	}

	assert.Equal(t, 1, chunks)
	require.Error(t, got)
	assert.True(t, llm.IsBackendError(got))
	assert.ErrorIs(t, got, cause)

	var llmErr *llm.Error
	require.ErrorAs(t, got, &llmErr)
	assert.Equal(t, Provider, llmErr.Provider)
}

func TestWrapSeqErrorsStopsWhenConsumerStops(t *testing.T) {
	var produced int
	seq := iter.Seq2[*genai.GenerateContentResponse, error](func(yield func(*genai.GenerateContentResponse, error) bool) {
		for {
			produced++
			if !yield(&genai.GenerateContentResponse{}, nil) {
				return
			}
		}
	})

	for range wrapSeqErrors(seq) {
		break
	}
	assert.Equal(t, 1, produced, "abandoning the loop must stop the producer")
}
