package codeassist

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

// fakeCaller records the model it was invoked with and replays canned
// responses.
type fakeCaller struct {
	model     string
	resp      *genai.GenerateContentResponse
	chunks    []*genai.GenerateContentResponse
	count     *genai.CountTokensResponse
	err       error
	lastModel string
}

func (f *fakeCaller) GenerateContent(_ context.Context, model string, _ []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.lastModel = model
	return f.resp, f.err
}

func (f *fakeCaller) GenerateContentStream(_ context.Context, model string, _ []*genai.Content, _ *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error] {
	f.lastModel = model
	return func(yield func(*genai.GenerateContentResponse, error) bool) {
		for _, chunk := range f.chunks {
			if !yield(chunk, nil) {
				return
			}
		}
		if f.err != nil {
			yield(nil, f.err)
		}
	}
}

func (f *fakeCaller) CountTokens(_ context.Context, model string, _ []*genai.Content) (*genai.CountTokensResponse, error) {
	f.lastModel = model
	return f.count, f.err
}

func TestNewGeneratorRequiresCaller(t *testing.T) {
	_, err := NewGenerator(nil, "m", zerolog.Nop())
	require.Error(t, err)

	var llmErr *llm.Error
	require.ErrorAs(t, err, &llmErr)
	assert.Equal(t, llm.ErrorTypeInvalidRequest, llmErr.Type)
}

func TestGenerateContentDelegates(t *testing.T) {
	caller := &fakeCaller{resp: &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: llm.NewModelContent("hi")}},
	}}
	gen, err := NewGenerator(caller, "default-model", zerolog.Nop())
	require.NoError(t, err)

	resp, err := gen.GenerateContent(context.Background(), &llm.Request{
		Contents: []*genai.Content{llm.NewUserContent("hello")},
	})
	require.NoError(t, err)
	assert.Equal(t, "hi", llm.Text(resp))
	assert.Equal(t, "default-model", caller.lastModel)
}

func TestGenerateContentWrapsCallerError(t *testing.T) {
	caller := &fakeCaller{err: errors.New("transport down")}
	gen, err := NewGenerator(caller, "m", zerolog.Nop())
	require.NoError(t, err)

	_, err = gen.GenerateContent(context.Background(), &llm.Request{})
	require.Error(t, err)
	require.True(t, llm.IsBackendError(err))

	var llmErr *llm.Error
	require.ErrorAs(t, err, &llmErr)
	assert.Equal(t, Provider, llmErr.Provider)
}

func TestGenerateContentStreamDelegates(t *testing.T) {
	caller := &fakeCaller{chunks: []*genai.GenerateContentResponse{
		{Candidates: []*genai.Candidate{{Content: llm.NewModelContent("He")}}},
		{Candidates: []*genai.Candidate{{Content: llm.NewModelContent("Hello")}}},
	}}
	gen, err := NewGenerator(caller, "m", zerolog.Nop())
	require.NoError(t, err)

	stream, err := gen.GenerateContentStream(context.Background(), &llm.Request{Model: "override"})
	require.NoError(t, err)
	defer stream.Close()

	var texts []string
	for stream.Next() {
		texts = append(texts, llm.Text(stream.Response()))
	}
	require.NoError(t, stream.Err())
	assert.Equal(t, []string{"He", "Hello"}, texts)
	assert.Equal(t, "override", caller.lastModel, "request model wins over the default")
}

func TestCountTokensDelegates(t *testing.T) {
	caller := &fakeCaller{count: &genai.CountTokensResponse{TotalTokens: 9}}
	gen, err := NewGenerator(caller, "m", zerolog.Nop())
	require.NoError(t, err)

	resp, err := gen.CountTokens(context.Background(), &llm.Request{})
	require.NoError(t, err)
	assert.Equal(t, int32(9), resp.TotalTokens)
}

func TestEmbedContentUnsupported(t *testing.T) {
	gen, err := NewGenerator(&fakeCaller{}, "m", zerolog.Nop())
	require.NoError(t, err)

	_, err = gen.EmbedContent(context.Background(), &llm.EmbedRequest{})
	require.Error(t, err)
	assert.True(t, llm.IsBackendError(err))
	assert.Contains(t, err.Error(), "not supported")
}
