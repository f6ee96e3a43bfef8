package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestContentText(t *testing.T) {
	tests := []struct {
		name     string
		content  *genai.Content
		expected string
	}{
		{
			name:     "nil content",
			content:  nil,
			expected: "",
		},
		{
			name:     "empty parts",
			content:  &genai.Content{Role: RoleUser, Parts: []*genai.Part{}},
			expected: "",
		},
		{
			name: "text parts concatenated in order with no separator",
			content: &genai.Content{Role: RoleUser, Parts: []*genai.Part{
				{Text: "Hello, "},
				{Text: "world"},
			}},
			expected: "Hello, world",
		},
		{
			name: "structured parts excluded",
			content: &genai.Content{Role: RoleModel, Parts: []*genai.Part{
				{Text: "before"},
				{FunctionCall: &genai.FunctionCall{Name: "lookup"}},
				{Text: "after"},
			}},
			expected: "beforeafter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ContentText(tt.content))
		})
	}
}

func TestText(t *testing.T) {
	assert.Equal(t, "", Text(nil))
	assert.Equal(t, "", Text(&genai.GenerateContentResponse{}))

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: NewModelContent("hello")},
		},
	}
	assert.Equal(t, "hello", Text(resp))
}

func TestFunctionCalls(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Role: RoleModel, Parts: []*genai.Part{
				{Text: "calling"},
				{FunctionCall: &genai.FunctionCall{ID: "call_1", Name: "first"}},
				{FunctionCall: &genai.FunctionCall{ID: "call_2", Name: "second"}},
			}}},
		},
	}

	calls := FunctionCalls(resp)
	require.Len(t, calls, 2)
	assert.Equal(t, "first", calls[0].Name)
	assert.Equal(t, "second", calls[1].Name)

	assert.Nil(t, FunctionCalls(nil))
	assert.Nil(t, FunctionCalls(&genai.GenerateContentResponse{}))
}

func TestFunctionDeclarations(t *testing.T) {
	assert.Nil(t, FunctionDeclarations(nil))

	config := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{FunctionDeclarations: []*genai.FunctionDeclaration{{Name: "a"}, {Name: "b"}}},
			nil,
			{FunctionDeclarations: []*genai.FunctionDeclaration{{Name: "c"}}},
		},
	}

	decls := FunctionDeclarations(config)
	require.Len(t, decls, 3)
	assert.Equal(t, "a", decls[0].Name)
	assert.Equal(t, "c", decls[2].Name)
}
