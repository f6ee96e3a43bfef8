package llm

import (
	"strings"

	"google.golang.org/genai"
)

// Conversation roles in the canonical schema.
const (
	RoleUser   = "user"
	RoleModel  = "model"
	RoleSystem = "system"
)

// Request represents a canonical content-generation request. Generation
// parameters (temperature, top-p, tool declarations, system instruction)
// ride in Config.
type Request struct {
	Model    string
	Contents []*genai.Content
	Config   *genai.GenerateContentConfig
}

// EmbedRequest represents a canonical embedding request. The response
// carries one embedding vector per input content, in input order.
type EmbedRequest struct {
	Model    string
	Contents []*genai.Content
	Config   *genai.EmbedContentConfig
}

// NewUserContent creates a single-turn user content with one text part.
func NewUserContent(text string) *genai.Content {
	return &genai.Content{
		Role:  RoleUser,
		Parts: []*genai.Part{{Text: text}},
	}
}

// NewModelContent creates a model turn with one text part.
func NewModelContent(text string) *genai.Content {
	return &genai.Content{
		Role:  RoleModel,
		Parts: []*genai.Part{{Text: text}},
	}
}

// ContentText returns the concatenation, in order, of the plain-text parts
// of a turn. Structured parts (function calls and results) are excluded.
// An empty or nil parts sequence yields "".
func ContentText(content *genai.Content) string {
	if content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range content.Parts {
		if part == nil {
			continue
		}
		b.WriteString(part.Text)
	}
	return b.String()
}

// Text returns the concatenated text of the first candidate, or "" when the
// response has no candidates.
func Text(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	return ContentText(resp.Candidates[0].Content)
}

// FunctionCalls returns the function-call parts of the first candidate, in
// order. Returns nil when there are none.
func FunctionCalls(resp *genai.GenerateContentResponse) []*genai.FunctionCall {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil
	}
	var calls []*genai.FunctionCall
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.FunctionCall != nil {
			calls = append(calls, part.FunctionCall)
		}
	}
	return calls
}

// FunctionDeclarations flattens the function declarations of a request's
// tool list, in order.
func FunctionDeclarations(config *genai.GenerateContentConfig) []*genai.FunctionDeclaration {
	if config == nil {
		return nil
	}
	var decls []*genai.FunctionDeclaration
	for _, tool := range config.Tools {
		if tool == nil {
			continue
		}
		decls = append(decls, tool.FunctionDeclarations...)
	}
	return decls
}
