package openai

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/samber/lo"
	openai "github.com/sashabaranov/go-openai"
	"github.com/tidwall/gjson"
	"google.golang.org/genai"

	"github.com/genbridge/genbridge/llm"
)

// Provider identifies this backend in wrapped errors.
const Provider = "openai"

// ToChatMessages converts canonical conversation turns to chat messages.
// The role "model" becomes "assistant"; other roles pass through unchanged.
// A message's content is the concatenation, in order, of the turn's
// plain-text parts with no separator; structured parts are not carried in
// this direction (see package docs). An empty parts sequence maps to empty
// content.
func ToChatMessages(contents []*genai.Content) []openai.ChatCompletionMessage {
	return lo.Map(contents, func(content *genai.Content, _ int) openai.ChatCompletionMessage {
		role := content.Role
		if role == llm.RoleModel {
			role = openai.ChatMessageRoleAssistant
		}
		return openai.ChatCompletionMessage{
			Role:    role,
			Content: llm.ContentText(content),
		}
	})
}

// ToChatTools converts canonical function declarations to chat tool
// descriptors. Name and description are carried verbatim; the parameter
// schema is passed through opaque, never interpreted.
func ToChatTools(decls []*genai.FunctionDeclaration) []openai.Tool {
	return lo.Map(decls, func(decl *genai.FunctionDeclaration, _ int) openai.Tool {
		return openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        decl.Name,
				Description: decl.Description,
				Parameters:  toolParameters(decl),
			},
		}
	})
}

func toolParameters(decl *genai.FunctionDeclaration) any {
	if decl.ParametersJsonSchema != nil {
		return decl.ParametersJsonSchema
	}
	if decl.Parameters != nil {
		return decl.Parameters
	}
	return map[string]any{"type": "object", "properties": map[string]any{}}
}

// FromChatMessage builds a canonical response wrapping exactly one
// Candidate. Its parts are, in order: one text part when the message text is
// non-empty, then one function-call part per tool-call entry. A message with
// neither yields a Candidate with an empty, non-nil parts sequence.
//
// Tool-call entries whose arguments are not valid JSON are dropped, one
// malformed-tool-call error per dropped entry is returned alongside the
// response, and the remaining entries are preserved. Arguments are never
// silently replaced with an empty object.
func FromChatMessage(msg openai.ChatCompletionMessage) (*genai.GenerateContentResponse, []error) {
	parts := make([]*genai.Part, 0, 1+len(msg.ToolCalls))
	if msg.Content != "" {
		parts = append(parts, &genai.Part{Text: msg.Content})
	}

	var dropped []error
	for _, toolCall := range msg.ToolCalls {
		part, err := fromToolCall(toolCall)
		if err != nil {
			dropped = append(dropped, err)
			continue
		}
		parts = append(parts, part)
	}

	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Role: llm.RoleModel, Parts: parts}},
		},
	}, dropped
}

func fromToolCall(toolCall openai.ToolCall) (*genai.Part, error) {
	call, err := newFunctionCall(toolCall.ID, toolCall.Function.Name, toolCall.Function.Arguments)
	if err != nil {
		return nil, err
	}
	return &genai.Part{FunctionCall: call}, nil
}

// newFunctionCall parses a JSON-encoded arguments string into a canonical
// function call. Some compatible backends omit call ids, so a missing id is
// synthesized.
func newFunctionCall(id, name, arguments string) (*genai.FunctionCall, error) {
	args := map[string]any{}
	if arguments != "" {
		if !gjson.Valid(arguments) {
			return nil, llm.NewMalformedToolCallError(Provider, id, name, nil)
		}
		if err := json.Unmarshal([]byte(arguments), &args); err != nil {
			return nil, llm.NewMalformedToolCallError(Provider, id, name, err)
		}
	}
	if id == "" {
		id = "call_" + uuid.NewString()
	}
	return &genai.FunctionCall{ID: id, Name: name, Args: args}, nil
}

func toUsageMetadata(usage openai.Usage) *genai.GenerateContentResponseUsageMetadata {
	return &genai.GenerateContentResponseUsageMetadata{
		PromptTokenCount:     int32(usage.PromptTokens),
		CandidatesTokenCount: int32(usage.CompletionTokens),
		TotalTokenCount:      int32(usage.TotalTokens),
	}
}

func toFinishReason(reason openai.FinishReason) genai.FinishReason {
	switch reason {
	case openai.FinishReasonLength:
		return genai.FinishReasonMaxTokens
	case openai.FinishReasonStop, openai.FinishReasonToolCalls:
		return genai.FinishReasonStop
	default:
		return genai.FinishReasonOther
	}
}
