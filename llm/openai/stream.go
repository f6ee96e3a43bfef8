package openai

import (
	"errors"
	"io"
	"strings"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/genai"

	"github.com/genbridge/genbridge/llm"
)

// chunkReceiver is the part of *openai.ChatCompletionStream this stream
// depends on.
type chunkReceiver interface {
	Recv() (openai.ChatCompletionStreamResponse, error)
	Close() error
}

// chatStream accumulates foreign chat-completion deltas into canonical
// partial responses.
//
// Accumulation protocol: every text delta is appended to a single running
// buffer and surfaced as a response carrying the full buffer so far, so
// consumers render by replacing. Tool-call argument fragments are gathered
// per call index and emitted once, completed, on the terminal response,
// which also carries the usage totals from the final chunk. Deltas with
// neither text nor tool-call content produce no emission. A completed call
// whose accumulated arguments are not valid JSON is dropped with a warning;
// the rest of the terminal response stays usable.
//
// The stream is pull-driven: no chunk is read from the transport until the
// consumer calls Next.
type chatStream struct {
	stream chunkReceiver
	logger zerolog.Logger

	buf     strings.Builder
	calls   []*pendingCall
	byIndex map[int]*pendingCall
	usage   *genai.GenerateContentResponseUsageMetadata
	finish  genai.FinishReason

	cur  *genai.GenerateContentResponse
	err  error
	done bool
}

// pendingCall gathers one tool call's fragments until the stream ends.
type pendingCall struct {
	id   string
	name string
	args strings.Builder
}

func newChatStream(stream chunkReceiver, logger zerolog.Logger) *chatStream {
	return &chatStream{
		stream:  stream,
		logger:  logger,
		byIndex: make(map[int]*pendingCall),
	}
}

// Next reads chunks until one produces an emission. Content-free chunks are
// consumed silently.
func (s *chatStream) Next() bool {
	if s.done {
		return false
	}
	for {
		chunk, err := s.stream.Recv()
		if err != nil {
			s.done = true
			if errors.Is(err, io.EOF) {
				if final := s.finalResponse(); final != nil {
					s.cur = final
					return true
				}
				return false
			}
			s.err = wrapError("streaming chat completion failed", err)
			return false
		}

		if chunk.Usage != nil {
			s.usage = toUsageMetadata(*chunk.Usage)
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		choice := chunk.Choices[0]
		if choice.FinishReason != "" {
			s.finish = toFinishReason(choice.FinishReason)
		}
		for _, toolCall := range choice.Delta.ToolCalls {
			s.accumulateToolCall(toolCall)
		}
		if choice.Delta.Content != "" {
			s.buf.WriteString(choice.Delta.Content)
			s.cur = s.textResponse()
			return true
		}
	}
}

func (s *chatStream) Response() *genai.GenerateContentResponse {
	return s.cur
}

func (s *chatStream) Err() error {
	return s.err
}

// Close releases the underlying transport stream. Required when the
// consumer abandons iteration early.
func (s *chatStream) Close() error {
	s.done = true
	return s.stream.Close()
}

func (s *chatStream) accumulateToolCall(toolCall openai.ToolCall) {
	index := 0
	if toolCall.Index != nil {
		index = *toolCall.Index
	}
	call, ok := s.byIndex[index]
	if !ok {
		call = &pendingCall{}
		s.byIndex[index] = call
		s.calls = append(s.calls, call)
	}
	if toolCall.ID != "" {
		call.id = toolCall.ID
	}
	if toolCall.Function.Name != "" {
		call.name = toolCall.Function.Name
	}
	call.args.WriteString(toolCall.Function.Arguments)
}

// textResponse emits the full accumulated buffer so far.
func (s *chatStream) textResponse() *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{
				Role:  llm.RoleModel,
				Parts: []*genai.Part{{Text: s.buf.String()}},
			}},
		},
	}
}

// finalResponse builds the terminal emission: full text, completed tool
// calls, finish reason and usage totals. Returns nil when there is nothing
// beyond what earlier text emissions already carried.
func (s *chatStream) finalResponse() *genai.GenerateContentResponse {
	if len(s.calls) == 0 && s.usage == nil {
		return nil
	}

	parts := make([]*genai.Part, 0, 1+len(s.calls))
	if s.buf.Len() > 0 {
		parts = append(parts, &genai.Part{Text: s.buf.String()})
	}
	for _, pending := range s.calls {
		call, err := newFunctionCall(pending.id, pending.name, pending.args.String())
		if err != nil {
			s.logger.Warn().Err(err).Str("tool", pending.name).Msg("Dropping malformed tool call from stream")
			continue
		}
		parts = append(parts, &genai.Part{FunctionCall: call})
	}

	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content:      &genai.Content{Role: llm.RoleModel, Parts: parts},
				FinishReason: s.finish,
			},
		},
		UsageMetadata: s.usage,
	}
}

var _ llm.Stream = (*chatStream)(nil)
