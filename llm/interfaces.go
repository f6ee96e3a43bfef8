package llm

import (
	"context"

	"google.golang.org/genai"
)

// ContentGenerator is the uniform contract implemented by every backend
// adapter. An adapter owns exactly one underlying client handle for its
// lifetime and keeps no other state; independent calls on the same adapter
// are safe to run concurrently to the extent the underlying client allows.
type ContentGenerator interface {
	// GenerateContent sends a request and returns a complete response.
	GenerateContent(ctx context.Context, req *Request) (*genai.GenerateContentResponse, error)

	// GenerateContentStream sends a request and returns a stream of
	// canonical partial responses. The caller must Close the stream, also
	// when abandoning it before exhaustion.
	GenerateContentStream(ctx context.Context, req *Request) (Stream, error)

	// CountTokens returns the token count for the request's contents.
	// Backends without a native counting endpoint approximate by issuing a
	// minimal completion and reading its usage total; see the adapter's
	// documentation.
	CountTokens(ctx context.Context, req *Request) (*genai.CountTokensResponse, error)

	// EmbedContent returns one embedding vector per input content, in
	// input order.
	EmbedContent(ctx context.Context, req *EmbedRequest) (*genai.EmbedContentResponse, error)
}

// Stream is a lazy, single-pass sequence of canonical partial responses.
// Each text-bearing response carries the full accumulated text so far, so
// consumers render by replacing, not appending. Responses are surfaced
// strictly in underlying delta arrival order, and consumer pull drives
// producer progress. A Stream is not restartable; consumers needing replay
// must buffer independently.
type Stream interface {
	// Next advances to the next response. It returns false when the stream
	// is exhausted or an error occurred; check Err afterwards.
	Next() bool

	// Response returns the current response. Valid only after Next
	// returned true.
	Response() *genai.GenerateContentResponse

	// Err returns the error that terminated the stream, if any.
	Err() error

	// Close releases the underlying transport stream. It must be called
	// even when iteration is abandoned early, and is safe to call after
	// exhaustion.
	Close() error
}

// Collect drains a stream and returns its final response. The stream is
// closed before returning. Returns nil when the stream produced nothing.
func Collect(stream Stream) (*genai.GenerateContentResponse, error) {
	defer stream.Close()
	var last *genai.GenerateContentResponse
	for stream.Next() {
		last = stream.Response()
	}
	if err := stream.Err(); err != nil {
		return nil, err
	}
	return last, nil
}
