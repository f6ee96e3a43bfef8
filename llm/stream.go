package llm

import (
	"iter"

	"google.golang.org/genai"
)

// seqStream adapts an iter.Seq2 chunk sequence (the shape the genai SDK and
// the code assist transport produce) into a Stream. iter.Pull2 gives the
// pull-driven pacing: the producer only advances when the consumer calls
// Next, and stop releases it at the next suspension point.
type seqStream struct {
	next func() (*genai.GenerateContentResponse, error, bool)
	stop func()
	cur  *genai.GenerateContentResponse
	err  error
	done bool
}

// NewSeqStream wraps a chunk sequence as a Stream. Errors yielded by the
// sequence terminate the stream and surface through Err.
func NewSeqStream(seq iter.Seq2[*genai.GenerateContentResponse, error]) Stream {
	next, stop := iter.Pull2(seq)
	return &seqStream{next: next, stop: stop}
}

func (s *seqStream) Next() bool {
	if s.done {
		return false
	}
	resp, err, ok := s.next()
	if !ok {
		s.done = true
		return false
	}
	if err != nil {
		s.err = err
		s.done = true
		s.stop()
		return false
	}
	s.cur = resp
	return true
}

func (s *seqStream) Response() *genai.GenerateContentResponse {
	return s.cur
}

func (s *seqStream) Err() error {
	return s.err
}

func (s *seqStream) Close() error {
	s.done = true
	s.stop()
	return nil
}

var _ Stream = (*seqStream)(nil)
