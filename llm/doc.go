// Package llm provides a backend-neutral content-generation layer for Large
// Language Model APIs.
//
// The canonical request/response schema is the Gemini GenAI schema
// (google.golang.org/genai types). Backends that speak it natively (the
// managed Gemini API and its Vertex-hosted flavor) are driven directly; the
// OpenAI-compatible chat-completion backend is translated to and from the
// canonical schema by a schema mapper and a streaming accumulator. The
// interactive-login (Code Assist) backend delegates to an injected transport
// client.
//
// # Core Concepts
//
//  1. ContentGenerator: the uniform contract every backend adapter
//     implements: GenerateContent, GenerateContentStream, CountTokens and
//     EmbedContent.
//
//  2. Stream: a lazy, single-pass, pull-driven sequence of canonical partial
//     responses. Consumer pull drives producer progress; Close releases the
//     underlying transport stream, including when iteration is abandoned
//     early.
//
//  3. GeneratorConfig / AuthType: the resolved configuration selecting which
//     backend and credential flow is active. ResolveGeneratorConfig derives
//     it from caller hints, environment credentials and a default model; the
//     factory subpackage turns it into exactly one adapter.
//
//  4. Errors: the Error type carries a backend-neutral error kind
//     (unsupported auth, backend failure, malformed tool call, invalid
//     request) plus the originating backend's identity and cause.
//
// Usage:
//
//	cfg := llm.ResolveGeneratorConfig(ctx, llm.ResolveOptions{
//	    Model:    "gemini-2.5-pro",
//	    AuthType: llm.AuthGeminiAPIKey,
//	})
//
//	gen, err := factory.New(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//
//	stream, err := gen.GenerateContentStream(ctx, &llm.Request{
//	    Contents: []*genai.Content{llm.NewUserContent("Hello!")},
//	})
//	if err != nil {
//	    return err
//	}
//	defer stream.Close()
//	for stream.Next() {
//	    render(llm.Text(stream.Response())) // full prefix, replace not append
//	}
//
// This layer performs no retries, rate limiting or caching; failures from
// the underlying clients are wrapped and propagated as-is.
package llm
