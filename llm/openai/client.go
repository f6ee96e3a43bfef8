package openai

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/genai"

	"github.com/genbridge/genbridge/llm"
)

// Client implements llm.ContentGenerator against an OpenAI-compatible
// chat-completion API.
type Client struct {
	client *openai.Client
	model  string
	logger zerolog.Logger
}

// Config carries the construction parameters for a Client.
type Config struct {
	APIKey       string
	BaseURL      string // empty means the official API endpoint
	Model        string // default model when the request has none
	Organization string
	HTTPClient   *http.Client
	Logger       zerolog.Logger
}

// NewClient creates a Client. The API key is required.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, llm.NewInvalidRequestError("openai: api key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	if cfg.Organization != "" {
		clientConfig.OrgID = cfg.Organization
	}
	clientConfig.HTTPClient = withUserAgent(cfg.HTTPClient)

	return &Client{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
		logger: cfg.Logger,
	}, nil
}

// GenerateContent implements llm.ContentGenerator.
func (c *Client) GenerateContent(ctx context.Context, req *llm.Request) (*genai.GenerateContentResponse, error) {
	chatReq, err := c.chatRequest(req, false)
	if err != nil {
		return nil, err
	}

	chatResp, err := c.client.CreateChatCompletion(ctx, *chatReq)
	if err != nil {
		return nil, wrapError("chat completion failed", err)
	}
	if len(chatResp.Choices) == 0 {
		return nil, llm.NewBackendError(Provider, "no choices in response", nil)
	}

	choice := chatResp.Choices[0]
	resp, dropped := FromChatMessage(choice.Message)
	for _, dropErr := range dropped {
		c.logger.Warn().Err(dropErr).Msg("Dropping malformed tool call from response")
	}
	resp.Candidates[0].FinishReason = toFinishReason(choice.FinishReason)
	resp.UsageMetadata = toUsageMetadata(chatResp.Usage)
	return resp, nil
}

// GenerateContentStream implements llm.ContentGenerator. The returned
// stream reads from the transport only as the consumer pulls; Close
// releases the transport stream.
func (c *Client) GenerateContentStream(ctx context.Context, req *llm.Request) (llm.Stream, error) {
	chatReq, err := c.chatRequest(req, true)
	if err != nil {
		return nil, err
	}

	stream, err := c.client.CreateChatCompletionStream(ctx, *chatReq)
	if err != nil {
		return nil, wrapError("opening chat completion stream failed", err)
	}
	return newChatStream(stream, c.logger), nil
}

// CountTokens implements llm.ContentGenerator. The chat-completion API has
// no token-counting endpoint, so this issues a completion capped at one
// output token and reads the usage total. It is an approximation with real
// latency and cost, not a free estimate.
func (c *Client) CountTokens(ctx context.Context, req *llm.Request) (*genai.CountTokensResponse, error) {
	chatReq, err := c.chatRequest(req, false)
	if err != nil {
		return nil, err
	}
	chatReq.MaxTokens = 1

	chatResp, err := c.client.CreateChatCompletion(ctx, *chatReq)
	if err != nil {
		return nil, wrapError("token-count probe failed", err)
	}
	return &genai.CountTokensResponse{
		TotalTokens: int32(chatResp.Usage.TotalTokens),
	}, nil
}

// EmbedContent implements llm.ContentGenerator. Each input turn's text is
// embedded; the response carries one vector per input in input order.
func (c *Client) EmbedContent(ctx context.Context, req *llm.EmbedRequest) (*genai.EmbedContentResponse, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}
	if model == "" {
		return nil, llm.NewInvalidRequestError("openai: model is required")
	}

	inputs := lo.Map(req.Contents, func(content *genai.Content, _ int) string {
		return llm.ContentText(content)
	})

	embedResp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(model),
		Input: inputs,
	})
	if err != nil {
		return nil, wrapError("embeddings request failed", err)
	}

	embeddings := make([]*genai.ContentEmbedding, len(inputs))
	for _, datum := range embedResp.Data {
		if datum.Index < 0 || datum.Index >= len(embeddings) {
			return nil, llm.NewBackendError(Provider, "embedding index out of range", nil)
		}
		embeddings[datum.Index] = &genai.ContentEmbedding{Values: datum.Embedding}
	}
	return &genai.EmbedContentResponse{Embeddings: embeddings}, nil
}

// chatRequest maps a canonical request to the foreign chat-completion
// shape. Shared by the synchronous, streaming and token-count paths.
func (c *Client) chatRequest(req *llm.Request, stream bool) (*openai.ChatCompletionRequest, error) {
	if req == nil {
		return nil, llm.NewInvalidRequestError("openai: request is required")
	}
	model := req.Model
	if model == "" {
		model = c.model
	}
	if model == "" {
		return nil, llm.NewInvalidRequestError("openai: model is required")
	}

	chatReq := &openai.ChatCompletionRequest{
		Model:    model,
		Messages: ToChatMessages(req.Contents),
		Stream:   stream,
	}
	if stream {
		// Usage totals arrive only on the terminal chunk.
		chatReq.StreamOptions = &openai.StreamOptions{IncludeUsage: true}
	}

	cfg := req.Config
	if cfg == nil {
		return chatReq, nil
	}

	if cfg.SystemInstruction != nil {
		system := openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: llm.ContentText(cfg.SystemInstruction),
		}
		chatReq.Messages = append([]openai.ChatCompletionMessage{system}, chatReq.Messages...)
	}
	if cfg.Temperature != nil {
		chatReq.Temperature = *cfg.Temperature
	}
	if cfg.TopP != nil {
		chatReq.TopP = *cfg.TopP
	}
	if cfg.MaxOutputTokens > 0 {
		chatReq.MaxTokens = int(cfg.MaxOutputTokens)
	}
	if decls := llm.FunctionDeclarations(cfg); len(decls) > 0 {
		chatReq.Tools = ToChatTools(decls)
		chatReq.ToolChoice = "auto"
	}
	return chatReq, nil
}

// wrapError converts client failures to backend errors, preserving the
// HTTP status when the cause is an API error.
func wrapError(message string, err error) error {
	wrapped := llm.NewBackendError(Provider, message, err)
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		wrapped.StatusCode = apiErr.HTTPStatusCode
	}
	return wrapped
}

// withUserAgent returns an HTTP client whose transport stamps the outbound
// user-agent header on every request.
func withUserAgent(base *http.Client) *http.Client {
	client := http.Client{}
	if base != nil {
		client = *base
	}
	transport := client.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	client.Transport = roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", llm.UserAgent())
		return transport.RoundTrip(req)
	})
	return &client
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

var _ llm.ContentGenerator = (*Client)(nil)
