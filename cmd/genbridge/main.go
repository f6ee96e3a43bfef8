// genbridge is a small CLI around the content-generation layer: it resolves
// a generator configuration from flags, settings and environment
// credentials, constructs the backend adapter, and runs a single prompt,
// token count or embedding request.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/genbridge/genbridge/config"
	"github.com/genbridge/genbridge/llm"
	"github.com/genbridge/genbridge/llm/factory"
	"github.com/genbridge/genbridge/logger"
)

func main() {
	var (
		settingsPath = flag.String("settings", config.DefaultSettingsPath(), "Path to settings file")
		authFlag     = flag.String("auth", "", "Auth type: gemini-api-key, vertex-ai, openai, oauth-personal (default from settings)")
		modelFlag    = flag.String("model", "", "Model id (default from settings)")
		prompt       = flag.String("prompt", "", "Prompt text to send")
		stream       = flag.Bool("stream", false, "Stream the response")
		count        = flag.Bool("count", false, "Count tokens for the prompt instead of generating")
		embed        = flag.Bool("embed", false, "Embed the prompt instead of generating")
		logFile      = flag.String("logfile", "", "Path to log file. If not set, logs to stderr")
		pretty       = flag.Bool("pretty", false, "Use pretty console output (only valid when logfile is not set)")
		showVersion  = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println(llm.UserAgent())
		return
	}

	if err := config.LoadEnvFile(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env file: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.InitWithOptions(*logFile, *pretty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, log, runOptions{
		settingsPath: *settingsPath,
		authType:     *authFlag,
		model:        *modelFlag,
		prompt:       *prompt,
		stream:       *stream,
		count:        *count,
		embed:        *embed,
	}); err != nil {
		log.Error().Err(err).Msg("genbridge failed")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type runOptions struct {
	settingsPath string
	authType     string
	model        string
	prompt       string
	stream       bool
	count        bool
	embed        bool
}

func run(ctx context.Context, log zerolog.Logger, opts runOptions) error {
	settings, err := config.Load(opts.settingsPath)
	if err != nil {
		return err
	}

	authType := settings.AuthType
	if opts.authType != "" {
		authType = opts.authType
	}
	model := settings.Model
	if opts.model != "" {
		model = opts.model
	}
	if opts.prompt == "" {
		return fmt.Errorf("a -prompt is required")
	}

	cfg := llm.ResolveGeneratorConfig(ctx, llm.ResolveOptions{
		Model:    model,
		AuthType: llm.AuthType(authType),
	})
	log.Debug().
		Str("auth", string(cfg.AuthType)).
		Str("model", cfg.Model).
		Bool("vertex", cfg.VertexAI).
		Msg("Resolved generator configuration")

	gen, err := factory.New(ctx, cfg,
		factory.WithLogger(log),
		factory.WithBaseURL(settings.OpenAI.BaseURL),
		factory.WithOrganization(settings.OpenAI.Organization),
		factory.WithProject(settings.Google.Project, settings.Google.Location),
	)
	if err != nil {
		return err
	}

	switch {
	case opts.count:
		return countTokens(ctx, gen, opts.prompt)
	case opts.embed:
		return embedPrompt(ctx, gen, opts.prompt)
	case opts.stream:
		return streamPrompt(ctx, log, gen, opts.prompt)
	default:
		return generate(ctx, log, gen, opts.prompt)
	}
}

func generate(ctx context.Context, log zerolog.Logger, gen llm.ContentGenerator, prompt string) error {
	resp, err := gen.GenerateContent(ctx, &llm.Request{
		Contents: []*genai.Content{llm.NewUserContent(prompt)},
	})
	if err != nil {
		return err
	}
	fmt.Println(llm.Text(resp))
	logUsage(log, resp)
	return nil
}

func streamPrompt(ctx context.Context, log zerolog.Logger, gen llm.ContentGenerator, prompt string) error {
	stream, err := gen.GenerateContentStream(ctx, &llm.Request{
		Contents: []*genai.Content{llm.NewUserContent(prompt)},
	})
	if err != nil {
		return err
	}
	defer stream.Close()

	// Each emission carries the full accumulated text; print only the
	// suffix that is new since the last one.
	printed := 0
	for stream.Next() {
		text := llm.Text(stream.Response())
		if len(text) > printed {
			fmt.Print(text[printed:])
			printed = len(text)
		}
		logUsage(log, stream.Response())
	}
	fmt.Println()
	return stream.Err()
}

func countTokens(ctx context.Context, gen llm.ContentGenerator, prompt string) error {
	resp, err := gen.CountTokens(ctx, &llm.Request{
		Contents: []*genai.Content{llm.NewUserContent(prompt)},
	})
	if err != nil {
		return err
	}
	fmt.Printf("total tokens: %d\n", resp.TotalTokens)
	return nil
}

func embedPrompt(ctx context.Context, gen llm.ContentGenerator, prompt string) error {
	resp, err := gen.EmbedContent(ctx, &llm.EmbedRequest{
		Contents: []*genai.Content{llm.NewUserContent(prompt)},
	})
	if err != nil {
		return err
	}
	for _, embedding := range resp.Embeddings {
		fmt.Printf("dimensions: %d\n", len(embedding.Values))
	}
	return nil
}

func logUsage(log zerolog.Logger, resp *genai.GenerateContentResponse) {
	if resp == nil || resp.UsageMetadata == nil {
		return
	}
	log.Debug().
		Int32("input_tokens", resp.UsageMetadata.PromptTokenCount).
		Int32("output_tokens", resp.UsageMetadata.CandidatesTokenCount).
		Int32("total_tokens", resp.UsageMetadata.TotalTokenCount).
		Msg("Usage")
}
