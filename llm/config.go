package llm

// AuthType selects which backend and credential flow is active. The
// enumeration is closed; the factory rejects anything else.
type AuthType string

const (
	// AuthLoginWithGoogle routes through the interactive-login Code Assist
	// transport. Credential handling is delegated entirely to that flow.
	AuthLoginWithGoogle AuthType = "oauth-personal"

	// AuthGeminiAPIKey uses the managed Gemini API with an API key.
	AuthGeminiAPIKey AuthType = "gemini-api-key"

	// AuthVertexAI uses the Vertex-hosted Gemini API with a Google Cloud
	// credential, project and location.
	AuthVertexAI AuthType = "vertex-ai"

	// AuthOpenAI uses an OpenAI-compatible chat-completion API.
	AuthOpenAI AuthType = "openai"
)

// Default model identifiers.
const (
	DefaultModel          = "gemini-2.5-pro"
	DefaultEmbeddingModel = "gemini-embedding-001"
)

// Environment variables consulted by the config resolver. Absence of a
// required one for a given auth kind makes that branch fall through rather
// than fail.
const (
	EnvGeminiAPIKey        = "GEMINI_API_KEY"
	EnvGoogleAPIKey        = "GOOGLE_API_KEY"
	EnvGoogleCloudProject  = "GOOGLE_CLOUD_PROJECT"
	EnvGoogleCloudLocation = "GOOGLE_CLOUD_LOCATION"
	EnvOpenAIAPIKey        = "OPENAI_API_KEY"
)

// GeneratorConfig is the resolved configuration consumed by the factory.
// Created once per session by ResolveGeneratorConfig and immutable
// thereafter.
type GeneratorConfig struct {
	Model    string
	APIKey   string
	VertexAI bool
	AuthType AuthType
}
