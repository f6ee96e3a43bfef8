// Package config loads the genbridge settings file and environment
// overrides. Credential discovery itself stays in the llm resolver; this
// package only handles the settings surface around it.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/genbridge/genbridge/llm"
)

// GoogleSettings binds the Vertex flavor to a cloud project.
type GoogleSettings struct {
	Project  string `yaml:"project,omitempty"`
	Location string `yaml:"location,omitempty"`
}

// OpenAISettings configures the OpenAI-compatible backend.
type OpenAISettings struct {
	BaseURL      string `yaml:"base_url,omitempty"`      // Custom endpoint (default: official API)
	Organization string `yaml:"organization,omitempty"`  // Organization ID
	Model        string `yaml:"model,omitempty"`         // Default model for this backend
}

// Settings represents the genbridge settings file.
type Settings struct {
	AuthType string         `yaml:"auth_type,omitempty"` // One of the llm.AuthType values
	Model    string         `yaml:"model,omitempty"`     // Default generation model
	Google   GoogleSettings `yaml:"google,omitempty"`
	OpenAI   OpenAISettings `yaml:"openai,omitempty"`
}

// DefaultSettingsPath returns ~/.genbridge/settings.yaml, or "" when the
// home directory cannot be determined.
func DefaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".genbridge", "settings.yaml")
}

func defaultSettings() Settings {
	return Settings{
		AuthType: string(llm.AuthGeminiAPIKey),
		Model:    llm.DefaultModel,
	}
}

// Load reads the settings file at path, filling unset fields from the
// defaults. A missing file yields the defaults; a malformed one is an
// error.
func Load(path string) (*Settings, error) {
	settings := Settings{}

	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // user-specified settings path
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &settings); err != nil {
				return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// fall through to defaults
		default:
			return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
		}
	}

	defaults := defaultSettings()
	if err := mergo.Merge(&settings, defaults); err != nil {
		return nil, fmt.Errorf("failed to merge default settings: %w", err)
	}

	applyEnvOverrides(&settings)
	return &settings, nil
}

// LoadEnvFile loads a .env file from the working directory when one
// exists. Absence is not an error.
func LoadEnvFile() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	return godotenv.Load()
}

// applyEnvOverrides lets GENBRIDGE_* variables override file values.
// Backend credentials are not handled here; the llm resolver reads those.
func applyEnvOverrides(settings *Settings) {
	if v := os.Getenv("GENBRIDGE_AUTH_TYPE"); v != "" {
		settings.AuthType = v
	}
	if v := os.Getenv("GENBRIDGE_MODEL"); v != "" {
		settings.Model = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		settings.OpenAI.BaseURL = v
	}
	if v := os.Getenv("OPENAI_ORG_ID"); v != "" {
		settings.OpenAI.Organization = v
	}
	if v := os.Getenv(llm.EnvGoogleCloudProject); v != "" {
		settings.Google.Project = v
	}
	if v := os.Getenv(llm.EnvGoogleCloudLocation); v != "" {
		settings.Google.Location = v
	}
}
