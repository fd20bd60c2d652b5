// Package config resolves runtime settings from Viper-backed
// configuration and environment variables.
package config

import (
	"os"

	"github.com/spf13/viper"

	"github.com/caseatlas/caseatlas/pkg/constants"
	"github.com/caseatlas/caseatlas/pkg/errors"
)

// Environment variables carrying backend credentials.
const (
	GeminiKeyEnv = "GEMINI_API_KEY"
	OpenAIKeyEnv = "OPENAI_API_KEY"
)

// Settings is the resolved runtime configuration for a pipeline run.
type Settings struct {
	// ArchiveDir is where date-named snapshot files live.
	ArchiveDir string

	// CasesFile is the case-input document for the run.
	CasesFile string

	// Workers bounds concurrent per-case processing.
	Workers int

	// TokenLimit is the long-form backend's context ceiling.
	TokenLimit int

	// LongFormModel and ShortFormModel name the backend models.
	LongFormModel  string
	ShortFormModel string

	// OpenAIBaseURL overrides the short-form API endpoint.
	OpenAIBaseURL string

	// GeminiAPIKey and OpenAIAPIKey are backend credentials.
	GeminiAPIKey string
	OpenAIAPIKey string
}

// SetDefaults registers configuration defaults with Viper. Called once
// during CLI initialization.
func SetDefaults() {
	viper.SetDefault("archive.dir", "case_archive")
	viper.SetDefault("workers", constants.DefaultWorkers)
	viper.SetDefault("token_limit", constants.DefaultTokenLimit)
	viper.SetDefault("models.long_form", "")
	viper.SetDefault("models.short_form", "")
	viper.SetDefault("openai.base_url", "")
}

// Load resolves settings from Viper and the environment. Credentials
// are validated by the callers that need them, not here, so read-only
// commands work without keys.
func Load() *Settings {
	return &Settings{
		ArchiveDir:     viper.GetString("archive.dir"),
		CasesFile:      viper.GetString("cases.file"),
		Workers:        viper.GetInt("workers"),
		TokenLimit:     viper.GetInt("token_limit"),
		LongFormModel:  viper.GetString("models.long_form"),
		ShortFormModel: viper.GetString("models.short_form"),
		OpenAIBaseURL:  viper.GetString("openai.base_url"),
		GeminiAPIKey:   GetString(GeminiKeyEnv),
		OpenAIAPIKey:   GetString(OpenAIKeyEnv),
	}
}

// RequireKeys validates that both backend credentials are present.
func (s *Settings) RequireKeys() error {
	if s.GeminiAPIKey == "" {
		return &errors.ConfigError{
			Component: "backend",
			Message:   "environment variable " + GeminiKeyEnv + " not set",
			Err:       errors.ErrAPIKeyRequired,
		}
	}
	if s.OpenAIAPIKey == "" {
		return &errors.ConfigError{
			Component: "backend",
			Message:   "environment variable " + OpenAIKeyEnv + " not set",
			Err:       errors.ErrAPIKeyRequired,
		}
	}
	return nil
}

// GetString reads a string value from Viper, falling back to the OS
// environment when Viper has no binding for the key.
func GetString(key string) string {
	osValue := os.Getenv(key)
	viperValue := viper.GetString(key)

	if viperValue == "" && osValue != "" {
		return osValue
	}
	return viperValue
}
