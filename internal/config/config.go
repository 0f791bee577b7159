package config

import (
	"log"

	"github.com/caarlos0/env/v6"
)

type LLMProvider string

const (
	ProviderOpenAI LLMProvider = "openai"
	ProviderYandex LLMProvider = "yandex"
)

type Config struct {
	// LLM settings
	LLMProvider      LLMProvider `env:"LLM_PROVIDER" envDefault:"openai"`
	OpenAIAPIKey     string      `env:"OPENAI_API_KEY"`
	OpenAIBaseURL    string      `env:"OPENAI_BASE_URL"`
	OpenAIModel      string      `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	YandexOAuthToken string      `env:"YANDEX_OAUTH_TOKEN"`
	YandexFolderID   string      `env:"YANDEX_FOLDER_ID"`

	// OpenRouter (optional)
	OpenRouterReferrer string `env:"OPENROUTER_REFERRER"`
	OpenRouterTitle    string `env:"OPENROUTER_TITLE"`

	// Output directories
	GeneratedDir  string `env:"GENERATED_DIR" envDefault:"generated_scripts"`
	RefactoredDir string `env:"REFACTORED_DIR" envDefault:"refactored_code"`
	ArtifactsDir  string `env:"ARTIFACTS_DIR" envDefault:"artifacts"`

	// History log
	HistoryFilePath string `env:"HISTORY_FILE_PATH" envDefault:"logs/history.jsonl"`

	// Web UI
	WebPort           int    `env:"WEB_PORT" envDefault:"8080"`
	SessionMaxAgeMins int    `env:"SESSION_MAX_AGE_MINS" envDefault:"240"`
	CleanupSchedule   string `env:"CLEANUP_SCHEDULE" envDefault:"*/30 * * * *"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}
