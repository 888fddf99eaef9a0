package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	ProviderWatsonx = "watsonx"
	ProviderOpenAI  = "openai"
)

type Config struct {
	SlackBotToken string
	SlackAppToken string

	// OracleProvider selects the generation backend for meeting extraction.
	OracleProvider string

	WatsonxAPIKey    string
	WatsonxProjectID string
	WatsonxURL       string
	WatsonxModelID   string

	OpenAIBaseURL string
	OpenAIAPIKey  string
	OpenAIModel   string

	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string
	TeamsOrganizerID  string

	ListenAddr  string
	HTTPTimeout time.Duration
}

// Load reads configuration from the environment. Call LoadDotEnv first if
// .env file support is wanted.
func Load() (Config, error) {
	cfg := Config{
		SlackBotToken: strings.TrimSpace(os.Getenv("SLACK_BOT_TOKEN")),
		SlackAppToken: strings.TrimSpace(os.Getenv("SLACK_APP_TOKEN")),

		OracleProvider: strings.ToLower(strings.TrimSpace(os.Getenv("ORACLE_PROVIDER"))),

		WatsonxAPIKey:    strings.TrimSpace(os.Getenv("WATSONX_API_KEY")),
		WatsonxProjectID: strings.TrimSpace(os.Getenv("WATSONX_PROJECT_ID")),
		WatsonxURL:       strings.TrimSpace(os.Getenv("WATSONX_URL")),
		WatsonxModelID:   strings.TrimSpace(os.Getenv("WATSONX_MODEL_ID")),

		OpenAIBaseURL: strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")),
		OpenAIAPIKey:  strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIModel:   strings.TrimSpace(os.Getenv("OPENAI_MODEL")),

		AzureTenantID:     strings.TrimSpace(os.Getenv("AZURE_TENANT_ID")),
		AzureClientID:     strings.TrimSpace(os.Getenv("AZURE_CLIENT_ID")),
		AzureClientSecret: strings.TrimSpace(os.Getenv("AZURE_CLIENT_SECRET")),
		TeamsOrganizerID:  strings.TrimSpace(os.Getenv("TEAMS_ORGANIZER_ID")),

		ListenAddr: strings.TrimSpace(os.Getenv("LISTEN_ADDR")),
	}

	if cfg.OracleProvider == "" {
		cfg.OracleProvider = ProviderWatsonx
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":9090"
	}

	if raw := strings.TrimSpace(os.Getenv("HTTP_TIMEOUT")); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid HTTP_TIMEOUT %q: %w", raw, err)
		}
		cfg.HTTPTimeout = d
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.SlackBotToken == "" {
		return fmt.Errorf("SLACK_BOT_TOKEN is required")
	}
	if c.SlackAppToken == "" {
		return fmt.Errorf("SLACK_APP_TOKEN is required")
	}

	switch c.OracleProvider {
	case ProviderWatsonx:
		if c.WatsonxAPIKey == "" {
			return fmt.Errorf("WATSONX_API_KEY is required")
		}
		if c.WatsonxProjectID == "" {
			return fmt.Errorf("WATSONX_PROJECT_ID is required")
		}
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required")
		}
	default:
		return fmt.Errorf("unknown ORACLE_PROVIDER %q (want %q or %q)", c.OracleProvider, ProviderWatsonx, ProviderOpenAI)
	}

	if c.AzureTenantID == "" || c.AzureClientID == "" || c.AzureClientSecret == "" {
		return fmt.Errorf("AZURE_TENANT_ID, AZURE_CLIENT_ID and AZURE_CLIENT_SECRET are required")
	}
	if c.TeamsOrganizerID == "" {
		return fmt.Errorf("TEAMS_ORGANIZER_ID is required")
	}
	return nil
}
