package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderMock      = "mock"
)

// Config holds LLM provider configuration.
type Config struct {
	// Provider is one of the Provider* names.
	Provider string

	Gemini    BackendConfig
	OpenAI    BackendConfig
	Anthropic BackendConfig
	Retry     RetryConfig

	// Timeout bounds a single Generate call including retries. Zero
	// disables it.
	Timeout time.Duration
}

// BackendConfig configures one hosted provider.
type BackendConfig struct {
	APIKey string
	Model  string

	// BaseURL overrides the API endpoint, for proxies and
	// OpenAI-compatible servers.
	BaseURL string
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns Gemini with the default models of every backend.
func DefaultConfig() Config {
	return Config{
		Provider:  ProviderGemini,
		Gemini:    BackendConfig{Model: "gemini-flash"},
		OpenAI:    BackendConfig{Model: "gpt-4o-mini"},
		Anthropic: BackendConfig{Model: "claude-haiku"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 60 * time.Second,
	}
}

// ConfigFromEnv overlays QUIZKIT_* environment variables on the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	setenv(&cfg.Provider, "QUIZKIT_LLM_PROVIDER")
	for name, b := range map[string]*BackendConfig{
		"GEMINI":    &cfg.Gemini,
		"OPENAI":    &cfg.OpenAI,
		"ANTHROPIC": &cfg.Anthropic,
	} {
		setenv(&b.APIKey, "QUIZKIT_"+name+"_API_KEY")
		setenv(&b.Model, "QUIZKIT_"+name+"_MODEL")
		setenv(&b.BaseURL, "QUIZKIT_"+name+"_BASE_URL")
	}
	if v := os.Getenv("QUIZKIT_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timeout = d
		} else {
			fmt.Fprintf(os.Stderr, "warning: ignoring QUIZKIT_LLM_TIMEOUT=%q: %v\n", v, err)
		}
	}
	return cfg
}

func setenv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// DiscoverConfig probes the vendors' standard key variables, Gemini first,
// and selects the first provider with a key. The second value is false if
// none is set.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	for _, c := range []struct {
		env      string
		provider string
		backend  *BackendConfig
	}{
		{"GEMINI_API_KEY", ProviderGemini, &cfg.Gemini},
		{"OPENAI_API_KEY", ProviderOpenAI, &cfg.OpenAI},
		{"ANTHROPIC_API_KEY", ProviderAnthropic, &cfg.Anthropic},
	} {
		if k := os.Getenv(c.env); k != "" {
			cfg.Provider = c.provider
			c.backend.APIKey = k
			return cfg, true
		}
	}
	return Config{}, false
}

// ResolveConfig returns the QUIZKIT_* configuration when it validates and
// falls back to DiscoverConfig otherwise.
func ResolveConfig() (Config, error) {
	cfg := ConfigFromEnv()
	err := cfg.Validate()
	if err == nil {
		return cfg, nil
	}
	if os.Getenv("QUIZKIT_LLM_PROVIDER") == "" {
		if found, ok := DiscoverConfig(); ok {
			found.Timeout = cfg.Timeout
			return found, nil
		}
	}
	return Config{}, err
}

// Validate checks that the selected provider has its API key.
func (c Config) Validate() error {
	var key string
	switch c.Provider {
	case ProviderGemini:
		key = c.Gemini.APIKey
	case ProviderOpenAI:
		key = c.OpenAI.APIKey
	case ProviderAnthropic:
		key = c.Anthropic.APIKey
	case ProviderMock:
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("QUIZKIT_%s_API_KEY is required for the %s provider", strings.ToUpper(c.Provider), c.Provider)
	}
	return nil
}
