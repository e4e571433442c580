package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable the service reads,
// e.g. LINGODECK_SERVER_PORT.
const EnvPrefix = "LINGODECK"

// Load configuration from environment variables and optionally config files.
// A .env file in the working directory is loaded first if present, then an
// optional config.yaml. Environment variables take precedence over values from
// config files. Returns a populated Config struct or an error if
// loading/validation fails.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only applies to keys viper already knows about; keys without
	// defaults must be bound explicitly so Unmarshal sees them.
	for _, key := range []string{
		"database.url",
		"auth.jwt_secret",
		"llm.groq_api_key",
		"llm.gemini_api_key",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("error binding environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Comma-separated env values arrive as a single element.
	cfg.Server.CORSAllowedOrigins = splitList(cfg.Server.CORSAllowedOrigins)

	if cfg.LLM.ModelName == "" {
		cfg.LLM.ModelName = DefaultModelName(cfg.LLM.Provider)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.read_timeout_seconds", 15)
	v.SetDefault("server.write_timeout_seconds", 90)
	v.SetDefault("server.idle_timeout_seconds", 60)
	v.SetDefault("server.cors_allowed_origins", []string{"http://localhost:3000"})

	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.auto_migrate", false)

	v.SetDefault("auth.issuer", "")
	v.SetDefault("auth.token_lifetime_minutes", 60)

	v.SetDefault("llm.provider", "groq")
	v.SetDefault("llm.model_name", "")
	v.SetDefault("llm.groq_base_url", DefaultGroqBaseURL)
	v.SetDefault("llm.request_timeout_seconds", 60)
	v.SetDefault("llm.max_retries", 0)
	v.SetDefault("llm.retry_delay_seconds", 1)

	v.SetDefault("generation.rate_limit_max", 3)
	v.SetDefault("generation.rate_limit_window_minutes", 60)
}

// Provider defaults.
const (
	DefaultGroqBaseURL = "https://api.groq.com/openai/v1"
	DefaultGroqModel   = "llama-3.3-70b-versatile"
	DefaultGeminiModel = "gemini-2.0-flash"
)

// DefaultModelName returns the model used for a provider when none is configured.
func DefaultModelName(provider string) string {
	if provider == "gemini" {
		return DefaultGeminiModel
	}
	return DefaultGroqModel
}

func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
