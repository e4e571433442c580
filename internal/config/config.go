package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"     validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database"   validate:"required"`
	Auth       AuthConfig       `mapstructure:"auth"       validate:"required"`
	LLM        LLMConfig        `mapstructure:"llm"        validate:"required"`
	Generation GenerationConfig `mapstructure:"generation" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// Completions take 10-15 seconds, so the write timeout must comfortably exceed that.
	ReadTimeoutSeconds  int `mapstructure:"read_timeout_seconds"  validate:"gt=0"`
	WriteTimeoutSeconds int `mapstructure:"write_timeout_seconds" validate:"gt=0"`
	IdleTimeoutSeconds  int `mapstructure:"idle_timeout_seconds"  validate:"gt=0"`

	// CORSAllowedOrigins lists the browser origins allowed to call the API.
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL          string `mapstructure:"url"            validate:"required,url"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=0"`
	MaxIdleConns int    `mapstructure:"max_idle_conns" validate:"gte=0"`
	AutoMigrate  bool   `mapstructure:"auto_migrate"`
}

// AuthConfig contains settings for validating identity-provider tokens.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	Issuer               string `mapstructure:"issuer"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	Provider              string `mapstructure:"provider"                validate:"required,oneof=groq gemini"`
	ModelName             string `mapstructure:"model_name"`
	GroqAPIKey            string `mapstructure:"groq_api_key"            validate:"required_if=Provider groq"`
	GroqBaseURL           string `mapstructure:"groq_base_url"           validate:"omitempty,url"`
	GeminiAPIKey          string `mapstructure:"gemini_api_key"          validate:"required_if=Provider gemini"`
	RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds" validate:"gt=0"`

	// Transient provider failures are retried with exponential backoff.
	MaxRetries        int `mapstructure:"max_retries"         validate:"gte=0,lte=5"`
	RetryDelaySeconds int `mapstructure:"retry_delay_seconds" validate:"gte=1,lte=60"`
}

// GenerationConfig controls the per-user generation rate limit.
type GenerationConfig struct {
	RateLimitMax           int `mapstructure:"rate_limit_max"            validate:"gt=0"`
	RateLimitWindowMinutes int `mapstructure:"rate_limit_window_minutes" validate:"gt=0"`
}
