package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string   `mapstructure:"PORT"`
	Env         string   `mapstructure:"ENV"`
	DatabaseURL string   `mapstructure:"DATABASE_URL"`
	DBMaxConns  int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns  int32    `mapstructure:"DB_MIN_CONNS"`
	RedisURL    string   `mapstructure:"REDIS_URL"`
	JWTSecret   string   `mapstructure:"JWT_SECRET"`
	CORSOrigins []string `mapstructure:"CORS_ORIGINS"`

	// TTL for voice-agent chat sessions, in seconds.
	SessionTTLSeconds int `mapstructure:"SESSION_TTL_SECONDS"`

	// External SaaS integrations. An empty base URL leaves the
	// corresponding adapter unconfigured; its routes report the
	// upstream error to the caller.
	GHLBaseURL       string `mapstructure:"GHL_BASE_URL"`
	GHLAPIKey        string `mapstructure:"GHL_API_KEY"`
	GHLLocationID    string `mapstructure:"GHL_LOCATION_ID"`
	SquareBaseURL    string `mapstructure:"SQUARE_BASE_URL"`
	SquareToken      string `mapstructure:"SQUARE_ACCESS_TOKEN"`
	SquareLocationID string `mapstructure:"SQUARE_LOCATION_ID"`
	OsmindBaseURL    string `mapstructure:"OSMIND_BASE_URL"`
	OsmindAPIKey     string `mapstructure:"OSMIND_API_KEY"`
	FirecrawlBaseURL string `mapstructure:"FIRECRAWL_BASE_URL"`
	FirecrawlAPIKey  string `mapstructure:"FIRECRAWL_API_KEY"`
	LLMBaseURL       string `mapstructure:"LLM_BASE_URL"`
	LLMAPIKey        string `mapstructure:"LLM_API_KEY"`
	LLMModel         string `mapstructure:"LLM_MODEL"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("SESSION_TTL_SECONDS", 1800)
	v.SetDefault("LLM_MODEL", "gpt-4o-mini")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("REDIS_URL")
	v.BindEnv("JWT_SECRET")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("SESSION_TTL_SECONDS")
	v.BindEnv("GHL_BASE_URL")
	v.BindEnv("GHL_API_KEY")
	v.BindEnv("GHL_LOCATION_ID")
	v.BindEnv("SQUARE_BASE_URL")
	v.BindEnv("SQUARE_ACCESS_TOKEN")
	v.BindEnv("SQUARE_LOCATION_ID")
	v.BindEnv("OSMIND_BASE_URL")
	v.BindEnv("OSMIND_API_KEY")
	v.BindEnv("FIRECRAWL_BASE_URL")
	v.BindEnv("FIRECRAWL_API_KEY")
	v.BindEnv("LLM_BASE_URL")
	v.BindEnv("LLM_API_KEY")
	v.BindEnv("LLM_MODEL")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.IsDev() {
		log.Println("WARNING: Server is running in DEVELOPMENT mode (ENV=development).")
		log.Println("WARNING: Auth is bypassed and all requests get staff access.")
		log.Println("WARNING: Set ENV=production and JWT_SECRET for production.")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks that the configuration is safe to run. Outside development,
// JWT_SECRET must be set so that real authentication is enforced.
func (c *Config) Validate() error {
	if !c.IsDev() && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when ENV=%q; refusing to start without authentication configuration", c.Env)
	}
	if c.SessionTTLSeconds <= 0 {
		return fmt.Errorf("SESSION_TTL_SECONDS must be positive, got %d", c.SessionTTLSeconds)
	}
	return nil
}
