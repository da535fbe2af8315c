package config

import (
	"log"
	"strings"
	"time"

	"github.com/SscSPs/site_safety_app/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	DBMaxConns        int32
	DBMaxConnIdleTime time.Duration
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Safety score cache; disabled when RedisURL is empty
	RedisURL      string
	ScoreCacheTTL time.Duration

	// Domain events; a no-op publisher is used when RabbitMQURL is empty
	RabbitMQURL    string
	EventsExchange string

	PosthogAPIKey      string
	CORSAllowedOrigins []string
	LoginRateLimit     string

	// Default safety score weights, overridable per tenant
	ScoreWeights domain.ScoreWeights

	// External OAuth Providers
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`
	FrontendBaseURL    string `mapstructure:"FRONTEND_BASE_URL"`
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("DB_MAX_CONN_IDLE_TIME", "5m")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "site-safety-app")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("SCORE_CACHE_TTL", "5m")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("EVENTS_EXCHANGE", "safety.events")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	viper.SetDefault("SCORE_WEIGHT_HAZARD_TIMELINESS", "0.3")
	viper.SetDefault("SCORE_WEIGHT_TRAINING_COMPLETION", "0.2")
	viper.SetDefault("SCORE_WEIGHT_INSPECTION_COMPLIANCE", "0.3")
	viper.SetDefault("SCORE_WEIGHT_INCIDENT_INVERSE", "0.2")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")

	// Environment variables override .env values and defaults.
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.JWTExpiryDuration = durationOrDefault("JWT_EXPIRY_DURATION", time.Hour)
	cfg.ScoreCacheTTL = durationOrDefault("SCORE_CACHE_TTL", 5*time.Minute)
	cfg.DBMaxConnIdleTime = durationOrDefault("DB_MAX_CONN_IDLE_TIME", 5*time.Minute)
	cfg.DBMaxConns = viper.GetInt32("DB_MAX_CONNS")

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "site-safety-app"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.RabbitMQURL = viper.GetString("RABBITMQ_URL")
	cfg.EventsExchange = viper.GetString("EVENTS_EXCHANGE")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.LoginRateLimit = viper.GetString("LOGIN_RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))

	cfg.ScoreWeights = domain.ScoreWeights{
		HazardTimeliness:     weightOrDefault("SCORE_WEIGHT_HAZARD_TIMELINESS", "0.3"),
		TrainingCompletion:   weightOrDefault("SCORE_WEIGHT_TRAINING_COMPLETION", "0.2"),
		InspectionCompliance: weightOrDefault("SCORE_WEIGHT_INSPECTION_COMPLIANCE", "0.3"),
		IncidentInverse:      weightOrDefault("SCORE_WEIGHT_INCIDENT_INVERSE", "0.2"),
	}

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = viper.GetString("GOOGLE_REDIRECT_URL")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")

	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" || cfg.GoogleRedirectURL == "" {
		log.Println("Warning: Google OAuth is not fully configured. Google sign-in will not function.")
	}
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set. Safety score caching is disabled.")
	}
	if cfg.RabbitMQURL == "" {
		log.Println("Warning: RABBITMQ_URL not set. Domain events will not be published.")
	}

	return cfg, nil
}

func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}

func weightOrDefault(key, def string) decimal.Decimal {
	raw := viper.GetString(key)
	w, err := decimal.NewFromString(raw)
	if err != nil || w.IsNegative() {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def)
		return decimal.RequireFromString(def)
	}
	return w
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
