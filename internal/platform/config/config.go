package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Photo storage backends.
const (
	PhotoStoragePostgres = "postgres"
	PhotoStorageS3       = "s3"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	LogLevel       string
	MigrationsPath string

	// Session tokens
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	SessionCookieName string

	// Account activation and password reset tokens. Each purpose has its own secret.
	AccountActivationSecret string
	AccountActivationExpiry time.Duration
	ResetPasswordSecret     string
	ResetPasswordExpiry     time.Duration

	ClientURL string
	AppName   string

	// Email
	EmailFrom      string
	EmailTo        string
	SendGridAPIKey string

	// External OAuth Providers
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`

	// Photo storage
	PhotoStorage string
	S3Bucket     string
	S3Region     string
	S3Endpoint   string
	S3AccessKey  string
	S3SecretKey  string

	// Rate limiting
	RedisURL      string
	AuthRateLimit string

	PosthogAPIKey      string
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8000")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", true)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_EXPIRY_DURATION", "240h")
	viper.SetDefault("JWT_ISSUER", "blog-backend")
	viper.SetDefault("SESSION_COOKIE_NAME", "token")
	viper.SetDefault("JWT_ACCOUNT_ACTIVATION", "")
	viper.SetDefault("ACCOUNT_ACTIVATION_EXPIRY", "10m")
	viper.SetDefault("JWT_RESET_PASSWORD", "")
	viper.SetDefault("RESET_PASSWORD_EXPIRY", "10m")
	viper.SetDefault("CLIENT_URL", "http://localhost:3000")
	viper.SetDefault("APP_NAME", "Blog")
	viper.SetDefault("EMAIL_FROM", "")
	viper.SetDefault("EMAIL_TO", "")
	viper.SetDefault("SENDGRID_API_KEY", "")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")
	viper.SetDefault("PHOTO_STORAGE", PhotoStoragePostgres)
	viper.SetDefault("S3_BUCKET", "")
	viper.SetDefault("S3_REGION", "us-east-1")
	viper.SetDefault("S3_ENDPOINT", "")
	viper.SetDefault("S3_ACCESS_KEY_ID", "")
	viper.SetDefault("S3_SECRET_ACCESS_KEY", "")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("AUTH_RATE_LIMIT", "5-M")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8000"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.LogLevel = viper.GetString("LOG_LEVEL")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		log.Println("Warning: JWT_SECRET environment variable not set. Sessions cannot be issued.")
	}
	cfg.JWTExpiryDuration = parseDuration("JWT_EXPIRY_DURATION", 240*time.Hour)
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.SessionCookieName = viper.GetString("SESSION_COOKIE_NAME")

	cfg.AccountActivationSecret = viper.GetString("JWT_ACCOUNT_ACTIVATION")
	if cfg.AccountActivationSecret == "" {
		log.Println("Warning: JWT_ACCOUNT_ACTIVATION not set. Signup will not function.")
	}
	cfg.AccountActivationExpiry = parseDuration("ACCOUNT_ACTIVATION_EXPIRY", 10*time.Minute)

	cfg.ResetPasswordSecret = viper.GetString("JWT_RESET_PASSWORD")
	if cfg.ResetPasswordSecret == "" {
		log.Println("Warning: JWT_RESET_PASSWORD not set. Password reset will not function.")
	}
	cfg.ResetPasswordExpiry = parseDuration("RESET_PASSWORD_EXPIRY", 10*time.Minute)

	cfg.ClientURL = strings.TrimSuffix(viper.GetString("CLIENT_URL"), "/")
	cfg.AppName = viper.GetString("APP_NAME")

	cfg.EmailFrom = viper.GetString("EMAIL_FROM")
	cfg.EmailTo = viper.GetString("EMAIL_TO")
	cfg.SendGridAPIKey = viper.GetString("SENDGRID_API_KEY")
	if cfg.SendGridAPIKey == "" {
		log.Println("Warning: SENDGRID_API_KEY not set. Emails will only be logged.")
	}

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = viper.GetString("GOOGLE_REDIRECT_URL")
	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google login will not function.")
	}

	cfg.PhotoStorage = strings.ToLower(viper.GetString("PHOTO_STORAGE"))
	cfg.S3Bucket = viper.GetString("S3_BUCKET")
	cfg.S3Region = viper.GetString("S3_REGION")
	cfg.S3Endpoint = viper.GetString("S3_ENDPOINT")
	cfg.S3AccessKey = viper.GetString("S3_ACCESS_KEY_ID")
	cfg.S3SecretKey = viper.GetString("S3_SECRET_ACCESS_KEY")
	if cfg.PhotoStorage == PhotoStorageS3 && cfg.S3Bucket == "" {
		log.Println("Warning: PHOTO_STORAGE is s3 but S3_BUCKET is not set. Falling back to postgres.")
		cfg.PhotoStorage = PhotoStoragePostgres
	}

	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.AuthRateLimit = viper.GetString("AUTH_RATE_LIMIT")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")

	origins := viper.GetString("CORS_ALLOWED_ORIGINS")
	if origins == "" {
		cfg.CORSAllowedOrigins = []string{cfg.ClientURL}
	} else {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
			}
		}
	}

	return cfg, nil
}

// ValidateSecrets makes sure the three token purposes can never verify each other's tokens.
func (c *Config) ValidateSecrets() error {
	if c.JWTSecret == "" || c.AccountActivationSecret == "" || c.ResetPasswordSecret == "" {
		return errors.New("JWT_SECRET, JWT_ACCOUNT_ACTIVATION and JWT_RESET_PASSWORD must all be set")
	}
	if c.JWTSecret == c.AccountActivationSecret ||
		c.JWTSecret == c.ResetPasswordSecret ||
		c.AccountActivationSecret == c.ResetPasswordSecret {
		return errors.New("session, activation and reset secrets must be distinct")
	}
	return nil
}

func parseDuration(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}
