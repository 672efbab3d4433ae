package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application settings.
type Config struct {
	DatabaseURL  string
	JWTSecretKey string
	ServerPort   int
	LogLevel     slog.Level

	// TiebreakPreset is used while no format is active.
	TiebreakPreset           string
	ProvisionalGroupOutcomes bool
	CORSAllowedOrigins       []string

	// Snapshot publishing to Cloudflare R2 is off unless every R2 field is set.
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string
}

// SnapshotsEnabled reports whether the R2 settings are complete.
func (c *Config) SnapshotsEnabled() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" &&
		c.R2BucketName != "" && c.R2PublicBaseURL != ""
}

// Load reads the configuration from the environment. A .env file, when
// present, is loaded first.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	jwtKey := os.Getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	portStr := os.Getenv("SERVER_PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	var level slog.Level
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if err := level.UnmarshalText([]byte(raw)); err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", raw, err)
		}
	}

	preset := strings.ToLower(strings.TrimSpace(os.Getenv("TIEBREAK_PRESET")))
	switch preset {
	case "":
		preset = "default"
	case "default", "fifa2018", "euro2020":
	default:
		return nil, fmt.Errorf("TIEBREAK_PRESET must be default, fifa2018 or euro2020, got %q", preset)
	}

	provisional := false
	if raw := os.Getenv("PROVISIONAL_GROUP_OUTCOMES"); raw != "" {
		if provisional, err = strconv.ParseBool(raw); err != nil {
			return nil, fmt.Errorf("invalid PROVISIONAL_GROUP_OUTCOMES: %w", err)
		}
	}

	origins := []string{"*"}
	if raw := os.Getenv("CORS_ALLOWED_ORIGINS"); raw != "" {
		origins = origins[:0]
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	cfg := &Config{
		DatabaseURL:              dbURL,
		JWTSecretKey:             jwtKey,
		ServerPort:               port,
		LogLevel:                 level,
		TiebreakPreset:           preset,
		ProvisionalGroupOutcomes: provisional,
		CORSAllowedOrigins:       origins,
		R2AccountID:              os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:            os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey:        os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:             os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:          os.Getenv("R2_PUBLIC_BASE_URL"),
	}

	return cfg, nil
}
