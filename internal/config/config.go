// README: Config loader; reads .env then VOYAGE_* env vars with defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AIConfig struct {
	Provider     string // gemini | openai
	GeminiKey    string
	OpenAIKey    string
	ChatModel    string
	PlanModel    string
	HistoryLimit int
	ChatTimeout  time.Duration
	PlanTimeout  time.Duration
}

type ImagesConfig struct {
	MapsKey      string
	PhotoBaseURL string
	MaxWidth     int
	Concurrency  int
	CacheTTL     time.Duration
	Timeout      time.Duration
}

type Config struct {
	HTTP struct {
		Addr           string
		AllowedOrigins []string
		RatePerMinute  int
		RateBurst      int
	}
	DB struct {
		DSN     string
		Migrate bool
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	Session struct {
		Store string // memory | redis
		TTL   time.Duration
	}
	AI     AIConfig
	Images ImagesConfig
	Quota  struct {
		Allowance int
		PlanCost  int
	}
	Firebase struct {
		ProjectID       string
		CredentialsFile string
		DevAuth         bool
	}
}

// Load reads the process environment. A .env file in the working directory
// is applied first when present; it never overrides variables already set.
func Load() (Config, error) {
	if err := loadDotEnv(); err != nil {
		return Config{}, err
	}

	var cfg Config
	cfg.HTTP.Addr = envOrDefault("VOYAGE_HTTP_ADDR", ":8080")
	cfg.HTTP.AllowedOrigins = envList("VOYAGE_CORS_ORIGINS", "http://localhost:5173")
	cfg.HTTP.RatePerMinute = envOrDefaultInt("VOYAGE_RATE_PER_MINUTE", 60)
	cfg.HTTP.RateBurst = envOrDefaultInt("VOYAGE_RATE_BURST", 10)

	cfg.DB.DSN = os.Getenv("VOYAGE_DB_DSN")
	cfg.DB.Migrate = envOrDefaultBool("VOYAGE_DB_MIGRATE", false)

	cfg.Redis.Addr = envOrDefault("VOYAGE_REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = os.Getenv("VOYAGE_REDIS_PASSWORD")
	cfg.Redis.DB = envOrDefaultInt("VOYAGE_REDIS_DB", 0)

	cfg.Session.Store = strings.ToLower(envOrDefault("VOYAGE_SESSION_STORE", "memory"))
	cfg.Session.TTL = envOrDefaultDuration("VOYAGE_SESSION_TTL", 24*time.Hour)

	cfg.AI.Provider = strings.ToLower(envOrDefault("VOYAGE_AI_PROVIDER", "gemini"))
	cfg.AI.GeminiKey = os.Getenv("GEMINI_API_KEY")
	cfg.AI.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	cfg.AI.ChatModel = os.Getenv("VOYAGE_AI_CHAT_MODEL")
	cfg.AI.PlanModel = os.Getenv("VOYAGE_AI_PLAN_MODEL")
	cfg.AI.HistoryLimit = envOrDefaultInt("VOYAGE_AI_HISTORY_LIMIT", 40)
	cfg.AI.ChatTimeout = envOrDefaultDuration("VOYAGE_AI_CHAT_TIMEOUT", 30*time.Second)
	cfg.AI.PlanTimeout = envOrDefaultDuration("VOYAGE_AI_PLAN_TIMEOUT", 120*time.Second)

	cfg.Images = readImages()

	cfg.Quota.Allowance = envOrDefaultInt("VOYAGE_QUOTA_MONTHLY", 100)
	cfg.Quota.PlanCost = envOrDefaultInt("VOYAGE_QUOTA_PLAN_COST", 5)

	cfg.Firebase.ProjectID = os.Getenv("VOYAGE_FIREBASE_PROJECT_ID")
	cfg.Firebase.CredentialsFile = os.Getenv("VOYAGE_FIREBASE_CREDENTIALS")
	cfg.Firebase.DevAuth = envOrDefaultBool("VOYAGE_AUTH_DEV", false)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadImages reads only the image settings, for tools that need no model.
func LoadImages() (ImagesConfig, error) {
	if err := loadDotEnv(); err != nil {
		return ImagesConfig{}, err
	}
	return readImages(), nil
}

func readImages() ImagesConfig {
	return ImagesConfig{
		MapsKey:      os.Getenv("GOOGLE_MAPS_API_KEY"),
		PhotoBaseURL: envOrDefault("VOYAGE_PHOTO_BASE_URL", "/api/photos"),
		MaxWidth:     envOrDefaultInt("VOYAGE_PHOTO_MAX_WIDTH", 800),
		Concurrency:  envOrDefaultInt("VOYAGE_IMAGES_CONCURRENCY", 4),
		CacheTTL:     envOrDefaultDuration("VOYAGE_IMAGES_CACHE_TTL", 6*time.Hour),
		Timeout:      envOrDefaultDuration("VOYAGE_IMAGES_TIMEOUT", 20*time.Second),
	}
}

func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

func (c Config) validate() error {
	switch c.AI.Provider {
	case "gemini":
		if c.AI.GeminiKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for provider gemini")
		}
	case "openai":
		if c.AI.OpenAIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for provider openai")
		}
	default:
		return fmt.Errorf("unknown VOYAGE_AI_PROVIDER %q", c.AI.Provider)
	}
	if c.Quota.PlanCost > c.Quota.Allowance {
		return fmt.Errorf("VOYAGE_QUOTA_PLAN_COST (%d) exceeds VOYAGE_QUOTA_MONTHLY (%d)", c.Quota.PlanCost, c.Quota.Allowance)
	}
	switch c.Session.Store {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown VOYAGE_SESSION_STORE %q", c.Session.Store)
	}
	return nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func envList(key, def string) []string {
	var out []string
	for _, part := range strings.Split(envOrDefault(key, def), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
