package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Google    GoogleConfig
	LLM       LLMConfig
	Runner    RunnerConfig
	CORS      CORSConfig
	Log       LogConfig
	Analytics AnalyticsConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

// GoogleConfig carries the OAuth client used to verify login ID tokens.
type GoogleConfig struct {
	ClientID string
}

// ProviderConfig points at one OpenAI-compatible chat completion endpoint.
type ProviderConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// LLMConfig configures the two model providers: one for question
// generation, one for grading, hints and follow-ups.
type LLMConfig struct {
	Generator ProviderConfig
	Grader    ProviderConfig
}

// RunnerConfig configures the external code-execution API.
type RunnerConfig struct {
	URL     string
	APIKey  string
	Host    string
	Timeout time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// AnalyticsConfig governs cache behaviour for analytics endpoints.
type AnalyticsConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
		Issuer:     v.GetString("JWT_ISSUER"),
	}

	cfg.Google = GoogleConfig{ClientID: v.GetString("GOOGLE_CLIENT_ID")}

	cfg.LLM = LLMConfig{
		Generator: ProviderConfig{
			BaseURL: v.GetString("LLM_GENERATOR_BASE_URL"),
			APIKey:  v.GetString("LLM_GENERATOR_API_KEY"),
			Model:   v.GetString("LLM_GENERATOR_MODEL"),
			Timeout: parseDuration(v.GetString("LLM_GENERATOR_TIMEOUT"), 60*time.Second),
		},
		Grader: ProviderConfig{
			BaseURL: v.GetString("LLM_GRADER_BASE_URL"),
			APIKey:  v.GetString("LLM_GRADER_API_KEY"),
			Model:   v.GetString("LLM_GRADER_MODEL"),
			Timeout: parseDuration(v.GetString("LLM_GRADER_TIMEOUT"), 60*time.Second),
		},
	}

	cfg.Runner = RunnerConfig{
		URL:     v.GetString("RUNNER_API_URL"),
		APIKey:  v.GetString("RUNNER_API_KEY"),
		Host:    v.GetString("RUNNER_API_HOST"),
		Timeout: parseDuration(v.GetString("RUNNER_TIMEOUT"), 30*time.Second),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Analytics = AnalyticsConfig{
		CacheEnabled: v.GetBool("ANALYTICS_CACHE_ENABLED"),
		CacheTTL:     parseDuration(v.GetString("ANALYTICS_CACHE_TTL"), 10*time.Minute),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "codelab")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("JWT_ISSUER", "codelab-api")

	v.SetDefault("GOOGLE_CLIENT_ID", "")

	v.SetDefault("LLM_GENERATOR_BASE_URL", "")
	v.SetDefault("LLM_GENERATOR_API_KEY", "")
	v.SetDefault("LLM_GENERATOR_MODEL", "gpt-4o-mini")
	v.SetDefault("LLM_GENERATOR_TIMEOUT", "60s")
	v.SetDefault("LLM_GRADER_BASE_URL", "")
	v.SetDefault("LLM_GRADER_API_KEY", "")
	v.SetDefault("LLM_GRADER_MODEL", "gpt-4o-mini")
	v.SetDefault("LLM_GRADER_TIMEOUT", "60s")

	v.SetDefault("RUNNER_API_URL", "https://onecompiler-apis.p.rapidapi.com/api/v1/run")
	v.SetDefault("RUNNER_API_KEY", "")
	v.SetDefault("RUNNER_API_HOST", "onecompiler-apis.p.rapidapi.com")
	v.SetDefault("RUNNER_TIMEOUT", "30s")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ANALYTICS_CACHE_ENABLED", false)
	v.SetDefault("ANALYTICS_CACHE_TTL", "10m")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
