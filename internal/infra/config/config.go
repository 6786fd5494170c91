package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Metadata MetadataConfig `yaml:"metadata"`
	LLM      LLMConfig      `yaml:"llm"`
	Overview OverviewConfig `yaml:"overview"`
	Blog     BlogConfig     `yaml:"blog"`
	Access   AccessConfig   `yaml:"access"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool         `yaml:"enabled"`
	RequestsPerMinute int          `yaml:"requestsPerMinute"`
	Burst             int          `yaml:"burst"`
	Valkey            ValkeyConfig `yaml:"valkey"`
}

// ValkeyConfig points the rate limiter at a shared counter store.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// MetadataConfig tunes the page fetcher used by the metadata extractor.
type MetadataConfig struct {
	FetchTimeout time.Duration `yaml:"fetchTimeout"`
	MaxBodyBytes int64         `yaml:"maxBodyBytes"`
	UserAgent    string        `yaml:"userAgent"`
}

// LLMConfig contains settings for the OpenAI compatible completion API.
type LLMConfig struct {
	APIKey        string        `yaml:"apiKey"`
	BaseURL       string        `yaml:"baseUrl"`
	Model         string        `yaml:"model"`
	Temperature   float32       `yaml:"temperature"`
	Timeout       time.Duration `yaml:"timeout"`
	TokenEncoding string        `yaml:"tokenEncoding"`
}

// OverviewConfig controls the overview generator prompt.
type OverviewConfig struct {
	MaxWords int `yaml:"maxWords"`
}

// BlogConfig selects where markdown posts are read from.
type BlogConfig struct {
	Source string   `yaml:"source"`
	Dir    string   `yaml:"dir"`
	S3     S3Config `yaml:"s3"`
}

// S3Config contains connection information for an S3 compatible bucket.
type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Prefix    string `yaml:"prefix"`
}

// AccessConfig enables the bearer token guard on the generate endpoint.
type AccessConfig struct {
	Secret string `yaml:"secret"`
	Issuer string `yaml:"issuer"`
}

const (
	BlogSourceFS = "fs"
	BlogSourceS3 = "s3"
)

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("RATE_LIMIT_VALKEY_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Valkey.Enabled = parseBool(v)
	}
	if v := os.Getenv("RATE_LIMIT_VALKEY_ADDR"); v != "" {
		cfg.HTTP.RateLimit.Valkey.Addr = v
	}
	if v := os.Getenv("METADATA_FETCH_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Metadata.FetchTimeout = parsed
		}
	}
	if v := os.Getenv("METADATA_MAX_BODY_BYTES"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Metadata.MaxBodyBytes = parsed
		}
	}
	if v := os.Getenv("GROQ_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}
	if v := os.Getenv("LLM_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.LLM.Timeout = parsed
		}
	}
	if v := os.Getenv("BLOG_SOURCE"); v != "" {
		cfg.Blog.Source = strings.ToLower(v)
	}
	if v := os.Getenv("BLOG_DIR"); v != "" {
		cfg.Blog.Dir = v
	}
	if v := os.Getenv("BLOG_S3_ENDPOINT"); v != "" {
		cfg.Blog.S3.Endpoint = v
	}
	if v := os.Getenv("BLOG_S3_ACCESS_KEY"); v != "" {
		cfg.Blog.S3.AccessKey = v
	}
	if v := os.Getenv("BLOG_S3_SECRET_KEY"); v != "" {
		cfg.Blog.S3.SecretKey = v
	}
	if v := os.Getenv("BLOG_S3_BUCKET"); v != "" {
		cfg.Blog.S3.Bucket = v
	}
	if v := os.Getenv("BLOG_S3_REGION"); v != "" {
		cfg.Blog.S3.Region = v
	}
	if v := os.Getenv("BLOG_S3_PREFIX"); v != "" {
		cfg.Blog.S3.Prefix = v
	}
	if v := os.Getenv("ACCESS_JWT_SECRET"); v != "" {
		cfg.Access.Secret = v
	}
	if v := os.Getenv("ACCESS_JWT_ISSUER"); v != "" {
		cfg.Access.Issuer = v
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 90 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
				Valkey: ValkeyConfig{
					Prefix: "ratelimit",
				},
			},
		},
		Metadata: MetadataConfig{
			FetchTimeout: 10 * time.Second,
			MaxBodyBytes: 5 << 20,
			UserAgent:    "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
		},
		LLM: LLMConfig{
			BaseURL:       "https://api.groq.com/openai/v1",
			Model:         "llama-3.1-8b-instant",
			Temperature:   0.7,
			Timeout:       60 * time.Second,
			TokenEncoding: "cl100k_base",
		},
		Overview: OverviewConfig{
			MaxWords: 200,
		},
		Blog: BlogConfig{
			Source: BlogSourceFS,
			Dir:    "content/blog",
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
		if c.HTTP.RateLimit.Valkey.Enabled && strings.TrimSpace(c.HTTP.RateLimit.Valkey.Addr) == "" {
			return errors.New("http.rateLimit.valkey.addr cannot be empty when valkey is enabled")
		}
	}
	if c.Metadata.FetchTimeout <= 0 {
		return errors.New("metadata.fetchTimeout must be positive")
	}
	if c.Metadata.MaxBodyBytes <= 0 {
		return errors.New("metadata.maxBodyBytes must be positive")
	}
	if strings.TrimSpace(c.LLM.BaseURL) == "" {
		return errors.New("llm.baseUrl cannot be empty")
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		return errors.New("llm.model cannot be empty")
	}
	if c.LLM.Timeout <= 0 {
		return errors.New("llm.timeout must be positive")
	}
	if c.Overview.MaxWords <= 0 {
		return errors.New("overview.maxWords must be positive")
	}
	switch c.Blog.Source {
	case BlogSourceFS:
		if strings.TrimSpace(c.Blog.Dir) == "" {
			return errors.New("blog.dir cannot be empty")
		}
	case BlogSourceS3:
		if strings.TrimSpace(c.Blog.S3.Endpoint) == "" || strings.TrimSpace(c.Blog.S3.Bucket) == "" {
			return errors.New("blog.s3.endpoint and blog.s3.bucket are required for the s3 source")
		}
	default:
		return fmt.Errorf("blog.source %q is not supported", c.Blog.Source)
	}
	return nil
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
