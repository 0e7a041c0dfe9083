package config

import (
	"os"
	"strconv"
	"time"

	"github.com/vmoranv/hanime-scraper/pkg/models"
)

type Config struct {
	BaseURL      string
	ProxyURL     string
	HTTPPort     string
	FetchTimeout time.Duration
	ImageTimeout time.Duration
	RateLimitRPS float64
	RedisURL     string
	CacheTTL     time.Duration
	NatsURL      string
}

func Load() *Config {
	return &Config{
		BaseURL:      getEnv("BASE_URL", models.BaseURL),
		ProxyURL:     getEnv("PROXY_URL", ""),
		HTTPPort:     getEnv("HTTP_PORT", "8083"),
		FetchTimeout: getEnvDuration("FETCH_TIMEOUT", 30*time.Second),
		ImageTimeout: getEnvDuration("IMAGE_TIMEOUT", 30*time.Second),
		RateLimitRPS: getEnvFloat("RATE_LIMIT_RPS", 2),
		RedisURL:     getEnv("REDIS_URL", ""),
		CacheTTL:     getEnvDuration("CACHE_TTL", 10*time.Minute),
		NatsURL:      getEnv("NATS_URL", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
