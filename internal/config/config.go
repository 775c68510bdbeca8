package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// StorageType selects where source image pairs are fetched from.
type StorageType string

const (
	StorageHTTP  StorageType = "http"
	StorageAzure StorageType = "azure"
	StorageLocal StorageType = "local"
)

type Config struct {
	Host               string
	Port               string
	RequestTimeout     time.Duration
	ImageFetchTimeout  time.Duration
	ExtractionTimeout  time.Duration
	MaxRequestBodySize int64

	// Alpha recovery defaults. DefaultThreshold is the snapping threshold
	// applied when a request does not supply its own.
	DefaultThreshold float64
	MaxWorkers       int

	Storage          StorageType
	AzureAccountName string
	AzureAccountKey  string
}

func (c *Config) ServerAddress() string {
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Host:               getEnvOrDefault("HOST", "0.0.0.0"),
		Port:               getEnvOrDefault("PORT", "8080"),
		RequestTimeout:     parseDurationOrDefault("REQUEST_TIMEOUT", 30*time.Second),
		ImageFetchTimeout:  parseDurationOrDefault("IMAGE_FETCH_TIMEOUT", 15*time.Second),
		ExtractionTimeout:  parseDurationOrDefault("EXTRACTION_TIMEOUT", 20*time.Second),
		MaxRequestBodySize: parseIntOrDefault("MAX_REQUEST_BODY_SIZE", 10*1024*1024), // 10MB
		DefaultThreshold:   parseFloatOrDefault("DEFAULT_THRESHOLD", 0.02),
		MaxWorkers:         int(parseIntOrDefault("MAX_WORKERS", 0)), // 0 means CPU count
		Storage:            StorageType(getEnvOrDefault("STORAGE_TYPE", string(StorageHTTP))),
		AzureAccountName:   os.Getenv("AZURE_ACCOUNT_NAME"),
		AzureAccountKey:    os.Getenv("AZURE_ACCOUNT_KEY"),
	}

	// Validate port is numeric and in range
	p, err := strconv.Atoi(strings.TrimSpace(cfg.Port))
	if err != nil || p < 1 || p > 65535 {
		return nil, fmt.Errorf("invalid PORT: %q", cfg.Port)
	}
	if cfg.MaxRequestBodySize <= 0 {
		return nil, fmt.Errorf("MAX_REQUEST_BODY_SIZE must be > 0 (got %d)", cfg.MaxRequestBodySize)
	}
	if cfg.RequestTimeout <= 0 || cfg.ImageFetchTimeout <= 0 || cfg.ExtractionTimeout <= 0 {
		return nil, fmt.Errorf("timeouts must be > 0 (got request=%s, fetch=%s, extraction=%s)",
			cfg.RequestTimeout, cfg.ImageFetchTimeout, cfg.ExtractionTimeout)
	}
	if cfg.DefaultThreshold < 0 || cfg.DefaultThreshold > 1 {
		return nil, fmt.Errorf("DEFAULT_THRESHOLD must be in [0,1] (got %g)", cfg.DefaultThreshold)
	}
	if cfg.MaxWorkers < 0 {
		return nil, fmt.Errorf("MAX_WORKERS must be >= 0 (got %d)", cfg.MaxWorkers)
	}
	switch cfg.Storage {
	case StorageHTTP, StorageLocal:
	case StorageAzure:
		if cfg.AzureAccountName == "" || cfg.AzureAccountKey == "" {
			return nil, fmt.Errorf("STORAGE_TYPE=azure requires AZURE_ACCOUNT_NAME and AZURE_ACCOUNT_KEY")
		}
	default:
		return nil, fmt.Errorf("invalid STORAGE_TYPE: %q", cfg.Storage)
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
