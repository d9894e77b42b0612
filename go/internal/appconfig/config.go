// Package appconfig loads the file and environment configuration shared by
// the service binary and the maintenance tools.
package appconfig

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Geocoding struct {
		EnabledProviders []string      `yaml:"enabled_providers"`
		RateLimit        time.Duration `yaml:"rate_limit"`
		UserAgent        string        `yaml:"user_agent"`
		Countries        []string      `yaml:"countries"`
		CacheTTL         time.Duration `yaml:"cache_ttl"`
	} `yaml:"geocoding"`
	Backfill struct {
		Interval time.Duration `yaml:"interval"`
	} `yaml:"backfill"`
	Discovery struct {
		CandidateLimit int `yaml:"candidate_limit"`
	} `yaml:"discovery"`
	Logos struct {
		Bucket        string `yaml:"bucket"`
		Endpoint      string `yaml:"endpoint"`
		Region        string `yaml:"region"`
		PublicBaseURL string `yaml:"public_base_url"`
	} `yaml:"logos"`
}

// GetEnv returns the variable or defaultValue when it is unset
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// Load reads a yaml config file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// SetupLogging configures the global zerolog logger from LOG_LEVEL
func SetupLogging() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	level, err := zerolog.ParseLevel(strings.ToLower(GetEnv("LOG_LEVEL", "info")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}
