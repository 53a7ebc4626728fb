package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"skyglance.app/errors"
)

// Config represents the application configuration structure
type Config struct {
	Server  ServerConfig  `split_words:"true"`
	Weather WeatherConfig `split_words:"true"`
	Cache   CacheConfig   `split_words:"true"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

// WeatherConfig contains settings for the weather data provider.
// The API key is required up front: a missing credential is a startup
// configuration error, not a silently failing request.
type WeatherConfig struct {
	APIKey  string `envconfig:"WEATHER_API_KEY" required:"true"`
	BaseURL string `envconfig:"WEATHER_API_BASE_URL" default:"https://api.openweathermap.org/data/2.5"`
}

// CacheConfig contains settings for the weather response cache
type CacheConfig struct {
	Type       string `envconfig:"CACHE_TYPE" default:"memory"`
	TTLMinutes int    `envconfig:"CACHE_TTL_MINUTES" default:"10"`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
}

// TTL returns the configured cache TTL as a duration
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

// LoadConfig loads and validates application configuration from environment variables
func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Weather.Validate(); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	return nil
}

// Validate checks server configuration
func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	return nil
}

// Validate checks weather provider configuration
func (w *WeatherConfig) Validate() error {
	if w.APIKey == "" {
		return errors.NewConfigurationError("WEATHER_API_KEY is required", nil)
	}
	if w.BaseURL == "" {
		return errors.NewConfigurationError("WEATHER_API_BASE_URL cannot be empty", nil)
	}
	if !strings.HasPrefix(w.BaseURL, "http://") && !strings.HasPrefix(w.BaseURL, "https://") {
		return errors.NewConfigurationError("WEATHER_API_BASE_URL must start with http:// or https://", nil)
	}
	return nil
}

// Validate checks cache configuration
func (c *CacheConfig) Validate() error {
	validTypes := []string{"memory", "redis"}
	valid := false
	for _, t := range validTypes {
		if c.Type == t {
			valid = true
			break
		}
	}
	if !valid {
		return errors.NewConfigurationError(
			fmt.Sprintf("CACHE_TYPE must be one of: %s", strings.Join(validTypes, ", ")), nil)
	}
	if c.TTLMinutes < 1 {
		return errors.NewConfigurationError("CACHE_TTL_MINUTES must be at least 1 minute", nil)
	}
	if c.TTLMinutes > 1440 {
		return errors.NewConfigurationError("CACHE_TTL_MINUTES cannot exceed 1440 minutes (24 hours)", nil)
	}
	if c.Type == "redis" && c.RedisAddr == "" {
		return errors.NewConfigurationError("REDIS_ADDR cannot be empty when CACHE_TYPE is redis", nil)
	}
	return nil
}
