package connection

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Auth types supported by the connection.
const (
	AuthBasic = "basic"
	AuthNTLM  = "ntlm"
)

// Config holds the Exchange connection settings.
type Config struct {
	ServerURL     string
	Username      string
	Password      string
	Domain        string
	AuthType      string
	Timeout       time.Duration
	MaxRetries    int
	SkipTLSVerify bool
}

// LoadConfig reads the connection settings from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerURL:     getEnv("EWS_SERVER_URL", ""),
		Username:      getEnv("EWS_USERNAME", ""),
		Password:      getEnv("EWS_PASSWORD", ""),
		Domain:        getEnv("EWS_DOMAIN", ""),
		AuthType:      strings.ToLower(getEnv("EWS_AUTH_TYPE", AuthBasic)),
		Timeout:       getDurationEnv("EWS_TIMEOUT", 30*time.Second),
		MaxRetries:    getIntEnv("EWS_MAX_RETRIES", 3),
		SkipTLSVerify: getBoolEnv("EWS_SKIP_TLS_VERIFY", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.ServerURL == "" {
		return fmt.Errorf("EWS_SERVER_URL is required")
	}
	if err := ValidateServerURL(c.ServerURL); err != nil {
		return err
	}
	if c.Username == "" {
		return fmt.Errorf("EWS_USERNAME is required")
	}
	if c.Password == "" {
		return fmt.Errorf("EWS_PASSWORD is required")
	}
	if c.AuthType != AuthBasic && c.AuthType != AuthNTLM {
		return fmt.Errorf("EWS_AUTH_TYPE must be %q or %q", AuthBasic, AuthNTLM)
	}
	return nil
}

// AuthUsername returns the username formatted for authentication:
// "DOMAIN\username" when a domain is configured, the bare username
// otherwise.
func (c *Config) AuthUsername() string {
	if c.Domain != "" {
		return c.Domain + "\\" + c.Username
	}
	return c.Username
}

// ValidateServerURL validates the Exchange endpoint URL.
func ValidateServerURL(serverURL string) error {
	if serverURL == "" {
		return fmt.Errorf("EWS server URL is required")
	}
	parsed, err := url.Parse(serverURL)
	if err != nil {
		return fmt.Errorf("invalid EWS server URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("EWS server URL must use http or https scheme")
	}
	return nil
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
