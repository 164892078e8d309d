package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvBotToken        = "BOT_TOKEN"
	EnvPort            = "PORT"
	EnvRunPolling      = "RUN_POLLING"
	EnvAllowedUsers    = "ALLOWED_USERS"
	EnvCredentialsFile = "CREDENTIALS_FILE"
	EnvTokenFile       = "TOKEN_FILE"
	EnvWebhookURL      = "WEBHOOK_URL"
	EnvDebug           = "BOT_DEBUG"
	EnvLogFormat       = "LOG_FORMAT"
	EnvMetricsEnabled  = "METRICS_ENABLED"
	EnvMetricsAddr     = "METRICS_ADDR"
)

// Defaults applied when neither a flag nor the environment sets a value.
const (
	DefaultPort            = 10000
	DefaultCredentialsFile = "credentials.json"
	DefaultTokenFile       = "token.json"
	DefaultLogFormat       = "text"
	DefaultMetricsAddr     = ":9090"
)

// Mode selects the transport the bot receives updates through.
type Mode string

const (
	ModeWebhook Mode = "webhook"
	ModePolling Mode = "polling"
)

// ConfigurationError reports a missing or invalid setting at startup.
type ConfigurationError struct {
	// Key is the environment variable (or flag) at fault
	Key string

	// Reason describes what is wrong with it
	Reason string
}

// Error implements the error interface
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s %s", e.Key, e.Reason)
}

// Config holds the resolved process configuration.
type Config struct {
	BotToken        string
	Port            int
	Mode            Mode
	AllowedUsers    []string
	CredentialsFile string
	TokenFile       string
	WebhookURL      string
	Debug           bool
	LogFormat       string
	MetricsEnabled  bool
	MetricsAddr     string
}

// Overrides carries values set explicitly on the command line.
// Zero values mean "not set" and fall through to the environment.
type Overrides struct {
	BotToken        string
	Port            int
	Polling         bool
	CredentialsFile string
	TokenFile       string
	WebhookURL      string
	Debug           bool
	LogFormat       string
	MetricsAddr     string
	DisableMetrics  bool
}

// LoadDotEnv loads variables from the given .env files into the process
// environment without overriding variables that are already set.
// Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// Load resolves the configuration from overrides and the environment.
// It returns a *ConfigurationError when a required value is missing or invalid.
func Load(o Overrides) (*Config, error) {
	credentialsFile, tokenFile := GoogleFiles(o)
	cfg := &Config{
		BotToken:        firstNonEmpty(o.BotToken, os.Getenv(EnvBotToken)),
		CredentialsFile: credentialsFile,
		TokenFile:       tokenFile,
		WebhookURL:      strings.TrimRight(firstNonEmpty(o.WebhookURL, os.Getenv(EnvWebhookURL)), "/"),
		LogFormat:       firstNonEmpty(o.LogFormat, os.Getenv(EnvLogFormat), DefaultLogFormat),
		MetricsAddr:     firstNonEmpty(o.MetricsAddr, os.Getenv(EnvMetricsAddr), DefaultMetricsAddr),
		AllowedUsers:    ParseCommaSeparatedList(os.Getenv(EnvAllowedUsers)),
		Debug:           o.Debug || getEnvBoolOrDefault(EnvDebug, false),
		MetricsEnabled:  !o.DisableMetrics && getEnvBoolOrDefault(EnvMetricsEnabled, true),
		Mode:            ModeWebhook,
	}

	if cfg.BotToken == "" {
		return nil, &ConfigurationError{Key: EnvBotToken, Reason: "is not set"}
	}

	// RUN_POLLING switches modes by presence alone, whatever its value.
	if _, ok := os.LookupEnv(EnvRunPolling); ok || o.Polling {
		cfg.Mode = ModePolling
	}

	port, err := resolvePort(o.Port)
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, &ConfigurationError{Key: EnvLogFormat, Reason: fmt.Sprintf("must be text or json, got %q", cfg.LogFormat)}
	}

	return cfg, nil
}

// GoogleFiles resolves the OAuth client secrets and token file paths on
// their own, for commands that do not talk to Telegram.
func GoogleFiles(o Overrides) (credentialsFile, tokenFile string) {
	return firstNonEmpty(o.CredentialsFile, os.Getenv(EnvCredentialsFile), DefaultCredentialsFile),
		firstNonEmpty(o.TokenFile, os.Getenv(EnvTokenFile), DefaultTokenFile)
}

// Addr returns the listen address for the webhook server.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

func resolvePort(flagPort int) (int, error) {
	if flagPort != 0 {
		if flagPort < 0 || flagPort > 65535 {
			return 0, &ConfigurationError{Key: "--port", Reason: fmt.Sprintf("out of range: %d", flagPort)}
		}
		return flagPort, nil
	}

	raw := os.Getenv(EnvPort)
	if raw == "" {
		return DefaultPort, nil
	}
	port, err := strconv.Atoi(raw)
	if err != nil || port <= 0 || port > 65535 {
		return 0, &ConfigurationError{Key: EnvPort, Reason: fmt.Sprintf("must be a TCP port number, got %q", raw)}
	}
	return port, nil
}

// ParseCommaSeparatedList splits a comma-separated string into trimmed,
// non-empty values. It returns nil when nothing remains.
func ParseCommaSeparatedList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// getEnvBoolOrDefault returns the boolean value of an environment variable or a default value.
func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}
