package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable Load reads, restoring them after the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		EnvBotToken, EnvPort, EnvRunPolling, EnvAllowedUsers, EnvCredentialsFile,
		EnvTokenFile, EnvWebhookURL, EnvDebug, EnvLogFormat, EnvMetricsEnabled, EnvMetricsAddr,
	} {
		if old, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, old) })
		}
		os.Unsetenv(key)
	}
}

func TestLoad_MissingBotToken(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(Overrides{})
	require.Error(t, err)
	assert.Nil(t, cfg)

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, EnvBotToken, cfgErr.Key)
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvBotToken, "123:abc")

	cfg, err := Load(Overrides{})
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.BotToken)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, ":10000", cfg.Addr())
	assert.Equal(t, ModeWebhook, cfg.Mode)
	assert.Nil(t, cfg.AllowedUsers)
	assert.Equal(t, DefaultCredentialsFile, cfg.CredentialsFile)
	assert.Equal(t, DefaultTokenFile, cfg.TokenFile)
	assert.Equal(t, DefaultLogFormat, cfg.LogFormat)
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, DefaultMetricsAddr, cfg.MetricsAddr)
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvBotToken, "123:abc")
	t.Setenv(EnvPort, "8443")
	t.Setenv(EnvAllowedUsers, "111, 222,,333")
	t.Setenv(EnvWebhookURL, "https://bot.example.com/")
	t.Setenv(EnvDebug, "true")
	t.Setenv(EnvLogFormat, "json")
	t.Setenv(EnvMetricsEnabled, "false")

	cfg, err := Load(Overrides{})
	require.NoError(t, err)

	assert.Equal(t, 8443, cfg.Port)
	assert.Equal(t, []string{"111", "222", "333"}, cfg.AllowedUsers)
	assert.Equal(t, "https://bot.example.com", cfg.WebhookURL)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.False(t, cfg.MetricsEnabled)
}

func TestLoad_RunPollingPresence(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvBotToken, "123:abc")
	t.Setenv(EnvRunPolling, "")

	cfg, err := Load(Overrides{})
	require.NoError(t, err)
	assert.Equal(t, ModePolling, cfg.Mode)
}

func TestLoad_OverridesWin(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvBotToken, "from-env")
	t.Setenv(EnvPort, "8000")

	cfg, err := Load(Overrides{
		BotToken:       "from-flag",
		Port:           9000,
		Polling:        true,
		TokenFile:      "/var/lib/bot/token.json",
		DisableMetrics: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "from-flag", cfg.BotToken)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, ModePolling, cfg.Mode)
	assert.Equal(t, "/var/lib/bot/token.json", cfg.TokenFile)
	assert.False(t, cfg.MetricsEnabled)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantKey string
	}{
		{"non-numeric port", map[string]string{EnvPort: "http"}, EnvPort},
		{"port out of range", map[string]string{EnvPort: "70000"}, EnvPort},
		{"bad log format", map[string]string{EnvLogFormat: "xml"}, EnvLogFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(EnvBotToken, "123:abc")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load(Overrides{})
			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr), "expected ConfigurationError, got %v", err)
			assert.Equal(t, tt.wantKey, cfgErr.Key)
		})
	}
}

func TestGoogleFiles(t *testing.T) {
	clearEnv(t)

	creds, token := GoogleFiles(Overrides{})
	assert.Equal(t, DefaultCredentialsFile, creds)
	assert.Equal(t, DefaultTokenFile, token)

	t.Setenv(EnvTokenFile, "/data/token.json")
	creds, token = GoogleFiles(Overrides{CredentialsFile: "/etc/bot/client.json"})
	assert.Equal(t, "/etc/bot/client.json", creds)
	assert.Equal(t, "/data/token.json", token)
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("BOT_TOKEN=dotenv-token\nPORT=7000\n"), 0600))
	t.Cleanup(func() {
		os.Unsetenv(EnvBotToken)
		os.Unsetenv(EnvPort)
	})

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "dotenv-token", os.Getenv(EnvBotToken))

	// Missing files are not an error.
	assert.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}

func TestParseCommaSeparatedList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: nil,
		},
		{
			name:     "single value",
			input:    "123456789",
			expected: []string{"123456789"},
		},
		{
			name:     "multiple values",
			input:    "123,456",
			expected: []string{"123", "456"},
		},
		{
			name:     "values with spaces around comma",
			input:    "123, 456",
			expected: []string{"123", "456"},
		},
		{
			name:     "values with leading/trailing spaces",
			input:    "  123  ,  456  ",
			expected: []string{"123", "456"},
		},
		{
			name:     "trailing comma",
			input:    "123,456,",
			expected: []string{"123", "456"},
		},
		{
			name:     "leading comma",
			input:    ",123,456",
			expected: []string{"123", "456"},
		},
		{
			name:     "multiple consecutive commas",
			input:    "123,,456",
			expected: []string{"123", "456"},
		},
		{
			name:     "only commas and spaces",
			input:    ",  , , ",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseCommaSeparatedList(tt.input))
		})
	}
}
