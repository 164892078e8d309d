package google

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func writeRaw(path, content string) error {
	return os.WriteFile(path, []byte(content), 0600)
}

func TestTokenFile_LoadMissing(t *testing.T) {
	_, err := NewTokenFile(filepath.Join(t.TempDir(), "token.json")).Load()
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestTokenFile_LoadMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "garbage"},
		{"no tokens", `{"client_id":"cid"}`},
		{"bad expiry", `{"token":"t","expiry":"yesterday"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "token.json")
			require.NoError(t, writeRaw(path, tt.content))
			_, err := NewTokenFile(path).Load()
			require.Error(t, err)
			assert.NotErrorIs(t, err, ErrNoToken)
		})
	}
}

func TestTokenFile_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token.json")
	expiry := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	f := NewTokenFile(path)

	require.NoError(t, f.Save(&Credential{
		Token: &oauth2.Token{
			AccessToken:  "access",
			RefreshToken: "refresh",
			Expiry:       expiry,
		},
		Scopes:   []string{MeetSpaceCreatedScope},
		ClientID: "cid",
		TokenURI: "https://oauth2.googleapis.com/token",
	}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	got, err := f.Load()
	require.NoError(t, err)
	assert.Equal(t, "access", got.Token.AccessToken)
	assert.Equal(t, "refresh", got.Token.RefreshToken)
	assert.True(t, expiry.Equal(got.Token.Expiry))
	assert.Equal(t, []string{MeetSpaceCreatedScope}, got.Scopes)
}

func TestLoadOAuthConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeClientSecrets(t, dir, "https://oauth2.googleapis.com/token")

	conf, err := LoadOAuthConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "client-id.apps.googleusercontent.com", conf.ClientID)
	assert.Equal(t, DefaultOAuthScopes, conf.Scopes)

	_, err = LoadOAuthConfig(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestConfigFromCredential(t *testing.T) {
	conf := configFromCredential(&Credential{ClientID: "cid", TokenURI: "http://token.local"}, DefaultOAuthScopes)
	assert.Equal(t, "cid", conf.ClientID)
	assert.Equal(t, "http://token.local", conf.Endpoint.TokenURL)
	assert.Equal(t, DefaultOAuthScopes, conf.Scopes)
}
