package google

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Credential is the persisted Google OAuth2 grant.
type Credential struct {
	Token        *oauth2.Token
	Scopes       []string
	ClientID     string
	ClientSecret string
	TokenURI     string
}

// storedCredential is the on-disk form. It matches Google's "authorized
// user" JSON so token files stay interchangeable with other Google tooling.
type storedCredential struct {
	Token        string   `json:"token"`
	RefreshToken string   `json:"refresh_token,omitempty"`
	TokenURI     string   `json:"token_uri,omitempty"`
	ClientID     string   `json:"client_id,omitempty"`
	ClientSecret string   `json:"client_secret,omitempty"`
	Scopes       []string `json:"scopes,omitempty"`
	Expiry       string   `json:"expiry,omitempty"`
}

// TokenFile reads and writes a Credential at a fixed path.
type TokenFile struct {
	path string
}

// NewTokenFile returns a TokenFile for path.
func NewTokenFile(path string) *TokenFile {
	return &TokenFile{path: path}
}

// Path returns the location of the token file.
func (f *TokenFile) Path() string {
	return f.path
}

// Load reads the credential. It returns ErrNoToken when the file does not
// exist and a descriptive error when it cannot be parsed.
func (f *TokenFile) Load() (*Credential, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoToken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token file %s: %w", f.path, err)
	}

	var sc storedCredential
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("malformed token file %s: %w", f.path, err)
	}
	if sc.Token == "" && sc.RefreshToken == "" {
		return nil, fmt.Errorf("malformed token file %s: neither token nor refresh_token is set", f.path)
	}

	tok := &oauth2.Token{
		AccessToken:  sc.Token,
		TokenType:    "Bearer",
		RefreshToken: sc.RefreshToken,
	}
	if sc.Expiry != "" {
		expiry, err := time.Parse(time.RFC3339, sc.Expiry)
		if err != nil {
			return nil, fmt.Errorf("malformed token file %s: invalid expiry: %w", f.path, err)
		}
		tok.Expiry = expiry
	}

	return &Credential{
		Token:        tok,
		Scopes:       sc.Scopes,
		ClientID:     sc.ClientID,
		ClientSecret: sc.ClientSecret,
		TokenURI:     sc.TokenURI,
	}, nil
}

// Save writes the credential atomically with owner-only permissions.
func (f *TokenFile) Save(c *Credential) error {
	sc := storedCredential{
		Token:        c.Token.AccessToken,
		RefreshToken: c.Token.RefreshToken,
		TokenURI:     c.TokenURI,
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		Scopes:       c.Scopes,
	}
	if !c.Token.Expiry.IsZero() {
		sc.Expiry = c.Token.Expiry.UTC().Format(time.RFC3339)
	}

	data, err := json.MarshalIndent(sc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".token-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temporary token file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write token file: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set token file permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("failed to replace token file: %w", err)
	}
	return nil
}

// LoadOAuthConfig builds the OAuth2 client configuration from a client
// secrets file downloaded from the Google Cloud console.
func LoadOAuthConfig(credentialsFile string, scopes ...string) (*oauth2.Config, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read client secrets %s: %w", credentialsFile, err)
	}
	if len(scopes) == 0 {
		scopes = DefaultOAuthScopes
	}
	conf, err := google.ConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse client secrets %s: %w", credentialsFile, err)
	}
	return conf, nil
}

// configFromCredential rebuilds a client configuration from the client
// identity stored alongside the token.
func configFromCredential(c *Credential, scopes []string) *oauth2.Config {
	endpoint := google.Endpoint
	if c.TokenURI != "" {
		endpoint.TokenURL = c.TokenURI
	}
	if len(c.Scopes) > 0 {
		scopes = c.Scopes
	}
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		Endpoint:     endpoint,
		Scopes:       scopes,
	}
}
