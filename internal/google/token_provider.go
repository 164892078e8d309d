package google

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"

	"github.com/Mobinshahidi/google-meet-generator/internal/instrumentation"
	"github.com/Mobinshahidi/google-meet-generator/internal/logging"
)

// TokenProvider supplies a valid OAuth2 access token for Google APIs.
type TokenProvider interface {
	Obtain(ctx context.Context) (*oauth2.Token, error)
}

// ConsentFlow acquires a brand-new grant from the resource owner.
type ConsentFlow interface {
	Authorize(ctx context.Context, conf *oauth2.Config) (*oauth2.Token, error)
}

// ManagerConfig configures a CredentialManager.
type ManagerConfig struct {
	// TokenFile is where the credential is persisted.
	TokenFile string

	// CredentialsFile holds the OAuth client secrets. It is only required
	// when the token file does not carry the client identity itself.
	CredentialsFile string

	// Scopes default to DefaultOAuthScopes.
	Scopes []string

	// Consent runs when no usable credential exists. Nil means unattended:
	// Obtain fails with ErrConsentRequired instead.
	Consent ConsentFlow

	Metrics *instrumentation.Metrics
	Logger  *slog.Logger
}

// CredentialManager loads, refreshes and persists the Google credential.
// It is safe for concurrent use.
type CredentialManager struct {
	store           *TokenFile
	credentialsFile string
	scopes          []string
	consent         ConsentFlow
	metrics         *instrumentation.Metrics
	logger          *slog.Logger

	// mu guards current and every read-modify-write of the token file.
	mu      sync.Mutex
	current *Credential

	// group collapses concurrent Obtain calls into one load/refresh.
	group singleflight.Group
}

// NewCredentialManager creates a CredentialManager.
func NewCredentialManager(cfg ManagerConfig) *CredentialManager {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = DefaultOAuthScopes
	}
	return &CredentialManager{
		store:           NewTokenFile(cfg.TokenFile),
		credentialsFile: cfg.CredentialsFile,
		scopes:          scopes,
		consent:         cfg.Consent,
		metrics:         cfg.Metrics,
		logger:          logging.WithService(logger, "google_oauth"),
	}
}

// Obtain returns a valid access token. A cached valid token is returned
// without touching disk. Otherwise the persisted credential is loaded and,
// if expired, refreshed exactly once and written back. When nothing usable
// exists the consent flow runs, or an *AuthError is returned.
func (m *CredentialManager) Obtain(ctx context.Context) (*oauth2.Token, error) {
	m.mu.Lock()
	if m.current != nil && m.current.Token.Valid() {
		tok := m.current.Token
		m.mu.Unlock()
		return tok, nil
	}
	m.mu.Unlock()

	v, err, _ := m.group.Do("credential", func() (interface{}, error) {
		return m.obtain(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*oauth2.Token), nil
}

// Authorize runs the consent flow unconditionally and persists the result.
func (m *CredentialManager) Authorize(ctx context.Context) (*oauth2.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.consent == nil {
		return nil, &AuthError{Op: "authorize", Err: ErrConsentRequired}
	}
	return m.authorizeLocked(ctx, nil)
}

// TokenPath returns the location of the persisted credential.
func (m *CredentialManager) TokenPath() string {
	return m.store.Path()
}

func (m *CredentialManager) obtain(ctx context.Context) (*oauth2.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil && m.current.Token.Valid() {
		return m.current.Token, nil
	}

	cred, err := m.store.Load()
	switch {
	case errors.Is(err, ErrNoToken):
		cred = nil
	case err != nil:
		return nil, &AuthError{Op: "load", Err: err}
	}

	if cred != nil && cred.Token.Valid() {
		m.current = cred
		return cred.Token, nil
	}

	if cred != nil && cred.Token.RefreshToken != "" {
		return m.refreshLocked(ctx, cred)
	}

	if m.consent == nil {
		return nil, &AuthError{Op: "authorize", Err: ErrConsentRequired}
	}
	return m.authorizeLocked(ctx, cred)
}

func (m *CredentialManager) refreshLocked(ctx context.Context, cred *Credential) (*oauth2.Token, error) {
	conf, err := m.oauthConfig(cred)
	if err != nil {
		return nil, &AuthError{Op: "refresh", Err: err}
	}

	start := time.Now()
	// Only the refresh token is passed so the source always hits the
	// token endpoint rather than returning the expired access token.
	tok, err := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: cred.Token.RefreshToken}).Token()
	if err != nil {
		m.metrics.RecordOAuthTokenRefresh(ctx, instrumentation.OAuthResultFailure)
		m.logger.Error("token refresh failed",
			logging.Operation("refresh"),
			logging.Err(err))
		return nil, &AuthError{Op: "refresh", Err: err}
	}
	m.metrics.RecordOAuthTokenRefresh(ctx, instrumentation.OAuthResultSuccess)
	m.logger.Info("refreshed Google access token",
		logging.Operation("refresh"),
		slog.Duration(logging.KeyDuration, time.Since(start)),
		slog.Time("expiry", tok.Expiry))

	refreshed := &Credential{
		Token:        tok,
		Scopes:       conf.Scopes,
		ClientID:     conf.ClientID,
		ClientSecret: conf.ClientSecret,
		TokenURI:     conf.Endpoint.TokenURL,
	}
	m.persistLocked(refreshed)
	return tok, nil
}

func (m *CredentialManager) authorizeLocked(ctx context.Context, existing *Credential) (*oauth2.Token, error) {
	conf, err := m.oauthConfig(existing)
	if err != nil {
		return nil, &AuthError{Op: "authorize", Err: err}
	}

	tok, err := m.consent.Authorize(ctx, conf)
	if err != nil {
		m.metrics.RecordOAuthConsent(ctx, instrumentation.OAuthResultFailure)
		return nil, &AuthError{Op: "authorize", Err: err}
	}
	m.metrics.RecordOAuthConsent(ctx, instrumentation.OAuthResultSuccess)
	m.logger.Info("obtained new Google grant", logging.Operation("authorize"))

	m.persistLocked(&Credential{
		Token:        tok,
		Scopes:       conf.Scopes,
		ClientID:     conf.ClientID,
		ClientSecret: conf.ClientSecret,
		TokenURI:     conf.Endpoint.TokenURL,
	})
	return tok, nil
}

// persistLocked stores the credential in memory and on disk. A write
// failure is logged; the token is still usable for this process.
func (m *CredentialManager) persistLocked(c *Credential) {
	m.current = c
	if err := m.store.Save(c); err != nil {
		m.logger.Warn("failed to persist Google credential",
			logging.Operation("persist"),
			slog.String("path", m.store.Path()),
			logging.Err(err))
	}
}

// oauthConfig prefers the client secrets file and falls back to the
// client identity stored in the token file.
func (m *CredentialManager) oauthConfig(cred *Credential) (*oauth2.Config, error) {
	conf, err := LoadOAuthConfig(m.credentialsFile, m.scopes...)
	if err == nil {
		return conf, nil
	}
	if cred != nil && cred.ClientID != "" {
		return configFromCredential(cred, m.scopes), nil
	}
	return nil, err
}

// TokenSource adapts a TokenProvider to oauth2.TokenSource.
func TokenSource(ctx context.Context, p TokenProvider) oauth2.TokenSource {
	return &providerTokenSource{ctx: ctx, provider: p}
}

type providerTokenSource struct {
	ctx      context.Context
	provider TokenProvider
}

func (s *providerTokenSource) Token() (*oauth2.Token, error) {
	return s.provider.Obtain(s.ctx)
}
