package google

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// DefaultConsentTimeout bounds how long LoopbackConsent waits for the
// browser redirect.
const DefaultConsentTimeout = 5 * time.Minute

// LoopbackConsent runs the installed-app authorization code flow. It
// listens on a loopback port, shows the authorization URL and exchanges
// the code delivered to the redirect.
type LoopbackConsent struct {
	// Out receives the authorization URL. Defaults to os.Stderr.
	Out io.Writer

	// ListenAddr defaults to 127.0.0.1:0.
	ListenAddr string

	// Timeout defaults to DefaultConsentTimeout.
	Timeout time.Duration

	// OpenURL replaces printing the URL to Out when set.
	OpenURL func(authURL string) error
}

// Authorize implements ConsentFlow.
func (c *LoopbackConsent) Authorize(ctx context.Context, conf *oauth2.Config) (*oauth2.Token, error) {
	addr := c.ListenAddr
	if addr == "" {
		addr = "127.0.0.1:0"
	}
	timeout := c.Timeout
	if timeout == 0 {
		timeout = DefaultConsentTimeout
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to start loopback listener: %w", err)
	}

	cfg := *conf
	cfg.RedirectURL = fmt.Sprintf("http://%s/", ln.Addr().String())
	state := uuid.NewString()

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	srv := &http.Server{
		ReadHeaderTimeout: 10 * time.Second,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			if q.Get("state") != state {
				http.Error(w, "state mismatch", http.StatusBadRequest)
				return
			}
			if e := q.Get("error"); e != "" {
				http.Error(w, "authorization denied", http.StatusForbidden)
				select {
				case errCh <- fmt.Errorf("authorization denied: %s", e):
				default:
				}
				return
			}
			code := q.Get("code")
			if code == "" {
				http.Error(w, "missing authorization code", http.StatusBadRequest)
				return
			}
			fmt.Fprintln(w, "Authorization complete. You can close this window.")
			select {
			case codeCh <- code:
			default:
			}
		}),
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			select {
			case errCh <- err:
			default:
			}
		}
	}()
	defer srv.Close()

	authURL := cfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	if c.OpenURL != nil {
		if err := c.OpenURL(authURL); err != nil {
			return nil, fmt.Errorf("failed to open authorization URL: %w", err)
		}
	} else {
		out := c.Out
		if out == nil {
			out = os.Stderr
		}
		fmt.Fprintf(out, "Open this URL in your browser to authorize Google Meet access:\n\n%s\n\nWaiting for the redirect on %s\n", authURL, cfg.RedirectURL)
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case code := <-codeCh:
		tok, err := cfg.Exchange(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
		}
		return tok, nil
	case err := <-errCh:
		return nil, err
	case <-timer.C:
		return nil, fmt.Errorf("timed out after %s waiting for authorization", timeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
