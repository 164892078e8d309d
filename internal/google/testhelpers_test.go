package google

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeTokenEndpoint serves Google's token endpoint for refresh and
// authorization code grants and counts the requests it receives.
type fakeTokenEndpoint struct {
	*httptest.Server
	hits  atomic.Int32
	delay time.Duration
	fail  bool
}

func newFakeTokenEndpoint(t *testing.T) *fakeTokenEndpoint {
	t.Helper()
	f := &fakeTokenEndpoint{}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.hits.Add(1)
		if f.delay > 0 {
			time.Sleep(f.delay)
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if f.fail {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"Token has been expired or revoked."}`))
			return
		}
		resp := map[string]interface{}{
			"token_type": "Bearer",
			"expires_in": 3600,
		}
		switch r.PostForm.Get("grant_type") {
		case "refresh_token":
			resp["access_token"] = "fresh-token"
		case "authorization_code":
			resp["access_token"] = "consented-token"
			resp["refresh_token"] = "consented-refresh"
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(f.Close)
	return f
}

func writeStoredCredential(t *testing.T, path string, sc storedCredential) {
	t.Helper()
	data, err := json.Marshal(sc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0600))
}

func writeClientSecrets(t *testing.T, dir, tokenURL string) string {
	t.Helper()
	path := filepath.Join(dir, "credentials.json")
	secrets := map[string]interface{}{
		"installed": map[string]interface{}{
			"client_id":     "client-id.apps.googleusercontent.com",
			"client_secret": "client-secret",
			"auth_uri":      "https://accounts.google.com/o/oauth2/auth",
			"token_uri":     tokenURL,
			"redirect_uris": []string{"http://localhost"},
		},
	}
	data, err := json.Marshal(secrets)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}
