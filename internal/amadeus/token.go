package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// TokenEndpoint is the OAuth2 client-credentials grant path.
const TokenEndpoint = "/v1/security/oauth2/token"

// expiryBuffer is subtracted from expires_in so a token is refreshed
// well before the server-side expiry.
const expiryBuffer = 300 * time.Second

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// TokenManager owns OAuth2 token acquisition and expiry tracking. The
// mutex is held across the grant request, which serializes concurrent
// refreshes: callers racing on an empty cache trigger one grant, not N.
type TokenManager struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client

	now func() time.Time

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

func NewTokenManager(baseURL, clientID, clientSecret string, httpClient *http.Client) *TokenManager {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &TokenManager{
		baseURL:      strings.TrimRight(baseURL, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   httpClient,
		now:          time.Now,
	}
}

// Token returns a bearer token that is valid at return time. A cached
// unexpired token is returned without network I/O; otherwise a
// client-credentials grant is performed. On grant failure the cache is
// left empty so the next call retries from scratch.
func (m *TokenManager) Token(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token != "" && m.now().Before(m.expiresAt) {
		return m.token, nil
	}

	m.token = ""
	m.expiresAt = time.Time{}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", m.clientID)
	form.Set("client_secret", m.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+TokenEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", &AuthError{Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", &AuthError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &AuthError{Err: fmt.Errorf("token endpoint returned status %d", resp.StatusCode)}
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", &AuthError{Err: err}
	}
	if tr.AccessToken == "" {
		return "", &AuthError{Err: fmt.Errorf("token endpoint returned an empty access_token")}
	}

	m.token = tr.AccessToken
	m.expiresAt = m.now().Add(time.Duration(tr.ExpiresIn)*time.Second - expiryBuffer)

	log.WithField("expires_in", tr.ExpiresIn).Debug("acquired new access token")

	return m.token, nil
}

// Invalidate clears the cached token so the next Token call forces a
// fresh grant regardless of the recorded expiry.
func (m *TokenManager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.expiresAt = time.Time{}
}
