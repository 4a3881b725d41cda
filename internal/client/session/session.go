// Package session implements the auth collaborator of the client: it
// registers and logs in the account, holds the access/refresh token pair,
// and hands the transport a TokenFunc that refreshes the access token
// shortly before it expires.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rosterhq/roster/internal/client/transport"
	"github.com/rosterhq/roster/internal/common"
	"github.com/rosterhq/roster/internal/schema"
)

const (
	registerPath = "/api/auth/register"
	loginPath    = "/api/auth/login"
	refreshPath  = "/api/auth/refresh"
)

// refreshSkew is how close to the access token's expiry a refresh is
// attempted before a request goes out.
const refreshSkew = 30 * time.Second

// Manager holds the token pair for one signed-in account. It is safe for
// concurrent use; a refresh serializes behind the same mutex that guards
// the pair, so concurrent requests trigger at most one refresh.
type Manager struct {
	baseURL string
	client  *http.Client

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

// NewManager returns a signed-out manager talking to the API at baseURL.
// A nil client falls back to a default http.Client.
func NewManager(baseURL string, client *http.Client) *Manager {
	if client == nil {
		client = &http.Client{}
	}
	return &Manager{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// Register creates a new account. The input passes the schema rules before
// anything is sent; the created user comes back parsed and validated.
// Registering does not sign the manager in.
func (m *Manager) Register(ctx context.Context, in schema.CreateUserInput) (schema.User, error) {
	if err := schema.ValidateCreate(in); err != nil {
		return schema.User{}, err
	}

	var payload schema.UserPayload
	if err := m.postJSON(ctx, registerPath, in, &payload, http.StatusCreated); err != nil {
		return schema.User{}, err
	}
	u, err := schema.ParseUser(payload)
	if err != nil {
		return schema.User{}, fmt.Errorf("register response: %w", err)
	}
	return u, nil
}

// Login exchanges credentials for a token pair. Wrong credentials surface
// as common.ErrUnauthorized.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	var pair schema.TokenPairPayload
	err := m.postJSON(ctx, loginPath, schema.LoginPayload{Email: email, Password: password}, &pair, http.StatusOK)
	if err != nil {
		if te, ok := transport.AsError(err); ok && te.Status == http.StatusUnauthorized {
			return common.ErrUnauthorized
		}
		return err
	}

	m.mu.Lock()
	m.accessToken = pair.AccessToken
	m.refreshToken = pair.RefreshToken
	m.mu.Unlock()
	return nil
}

// Logout drops the token pair. Purely local; the refresh token simply
// stops being used and expires server-side.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.accessToken = ""
	m.refreshToken = ""
	m.mu.Unlock()
}

// LoggedIn reports whether the manager currently holds an access token.
func (m *Manager) LoggedIn() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.accessToken != ""
}

// TokenFunc returns the lookup function the transport consumes. A
// signed-out manager yields empty tokens, letting anonymous requests
// proceed to endpoints that allow them.
func (m *Manager) TokenFunc() transport.TokenFunc {
	return m.currentToken
}

func (m *Manager) currentToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.accessToken == "" {
		return "", nil
	}
	if !tokenExpiringSoon(m.accessToken, refreshSkew) {
		return m.accessToken, nil
	}
	if m.refreshToken == "" {
		// Nothing to refresh with; send the token and let the server rule.
		return m.accessToken, nil
	}
	if err := m.refreshLocked(ctx); err != nil {
		return "", err
	}
	return m.accessToken, nil
}

// refreshLocked rotates the pair through the refresh endpoint. Caller
// holds mu. A rejected refresh token signs the manager out.
func (m *Manager) refreshLocked(ctx context.Context) error {
	var pair schema.TokenPairPayload
	err := m.postJSON(ctx, refreshPath, schema.RefreshPayload{RefreshToken: m.refreshToken}, &pair, http.StatusOK)
	if err != nil {
		if te, ok := transport.AsError(err); ok && te.ClientFault {
			m.accessToken = ""
			m.refreshToken = ""
			return fmt.Errorf("refreshing session: %w", common.ErrUnauthorized)
		}
		return fmt.Errorf("refreshing session: %w", err)
	}

	m.accessToken = pair.AccessToken
	m.refreshToken = pair.RefreshToken
	return nil
}

// tokenExpiringSoon inspects the JWT exp claim without verifying the
// signature; the secret lives server-side. Tokens that cannot be
// inspected are sent as-is.
func tokenExpiringSoon(token string, skew time.Duration) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return time.Until(exp.Time) < skew
}

// postJSON issues one POST and decodes the response into out when the
// status matches wantStatus. Other statuses map through the shared
// transport error mapping.
func (m *Manager) postJSON(ctx context.Context, path string, body, out any, wantStatus int) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return transport.ErrorFromResponse(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}
