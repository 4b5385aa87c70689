// Package httpauth implements the auth.Provider interface against an HTTP
// identity provider that issues JWT access tokens with refresh tokens.
package httpauth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"taskdeck/internal/auth"
)

// refreshLeeway is how close to expiry an access token may get before a
// refresh is attempted instead of handing it out.
const refreshLeeway = 30 * time.Second

// Client implements auth.Provider against the provider's REST endpoints:
// POST /signup, POST /token (password and refresh_token grants), POST /logout.
// The issued token pair is persisted to tokenPath between runs.
type Client struct {
	authURL   string
	tokenPath string
	http      *http.Client
	log       *logrus.Entry

	mu        sync.Mutex
	loaded    bool
	token     *oauth2.Token
	session   *auth.Session
	listeners map[int]func(*auth.Session)
	nextID    int
}

// New creates a client for the identity provider at authURL, persisting its
// token pair at tokenPath.
func New(authURL, tokenPath string, log *logrus.Entry) *Client {
	return &Client{
		authURL:   authURL,
		tokenPath: tokenPath,
		http:      &http.Client{},
		log:       log,
		listeners: make(map[int]func(*auth.Session)),
	}
}

// tokenResponse is the provider's token payload.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
}

// errorResponse is the provider's error payload.
type errorResponse struct {
	Error string `json:"error"`
}

// CurrentSession implements auth.Provider.
func (c *Client) CurrentSession(ctx context.Context) (*auth.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadLocked()
	return c.session, nil
}

// Subscribe implements auth.Provider. The listener is invoked synchronously
// with the resolved current state before Subscribe returns.
func (c *Client) Subscribe(listener func(*auth.Session)) (unsubscribe func()) {
	c.mu.Lock()
	c.loadLocked()
	id := c.nextID
	c.nextID++
	c.listeners[id] = listener
	current := c.session
	c.mu.Unlock()

	listener(current)

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// SignUp implements auth.Provider.
func (c *Client) SignUp(ctx context.Context, email, password string) (*auth.Session, error) {
	body := map[string]string{"email": email, "password": password}
	tok, err := c.tokenRequest(ctx, c.authURL+"/signup", body)
	if err != nil {
		return nil, err
	}
	return c.adopt(tok)
}

// SignIn implements auth.Provider.
func (c *Client) SignIn(ctx context.Context, email, password string) (*auth.Session, error) {
	body := map[string]string{"grant_type": "password", "email": email, "password": password}
	tok, err := c.tokenRequest(ctx, c.authURL+"/token", body)
	if err != nil {
		return nil, err
	}
	return c.adopt(tok)
}

// SignOut implements auth.Provider. The stored token pair is removed even if
// the provider cannot be reached; a stale server-side session is harmless.
func (c *Client) SignOut(ctx context.Context) error {
	c.mu.Lock()
	c.loadLocked()
	tok := c.token
	c.mu.Unlock()

	if tok != nil {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authURL+"/logout", nil)
		if err == nil {
			req.Header.Set("Authorization", "Bearer "+tok.AccessToken)
			if resp, err := c.http.Do(req); err == nil {
				resp.Body.Close()
			}
		}
	}

	c.mu.Lock()
	c.token = nil
	c.session = nil
	c.loaded = true
	err := os.Remove(c.tokenPath)
	fns := c.listenersLocked()
	c.mu.Unlock()

	for _, fn := range fns {
		fn(nil)
	}

	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove token: %w", err)
	}
	return nil
}

// AccessToken implements auth.Provider. The token is validated at call time
// and refreshed through the provider when it is at or past expiry, so the
// returned credential reflects the session state at this instant.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	c.loadLocked()
	tok := c.token
	c.mu.Unlock()

	if tok == nil {
		return "", auth.ErrUnauthenticated
	}

	if tok.Expiry.IsZero() || time.Until(tok.Expiry) > refreshLeeway {
		return tok.AccessToken, nil
	}

	if tok.RefreshToken == "" {
		return "", auth.ErrUnauthenticated
	}

	c.log.Debug("access token stale, refreshing")
	body := map[string]string{"grant_type": "refresh_token", "refresh_token": tok.RefreshToken}
	fresh, err := c.tokenRequest(ctx, c.authURL+"/token", body)
	if err != nil {
		return "", fmt.Errorf("token refresh failed: %w", err)
	}
	if _, err := c.adopt(fresh); err != nil {
		return "", err
	}
	return fresh.AccessToken, nil
}

// tokenRequest posts a JSON body and decodes the token payload.
func (c *Client) tokenRequest(ctx context.Context, url string, body map[string]string) (*oauth2.Token, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var e errorResponse
		if json.Unmarshal(data, &e) == nil && e.Error != "" {
			return nil, fmt.Errorf("%s", e.Error)
		}
		return nil, fmt.Errorf("identity provider returned %d", resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.Unmarshal(data, &tr); err != nil {
		return nil, fmt.Errorf("invalid token response: %w", err)
	}
	if tr.AccessToken == "" {
		return nil, fmt.Errorf("token response missing access_token")
	}

	tok := &oauth2.Token{
		AccessToken:  tr.AccessToken,
		TokenType:    tr.TokenType,
		RefreshToken: tr.RefreshToken,
	}
	if tr.ExpiresIn > 0 {
		tok.Expiry = time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	}
	return tok, nil
}

// adopt persists a token pair, derives the session identity from the access
// token's claims, and notifies listeners when the identity changed.
func (c *Client) adopt(tok *oauth2.Token) (*auth.Session, error) {
	session, err := sessionFromToken(tok.AccessToken)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	prev := c.session
	c.token = tok
	c.session = session
	c.loaded = true
	saveErr := saveToken(c.tokenPath, tok)
	var fns []func(*auth.Session)
	if prev == nil || prev.UserID != session.UserID {
		fns = c.listenersLocked()
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(session)
	}

	if saveErr != nil {
		return nil, fmt.Errorf("failed to save token: %w", saveErr)
	}
	return session, nil
}

// listenersLocked snapshots the listener set. Callers hold c.mu.
func (c *Client) listenersLocked() []func(*auth.Session) {
	fns := make([]func(*auth.Session), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	return fns
}

// loadLocked reads the persisted token pair once. Callers hold c.mu.
func (c *Client) loadLocked() {
	if c.loaded {
		return
	}
	c.loaded = true

	data, err := os.ReadFile(c.tokenPath)
	if err != nil {
		return
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		c.log.WithError(err).Warn("ignoring unreadable token file")
		return
	}
	session, err := sessionFromToken(tok.AccessToken)
	if err != nil {
		c.log.WithError(err).Warn("ignoring token file with unparseable claims")
		return
	}
	c.token = &tok
	c.session = session
}

// identityClaims are the claims the provider places in access tokens.
type identityClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// sessionFromToken derives the session identity from the access token's
// claims. The signature is not verified here: the token was issued to this
// client by the provider, and the remote store verifies it on every request.
func sessionFromToken(accessToken string) (*auth.Session, error) {
	var claims identityClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(accessToken, &claims); err != nil {
		return nil, fmt.Errorf("invalid access token: %w", err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("access token missing subject claim")
	}
	return &auth.Session{
		UserID: claims.Subject,
		Email:  claims.Email,
		Name:   claims.Name,
	}, nil
}

// saveToken saves a token pair to a file with mode 0600.
func saveToken(path string, token *oauth2.Token) error {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
