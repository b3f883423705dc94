package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenFileName is the fixed key the opaque admin token is stored under.
const tokenFileName = "adminToken"

// ErrInvalidPassword deliberately carries no detail about the underlying
// cause.
var ErrInvalidPassword = errors.New("invalid password")

// TokenProvider persists the admin token and answers "current valid token or
// none". Expiry is read from the token's own claim; an expired or unreadable
// token is treated as absent, which forces a fresh login.
type TokenProvider struct {
	baseURL string
	dir     string
	httpc   *http.Client
}

// NewTokenProvider stores the token under dir; an empty dir resolves to
// portfolio-console inside the user config directory.
func NewTokenProvider(baseURL, dir string) (*TokenProvider, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		dir = filepath.Join(base, "portfolio-console")
	}
	return &TokenProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		dir:     dir,
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}, nil
}

// Login exchanges the admin password for a token and persists it. Any
// rejection surfaces as ErrInvalidPassword.
func (p *TokenProvider) Login(ctx context.Context, password string) error {
	body, err := json.Marshal(map[string]string{"password": password})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/login", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ErrInvalidPassword
	}

	env, err := decodeEnvelope(resp.Body)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || data.Token == "" {
		return fmt.Errorf("login: malformed token response")
	}

	if err := os.MkdirAll(p.dir, 0o700); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	if err := os.WriteFile(p.tokenPath(), []byte(data.Token), 0o600); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

// Logout discards the stored token.
func (p *TokenProvider) Logout() error {
	err := os.Remove(p.tokenPath())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Token returns the stored token, or "" when there is none or it has
// expired. The claim is read without signature verification; the server is
// the one that verifies.
func (p *TokenProvider) Token() string {
	raw, err := os.ReadFile(p.tokenPath())
	if err != nil {
		return ""
	}
	token := strings.TrimSpace(string(raw))
	if token == "" {
		return ""
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		_ = p.Logout()
		return ""
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		_ = p.Logout()
		return ""
	}
	if exp != nil && time.Now().After(exp.Time) {
		_ = p.Logout()
		return ""
	}
	return token
}

func (p *TokenProvider) IsAuthenticated() bool {
	return p.Token() != ""
}

func (p *TokenProvider) tokenPath() string {
	return filepath.Join(p.dir, tokenFileName)
}
