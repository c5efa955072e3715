package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

var (
	// ErrNoCredentials means neither a token nor a token file is configured
	ErrNoCredentials = errors.New("no bearer credentials configured")
	// ErrTokenExpired means the token file holds no unexpired token
	ErrTokenExpired = errors.New("bearer token expired")
)

// TokenConfig holds the bearer credentials sent to the assistant backend.
// A static Token wins over TokenPath.
type TokenConfig struct {
	Token     string
	TokenPath string
}

// NewTokenConfig creates a new token configuration
func NewTokenConfig(token, tokenPath string) *TokenConfig {
	return &TokenConfig{
		Token:     strings.TrimSpace(token),
		TokenPath: strings.TrimSpace(tokenPath),
	}
}

// LoadToken loads a cached oauth2.Token from TokenPath
func (c *TokenConfig) LoadToken() (*oauth2.Token, error) {
	f, err := os.Open(c.TokenPath)
	if err != nil {
		return nil, fmt.Errorf("could not open token file: %w", err)
	}
	defer f.Close()

	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, fmt.Errorf("could not parse token file: %w", err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("token file %s has no access_token", c.TokenPath)
	}
	return token, nil
}

// TokenSource returns a source for the configured credentials, or
// ErrNoCredentials when none are set.
func (c *TokenConfig) TokenSource() (oauth2.TokenSource, error) {
	if c == nil {
		return nil, ErrNoCredentials
	}
	if c.Token != "" {
		return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: c.Token, TokenType: "Bearer"}), nil
	}
	if c.TokenPath == "" {
		return nil, ErrNoCredentials
	}

	src := fileTokenSource{cfg: c}
	token, err := src.Token()
	if err != nil {
		return nil, err
	}
	return oauth2.ReuseTokenSource(token, src), nil
}

// fileTokenSource reads the token file on every call. Once the cached token
// expires the file is read again, so a token refreshed on disk by the login
// tool is picked up; a stale file yields ErrTokenExpired.
type fileTokenSource struct {
	cfg *TokenConfig
}

func (s fileTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.cfg.LoadToken()
	if err != nil {
		return nil, err
	}
	if !token.Valid() {
		return nil, fmt.Errorf("%w: %s expired at %s", ErrTokenExpired, s.cfg.TokenPath, token.Expiry.Format(time.RFC3339))
	}
	return token, nil
}

// NewHTTPClient builds the client used for backend calls. Requests carry a
// bearer token when credentials are configured.
func NewHTTPClient(ctx context.Context, cfg *TokenConfig, timeout time.Duration) (*http.Client, error) {
	src, err := cfg.TokenSource()
	if errors.Is(err, ErrNoCredentials) {
		return &http.Client{Timeout: timeout}, nil
	}
	if err != nil {
		return nil, err
	}

	client := oauth2.NewClient(ctx, src)
	client.Timeout = timeout
	return client, nil
}
