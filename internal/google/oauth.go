package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmail "google.golang.org/api/gmail/v1"
)

// Scopes required by the server.
// gmail.readonly for reading mail, gmail.compose for creating drafts.
var Scopes = []string{
	gmail.GmailReadonlyScope,
	gmail.GmailComposeScope,
}

// Environment variables and their defaults.
const (
	EnvCredentialsPath = "GMAIL_CREDENTIALS_PATH"
	EnvTokenPath       = "GMAIL_TOKEN_PATH"

	DefaultCredentialsPath = "credentials.json"
	DefaultTokenPath       = "token.json"
)

// oobRedirectURL is the out-of-band redirect for installed apps: Google
// shows the authorization code to the user instead of redirecting.
const oobRedirectURL = "urn:ietf:wg:oauth:2.0:oob"

// Config locates the OAuth client secrets and the persisted token.
type Config struct {
	// CredentialsPath is the OAuth client secrets JSON downloaded from
	// the Google Cloud Console (Desktop app credentials).
	CredentialsPath string

	// TokenPath is where the authorized token is persisted as JSON.
	TokenPath string
}

// ConfigFromEnv builds a Config from GMAIL_CREDENTIALS_PATH and
// GMAIL_TOKEN_PATH, falling back to credentials.json and token.json in
// the working directory.
func ConfigFromEnv() Config {
	return Config{
		CredentialsPath: envOrDefault(EnvCredentialsPath, DefaultCredentialsPath),
		TokenPath:       envOrDefault(EnvTokenPath, DefaultTokenPath),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// HasToken reports whether a persisted token file exists.
func (c Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath)
	return err == nil
}

// oauthConfig parses the client secrets file into an oauth2.Config.
func (c Config) oauthConfig() (*oauth2.Config, error) {
	secrets, err := os.ReadFile(c.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("credentials file not found at %s: %w. Download OAuth credentials from the Google Cloud Console", c.CredentialsPath, err)
	}

	conf, err := google.ConfigFromJSON(secrets, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse credentials file %s: %w", c.CredentialsPath, err)
	}

	conf.RedirectURL = oobRedirectURL
	return conf, nil
}

// AuthCodeURL returns the consent URL the user must visit to authorize
// the application.
func (c Config) AuthCodeURL() (string, error) {
	conf, err := c.oauthConfig()
	if err != nil {
		return "", err
	}
	return conf.AuthCodeURL("state", oauth2.AccessTypeOffline), nil
}

// Exchange trades an authorization code for tokens and persists them.
func (c Config) Exchange(ctx context.Context, authCode string) error {
	conf, err := c.oauthConfig()
	if err != nil {
		return err
	}

	t, err := conf.Exchange(ctx, authCode)
	if err != nil {
		return fmt.Errorf("failed to exchange auth code: %w", err)
	}

	return c.saveToken(t)
}

func (c Config) saveToken(t *oauth2.Token) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	if err := os.WriteFile(c.TokenPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

func (c Config) loadToken() (*oauth2.Token, error) {
	data, err := os.ReadFile(c.TokenPath)
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found at %s", c.TokenPath)
	}

	t := new(oauth2.Token)
	if err := json.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("invalid token file %s: %w", c.TokenPath, err)
	}
	return t, nil
}

// TokenSource returns an auto-refreshing token source for the persisted
// token. Refreshed tokens are written back to the token file.
func (c Config) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	conf, err := c.oauthConfig()
	if err != nil {
		return nil, err
	}

	t, err := c.loadToken()
	if err != nil {
		return nil, err
	}

	return &persistingTokenSource{
		config: c,
		src:    conf.TokenSource(ctx, t),
		last:   t,
	}, nil
}

// HTTPClient returns an HTTP client that authenticates requests with
// the persisted (and auto-refreshed) token.
func (c Config) HTTPClient(ctx context.Context) (*http.Client, error) {
	ts, err := c.TokenSource(ctx)
	if err != nil {
		return nil, err
	}
	return oauth2.NewClient(ctx, ts), nil
}

// persistingTokenSource wraps a token source and writes refreshed
// tokens back to the token file.
type persistingTokenSource struct {
	config Config
	src    oauth2.TokenSource

	mu   sync.Mutex
	last *oauth2.Token
}

func (p *persistingTokenSource) Token() (*oauth2.Token, error) {
	t, err := p.src.Token()
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.last == nil || t.AccessToken != p.last.AccessToken {
		p.last = t
		if err := p.config.saveToken(t); err != nil {
			// Persisting is best effort; the in-memory token is still valid.
			return t, nil
		}
	}
	return t, nil
}
