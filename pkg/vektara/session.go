// Package vektara is a client for Vectara's document retrieval and
// generation platform. It handles credential resolution, token acquisition,
// request construction for corpus management, ingestion, filter attributes
// and queries, and normalization of query responses.
package vektara

import (
	"context"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/code-sleuth/vektara-go/pkg/util"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the platform's direct (non-proxied) API endpoint.
const DefaultBaseURL = "https://api.vectara.io"

const defaultTimeout = 60 * time.Second

// Environment variables consulted when a Config field is empty.
const (
	EnvBaseURL      = "VEKTARA_BASE_URL"
	EnvCustomerID   = "VEKTARA_CUSTOMER_ID"
	EnvAPIKey       = "VEKTARA_API_KEY"
	EnvClientID     = "VEKTARA_CLIENT_ID"
	EnvClientSecret = "VEKTARA_CLIENT_SECRET"
	EnvProxyMode    = "VEKTARA_PROXY_MODE"
)

// Doer executes a single HTTP request. *http.Client satisfies it; tests and
// callers wanting their own timeout or middleware can substitute their own.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds the constructor arguments for a Client. Every string field
// falls back to its environment variable when empty; BaseURL additionally
// falls back to DefaultBaseURL.
type Config struct {
	BaseURL      string
	CustomerID   string
	APIKey       string
	ClientID     string
	ClientSecret string

	// ForceOAuth selects the OAuth2 scheme even when an API key is present.
	ForceOAuth bool

	// ProxyMode alters the token endpoint URL shape. It is forced on when
	// BaseURL differs from DefaultBaseURL, because proxied deployments issue
	// tokens from the proxy itself.
	ProxyMode bool

	// RefreshOnAuthFailure re-acquires the token and retries once when the
	// platform rejects a call with 401. Off by default.
	RefreshOnAuthFailure bool

	// HTTPClient overrides the default transport. Nil means an *http.Client
	// with a 60 second timeout.
	HTTPClient Doer

	// Recorder, when set, receives the outcome of every batch upload item.
	Recorder UploadRecorder
}

// Client is a session against the platform. It is created once, holds the
// resolved credentials, and is immutable except for the current bearer
// token, which AcquireToken replaces wholesale.
type Client struct {
	baseURL    string
	customerID string
	apiKey     string

	clientID     string
	clientSecret string

	proxyMode            bool
	refreshOnAuthFailure bool

	httpClient Doer
	recorder   UploadRecorder
	logger     zerolog.Logger

	mu    sync.Mutex
	token string
}

// NewClient resolves credentials, selects an authentication scheme, and
// returns a ready-to-use Client. If the OAuth2 scheme is selected, a token
// is acquired immediately so misconfigured credentials fail here rather than
// on the first request.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	logger := util.NewLogger(zerolog.InfoLevel)

	baseURL := resolve(cfg.BaseURL, EnvBaseURL, DefaultBaseURL)
	baseURL = strings.TrimRight(baseURL, "/")

	customerID := resolve(cfg.CustomerID, EnvCustomerID, "")
	if customerID == "" {
		logger.Error().Str("env", EnvCustomerID).Msg("customer ID not set")
		return nil, &ConfigurationError{Reason: "customer ID is required", Err: ErrCustomerIDRequired}
	}

	apiKey := resolve(cfg.APIKey, EnvAPIKey, "")
	clientID := resolve(cfg.ClientID, EnvClientID, "")
	clientSecret := resolve(cfg.ClientSecret, EnvClientSecret, "")

	proxyMode := cfg.ProxyMode || isTrue(os.Getenv(EnvProxyMode))
	if baseURL != DefaultBaseURL {
		// Proxied deployments issue tokens from the proxy, not Cognito.
		proxyMode = true
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	c := &Client{
		baseURL:              baseURL,
		customerID:           customerID,
		proxyMode:            proxyMode,
		refreshOnAuthFailure: cfg.RefreshOnAuthFailure,
		httpClient:           httpClient,
		recorder:             cfg.Recorder,
		logger:               logger,
	}

	useOAuth := cfg.ForceOAuth || apiKey == ""
	if useOAuth {
		if clientID == "" || clientSecret == "" {
			logger.Error().Msg("OAuth2 selected but client ID or client secret is missing")
			return nil, &ConfigurationError{
				Reason: "OAuth2 selected but client ID or client secret is missing",
				Err:    ErrOAuthCredsRequired,
			}
		}
		c.clientID = clientID
		c.clientSecret = clientSecret

		// Fail fast: a bad secret should surface at construction time.
		if _, err := c.AcquireToken(ctx); err != nil {
			return nil, err
		}
		return c, nil
	}

	c.apiKey = apiKey
	if clientID != "" || clientSecret != "" {
		logger.Warn().Msg("both API key and OAuth2 credentials supplied; using API key")
	}
	return c, nil
}

// UsesOAuth reports whether the client authenticates with bearer tokens
// rather than a pre-issued API key.
func (c *Client) UsesOAuth() bool {
	return c.apiKey == ""
}

// CustomerID returns the resolved customer identifier.
func (c *Client) CustomerID() string {
	return c.customerID
}

// BaseURL returns the resolved platform endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// resolve applies the explicit-argument, environment, default precedence.
func resolve(explicit, env, fallback string) string {
	if strings.TrimSpace(explicit) != "" {
		return explicit
	}
	if v := os.Getenv(env); strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func isTrue(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "yes", "1":
		return true
	default:
		return false
	}
}
