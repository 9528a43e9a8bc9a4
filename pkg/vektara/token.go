package vektara

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// AcquireToken performs a client-credentials exchange and stores the
// resulting bearer token on the client, replacing any previous one. Tokens
// are valid for roughly 30 minutes from issuance; no expiry tracking is done
// here, so callers discover staleness when the platform rejects a request
// and should re-invoke this method.
func (c *Client) AcquireToken(ctx context.Context) (string, error) {
	conf := &clientcredentials.Config{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
		TokenURL:     c.tokenURL(),
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	// Route the exchange through the injected transport when possible.
	if hc, ok := c.httpClient.(*http.Client); ok {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, hc)
	}

	tok, err := conf.Token(ctx)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			c.logger.Error().
				Int("status_code", retrieveErr.Response.StatusCode).
				Msg("token exchange rejected")
			return "", &AuthenticationError{Body: string(retrieveErr.Body), Err: err}
		}
		c.logger.Err(err).Msg("token exchange failed")
		return "", &AuthenticationError{Err: err}
	}

	if tok.AccessToken == "" {
		return "", &AuthenticationError{Err: fmt.Errorf("%w: response missing access_token", ErrAuthentication)}
	}

	c.mu.Lock()
	c.token = tok.AccessToken
	c.mu.Unlock()

	c.logger.Info().Msg("bearer token acquired; it expires in roughly 30 minutes")
	return tok.AccessToken, nil
}

// tokenURL returns the token issuance endpoint. Proxied deployments issue
// tokens from the proxy; direct deployments use the customer-specific
// Cognito host.
func (c *Client) tokenURL() string {
	if c.proxyMode {
		return c.baseURL + "/oauth2/token"
	}
	return fmt.Sprintf(
		"https://vectara-prod-%s.auth.us-west-2.amazoncognito.com/oauth2/token",
		c.customerID,
	)
}

// currentToken returns the stored bearer token, which may be empty if the
// client authenticates with an API key.
func (c *Client) currentToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}
