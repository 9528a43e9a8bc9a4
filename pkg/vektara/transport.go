package vektara

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// setAuthHeaders attaches the customer-id header plus exactly one of the two
// authentication headers: x-api-key when the API key scheme is active,
// otherwise a bearer Authorization header.
func (c *Client) setAuthHeaders(req *http.Request) {
	req.Header.Set("customer-id", c.customerID)
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
		return
	}
	req.Header.Set("Authorization", "Bearer "+c.currentToken())
}

// postJSON marshals payload, POSTs it to path (relative to the base URL),
// and decodes the 2xx response body into out when out is non-nil. A non-2xx
// status yields a RemoteError carrying the verbatim body; an undecodable 2xx
// body yields a MalformedResponseError.
func (c *Client) postJSON(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	do := func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		c.setAuthHeaders(req)
		return c.httpClient.Do(req)
	}

	resp, err := do()
	if err != nil {
		c.logger.Err(err).Str("path", path).Msg("request failed")
		return err
	}

	// Optional policy: one silent re-acquire and retry when a bearer token
	// is rejected, typically because it aged past its validity window.
	if resp.StatusCode == http.StatusUnauthorized && c.refreshOnAuthFailure && c.UsesOAuth() {
		drainAndClose(resp.Body)
		c.logger.Warn().Str("path", path).Msg("token rejected; re-acquiring and retrying once")
		if _, err := c.AcquireToken(ctx); err != nil {
			return err
		}
		resp, err = do()
		if err != nil {
			return err
		}
	}

	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Error().Err(err).Msg("failed to close response body")
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Error().Int("status_code", resp.StatusCode).Str("path", path).Msg("platform request failed")
		return &RemoteError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &MalformedResponseError{Reason: fmt.Sprintf("undecodable body: %v", err)}
	}
	return nil
}

func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
