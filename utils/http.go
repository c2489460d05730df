// utils/http.go
package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TokenSource yields the persisted bearer token, or "" when there is none.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// APIError is returned for any non-2xx backend response.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s returned %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// StatusCode extracts the backend status from err, or 0 when err is not an *APIError.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// APIClient is the single transport to the match backend.
type APIClient struct {
	BaseURL    string
	Tokens     TokenSource
	HTTPClient *http.Client

	// OnUnauthorized runs when a request that carried a bearer token gets a 401.
	OnUnauthorized func(ctx context.Context)
}

// NewAPIClient builds a client. timeout 0 leaves deadlines to the caller's context.
func NewAPIClient(baseURL string, tokens TokenSource, timeout time.Duration) *APIClient {
	return &APIClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Tokens:  tokens,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *APIClient) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

func (c *APIClient) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

func (c *APIClient) Patch(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPatch, path, body, out)
}

func (c *APIClient) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}

// PostAnonymous posts without the stored token. A 401 here is a rejected
// credential, never a session expiry, so OnUnauthorized does not run.
func (c *APIClient) PostAnonymous(ctx context.Context, path string, body, out any) error {
	return c.send(ctx, http.MethodPost, path, body, out, false)
}

// Do sends one request. body is JSON-encoded when non-nil; out receives the decoded
// response when non-nil. There is no retry.
func (c *APIClient) Do(ctx context.Context, method, path string, body, out any) error {
	return c.send(ctx, method, path, body, out, true)
}

func (c *APIClient) send(ctx context.Context, method, path string, body, out any, withToken bool) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request to %s: %w", path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	var token string
	if withToken {
		if token, err = c.bearer(ctx); err != nil {
			return err
		}
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		if resp.StatusCode == http.StatusUnauthorized && token != "" && c.OnUnauthorized != nil {
			log.Printf("[API] %s %s rejected the stored token", method, path)
			c.OnUnauthorized(ctx)
		}
		return &APIError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(respBody)),
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

// bearer returns the stored token unless it is missing or one of the
// serialized placeholders a broken writer may have left behind.
func (c *APIClient) bearer(ctx context.Context) (string, error) {
	if c.Tokens == nil {
		return "", nil
	}
	token, err := c.Tokens.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read stored token: %w", err)
	}
	if token == "" || token == "undefined" || token == "null" {
		return "", nil
	}
	return token, nil
}
