package restapi

// Package restapi implements the storefront API ports over JSON/HTTP.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/ecomsuite/storefront-client/internal/errors"
	"github.com/ecomsuite/storefront-client/internal/domain/money"
)

// Config captures the HTTP client behaviour shared by all API adapters.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	Transport http.RoundTripper
	// Client overrides Timeout and Transport when set.
	Client *http.Client
}

// Client is the shared HTTP layer under the per-resource adapters.
type Client struct {
	baseURL string
	hc      *http.Client
}

// NewClient builds the shared HTTP client. Callers should pass a validated config.
func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("api base url is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout, Transport: cfg.Transport}
	}

	return &Client{baseURL: baseURL, hc: hc}, nil
}

// get issues a GET request and decodes the response into out when non-nil.
func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// post issues a POST request with a JSON body.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// put issues a PUT request with a JSON body.
func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// delete issues a DELETE request.
func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apperrors.Wrapf(err, apperrors.ErrCodeInternal, "encode %s %s request", method, path)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeInternal, "create %s %s request", method, path)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeTransient, "%s %s", method, path)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.mapError(resp, method, path)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeInternal, "decode %s %s response", method, path)
	}
	return nil
}

// apiError is the storefront API's error envelope.
type apiError struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

func (c *Client) mapError(resp *http.Response, method, path string) error {
	var body apiError
	if raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16)); err == nil {
		// The envelope is best-effort; fall back to the status text below.
		_ = json.Unmarshal(raw, &body)
	}

	message := strings.TrimSpace(body.Message)
	if message == "" {
		message = fmt.Sprintf("%s %s: %s", method, path, resp.Status)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return apperrors.Unauthorized(message)
	case resp.StatusCode == http.StatusNotFound:
		return apperrors.NotFound(message)
	case resp.StatusCode == http.StatusUnprocessableEntity || resp.StatusCode == http.StatusBadRequest:
		return apperrors.ValidationFields(message, body.Errors)
	case resp.StatusCode >= 500:
		return apperrors.Transient(message)
	default:
		return apperrors.Internal(message)
	}
}

func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}

// decimalString decodes a price that the API may serve either as a JSON
// string ("12.34") or as a bare number (12.34) into fixed-point cents.
type decimalString money.Cents

func (d *decimalString) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*d = 0
		return nil
	}
	c, err := money.ParseDecimal(s)
	if err != nil {
		return err
	}
	*d = decimalString(c)
	return nil
}

func (d decimalString) Cents() money.Cents { return money.Cents(d) }
