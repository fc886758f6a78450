package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/iamasit07/photoshare/internal/domain"
	"github.com/iamasit07/photoshare/pkg/useragent"
)

const RequestIDHeader = "X-Request-ID"

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.ErrUnauthorized
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusConflict:
		return domain.ErrConflict
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.ErrInvalidInput
	}
	return nil
}

type envelope struct {
	Data       json.RawMessage    `json:"data"`
	Pagination *domain.Pagination `json:"pagination,omitempty"`
	Error      *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Client calls the photo-sharing REST backend.
type Client struct {
	baseURL string
	// public attaches the bearer token when one is available
	public *http.Client
	// authed fails locally with domain.ErrNoSession when there is none
	authed *http.Client
	logger *zap.Logger
}

// New builds a client. tokens is usually session.Store.TokenSource.
func New(baseURL string, timeout time.Duration, tokens oauth2.TokenSource, logger *zap.Logger) *Client {
	base := &requestIDTransport{base: http.DefaultTransport}
	return &Client{
		baseURL: baseURL,
		public: &http.Client{
			Timeout:   timeout,
			Transport: &optionalAuthTransport{source: tokens, base: base},
		},
		authed: &http.Client{
			Timeout: timeout,
			// not oauth2.NewClient: its ReuseTokenSource would keep a token
			// around after logout
			Transport: &oauth2.Transport{Source: tokens, Base: base},
		},
		logger: logger.Named("client"),
	}
}

func (c *Client) do(ctx context.Context, hc *http.Client, method, path string, body io.Reader, contentType string, out any) (*envelope, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", useragent.String())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil && resp.StatusCode < 300 {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
	}

	requestID := ""
	if resp.Request != nil {
		requestID = resp.Request.Header.Get(RequestIDHeader)
	}
	c.logger.Debug("request done",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", requestID),
	)

	if resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		if env.Error != nil {
			apiErr.Message = env.Error.Message
		}
		return nil, apiErr
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return &env, nil
}

func (c *Client) doJSON(ctx context.Context, hc *http.Client, method, path string, in, out any) (*envelope, error) {
	var body io.Reader
	contentType := ""
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}
	return c.do(ctx, hc, method, path, body, contentType, out)
}

type requestIDTransport struct {
	base http.RoundTripper
}

func (t *requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get(RequestIDHeader) != "" {
		return t.base.RoundTrip(req)
	}
	clone := req.Clone(req.Context())
	clone.Header.Set(RequestIDHeader, uuid.NewString())
	return t.base.RoundTrip(clone)
}

type optionalAuthTransport struct {
	source oauth2.TokenSource
	base   http.RoundTripper
}

func (t *optionalAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.source == nil {
		return t.base.RoundTrip(req)
	}
	token, err := t.source.Token()
	if err != nil {
		return t.base.RoundTrip(req)
	}
	clone := req.Clone(req.Context())
	token.SetAuthHeader(clone)
	return t.base.RoundTrip(clone)
}
