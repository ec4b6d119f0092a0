// Package client is the thin REST client of the WellVantage API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"wellvantage/fitness-app/internal/config"
	"wellvantage/fitness-app/internal/session"
)

// DefaultTimeout applies to every request when the config leaves it unset.
const DefaultTimeout = 30 * time.Second

// Messages produced for failures that carry no server message.
const (
	MsgNetwork    = "Network error. Please check your connection."
	MsgHTTP       = "An error occurred"
	MsgUnexpected = "An unexpected error occurred"
)

// ErrorKind classifies a failed call.
type ErrorKind int

const (
	KindNetwork ErrorKind = iota + 1
	KindHTTP
	KindUnauthorized
)

// Error is returned by every failed call. Its message is ready for display.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Err }

// IsUnauthorized reports whether err is a 401 from the API.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindUnauthorized
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// Client talks to the API on behalf of the signed-in user.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    session.Store
	logger     zerolog.Logger
}

// New creates a Client. Every request carries the token held by sess.
func New(cfg config.APIConfig, sess session.Store, logger zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
		session:    sess,
		logger:     logger.With().Str("component", "api-client").Logger(),
	}
}

// Session returns the store the client reads its token from.
func (c *Client) Session() session.Store {
	return c.session
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindHTTP, Message: MsgUnexpected, Err: err}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Kind: KindHTTP, Message: MsgUnexpected, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	token, err := c.session.Token()
	if err != nil {
		c.logger.Warn().Err(err).Msg("read session token")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return &Error{Kind: KindNetwork, Message: MsgNetwork, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("api request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.httpError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return &Error{Kind: KindHTTP, Status: resp.StatusCode, Message: MsgUnexpected, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *Client) httpError(resp *http.Response) error {
	apiErr := &Error{
		Kind:    KindHTTP,
		Status:  resp.StatusCode,
		Message: messageFromBody(resp.Body),
	}

	if resp.StatusCode == http.StatusUnauthorized {
		apiErr.Kind = KindUnauthorized
		if err := session.Clear(c.session); err != nil {
			c.logger.Error().Err(err).Msg("clear session after 401")
		}
	}
	return apiErr
}

// messageFromBody extracts {"message": "..."} or {"error": "..."}; NestJS
// style backends may send message as a list of validation strings.
func messageFromBody(body io.Reader) string {
	var payload struct {
		Message json.RawMessage `json:"message"`
		Error   string          `json:"error"`
	}
	raw, err := io.ReadAll(io.LimitReader(body, 1<<20))
	if err != nil || json.Unmarshal(raw, &payload) != nil {
		return MsgHTTP
	}

	var msg string
	if json.Unmarshal(payload.Message, &msg) == nil && msg != "" {
		return msg
	}
	var msgs []string
	if json.Unmarshal(payload.Message, &msgs) == nil && len(msgs) > 0 {
		return msgs[0]
	}
	if payload.Error != "" {
		return payload.Error
	}
	return MsgHTTP
}
