// Package account talks to the backend's register endpoint.
package account

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

	"github.com/mark3labs/onboard/internal/logger"
	"github.com/mark3labs/onboard/internal/signup"
)

// maxBody caps how much of a response body is read.
const maxBody = 1 << 20

// APIError is a non-2xx response from the backend. Message and Code come from
// the decoded {"error","message"} body when one was sent.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("register failed (%d): %s", e.Status, e.Message)
	}
	if e.Code != "" {
		return fmt.Sprintf("register failed (%d): %s", e.Status, e.Code)
	}
	return fmt.Sprintf("register failed with status %d", e.Status)
}

// ServerMessage returns the body's message field.
func (e *APIError) ServerMessage() string { return e.Message }

// ServerError returns the body's error field.
func (e *APIError) ServerError() string { return e.Code }

var _ signup.ServerError = (*APIError)(nil)

// ErrNoAccount is returned when a 2xx response carries no user.
var ErrNoAccount = errors.New("register response did not include a user")

// Client implements signup.AccountService over HTTP.
type Client struct {
	url  string
	http *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the request timeout on the default client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// NewClient returns a client that POSTs to registerURL.
func NewClient(registerURL string, opts ...Option) *Client {
	c := &Client{
		url:  registerURL,
		http: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type registerResponse struct {
	User struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
	Company struct {
		ID string `json:"id"`
	} `json:"company"`
	Token string `json:"token"`
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Register sends one POST with the payload as JSON. No retries are attempted.
func (c *Client) Register(ctx context.Context, p signup.Payload) (*signup.Account, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encoding payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	logger.With("url", c.url, "email", p.Email).Debug("POST register")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var eb errorBody
		if json.Unmarshal(raw, &eb) == nil {
			apiErr.Code = strings.TrimSpace(eb.Error)
			apiErr.Message = strings.TrimSpace(eb.Message)
		}
		logger.With("status", resp.StatusCode, "error", apiErr.Code).Warn("register rejected")
		return nil, apiErr
	}

	var rr registerResponse
	if err := json.Unmarshal(raw, &rr); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if rr.User.ID == "" {
		return nil, ErrNoAccount
	}

	return &signup.Account{
		UserID:    rr.User.ID,
		Email:     rr.User.Email,
		CompanyID: rr.Company.ID,
		Token:     rr.Token,
	}, nil
}
