package iam

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// RequestTimeout bounds every IAM call. There is no overall budget and no retry.
const RequestTimeout = 10 * time.Second

// TokenSource supplies the bearer token attached to IAM requests
type TokenSource interface {
	Token(ctx context.Context, env string) (string, error)
}

// TokenFunc adapts a function to TokenSource
type TokenFunc func(ctx context.Context, env string) (string, error)

// Token implements TokenSource
func (f TokenFunc) Token(ctx context.Context, env string) (string, error) {
	return f(ctx, env)
}

// Client issues authenticated requests to one IAM environment
type Client struct {
	resty   *resty.Client
	env     Environment
	baseURL string
	tokens  TokenSource
}

// NewClient creates a client bound to baseURL. tokens may be nil for
// unauthenticated use.
func NewClient(env Environment, baseURL string, tokens TokenSource) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	r := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(RequestTimeout).
		SetRetryCount(0).
		SetDisableWarn(true).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	return &Client{
		resty:   r,
		env:     env,
		baseURL: baseURL,
		tokens:  tokens,
	}
}

// Environment returns the environment the client is bound to
func (c *Client) Environment() Environment {
	return c.env
}

// BaseURL returns the IAM base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Post sends body as JSON to path. A transport error or any non-2xx status is
// returned as *RequestError. When result is non-nil the response body is
// decoded into it.
func (c *Client) Post(ctx context.Context, op, path string, body, result interface{}) error {
	url := c.baseURL + path

	req := c.resty.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", uuid.NewString()).
		SetBody(body)

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx, string(c.env))
		if err != nil {
			return &RequestError{Op: op, URL: url, Err: fmt.Errorf("failed to get auth token: %w", err)}
		}
		req.SetAuthToken(token)
	}

	resp, err := req.Post(path)
	if err != nil {
		return &RequestError{Op: op, URL: url, Err: err}
	}

	if !resp.IsSuccess() {
		return &RequestError{
			Op:         op,
			URL:        url,
			StatusCode: resp.StatusCode(),
			Body:       resp.String(),
		}
	}

	if result == nil {
		return nil
	}

	if err := json.Unmarshal(resp.Body(), result); err != nil {
		return &RequestError{
			Op:         op,
			URL:        url,
			StatusCode: resp.StatusCode(),
			Err:        fmt.Errorf("failed to decode response: %w", err),
		}
	}

	return nil
}
