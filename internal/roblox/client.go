// Package roblox is a small HTTP client for the endpoints the publisher
// needs: session identity, anti-forgery tokens, place upload, place settings
// and public place details.
//
// Every authenticated call carries the session cookie and a browser
// User-Agent. The client holds no session state; the caller passes the
// cookie to each call.
package roblox

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/placebot/internal/common"
	"github.com/dmitrijs2005/placebot/internal/netx"
)

// Endpoints holds the base URLs of the platform services.
type Endpoints struct {
	Users   string
	Auth    string
	Data    string
	Develop string
	Games   string
	WWW     string
}

// DefaultEndpoints are the production hosts.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Users:   "https://users.roblox.com",
		Auth:    "https://auth.roblox.com",
		Data:    "https://data.roblox.com",
		Develop: "https://develop.roblox.com",
		Games:   "https://games.roblox.com",
		WWW:     "https://www.roblox.com",
	}
}

// Client talks to the platform over an injected *http.Client.
type Client struct {
	http      *http.Client
	endpoints Endpoints
	userAgent string
	bodyLimit int64
}

type Option func(*Client)

func WithEndpoints(e Endpoints) Option {
	return func(c *Client) { c.endpoints = e }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithBodyLimit bounds how much of a successful response is read.
func WithBodyLimit(n int64) Option {
	return func(c *Client) { c.bodyLimit = n }
}

// NewClient returns a Client. A nil httpClient gets a private client with a
// 60 second timeout.
func NewClient(httpClient *http.Client, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	c := &Client{
		http:      httpClient,
		endpoints: DefaultEndpoints(),
		userAgent: common.DefaultUserAgent,
		bodyLimit: netx.DefaultBodyLimit,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoints returns the configured base URLs.
func (c *Client) Endpoints() Endpoints {
	return c.endpoints
}

func (c *Client) newRequest(ctx context.Context, method, url, cookie string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	if cookie != "" {
		// set verbatim: AddCookie would quote or strip characters the
		// platform issues in session values
		req.Header.Set("Cookie", common.SecurityCookieName+"="+cookie)
	}
	return req, nil
}

// do sends req and returns the body of a 2xx response. Non-2xx responses
// become *APIError carrying the truncated body.
func (c *Client) do(op string, req *http.Request) ([]byte, *http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp, &APIError{Op: op, StatusCode: resp.StatusCode, Body: netx.ErrorBody(resp)}
	}

	data, err := netx.ReadAllWithLimit(resp.Body, c.bodyLimit)
	if err != nil {
		return nil, resp, fmt.Errorf("%s: read body: %w", op, err)
	}
	return data, resp, nil
}
