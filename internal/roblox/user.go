package roblox

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/placebot/internal/common"
)

// User is the account behind a session cookie.
type User struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

// Label is the display name, falling back to the account name.
func (u User) Label() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Name
}

// AuthenticatedUser resolves the account the cookie belongs to. A rejected
// cookie yields an *APIError matching common.ErrUnauthorized.
func (c *Client) AuthenticatedUser(ctx context.Context, cookie string) (User, error) {
	const op = "authentication"

	req, err := c.newRequest(ctx, http.MethodGet, c.endpoints.Users+"/v1/users/authenticated", cookie, nil)
	if err != nil {
		return User{}, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	body, _, err := c.do(op, req)
	if err != nil {
		return User{}, err
	}

	var u User
	if err := json.Unmarshal(body, &u); err != nil {
		return User{}, fmt.Errorf("%s: %w: %v", op, common.ErrUnexpectedResponse, err)
	}
	if u.ID == 0 {
		return User{}, fmt.Errorf("%s: %w: missing user id", op, common.ErrUnexpectedResponse)
	}
	return u, nil
}

// CSRFToken obtains a fresh anti-forgery token. The platform hands tokens out
// on a rejected logout request, so the response status is ignored and only
// the header matters. The call is not idempotent; request a new token for
// each state-changing call.
func (c *Client) CSRFToken(ctx context.Context, cookie string) (string, error) {
	const op = "csrf token"

	req, err := c.newRequest(ctx, http.MethodPost, c.endpoints.Auth+"/v2/logout", cookie, nil)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	token := strings.TrimSpace(resp.Header.Get(common.CSRFTokenHeaderName))
	if token == "" {
		return "", &TokenError{StatusCode: resp.StatusCode}
	}
	return token, nil
}

// TokenError reports a token response without the token header.
type TokenError struct {
	StatusCode int
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("%s (%d)", common.ErrCSRFTokenMissing, e.StatusCode)
}

func (e *TokenError) Unwrap() error {
	return common.ErrCSRFTokenMissing
}
