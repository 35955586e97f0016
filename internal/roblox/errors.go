package roblox

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/placebot/internal/common"
)

// APIError is a non-2xx platform response.
type APIError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s failed (%d)", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s failed (%d): %s", e.Op, e.StatusCode, e.Body)
}

// Is lets 401 and 403 responses match common.ErrUnauthorized.
func (e *APIError) Is(target error) bool {
	return target == common.ErrUnauthorized &&
		(e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden)
}

// StatusCode extracts the HTTP status from err, or 0 when err is not an
// APIError.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
