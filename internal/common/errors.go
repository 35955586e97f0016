// Package common defines shared constants and sentinel errors used across
// the intake, storage and publishing layers of placebot. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Storage-level errors.
	ErrNotFound          = errors.New("not found")
	ErrInvalidIdentifier = errors.New("invalid file identifier")
	ErrAlreadyExists     = errors.New("already exists")

	// Intake errors (input rejection).
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrFileTooLarge      = errors.New("file too large")
	ErrUnreadable        = errors.New("file could not be read")

	// Platform errors.
	ErrUnauthorized       = errors.New("unauthorized")
	ErrCSRFTokenMissing   = errors.New("could not get CSRF token")
	ErrUnexpectedResponse = errors.New("unexpected response")
)
