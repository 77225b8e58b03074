// Package common defines shared constants and sentinel errors used across
// client layers of roomadmin. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Lookup errors.
	ErrorNotFound = errors.New("not found")

	// Auth errors.
	ErrorUnauthorized = errors.New("unauthorized")
	ErrInvalidToken   = errors.New("invalid token")
	ErrNotLoggedIn    = errors.New("not logged in")

	// Validation errors.
	ErrorValidation    = errors.New("validation error")
	ErrInvalidFolder   = errors.New("invalid upload folder")
	ErrEmptyFile       = errors.New("empty file")
	ErrUnexpectedReply = errors.New("unexpected server reply")
)
