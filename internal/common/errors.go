// Package common defines shared constants and sentinel errors used across
// the journal server layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal   = errors.New("internal error")
	ErrorValidation = errors.New("validation error")

	// Auth errors. ErrorUnauthorized covers every bad-credentials case so that
	// callers cannot tell an unknown user from a wrong password.
	ErrorUnauthorized          = errors.New("invalid username or password")
	ErrorAuthorizationRequired = errors.New("authorization required")

	// Session token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
