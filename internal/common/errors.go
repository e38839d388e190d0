// Package common defines shared constants and sentinel errors used across
// the server and client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound         = errors.New("not found")
	ErrConstraintViolated = errors.New("constraint violated")
	ErrUnavailable        = errors.New("service unavailable, retry")

	// Service-level errors. These are the only kinds a service returns.
	ErrorInternal         = errors.New("internal error")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidInvitation  = errors.New("invalid invitation")
	ErrConflict           = errors.New("user already exists")
	ErrInvalidInput       = errors.New("invalid input")

	// Token errors (invalid signature, malformed structure, expiry).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
