// Package services contains the server-side business logic: issuing
// invitations, redeeming them into users, and verifying credentials.
//
// A pooled connection is held for one store round trip at a time, never across
// password hashing. Operations return only the service-level error kinds from package common. Store and crypto errors are
// logged here and never returned to the caller.
package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/invitekeeper/internal/common"
	"github.com/dmitrijs2005/invitekeeper/internal/logging"
)

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// PasswordHasher hashes and verifies credentials. auth.Hasher implements it.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, stored string) bool
}

// serviceError converts err into a service-level kind. Kinds meant for the
// caller pass through; constraint violations become common.ErrConflict;
// timeouts and pool exhaustion become common.ErrUnavailable; anything else
// is logged and becomes common.ErrorInternal.
func serviceError(ctx context.Context, logger logging.Logger, op string, err error) error {
	switch {
	case errors.Is(err, common.ErrInvalidCredentials):
		return common.ErrInvalidCredentials
	case errors.Is(err, common.ErrInvalidInvitation):
		return common.ErrInvalidInvitation
	case errors.Is(err, common.ErrInvalidInput):
		return common.ErrInvalidInput
	case errors.Is(err, common.ErrConflict), errors.Is(err, common.ErrConstraintViolated):
		return common.ErrConflict
	case errors.Is(err, common.ErrUnavailable):
		logger.Warn(ctx, "store unavailable", "op", op, "error", err)
		return common.ErrUnavailable
	default:
		logger.Error(ctx, "internal error", "op", op, "error", err)
		return common.ErrorInternal
	}
}
