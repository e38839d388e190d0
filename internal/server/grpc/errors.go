package grpc

import (
	"errors"

	"github.com/dmitrijs2005/invitekeeper/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps a service error kind to a status. Only the kind's fixed
// message is exposed.
func toStatus(err error) error {
	var code codes.Code
	var kind error

	switch {
	case errors.Is(err, common.ErrInvalidCredentials):
		code, kind = codes.Unauthenticated, common.ErrInvalidCredentials
	case errors.Is(err, common.ErrUnauthorized):
		code, kind = codes.Unauthenticated, common.ErrUnauthorized
	case errors.Is(err, common.ErrInvalidInvitation):
		code, kind = codes.InvalidArgument, common.ErrInvalidInvitation
	case errors.Is(err, common.ErrInvalidInput):
		code, kind = codes.InvalidArgument, common.ErrInvalidInput
	case errors.Is(err, common.ErrConflict):
		code, kind = codes.AlreadyExists, common.ErrConflict
	case errors.Is(err, common.ErrUnavailable):
		code, kind = codes.Unavailable, common.ErrUnavailable
	default:
		code, kind = codes.Internal, common.ErrorInternal
	}

	return status.Error(code, kind.Error())
}
