package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/invitekeeper/internal/common"
	"github.com/dmitrijs2005/invitekeeper/internal/dbx"
	"github.com/dmitrijs2005/invitekeeper/internal/logging"
	"github.com/dmitrijs2005/invitekeeper/internal/server/models"
	"github.com/dmitrijs2005/invitekeeper/internal/server/repositories/repomanager"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
)

// RegistrationService redeems invitations into users.
type RegistrationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
	logger      logging.Logger

	// NowFunc is used to get the current time.
	// Exposed for testing purposes.
	NowFunc func() time.Time
}

// NewRegistrationService constructs a RegistrationService.
func NewRegistrationService(db *sql.DB, m repomanager.RepositoryManager, h PasswordHasher, l logging.Logger) *RegistrationService {
	return &RegistrationService{
		db:          db,
		repomanager: m,
		hasher:      h,
		logger:      l.With("module", "registration_service"),
		NowFunc:     time.Now,
	}
}

// Register creates a user for the email bound to invitationID.
//
// A malformed, unknown or expired id yields common.ErrInvalidInvitation; the
// three cases are indistinguishable to the caller. An empty password or one
// longer than bcrypt accepts yields common.ErrInvalidInput. A second user for
// the same email yields common.ErrConflict.
//
// The invitation is not consumed: an unexpired id can be redeemed again,
// which then fails with common.ErrConflict.
func (s *RegistrationService) Register(ctx context.Context, invitationID, password string) (*models.SlimUser, error) {
	id, err := uuid.Parse(invitationID)
	if err != nil {
		return nil, common.ErrInvalidInvitation
	}

	// Length is checked on bytes, bcrypt rejects anything past MaxPasswordBytes.
	if err := validation.Validate([]byte(password), validation.Required, validation.Length(1, MaxPasswordBytes)); err != nil {
		return nil, common.ErrInvalidInput
	}

	var inv *models.Invitation
	err = dbx.WithConn(ctx, s.db, func(ctx context.Context, conn dbx.DBTX) error {
		inv, err = s.repomanager.Invitations(conn).Find(ctx, id)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidInvitation
		}
		return nil, serviceError(ctx, s.logger, "register", err)
	}

	if !inv.ValidAt(s.NowFunc()) {
		return nil, common.ErrInvalidInvitation
	}

	// Hashing holds no connection; the unique email key settles races.
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, serviceError(ctx, s.logger, "register", fmt.Errorf("hash password: %w", err))
	}

	var user *models.User
	err = dbx.WithConn(ctx, s.db, func(ctx context.Context, conn dbx.DBTX) error {
		user, err = s.repomanager.Users(conn).Create(ctx, &models.User{Email: inv.Email, Password: hash})
		return err
	})
	if err != nil {
		return nil, serviceError(ctx, s.logger, "register", err)
	}

	s.logger.Info(ctx, "user registered", "email", user.Email)

	return user.Slim(), nil
}
