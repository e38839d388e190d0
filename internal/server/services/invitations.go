package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/invitekeeper/internal/common"
	"github.com/dmitrijs2005/invitekeeper/internal/dbx"
	"github.com/dmitrijs2005/invitekeeper/internal/logging"
	"github.com/dmitrijs2005/invitekeeper/internal/server/models"
	"github.com/dmitrijs2005/invitekeeper/internal/server/repositories/repomanager"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/google/uuid"
)

// Dispatcher hands a stored invitation to whatever delivers it to the
// applicant.
type Dispatcher interface {
	Dispatch(ctx context.Context, inv *models.Invitation) error
}

// InvitationService issues invitations.
type InvitationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	dispatcher  Dispatcher
	logger      logging.Logger

	// NowFunc is used to get the current time.
	// Exposed for testing purposes.
	NowFunc func() time.Time
	// NewID generates invitation ids.
	NewID func() (uuid.UUID, error)
}

// NewInvitationService constructs an InvitationService. d may be nil.
func NewInvitationService(db *sql.DB, m repomanager.RepositoryManager, d Dispatcher, l logging.Logger) *InvitationService {
	return &InvitationService{
		db:          db,
		repomanager: m,
		dispatcher:  d,
		logger:      l.With("module", "invitation_service"),
		NowFunc:     time.Now,
		NewID:       uuid.NewRandom,
	}
}

// Create issues an invitation for email, valid for common.InvitationValidity.
// Other live invitations for the same email are left alone.
func (s *InvitationService) Create(ctx context.Context, email string) (*models.Invitation, error) {
	if err := validation.Validate(email, validation.Required, is.Email); err != nil {
		return nil, common.ErrInvalidInput
	}

	id, err := s.NewID()
	if err != nil {
		return nil, serviceError(ctx, s.logger, "create_invitation", fmt.Errorf("generate id: %w", err))
	}

	inv := &models.Invitation{
		ID:        id,
		Email:     email,
		ExpiresAt: s.NowFunc().Add(common.InvitationValidity),
	}

	err = dbx.WithConn(ctx, s.db, func(ctx context.Context, conn dbx.DBTX) error {
		inv, err = s.repomanager.Invitations(conn).Create(ctx, inv)
		return err
	})
	if err != nil {
		return nil, serviceError(ctx, s.logger, "create_invitation", err)
	}

	s.logger.Info(ctx, "invitation created", "id", inv.ID.String(), "email", inv.Email)

	if s.dispatcher != nil {
		if err := s.dispatcher.Dispatch(ctx, inv); err != nil {
			s.logger.Warn(ctx, "invitation dispatch failed", "id", inv.ID.String(), "error", err)
		}
	}

	return inv, nil
}
