package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/invitekeeper/internal/common"
	"github.com/dmitrijs2005/invitekeeper/internal/dbx"
	"github.com/dmitrijs2005/invitekeeper/internal/logging"
	"github.com/dmitrijs2005/invitekeeper/internal/server/models"
	"github.com/dmitrijs2005/invitekeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// AuthService verifies email and password against stored credentials.
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
	logger      logging.Logger

	// comparisonHash is verified against when no user was found, so a
	// lookup miss costs the same as a wrong password.
	comparisonHash string
}

// NewAuthService constructs an AuthService.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, h PasswordHasher, l logging.Logger) (*AuthService, error) {
	hash, err := h.Hash(uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("comparison hash: %w", err)
	}

	return &AuthService{
		db:             db,
		repomanager:    m,
		hasher:         h,
		logger:         l.With("module", "auth_service"),
		comparisonHash: hash,
	}, nil
}

// Authenticate returns the identity of the user owning email when password
// matches. Unknown email and wrong password both yield
// common.ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.SlimUser, error) {
	var user *models.User

	err := dbx.WithConn(ctx, s.db, func(ctx context.Context, conn dbx.DBTX) error {
		found, err := s.repomanager.Users(conn).FindByEmail(ctx, email)
		if err != nil {
			return err
		}
		if len(found) > 0 {
			// oldest first; the last row is the most recent insert
			user = found[len(found)-1]
		}
		return nil
	})
	if err != nil {
		return nil, serviceError(ctx, s.logger, "authenticate", err)
	}

	if user == nil {
		s.hasher.Verify(password, s.comparisonHash)
		return nil, common.ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, user.Password) {
		return nil, common.ErrInvalidCredentials
	}

	return user.Slim(), nil
}
