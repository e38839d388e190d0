// Package invitations declares the server-side repository contract for
// storing and looking up registration invitations.
package invitations

import (
	"context"

	"github.com/dmitrijs2005/invitekeeper/internal/server/models"
	"github.com/google/uuid"
)

// Repository defines operations for issuing and retrieving invitations.
type Repository interface {
	// Create stores a new invitation and returns the stored row.
	Create(ctx context.Context, inv *models.Invitation) (*models.Invitation, error)

	// Find looks up an invitation by id. Implementations return
	// common.ErrorNotFound when it is absent.
	Find(ctx context.Context, id uuid.UUID) (*models.Invitation, error)
}
