package invitations

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/invitekeeper/internal/dbx"
	"github.com/dmitrijs2005/invitekeeper/internal/server/models"
	"github.com/google/uuid"
)

// PostgresRepository implements invitation storage over dbx.DBTX
// (satisfied by *sql.DB, *sql.Conn or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts inv. Nothing prevents several live invitations for the
// same email.
func (r *PostgresRepository) Create(ctx context.Context, inv *models.Invitation) (*models.Invitation, error) {
	query := `
		INSERT INTO invitations (id, email, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, email, expires_at
	`
	out := &models.Invitation{}
	err := r.db.QueryRowContext(ctx, query, inv.ID, inv.Email, inv.ExpiresAt).
		Scan(&out.ID, &out.Email, &out.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", dbx.MapDBErr(err))
	}
	return out, nil
}

// Find returns the invitation with the given id.
// If not found, it returns common.ErrorNotFound.
func (r *PostgresRepository) Find(ctx context.Context, id uuid.UUID) (*models.Invitation, error) {
	query := `
		SELECT id, email, expires_at
		FROM invitations
		WHERE id = $1
	`
	inv := &models.Invitation{}
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&inv.ID, &inv.Email, &inv.ExpiresAt); err != nil {
		return nil, fmt.Errorf("db error: %w", dbx.MapDBErr(err))
	}
	return inv, nil
}
