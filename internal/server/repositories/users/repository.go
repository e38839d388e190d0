// Package users declares the user store and its PostgreSQL implementation.
package users

import (
	"context"

	"github.com/dmitrijs2005/invitekeeper/internal/server/models"
)

type Repository interface {
	// Create inserts user. A duplicate email yields common.ErrConstraintViolated.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// FindByEmail returns every user with email, oldest first.
	FindByEmail(ctx context.Context, email string) ([]*models.User, error)
}
