package users

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/invitekeeper/internal/dbx"
	"github.com/dmitrijs2005/invitekeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (email, password)
         VALUES ($1, $2)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query, user.Email, user.Password).Scan(&user.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", dbx.MapDBErr(err))
	}

	return user, nil
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) ([]*models.User, error) {
	query :=
		`SELECT email, password, created_at FROM users
		 WHERE email = $1
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", dbx.MapDBErr(err))
	}
	defer rows.Close()

	var result []*models.User
	for rows.Next() {
		u := &models.User{}
		if err := rows.Scan(&u.Email, &u.Password, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", dbx.MapDBErr(err))
		}
		result = append(result, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", dbx.MapDBErr(err))
	}

	return result, nil
}
