package dbx

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/invitekeeper/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// MapDBErr maps driver errors to repository-level errors from package common.
// The original error stays in the chain for logging. If err is nil, MapDBErr
// returns nil.
//
//   - sql.ErrNoRows                         -> common.ErrorNotFound
//   - unique violation (SQLSTATE 23505)     -> common.ErrConstraintViolated
//   - deadline, cancel, closed or bad conn  -> common.ErrUnavailable
func MapDBErr(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, common.ErrorNotFound),
		errors.Is(err, common.ErrConstraintViolated),
		errors.Is(err, common.ErrUnavailable):
		return err
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("%w: %w", common.ErrorNotFound, err)
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled),
		errors.Is(err, sql.ErrConnDone),
		errors.Is(err, driver.ErrBadConn):
		return fmt.Errorf("%w: %w", common.ErrUnavailable, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %w", common.ErrConstraintViolated, err)
	}

	return err
}
