package dbx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/invitekeeper/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapDBErr(t *testing.T) {
	other := errors.New("syntax error")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{name: "no rows", in: sql.ErrNoRows, want: common.ErrorNotFound},
		{name: "wrapped no rows", in: fmt.Errorf("scan: %w", sql.ErrNoRows), want: common.ErrorNotFound},
		{name: "unique violation", in: &pgconn.PgError{Code: "23505"}, want: common.ErrConstraintViolated},
		{name: "deadline", in: context.DeadlineExceeded, want: common.ErrUnavailable},
		{name: "canceled", in: context.Canceled, want: common.ErrUnavailable},
		{name: "conn done", in: sql.ErrConnDone, want: common.ErrUnavailable},
		{name: "already mapped", in: common.ErrUnavailable, want: common.ErrUnavailable},
		{name: "other pg error", in: &pgconn.PgError{Code: "42601"}, want: nil},
		{name: "other", in: other, want: other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapDBErr(tt.in)
			assert.Error(t, got)
			if tt.want != nil {
				assert.ErrorIs(t, got, tt.want)
			}
			assert.ErrorIs(t, got, tt.in, "original error must stay in the chain")
		})
	}
}

func TestMapDBErr_Nil(t *testing.T) {
	assert.NoError(t, MapDBErr(nil))
}

func TestMapDBErr_OtherPgErrorNotConstraint(t *testing.T) {
	err := MapDBErr(&pgconn.PgError{Code: "42601"})
	assert.NotErrorIs(t, err, common.ErrConstraintViolated)
}
