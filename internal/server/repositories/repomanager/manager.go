package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/invitekeeper/internal/dbx"
	"github.com/dmitrijs2005/invitekeeper/internal/server/repositories/invitations"
	"github.com/dmitrijs2005/invitekeeper/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so one pooled
// connection or transaction can serve several repositories in a single
// operation.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Invitations(db dbx.DBTX) invitations.Repository
}
