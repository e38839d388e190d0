// Package maildrop hands freshly issued invitations to the delivery side.
// Delivery proper (mail, chat) is done by an external mailer; this package
// only drops an envelope where that mailer picks it up.
package maildrop

import (
	"context"
	"time"

	"github.com/dmitrijs2005/invitekeeper/internal/logging"
	"github.com/dmitrijs2005/invitekeeper/internal/server/models"
)

// Envelope is the JSON document describing one invitation.
type Envelope struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

func newEnvelope(inv *models.Invitation) Envelope {
	return Envelope{ID: inv.ID.String(), Email: inv.Email, ExpiresAt: inv.ExpiresAt.UTC()}
}

// LogDispatcher writes invitations to the log. It is used when no object
// storage is configured.
type LogDispatcher struct {
	logger logging.Logger
}

func NewLogDispatcher(l logging.Logger) *LogDispatcher {
	return &LogDispatcher{logger: l.With("module", "maildrop")}
}

func (d *LogDispatcher) Dispatch(ctx context.Context, inv *models.Invitation) error {
	e := newEnvelope(inv)
	d.logger.Info(ctx, "invitation ready", "id", e.ID, "email", e.Email, "expires_at", e.ExpiresAt)
	return nil
}
