package models

import (
	"time"

	"github.com/google/uuid"
)

// Invitation allows Email to register until ExpiresAt.
type Invitation struct {
	ID        uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// ValidAt reports whether the invitation can still be redeemed at now.
func (i *Invitation) ValidAt(now time.Time) bool {
	return now.Before(i.ExpiresAt)
}
