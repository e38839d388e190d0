package auth

import (
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ParseCost converts a raw work-factor setting into a bcrypt cost.
// Empty, unparsable or out-of-range input falls back to bcrypt.DefaultCost.
func ParseCost(raw string) int {
	cost, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return bcrypt.DefaultCost
	}
	return cost
}

// Hasher hashes and verifies passwords with bcrypt. The salt and cost are
// embedded in the hash, so verification needs nothing else.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher using cost. Invalid costs mean bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Cost reports the work factor used for new hashes.
func (h *Hasher) Cost() int {
	return h.cost
}

// Hash returns the bcrypt hash of plain.
func (h *Hasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether plain matches stored. Any bcrypt error, including
// a corrupt or foreign hash, counts as a mismatch.
func (h *Hasher) Verify(plain, stored string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)) == nil
}
