package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is a server-validated opaque token. Revocation is server side:
// a revoked or expired session fails auth regardless of what the client
// still holds.
type Session struct {
	BaseSimple
	UserID    uuid.UUID  `db:"user_id"`
	Token     uuid.UUID  `db:"token"`
	ExpiresAt time.Time  `db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`
}
