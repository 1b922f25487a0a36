// File: internal/session/model.go
package session

import (
	"time"

	"github.com/google/uuid"
)

// Session is the server-side view of an authenticated browser session. The
// auth provider owns the credentials; this record only mirrors what the
// application needs between requests.
type Session struct {
	UserID      uuid.UUID  `json:"user_id"`
	FirebaseUID string     `json:"firebase_uid"`
	Email       *string    `json:"email,omitempty"`
	SignedInAt  time.Time  `json:"signed_in_at"`
	LastSeenAt  time.Time  `json:"last_seen_at"`

	// PasswordRecovery is set when the session was entered through a
	// recovery link. It survives token refreshes so the password form
	// cannot be skipped, and is cleared only by a RECOVERY_CLEARED event
	// or the end of the session.
	PasswordRecovery bool `json:"password_recovery"`
}
