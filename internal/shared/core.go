// File: internal/shared/core.go
package shared

import (
	"context"
	"time"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/google/uuid"
)

// Identity is the verified principal attached to a request after the auth
// middleware has run. The ID is the local profile id, not the provider uid.
type Identity struct {
	ID            uuid.UUID
	FirebaseUID   string
	Email         *string
	EmailVerified bool
}

// Profile is the application-side extension of a provider identity.
type Profile struct {
	ID                  uuid.UUID
	FirebaseUID         string
	Email               *string
	FullName            *string
	AvatarURL           *string
	OnboardingCompleted bool
	OnboardingStep      int
	LastLoginAt         *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// OnboardingComplete reports whether the profile has finished onboarding.
// Either marker is sufficient: legacy rows carry only the step counter.
func (p *Profile) OnboardingComplete() bool {
	return p.OnboardingCompleted || p.OnboardingStep >= 8
}

// ProfileService is the profile surface shared across packages. The auth
// middleware and the auth state manager depend on this interface rather than
// the profile package to keep the dependency graph acyclic.
type ProfileService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	GetByFirebaseUID(ctx context.Context, firebaseUID string) (*Profile, error)
	GetOrCreateFromFirebaseClaims(ctx context.Context, token *firebaseauth.Token) (p *Profile, wasCreated bool, err error)
}

// TokenVerifier verifies provider ID tokens. Satisfied by the Firebase
// service; handlers and middleware depend on this interface so tests can
// substitute a fake.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*firebaseauth.Token, error)
}

// AuthEventType enumerates auth lifecycle events. Most originate at the
// provider; RECOVERY_CLEARED is raised by the frontend once the user has set
// a new password, ending the recovery override.
type AuthEventType string

const (
	EventSignedIn         AuthEventType = "SIGNED_IN"
	EventSignedOut        AuthEventType = "SIGNED_OUT"
	EventTokenRefreshed   AuthEventType = "TOKEN_REFRESHED"
	EventPasswordRecovery AuthEventType = "PASSWORD_RECOVERY"
	EventRecoveryCleared  AuthEventType = "RECOVERY_CLEARED"
	EventUserUpdated      AuthEventType = "USER_UPDATED"
)

// AuthEvent is a provider auth lifecycle notification fanned out to
// subscribers by the session store.
type AuthEvent struct {
	Type        AuthEventType
	UserID      uuid.UUID
	FirebaseUID string
	Email       *string
	OccurredAt  time.Time
}

// OAuthUserProfile holds the normalized profile data returned by an OAuth
// provider after the callback exchange.
type OAuthUserProfile struct {
	Provider      string
	ProviderID    string
	Email         string
	FullName      string
	PictureURL    string
	EmailVerified bool
}
