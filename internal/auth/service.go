// File: internal/auth/service.go
package auth

import (
	"context"
	"fmt"
	"time"

	firebaseauth "firebase.google.com/go/v4/auth"
	"go.uber.org/zap"

	"salehunt_backend/internal/common"
	"salehunt_backend/internal/config"
	"salehunt_backend/internal/session"
	"salehunt_backend/internal/shared"
)

// ProviderClient is the slice of the Firebase service the auth flows use.
type ProviderClient interface {
	RevokeRefreshTokens(ctx context.Context, uid string) error
	PasswordResetLink(ctx context.Context, email, continueURL string) (string, error)
	EmailVerificationLink(ctx context.Context, email, continueURL string) (string, error)
}

// revocationTTL bounds how long a revocation entry must outlive sign-out.
// Provider ID tokens live for an hour; double that leaves slack for clock
// skew.
const revocationTTL = 2 * time.Hour

// Service orchestrates the delegated auth flows: the provider owns
// credentials and tokens, this service owns the session records, the event
// fan-out and the revocation list.
type Service struct {
	fb          ProviderClient
	store       *session.Store
	bus         *session.EventBus
	revocations session.RevocationService
	profiles    shared.ProfileService
	cfg         *config.Config
	logger      *zap.Logger
}

// NewService creates a new auth service.
func NewService(
	fb ProviderClient,
	store *session.Store,
	bus *session.EventBus,
	revocations session.RevocationService,
	profiles shared.ProfileService,
	cfg *config.Config,
	logger *zap.Logger,
) *Service {
	return &Service{
		fb:          fb,
		store:       store,
		bus:         bus,
		revocations: revocations,
		profiles:    profiles,
		cfg:         cfg,
		logger:      logger,
	}
}

// BootstrapSession turns a verified provider token into a server-side
// session. It is idempotent: reloading the app re-bootstraps the same
// session without side effects beyond a refreshed last-seen time.
func (s *Service) BootstrapSession(ctx context.Context, token *firebaseauth.Token) (*session.Session, *shared.Profile, error) {
	p, wasCreated, err := s.profiles.GetOrCreateFromFirebaseClaims(ctx, token)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	existing, err := s.store.Get(token.UID)
	if err != nil {
		s.logger.Warn("Session lookup failed during bootstrap", zap.Error(err), zap.String("uid", token.UID))
	}

	sess := existing
	if sess == nil {
		sess = &session.Session{
			UserID:      p.ID,
			FirebaseUID: token.UID,
			Email:       p.Email,
			SignedInAt:  now,
		}
	}
	sess.LastSeenAt = now
	if err := s.store.Put(sess); err != nil {
		return nil, nil, fmt.Errorf("failed to persist session: %w", err)
	}

	if existing == nil {
		s.bus.Publish(shared.AuthEvent{
			Type:        shared.EventSignedIn,
			UserID:      p.ID,
			FirebaseUID: token.UID,
			Email:       p.Email,
			OccurredAt:  now,
		})
	}

	if wasCreated {
		s.logger.Info("First sign-in bootstrapped a new profile",
			zap.String("profileID", p.ID.String()),
			zap.String("uid", token.UID))
	}
	return sess, p, nil
}

// HandleAuthEvent relays an auth lifecycle event into the server-side
// fan-out. PASSWORD_RECOVERY additionally flags the session so the mark
// survives later token refreshes; RECOVERY_CLEARED unflags it once the user
// has set a new password.
func (s *Service) HandleAuthEvent(ctx context.Context, token *firebaseauth.Token, eventType shared.AuthEventType) error {
	p, err := s.profiles.GetByFirebaseUID(ctx, token.UID)
	if err != nil {
		return err
	}

	switch eventType {
	case shared.EventPasswordRecovery:
		if err := s.store.MarkRecovery(token.UID); err != nil {
			s.logger.Warn("Failed to mark session recovery flag", zap.Error(err), zap.String("uid", token.UID))
		}
	case shared.EventRecoveryCleared:
		if err := s.store.ClearRecovery(token.UID); err != nil {
			s.logger.Warn("Failed to clear session recovery flag", zap.Error(err), zap.String("uid", token.UID))
		}
	}

	s.bus.Publish(shared.AuthEvent{
		Type:        eventType,
		UserID:      p.ID,
		FirebaseUID: token.UID,
		Email:       p.Email,
		OccurredAt:  time.Now(),
	})
	return nil
}

// SignOut ends the session everywhere: provider refresh tokens are revoked,
// the uid goes on the revocation list so outstanding ID tokens die early,
// the session record is dropped and subscribers are notified. Provider
// revocation must succeed first; when it fails nothing local changes and no
// SIGNED_OUT is published, so the caller can retry with the session intact.
func (s *Service) SignOut(ctx context.Context, firebaseUID string) error {
	if err := s.fb.RevokeRefreshTokens(ctx, firebaseUID); err != nil {
		s.logger.Error("Provider token revocation failed during sign-out", zap.Error(err), zap.String("uid", firebaseUID))
		return common.ErrServiceUnavailable.WithDetails("Sign-out did not complete. Please try again.")
	}
	if err := s.revocations.Revoke(ctx, firebaseUID, revocationTTL); err != nil {
		s.logger.Error("Failed to record session revocation", zap.Error(err), zap.String("uid", firebaseUID))
	}
	if err := s.store.Delete(firebaseUID); err != nil {
		s.logger.Warn("Failed to delete session record", zap.Error(err), zap.String("uid", firebaseUID))
	}

	s.bus.Publish(shared.AuthEvent{
		Type:        shared.EventSignedOut,
		FirebaseUID: firebaseUID,
		OccurredAt:  time.Now(),
	})
	return nil
}

// StartPasswordReset asks the provider for a recovery link. The outcome is
// the same whether or not the email exists, so the endpoint cannot be used
// to probe for accounts.
func (s *Service) StartPasswordReset(ctx context.Context, email string) error {
	continueURL := s.cfg.FrontendURL + "/nova-senha"
	link, err := s.fb.PasswordResetLink(ctx, email, continueURL)
	if err != nil {
		s.logger.Info("Password reset link generation failed", zap.Error(err))
		return nil
	}
	// Link delivery is the provider's job; keeping it out of the response
	// and logs avoids leaking a sign-in capability.
	_ = link
	s.logger.Info("Password reset initiated")
	return nil
}

// StartEmailVerification asks the provider for a verification link.
func (s *Service) StartEmailVerification(ctx context.Context, email string) error {
	continueURL := s.cfg.FrontendURL + "/email-verificado"
	if _, err := s.fb.EmailVerificationLink(ctx, email, continueURL); err != nil {
		s.logger.Info("Email verification link generation failed", zap.Error(err))
		return nil
	}
	s.logger.Info("Email verification initiated")
	return nil
}

func mapEventType(raw string) (shared.AuthEventType, error) {
	switch shared.AuthEventType(raw) {
	case shared.EventSignedIn, shared.EventSignedOut, shared.EventTokenRefreshed,
		shared.EventPasswordRecovery, shared.EventRecoveryCleared, shared.EventUserUpdated:
		return shared.AuthEventType(raw), nil
	default:
		return "", common.ErrBadRequest.WithDetails(fmt.Sprintf("Unknown auth event type %q.", raw))
	}
}
