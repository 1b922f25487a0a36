// File: internal/firebase/service.go
package firebase

import (
	"context"
	"fmt"
	"path/filepath"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"salehunt_backend/internal/config"
)

// FirebaseService wraps the Firebase Admin SDK auth client. All identity
// operations (token verification, user lookup, action links, revocation) go
// through it; the application never stores credentials itself.
type FirebaseService struct {
	authClient *auth.Client
	logger     *zap.Logger
}

// NewFirebaseService initializes the Firebase Admin SDK from the configured
// service account key.
func NewFirebaseService(cfg *config.Config, logger *zap.Logger) (*FirebaseService, error) {
	if cfg.FirebaseServiceAccountKeyPath == "" {
		logger.Error("Firebase service account key path is not configured.")
		return nil, fmt.Errorf("firebase service account key path is required")
	}

	cleanPath := filepath.Clean(cfg.FirebaseServiceAccountKeyPath)
	opt := option.WithCredentialsFile(cleanPath)

	var app *firebase.App
	var err error
	if cfg.FirebaseProjectID != "" {
		conf := &firebase.Config{ProjectID: cfg.FirebaseProjectID}
		app, err = firebase.NewApp(context.Background(), conf, opt)
	} else {
		app, err = firebase.NewApp(context.Background(), nil, opt)
	}
	if err != nil {
		logger.Error("Failed to initialize Firebase Admin SDK app", zap.Error(err), zap.String("keyPath", cleanPath))
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	authClient, err := app.Auth(context.Background())
	if err != nil {
		logger.Error("Failed to get Firebase Auth client", zap.Error(err))
		return nil, fmt.Errorf("error getting Firebase Auth client: %w", err)
	}

	logger.Info("Firebase Admin SDK initialized successfully.")
	return &FirebaseService{
		authClient: authClient,
		logger:     logger,
	}, nil
}

// VerifyIDToken verifies a Firebase ID token and returns its claims.
func (s *FirebaseService) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	if idToken == "" {
		return nil, fmt.Errorf("ID token must not be empty")
	}

	token, err := s.authClient.VerifyIDToken(ctx, idToken)
	if err != nil {
		s.logger.Warn("Firebase ID token verification failed", zap.Error(err))
		return nil, fmt.Errorf("failed to verify Firebase ID token: %w", err)
	}

	s.logger.Debug("Firebase ID token verified successfully", zap.String("uid", token.UID))
	return token, nil
}

// GetUser fetches the provider-side user record for a uid.
func (s *FirebaseService) GetUser(ctx context.Context, uid string) (*auth.UserRecord, error) {
	record, err := s.authClient.GetUser(ctx, uid)
	if err != nil {
		s.logger.Warn("Failed to fetch Firebase user record", zap.Error(err), zap.String("uid", uid))
		return nil, fmt.Errorf("failed to fetch Firebase user %s: %w", uid, err)
	}
	return record, nil
}

// RevokeRefreshTokens revokes all refresh tokens for a user. Existing ID
// tokens stay valid until expiry, so callers pair this with the session
// blocklist for immediate effect.
func (s *FirebaseService) RevokeRefreshTokens(ctx context.Context, uid string) error {
	if err := s.authClient.RevokeRefreshTokens(ctx, uid); err != nil {
		s.logger.Error("Failed to revoke refresh tokens", zap.Error(err), zap.String("uid", uid))
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}
	s.logger.Info("Successfully revoked refresh tokens for user", zap.String("uid", uid))
	return nil
}

// CustomToken mints a provider token for a uid. The OAuth callback uses it
// so the frontend can finish sign-in with the provider SDK.
func (s *FirebaseService) CustomToken(ctx context.Context, uid string) (string, error) {
	token, err := s.authClient.CustomToken(ctx, uid)
	if err != nil {
		s.logger.Error("Failed to mint custom token", zap.Error(err), zap.String("uid", uid))
		return "", fmt.Errorf("failed to mint custom token: %w", err)
	}
	return token, nil
}

// GetUserByEmail fetches the provider-side user record for an email address.
func (s *FirebaseService) GetUserByEmail(ctx context.Context, email string) (*auth.UserRecord, error) {
	record, err := s.authClient.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch Firebase user by email: %w", err)
	}
	return record, nil
}

// ImportOAuthUser ensures a provider user exists for an externally verified
// OAuth profile, creating one when needed, and returns its uid.
func (s *FirebaseService) ImportOAuthUser(ctx context.Context, email, displayName, photoURL string) (string, error) {
	record, err := s.authClient.GetUserByEmail(ctx, email)
	if err == nil {
		return record.UID, nil
	}

	params := (&auth.UserToCreate{}).
		Email(email).
		EmailVerified(true)
	if displayName != "" {
		params = params.DisplayName(displayName)
	}
	if photoURL != "" {
		params = params.PhotoURL(photoURL)
	}

	created, err := s.authClient.CreateUser(ctx, params)
	if err != nil {
		s.logger.Error("Failed to create provider user for OAuth profile", zap.Error(err))
		return "", fmt.Errorf("failed to create provider user: %w", err)
	}
	s.logger.Info("Provider user created for OAuth profile", zap.String("uid", created.UID))
	return created.UID, nil
}

// PasswordResetLink generates a provider-hosted password reset link that
// lands the user back on the frontend reset page.
func (s *FirebaseService) PasswordResetLink(ctx context.Context, email, continueURL string) (string, error) {
	settings := &auth.ActionCodeSettings{URL: continueURL}
	link, err := s.authClient.PasswordResetLinkWithSettings(ctx, email, settings)
	if err != nil {
		s.logger.Error("Failed to generate password reset link", zap.Error(err))
		return "", fmt.Errorf("failed to generate password reset link: %w", err)
	}
	return link, nil
}

// EmailVerificationLink generates a provider-hosted email verification link.
func (s *FirebaseService) EmailVerificationLink(ctx context.Context, email, continueURL string) (string, error) {
	settings := &auth.ActionCodeSettings{URL: continueURL}
	link, err := s.authClient.EmailVerificationLinkWithSettings(ctx, email, settings)
	if err != nil {
		s.logger.Error("Failed to generate email verification link", zap.Error(err))
		return "", fmt.Errorf("failed to generate email verification link: %w", err)
	}
	return link, nil
}
