// File: internal/auth/model.go
package auth

import (
	"salehunt_backend/internal/profile"
	"salehunt_backend/internal/session"
)

// AuthEventRequest is the payload the frontend posts when the provider SDK
// reports an auth lifecycle change.
type AuthEventRequest struct {
	Type string `json:"type" binding:"required,oneof=SIGNED_IN SIGNED_OUT TOKEN_REFRESHED PASSWORD_RECOVERY USER_UPDATED"`
}

// PasswordResetRequest asks the provider to start a recovery flow.
type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// EmailVerificationRequest asks the provider for a verification link.
type EmailVerificationRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// SessionResponse is returned by the session bootstrap endpoint.
type SessionResponse struct {
	Session *session.Session        `json:"session"`
	Profile profile.ProfileResponse `json:"profile"`
}

// OAuthCallbackResponse carries the custom token the frontend exchanges with
// the provider SDK to finish sign-in.
type OAuthCallbackResponse struct {
	CustomToken string `json:"custom_token"`
	RedirectTo  string `json:"redirect_to"`
}
