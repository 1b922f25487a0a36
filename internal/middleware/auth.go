// File: internal/middleware/auth.go
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"salehunt_backend/internal/authstate"
	"salehunt_backend/internal/common"
	"salehunt_backend/internal/session"
	"salehunt_backend/internal/shared"
)

// AuthMiddleware verifies the provider ID token, rejects revoked sessions
// and attaches the local profile identity to the request context. First
// sign-ins create the profile row here.
func AuthMiddleware(
	fb shared.TokenVerifier,
	revocations session.RevocationService,
	profiles shared.ProfileService,
	registry *authstate.Registry,
	logger *zap.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := common.GetTokenFromContext(c)
		if tokenString == "" {
			logger.Debug("Authorization header missing or malformed")
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Authorization header format must be 'Bearer <token>'."))
			return
		}

		token, err := fb.VerifyIDToken(c.Request.Context(), tokenString)
		if err != nil {
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Invalid or expired token."))
			return
		}

		issuedAt := time.Unix(token.IssuedAt, 0)
		revoked, err := revocations.IsRevoked(c.Request.Context(), token.UID, issuedAt)
		if err != nil {
			logger.Error("Revocation check failed", zap.Error(err), zap.String("uid", token.UID))
			common.RespondWithError(c, common.ErrInternalServer.WithDetails("Could not validate session."))
			return
		}
		if revoked {
			logger.Info("Rejected token from revoked session", zap.String("uid", token.UID))
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Session has been signed out."))
			return
		}

		p, _, err := profiles.GetOrCreateFromFirebaseClaims(c.Request.Context(), token)
		if err != nil {
			logger.Error("Failed to resolve profile for verified token", zap.Error(err), zap.String("uid", token.UID))
			common.RespondWithError(c, common.ErrInternalServer.WithDetails("Could not resolve user profile."))
			return
		}

		c.Set(common.UserIDKey, p.ID)
		c.Set(common.FirebaseUIDKey, token.UID)
		if p.Email != nil {
			c.Set(common.UserEmailKey, *p.Email)
		}

		// Keep the session's state machine in step with the verified
		// request. Initialize is a no-op for an already resolved identity.
		registry.ManagerFor(token.UID).Initialize(c.Request.Context(), &shared.Identity{
			ID:          p.ID,
			FirebaseUID: token.UID,
			Email:       p.Email,
		})

		c.Next()
	}
}

// OptionalAuthMiddleware attaches identity when a valid token is present and
// lets the request through anonymously otherwise. Guard decisions use it.
func OptionalAuthMiddleware(
	fb shared.TokenVerifier,
	revocations session.RevocationService,
	logger *zap.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := common.GetTokenFromContext(c)
		if tokenString == "" {
			c.Next()
			return
		}

		token, err := fb.VerifyIDToken(c.Request.Context(), tokenString)
		if err != nil {
			c.Next()
			return
		}

		issuedAt := time.Unix(token.IssuedAt, 0)
		if revoked, err := revocations.IsRevoked(c.Request.Context(), token.UID, issuedAt); err != nil || revoked {
			c.Next()
			return
		}

		c.Set(common.FirebaseUIDKey, token.UID)
		c.Next()
	}
}
