// File: internal/auth/handler.go
package auth

import (
	"errors"
	"net/http"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"salehunt_backend/internal/common"
	"salehunt_backend/internal/config"
	"salehunt_backend/internal/profile"
	"salehunt_backend/internal/shared"
)

// Handler holds dependencies for auth handlers.
type Handler struct {
	service *Service
	oauth   *OAuthService
	fb      shared.TokenVerifier
	cfg     *config.Config
	logger  *zap.Logger
}

// NewHandler creates a new auth handler.
func NewHandler(service *Service, oauth *OAuthService, fb shared.TokenVerifier, cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		oauth:   oauth,
		fb:      fb,
		cfg:     cfg,
		logger:  logger,
	}
}

// RegisterRoutes sets up the auth routes. Session bootstrap and the event
// webhook verify the bearer token themselves because they run before the
// auth middleware has anything to attach.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/session", h.bootstrapSession)
		authGroup.POST("/events", h.handleEvent)
		authGroup.POST("/password-reset", h.startPasswordReset)
		authGroup.POST("/verify-email", h.startEmailVerification)
		authGroup.GET("/google/login", h.googleLogin)
		authGroup.GET("/google/callback", h.googleCallback)

		authenticated := authGroup.Group("")
		authenticated.Use(authMW)
		{
			authenticated.DELETE("/session", h.signOut)
		}
	}
}

func (h *Handler) verifyBearer(c *gin.Context) (*firebaseauth.Token, bool) {
	raw := common.GetTokenFromContext(c)
	if raw == "" {
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Authorization header format must be 'Bearer <token>'."))
		return nil, false
	}
	verified, err := h.fb.VerifyIDToken(c.Request.Context(), raw)
	if err != nil {
		common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Invalid or expired token."))
		return nil, false
	}
	return verified, true
}

func (h *Handler) bootstrapSession(c *gin.Context) {
	token, ok := h.verifyBearer(c)
	if !ok {
		return
	}

	sess, p, err := h.service.BootstrapSession(c.Request.Context(), token)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Session established.", SessionResponse{
		Session: sess,
		Profile: profile.FromShared(p),
	})
}

func (h *Handler) handleEvent(c *gin.Context) {
	token, ok := h.verifyBearer(c)
	if !ok {
		return
	}

	var req AuthEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	eventType, err := mapEventType(req.Type)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	if err := h.service.HandleAuthEvent(c.Request.Context(), token, eventType); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Event accepted.", gin.H{"type": req.Type})
}

func (h *Handler) signOut(c *gin.Context) {
	uid := common.GetFirebaseUIDFromContext(c)
	if uid == "" {
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("Session identifier missing."))
		return
	}
	if err := h.service.SignOut(c.Request.Context(), uid); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondNoContent(c)
}

func (h *Handler) startPasswordReset(c *gin.Context) {
	var req PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	if err := h.service.StartPasswordReset(c.Request.Context(), req.Email); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "If the email exists, a reset link is on its way.", nil)
}

func (h *Handler) startEmailVerification(c *gin.Context) {
	var req EmailVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	if err := h.service.StartEmailVerification(c.Request.Context(), req.Email); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Verification email requested.", nil)
}

func (h *Handler) googleLogin(c *gin.Context) {
	url, err := h.oauth.GoogleLoginURL(c)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, url)
}

func (h *Handler) googleCallback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")
	if code == "" {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Missing authorization code."))
		return
	}

	customToken, err := h.oauth.HandleGoogleCallback(c, code, state)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	common.RespondOK(c, "Google sign-in ready.", OAuthCallbackResponse{
		CustomToken: customToken,
		RedirectTo:  h.cfg.FrontendURL + "/auth/callback",
	})
}
