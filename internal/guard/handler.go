// File: internal/guard/handler.go
package guard

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"salehunt_backend/internal/authstate"
	"salehunt_backend/internal/common"
)

// Handler answers route guard decisions for the frontend router.
type Handler struct {
	registry *authstate.Registry
	logger   *zap.Logger
}

// NewHandler creates a new guard handler.
func NewHandler(registry *authstate.Registry, logger *zap.Logger) *Handler {
	return &Handler{
		registry: registry,
		logger:   logger,
	}
}

// RegisterRoutes sets up the guard decision route. It uses the optional auth
// middleware: anonymous visitors get decisions too.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, optionalAuthMW gin.HandlerFunc) {
	guardGroup := router.Group("/guard")
	guardGroup.Use(optionalAuthMW)
	{
		guardGroup.GET("/decision", h.decide)
	}
}

// DecisionResponse is the guard verdict shape sent to the frontend.
type DecisionResponse struct {
	Path       string `json:"path"`
	Outcome    string `json:"outcome"`
	RedirectTo string `json:"redirect_to,omitempty"`
}

func (h *Handler) decide(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Query parameter 'path' is required."))
		return
	}

	snap := authstate.Snapshot{Status: authstate.StatusUnauthenticated}
	if uid := common.GetFirebaseUIDFromContext(c); uid != "" {
		if m := h.registry.Peek(uid); m != nil {
			snap = m.Snapshot()
		} else {
			// Verified token but no manager yet: the session bootstrap has
			// not run. Report pending so the frontend retries instead of
			// bouncing to login.
			snap = authstate.Snapshot{Status: authstate.StatusLoading}
		}
	}

	decision := Evaluate(PolicyFor(path), snap)

	resp := DecisionResponse{Path: path}
	switch decision.Kind {
	case Render:
		resp.Outcome = "render"
	case Redirect:
		resp.Outcome = "redirect"
		resp.RedirectTo = decision.RedirectTo
	case Pending:
		resp.Outcome = "pending"
	}
	common.RespondOK(c, "Guard decision evaluated.", resp)
}
