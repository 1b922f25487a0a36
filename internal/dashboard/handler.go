// File: internal/dashboard/handler.go
package dashboard

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"salehunt_backend/internal/common"
)

// Handler holds dependencies for dashboard handlers.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new dashboard handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the dashboard routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	dash := router.Group("/dashboard")
	dash.Use(authMW)
	{
		dash.GET("/summary", h.summary)
	}
}

func (h *Handler) summary(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	summary, err := h.service.Summary(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Dashboard summary retrieved successfully.", summary)
}
