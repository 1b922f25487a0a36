// File: internal/announcement/handler.go
package announcement

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"salehunt_backend/internal/common"
)

// Handler holds dependencies for announcement handlers.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new announcement handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the announcement routes backing the Novidades page.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	announcements := router.Group("/novidades")
	announcements.Use(authMW)
	{
		announcements.GET("", h.list)
		announcements.GET("/unread-count", h.unreadCount)
		announcements.POST("/:id/read", h.markRead)
		announcements.POST("/read-all", h.markAllRead)
	}
}

func (h *Handler) list(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	page, pageSize := common.GetPaginationParams(c)

	responses, pagination, err := h.service.List(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondPaginated(c, "Announcements retrieved successfully.", responses, pagination)
}

func (h *Handler) unreadCount(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	count, err := h.service.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Unread count retrieved successfully.", gin.H{"unread_count": count})
}

func (h *Handler) markRead(c *gin.Context) {
	announcementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid announcement ID format."))
		return
	}

	userID := common.GetUserIDFromContext(c)
	if err := h.service.MarkRead(c.Request.Context(), userID, announcementID); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Announcement marked as read.", nil)
}

func (h *Handler) markAllRead(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	marked, err := h.service.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "All announcements marked as read.", gin.H{"marked": marked})
}
