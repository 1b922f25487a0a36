// File: internal/tag/handler.go
package tag

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"salehunt_backend/internal/common"
)

// Handler holds dependencies for tag handlers.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new tag handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the tag routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	tags := router.Group("/tags")
	tags.Use(authMW)
	{
		tags.GET("", h.list)
		tags.POST("", h.findOrCreate)
		tags.DELETE("/:id", h.delete)
	}
}

func (h *Handler) list(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	tags, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	responses := make([]TagResponse, len(tags))
	for i := range tags {
		responses[i] = ToTagResponse(&tags[i])
	}
	common.RespondOK(c, "Tags retrieved successfully.", responses)
}

func (h *Handler) findOrCreate(c *gin.Context) {
	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	userID := common.GetUserIDFromContext(c)
	t, err := h.service.FindOrCreate(c.Request.Context(), userID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Tag resolved.", ToTagResponse(t))
}

func (h *Handler) delete(c *gin.Context) {
	tagID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid tag ID format."))
		return
	}

	userID := common.GetUserIDFromContext(c)
	if err := h.service.Delete(c.Request.Context(), userID, tagID); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondNoContent(c)
}
