// File: internal/workspace/handler.go
package workspace

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"salehunt_backend/internal/common"
)

// Handler holds dependencies for workspace handlers.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new workspace handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes sets up workspace and custom color routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	wsGroup := router.Group("/workspaces")
	wsGroup.Use(authMW)
	{
		wsGroup.GET("", h.list)
		wsGroup.GET("/default", h.getDefault)
		wsGroup.POST("", h.create)
		wsGroup.PATCH("/:id", h.update)
	}

	colorGroup := router.Group("/colors")
	colorGroup.Use(authMW)
	{
		colorGroup.GET("", h.listColors)
		colorGroup.POST("", h.saveColor)
	}
}

func (h *Handler) list(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	workspaces, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	responses := make([]WorkspaceResponse, 0, len(workspaces))
	for i := range workspaces {
		responses = append(responses, ToWorkspaceResponse(&workspaces[i]))
	}
	common.RespondOK(c, "Workspaces retrieved successfully.", responses)
}

func (h *Handler) getDefault(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	w, err := h.service.GetDefault(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Workspace retrieved successfully.", ToWorkspaceResponse(w))
}

func (h *Handler) create(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	w, err := h.service.EnsurePlaceholder(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Workspace ready.", ToWorkspaceResponse(w))
}

func (h *Handler) update(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	workspaceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid workspace ID format."))
		return
	}

	var req UpdateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Workspace update: invalid request body", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	w, err := h.service.Update(c.Request.Context(), userID, workspaceID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Workspace updated successfully.", ToWorkspaceResponse(w))
}

func (h *Handler) listColors(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	colors, err := h.service.ListColors(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	responses := make([]ColorResponse, 0, len(colors))
	for i := range colors {
		responses = append(responses, ToColorResponse(&colors[i]))
	}
	common.RespondOK(c, "Colors retrieved successfully.", responses)
}

func (h *Handler) saveColor(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)

	var req CreateColorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	color, err := h.service.SaveColor(c.Request.Context(), userID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Color saved successfully.", ToColorResponse(color))
}
