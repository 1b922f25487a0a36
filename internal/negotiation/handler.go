// File: internal/negotiation/handler.go
package negotiation

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"salehunt_backend/internal/common"
)

// Handler holds dependencies for negotiation handlers.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new negotiation handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the negotiation routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	negotiations := router.Group("/negociacoes")
	negotiations.Use(authMW)
	{
		negotiations.GET("", h.list)
		negotiations.POST("", h.create)
		negotiations.GET("/:id", h.get)
		negotiations.PATCH("/:id", h.update)
		negotiations.DELETE("/:id", h.delete)
	}
}

func (h *Handler) list(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	page, pageSize := common.GetPaginationParams(c)

	var stage *Stage
	if raw := c.Query("stage"); raw != "" {
		parsed := Stage(raw)
		if !parsed.IsValid() {
			common.RespondWithError(c, common.ErrBadRequest.WithDetails("Unknown negotiation stage filter."))
			return
		}
		stage = &parsed
	}

	negotiations, pagination, err := h.service.List(c.Request.Context(), userID, stage, page, pageSize)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	responses := make([]NegotiationResponse, len(negotiations))
	for i := range negotiations {
		responses[i] = ToNegotiationResponse(&negotiations[i])
	}
	common.RespondPaginated(c, "Negotiations retrieved successfully.", responses, pagination)
}

func (h *Handler) get(c *gin.Context) {
	negotiationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid negotiation ID format."))
		return
	}

	userID := common.GetUserIDFromContext(c)
	n, err := h.service.Get(c.Request.Context(), userID, negotiationID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Negotiation retrieved successfully.", ToNegotiationResponse(n))
}

func (h *Handler) create(c *gin.Context) {
	var req CreateNegotiationRequest
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
	n, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Negotiation created successfully.", ToNegotiationResponse(n))
}

func (h *Handler) update(c *gin.Context) {
	negotiationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid negotiation ID format."))
		return
	}

	var req UpdateNegotiationRequest
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
	n, err := h.service.Update(c.Request.Context(), userID, negotiationID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Negotiation updated successfully.", ToNegotiationResponse(n))
}

func (h *Handler) delete(c *gin.Context) {
	negotiationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid negotiation ID format."))
		return
	}

	userID := common.GetUserIDFromContext(c)
	if err := h.service.Delete(c.Request.Context(), userID, negotiationID); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondNoContent(c)
}
