// File: internal/client/handler.go
package client

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"salehunt_backend/internal/common"
)

// Handler holds dependencies for client handlers.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new client handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the client routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	clients := router.Group("/clientes")
	clients.Use(authMW)
	{
		clients.GET("", h.list)
		clients.POST("", h.create)
		clients.GET("/:id", h.get)
		clients.PATCH("/:id", h.update)
		clients.DELETE("/:id", h.delete)
	}
}

func (h *Handler) list(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	page, pageSize := common.GetPaginationParams(c)

	clients, pagination, err := h.service.List(c.Request.Context(), userID, c.Query("search"), page, pageSize)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	responses := make([]ClientResponse, len(clients))
	for i := range clients {
		responses[i] = ToClientResponse(&clients[i])
	}
	common.RespondPaginated(c, "Clients retrieved successfully.", responses, pagination)
}

func (h *Handler) get(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid client ID format."))
		return
	}

	userID := common.GetUserIDFromContext(c)
	cl, err := h.service.Get(c.Request.Context(), userID, clientID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Client retrieved successfully.", ToClientResponse(cl))
}

func (h *Handler) create(c *gin.Context) {
	var req CreateClientRequest
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
	cl, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Client created successfully.", ToClientResponse(cl))
}

func (h *Handler) update(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid client ID format."))
		return
	}

	var req UpdateClientRequest
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
	cl, err := h.service.Update(c.Request.Context(), userID, clientID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Client updated successfully.", ToClientResponse(cl))
}

func (h *Handler) delete(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid client ID format."))
		return
	}

	userID := common.GetUserIDFromContext(c)
	if err := h.service.Delete(c.Request.Context(), userID, clientID); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondNoContent(c)
}
