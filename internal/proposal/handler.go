// File: internal/proposal/handler.go
package proposal

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"salehunt_backend/internal/common"
)

// Handler holds dependencies for proposal handlers.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new proposal handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the proposal routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	proposals := router.Group("/propostas")
	proposals.Use(authMW)
	{
		proposals.GET("", h.list)
		proposals.POST("", h.create)
		proposals.GET("/search", h.search)
		proposals.GET("/:id", h.get)
		proposals.PATCH("/:id", h.update)
		proposals.DELETE("/:id", h.delete)
	}
}

func (h *Handler) list(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	page, pageSize := common.GetPaginationParams(c)

	query := ListQuery{Page: page, PageSize: pageSize}
	if raw := c.Query("status"); raw != "" {
		status := Status(raw)
		if !status.IsValid() {
			common.RespondWithError(c, common.ErrBadRequest.WithDetails("Unknown proposal status filter."))
			return
		}
		query.Status = &status
	}
	if raw := c.Query("tag_id"); raw != "" {
		tagID, err := uuid.Parse(raw)
		if err != nil {
			common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid tag_id format."))
			return
		}
		query.TagID = &tagID
	}
	if raw := c.Query("cliente_id"); raw != "" {
		clientID, err := uuid.Parse(raw)
		if err != nil {
			common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid cliente_id format."))
			return
		}
		query.ClientID = &clientID
	}

	proposals, pagination, err := h.service.List(c.Request.Context(), userID, query)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondPaginated(c, "Proposals retrieved successfully.", toResponses(proposals), pagination)
}

func (h *Handler) search(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	page, pageSize := common.GetPaginationParams(c)

	proposals, pagination, err := h.service.Search(c.Request.Context(), userID, c.Query("q"), page, pageSize)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondPaginated(c, "Search results retrieved successfully.", toResponses(proposals), pagination)
}

func (h *Handler) get(c *gin.Context) {
	proposalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid proposal ID format."))
		return
	}

	userID := common.GetUserIDFromContext(c)
	p, err := h.service.Get(c.Request.Context(), userID, proposalID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Proposal retrieved successfully.", ToProposalResponse(p))
}

func (h *Handler) create(c *gin.Context) {
	var req CreateProposalRequest
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
	p, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Proposal created successfully.", ToProposalResponse(p))
}

func (h *Handler) update(c *gin.Context) {
	proposalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid proposal ID format."))
		return
	}

	var req UpdateProposalRequest
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
	p, err := h.service.Update(c.Request.Context(), userID, proposalID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Proposal updated successfully.", ToProposalResponse(p))
}

func (h *Handler) delete(c *gin.Context) {
	proposalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid proposal ID format."))
		return
	}

	userID := common.GetUserIDFromContext(c)
	if err := h.service.Delete(c.Request.Context(), userID, proposalID); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondNoContent(c)
}

func toResponses(proposals []Proposal) []ProposalResponse {
	responses := make([]ProposalResponse, len(proposals))
	for i := range proposals {
		responses[i] = ToProposalResponse(&proposals[i])
	}
	return responses
}
