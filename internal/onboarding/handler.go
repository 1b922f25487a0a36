// File: internal/onboarding/handler.go
package onboarding

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"salehunt_backend/internal/common"
	"salehunt_backend/internal/filestorage"
	"salehunt_backend/internal/workspace"
)

const maxLogoSizeBytes = 5 << 20

// Handler holds dependencies for onboarding handlers.
type Handler struct {
	wizard     *Wizard
	dispatcher *Dispatcher
	storage    *filestorage.FileStorageService
	workspaces WorkspaceStore
	logger     *zap.Logger
}

// NewHandler creates a new onboarding handler.
func NewHandler(wizard *Wizard, dispatcher *Dispatcher, storage *filestorage.FileStorageService, workspaces WorkspaceStore, logger *zap.Logger) *Handler {
	return &Handler{
		wizard:     wizard,
		dispatcher: dispatcher,
		storage:    storage,
		workspaces: workspaces,
		logger:     logger,
	}
}

// RegisterRoutes sets up the onboarding routes. All of them require auth.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	group := router.Group("/onboarding")
	group.Use(authMW)
	{
		group.GET("/state", h.getState)
		group.POST("/steps/:step", h.submitStep)
		group.POST("/complete", h.complete)
		group.POST("/logo", h.uploadLogo)
	}
}

func (h *Handler) getState(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	if userID == uuid.Nil {
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("User identifier missing."))
		return
	}

	state, err := h.wizard.StateFor(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Onboarding state retrieved.", state)
}

func (h *Handler) submitStep(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	step, err := strconv.Atoi(c.Param("step"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Step must be a number."))
		return
	}

	var payload StepPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.logger.Warn("Onboarding step: invalid request body", zap.Error(err), zap.Int("step", step))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	state, err := h.wizard.SubmitStep(c.Request.Context(), userID, step, payload)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	// Progress is recorded off the request path. The response reflects the
	// optimistic position; a lost write only means resuming one step back.
	h.dispatcher.RecordStep(userID, state.Step)

	common.RespondOK(c, "Step accepted.", state)
}

func (h *Handler) complete(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)
	if err := h.wizard.Complete(c.Request.Context(), userID); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Onboarding completed.", gin.H{"completed": true})
}

// uploadLogo stores the brand logo and points the workspace at it. The file
// write happens first; if the workspace update then fails the stored file is
// removed again so storage and database cannot drift apart.
func (h *Handler) uploadLogo(c *gin.Context) {
	userID := common.GetUserIDFromContext(c)

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Multipart field 'logo' is required."))
		return
	}
	if fileHeader.Size > maxLogoSizeBytes {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Logo must be 5MB or smaller."))
		return
	}

	ws, err := h.workspaces.EnsurePlaceholder(c.Request.Context(), userID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	relativePath, err := h.storage.SaveWorkspaceLogo(ws.ID, fileHeader)
	if err != nil {
		h.logger.Error("Failed to store workspace logo", zap.Error(err), zap.String("workspaceID", ws.ID.String()))
		common.RespondWithError(c, common.ErrInternalServer.WithDetails("Could not store logo."))
		return
	}

	logoURL := h.storage.PublicURL(relativePath)
	updated, err := h.workspaces.Update(c.Request.Context(), userID, ws.ID, workspace.UpdateWorkspaceRequest{BrandLogoURL: &logoURL})
	if err != nil {
		if delErr := h.storage.DeleteFile(relativePath); delErr != nil {
			h.logger.Error("Failed to roll back stored logo", zap.Error(delErr), zap.String("path", relativePath))
		}
		common.RespondWithError(c, err)
		return
	}

	common.RespondOK(c, "Logo uploaded successfully.", workspace.ToWorkspaceResponse(updated))
}
