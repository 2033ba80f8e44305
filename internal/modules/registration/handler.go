package registration

import (
	"errors"
	"net/http"
	"time"

	"memberreg/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler manages all HTTP interactions for the registration form.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(v1 *gin.RouterGroup) {
	reg := v1.Group("/registration")
	{
		reg.POST("/sessions", h.StartSession)
		reg.GET("/sessions/:id", h.GetState)
		reg.DELETE("/sessions/:id", h.EndSession)
		reg.PUT("/sessions/:id/fields", h.SetField)
		reg.POST("/sessions/:id/email/validate", h.ValidateEmail)
		reg.POST("/sessions/:id/confirm-email/validate", h.ValidateConfirmEmail)
		reg.POST("/sessions/:id/mobile/validate", h.ValidateMobile)
		reg.POST("/sessions/:id/file", h.AttachFile)
		reg.DELETE("/sessions/:id/file", h.RemoveFile)
		reg.POST("/sessions/:id/submit", h.Submit)
		reg.POST("/sessions/:id/reset", h.Reset)
	}
}

func (h *Handler) StartSession(c *gin.Context) {
	id := h.service.StartSession()
	state, err := h.service.State(id)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "SESSION_ERROR", "Failed to start session")
		return
	}
	response.Success(c, http.StatusCreated, state)
}

func (h *Handler) GetState(c *gin.Context) {
	state, err := h.service.State(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, "SESSION_NOT_FOUND", "Registration session not found")
		return
	}
	response.Success(c, http.StatusOK, state)
}

func (h *Handler) EndSession(c *gin.Context) {
	h.service.EndSession(c.Param("id"))
	response.Success(c, http.StatusOK, gin.H{"ended": true})
}

func (h *Handler) SetField(c *gin.Context) {
	var req SetFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.SetField(c.Param("id"), req.Field, req.Value); err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.writeState(c)
}

func (h *Handler) ValidateEmail(c *gin.Context) {
	if err := h.service.ValidateEmail(c.Request.Context(), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.writeState(c)
}

func (h *Handler) ValidateConfirmEmail(c *gin.Context) {
	if err := h.service.ValidateConfirmEmail(c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.writeState(c)
}

func (h *Handler) ValidateMobile(c *gin.Context) {
	if err := h.service.ValidateMobile(c.Request.Context(), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.writeState(c)
}

// AttachFile takes the identity document as multipart form field "document".
func (h *Handler) AttachFile(c *gin.Context) {
	fileHeader, err := c.FormFile("document")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "NO_FILE", "No file uploaded")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "FILE_ERROR", "Failed to open uploaded file")
		return
	}
	defer f.Close()

	err = h.service.AttachFile(
		c.Param("id"),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		f,
	)
	if err != nil {
		if errors.Is(err, ErrFileTooLarge) {
			response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "File cannot exceed 5MB")
			return
		}
		h.writeServiceError(c, err)
		return
	}

	// The read finishes in the background; poll session state for completion.
	h.waitForFileRead(c)
	h.writeState(c)
}

// waitForFileRead blocks the upload request until the background read settles,
// so the returned state already reflects the attachment. The request body is
// fully buffered at this point, so this converges quickly.
func (h *Handler) waitForFileRead(c *gin.Context) {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		state, err := h.service.State(c.Param("id"))
		if err != nil || !state.FileLoading {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func (h *Handler) RemoveFile(c *gin.Context) {
	if err := h.service.RemoveFile(c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.writeState(c)
}

func (h *Handler) Submit(c *gin.Context) {
	registrationID, err := h.service.Submit(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotSubmittable) {
			var fields map[string]string
			if state, stateErr := h.service.State(c.Param("id")); stateErr == nil {
				fields = state.Errors
			}
			response.ErrorWithFields(c, http.StatusUnprocessableEntity, "NOT_SUBMITTABLE",
				"Fill all fields correctly and upload ID Proof", fields)
			return
		}
		if errors.Is(err, ErrSessionNotFound) {
			response.Error(c, http.StatusNotFound, "SESSION_NOT_FOUND", "Registration session not found")
			return
		}
		response.Error(c, http.StatusBadGateway, "SAVE_FAILED", "Error saving registration")
		return
	}
	response.Success(c, http.StatusCreated, SubmitResponse{RegistrationID: registrationID})
}

func (h *Handler) Reset(c *gin.Context) {
	if err := h.service.Reset(c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.writeState(c)
}

func (h *Handler) writeState(c *gin.Context) {
	state, err := h.service.State(c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, state)
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		response.Error(c, http.StatusNotFound, "SESSION_NOT_FOUND", "Registration session not found")
	case errors.Is(err, ErrUnknownField):
		response.Error(c, http.StatusBadRequest, "UNKNOWN_FIELD", "Unknown form field")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error")
	}
}
