package files

import (
	"errors"
	"net/http"

	"memberreg/internal/pkg/response"
	"memberreg/internal/repository"

	"github.com/gin-gonic/gin"
)

// Handler serves stored identity documents back to the preview modal.
type Handler struct {
	store FileStore
}

func NewHandler(store FileStore) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(v1 *gin.RouterGroup) {
	// The path and query shape match the URL template the board builds.
	v1.GET("/files/renditionDownload", h.Download)
}

func (h *Handler) Download(c *gin.Context) {
	fileID := c.Query("versionId")
	if fileID == "" {
		response.Error(c, http.StatusBadRequest, "MISSING_VERSION_ID", "versionId is required")
		return
	}

	file, err := h.store.GetByID(c.Request.Context(), fileID)
	if err != nil {
		if errors.Is(err, repository.ErrFileNotFound) {
			response.Error(c, http.StatusNotFound, "FILE_NOT_FOUND", "File not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "FILE_ERROR", "Failed to load file")
		return
	}

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Disposition", `inline; filename="`+file.FileName+`"`)
	c.Data(http.StatusOK, contentType, file.Data)
}
