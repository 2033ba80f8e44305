package status

import (
	"net/http"

	"memberreg/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(v1 *gin.RouterGroup) {
	st := v1.Group("/status")
	{
		st.POST("/check", h.CheckStatus)
		st.POST("/reset", h.Reset)
	}
}

func (h *Handler) CheckStatus(c *gin.Context) {
	var req LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	msg := h.service.Lookup(c.Request.Context(), req.Email)
	response.Success(c, http.StatusOK, LookupResponse{
		Email:         Normalize(req.Email),
		StatusMessage: msg,
	})
}

// Reset returns the cleared state the lookup card re-renders from.
func (h *Handler) Reset(c *gin.Context) {
	response.Success(c, http.StatusOK, LookupResponse{})
}
