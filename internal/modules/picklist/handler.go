package picklist

import (
	"net/http"

	"memberreg/internal/domain"
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
	v1.GET("/picklists/:field", h.GetOptions)
}

func (h *Handler) GetOptions(c *gin.Context) {
	field := domain.PicklistField(c.Param("field"))

	known := false
	for _, f := range domain.PicklistFields {
		if f == field {
			known = true
			break
		}
	}
	if !known {
		response.Error(c, http.StatusNotFound, "UNKNOWN_FIELD", "Unknown picklist field")
		return
	}

	options, err := h.service.Options(c.Request.Context(), field)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "PICKLIST_ERROR", "Failed to load options")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"field": field, "values": options})
}
