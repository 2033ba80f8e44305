package review

import (
	"errors"
	"net/http"

	"memberreg/internal/pkg/response"
	"memberreg/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/board", h.GetBoard)
	admin.POST("/board/refresh", h.Refresh)
	admin.GET("/registrations/:id", h.GetDetails)
	admin.POST("/registrations/:id/actions", h.RowAction)
	admin.PUT("/board/approve-reason", h.SetApproveReason)
	admin.PUT("/board/reject-reason", h.SetRejectReason)
	admin.POST("/board/approve", h.ConfirmApprove)
	admin.POST("/board/reject", h.ConfirmReject)
	admin.POST("/board/modals/:modal/close", h.CloseModal)
}

func (h *Handler) GetBoard(c *gin.Context) {
	response.Success(c, http.StatusOK, h.service.State())
}

func (h *Handler) Refresh(c *gin.Context) {
	if err := h.service.Refresh(c.Request.Context()); err != nil {
		response.Error(c, http.StatusBadGateway, "REFRESH_FAILED", "Failed to load pending registrations")
		return
	}
	response.Success(c, http.StatusOK, h.service.State())
}

func (h *Handler) GetDetails(c *gin.Context) {
	reg, err := h.service.Details(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrRegistrationNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Registration not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "DETAILS_FAILED", "Failed to load registration")
		return
	}
	response.Success(c, http.StatusOK, reg)
}

func (h *Handler) RowAction(c *gin.Context) {
	var req RowActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	action, err := ParseRowAction(req.Action)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "UNKNOWN_ACTION", "Unknown row action")
		return
	}

	if err := h.service.HandleRowAction(c.Request.Context(), action, c.Param("id")); err != nil {
		// Preview failures already produced a toast; the modal stays closed.
		response.Error(c, http.StatusBadGateway, "ACTION_FAILED", "Row action failed")
		return
	}
	response.Success(c, http.StatusOK, h.service.State())
}

func (h *Handler) SetApproveReason(c *gin.Context) {
	var req ReasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	h.service.SetApproveReason(req.Reason)
	response.Success(c, http.StatusOK, h.service.State())
}

func (h *Handler) SetRejectReason(c *gin.Context) {
	var req ReasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	h.service.SetRejectReason(req.Reason)
	response.Success(c, http.StatusOK, h.service.State())
}

func (h *Handler) ConfirmApprove(c *gin.Context) {
	memberID, err := h.service.ConfirmApprove(c.Request.Context())
	if err != nil {
		if errors.Is(err, ErrNoSelection) {
			response.Error(c, http.StatusConflict, "NO_SELECTION", "No registration selected")
			return
		}
		response.Error(c, http.StatusBadGateway, "APPROVE_FAILED", "Approval failed")
		return
	}
	response.Success(c, http.StatusOK, ApproveResponse{MemberID: memberID})
}

func (h *Handler) ConfirmReject(c *gin.Context) {
	if err := h.service.ConfirmReject(c.Request.Context()); err != nil {
		if errors.Is(err, ErrReasonRequired) {
			response.Error(c, http.StatusUnprocessableEntity, "REASON_REQUIRED", "Rejection reason is required")
			return
		}
		if errors.Is(err, ErrNoSelection) {
			response.Error(c, http.StatusConflict, "NO_SELECTION", "No registration selected")
			return
		}
		response.Error(c, http.StatusBadGateway, "REJECT_FAILED", "Rejection failed")
		return
	}
	response.Success(c, http.StatusOK, h.service.State())
}

func (h *Handler) CloseModal(c *gin.Context) {
	modal, err := ParseModal(c.Param("modal"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "UNKNOWN_MODAL", "Unknown modal")
		return
	}
	if err := h.service.CloseModal(modal); err != nil {
		response.Error(c, http.StatusBadRequest, "UNKNOWN_MODAL", "Unknown modal")
		return
	}
	response.Success(c, http.StatusOK, h.service.State())
}
