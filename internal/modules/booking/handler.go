package booking

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"golfclub/internal/modules/loyalty"
	"golfclub/internal/pkg/response"
	"golfclub/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes exposes read-only resource browsing.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/resources", h.ListResources)
	rg.GET("/resources/:id/availability", h.GetAvailability)
}

// RegisterRoutes exposes the member-facing reservation operations. The
// group is expected to carry the auth middleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.Reserve)
	rg.GET("/users/me/bookings", h.MyBookings)
	rg.PATCH("/bookings/:id/cancel", h.Cancel)
}

// RegisterOperatorRoutes exposes the payment-driven lifecycle transitions.
// The group is expected to carry the role middleware on top of auth.
func (h *Handler) RegisterOperatorRoutes(rg *gin.RouterGroup) {
	rg.PATCH("/bookings/:id/confirm", h.Confirm)
	rg.PATCH("/bookings/:id/complete", h.Complete)
	rg.PATCH("/bookings/:id/refund", h.Refund)
}

func (h *Handler) Reserve(c *gin.Context) {
	var req ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	req.UserID = c.GetInt64("user_id")

	b, err := h.service.Reserve(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"booking": toDetails(b)})
}

func (h *Handler) Cancel(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Cancellation reason is required")
		return
	}
	if err := h.service.Cancel(c.Request.Context(), id, c.GetInt64("user_id"), req.Reason); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "status": "cancelled"})
}

func (h *Handler) Confirm(c *gin.Context) {
	h.lifecycle(c, h.service.Confirm, "confirmed")
}

func (h *Handler) Complete(c *gin.Context) {
	h.lifecycle(c, h.service.Complete, "completed")
}

func (h *Handler) Refund(c *gin.Context) {
	h.lifecycle(c, h.service.Refund, "refunded")
}

// lifecycle transitions share one shape; role gating happens in the
// router group, not here.
func (h *Handler) lifecycle(c *gin.Context, op func(ctx context.Context, id int64) error, status string) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := op(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "status": status})
}

func (h *Handler) MyBookings(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	rows, err := h.service.MyBookings(c.Request.Context(), c.GetInt64("user_id"), limit, offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": rows})
}

func (h *Handler) ListResources(c *gin.Context) {
	rows, err := h.service.ListResources(c.Request.Context(), c.Query("kind"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"resources": rows})
}

func (h *Handler) GetAvailability(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	date := c.Query("date")
	if date == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date query parameter is required")
		return
	}
	resp, err := h.service.Availability(c.Request.Context(), id, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid id")
		return 0, false
	}
	return id, true
}

// respondServiceError maps every engine error kind to a distinct HTTP
// response; nothing collapses into a generic failure except unknown errors.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date or time format")
	case errors.Is(err, ErrOutOfBusinessHours):
		response.Error(c, http.StatusBadRequest, "OUT_OF_BUSINESS_HOURS", "Requested slot is outside business hours")
	case errors.Is(err, ErrInvalidDuration):
		response.Error(c, http.StatusBadRequest, "INVALID_DURATION", "Slot duration is outside the allowed bounds")
	case errors.Is(err, ErrSlotInPast):
		response.Error(c, http.StatusBadRequest, "SLOT_IN_PAST", "Slot start is in the past")
	case errors.Is(err, repository.ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking or resource not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not allowed for this user")
	case errors.Is(err, repository.ErrResourceUnavailable):
		response.Error(c, http.StatusConflict, "RESOURCE_UNAVAILABLE", "Resource is not accepting bookings")
	case errors.Is(err, repository.ErrSlotTaken):
		response.Error(c, http.StatusConflict, "SLOT_TAKEN", "Slot is already taken")
	case errors.Is(err, repository.ErrUserQuotaExceeded):
		response.Error(c, http.StatusUnprocessableEntity, "USER_QUOTA_EXCEEDED", "Too many active bookings")
	case errors.Is(err, ErrCancelWindowClosed):
		response.Error(c, http.StatusUnprocessableEntity, "CANCEL_WINDOW_CLOSED", "Free cancellation window has closed")
	case errors.Is(err, loyalty.ErrCouponNotFound):
		response.Error(c, http.StatusNotFound, "COUPON_NOT_FOUND", "Coupon does not exist or is disabled")
	case errors.Is(err, loyalty.ErrCouponExpired):
		response.Error(c, http.StatusUnprocessableEntity, "COUPON_EXPIRED", "Coupon has expired")
	case errors.Is(err, loyalty.ErrCouponExhausted):
		response.Error(c, http.StatusConflict, "COUPON_EXHAUSTED", "Coupon claim budget is exhausted")
	case errors.Is(err, loyalty.ErrInsufficientPoints):
		response.Error(c, http.StatusUnprocessableEntity, "INSUFFICIENT_POINTS", "Not enough points for this redemption")
	case errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Booking status does not allow this operation")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
	}
}
