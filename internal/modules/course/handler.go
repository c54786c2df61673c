package course

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"golfclub/internal/pkg/response"
	"golfclub/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/courses", h.ListSessions)
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/courses/:id/enroll", h.Enroll)
	rg.PATCH("/enrollments/:id/cancel", h.CancelEnrollment)
}

func (h *Handler) ListSessions(c *gin.Context) {
	sessions, err := h.service.ListSessions(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list sessions")
		return
	}
	out := make([]SessionDetails, 0, len(sessions))
	for i := range sessions {
		out = append(out, toSessionDetails(&sessions[i]))
	}
	response.Success(c, http.StatusOK, gin.H{"sessions": out})
}

func (h *Handler) Enroll(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	b, err := h.service.Enroll(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"enrollment": EnrollmentDetails{
		BookingID: b.ID,
		SessionID: b.ResourceID,
		Status:    string(b.Status),
		SeatPrice: b.FinalPrice,
	}})
}

func (h *Handler) CancelEnrollment(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Cancellation reason is required")
		return
	}
	if err := h.service.CancelEnrollment(c.Request.Context(), id, c.GetInt64("user_id"), req.Reason); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "status": "cancelled"})
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid id")
		return 0, false
	}
	return id, true
}

func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Not a course enrollment")
	case errors.Is(err, repository.ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Session or enrollment not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not allowed for this user")
	case errors.Is(err, ErrEnrollDeadlinePassed):
		response.Error(c, http.StatusUnprocessableEntity, "ENROLL_DEADLINE_PASSED", "Enrollment deadline has passed")
	case errors.Is(err, repository.ErrResourceUnavailable):
		response.Error(c, http.StatusConflict, "SESSION_UNAVAILABLE", "Session is not open for enrollment")
	case errors.Is(err, repository.ErrCourseFull):
		response.Error(c, http.StatusConflict, "COURSE_FULL", "No seats left on this session")
	case errors.Is(err, repository.ErrAlreadyEnrolled):
		response.Error(c, http.StatusConflict, "ALREADY_ENROLLED", "Already enrolled in this session")
	case errors.Is(err, ErrCancelWindowClosed):
		response.Error(c, http.StatusUnprocessableEntity, "CANCEL_WINDOW_CLOSED", "Free cancellation window has closed")
	case errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Enrollment status does not allow this operation")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
	}
}
