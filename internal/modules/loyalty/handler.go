package loyalty

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"golfclub/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/users/me/points", h.Balance)
}

// RegisterAdminRoutes exposes manual point grants.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/loyalty/awards", h.Award)
}

type awardRequest struct {
	UserID int64  `json:"user_id" binding:"required"`
	Points int64  `json:"points" binding:"required,gt=0"`
	Kind   string `json:"kind"`
}

func (h *Handler) Award(c *gin.Context) {
	var req awardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "user_id and positive points are required")
		return
	}
	kind := req.Kind
	if kind == "" {
		kind = "manual"
	}
	if err := h.service.Award(c.Request.Context(), req.UserID, req.Points, kind); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to award points")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user_id": req.UserID, "points": req.Points})
}

func (h *Handler) Balance(c *gin.Context) {
	points, err := h.service.Balance(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load balance")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"points": points})
}
