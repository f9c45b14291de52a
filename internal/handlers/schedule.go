package handlers

import (
	"errors"
	"net/http"

	"run4wish-backend/internal/models"
	"run4wish-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type ScheduleHandler struct {
	scheduleService *services.ScheduleService
}

func NewScheduleHandler(scheduleService *services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

type CreateScheduleRequest struct {
	RaceType string `json:"race_type" example:"7d_mvp"`
}

// CreateSchedule godoc
// @Summary      Provision the user's schedule
// @Description  Idempotent: a complete schedule is a no-op, an incomplete one is fully rebuilt
// @Tags         schedule
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateScheduleRequest false "Race type (defaults to 7d_mvp)"
// @Success      200 {object} SuccessResponse
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /api/v1/user/create-schedule [post]
func (h *ScheduleHandler) CreateSchedule(c *gin.Context) {
	var req CreateScheduleRequest
	_ = c.ShouldBindJSON(&req)
	if req.RaceType == "" {
		req.RaceType = models.RaceType7D
	}

	err := h.scheduleService.EnsureSchedule(currentUserID(c), req.RaceType)
	if errors.Is(err, services.ErrUnsupportedRace) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "schedule ready"})
}
