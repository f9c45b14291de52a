package handlers

import (
	"fmt"
	"net/http"

	"run4wish-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// LoadQuestionBank godoc
// @Summary      Load the general question bank
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} SuccessResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /api/v1/admin/load-question-bank [post]
func (h *AdminHandler) LoadQuestionBank(c *gin.Context) {
	inserted, err := h.adminService.LoadQuestionBank()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: fmt.Sprintf("%d questions loaded", inserted)})
}

// Regenerate7DSchedule godoc
// @Summary      Rebuild every user's 7d schedule
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} SuccessResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /api/v1/admin/regenerate-7d-schedule [post]
func (h *AdminHandler) Regenerate7DSchedule(c *gin.Context) {
	count, err := h.adminService.Regenerate7DSchedules()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: fmt.Sprintf("regenerated schedules for %d users", count)})
}

// ResetUsersDay1 godoc
// @Summary      Rebase every 7d anchor to today
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} SuccessResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /api/v1/admin/reset-users-day1 [post]
func (h *AdminHandler) ResetUsersDay1(c *gin.Context) {
	rows, err := h.adminService.ResetUsersDay1()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: fmt.Sprintf("%d rows rebased to day 1", rows)})
}

type SimulateProgressRequest struct {
	DayNumber int `json:"day_number" binding:"required,min=1,max=7"`
}

// SimulateDailyProgress godoc
// @Summary      Shift anchors so the computed day equals day_number
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body SimulateProgressRequest true "Target day"
// @Success      200 {object} SuccessResponse
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /api/v1/admin/simulate-daily-progress [post]
func (h *AdminHandler) SimulateDailyProgress(c *gin.Context) {
	var req SimulateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	rows, err := h.adminService.SimulateDailyProgress(req.DayNumber)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: fmt.Sprintf("%d rows shifted to day %d", rows, req.DayNumber)})
}
