package handlers

import (
	"errors"
	"log"
	"net/http"

	"run4wish-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	scheduleService *services.ScheduleService
	answerService   *services.AnswerService
}

func NewQuestionHandler(scheduleService *services.ScheduleService, answerService *services.AnswerService) *QuestionHandler {
	return &QuestionHandler{scheduleService: scheduleService, answerService: answerService}
}

// GetDailyQuestion godoc
// @Summary      Get today's question state
// @Description  Resolve the current schedule row, provisioning lazily on a miss, and classify its answer window
// @Tags         daily-question
// @Produce      json
// @Security     BearerAuth
// @Param        race query string false "Race type" default(7d_mvp)
// @Success      200 {object} services.DailyQuestionState
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /api/v1/daily-question [get]
func (h *QuestionHandler) GetDailyQuestion(c *gin.Context) {
	race := raceFromQuery(c)

	state, err := h.scheduleService.GetDailyQuestion(currentUserID(c), race)
	if errors.Is(err, services.ErrUnsupportedRace) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		// Backend hiccups degrade to an error state instead of failing the page.
		log.Printf("daily question: %v", err)
		c.JSON(http.StatusOK, services.DailyQuestionState{Status: services.StatusError, RaceType: race})
		return
	}

	c.JSON(http.StatusOK, state)
}

type SubmitAnswerRequest struct {
	ScheduleEntryID uint   `json:"schedule_entry_id" binding:"required"`
	SelectedOption  string `json:"selected_option" binding:"required"`
}

// SubmitAnswer godoc
// @Summary      Answer today's question
// @Description  Judge the selected option; every attempt costs one wish. Correct 7d answers return tomorrow's window.
// @Tags         daily-question
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body SubmitAnswerRequest true "Answer"
// @Success      200 {object} services.AnswerResult
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/daily-question/answer [post]
func (h *QuestionHandler) SubmitAnswer(c *gin.Context) {
	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.answerService.SubmitAnswer(currentUserID(c), req.ScheduleEntryID, req.SelectedOption)
	switch {
	case errors.Is(err, services.ErrAlreadyAnswered):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		return
	case errors.Is(err, services.ErrNoWishes), errors.Is(err, services.ErrWindowClosed):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
