package handlers

import (
	"errors"
	"net/http"

	"run4wish-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type LeaderboardHandler struct {
	leaderboardService *services.LeaderboardService
}

func NewLeaderboardHandler(leaderboardService *services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

// GetLeaderboard godoc
// @Summary      Race standings
// @Tags         leaderboard
// @Produce      json
// @Security     BearerAuth
// @Param        race query string false "Race type" default(7d_mvp)
// @Success      200 {array} services.StandingEntry
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /api/v1/leaderboard [get]
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	standings, err := h.leaderboardService.Standings(raceFromQuery(c))
	if errors.Is(err, services.ErrUnsupportedRace) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, standings)
}
