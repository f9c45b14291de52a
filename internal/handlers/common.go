package handlers

import (
	"run4wish-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"operation successful"`
}

type SuccessResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message,omitempty"`
}

// Type alias so swag can resolve the model in annotations.
type Profile = models.Profile

func currentUserID(c *gin.Context) uuid.UUID {
	return c.MustGet("user_id").(uuid.UUID)
}

func raceFromQuery(c *gin.Context) string {
	race := c.Query("race")
	if race == "" {
		return models.RaceType7D
	}
	return race
}
