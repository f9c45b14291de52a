package handlers

import (
	"log"
	"net/http"

	"run4wish-backend/internal/services"
	"run4wish-backend/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type WSHandler struct {
	hub         *ws.Hub
	authService *services.AuthService
}

func NewWSHandler(hub *ws.Hub, authService *services.AuthService) *WSHandler {
	return &WSHandler{hub: hub, authService: authService}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWebSocket godoc
// @Summary      WebSocket connection for schedule events
// @Description  Pushes a question_active event when the user's answer window opens
// @Tags         websocket
// @Param        token query string true "JWT"
// @Router       /ws/schedule [get]
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	userID, _, err := h.authService.ValidateToken(c.Query("token"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	h.hub.AddConnection(userID, conn)
	defer h.hub.RemoveConnection(userID, conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
