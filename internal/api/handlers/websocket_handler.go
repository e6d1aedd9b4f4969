package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/gocomet/ride-records/pkg/logger"
	"github.com/gocomet/ride-records/pkg/websocket"
)

// RideFeed handles GET /ws/rides. Connected clients receive a ride_created
// message for every ride stored after they joined.
func (h *Handlers) RideFeed(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the error response
		h.Logger.Warn("Failed to upgrade to WebSocket", logger.Err(err))
		return
	}

	client := websocket.NewClient(h.Hub, conn, h.Logger)
	h.Hub.Register(client)

	h.Logger.Info("Feed client connected",
		logger.String("client_id", client.ID),
		logger.String("remote_addr", c.ClientIP()),
	)

	go client.WritePump()
	go client.ReadPump()
}
