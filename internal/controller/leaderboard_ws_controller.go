package controller

import (
	"cosmic_quiz_backend/internal/service"
	"cosmic_quiz_backend/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type LeaderboardWSController struct {
	Hub      *service.LeaderboardHub
	upgrader websocket.Upgrader
}

func NewLeaderboardWSController(hub *service.LeaderboardHub) *LeaderboardWSController {
	return &LeaderboardWSController{
		Hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// @Summary Live leaderboard
// @Description Upgrades to a websocket that receives a leaderboard snapshot on every point change
// @Tags users
// @Router /api/leaderboard/live [get]
func (c *LeaderboardWSController) ServeWS(ctx *gin.Context) {
	conn, err := c.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		logger.Log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c.Hub.Register(conn)

	// Clients only listen; the read loop exists to detect disconnects.
	go func() {
		defer c.Hub.Unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
