package service

import (
	"cosmic_quiz_backend/internal/util"
	"cosmic_quiz_backend/pkg/logger"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// LeaderboardHub pushes a fresh top list to every connected websocket client
// whenever any user's points change. Slow or broken clients are dropped
// rather than allowed to block the broadcast.
type LeaderboardHub struct {
	users *UserService

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func NewLeaderboardHub(users *UserService) *LeaderboardHub {
	return &LeaderboardHub{
		users:   users,
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// Register adds a client and immediately sends it the current snapshot.
func (h *LeaderboardHub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()

	entries, err := h.users.GetLeaderboard(util.DefaultLeaderboardLimit)
	if err != nil {
		logger.Log.Warn("initial leaderboard snapshot failed", zap.Error(err))
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := conn.WriteJSON(entries); err != nil {
		delete(h.clients, conn)
		conn.Close()
	}
}

func (h *LeaderboardHub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
}

// PointsChanged implements PointsListener.
func (h *LeaderboardHub) PointsChanged(userID string) {
	h.mu.Lock()
	empty := len(h.clients) == 0
	h.mu.Unlock()
	if empty {
		return
	}

	entries, err := h.users.GetLeaderboard(util.DefaultLeaderboardLimit)
	if err != nil {
		logger.Log.Warn("leaderboard broadcast read failed", zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteJSON(entries); err != nil {
			delete(h.clients, conn)
			conn.Close()
		}
	}
}

// ClientCount reports how many clients are connected.
func (h *LeaderboardHub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Stop closes every client connection; used during shutdown.
func (h *LeaderboardHub) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		conn.Close()
		delete(h.clients, conn)
	}
}
