package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cosmic_quiz_backend/internal/util"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expectTopList(mock sqlmock.Sqlmock, points int) {
	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WithArgs(util.DefaultLeaderboardLimit).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "display_name", "total_points"}).
			AddRow("u1", "nova", "Nova", points))
}

func dialHub(t *testing.T, hub *LeaderboardHub) *websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.Register(conn)
	}))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHubSendsSnapshotOnRegister(t *testing.T) {
	db, mock := newMockDB(t)
	users := newLeaderboardUserService(db)
	hub := NewLeaderboardHub(users)

	expectTopList(mock, 40)
	conn := dialHub(t, hub)

	var entries []LeaderboardEntry
	require.NoError(t, conn.ReadJSON(&entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "nova", entries[0].Username)
	assert.Equal(t, 40, entries[0].TotalPoints)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHubBroadcastsOnPointsChanged(t *testing.T) {
	db, mock := newMockDB(t)
	users := newLeaderboardUserService(db)
	hub := NewLeaderboardHub(users)

	expectTopList(mock, 40)
	conn := dialHub(t, hub)

	var entries []LeaderboardEntry
	require.NoError(t, conn.ReadJSON(&entries))

	expectTopList(mock, 50)
	hub.PointsChanged("u1")

	require.NoError(t, conn.ReadJSON(&entries))
	require.Len(t, entries, 1)
	assert.Equal(t, 50, entries[0].TotalPoints)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHubPointsChangedWithoutClientsSkipsTheRead(t *testing.T) {
	db, mock := newMockDB(t)
	users := newLeaderboardUserService(db)
	hub := NewLeaderboardHub(users)

	hub.PointsChanged("u1")

	assert.Zero(t, hub.ClientCount())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHubStopDisconnectsClients(t *testing.T) {
	db, mock := newMockDB(t)
	users := newLeaderboardUserService(db)
	hub := NewLeaderboardHub(users)

	expectTopList(mock, 40)
	conn := dialHub(t, hub)

	var entries []LeaderboardEntry
	require.NoError(t, conn.ReadJSON(&entries))
	require.Equal(t, 1, hub.ClientCount())

	hub.Stop()
	assert.Zero(t, hub.ClientCount())

	_, _, err := conn.ReadMessage()
	var closeErr *websocket.CloseError
	if assert.ErrorAs(t, err, &closeErr) {
		assert.Equal(t, websocket.CloseGoingAway, closeErr.Code)
	}
}

// unmarshal sanity for the snapshot payload shape clients depend on
func TestLeaderboardEntryWireShape(t *testing.T) {
	payload, err := json.Marshal(LeaderboardEntry{Rank: 1, Username: "nova", DisplayName: "Nova", TotalPoints: 40})
	require.NoError(t, err)
	assert.JSONEq(t, `{"rank":1,"username":"nova","displayName":"Nova","totalPoints":40}`, string(payload))
}
