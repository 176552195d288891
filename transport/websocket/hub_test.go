package websocket

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-server/internal/entity"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newHubServer(t *testing.T, initial *entity.Game) (*Hub, string) {
	t.Helper()

	hub := NewHub(testLogger())
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r, initial)
	}))
	t.Cleanup(func() {
		hub.Close()
		server.Close()
	})

	return hub, "ws" + strings.TrimPrefix(server.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func readGame(t *testing.T, conn *websocket.Conn) *entity.Game {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var game entity.Game
	require.NoError(t, json.Unmarshal(data, &game))

	return &game
}

func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()

	require.Eventually(t, func() bool {
		return hub.ClientCount() == want
	}, 5*time.Second, 10*time.Millisecond)
}

func TestHub_Broadcast(t *testing.T) {
	// Given: two connected observers
	hub, url := newHubServer(t, nil)
	first := dial(t, url)
	second := dial(t, url)
	waitForClients(t, hub, 2)

	game := entity.NewGame()
	_, err := game.RegisterPlayer1(entity.MarkX)
	require.NoError(t, err)

	// When: a snapshot is broadcast
	hub.Broadcast(game)

	// Then: both receive the same snapshot
	assert.Equal(t, game, readGame(t, first))
	assert.Equal(t, game, readGame(t, second))
}

func TestHub_InitialSnapshot(t *testing.T) {
	// Given: a hub that greets observers with the current game
	initial := entity.NewGame()
	_, err := initial.RegisterPlayer1(entity.MarkO)
	require.NoError(t, err)

	_, url := newHubServer(t, initial)

	// When: an observer connects
	conn := dial(t, url)

	// Then: the first frame is the current state
	assert.Equal(t, initial, readGame(t, conn))
}

func TestHub_DisconnectedObserverIsRemoved(t *testing.T) {
	// Given: two observers, one of which leaves
	hub, url := newHubServer(t, nil)
	staying := dial(t, url)
	leaving := dial(t, url)
	waitForClients(t, hub, 2)

	require.NoError(t, leaving.Close())
	waitForClients(t, hub, 1)

	// When: a snapshot is broadcast
	game := entity.NewGame()
	hub.Broadcast(game)

	// Then: the remaining observer still gets it
	assert.Equal(t, game, readGame(t, staying))
}

func TestHub_SlowObserverIsDropped(t *testing.T) {
	// Given: a registered client that never drains its buffer
	hub := NewHub(testLogger())
	slow := &client{hub: hub, send: make(chan []byte, 1)}
	healthy := &client{hub: hub, send: make(chan []byte, sendBufferSize)}
	require.True(t, hub.subscribe(slow, nil))
	require.True(t, hub.subscribe(healthy, nil))

	// When: more snapshots than the slow buffer holds are broadcast
	hub.Broadcast(entity.NewGame())
	hub.Broadcast(entity.NewGame())

	// Then: only the slow client is dropped, and its channel is closed
	assert.Equal(t, 1, hub.ClientCount())
	assert.Len(t, healthy.send, 2)

	<-slow.send
	_, open := <-slow.send
	assert.False(t, open)
}

func TestHub_CloseRefusesNewClients(t *testing.T) {
	hub := NewHub(testLogger())
	hub.Close()

	assert.False(t, hub.subscribe(&client{hub: hub, send: make(chan []byte, 1)}, nil))
	assert.Zero(t, hub.ClientCount())
}

func TestHub_NewObserverGetsLatestBroadcast(t *testing.T) {
	// Given: a stale initial snapshot and a newer one already broadcast
	stale := entity.NewGame()
	hub, url := newHubServer(t, stale)

	latest := entity.NewGame()
	_, err := latest.RegisterPlayer1(entity.MarkX)
	require.NoError(t, err)
	hub.Broadcast(latest)

	// When: an observer connects afterwards
	conn := dial(t, url)

	// Then: its first frame is the broadcast state, not the stale one
	assert.Equal(t, latest, readGame(t, conn))
}

func TestHub_SubscribeDuringBroadcastsKeepsOrder(t *testing.T) {
	// Given: a hub receiving a stream of snapshots
	hub := NewHub(testLogger())

	snapshots := make([]*entity.Game, 0, 20)
	for turn := range 20 {
		game := entity.NewGame()
		game.Turn = turn
		snapshots = append(snapshots, game)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for _, game := range snapshots {
			hub.Broadcast(game)
		}
	}()

	// When: a client subscribes while the stream is running
	c := &client{hub: hub, send: make(chan []byte, len(snapshots)+1)}
	require.True(t, hub.subscribe(c, nil))
	<-done

	// Then: every frame it holds is newer than the one before, ending with the last broadcast
	previous := -1
	last := -1
	for len(c.send) > 0 {
		var game entity.Game
		require.NoError(t, json.Unmarshal(<-c.send, &game))
		assert.Greater(t, game.Turn, previous)
		previous = game.Turn
		last = game.Turn
	}

	assert.Equal(t, len(snapshots)-1, last)
}
