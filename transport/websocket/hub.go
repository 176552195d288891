package websocket

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-server/internal/entity"
)

const (
	// time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// observers only listen; anything they send is discarded.
	maxMessageSize = 512

	sendBufferSize = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub fans game snapshots out to every connected observer.
type Hub struct {
	logger *slog.Logger

	mu      sync.RWMutex
	clients map[*client]struct{}
	closed  bool
	// last broadcast payload, replayed to new observers
	latest []byte
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:  logger.With("component", "websocket_hub"),
		clients: make(map[*client]struct{}),
	}
}

// ServeWS upgrades the request and subscribes the connection. The first frame is the latest
// broadcast snapshot, or initial when nothing was broadcast yet.
func (that *Hub) ServeWS(w http.ResponseWriter, r *http.Request, initial *entity.Game) {
	log := that.logger.With("method", "ServeWS")

	var fallback []byte
	if initial != nil {
		data, err := json.Marshal(initial)
		if err != nil {
			log.Error("failed to marshal initial game", "error", err)
		}
		fallback = data
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &client{
		hub:  that,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}

	if !that.subscribe(c, fallback) {
		_ = conn.Close()
		return
	}

	log.Info("observer connected", "remote_addr", r.RemoteAddr)

	go c.writePump()
	go c.readPump()
}

// Broadcast never blocks: an observer whose buffer is full is dropped.
func (that *Hub) Broadcast(game *entity.Game) {
	log := that.logger.With("method", "Broadcast")

	data, err := json.Marshal(game)
	if err != nil {
		log.Error("failed to marshal game", "error", err)
		return
	}

	// one lock for recording and enqueueing keeps every observer's frames in broadcast order
	that.mu.Lock()
	defer that.mu.Unlock()

	that.latest = data

	for c := range that.clients {
		select {
		case c.send <- data:
		default:
			log.Warn("observer is not keeping up, dropping it")
			that.removeLocked(c)
		}
	}
}

func (that *Hub) ClientCount() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.clients)
}

// Close disconnects every observer and refuses new ones.
func (that *Hub) Close() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.closed = true
	for c := range that.clients {
		delete(that.clients, c)
		close(c.send)
	}
}

// subscribe queues the first frame and registers c in one critical section, so no broadcast
// can slip between them.
func (that *Hub) subscribe(c *client, fallback []byte) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed {
		return false
	}

	first := that.latest
	if first == nil {
		first = fallback
	}

	if first != nil {
		c.send <- first
	}

	that.clients[c] = struct{}{}

	return true
}

func (that *Hub) unregister(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.removeLocked(c)
}

func (that *Hub) removeLocked(c *client) {
	if _, ok := that.clients[c]; !ok {
		return
	}

	delete(that.clients, c)
	close(c.send)
}

func (that *client) readPump() {
	defer func() {
		that.hub.unregister(that)
		_ = that.conn.Close()
	}()

	that.conn.SetReadLimit(maxMessageSize)
	_ = that.conn.SetReadDeadline(time.Now().Add(pongWait))
	that.conn.SetPongHandler(func(string) error {
		return that.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := that.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				that.hub.logger.Warn("observer connection error", "error", err)
			}
			return
		}
	}
}

func (that *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = that.conn.Close()
	}()

	for {
		select {
		case message, ok := <-that.send:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// the hub closed the channel
				_ = that.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			// one snapshot per frame
			if err := that.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := that.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
