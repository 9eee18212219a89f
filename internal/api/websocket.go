package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/edaniels/golog"
	"github.com/gorilla/websocket"

	"pointz/internal/protocol"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 50 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The listener is loopback-only; origin checks add nothing here.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub fans command notifications out to every connected status page. The
// client set is owned by the run goroutine alone.
type Hub struct {
	logger     golog.Logger
	clients    map[*wsClient]bool
	broadcast  chan protocol.Message
	register   chan *wsClient
	unregister chan *wsClient
	shutdown   chan struct{}
}

type wsClient struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	ip   string
}

func newHub(logger golog.Logger) *Hub {
	return &Hub{
		logger:     logger,
		clients:    make(map[*wsClient]bool),
		broadcast:  make(chan protocol.Message, 64),
		register:   make(chan *wsClient),
		unregister: make(chan *wsClient),
		shutdown:   make(chan struct{}),
	}
}

func (h *Hub) run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.logger.Debugw("feed client connected", "remote", client.ip, "clients", len(h.clients))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.logger.Debugw("feed client disconnected", "remote", client.ip, "clients", len(h.clients))
			}

		case msg := <-h.broadcast:
			h.fanOut(msg)

		case <-h.shutdown:
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			return
		}
	}
}

// fanOut pushes one message to every client. A client whose send buffer is
// full is dropped rather than stalling the feed.
func (h *Hub) fanOut(msg protocol.Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Errorw("encoding feed message failed", "error", err)
		return
	}
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			delete(h.clients, client)
			close(client.send)
		}
	}
}

// Broadcast queues a message for every connected page. The feed is
// advisory: when the queue is full the message is dropped so the command
// path never waits on it.
func (h *Hub) Broadcast(msg protocol.Message) {
	select {
	case h.broadcast <- msg:
	default:
	}
}

func (h *Hub) stop() {
	close(h.shutdown)
}

func (h *Hub) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Errorw("websocket upgrade failed", "error", err)
		return
	}

	client := &wsClient{
		hub:  h,
		conn: conn,
		send: make(chan []byte, 256),
		ip:   r.RemoteAddr,
	}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

// readPump services control frames and notices the close. The page never
// sends anything the host acts on.
func (c *wsClient) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)
			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
