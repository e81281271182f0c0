package api

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/louisbranch/omerta/internal/event"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	clientBacklog  = 64
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The dispatcher is a trusted backend peer, not a browser.
	CheckOrigin: func(*http.Request) bool { return true },
}

// Feed fans engine events out to connected dispatchers over websockets. It
// implements event.Sink; Emit never blocks the engine loop, slow clients
// get dropped instead.
type Feed struct {
	mu      sync.Mutex
	clients map[*feedClient]struct{}
}

type feedClient struct {
	conn *websocket.Conn
	send chan event.Event
}

// NewFeed creates an empty feed.
func NewFeed() *Feed {
	return &Feed{clients: make(map[*feedClient]struct{})}
}

// Emit implements event.Sink.
func (f *Feed) Emit(e event.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for client := range f.clients {
		select {
		case client.send <- e:
		default:
			// Backlogged client; close it rather than stall the match.
			delete(f.clients, client)
			close(client.send)
		}
	}
}

// Serve upgrades the request and streams events until the client goes away.
func (f *Feed) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("api: websocket upgrade: %v", err)
		return
	}
	client := &feedClient{
		conn: conn,
		send: make(chan event.Event, clientBacklog),
	}
	f.mu.Lock()
	f.clients[client] = struct{}{}
	f.mu.Unlock()

	go client.writePump()
	client.readPump(f)
}

func (f *Feed) remove(client *feedClient) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.clients[client]; ok {
		delete(f.clients, client)
		close(client.send)
	}
}

// readPump discards inbound frames; the feed is one-way. It keeps the
// connection's read side alive for pong handling.
func (c *feedClient) readPump(f *Feed) {
	defer func() {
		f.remove(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *feedClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case e, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.conn.WriteJSON(e); err != nil {
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
