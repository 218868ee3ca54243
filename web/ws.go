package web

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type client struct {
	id   uuid.UUID
	conn *websocket.Conn
	send chan []byte
}

var (
	clientsLock sync.Mutex
	clients     map[*client]bool = make(map[*client]bool)
)

func registerClient(c *client) {
	clientsLock.Lock()
	defer clientsLock.Unlock()
	clients[c] = true
}

func unregisterClient(c *client) {
	clientsLock.Lock()
	defer clientsLock.Unlock()
	if clients[c] {
		delete(clients, c)
		close(c.send)
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(time.Second * 30)
	defer func() {
		ticker.Stop()
		unregisterClient(c)
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(40 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Printf("[web] ws %v write msg error: %v", c.id, err)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(40 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("[web] ws %v write ping error: %v", c.id, err)
				return
			}
		}
	}
}

// sendToClient delivers data to c unless it has already unregistered.
// The registry lock orders the send against close(c.send), so a racing
// writePump exit cannot leave us writing to a closed channel.
func sendToClient(c *client, data []byte) bool {
	clientsLock.Lock()
	defer clientsLock.Unlock()
	if !clients[c] {
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

func broadcastSnapshot(s *Snapshot) {
	data, err := json.Marshal(s)
	if err != nil {
		log.Printf("[web] Failed to marshal snapshot: %v", err)
		return
	}

	clientsLock.Lock()
	defer clientsLock.Unlock()
	for c := range clients {
		select {
		case c.send <- data:
		default:
			// Slow subscriber; drop this frame for it.
		}
	}
}

func HandlerWsStatus(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[web] ws upgrade error: %v", err)
		return
	}

	c := &client{
		id:   uuid.New(),
		conn: conn,
		send: make(chan []byte, 32),
	}
	registerClient(c)
	go c.writePump()

	if s := CurrentSnapshot(); s != nil {
		if data, err := json.Marshal(s); err == nil {
			sendToClient(c, data)
		}
	}
	log.Printf("[web] ws client %v connected from %v", c.id, r.RemoteAddr)
}
