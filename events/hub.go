package events

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
)

// Event is one remote-state change pushed to connected admin clients, so
// their list views track the store without polling.
type Event struct {
	Entity  string      `json:"entity"`
	Action  string      `json:"action"`
	ID      string      `json:"id"`
	Payload interface{} `json:"payload,omitempty"`
}

type Client struct {
	UserID string
	Conn   *websocket.Conn
}

var clients = make(map[string]*websocket.Conn)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var Broadcast = make(chan Event, 16)

func RunHub() {
	for {
		select {
		case client := <-Register:
			log.Printf("Client registered: %s", client.UserID)
			clientsMu.Lock()
			clients[client.UserID] = client.Conn
			clientsMu.Unlock()
		case client := <-Unregister:
			log.Printf("Client unregistered: %s", client.UserID)
			clientsMu.Lock()
			if conn, ok := clients[client.UserID]; ok && conn == client.Conn {
				delete(clients, client.UserID)
			}
			clientsMu.Unlock()
		case event := <-Broadcast:
			clientsMu.RLock()
			var failed []string
			for userID, conn := range clients {
				if err := conn.WriteJSON(event); err != nil {
					log.Printf("Error sending event to client %s: %v", userID, err)
					conn.Close()
					failed = append(failed, userID)
				}
			}
			clientsMu.RUnlock()

			if len(failed) > 0 {
				clientsMu.Lock()
				for _, userID := range failed {
					delete(clients, userID)
				}
				clientsMu.Unlock()
			}
		}
	}
}

// Publish queues an event for broadcast without blocking the caller; a full
// queue drops the event rather than stalling a request.
func Publish(event Event) {
	select {
	case Broadcast <- event:
	default:
		log.Printf("⚠️ Event queue full, dropping %s/%s for %s", event.Entity, event.Action, event.ID)
	}
}
