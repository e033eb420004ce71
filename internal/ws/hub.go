package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
)

// Event is the JSON envelope pushed to connected UI clients: catalog edits,
// stock movements, shortage alerts and exchange-rate revaluations.
type Event struct {
	Type    string      `json:"type"`
	Action  string      `json:"action,omitempty"`
	Message string      `json:"message,omitempty"`
	Payload interface{} `json:"payload,omitempty"`
}

type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	mutex      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		// Buffered so mutations never stall on a slow or absent reader.
		Broadcast: make(chan []byte, 64),
	}
}

// BroadcastEvent queues an event for delivery. Events are dropped when the
// buffer is full; clients resync from the REST API anyway.
func (h *Hub) BroadcastEvent(e Event) {
	msg, err := json.Marshal(e)
	if err != nil {
		log.Printf("ws: failed to marshal event %q: %v", e.Type, err)
		return
	}
	select {
	case h.Broadcast <- msg:
	default:
	}
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			log.Println("New WS client connected")

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}
