package websocket

import (
	"fmt"
	"log"
	"sync"
)

// Event is one realtime frame fanned out to a room. Rooms are scopes:
// "conversation:<id>" or "channel:<id>".
type Event struct {
	Type    string      `json:"type"`
	Room    string      `json:"room"`
	Payload interface{} `json:"payload"`
}

// RoomID builds the room key for a scope.
func RoomID(scopeType string, scopeID uint) string {
	return fmt.Sprintf("%s:%d", scopeType, scopeID)
}

// Hub maintains the set of active clients grouped by room and fans
// events out to them.
type Hub struct {
	clients map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan Event

	mu sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Event),
	}
}

// RegisterClient adds a client to its room.
func (h *Hub) RegisterClient(client *Client) {
	h.register <- client
}

// UnregisterClient removes a client and closes its send channel.
func (h *Hub) UnregisterClient(client *Client) {
	h.unregister <- client
}

// Broadcast fans an event out to every client in its room.
func (h *Hub) Broadcast(event Event) {
	h.broadcast <- event
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if _, ok := h.clients[client.Room]; !ok {
				h.clients[client.Room] = make(map[*Client]bool)
			}
			h.clients[client.Room][client] = true
			log.Printf("[WebSocket] Client registered: user %d, room %s", client.UserID, client.Room)
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.Room]; ok {
				if _, registered := h.clients[client.Room][client]; registered {
					delete(h.clients[client.Room], client)
					close(client.send)
					if len(h.clients[client.Room]) == 0 {
						delete(h.clients, client.Room)
					}
					log.Printf("[WebSocket] Client unregistered: user %d", client.UserID)
				}
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.mu.Lock()
			if clients, ok := h.clients[event.Room]; ok {
				for client := range clients {
					select {
					case client.send <- event:
					default:
						close(client.send)
						delete(clients, client)
						if len(clients) == 0 {
							delete(h.clients, event.Room)
						}
					}
				}
			}
			h.mu.Unlock()
		}
	}
}
