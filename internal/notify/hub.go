// Package notify pushes allocation lifecycle events to connected staff
// dashboards over websockets. Delivery is best-effort; the allocation
// workflow never waits on it.
package notify

import (
	"log"
	"net/http"
	"sync"
	"time"

	"hostel-backend/internal/models"
	"hostel-backend/internal/timeutil"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	EventAllocated = "allocation.created"
	EventEnded     = "allocation.ended"
)

// Event is one allocation change as sent to dashboard clients.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	StudentID  string    `json:"student_id"`
	RoomID     int       `json:"room_id"`
	RoomNumber string    `json:"room_number,omitempty"`
	BedID      int       `json:"bed_id"`
	BedNumber  int       `json:"bed_number,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub fans allocation events out to every connected websocket client.
type Hub struct {
	clients    map[*websocket.Conn]bool
	clientsMux sync.Mutex
	broadcast  chan Event
}

func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan Event, 16),
	}
}

// Run consumes the broadcast channel. Start it once in a goroutine.
func (h *Hub) Run() {
	for event := range h.broadcast {
		h.clientsMux.Lock()
		for client := range h.clients {
			if err := client.WriteJSON(event); err != nil {
				client.Close()
				delete(h.clients, client)
			}
		}
		h.clientsMux.Unlock()
	}
}

// HandleWebSocket upgrades the connection and keeps it registered until
// the client goes away.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("[Notify] WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	h.clientsMux.Lock()
	h.clients[conn] = true
	h.clientsMux.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.clientsMux.Lock()
			delete(h.clients, conn)
			h.clientsMux.Unlock()
			break
		}
	}
}

func (h *Hub) publish(eventType string, a *models.RoomAllocation) {
	event := Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		StudentID:  a.StudentID,
		RoomID:     a.RoomID,
		RoomNumber: a.RoomNumber,
		BedID:      a.BedID,
		BedNumber:  a.BedNumber,
		Timestamp:  timeutil.Now(),
	}
	select {
	case h.broadcast <- event:
	default:
		// Feed is full; drop rather than stall the allocation path.
	}
}

// AllocationCreated implements services.Notifier.
func (h *Hub) AllocationCreated(a *models.RoomAllocation) {
	h.publish(EventAllocated, a)
}

// AllocationEnded implements services.Notifier.
func (h *Hub) AllocationEnded(a *models.RoomAllocation) {
	h.publish(EventEnded, a)
}
