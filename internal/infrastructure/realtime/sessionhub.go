// Package realtime provides WebSocket session rooms for live campaign play:
// table chat, dice rolls and table-state updates streamed to every connected
// participant.
package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"tavern/internal/shared/logger"
)

// normalCloseCodes are WebSocket close codes that indicate an expected disconnect.
var normalCloseCodes = []int{
	websocket.CloseNormalClosure,
	websocket.CloseGoingAway,
	websocket.CloseNoStatusReceived,
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true // allow non-browser clients
		}
		host := r.Host
		return origin == "http://"+host || origin == "https://"+host
	},
}

type EventType string

const (
	EventChat         EventType = "chat"
	EventDiceRoll     EventType = "dice_roll"
	EventTokenMove    EventType = "token_move"
	EventFogReveal    EventType = "fog_reveal"
	EventPlayerJoined EventType = "player_joined"
	EventPlayerLeft   EventType = "player_left"
)

// relayable lists the inbound event types participants may broadcast. Join
// and leave events are emitted by the hub only.
var relayable = map[EventType]bool{
	EventChat:      true,
	EventDiceRoll:  true,
	EventTokenMove: true,
	EventFogReveal: true,
}

// Event is a single session-room message.
type Event struct {
	Type       EventType   `json:"type"`
	CampaignID uint        `json:"campaign_id"`
	UserID     uint        `json:"user_id,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
	Data       interface{} `json:"data,omitempty"`
}

// Client is one participant's connection to a campaign session room.
type Client struct {
	hub        *SessionHub
	conn       *websocket.Conn
	send       chan []byte
	campaignID uint
	userID     uint
}

// MaxClients caps concurrent connections across all rooms.
const MaxClients = 4096

// SessionHub manages the per-campaign session rooms.
type SessionHub struct {
	rooms      map[uint]map[*Client]bool
	broadcast  chan *Event
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
	logger     logger.Interface
	done       chan struct{} // closed when Run exits; prevents upgrade race
	maxClients int

	totalEvents  atomic.Int64
	totalClients atomic.Int64
}

func NewSessionHub(log logger.Interface) *SessionHub {
	return &SessionHub{
		rooms:      make(map[uint]map[*Client]bool),
		broadcast:  make(chan *Event, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     log,
		done:       make(chan struct{}),
		maxClients: MaxClients,
	}
}

// Run drives the hub until the context is canceled.
func (h *SessionHub) Run(ctx context.Context) {
	h.logger.Infow("session hub started")
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for campaignID, room := range h.rooms {
				for client := range room {
					close(client.send) // writePump sends CloseMessage on closed channel
				}
				delete(h.rooms, campaignID)
			}
			h.mu.Unlock()
			h.logger.Infow("session hub stopped")
			return

		case client := <-h.register:
			h.mu.Lock()
			room := h.rooms[client.campaignID]
			if room == nil {
				room = make(map[*Client]bool)
				h.rooms[client.campaignID] = room
			}
			room[client] = true
			h.totalClients.Add(1)
			n := len(room)
			h.mu.Unlock()
			h.logger.Infow("session client connected",
				"campaign_id", client.campaignID, "user_id", client.userID, "room_size", n)
			h.Broadcast(&Event{
				Type:       EventPlayerJoined,
				CampaignID: client.campaignID,
				UserID:     client.userID,
				Timestamp:  time.Now(),
			})

		case client := <-h.unregister:
			h.mu.Lock()
			room := h.rooms[client.campaignID]
			if room != nil && room[client] {
				delete(room, client)
				close(client.send)
				if len(room) == 0 {
					delete(h.rooms, client.campaignID)
				}
			}
			h.mu.Unlock()
			h.logger.Infow("session client disconnected",
				"campaign_id", client.campaignID, "user_id", client.userID)
			h.Broadcast(&Event{
				Type:       EventPlayerLeft,
				CampaignID: client.campaignID,
				UserID:     client.userID,
				Timestamp:  time.Now(),
			})

		case event := <-h.broadcast:
			h.totalEvents.Add(1)
			payload, err := json.Marshal(event)
			if err != nil {
				continue
			}
			h.mu.RLock()
			var slow []*Client
			for client := range h.rooms[event.CampaignID] {
				select {
				case client.send <- payload:
				default:
					slow = append(slow, client)
				}
			}
			h.mu.RUnlock()
			// drop clients that cannot keep up
			if len(slow) > 0 {
				h.mu.Lock()
				room := h.rooms[event.CampaignID]
				for _, client := range slow {
					if room != nil && room[client] {
						close(client.send)
						delete(room, client)
					}
				}
				h.mu.Unlock()
			}
		}
	}
}

// Broadcast queues an event for the event's campaign room.
func (h *SessionHub) Broadcast(event *Event) {
	select {
	case h.broadcast <- event:
	default:
		h.logger.Warnw("broadcast channel full, dropping event",
			"campaign_id", event.CampaignID, "type", string(event.Type))
	}
}

// RoomSize reports the number of connected clients in a campaign room.
func (h *SessionHub) RoomSize(campaignID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[campaignID])
}

// Stats returns hub counters for the admin surface.
func (h *SessionHub) Stats() map[string]interface{} {
	h.mu.RLock()
	connected := 0
	for _, room := range h.rooms {
		connected += len(room)
	}
	rooms := len(h.rooms)
	h.mu.RUnlock()

	return map[string]interface{}{
		"connectedClients": connected,
		"activeRooms":      rooms,
		"totalEvents":      h.totalEvents.Load(),
		"totalClients":     h.totalClients.Load(),
	}
}

// HandleSession upgrades the request into a session-room connection for the
// given campaign and user. The caller has already authenticated the user
// and verified campaign membership.
func (h *SessionHub) HandleSession(w http.ResponseWriter, r *http.Request, campaignID, userID uint) {
	select {
	case <-h.done:
		http.Error(w, "server shutting down", http.StatusServiceUnavailable)
		return
	default:
	}

	h.mu.RLock()
	connected := 0
	for _, room := range h.rooms {
		connected += len(room)
	}
	h.mu.RUnlock()
	if connected >= h.maxClients {
		http.Error(w, "too many connections", http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Errorw("websocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		hub:        h,
		conn:       conn,
		send:       make(chan []byte, 256),
		campaignID: campaignID,
		userID:     userID,
	}

	h.register <- client

	go client.writePump()
	go client.readPump()
}

// inboundMessage is what participants send: chat lines, dice rolls and
// table-state updates.
type inboundMessage struct {
	Type EventType       `json:"type"`
	Data json.RawMessage `json:"data"`
}

// readPump relays inbound session messages into the room.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(64 * 1024)
	_ = c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, normalCloseCodes...) {
				c.hub.logger.Warnw("websocket read error", "error", err)
			}
			break
		}

		var in inboundMessage
		if err := json.Unmarshal(message, &in); err != nil {
			continue
		}
		if !relayable[in.Type] {
			continue
		}

		var data interface{}
		if len(in.Data) > 0 {
			_ = json.Unmarshal(in.Data, &data)
		}
		c.hub.Broadcast(&Event{
			Type:       in.Type,
			CampaignID: c.campaignID,
			UserID:     c.userID,
			Timestamp:  time.Now(),
			Data:       data,
		})
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
