package ws

import (
	"context"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/snorelax/snorelax-be/internal/api/middleware"
	"github.com/snorelax/snorelax-be/internal/db"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for now
	},
}

// MessageStore persists community messages.
type MessageStore interface {
	SaveGroupMessage(ctx context.Context, groupID, senderID, message string) (*db.GroupMessage, error)
	SavePrivateMessage(ctx context.Context, senderID, receiverID, message string) (*db.PrivateMessage, error)
}

// IncomingEvent is one client event.
type IncomingEvent struct {
	Type       string `json:"type"` // "joinGroup", "leaveGroup", "sendGroupMessage", "sendPrivateMessage"
	GroupID    string `json:"groupId,omitempty"`
	ReceiverID string `json:"receiverId,omitempty"`
	Message    string `json:"message,omitempty"`
}

// OutgoingEvent is one server event.
type OutgoingEvent struct {
	Type     string    `json:"type"` // "newMessage", "receivePrivateMessage", "error"
	GroupID  string    `json:"groupId,omitempty"`
	SenderID string    `json:"senderId,omitempty"`
	Message  string    `json:"message,omitempty"`
	SentAt   time.Time `json:"sentAt,omitempty"`
}

type client struct {
	conn    *websocket.Conn
	userID  string
	writeMu sync.Mutex
	limiter *middleware.WebSocketLimiter
}

func (c *client) send(event OutgoingEvent) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(event)
}

// Hub routes community messages between connected clients. Each user
// implicitly joins a personal room for private messages; group rooms
// are joined and left explicitly.
type Hub struct {
	store     MessageStore
	jwtSecret string

	mu    sync.RWMutex
	rooms map[string]map[*client]struct{}
}

// NewHub creates a community hub.
func NewHub(store MessageStore, jwtSecret string) *Hub {
	return &Hub{
		store:     store,
		jwtSecret: jwtSecret,
		rooms:     make(map[string]map[*client]struct{}),
	}
}

const userRoomPrefix = "user_"

// HandleCommunity upgrades the connection and serves events until the
// client disconnects.
func (h *Hub) HandleCommunity(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		token = c.GetHeader("Authorization")
		if strings.HasPrefix(token, "Bearer ") {
			token = strings.TrimPrefix(token, "Bearer ")
		}
	}
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
		return
	}

	claims, err := middleware.ParseToken(token, h.jwtSecret)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	cl := &client{
		conn:    conn,
		userID:  claims.UserID,
		limiter: middleware.NewWebSocketLimiter(60),
	}

	h.join(userRoomPrefix+cl.userID, cl)
	defer h.leaveAll(cl)

	log.Printf("Community socket connected: user=%s", cl.userID)

	for {
		var event IncomingEvent
		if err := conn.ReadJSON(&event); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		if !cl.limiter.Allow() {
			cl.send(OutgoingEvent{Type: "error", Message: "Rate limit exceeded. Please slow down."})
			continue
		}

		h.dispatch(c.Request.Context(), cl, event)
	}
}

func (h *Hub) dispatch(ctx context.Context, cl *client, event IncomingEvent) {
	switch event.Type {
	case "joinGroup":
		if event.GroupID != "" {
			h.join(event.GroupID, cl)
		}

	case "leaveGroup":
		if event.GroupID != "" {
			h.leave(event.GroupID, cl)
		}

	case "sendGroupMessage":
		if event.GroupID == "" || strings.TrimSpace(event.Message) == "" {
			return
		}
		saved, err := h.store.SaveGroupMessage(ctx, event.GroupID, cl.userID, event.Message)
		if err != nil {
			log.Printf("Community: failed to save group message: %v", err)
			cl.send(OutgoingEvent{Type: "error", Message: "Failed to send message"})
			return
		}
		h.broadcast(event.GroupID, OutgoingEvent{
			Type:     "newMessage",
			GroupID:  saved.GroupID,
			SenderID: saved.SenderID,
			Message:  saved.Message,
			SentAt:   saved.CreatedAt,
		})

	case "sendPrivateMessage":
		if event.ReceiverID == "" || strings.TrimSpace(event.Message) == "" {
			return
		}
		saved, err := h.store.SavePrivateMessage(ctx, cl.userID, event.ReceiverID, event.Message)
		if err != nil {
			log.Printf("Community: failed to save private message: %v", err)
			cl.send(OutgoingEvent{Type: "error", Message: "Failed to send message"})
			return
		}
		h.broadcast(userRoomPrefix+event.ReceiverID, OutgoingEvent{
			Type:     "receivePrivateMessage",
			SenderID: saved.SenderID,
			Message:  saved.Message,
			SentAt:   saved.CreatedAt,
		})

	default:
		cl.send(OutgoingEvent{Type: "error", Message: "Unknown event type"})
	}
}

func (h *Hub) join(room string, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*client]struct{})
	}
	h.rooms[room][cl] = struct{}{}
}

func (h *Hub) leave(room string, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.rooms[room], cl)
	if len(h.rooms[room]) == 0 {
		delete(h.rooms, room)
	}
}

func (h *Hub) leaveAll(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for room, members := range h.rooms {
		delete(members, cl)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
}

func (h *Hub) broadcast(room string, event OutgoingEvent) {
	h.mu.RLock()
	members := make([]*client, 0, len(h.rooms[room]))
	for cl := range h.rooms[room] {
		members = append(members, cl)
	}
	h.mu.RUnlock()

	for _, cl := range members {
		if err := cl.send(event); err != nil {
			log.Printf("Community: write to user=%s failed: %v", cl.userID, err)
		}
	}
}
