package websocket

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

// Options configures the connection upgrade. An AllowedOrigins entry of "*"
// accepts any origin.
type Options struct {
	ReadBufferSize    int
	WriteBufferSize   int
	HandshakeTimeout  time.Duration
	EnableCompression bool
	AllowedOrigins    []string
}

func NewHandler(opts Options) *Handler {
	if opts.ReadBufferSize == 0 {
		opts.ReadBufferSize = 1024
	}
	if opts.WriteBufferSize == 0 {
		opts.WriteBufferSize = 1024
	}

	allowAll := false
	origins := make(map[string]bool)
	for _, origin := range opts.AllowedOrigins {
		if origin == "*" {
			allowAll = true
		}
		origins[origin] = true
	}

	hub := NewHub()
	go hub.Run()

	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:    opts.ReadBufferSize,
			WriteBufferSize:   opts.WriteBufferSize,
			HandshakeTimeout:  opts.HandshakeTimeout,
			EnableCompression: opts.EnableCompression,
			CheckOrigin: func(r *http.Request) bool {
				if allowAll {
					return true
				}
				return origins[r.Header.Get("Origin")]
			},
		},
	}
}

func (h *Handler) HandleWebSocket(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	userIDStr := ""
	if oid, ok := userID.(primitive.ObjectID); ok {
		userIDStr = oid.Hex()
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := NewClient(h.hub, conn, userIDStr)
	h.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// SendTripUpdate notifies the trip list room and the trip's own detail room.
func (h *Handler) SendTripUpdate(tripID primitive.ObjectID, updateType string, data map[string]interface{}) {
	message := Message{
		Type:      updateType,
		Timestamp: getCurrentTimestamp(),
		Data:      data,
	}

	message.RoomID = RoomTrips
	h.hub.SendToRoom(RoomTrips, message)

	detailRoom := "trip_" + tripID.Hex()
	message.RoomID = detailRoom
	h.hub.SendToRoom(detailRoom, message)
}

// SendFleetUpdate notifies the directory screens of an assignment change.
func (h *Handler) SendFleetUpdate(updateType string, data map[string]interface{}) {
	message := Message{
		Type:      updateType,
		RoomID:    RoomFleet,
		Timestamp: getCurrentTimestamp(),
		Data:      data,
	}
	h.hub.SendToRoom(RoomFleet, message)
}

func (h *Handler) GetHub() *Hub {
	return h.hub
}
