package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iceddrop/socketpractice-nestjs/internal/chat"
	ws "github.com/iceddrop/socketpractice-nestjs/internal/websocket"
)

// AttachClient handles GET /ws. The websocket package assigns the
// connection id and runs the session against the router.
func AttachClient(router *chat.Router) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws.HandleConnection(router, c.Writer, c.Request)
	}
}

// ListRooms handles GET /rooms. Rooms exist only while they have members,
// so an idle server reports an empty list.
func ListRooms(rooms *chat.RoomRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"rooms": rooms.Summary()})
	}
}

// ListUsers handles GET /users with the same snapshot that the `users`
// event broadcasts.
func ListUsers(conns *chat.ConnectionRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"users": conns.Snapshot()})
	}
}

// InjectMessage handles POST /rooms/:id/message. If a room has no members
// the delivery is a no-op, but the request still succeeds.
func InjectMessage(dispatch *chat.Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		roomID := c.Param("id")

		var req struct {
			Author string `json:"author"`
			Text   string `json:"text"`
		}

		if err := c.BindJSON(&req); err != nil || req.Text == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message"})
			return
		}
		if req.Author == "" {
			req.Author = chat.SystemAuthor
		}

		dispatch.ToRoom(roomID, chat.EventMessage, chat.Message{
			Room:   roomID,
			Author: req.Author,
			Text:   req.Text,
		})
		c.JSON(http.StatusOK, gin.H{"message": "Message sent to room", "room_id": roomID})
	}
}
