package api

import (
	"github.com/gin-gonic/gin"

	"github.com/iceddrop/socketpractice-nestjs/internal/chat"
)

func SetupRouter(router *chat.Router, conns *chat.ConnectionRegistry, rooms *chat.RoomRegistry, dispatch *chat.Dispatcher) *gin.Engine {
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Chat attach point plus read-only registry views
	r.GET("/ws", AttachClient(router))
	r.GET("/rooms", ListRooms(rooms))
	r.GET("/users", ListUsers(conns))
	r.POST("/rooms/:id/message", InjectMessage(dispatch))

	return r
}
