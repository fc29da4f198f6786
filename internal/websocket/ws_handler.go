package websocket

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/iceddrop/socketpractice-nestjs/internal/chat"
)

// Upgrader upgrades HTTP connections to WebSocket connections
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // Allow any origin
}

// HandleConnection upgrades a request, assigns the connection id, and runs
// the session against the router until the client goes away. An optional
// ?name= query registers a display name immediately, as if the client had
// sent a register-user event.
func HandleConnection(router *chat.Router, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("❌ WebSocket upgrade failed: %v", err)
		return
	}

	client := newClient(uuid.NewString(), conn)
	router.HandleConnect(client)

	if name := r.URL.Query().Get("name"); name != "" {
		payload, err := json.Marshal(map[string]string{"name": name})
		if err == nil {
			router.HandleEvent(client.id, chat.EventRegisterUser, payload)
		}
	}

	go client.writePump()
	client.readPump(router)
}
