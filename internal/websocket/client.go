package websocket

import (
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/iceddrop/socketpractice-nestjs/internal/chat"
)

// sendBufferSize bounds the outbound queue per client; frames beyond it are
// dropped rather than blocking the dispatcher.
const sendBufferSize = 256

var errSendBufferFull = errors.New("send buffer full")
var errClientClosed = errors.New("client closed")

type envelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

type outboundEnvelope struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// Client is one websocket session. It implements chat.Conn: the router and
// dispatcher only ever see the Send side.
type Client struct {
	id   string
	conn *websocket.Conn

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

func newClient(id string, conn *websocket.Conn) *Client {
	return &Client{
		id:   id,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
}

func (c *Client) ID() string { return c.id }

// Send frames the event and hands it to the write pump without blocking.
// A full buffer drops the frame; a closed client rejects it.
func (c *Client) Send(event string, payload any) error {
	frame, err := json.Marshal(outboundEnvelope{Event: event, Payload: payload})
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errClientClosed
	}
	select {
	case c.send <- frame:
		return nil
	default:
		return errSendBufferFull
	}
}

// close ends the write pump exactly once. Safe against concurrent Send.
func (c *Client) close() {
	c.mu.Lock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
	c.mu.Unlock()
}

// readPump decodes inbound envelopes and forwards them to the router until
// the connection drops. A frame that fails to decode is skipped, never
// fatal. Teardown runs the router's disconnect path exactly once.
func (c *Client) readPump(router *chat.Router) {
	defer func() {
		router.HandleDisconnect(c.id)
		c.close()
		c.conn.Close()
	}()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("❌ Read error from %s: %v", c.id, err)
			}
			return
		}

		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			log.Printf("⚠️ Invalid frame from %s: %v", c.id, err)
			continue
		}
		router.HandleEvent(c.id, env.Event, env.Payload)
	}
}

// writePump drains the send channel onto the socket.
func (c *Client) writePump() {
	defer c.conn.Close()

	for frame := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			log.Printf("❌ Write error to %s: %v", c.id, err)
			return
		}
	}
}
