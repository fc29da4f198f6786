package chat

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/iceddrop/socketpractice-nestjs/internal/common"
)

// Router is the per-connection event state machine. The transport hands it
// connect/disconnect lifecycle calls plus every inbound event; it validates
// payloads, mutates the registries, and drives the dispatcher.
//
// Validation is defensive and permissive: a malformed payload drops the
// event with a log line, never an error back to the transport. A bad frame
// must never tear down the session.
type Router struct {
	conns    *ConnectionRegistry
	rooms    *RoomRegistry
	dispatch *Dispatcher
	feed     common.MessagePublisher
}

// NewRouter wires the router to its registries and dispatcher. feed may be
// nil to disable the kafka room-event feed.
func NewRouter(conns *ConnectionRegistry, rooms *RoomRegistry, dispatch *Dispatcher, feed common.MessagePublisher) *Router {
	return &Router{
		conns:    conns,
		rooms:    rooms,
		dispatch: dispatch,
		feed:     feed,
	}
}

// HandleConnect runs when the transport accepts a new connection.
func (rt *Router) HandleConnect(conn Conn) {
	rt.conns.Add(conn)
	log.Printf("🟢 Client connected: %s", conn.ID())

	if err := conn.Send(EventWelcome, "Welcome to the chat server!"); err != nil {
		log.Printf("⚠️ Welcome to %s failed: %v", conn.ID(), err)
	}
	rt.dispatch.ToAll(EventUsers, rt.conns.Snapshot())
}

// HandleDisconnect runs once when the transport loses a connection. The
// connection is pulled from every room it joined, each affected room gets
// one departure notice, and the users snapshot is rebroadcast.
func (rt *Router) HandleDisconnect(id string) {
	name := rt.conns.Name(id)
	for _, room := range rt.rooms.RemoveFromAllRooms(id) {
		rt.dispatch.ToRoom(room, EventMessage, Message{
			Room:   room,
			Author: SystemAuthor,
			Text:   fmt.Sprintf("User %s left the room", name),
		})
	}
	rt.conns.Remove(id)
	log.Printf("🔴 Client disconnected: %s", id)
	rt.dispatch.ToAll(EventUsers, rt.conns.Snapshot())
}

// HandleEvent routes one inbound event from connection id.
func (rt *Router) HandleEvent(id, event string, payload json.RawMessage) {
	switch event {
	case EventRegisterUser:
		rt.handleRegister(id, payload)
	case EventJoin:
		rt.handleJoin(id, payload)
	case EventLeave:
		rt.handleLeave(id, payload)
	case EventMessage:
		rt.handleMessage(id, payload)
	case EventCreatePrivateChat:
		rt.handlePrivateChat(id, payload)
	default:
		log.Printf("⚠️ Unknown event %q from %s, dropped", event, id)
	}
}

func (rt *Router) handleRegister(id string, payload json.RawMessage) {
	var req registerPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		log.Printf("⚠️ Invalid register-user payload from %s: %v", id, err)
		return
	}
	if !rt.conns.SetName(id, req.Name) {
		log.Printf("⚠️ register-user from %s with empty name, ignored", id)
		return
	}

	rt.dispatch.ToAll(EventUsers, rt.conns.Snapshot())
	_ = rt.dispatch.ToConn(id, EventMessage, Message{
		Author: SystemAuthor,
		Text:   fmt.Sprintf("You are now known as %s", req.Name),
	})
}

func (rt *Router) handleJoin(id string, payload json.RawMessage) {
	req, err := ResolveJoinRequest(payload)
	if err != nil {
		log.Printf("⚠️ Invalid join payload from %s: %v", id, err)
		return
	}
	if err := rt.rooms.Join(req.Room, id); err != nil {
		log.Printf("⚠️ Join %q by %s rejected: %v", req.Room, id, err)
		return
	}
	log.Printf("🟢 %s joined %s", id, req.Room)

	rt.dispatch.ToRoomExcluding(req.Room, id, EventMessage, Message{
		Room:   req.Room,
		Author: SystemAuthor,
		Text:   fmt.Sprintf("User %s joined the room", rt.conns.Name(id)),
	})
	_ = rt.dispatch.ToConn(id, EventMessage, Message{
		Room:   req.Room,
		Author: SystemAuthor,
		Text:   fmt.Sprintf("You joined %s", req.Room),
	})
	rt.dispatch.ToAll(EventUsers, rt.conns.Snapshot())
}

func (rt *Router) handleLeave(id string, payload json.RawMessage) {
	var req leavePayload
	if err := json.Unmarshal(payload, &req); err != nil || req.Room == "" {
		log.Printf("⚠️ Invalid leave payload from %s", id)
		return
	}
	if !rt.rooms.Leave(req.Room, id) {
		return
	}
	log.Printf("🔴 %s left %s", id, req.Room)

	rt.dispatch.ToRoom(req.Room, EventMessage, Message{
		Room:   req.Room,
		Author: SystemAuthor,
		Text:   fmt.Sprintf("User %s left the room", rt.conns.Name(id)),
	})
}

func (rt *Router) handleMessage(id string, payload json.RawMessage) {
	var req messagePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		log.Printf("⚠️ Invalid message payload from %s: %v", id, err)
		return
	}
	if req.Room == "" || req.Text == "" {
		log.Printf("⚠️ Message from %s missing room or text, dropped", id)
		return
	}

	// Membership is advisory for delivery: a sender who never joined still
	// reaches the room, it just gets flagged here.
	if !rt.rooms.IsMember(req.Room, id) {
		log.Printf("⚠️ %s is not a member of %s, delivering anyway", id, req.Room)
	}

	author := req.Author
	if author == "" {
		author = rt.conns.Name(id)
	}
	msg := Message{
		Room:      req.Room,
		Author:    author,
		Text:      req.Text,
		IsPrivate: req.IsPrivate,
	}
	rt.dispatch.ToRoom(req.Room, EventMessage, msg)
	rt.publishToFeed(msg)
}

func (rt *Router) handlePrivateChat(id string, payload json.RawMessage) {
	var req privateChatPayload
	if err := json.Unmarshal(payload, &req); err != nil || req.TargetUserID == "" || req.RoomID == "" {
		log.Printf("⚠️ Invalid create-private-chat payload from %s", id)
		return
	}

	invite := PrivateInvite{
		From:     id,
		FromName: rt.conns.Name(id),
		RoomID:   req.RoomID,
	}
	err := rt.dispatch.ToConn(req.TargetUserID, EventPrivateInvite, invite)
	if errors.Is(err, ErrConnectionNotFound) {
		_ = rt.dispatch.ToConn(id, EventMessage, Message{
			Author: SystemAuthor,
			Text:   fmt.Sprintf("User %s is not connected", req.TargetUserID),
		})
		return
	}

	_ = rt.dispatch.ToConn(id, EventMessage, Message{
		Author: SystemAuthor,
		Text:   fmt.Sprintf("Invite sent to %s", rt.conns.Name(req.TargetUserID)),
	})
}

type feedRecord struct {
	Room      string `json:"room"`
	Author    string `json:"author"`
	Text      string `json:"text"`
	IsPrivate bool   `json:"is_private"`
}

// publishToFeed mirrors a delivered room message onto the kafka feed topic
// for external consumers. Failures never reach chat clients.
func (rt *Router) publishToFeed(msg Message) {
	if rt.feed == nil {
		return
	}
	value, err := json.Marshal(feedRecord{
		Room:      msg.Room,
		Author:    msg.Author,
		Text:      msg.Text,
		IsPrivate: msg.IsPrivate,
	})
	if err != nil {
		log.Printf("⚠️ Feed record marshal error: %v", err)
		return
	}
	if err := rt.feed.Publish(value); err != nil {
		log.Printf("⚠️ Kafka publish error: %v", err)
	}
}
