package chat

import (
	"encoding/json"
	"errors"
	"strings"
)

// Inbound event names accepted by the router.
const (
	EventRegisterUser      = "register-user"
	EventJoin              = "join"
	EventLeave             = "leave"
	EventMessage           = "message"
	EventCreatePrivateChat = "create-private-chat"
)

// Outbound event names pushed to clients.
const (
	EventWelcome       = "welcome"
	EventUsers         = "users"
	EventPrivateInvite = "private-invite"
)

// SystemAuthor is the author attached to server-generated notices.
const SystemAuthor = "System"

// Message is the room-scoped chat payload. It is never stored; it exists
// only for the duration of a single dispatch.
type Message struct {
	Room      string `json:"room,omitempty"`
	Author    string `json:"author"`
	Text      string `json:"text"`
	IsPrivate bool   `json:"isPrivate,omitempty"`
}

// PrivateInvite is the one-to-one invitation pushed to the target of a
// create-private-chat event.
type PrivateInvite struct {
	From     string `json:"from"`
	FromName string `json:"fromName"`
	RoomID   string `json:"roomId"`
}

// JoinRequest is the canonical join shape. Clients may send either a bare
// room-name string or a structured object; ResolveJoinRequest folds both
// into this before the registries are touched.
type JoinRequest struct {
	Room      string `json:"room"`
	IsPrivate bool   `json:"isPrivate"`
}

type registerPayload struct {
	Name string `json:"name"`
}

type leavePayload struct {
	Room string `json:"room"`
}

type messagePayload struct {
	Room      string `json:"room"`
	Author    string `json:"author"`
	Text      string `json:"text"`
	IsPrivate bool   `json:"isPrivate"`
}

type privateChatPayload struct {
	TargetUserID string `json:"targetUserId"`
	RoomID       string `json:"roomId"`
}

var errEmptyRoom = errors.New("join payload resolves to an empty room")

// ResolveJoinRequest accepts the two join payload shapes on the wire and
// returns the canonical request. The empty-room case is an error so the
// caller can drop the event.
func ResolveJoinRequest(raw json.RawMessage) (JoinRequest, error) {
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		req := JoinRequest{Room: strings.TrimSpace(name)}
		if req.Room == "" {
			return JoinRequest{}, errEmptyRoom
		}
		return req, nil
	}

	var req JoinRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return JoinRequest{}, err
	}
	req.Room = strings.TrimSpace(req.Room)
	if req.Room == "" {
		return JoinRequest{}, errEmptyRoom
	}
	return req, nil
}
