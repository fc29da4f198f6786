package chat

import (
	"errors"
	"log"
)

// ErrConnectionNotFound is returned by ToConn when the target of a direct
// send is no longer live.
var ErrConnectionNotFound = errors.New("connection not found")

// Dispatcher fans events out to rooms, single connections, or everyone.
// Delivery is fire-and-forget: send failures are logged and never surfaced
// to the caller, except for the missing-target case of ToConn.
type Dispatcher struct {
	conns *ConnectionRegistry
	rooms *RoomRegistry
}

func NewDispatcher(conns *ConnectionRegistry, rooms *RoomRegistry) *Dispatcher {
	return &Dispatcher{conns: conns, rooms: rooms}
}

// ToRoom delivers to every connection in room's member set as of the call.
// A room with no members is a silent no-op.
func (d *Dispatcher) ToRoom(room, event string, payload any) {
	d.ToRoomExcluding(room, "", event, payload)
}

// ToRoomExcluding delivers to the room like ToRoom but skips excludeID.
// Used for join notices so the joiner only gets its own confirmation.
func (d *Dispatcher) ToRoomExcluding(room, excludeID, event string, payload any) {
	for _, id := range d.rooms.Members(room) {
		if id == excludeID {
			continue
		}
		conn, ok := d.conns.Get(id)
		if !ok {
			continue
		}
		if err := conn.Send(event, payload); err != nil {
			log.Printf("⚠️ Send to %s in room %s failed: %v", id, room, err)
		}
	}
}

// ToConn delivers to exactly one connection.
func (d *Dispatcher) ToConn(id, event string, payload any) error {
	conn, ok := d.conns.Get(id)
	if !ok {
		return ErrConnectionNotFound
	}
	if err := conn.Send(event, payload); err != nil {
		log.Printf("⚠️ Send to %s failed: %v", id, err)
	}
	return nil
}

// ToAll delivers to every live connection.
func (d *Dispatcher) ToAll(event string, payload any) {
	for _, conn := range d.conns.All() {
		if err := conn.Send(event, payload); err != nil {
			log.Printf("⚠️ Send to %s failed: %v", conn.ID(), err)
		}
	}
}
