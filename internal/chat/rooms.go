package chat

import (
	"errors"
	"sort"
	"sync"
)

// ErrInvalidRoom is returned when a join names an empty room.
var ErrInvalidRoom = errors.New("invalid room name")

// RoomInfo is the REST-facing summary of one room.
type RoomInfo struct {
	Name    string `json:"name"`
	Members int    `json:"members"`
}

// RoomRegistry maps room names to their member connection ids. Rooms are
// created lazily on first join and deleted when the last member leaves, so
// an empty room never persists.
type RoomRegistry struct {
	mu    sync.Mutex
	rooms map[string]map[string]struct{}
}

func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{
		rooms: make(map[string]map[string]struct{}),
	}
}

// Join adds id to room, creating the room if needed. Joining twice is a
// no-op, not an error.
func (r *RoomRegistry) Join(room, id string) error {
	if room == "" {
		return ErrInvalidRoom
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.rooms[room]
	if !ok {
		members = make(map[string]struct{})
		r.rooms[room] = members
	}
	members[id] = struct{}{}
	return nil
}

// Leave removes id from room and reports whether it was actually a member.
// A room emptied by the removal is deleted.
func (r *RoomRegistry) Leave(room, id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.rooms[room]
	if !ok {
		return false
	}
	if _, ok := members[id]; !ok {
		return false
	}
	delete(members, id)
	if len(members) == 0 {
		delete(r.rooms, room)
	}
	return true
}

// IsMember reports whether id has joined room.
func (r *RoomRegistry) IsMember(room, id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.rooms[room]
	if !ok {
		return false
	}
	_, ok = members[id]
	return ok
}

// RemoveFromAllRooms is the disconnect path: it visits every room once,
// removes id where present, and returns the rooms it was removed from so
// the caller can emit one departure notice per room. Emptied rooms are
// deleted.
func (r *RoomRegistry) RemoveFromAllRooms(id string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var left []string
	for room, members := range r.rooms {
		if _, ok := members[id]; !ok {
			continue
		}
		delete(members, id)
		left = append(left, room)
		if len(members) == 0 {
			delete(r.rooms, room)
		}
	}
	sort.Strings(left)
	return left
}

// Members returns a snapshot of the member ids of room. Unknown rooms
// yield nil.
func (r *RoomRegistry) Members(room string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.rooms[room]
	if !ok {
		return nil
	}
	ids := make([]string, 0, len(members))
	for id := range members {
		ids = append(ids, id)
	}
	return ids
}

// Summary lists every room with its member count, sorted by name.
func (r *RoomRegistry) Summary() []RoomInfo {
	r.mu.Lock()
	defer r.mu.Unlock()

	infos := make([]RoomInfo, 0, len(r.rooms))
	for room, members := range r.rooms {
		infos = append(infos, RoomInfo{Name: room, Members: len(members)})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}
