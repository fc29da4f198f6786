package chat

import "sync"

// Conn is the per-connection send primitive provided by the transport.
// Send must not block: a slow consumer is the transport's problem, not the
// registry's.
type Conn interface {
	ID() string
	Send(event string, payload any) error
}

// User is one entry of the users snapshot broadcast to every client.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type connEntry struct {
	conn Conn
	name string
}

// ConnectionRegistry maps a connection id to its handle and optional
// display name. It owns the handle for the lifetime of the session.
type ConnectionRegistry struct {
	mu    sync.Mutex
	conns map[string]*connEntry
	order []string
}

func NewConnectionRegistry() *ConnectionRegistry {
	return &ConnectionRegistry{
		conns: make(map[string]*connEntry),
	}
}

// Add stores a freshly connected client. Re-adding the same id replaces the
// handle but keeps its position in the snapshot order.
func (r *ConnectionRegistry) Add(conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := conn.ID()
	if entry, ok := r.conns[id]; ok {
		entry.conn = conn
		return
	}
	r.conns[id] = &connEntry{conn: conn}
	r.order = append(r.order, id)
}

// Remove drops the entry for id. No-op if absent.
func (r *ConnectionRegistry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.conns[id]; !ok {
		return
	}
	delete(r.conns, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// SetName registers a display name for id. Empty names and unknown ids are
// ignored; re-registration overwrites. Returns whether anything changed.
func (r *ConnectionRegistry) SetName(id, name string) bool {
	if name == "" {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.conns[id]
	if !ok {
		return false
	}
	entry.name = name
	return true
}

// Name returns the registered display name, falling back to the id itself
// for unregistered connections.
func (r *ConnectionRegistry) Name(id string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.conns[id]; ok && entry.name != "" {
		return entry.name
	}
	return id
}

// Get returns the live handle for id.
func (r *ConnectionRegistry) Get(id string) (Conn, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.conns[id]
	if !ok {
		return nil, false
	}
	return entry.conn, true
}

// Snapshot lists every live connection in insertion order, with the id as
// the display label for anyone who never registered.
func (r *ConnectionRegistry) Snapshot() []User {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := make([]User, 0, len(r.order))
	for _, id := range r.order {
		entry := r.conns[id]
		name := entry.name
		if name == "" {
			name = id
		}
		users = append(users, User{ID: id, Name: name})
	}
	return users
}

// All returns every live handle in insertion order.
func (r *ConnectionRegistry) All() []Conn {
	r.mu.Lock()
	defer r.mu.Unlock()

	conns := make([]Conn, 0, len(r.order))
	for _, id := range r.order {
		conns = append(conns, r.conns[id].conn)
	}
	return conns
}
