package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/iceddrop/socketpractice-nestjs/internal/chat"
)

type stubConn struct {
	id string

	mu   sync.Mutex
	msgs []chat.Message
}

func (s *stubConn) ID() string { return s.id }

func (s *stubConn) Send(event string, payload any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if msg, ok := payload.(chat.Message); ok {
		s.msgs = append(s.msgs, msg)
	}
	return nil
}

type fixture struct {
	engine *gin.Engine
	conns  *chat.ConnectionRegistry
	rooms  *chat.RoomRegistry
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conns := chat.NewConnectionRegistry()
	rooms := chat.NewRoomRegistry()
	dispatch := chat.NewDispatcher(conns, rooms)
	router := chat.NewRouter(conns, rooms, dispatch, nil)
	return fixture{
		engine: SetupRouter(router, conns, rooms, dispatch),
		conns:  conns,
		rooms:  rooms,
	}
}

func (f fixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	f := newFixture(t)
	w := f.do(t, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestListRoomsReflectsRegistry(t *testing.T) {
	f := newFixture(t)
	f.conns.Add(&stubConn{id: "conn-1"})
	if err := f.rooms.Join("lobby", "conn-1"); err != nil {
		t.Fatal(err)
	}

	w := f.do(t, http.MethodGet, "/rooms", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp struct {
		Rooms []chat.RoomInfo `json:"rooms"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Rooms) != 1 || resp.Rooms[0].Name != "lobby" || resp.Rooms[0].Members != 1 {
		t.Fatalf("rooms = %+v", resp.Rooms)
	}
}

func TestListUsersReturnsSnapshot(t *testing.T) {
	f := newFixture(t)
	f.conns.Add(&stubConn{id: "conn-1"})
	f.conns.SetName("conn-1", "Alice")

	w := f.do(t, http.MethodGet, "/users", "")

	var resp struct {
		Users []chat.User `json:"users"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Users) != 1 || resp.Users[0].Name != "Alice" {
		t.Fatalf("users = %+v", resp.Users)
	}
}

func TestInjectMessageDeliversToMembers(t *testing.T) {
	f := newFixture(t)
	member := &stubConn{id: "conn-1"}
	f.conns.Add(member)
	if err := f.rooms.Join("lobby", "conn-1"); err != nil {
		t.Fatal(err)
	}

	w := f.do(t, http.MethodPost, "/rooms/lobby/message", `{"text":"announcement"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	member.mu.Lock()
	defer member.mu.Unlock()
	if len(member.msgs) != 1 {
		t.Fatalf("member received %d messages, want 1", len(member.msgs))
	}
	if member.msgs[0].Author != chat.SystemAuthor || member.msgs[0].Text != "announcement" {
		t.Fatalf("message = %+v", member.msgs[0])
	}
}

func TestInjectMessageRejectsEmptyText(t *testing.T) {
	f := newFixture(t)
	w := f.do(t, http.MethodPost, "/rooms/lobby/message", `{"text":""}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
