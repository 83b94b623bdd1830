// Package testutil hosts an in-process stand-in for the ticket/frota
// backend, serving just enough of its HTTP and WebSocket surface for the
// client packages to be tested against real network round trips.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"

	"github.com/alexandreCDB/sistema-de-ticket-frota-sub000/internal/core/domain"
)

const testSigningKey = "test-signing-key"

// Backend is the fake server. State is mutable from tests; the zero value
// is not usable, use NewBackend.
type Backend struct {
	Server *httptest.Server

	mu       sync.Mutex
	user     domain.SessionUser
	password string
	unread   []domain.NotificationRecord
	read     []int64
	failRead map[int64]int // notification id -> status to fail with

	upgrader websocket.Upgrader

	connMu sync.Mutex
	conns  []*websocket.Conn
}

// NewBackend starts a fake backend with one known user.
func NewBackend(t interface{ Cleanup(func()) }) *Backend {
	b := &Backend{
		user: domain.SessionUser{
			ID:      7,
			Email:   "admin@example.com",
			IsAdmin: true,
		},
		password: "s3cret",
		failRead: make(map[int64]int),
		upgrader: websocket.Upgrader{},
	}

	r := chi.NewRouter()
	r.Post("/auth/login", b.handleLogin)
	r.Post("/auth/logout", b.handleLogout)
	r.Get("/ticket/users/me/", b.handleMe)
	r.Get("/ticket/notifications/unread/{userID}", b.handleUnread)
	r.Patch("/ticket/notifications/read/{notificationID}", b.handleMarkRead)
	r.Get("/ws", b.handleWS)

	b.Server = httptest.NewServer(r)
	t.Cleanup(b.Close)
	return b
}

// Close shuts the server and every accepted WebSocket down.
func (b *Backend) Close() {
	b.connMu.Lock()
	for _, c := range b.conns {
		_ = c.Close()
	}
	b.conns = nil
	b.connMu.Unlock()
	b.Server.Close()
}

// URL returns the backend's http base URL.
func (b *Backend) URL() string {
	return b.Server.URL
}

// WSURL returns the backend's ws base URL.
func (b *Backend) WSURL() string {
	return "ws" + strings.TrimPrefix(b.Server.URL, "http")
}

// SeedUnread replaces the unread list served by the REST endpoint.
func (b *Backend) SeedUnread(records []domain.NotificationRecord) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.unread = records
}

// FailMarkRead makes marking the given id fail with status.
func (b *Backend) FailMarkRead(id int64, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failRead[id] = status
}

// ReadIDs returns the ids acknowledged so far, in call order.
func (b *Backend) ReadIDs() []int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]int64, len(b.read))
	copy(out, b.read)
	return out
}

// Push sends one frame to every connected WebSocket client.
func (b *Backend) Push(frameType string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	frame, err := json.Marshal(domain.PushFrame{Type: frameType, Message: raw})
	if err != nil {
		return err
	}

	b.connMu.Lock()
	defer b.connMu.Unlock()
	for _, c := range b.conns {
		if err := c.WriteMessage(websocket.TextMessage, frame); err != nil {
			return err
		}
	}
	return nil
}

// DropConnections abnormally closes every accepted WebSocket, as a crashed
// backend would.
func (b *Backend) DropConnections() {
	b.connMu.Lock()
	defer b.connMu.Unlock()
	for _, c := range b.conns {
		_ = c.Close()
	}
	b.conns = nil
}

// ConnCount reports how many WebSocket clients are currently accepted.
func (b *Backend) ConnCount() int {
	b.connMu.Lock()
	defer b.connMu.Unlock()
	return len(b.conns)
}

// Token mints an access token the way the real backend does: the user id
// stringified into sub, an exp, and nothing else.
func (b *Backend) Token() string {
	claims := jwt.MapClaims{
		"sub": strconv.FormatInt(b.user.ID, 10),
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, _ := token.SignedString([]byte(testSigningKey))
	return signed
}

func (b *Backend) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeDetail(w, http.StatusBadRequest, "malformed form")
		return
	}

	b.mu.Lock()
	ok := r.PostFormValue("username") == b.user.Email && r.PostFormValue("password") == b.password
	email := b.user.Email
	b.mu.Unlock()

	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Incorrect email or password")
		return
	}

	writeJSON(w, http.StatusOK, domain.Token{
		AccessToken: b.Token(),
		TokenType:   "bearer",
		UserEmail:   email,
	})
}

func (b *Backend) handleLogout(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (b *Backend) handleMe(w http.ResponseWriter, r *http.Request) {
	if !b.authorized(r) {
		writeDetail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	b.mu.Lock()
	user := b.user
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, user)
}

func (b *Backend) handleUnread(w http.ResponseWriter, r *http.Request) {
	if !b.authorized(r) {
		writeDetail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid user id")
		return
	}

	b.mu.Lock()
	records := make([]domain.NotificationRecord, 0, len(b.unread))
	for _, rec := range b.unread {
		if rec.UserID == userID {
			records = append(records, rec)
		}
	}
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, records)
}

func (b *Backend) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	if !b.authorized(r) {
		writeDetail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "notificationID"), 10, 64)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid notification id")
		return
	}

	b.mu.Lock()
	if status, fail := b.failRead[id]; fail {
		b.mu.Unlock()
		writeDetail(w, status, "cannot mark notification")
		return
	}
	b.read = append(b.read, id)
	for i, rec := range b.unread {
		if rec.ID == id {
			b.unread = append(b.unread[:i], b.unread[i+1:]...)
			break
		}
	}
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (b *Backend) handleWS(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("token") == "" {
		writeDetail(w, http.StatusUnauthorized, "missing token")
		return
	}

	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	b.connMu.Lock()
	b.conns = append(b.conns, conn)
	b.connMu.Unlock()

	// Drain the connection so client close frames are processed, and drop
	// it from the accepted set once it dies.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
		b.connMu.Lock()
		for i, c := range b.conns {
			if c == conn {
				b.conns = append(b.conns[:i], b.conns[i+1:]...)
				break
			}
		}
		b.connMu.Unlock()
	}()
}

func (b *Backend) authorized(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
