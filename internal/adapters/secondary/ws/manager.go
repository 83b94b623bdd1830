package ws

import (
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	apperrors "github.com/alexandreCDB/sistema-de-ticket-frota-sub000/internal/core/errors"
	"github.com/alexandreCDB/sistema-de-ticket-frota-sub000/internal/core/ports"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Fixed delay before the single reconnect attempt after an abnormal
	// close. No backoff, no jitter, no retry cap: each failed attempt
	// closes abnormally and schedules the next one.
	defaultReconnectDelay = 3 * time.Second

	handshakeTimeout = 10 * time.Second
)

// Manager owns the process-wide WebSocket connection to the backend's /ws
// endpoint: at most one live socket, lazily dialed, auto-reconnecting while
// a token is held. It is constructed once and injected into whatever needs
// the realtime channel.
type Manager struct {
	baseURL string
	delay   time.Duration
	dialer  *websocket.Dialer
	logger  *slog.Logger

	// mu protects conn, token, reconnect and listeners.
	mu        sync.Mutex
	conn      *websocket.Conn
	token     string
	reconnect *time.Timer
	listeners []ports.FrameListener

	// writeMu serializes writes; gorilla connections allow one writer.
	writeMu sync.Mutex
}

// Ensure Manager implements the EventSource port.
var _ ports.EventSource = (*Manager)(nil)

// Option configures a Manager.
type Option func(*Manager)

// WithReconnectDelay overrides the reconnect delay. Used by tests; the
// production value is fixed.
func WithReconnectDelay(d time.Duration) Option {
	return func(m *Manager) { m.delay = d }
}

// WithBufferSizes sets the dialer's read and write buffer sizes.
func WithBufferSizes(read, write int) Option {
	return func(m *Manager) {
		m.dialer.ReadBufferSize = read
		m.dialer.WriteBufferSize = write
	}
}

// NewManager creates a connection manager for the given WebSocket base URL
// (e.g. ws://host:8000/api). No connection is opened until Connect.
func NewManager(baseURL string, logger *slog.Logger, opts ...Option) *Manager {
	m := &Manager{
		baseURL: baseURL,
		delay:   defaultReconnectDelay,
		dialer:  &websocket.Dialer{HandshakeTimeout: handshakeTimeout},
		logger:  logger.With("component", "websocket_manager"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Connect opens the WebSocket using token for the handshake. If a socket is
// already open it is returned unchanged; otherwise the token is stored for
// reconnects, any pending reconnect attempt is cancelled, and a new socket
// is dialed. A dial failure schedules a reconnect the same way an abnormal
// close does.
func (m *Manager) Connect(token string) (*websocket.Conn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.conn != nil {
		return m.conn, nil
	}

	m.token = token
	if m.reconnect != nil {
		m.reconnect.Stop()
		m.reconnect = nil
	}
	return m.dialLocked()
}

// dialLocked opens a socket with the stored token. Callers hold m.mu. A
// dial failure schedules the next reconnect attempt.
func (m *Manager) dialLocked() (*websocket.Conn, error) {
	endpoint := m.baseURL + "/ws?token=" + url.QueryEscape(m.token)
	conn, _, err := m.dialer.Dial(endpoint, nil)
	if err != nil {
		m.logger.Error("websocket dial failed", "error", err)
		m.scheduleReconnectLocked()
		return nil, err
	}

	m.conn = conn
	m.logger.Info("websocket connected", "url", m.baseURL+"/ws")

	go m.readLoop(conn)
	return conn, nil
}

// Disconnect tears the connection down intentionally: the pending reconnect
// is cancelled and the token cleared first, so the close that follows never
// schedules another attempt. The socket is closed with the normal-closure
// code.
func (m *Manager) Disconnect() {
	m.mu.Lock()
	if m.reconnect != nil {
		m.reconnect.Stop()
		m.reconnect = nil
	}
	m.token = ""
	conn := m.conn
	m.conn = nil
	m.mu.Unlock()

	if conn == nil {
		return
	}

	m.writeMu.Lock()
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait)); err != nil {
		m.logger.Debug("failed to send close message", "error", err)
	}
	m.writeMu.Unlock()

	_ = conn.Close()
	m.logger.Info("websocket disconnected")
}

// Conn returns the current socket, or nil. It never dials.
func (m *Manager) Conn() *websocket.Conn {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.conn
}

// Connected reports whether a socket is currently open.
func (m *Manager) Connected() bool {
	return m.Conn() != nil
}

// Send writes v as a JSON message to the open socket.
func (m *Manager) Send(v any) error {
	conn := m.Conn()
	if conn == nil {
		m.logger.Warn("send attempted without an open websocket")
		return apperrors.ErrNotConnected
	}

	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(v)
}

// AddListener registers a listener for every incoming frame. Listeners are
// invoked in registration order, on the read-loop goroutine, in frame
// arrival order.
func (m *Manager) AddListener(l ports.FrameListener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, l)
}

// readLoop pumps frames from one socket until it fails, then routes the
// close through the reconnect policy. It runs in its own goroutine, one per
// dialed socket.
func (m *Manager) readLoop(conn *websocket.Conn) {
	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			m.handleClose(conn, err)
			return
		}

		m.logger.Debug("frame received", "bytes", len(frame))

		m.mu.Lock()
		listeners := make([]ports.FrameListener, len(m.listeners))
		copy(listeners, m.listeners)
		m.mu.Unlock()

		for _, l := range listeners {
			l(frame)
		}
	}
}

// handleClose is the sole recovery path. A normal closure, or any close
// after the token was cleared, ends the session; everything else schedules
// exactly one reconnect attempt with the stored token.
func (m *Manager) handleClose(conn *websocket.Conn, err error) {
	_ = conn.Close()

	m.mu.Lock()
	defer m.mu.Unlock()

	// A stale socket's close must not disturb a newer connection.
	if m.conn == conn {
		m.conn = nil
	} else if m.conn != nil {
		return
	}

	if websocket.IsCloseError(err, websocket.CloseNormalClosure) || m.token == "" {
		m.logger.Info("websocket closed", "error", err)
		return
	}

	m.logger.Warn("websocket closed abnormally", "error", err, "reconnect_in", m.delay)
	m.scheduleReconnectLocked()
}

// scheduleReconnectLocked arms the single reconnect timer. Callers hold
// m.mu. The fired callback dials only while it is still the current timer:
// a Disconnect between the timer firing and the callback taking the lock
// clears m.reconnect, and a stale callback must not re-dial with a token
// that was already cleared.
func (m *Manager) scheduleReconnectLocked() {
	if m.reconnect != nil {
		m.reconnect.Stop()
	}
	var timer *time.Timer
	timer = time.AfterFunc(m.delay, func() {
		m.mu.Lock()
		defer m.mu.Unlock()

		if m.reconnect != timer || m.token == "" || m.conn != nil {
			return
		}
		m.reconnect = nil
		if _, err := m.dialLocked(); err != nil {
			m.logger.Error("reconnect attempt failed", "error", err)
		}
	})
	m.reconnect = timer
}
