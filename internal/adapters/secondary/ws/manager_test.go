package ws_test

import (
	"encoding/json"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexandreCDB/sistema-de-ticket-frota-sub000/internal/adapters/secondary/ws"
	"github.com/alexandreCDB/sistema-de-ticket-frota-sub000/internal/core/domain"
	apperrors "github.com/alexandreCDB/sistema-de-ticket-frota-sub000/internal/core/errors"
	"github.com/alexandreCDB/sistema-de-ticket-frota-sub000/internal/testutil"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestManager_ConnectIsIdempotent(t *testing.T) {
	backend := testutil.NewBackend(t)
	manager := ws.NewManager(backend.WSURL(), testLogger())
	defer manager.Disconnect()

	first, err := manager.Connect("token-a")
	require.NoError(t, err)
	require.True(t, manager.Connected())

	// A second connect with a different token returns the live socket
	// untouched.
	second, err := manager.Connect("token-b")
	require.NoError(t, err)
	require.Same(t, first, second)

	require.Eventually(t, func() bool {
		return backend.ConnCount() == 1
	}, 2*time.Second, 20*time.Millisecond)
}

func TestManager_DispatchesFramesInOrder(t *testing.T) {
	backend := testutil.NewBackend(t)
	manager := ws.NewManager(backend.WSURL(), testLogger())
	defer manager.Disconnect()

	var (
		mu     sync.Mutex
		frames []string
	)
	manager.AddListener(func(frame []byte) {
		var f domain.PushFrame
		require.NoError(t, json.Unmarshal(frame, &f))
		mu.Lock()
		frames = append(frames, f.Type)
		mu.Unlock()
	})

	_, err := manager.Connect("token")
	require.NoError(t, err)

	require.NoError(t, backend.Push("ticket_created", map[string]any{"id": 1}))
	require.NoError(t, backend.Push("ticket_message", map[string]any{"id": 2}))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(frames) == 2
	}, 2*time.Second, 20*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"ticket_created", "ticket_message"}, frames)
}

func TestManager_ReconnectsAfterAbnormalClose(t *testing.T) {
	backend := testutil.NewBackend(t)
	manager := ws.NewManager(backend.WSURL(), testLogger(),
		ws.WithReconnectDelay(50*time.Millisecond),
	)
	defer manager.Disconnect()

	_, err := manager.Connect("token")
	require.NoError(t, err)

	backend.DropConnections()

	require.Eventually(t, func() bool {
		return backend.ConnCount() == 1 && manager.Connected()
	}, 2*time.Second, 20*time.Millisecond)
}

func TestManager_DisconnectStopsReconnecting(t *testing.T) {
	backend := testutil.NewBackend(t)
	manager := ws.NewManager(backend.WSURL(), testLogger(),
		ws.WithReconnectDelay(50*time.Millisecond),
	)

	_, err := manager.Connect("token")
	require.NoError(t, err)

	manager.Disconnect()
	require.False(t, manager.Connected())

	// Give any stray reconnect timer time to fire.
	time.Sleep(200 * time.Millisecond)
	require.False(t, manager.Connected())
	require.Eventually(t, func() bool {
		return backend.ConnCount() == 0
	}, 2*time.Second, 20*time.Millisecond)
}

func TestManager_DisconnectDuringReconnectWindow(t *testing.T) {
	backend := testutil.NewBackend(t)
	manager := ws.NewManager(backend.WSURL(), testLogger(),
		ws.WithReconnectDelay(40*time.Millisecond),
	)

	_, err := manager.Connect("token")
	require.NoError(t, err)

	// Drop the socket so a reconnect gets armed, then disconnect while
	// the timer is in flight. The cleared token must stay cleared: the
	// pending attempt may not resurrect the connection.
	backend.DropConnections()
	time.Sleep(30 * time.Millisecond)
	manager.Disconnect()

	time.Sleep(200 * time.Millisecond)
	require.False(t, manager.Connected())
	require.Eventually(t, func() bool {
		return backend.ConnCount() == 0
	}, 2*time.Second, 20*time.Millisecond)
}

func TestManager_ReconnectsAfterFailedDial(t *testing.T) {
	backend := testutil.NewBackend(t)

	// Point at a dead port first; the manager keeps the token and retries.
	manager := ws.NewManager("ws://127.0.0.1:1", testLogger(),
		ws.WithReconnectDelay(50*time.Millisecond),
	)
	defer manager.Disconnect()

	_, err := manager.Connect("token")
	require.Error(t, err)
	require.False(t, manager.Connected())

	// The retry loop stays alive; a connect against the real backend works.
	manager.Disconnect()
	live := ws.NewManager(backend.WSURL(), testLogger())
	defer live.Disconnect()
	_, err = live.Connect("token")
	require.NoError(t, err)
}

func TestManager_SendRequiresConnection(t *testing.T) {
	manager := ws.NewManager("ws://127.0.0.1:1", testLogger())
	err := manager.Send(map[string]string{"type": "ping"})
	require.ErrorIs(t, err, apperrors.ErrNotConnected)
}
