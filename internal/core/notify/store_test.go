package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/alexandreCDB/sistema-de-ticket-frota-sub000/internal/core/domain"
	apperrors "github.com/alexandreCDB/sistema-de-ticket-frota-sub000/internal/core/errors"
	"github.com/alexandreCDB/sistema-de-ticket-frota-sub000/internal/core/mocks"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func pushFrame(t *testing.T, frameType string, payload map[string]any) []byte {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	frame, err := json.Marshal(domain.PushFrame{Type: frameType, Message: raw})
	require.NoError(t, err)
	return frame
}

func TestStore_OnPush_PrependsAndCounts(t *testing.T) {
	store := NewStore(mocks.NewMockNotificationAPI(), testLogger())

	store.OnPush(pushFrame(t, "ticket_created", map[string]any{
		"id": 1, "ticket_id": 10, "message": "primeiro",
	}))
	store.OnPush(pushFrame(t, "ticket_message", map[string]any{
		"id": 2, "ticket_id": 10, "message": "segundo",
	}))

	unread := store.Unread()
	require.Len(t, unread, 2)
	require.Equal(t, int64(2), unread[0].ID, "newest first")
	require.Equal(t, int64(1), unread[1].ID)
	require.Equal(t, 2, store.Count())
	require.True(t, store.Animating())
}

func TestStore_OnPush_DropsDuplicates(t *testing.T) {
	store := NewStore(mocks.NewMockNotificationAPI(), testLogger())
	frame := pushFrame(t, "ticket_created", map[string]any{
		"id": 1, "ticket_id": 10, "message": "replay",
	})

	store.OnPush(frame)
	store.OnPush(frame)

	require.Len(t, store.Unread(), 1)
	require.Equal(t, 1, store.Count())
}

func TestStore_OnPush_IgnoresUnknownAndMalformed(t *testing.T) {
	store := NewStore(mocks.NewMockNotificationAPI(), testLogger())

	store.OnPush([]byte("{not json"))
	store.OnPush(pushFrame(t, "user_typing", map[string]any{"id": 1}))

	require.Empty(t, store.Unread())
	require.Equal(t, 0, store.Count())
	require.False(t, store.Animating())
}

func TestStore_OnPush_AlertsAndArchives(t *testing.T) {
	alerter := mocks.NewMockAlerter()
	archive := mocks.NewMockArchive()
	alerter.On("Alert", mock.AnythingOfType("domain.Notification")).Once()
	archive.On("Record", mock.Anything, mock.AnythingOfType("domain.Notification")).Return(nil).Once()

	store := NewStore(mocks.NewMockNotificationAPI(), testLogger(),
		WithAlerter(alerter),
		WithArchive(archive),
	)

	store.OnPush(pushFrame(t, "frota_return", map[string]any{
		"id": 4, "vehicle_id": 2, "message": "Veículo devolvido",
	}))

	alerter.AssertExpectations(t)
	archive.AssertExpectations(t)
}

func TestStore_LoadInitial_SeedsListAndDedup(t *testing.T) {
	msg := "Nova mensagem"
	api := mocks.NewMockNotificationAPI()
	api.On("UnreadNotifications", mock.Anything, int64(7)).Return([]domain.NotificationRecord{
		{ID: 1, UserID: 7, TicketID: 10, Message: &msg, NotificationType: "ticket_message"},
		{ID: 2, UserID: 7, TicketID: 11, NotificationType: "ticket_finish"},
		{ID: 3, UserID: 7, NotificationType: "unknown_kind"},
	}, nil).Once()

	store := NewStore(api, testLogger())
	require.NoError(t, store.LoadInitial(context.Background(), 7))

	unread := store.Unread()
	require.Len(t, unread, 2, "unknown kinds are skipped")
	require.Equal(t, 2, store.Count())

	// A push replaying a seeded id must not double count.
	store.OnPush(pushFrame(t, "ticket_message", map[string]any{
		"id": 1, "ticket_id": 10, "message": msg,
	}))
	require.Equal(t, 2, store.Count())
	api.AssertExpectations(t)
}

func TestStore_MarkAsRead_RemovesOnlyOnBackendSuccess(t *testing.T) {
	api := mocks.NewMockNotificationAPI()
	api.On("MarkNotificationRead", mock.Anything, int64(1)).Return(apperrors.ErrServer).Once()
	api.On("MarkNotificationRead", mock.Anything, int64(1)).Return(nil).Once()

	store := NewStore(api, testLogger())
	store.OnPush(pushFrame(t, "ticket_created", map[string]any{
		"id": 1, "ticket_id": 10, "message": "novo",
	}))

	require.Error(t, store.MarkAsRead(context.Background(), 1))
	require.Equal(t, 1, store.Count(), "failed ack leaves the notification unread")

	require.NoError(t, store.MarkAsRead(context.Background(), 1))
	require.Equal(t, 0, store.Count())
	require.Empty(t, store.Unread())
	api.AssertExpectations(t)
}

func TestStore_MarkAsRead_RevokesDedup(t *testing.T) {
	api := mocks.NewMockNotificationAPI()
	api.On("MarkNotificationRead", mock.Anything, int64(1)).Return(nil).Once()

	store := NewStore(api, testLogger())
	frame := pushFrame(t, "ticket_created", map[string]any{
		"id": 1, "ticket_id": 10, "message": "novo",
	})

	store.OnPush(frame)
	require.NoError(t, store.MarkAsRead(context.Background(), 1))

	// Once read, a replayed id is fresh information again.
	store.OnPush(frame)
	require.Equal(t, 1, store.Count())
	require.Len(t, store.Unread(), 1)
}

func TestStore_MarkAllAsRead_IsBestEffort(t *testing.T) {
	api := mocks.NewMockNotificationAPI()
	api.On("MarkNotificationRead", mock.Anything, int64(2)).Return(nil).Once()
	api.On("MarkNotificationRead", mock.Anything, int64(1)).Return(apperrors.ErrServer).Once()

	store := NewStore(api, testLogger())
	store.OnPush(pushFrame(t, "ticket_created", map[string]any{
		"id": 1, "ticket_id": 10, "message": "um",
	}))
	store.OnPush(pushFrame(t, "ticket_created", map[string]any{
		"id": 2, "ticket_id": 11, "message": "dois",
	}))

	err := store.MarkAllAsRead(context.Background())
	require.Error(t, err)

	unread := store.Unread()
	require.Len(t, unread, 1, "acked entries are removed, failed ones stay")
	require.Equal(t, int64(1), unread[0].ID)
	require.Equal(t, 1, store.Count())
	api.AssertExpectations(t)
}

func TestStore_ChangeHookFires(t *testing.T) {
	changes := 0
	store := NewStore(mocks.NewMockNotificationAPI(), testLogger(),
		WithChangeHook(func() { changes++ }),
	)

	store.OnPush(pushFrame(t, "ticket_created", map[string]any{
		"id": 1, "ticket_id": 10, "message": "novo",
	}))
	require.Equal(t, 1, changes)
}

func TestStore_AnimationClears(t *testing.T) {
	store := NewStore(mocks.NewMockNotificationAPI(), testLogger())
	store.OnPush(pushFrame(t, "ticket_created", map[string]any{
		"id": 1, "ticket_id": 10, "message": "novo",
	}))
	require.True(t, store.Animating())

	require.Eventually(t, func() bool {
		return !store.Animating()
	}, 3*time.Second, 50*time.Millisecond)
}
