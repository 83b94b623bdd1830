package ports

import (
	"context"

	"github.com/alexandreCDB/sistema-de-ticket-frota-sub000/internal/core/domain"
)

// NotificationAPI defines the port for the backend's notification endpoints,
// consumed by the notification store.
type NotificationAPI interface {
	UnreadNotifications(ctx context.Context, userID int64) ([]domain.NotificationRecord, error)
	MarkNotificationRead(ctx context.Context, notificationID int64) error
}

// Alerter raises the out-of-band cues for a freshly arrived notification:
// an audio cue and, where available, a desktop notification.
type Alerter interface {
	Alert(n domain.Notification)
}

// NotificationArchive defines the port for the local notification history.
// Archive failures are soft: the store logs and carries on.
type NotificationArchive interface {
	Record(ctx context.Context, n domain.Notification) error
	MarkRead(ctx context.Context, notificationID int64) error
	Recent(ctx context.Context, limit int) ([]domain.ArchivedNotification, error)
	Close() error
}

// FrameListener receives every raw frame that arrives on the WebSocket, in
// arrival order. Listeners must not block; heavy work belongs elsewhere.
type FrameListener func(frame []byte)

// EventSource defines the port the console uses to reach the realtime
// channel without depending on the transport package.
type EventSource interface {
	AddListener(l FrameListener)
	Connected() bool
}
