package notify

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/alexandreCDB/sistema-de-ticket-frota-sub000/internal/core/domain"
	"github.com/alexandreCDB/sistema-de-ticket-frota-sub000/internal/core/ports"
)

// animateFor is how long the bell highlight stays lit after a push.
const animateFor = time.Second

// Store owns the unread-notification state: a newest-first list, the set of
// ids already counted, and the visible unread count. All mutation goes
// through the store; consumers read snapshots.
//
// Every removal is confirmed by the backend before local state changes, so
// a failed mark-read leaves the notification visibly unread.
type Store struct {
	api     ports.NotificationAPI
	archive ports.NotificationArchive
	alerter ports.Alerter
	logger  *slog.Logger

	// onChange wakes the UI after any state mutation. Called without the
	// lock held.
	onChange func()

	mu          sync.Mutex
	items       []domain.Notification
	seen        map[int64]struct{}
	count       int
	animating   bool
	animateStop *time.Timer
}

// Option configures optional store collaborators.
type Option func(*Store)

// WithArchive attaches the local notification history.
func WithArchive(a ports.NotificationArchive) Option {
	return func(s *Store) { s.archive = a }
}

// WithAlerter attaches the audio/desktop alerter.
func WithAlerter(a ports.Alerter) Option {
	return func(s *Store) { s.alerter = a }
}

// WithChangeHook registers a callback fired after every state change.
func WithChangeHook(fn func()) Option {
	return func(s *Store) { s.onChange = fn }
}

// NewStore creates a notification store backed by the given API client.
func NewStore(api ports.NotificationAPI, logger *slog.Logger, opts ...Option) *Store {
	s := &Store{
		api:    api,
		logger: logger.With("component", "notification_store"),
		seen:   make(map[int64]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadInitial fetches the backend's current unread list and seeds the store.
// It runs once per session; pushes arriving afterwards layer on top.
func (s *Store) LoadInitial(ctx context.Context, userID int64) error {
	records, err := s.api.UnreadNotifications(ctx, userID)
	if err != nil {
		s.logger.Error("failed to load initial notifications", "user_id", userID, "error", err)
		return err
	}

	s.mu.Lock()
	s.items = s.items[:0]
	s.seen = make(map[int64]struct{}, len(records))
	for _, rec := range records {
		n, ok := NormalizeRecord(rec)
		if !ok {
			s.logger.Warn("skipping unread record of unknown type",
				"notification_id", rec.ID,
				"notification_type", rec.NotificationType,
			)
			continue
		}
		s.items = append(s.items, n)
		s.seen[n.ID] = struct{}{}
	}
	s.count = len(s.items)
	s.mu.Unlock()

	s.logger.Info("loaded unread notifications", "user_id", userID, "count", len(records))
	s.changed()
	return nil
}

// OnPush handles one raw frame from the WebSocket. It satisfies
// ports.FrameListener. Malformed frames are logged and dropped; the
// connection is unaffected. Duplicate ids are dropped silently: the same
// event may be delivered more than once, e.g. a backlog replay after a
// reconnect, and must increment the count exactly once.
func (s *Store) OnPush(raw []byte) {
	var frame domain.PushFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		s.logger.Warn("dropping malformed push frame", "error", err)
		return
	}

	n, ok := Normalize(frame)
	if !ok {
		s.logger.Debug("ignoring push frame", "type", frame.Type)
		return
	}
	n.ReceivedAt = time.Now()

	s.mu.Lock()
	if _, dup := s.seen[n.ID]; dup {
		s.mu.Unlock()
		s.logger.Debug("dropping duplicate notification", "notification_id", n.ID)
		return
	}
	s.seen[n.ID] = struct{}{}
	s.items = append([]domain.Notification{n}, s.items...)
	s.count++
	s.startAnimation()
	s.mu.Unlock()

	s.logger.Info("notification received",
		"notification_id", n.ID,
		"kind", n.Kind,
		"subject_id", n.SubjectID,
	)

	if s.alerter != nil {
		s.alerter.Alert(n)
	}
	if s.archive != nil {
		if err := s.archive.Record(context.Background(), n); err != nil {
			s.logger.Warn("failed to archive notification", "notification_id", n.ID, "error", err)
		}
	}
	s.changed()
}

// MarkAsRead acknowledges a single notification with the backend and, only
// on success, removes it locally. The id is also released from the seen
// set: once read, a replayed id is treated as fresh information rather than
// silently dropped.
func (s *Store) MarkAsRead(ctx context.Context, id int64) error {
	if err := s.api.MarkNotificationRead(ctx, id); err != nil {
		s.logger.Error("failed to mark notification as read", "notification_id", id, "error", err)
		return err
	}

	s.mu.Lock()
	s.removeLocked(id)
	s.mu.Unlock()

	if s.archive != nil {
		if err := s.archive.MarkRead(ctx, id); err != nil {
			s.logger.Warn("failed to stamp archive entry", "notification_id", id, "error", err)
		}
	}
	s.changed()
	return nil
}

// MarkAllAsRead acknowledges every listed notification, one call per entry
// (the backend has no batch endpoint). It is deliberately not atomic: each
// acknowledged entry is removed individually, failed ones stay listed, and
// the errors are joined into the return value.
func (s *Store) MarkAllAsRead(ctx context.Context) error {
	s.mu.Lock()
	pending := make([]int64, len(s.items))
	for i, n := range s.items {
		pending[i] = n.ID
	}
	s.mu.Unlock()

	var errs []error
	for _, id := range pending {
		if err := s.api.MarkNotificationRead(ctx, id); err != nil {
			s.logger.Error("failed to mark notification as read", "notification_id", id, "error", err)
			errs = append(errs, err)
			continue
		}

		s.mu.Lock()
		s.removeLocked(id)
		s.mu.Unlock()

		if s.archive != nil {
			if err := s.archive.MarkRead(ctx, id); err != nil {
				s.logger.Warn("failed to stamp archive entry", "notification_id", id, "error", err)
			}
		}
	}

	s.changed()
	return errors.Join(errs...)
}

// Unread returns a snapshot of the unread list, newest first.
func (s *Store) Unread() []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Notification, len(s.items))
	copy(out, s.items)
	return out
}

// Count returns the visible unread count.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// Animating reports whether the bell highlight is currently lit.
func (s *Store) Animating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.animating
}

// removeLocked deletes one id from the list, count and seen set. The count
// is floored at zero. Callers hold s.mu.
func (s *Store) removeLocked(id int64) {
	for i, n := range s.items {
		if n.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	if s.count > 0 {
		s.count--
	}
	delete(s.seen, id)
}

// startAnimation lights the bell highlight and arms the auto-clear timer.
// Callers hold s.mu.
func (s *Store) startAnimation() {
	s.animating = true
	if s.animateStop != nil {
		s.animateStop.Stop()
	}
	s.animateStop = time.AfterFunc(animateFor, func() {
		s.mu.Lock()
		s.animating = false
		s.mu.Unlock()
		s.changed()
	})
}

func (s *Store) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}
