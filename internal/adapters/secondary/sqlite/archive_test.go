package sqlite

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexandreCDB/sistema-de-ticket-frota-sub000/internal/core/domain"
)

func newTestArchive(t *testing.T) *Archive {
	t.Helper()
	archive, err := NewArchive(filepath.Join(t.TempDir(), "notifications.db"), slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(func() { archive.Close() })
	return archive
}

func sample(id int64, received time.Time) domain.Notification {
	return domain.Notification{
		ID:          id,
		Kind:        domain.KindTicketCreated,
		SubjectID:   42,
		DisplayText: "Novo ticket",
		TargetRoute: "/tickets/tickets/42",
		ReceivedAt:  received,
	}
}

func TestArchive_RecordAndRecent(t *testing.T) {
	archive := newTestArchive(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, archive.Record(ctx, sample(1, base)))
	require.NoError(t, archive.Record(ctx, sample(2, base.Add(time.Minute))))

	recent, err := archive.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	require.Equal(t, int64(2), recent[0].ID, "newest first")
	require.Equal(t, "Novo ticket", recent[0].DisplayText)
	require.Nil(t, recent[0].ReadAt)
}

func TestArchive_RecordIsIdempotentPerID(t *testing.T) {
	archive := newTestArchive(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, archive.Record(ctx, sample(1, base)))
	require.NoError(t, archive.Record(ctx, sample(1, base.Add(time.Hour))))

	recent, err := archive.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
}

func TestArchive_MarkRead(t *testing.T) {
	archive := newTestArchive(t)
	ctx := context.Background()

	require.NoError(t, archive.Record(ctx, sample(1, time.Now())))
	require.NoError(t, archive.MarkRead(ctx, 1))

	recent, err := archive.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	require.NotNil(t, recent[0].ReadAt)

	// Unknown ids are a no-op, not an error.
	require.NoError(t, archive.MarkRead(ctx, 99))
}

func TestArchive_RecentHonorsLimit(t *testing.T) {
	archive := newTestArchive(t)
	ctx := context.Background()
	base := time.Now().UTC()

	for i := int64(1); i <= 5; i++ {
		require.NoError(t, archive.Record(ctx, sample(i, base.Add(time.Duration(i)*time.Second))))
	}

	recent, err := archive.Recent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	require.Equal(t, int64(5), recent[0].ID)
}
