// Package sqlite keeps a local history of every notification the console
// has seen, so history survives restarts and the backend pruning its own
// unread table.
package sqlite

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/alexandreCDB/sistema-de-ticket-frota-sub000/internal/core/domain"
	"github.com/alexandreCDB/sistema-de-ticket-frota-sub000/internal/core/ports"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Archive is the SQLite-backed notification history.
type Archive struct {
	db     *sqlx.DB
	logger *slog.Logger
}

var _ ports.NotificationArchive = (*Archive)(nil)

// NewArchive opens (or creates) the archive database at dbPath and brings
// its schema up to date.
func NewArchive(dbPath string, logger *slog.Logger) (*Archive, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening archive db: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running archive migrations: %w", err)
	}

	return &Archive{
		db:     db,
		logger: logger.With("component", "archive"),
	}, nil
}

func runMigrations(db *sqlx.DB) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("loading embedded migrations: %w", err)
	}

	driver, err := migratesqlite.WithInstance(db.DB, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("preparing migration driver: %w", err)
	}

	mig, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("initializing migrations: %w", err)
	}

	if err := mig.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

// Close closes the underlying database connection.
func (a *Archive) Close() error {
	return a.db.Close()
}

// Record stores a newly arrived notification. Replaying the same id
// overwrites the previous row, so reconnect replays do not duplicate
// history.
func (a *Archive) Record(ctx context.Context, n domain.Notification) error {
	_, err := a.db.ExecContext(ctx, `
		INSERT INTO notifications (id, kind, subject_id, display_text, target_route, received_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			kind = excluded.kind,
			subject_id = excluded.subject_id,
			display_text = excluded.display_text,
			target_route = excluded.target_route,
			received_at = excluded.received_at`,
		n.ID, string(n.Kind), n.SubjectID, n.DisplayText, n.TargetRoute, n.ReceivedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("recording notification %d: %w", n.ID, err)
	}
	return nil
}

// MarkRead stamps a notification as read. Marking an id the archive has
// never seen is a no-op.
func (a *Archive) MarkRead(ctx context.Context, notificationID int64) error {
	_, err := a.db.ExecContext(ctx,
		"UPDATE notifications SET read_at = ? WHERE id = ? AND read_at IS NULL",
		time.Now().UTC(), notificationID,
	)
	if err != nil {
		return fmt.Errorf("marking notification %d read: %w", notificationID, err)
	}
	return nil
}

// Recent returns the newest archived notifications, read or not, newest
// first.
func (a *Archive) Recent(ctx context.Context, limit int) ([]domain.ArchivedNotification, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := a.db.QueryxContext(ctx,
		"SELECT id, kind, subject_id, display_text, target_route, received_at, read_at FROM notifications ORDER BY received_at DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying archive: %w", err)
	}
	defer rows.Close()

	var archived []domain.ArchivedNotification
	for rows.Next() {
		var (
			item domain.ArchivedNotification
			kind string
		)
		err := rows.Scan(
			&item.ID, &kind, &item.SubjectID, &item.DisplayText,
			&item.TargetRoute, &item.ReceivedAt, &item.ReadAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning archive row: %w", err)
		}
		item.Kind = domain.EventKind(kind)
		archived = append(archived, item)
	}

	return archived, rows.Err()
}
