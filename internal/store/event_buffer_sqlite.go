package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sweebapp/sweebguard/internal/config"
	"github.com/sweebapp/sweebguard/internal/logger"
	"github.com/sweebapp/sweebguard/models"
)

// bufferSchema is created at open time; the buffer is a plain local queue
// and does not share the goose migration pipeline of the primary store.
const bufferSchema = `CREATE TABLE IF NOT EXISTS event_buffer (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    correlation_id TEXT NOT NULL,
    url TEXT NOT NULL DEFAULT '',
    protocol TEXT NOT NULL DEFAULT '',
    host TEXT NOT NULL DEFAULT '',
    path TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL,
    occurred_at TIMESTAMP NOT NULL,
    action_taken TEXT NOT NULL,
    score INTEGER NOT NULL,
    category TEXT NOT NULL DEFAULT '',
    device_id INTEGER NOT NULL
);`

const (
	bufferPush = `INSERT INTO event_buffer (correlation_id, url, protocol, host, path, status, occurred_at, action_taken, score, category, device_id)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	bufferPull = `SELECT id, correlation_id, url, protocol, host, path, status, occurred_at, action_taken, score, category, device_id
    FROM event_buffer
    ORDER BY id ASC
    LIMIT ?;`

	bufferRemove = `DELETE FROM event_buffer WHERE id = ?;`
)

// sqliteEventBuffer is the SQLite-backed implementation of [EventBuffer].
// It keeps threat events on local disk while the primary store is
// unavailable so that a failing store never silently discards an audit
// record.
//
// The buffer deliberately shares no lock with the evaluation path; Push is
// called by the recorder after the decision has already been produced.
type sqliteEventBuffer struct {
	logger *logger.Logger

	mu     sync.Mutex
	db     *sql.DB
	closed bool
}

// NewSQLiteEventBuffer opens (creating if necessary) the spill buffer at
// the configured path.
func NewSQLiteEventBuffer(ctx context.Context, cfg config.Buffer, log *logger.Logger) (EventBuffer, error) {
	if err := createLocalDBFileIfNotExists(cfg.Path); err != nil {
		log.Err(err).Str("func", "NewSQLiteEventBuffer").Msg("error creating buffer file")
		return nil, fmt.Errorf("error creating buffer file: %w", err)
	}

	conn, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		log.Err(err).Str("func", "NewSQLiteEventBuffer").Msg("error opening buffer database")
		return nil, fmt.Errorf("error opening buffer database: %w", err)
	}

	if err := conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewSQLiteEventBuffer").Msg("error connecting buffer database (ping)")
		return nil, err
	}

	if _, err := conn.ExecContext(ctx, bufferSchema); err != nil {
		log.Err(err).Str("func", "NewSQLiteEventBuffer").Msg("error creating buffer schema")
		return nil, fmt.Errorf("error creating buffer schema: %w", err)
	}

	log.Debug().Str("path", cfg.Path).Msg("threat-event spill buffer ready")

	return &sqliteEventBuffer{db: conn, logger: log}, nil
}

// Push appends one event to the buffer.
func (b *sqliteEventBuffer) Push(ctx context.Context, event models.ThreatEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrBufferClosed
	}

	_, err := b.db.ExecContext(ctx, bufferPush,
		event.CorrelationID, event.URL, event.Protocol, event.Host, event.Path,
		event.Status, event.Timestamp, event.ActionTaken, event.Score, event.Category, event.DeviceID)
	if err != nil {
		return fmt.Errorf("error buffering threat event: %w", err)
	}

	return nil
}

// Pull returns up to limit buffered events in insertion order without
// removing them; the drain worker removes each one after a successful
// replay so a crash mid-drain loses nothing.
func (b *sqliteEventBuffer) Pull(ctx context.Context, limit int) ([]BufferedEvent, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrBufferClosed
	}

	if limit <= 0 {
		limit = 100
	}

	rows, err := b.db.QueryContext(ctx, bufferPull, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var buffered []BufferedEvent
	for rows.Next() {
		var item BufferedEvent
		event := &item.Event
		if err := rows.Scan(&item.BufferID, &event.CorrelationID, &event.URL, &event.Protocol, &event.Host, &event.Path,
			&event.Status, &event.Timestamp, &event.ActionTaken, &event.Score, &event.Category, &event.DeviceID); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		buffered = append(buffered, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return buffered, nil
}

// Remove deletes one replayed event from the buffer.
func (b *sqliteEventBuffer) Remove(ctx context.Context, bufferID int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrBufferClosed
	}

	if _, err := b.db.ExecContext(ctx, bufferRemove, bufferID); err != nil {
		return fmt.Errorf("error removing buffered event: %w", err)
	}

	return nil
}

// Close releases the underlying SQLite connection.
func (b *sqliteEventBuffer) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	return b.db.Close()
}

func createLocalDBFileIfNotExists(dbFile string) error {
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}

	return nil
}
