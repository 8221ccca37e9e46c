package store

import (
	"context"
	"fmt"

	"github.com/sweebapp/sweebguard/internal/logger"
	"github.com/sweebapp/sweebguard/models"
)

// eventRepository is the PostgreSQL-backed implementation of
// [EventRepository]. Threat events are append-only: there is no update path
// by design, the audit record is immutable after creation.
type eventRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewEventRepository constructs an [EventRepository] backed by the provided
// database connection and logger.
func NewEventRepository(db *DB, logger *logger.Logger) EventRepository {
	logger.Debug().Msg("creating event repository")
	return &eventRepository{
		db:     db,
		logger: logger,
	}
}

// SaveEvent persists a threat event and returns it with the server-assigned
// ID. The caller owns retry policy; this method reports failures as-is so
// that the recorder can classify them.
func (r *eventRepository) SaveEvent(ctx context.Context, event models.ThreatEvent) (models.ThreatEvent, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, saveEvent,
		event.CorrelationID, event.URL, event.Protocol, event.Host, event.Path,
		event.Status, event.Timestamp, event.ActionTaken, event.Score, event.Category, event.DeviceID)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*eventRepository.SaveEvent").Msg("error: row is nil")
		return models.ThreatEvent{}, fmt.Errorf("%w: %w", ErrEventNotSaved, err)
	}

	if err := row.Scan(&event.ID); err != nil {
		log.Err(err).Str("func", "*eventRepository.SaveEvent").Msg("error: scanning error")
		return models.ThreatEvent{}, fmt.Errorf("%w: %w", ErrEventNotSaved, err)
	}

	return event, nil
}

// ListEventsByDevice returns the most recent events of one device, newest
// first. A non-positive limit falls back to 100.
func (r *eventRepository) ListEventsByDevice(ctx context.Context, deviceID int64, limit int) ([]models.ThreatEvent, error) {
	log := logger.FromContext(ctx)

	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.QueryContext(ctx, listEventsByDevice, deviceID, limit)
	if err != nil {
		log.Err(err).Str("func", "*eventRepository.ListEventsByDevice").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var events []models.ThreatEvent
	for rows.Next() {
		var event models.ThreatEvent
		if err := rows.Scan(&event.ID, &event.CorrelationID, &event.URL, &event.Protocol, &event.Host, &event.Path,
			&event.Status, &event.Timestamp, &event.ActionTaken, &event.Score, &event.Category, &event.DeviceID); err != nil {
			log.Err(err).Str("func", "*eventRepository.ListEventsByDevice").Msg("error scanning rows")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return events, nil
}
