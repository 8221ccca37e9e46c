package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sweebapp/sweebguard/internal/logger"
	"github.com/sweebapp/sweebguard/internal/store"
	"github.com/sweebapp/sweebguard/internal/utils"
	"github.com/sweebapp/sweebguard/models"
)

// eventRecorder is the concrete implementation of EventRecorder.
//
// The recorder never holds a lock shared with the evaluation path: by the
// time Record runs, the decision is already made, so a slow or failing
// store cannot stall matching.
type eventRecorder struct {
	eventRepository store.EventRepository
	buffer          store.EventBuffer
	classifier      store.ErrorClassificator
	uuidGen         *utils.UUIDGenerator
	logger          *logger.Logger
}

// NewEventRecorder constructs an EventRecorder. buffer may be nil, in which
// case storage failures are surfaced directly without spilling.
func NewEventRecorder(eventRepository store.EventRepository, buffer store.EventBuffer, classifier store.ErrorClassificator, logger *logger.Logger) EventRecorder {
	return &eventRecorder{
		eventRepository: eventRepository,
		buffer:          buffer,
		classifier:      classifier,
		uuidGen:         utils.NewUUIDGenerator(),
		logger:          logger,
	}
}

// Record builds an immutable threat event from the decision and request
// context, assigns a server-side timestamp and a correlation ID, and
// persists it.
//
// Failure handling honours the never-silently-discard contract:
//   - primary store OK            → event returned with status "recorded";
//   - retryable store fault and a buffer is configured → event spilled
//     locally, returned with status "buffered" alongside ErrEventBuffered;
//   - anything else              → ErrRecordingFailed wrapping the cause.
//
// In every case the caller already holds the decision; recording failures
// are a separate signal and never change it.
func (r *eventRecorder) Record(ctx context.Context, decision models.Decision, req models.Request) (models.ThreatEvent, error) {
	log := logger.FromContext(ctx)

	event := models.ThreatEvent{
		CorrelationID: r.uuidGen.Generate(),
		URL:           req.FullURL(),
		Protocol:      req.Protocol,
		Host:          req.Host,
		Path:          req.Path,
		Status:        models.EventStatusRecorded,
		Timestamp:     time.Now().UTC(),
		ActionTaken:   decision.Action,
		Score:         decision.Score,
		Category:      decision.Category,
		DeviceID:      req.DeviceID,
	}

	saved, err := r.eventRepository.SaveEvent(ctx, event)
	if err == nil {
		return saved, nil
	}

	if r.buffer != nil && r.classifier.Classify(err) == store.Retryable {
		event.Status = models.EventStatusBuffered
		if bufErr := r.buffer.Push(ctx, event); bufErr == nil {
			log.Warn().Err(err).Str("correlation_id", event.CorrelationID).Msg("threat event spilled to local buffer")
			return event, fmt.Errorf("%w: %w", ErrEventBuffered, err)
		} else {
			log.Err(bufErr).Str("correlation_id", event.CorrelationID).Msg("threat event buffering failed")
		}
	}

	log.Err(err).Str("correlation_id", event.CorrelationID).Msg("threat event recording failed")

	return event, fmt.Errorf("%w: %w", ErrRecordingFailed, err)
}

// ListEvents returns the most recent events of one device.
func (r *eventRecorder) ListEvents(ctx context.Context, deviceID int64, limit int) ([]models.ThreatEvent, error) {
	return r.eventRepository.ListEventsByDevice(ctx, deviceID, limit)
}
