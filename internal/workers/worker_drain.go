package workers

import (
	"context"
	"time"

	"github.com/sweebapp/sweebguard/internal/config"
	"github.com/sweebapp/sweebguard/internal/logger"
	"github.com/sweebapp/sweebguard/internal/store"
	"github.com/sweebapp/sweebguard/models"
)

const (
	defaultDrainInterval  = 30 * time.Second
	defaultDrainBatchSize = 100
)

// DrainWorker periodically replays threat events from the local spill
// buffer into the primary store. Events land in the buffer only when the
// primary store was unavailable at recording time, so each pass is a bet
// that the store has recovered.
type DrainWorker struct {
	buffer     store.EventBuffer
	events     store.EventRepository
	classifier store.ErrorClassificator

	interval  time.Duration
	batchSize int

	stop chan struct{}
	done chan struct{}

	logger *logger.Logger
}

func NewDrainWorker(
	buffer store.EventBuffer,
	events store.EventRepository,
	classifier store.ErrorClassificator,
	cfg config.Workers,
	logger *logger.Logger,
) *DrainWorker {
	interval := cfg.DrainInterval
	if interval <= 0 {
		interval = defaultDrainInterval
	}

	batchSize := cfg.DrainBatchSize
	if batchSize <= 0 {
		batchSize = defaultDrainBatchSize
	}

	return &DrainWorker{
		buffer:     buffer,
		events:     events,
		classifier: classifier,
		interval:   interval,
		batchSize:  batchSize,
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run starts the drain loop in its own goroutine and returns immediately.
func (w *DrainWorker) Run() {
	w.logger.Info().
		Dur("interval", w.interval).
		Int("batch_size", w.batchSize).
		Msg("launching buffer drain worker")

	go w.loop()
}

// Stop signals the drain loop to exit and waits until it has finished its
// current pass.
func (w *DrainWorker) Stop() {
	close(w.stop)
	<-w.done
}

func (w *DrainWorker) loop() {
	defer close(w.done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
			w.drain(context.Background())
		}
	}
}

// drain replays one batch of buffered events. A retryable save failure ends
// the pass early: the primary store is still down and later events in the
// batch would fail the same way. Non-retryable failures mean the event
// itself is unacceptable to the store, so it is dropped from the buffer.
func (w *DrainWorker) drain(ctx context.Context) {
	buffered, err := w.buffer.Pull(ctx, w.batchSize)
	if err != nil {
		w.logger.Err(err).Msg("pulling buffered events ended with error")
		return
	}

	if len(buffered) == 0 {
		return
	}

	replayed := 0
	for _, item := range buffered {
		event := item.Event
		event.Status = models.EventStatusRecorded

		if _, err := w.events.SaveEvent(ctx, event); err != nil {
			if w.classifier.Classify(err) == store.Retryable {
				w.logger.Warn().Err(err).
					Int("replayed", replayed).
					Int("remaining", len(buffered)-replayed).
					Msg("primary store still unavailable, ending drain pass")
				return
			}

			w.logger.Err(err).
				Int64("buffer_id", item.BufferID).
				Str("correlation_id", item.Event.CorrelationID).
				Msg("buffered event rejected by primary store, dropping")
		}

		if err := w.buffer.Remove(ctx, item.BufferID); err != nil {
			w.logger.Err(err).
				Int64("buffer_id", item.BufferID).
				Msg("removing replayed event from buffer ended with error")
			return
		}

		replayed++
	}

	w.logger.Info().Int("replayed", replayed).Msg("buffer drain pass finished")
}
