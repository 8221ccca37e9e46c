package workers

import (
	"github.com/sweebapp/sweebguard/internal/config"
	"github.com/sweebapp/sweebguard/internal/logger"
	"github.com/sweebapp/sweebguard/internal/store"
)

type Workers struct {
	workers []Worker
}

// NewWorkers assembles every background worker the server runs. The buffer
// drain worker is created only when a spill buffer is configured.
func NewWorkers(storages *store.Storages, cfg config.Workers, logger *logger.Logger) *Workers {
	w := new(Workers)

	if storages.EventBuffer != nil {
		w.workers = append(w.workers, NewDrainWorker(
			storages.EventBuffer,
			storages.EventRepository,
			storages.Classifier,
			cfg,
			logger,
		))
	}

	return w
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}

// Stop signals every stoppable worker to finish its current pass and exit.
func (w *Workers) Stop() {
	for _, worker := range w.workers {
		if stoppable, ok := worker.(interface{ Stop() }); ok {
			stoppable.Stop()
		}
	}
}
