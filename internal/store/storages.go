package store

import (
	"context"

	"github.com/sweebapp/sweebguard/internal/config"
	"github.com/sweebapp/sweebguard/internal/logger"
)

// Storages aggregates every persistence collaborator the service layer
// consumes. Handles are explicit and scoped: each repository receives its
// connection at construction, there is no process-wide database state.
type Storages struct {
	UserRepository     UserRepository
	RuleRepository     RuleRepository
	EventRepository    EventRepository
	SettingsRepository SettingsRepository

	// EventBuffer is nil when no buffer path is configured; the recorder
	// then surfaces storage failures directly instead of spilling.
	EventBuffer EventBuffer

	// Classifier tells transient primary-store faults from permanent ones.
	Classifier ErrorClassificator
}

// NewStorages connects to the primary database, applies migrations, opens
// the optional spill buffer, and wires all repositories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		return nil, err
	}

	storages := &Storages{
		UserRepository:     NewUserRepository(db, log),
		RuleRepository:     NewRuleRepository(db, log),
		EventRepository:    NewEventRepository(db, log),
		SettingsRepository: NewSettingsRepository(db, log),
		Classifier:         db.Classifier(),
	}

	if cfg.Buffer.Path != "" {
		buffer, err := NewSQLiteEventBuffer(ctx, cfg.Buffer, log)
		if err != nil {
			return nil, err
		}
		storages.EventBuffer = buffer
	}

	return storages, nil
}
