package store

import (
	"context"
	"time"

	"github.com/sweebapp/sweebguard/models"
)

// UserRepository is the persistence collaborator for user accounts.
// It covers credential lookup, account creation, and the named mutations
// the domain layer exposes (last-login touch, email update).
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	GetUserByID(ctx context.Context, userID int64) (models.User, error)
	TouchLastLogin(ctx context.Context, userID int64, at time.Time) error
	UpdateEmail(ctx context.Context, userID int64, email string) error
}

// RuleRepository is the persistence collaborator for filtering rules.
// ListEnabledRules returns only enabled rules ordered by priority, then
// creation time, then ID — the evaluation order contract.
type RuleRepository interface {
	CreateRule(ctx context.Context, rule models.Rule) (models.Rule, error)
	GetRule(ctx context.Context, userID, ruleID int64) (models.Rule, error)
	ListRules(ctx context.Context, userID int64) ([]models.Rule, error)
	ListEnabledRules(ctx context.Context, userID int64) ([]models.Rule, error)
	UpdateRule(ctx context.Context, update models.RuleUpdate) (models.Rule, error)
	DeleteRule(ctx context.Context, userID, ruleID int64) error
}

// EventRepository is the persistence collaborator for threat events.
type EventRepository interface {
	SaveEvent(ctx context.Context, event models.ThreatEvent) (models.ThreatEvent, error)
	ListEventsByDevice(ctx context.Context, deviceID int64, limit int) ([]models.ThreatEvent, error)
}

// SettingsRepository is the persistence collaborator for per-user settings.
type SettingsRepository interface {
	CreateSettings(ctx context.Context, settings models.UserSettings) error
	GetSettings(ctx context.Context, userID int64) (models.UserSettings, error)
	UpdateSettings(ctx context.Context, settings models.UserSettings) error
}

// EventBuffer is the local spill store for threat events that could not be
// written to the primary store. Push must succeed while the primary store
// is down; Pull and Remove are used by the drain worker to replay events.
type EventBuffer interface {
	Push(ctx context.Context, event models.ThreatEvent) error
	Pull(ctx context.Context, limit int) ([]BufferedEvent, error)
	Remove(ctx context.Context, bufferID int64) error
	Close() error
}

// BufferedEvent pairs a spilled threat event with its buffer-local ID used
// to remove it after a successful replay.
type BufferedEvent struct {
	BufferID int64
	Event    models.ThreatEvent
}

// ErrorClassificator classifies database errors as retryable or not.
// The threat-event recorder spills to the buffer only on retryable faults;
// non-retryable faults are surfaced directly.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
