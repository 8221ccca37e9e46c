package service

import (
	"context"

	"github.com/sweebapp/sweebguard/models"
)

// AuthService is the authentication gate of the domain layer. Credential
// verification stays inside: no method ever returns a password hash.
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)

	// Authenticate resolves a username/secret pair to an account.
	// Unknown usernames, wrong passwords, and disabled accounts all fail
	// with the same generic ErrInvalidCredentials so callers cannot
	// enumerate accounts.
	Authenticate(ctx context.Context, username, password string) (models.User, error)

	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)

	GetUser(ctx context.Context, userID int64) (models.User, error)
	UpdateEmail(ctx context.Context, userID int64, email string) error
}

// PolicyService resolves observed requests to decisions and records the
// resulting threat events.
type PolicyService interface {
	// EvaluateRequest loads the user's enabled rules, evaluates the
	// request first-match-wins, and records a threat event for the
	// decision. The returned decision is valid even when the returned
	// error is non-nil: recording failures (ErrEventBuffered,
	// ErrRecordingFailed) and evaluation defects are surfaced alongside
	// the decision, never instead of it.
	EvaluateRequest(ctx context.Context, userID int64, req models.Request) (models.Decision, error)
}

// RuleService manages a user's filtering rules. Patterns are validated at
// creation and on every update, so stored rules always satisfy the
// pattern-validity invariant.
type RuleService interface {
	CreateRule(ctx context.Context, userID int64, req models.CreateRuleRequest) (models.Rule, error)
	GetRule(ctx context.Context, userID, ruleID int64) (models.Rule, error)
	ListRules(ctx context.Context, userID int64) ([]models.Rule, error)
	UpdateRule(ctx context.Context, update models.RuleUpdate) (models.Rule, error)
	DeleteRule(ctx context.Context, userID, ruleID int64) error
}

// EventRecorder converts decisions into immutable threat events and hands
// them to persistence. A failing primary store never discards an event
// silently: the recorder spills to the local buffer when it can and always
// reports what happened.
type EventRecorder interface {
	Record(ctx context.Context, decision models.Decision, req models.Request) (models.ThreatEvent, error)
	ListEvents(ctx context.Context, deviceID int64, limit int) ([]models.ThreatEvent, error)
}

// SettingsService manages per-user agent preferences.
type SettingsService interface {
	GetSettings(ctx context.Context, userID int64) (models.UserSettings, error)
	UpdateSettings(ctx context.Context, settings models.UserSettings) error
}
