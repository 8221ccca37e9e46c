// Package adapter provides the client-side SDK used by the desktop agent to
// talk to the sweebguard server.
//
// The primary abstraction is [ServerAdapter], which decouples the agent from
// the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPServerAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/sweebapp/sweebguard/models"
)

// ServerAdapter defines transport-agnostic communication with the sweebguard
// server. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel
// values defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent authenticated requests. It is called automatically after
	// a successful Register or Login.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or
	// an empty string if no token has been set yet.
	Token() string

	// Register creates an account and stores the returned bearer token.
	Register(ctx context.Context, req models.RegisterRequest) error

	// Login authenticates and stores the returned bearer token.
	Login(ctx context.Context, req models.LoginRequest) error

	// GetUser returns the authenticated account.
	GetUser(ctx context.Context) (models.User, error)

	// UpdateEmail changes the authenticated account's email address.
	UpdateEmail(ctx context.Context, email string) error

	// CreateRule adds a filtering rule for the authenticated user.
	CreateRule(ctx context.Context, req models.CreateRuleRequest) (models.Rule, error)

	// ListRules returns the user's rules in evaluation order.
	ListRules(ctx context.Context) ([]models.Rule, error)

	// GetRule returns one rule by ID.
	GetRule(ctx context.Context, ruleID int64) (models.Rule, error)

	// UpdateRule applies a partial update and returns the updated rule.
	UpdateRule(ctx context.Context, update models.RuleUpdate) (models.Rule, error)

	// DeleteRule removes a rule.
	DeleteRule(ctx context.Context, ruleID int64) error

	// Evaluate resolves an observed request to a decision. The decision is
	// authoritative even when the server reports the threat event was only
	// buffered.
	Evaluate(ctx context.Context, req models.Request) (models.EvaluateResponse, error)

	// ListEvents returns the most recent threat events of one device.
	ListEvents(ctx context.Context, deviceID int64, limit int) ([]models.ThreatEvent, error)

	// GetSettings returns the authenticated user's agent settings.
	GetSettings(ctx context.Context) (models.UserSettings, error)

	// UpdateSettings replaces the authenticated user's agent settings.
	UpdateSettings(ctx context.Context, settings models.UserSettings) error
}
