package service

import (
	"github.com/sweebapp/sweebguard/internal/config"
	"github.com/sweebapp/sweebguard/internal/engine"
	"github.com/sweebapp/sweebguard/internal/logger"
	"github.com/sweebapp/sweebguard/internal/store"
)

// Services aggregates every domain service exposed to the transport layer.
type Services struct {
	AuthService     AuthService
	PolicyService   PolicyService
	RuleService     RuleService
	EventRecorder   EventRecorder
	SettingsService SettingsService
}

// NewServices wires the full domain layer: one shared matcher/evaluator
// pair feeds both the policy service (evaluation) and the rule service
// (regex cache eviction on rule changes).
func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	matcher := engine.NewMatcher()
	evaluator := engine.NewEvaluator(matcher)

	recorder := NewEventRecorder(storages.EventRepository, storages.EventBuffer, storages.Classifier, logger)

	return &Services{
		AuthService:     NewAuthService(storages.UserRepository, storages.SettingsRepository, cfg.Auth, logger),
		PolicyService:   NewPolicyService(storages.RuleRepository, evaluator, recorder, cfg.Policy, logger),
		RuleService:     NewRuleService(storages.RuleRepository, matcher, logger),
		EventRecorder:   recorder,
		SettingsService: NewSettingsService(storages.SettingsRepository, logger),
	}
}
