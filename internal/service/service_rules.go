package service

import (
	"context"
	"fmt"

	"github.com/sweebapp/sweebguard/internal/engine"
	"github.com/sweebapp/sweebguard/internal/logger"
	"github.com/sweebapp/sweebguard/internal/store"
	"github.com/sweebapp/sweebguard/models"
)

// ruleService is the concrete implementation of RuleService.
//
// Updates re-validate the resulting rule before it is stored, so an invalid
// pattern can never survive into evaluation; deletions also evict the
// rule's cached regex program.
type ruleService struct {
	ruleRepository store.RuleRepository
	matcher        *engine.Matcher
	logger         *logger.Logger
}

// NewRuleService constructs a RuleService. The matcher is the one used by
// the policy evaluator, so regex cache eviction reaches evaluation.
func NewRuleService(ruleRepository store.RuleRepository, matcher *engine.Matcher, logger *logger.Logger) RuleService {
	return &ruleService{
		ruleRepository: ruleRepository,
		matcher:        matcher,
		logger:         logger,
	}
}

// CreateRule validates and persists a new rule for the given owner.
// Invalid patterns are rejected here and never stored.
func (s *ruleService) CreateRule(ctx context.Context, userID int64, req models.CreateRuleRequest) (models.Rule, error) {
	log := logger.FromContext(ctx)

	rule, err := models.NewRule(userID, req.Name, req.Priority, req.Action, req.MatchType, req.Pattern)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Str("pattern", req.Pattern).Msg("rule validation failed")
		return models.Rule{}, err
	}
	rule.Category = req.Category

	created, err := s.ruleRepository.CreateRule(ctx, rule)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("rule creation ended with error")
		return models.Rule{}, fmt.Errorf("rule creation ended with error: %w", err)
	}

	return created, nil
}

// GetRule returns one rule scoped to its owner.
func (s *ruleService) GetRule(ctx context.Context, userID, ruleID int64) (models.Rule, error) {
	return s.ruleRepository.GetRule(ctx, userID, ruleID)
}

// ListRules returns all rules of the user in evaluation order.
func (s *ruleService) ListRules(ctx context.Context, userID int64) ([]models.Rule, error) {
	return s.ruleRepository.ListRules(ctx, userID)
}

// UpdateRule applies a partial update after checking that the resulting
// rule still satisfies the construction-time invariants. The pre-image is
// loaded, the update applied in memory, and the merged rule re-validated
// before anything reaches the database.
func (s *ruleService) UpdateRule(ctx context.Context, update models.RuleUpdate) (models.Rule, error) {
	log := logger.FromContext(ctx)

	current, err := s.ruleRepository.GetRule(ctx, update.UserID, update.ID)
	if err != nil {
		return models.Rule{}, err
	}

	merged := applyRuleUpdate(current, update)
	if err := merged.Validate(); err != nil {
		log.Err(err).Int64("rule_id", update.ID).Msg("rule update validation failed")
		return models.Rule{}, err
	}

	updated, err := s.ruleRepository.UpdateRule(ctx, update)
	if err != nil {
		log.Err(err).Int64("rule_id", update.ID).Msg("rule update ended with error")
		return models.Rule{}, fmt.Errorf("rule update ended with error: %w", err)
	}

	// Stale compiled program, if any, is replaced on next evaluation; drop
	// it eagerly so a pattern change takes effect immediately.
	s.matcher.Forget(updated.ID)

	return updated, nil
}

// DeleteRule removes a rule and evicts its cached regex program.
func (s *ruleService) DeleteRule(ctx context.Context, userID, ruleID int64) error {
	log := logger.FromContext(ctx)

	if err := s.ruleRepository.DeleteRule(ctx, userID, ruleID); err != nil {
		log.Err(err).Int64("rule_id", ruleID).Msg("rule deletion ended with error")
		return err
	}

	s.matcher.Forget(ruleID)

	return nil
}

func applyRuleUpdate(rule models.Rule, update models.RuleUpdate) models.Rule {
	if update.Name != nil {
		rule.Name = *update.Name
	}
	if update.Enabled != nil {
		rule.Enabled = *update.Enabled
	}
	if update.Priority != nil {
		rule.Priority = *update.Priority
	}
	if update.Action != nil {
		rule.Action = *update.Action
	}
	if update.Pattern != nil {
		rule.Pattern = *update.Pattern
	}
	if update.Category != nil {
		rule.Category = *update.Category
	}
	return rule
}
