package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sweebapp/sweebguard/internal/config"
	"github.com/sweebapp/sweebguard/internal/engine"
	"github.com/sweebapp/sweebguard/internal/logger"
	"github.com/sweebapp/sweebguard/internal/store"
	"github.com/sweebapp/sweebguard/models"
)

// policyService is the concrete implementation of PolicyService. It is the
// seam between the pure engine and the persistence collaborators: rules in,
// decision out, event recorded.
type policyService struct {
	ruleRepository store.RuleRepository
	evaluator      *engine.Evaluator
	recorder       EventRecorder

	// recordAllowed also records events for Allow decisions.
	recordAllowed bool

	logger *logger.Logger
}

// NewPolicyService constructs a PolicyService around the given evaluator.
func NewPolicyService(ruleRepository store.RuleRepository, evaluator *engine.Evaluator, recorder EventRecorder, cfg config.Policy, logger *logger.Logger) PolicyService {
	return &policyService{
		ruleRepository: ruleRepository,
		evaluator:      evaluator,
		recorder:       recorder,
		recordAllowed:  cfg.RecordAllowed,
		logger:         logger,
	}
}

// EvaluateRequest resolves req against the user's enabled rules.
//
// The rule set is loaded as a read-only snapshot per call, so concurrent
// evaluations for the same user never share mutable state. Flag and Block
// decisions are always recorded; Allow decisions only when configured.
//
// The decision in the first return value is authoritative whenever the
// error is nil, ErrEventBuffered, ErrRecordingFailed, or an evaluation
// defect (which yields a fail-closed Block). Only a rule-loading failure
// leaves the decision empty.
func (p *policyService) EvaluateRequest(ctx context.Context, userID int64, req models.Request) (models.Decision, error) {
	log := logger.FromContext(ctx)

	rules, err := p.ruleRepository.ListEnabledRules(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("loading enabled rules failed")
		return models.Decision{}, fmt.Errorf("loading enabled rules failed: %w", err)
	}

	decision, evalErr := p.evaluator.Evaluate(req, models.NewRuleSet(rules))
	if evalErr != nil && !errors.Is(evalErr, engine.ErrEvaluationDefect) {
		return models.Decision{}, evalErr
	}
	if evalErr != nil {
		log.Error().Err(evalErr).Int64("user_id", userID).Msg("evaluation defect, failing closed")
	}

	if p.shouldRecord(decision) {
		if _, recErr := p.recorder.Record(ctx, decision, req); recErr != nil {
			// The decision stands; the recording failure rides along as a
			// separate signal.
			return decision, recErr
		}
	}

	return decision, evalErr
}

func (p *policyService) shouldRecord(decision models.Decision) bool {
	if decision.Action == models.ActionAllow {
		return p.recordAllowed
	}
	return true
}
