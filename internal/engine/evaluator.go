package engine

import (
	"fmt"

	"github.com/sweebapp/sweebguard/models"
)

// defectCategory marks decisions produced by a defective rule so operators
// can find them in the event log.
const defectCategory = "rule_defect"

// Evaluator resolves a request against a rule set to a single decision.
//
// Evaluation is first-match-wins over the rule set's total order: the first
// enabled rule that matches decides. That ordering is the single source of
// truth for conflicts between overlapping rules. The evaluator never
// mutates the rule set and is safe to invoke concurrently.
type Evaluator struct {
	matcher *Matcher
}

// NewEvaluator constructs an Evaluator around the given matcher.
func NewEvaluator(matcher *Matcher) *Evaluator {
	return &Evaluator{matcher: matcher}
}

// Matcher exposes the evaluator's matcher for cache maintenance.
func (e *Evaluator) Matcher() *Matcher {
	return e.matcher
}

// Evaluate walks rules in their defined order and returns the decision of
// the first enabled matching rule, or the default Allow decision when
// nothing matches.
//
// The risk score comes from the fixed per-action table unless the matching
// rule carries a positive Score override. The category is copied from the
// matching rule, falling back to models.CategoryUncategorized.
//
// A rule that fails to match because its pattern is internally inconsistent
// (see [ErrEvaluationDefect]) fails the evaluation closed: the returned
// decision blocks the request and the error identifies the defective rule.
func (e *Evaluator) Evaluate(req models.Request, rules models.RuleSet) (models.Decision, error) {
	for i := range rules {
		rule := rules[i]
		if !rule.Enabled {
			continue
		}

		matched, err := e.matcher.Matches(req, rule)
		if err != nil {
			return defectDecision(rule), fmt.Errorf("%w: rule %d (%s): %w", ErrEvaluationDefect, rule.ID, rule.Name, err)
		}
		if !matched {
			continue
		}

		return models.Decision{
			Action:      rule.Action,
			MatchedRule: &rule,
			Score:       scoreFor(rule),
			Category:    categoryFor(rule),
		}, nil
	}

	return models.DefaultDecision(), nil
}

func scoreFor(rule models.Rule) int {
	if rule.Score > 0 {
		return rule.Score
	}
	return models.ScoreForAction(rule.Action)
}

func categoryFor(rule models.Rule) string {
	if rule.Category != "" {
		return rule.Category
	}
	return models.CategoryUncategorized
}

// defectDecision is the fail-closed decision for a defective rule: block,
// maximum-table score, tagged for operator review.
func defectDecision(rule models.Rule) models.Decision {
	return models.Decision{
		Action:      models.ActionBlock,
		MatchedRule: &rule,
		Score:       models.ScoreBlock,
		Category:    defectCategory,
	}
}
