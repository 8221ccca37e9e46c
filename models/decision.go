package models

// CategoryUncategorized is the category of decisions that no rule produced.
const CategoryUncategorized = "Uncategorized"

// Risk scores assigned to decisions by action when the matching rule does
// not override them.
const (
	ScoreBlock = 90
	ScoreFlag  = 50
	ScoreAllow = 0
)

// Decision is the outcome of evaluating one request against a RuleSet.
type Decision struct {
	// Action is the decided outcome.
	Action Action `json:"action"`

	// MatchedRule is the rule that produced the decision, nil for the
	// default-allow decision.
	MatchedRule *Rule `json:"matched_rule,omitempty"`

	// Score is the numeric risk score in [0, 100].
	Score int `json:"score"`

	// Category is copied from the matching rule, or CategoryUncategorized.
	Category string `json:"category"`
}

// DefaultDecision is the decision returned when no rule matches:
// allow, no rule, zero score, uncategorized.
func DefaultDecision() Decision {
	return Decision{
		Action:   ActionAllow,
		Score:    ScoreAllow,
		Category: CategoryUncategorized,
	}
}

// ScoreForAction returns the fixed risk score table entry for a.
func ScoreForAction(a Action) int {
	switch a {
	case ActionBlock:
		return ScoreBlock
	case ActionFlag:
		return ScoreFlag
	default:
		return ScoreAllow
	}
}
