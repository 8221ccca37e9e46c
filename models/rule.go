package models

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"time"
)

// Action is the outcome a rule prescribes for a matching request.
type Action string

const (
	ActionAllow Action = "allow"
	ActionBlock Action = "block"
	ActionFlag  Action = "flag"
)

// MatchType selects the matching semantics applied to a rule's Pattern.
type MatchType string

const (
	// MatchExactHost compares the request host to the pattern,
	// case-insensitively.
	MatchExactHost MatchType = "exact_host"

	// MatchHostSuffix matches the host itself or any subdomain of the
	// pattern. Dot-boundary aware: "evil.com" matches "sub.evil.com"
	// but never "notevil.com".
	MatchHostSuffix MatchType = "host_suffix"

	// MatchPathPrefix matches when the request path starts with the
	// pattern, case-sensitively.
	MatchPathPrefix MatchType = "path_prefix"

	// MatchRegex tests the compiled pattern against the full URL.
	MatchRegex MatchType = "regex"

	// MatchContains matches when the pattern appears anywhere in the
	// full URL, case-sensitively.
	MatchContains MatchType = "contains"
)

// Rule construction errors. Invalid rules are rejected here and never reach
// evaluation.
var (
	ErrInvalidRuleName  = errors.New("rule name must not be empty")
	ErrInvalidAction    = errors.New("unknown rule action")
	ErrInvalidMatchType = errors.New("unknown rule match type")
	ErrEmptyPattern     = errors.New("rule pattern must not be empty")
	ErrInvalidPattern   = errors.New("rule pattern is invalid for its match type")
)

// Rule is a single user-defined filtering policy. Rules are owned by exactly
// one user and are destroyed together with the owning account.
//
// Rules are constructed through NewRule so that the pattern-validity
// invariant holds for every stored rule: a rule whose pattern does not parse
// for its match type is rejected at creation time, never silently skipped
// during evaluation.
type Rule struct {
	// ID is the server-assigned identifier of the rule.
	ID int64 `json:"id"`

	// UserID is the owning account.
	UserID int64 `json:"-"`

	// Name is a short human-readable label.
	Name string `json:"name"`

	// Enabled rules participate in evaluation; disabled rules are kept but
	// never matched.
	Enabled bool `json:"enabled"`

	// Priority orders evaluation: lower values are evaluated first.
	// Ties are broken by creation order.
	Priority int `json:"priority"`

	// Action is the decision this rule produces when it matches.
	Action Action `json:"action"`

	// MatchType selects the pattern semantics.
	MatchType MatchType `json:"match_type"`

	// Pattern is interpreted according to MatchType.
	Pattern string `json:"pattern"`

	// Category tags events produced by this rule (e.g. "malware",
	// "phishing"). Empty means uncategorized.
	Category string `json:"category,omitempty"`

	// Score, when non-zero, overrides the per-action risk score of
	// decisions produced by this rule.
	Score int `json:"score,omitempty"`

	// CreatedAt is the server-assigned creation timestamp.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Rule model.
func (r Rule) TableName() string {
	return "rules"
}

// NewRule constructs a validated Rule for the given owner.
//
// Returns a validation error if the name is empty, the action or match type
// is unknown, the pattern is empty, or — for MatchRegex — the pattern does
// not compile. The returned rule is enabled.
func NewRule(userID int64, name string, priority int, action Action, matchType MatchType, pattern string) (Rule, error) {
	rule := Rule{
		UserID:    userID,
		Name:      name,
		Enabled:   true,
		Priority:  priority,
		Action:    action,
		MatchType: matchType,
		Pattern:   pattern,
	}
	if err := rule.Validate(); err != nil {
		return Rule{}, err
	}

	return rule, nil
}

// Validate checks the rule against the construction-time invariants.
// It is re-run on updates so that a stored rule can never hold a pattern
// that is inconsistent with its match type.
func (r Rule) Validate() error {
	if r.Name == "" {
		return ErrInvalidRuleName
	}
	if !ValidAction(r.Action) {
		return ErrInvalidAction
	}
	if r.Pattern == "" {
		return ErrEmptyPattern
	}

	switch r.MatchType {
	case MatchExactHost, MatchHostSuffix, MatchPathPrefix, MatchContains:
		return nil
	case MatchRegex:
		if _, err := regexp.Compile(r.Pattern); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidPattern, err)
		}
		return nil
	default:
		return ErrInvalidMatchType
	}
}

// ValidAction reports whether a is one of the known action values.
func ValidAction(a Action) bool {
	switch a {
	case ActionAllow, ActionBlock, ActionFlag:
		return true
	}
	return false
}

// RuleSet is the ordered view of one user's enabled rules. It is derived on
// read and never persisted; evaluation order is total and deterministic
// (ascending priority, then creation time, then ID).
type RuleSet []Rule

// NewRuleSet sorts rules into evaluation order and returns them as a RuleSet.
// The input slice is not modified.
func NewRuleSet(rules []Rule) RuleSet {
	ordered := make(RuleSet, len(rules))
	copy(ordered, rules)

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Priority != ordered[j].Priority {
			return ordered[i].Priority < ordered[j].Priority
		}
		if !ordered[i].CreatedAt.Equal(ordered[j].CreatedAt) {
			return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
		}
		return ordered[i].ID < ordered[j].ID
	})

	return ordered
}
