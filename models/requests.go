package models

// Request and response payloads of the HTTP API. Kept next to the domain
// models so the transport and adapter layers share one wire vocabulary.

// RegisterRequest is the payload of POST /api/user/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the payload of POST /api/user/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateEmailRequest is the payload of PUT /api/user/email.
type UpdateEmailRequest struct {
	Email string `json:"email"`
}

// CreateRuleRequest is the payload of POST /api/rules.
type CreateRuleRequest struct {
	Name      string    `json:"name"`
	Priority  int       `json:"priority"`
	Action    Action    `json:"action"`
	MatchType MatchType `json:"match_type"`
	Pattern   string    `json:"pattern"`
	Category  string    `json:"category,omitempty"`
}

// RuleUpdate describes a partial update of one rule. Nil fields are left
// unchanged. The updated rule is re-validated before it is stored.
type RuleUpdate struct {
	ID       int64   `json:"id"`
	UserID   int64   `json:"-"`
	Name     *string `json:"name,omitempty"`
	Enabled  *bool   `json:"enabled,omitempty"`
	Priority *int    `json:"priority,omitempty"`
	Action   *Action `json:"action,omitempty"`
	Pattern  *string `json:"pattern,omitempty"`
	Category *string `json:"category,omitempty"`
}

// EvaluateResponse is the body of POST /api/evaluate. Buffered reports that
// the threat event could not be written to the primary store and was spilled
// to the local buffer; the decision itself is still authoritative.
type EvaluateResponse struct {
	Decision Decision `json:"decision"`
	Buffered bool     `json:"buffered,omitempty"`
}
