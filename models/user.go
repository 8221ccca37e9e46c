package models

import (
	"errors"
	"strings"
	"time"
)

// Role is the authorization level of a user account.
type Role string

const (
	RoleStandard Role = "standard"
	RoleAdmin    Role = "admin"
)

// Validation errors returned by account factory functions and named
// mutation operations.
var (
	ErrInvalidUsername = errors.New("username must not be empty")
	ErrInvalidEmail    = errors.New("email address is malformed")
	ErrInvalidRole     = errors.New("unknown user role")
)

// User represents an account entity used for authentication and rule
// ownership. Sensitive fields must never be exposed outside trusted
// boundaries.
//
// ID and Username are stable for the lifetime of the account. The password
// hash is write-only from the domain layer's perspective: it is set at
// registration, verified by the credential store, and never returned to
// callers.
type User struct {
	// ID is the internal unique identifier of the user.
	// It is not exposed via JSON and is used only at the persistence layer.
	ID int64 `json:"-"`

	// Username is the unique login identifier, used during authentication.
	Username string `json:"username"`

	// Email is the contact address of the account holder.
	// Mutated only through the UpdateEmail operation.
	Email string `json:"email"`

	// PhoneNumber is an optional contact number. May be empty.
	PhoneNumber string `json:"phone_number,omitempty"`

	// PasswordHash is the bcrypt hash of the account password.
	// Never serialized and never returned across the service boundary.
	PasswordHash string `json:"-"`

	// Role is the authorization level of the account.
	Role Role `json:"role"`

	// Disabled marks accounts that may no longer authenticate.
	Disabled bool `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`

	// LastLogin is the timestamp of the most recent successful
	// authentication. Zero until the first login.
	LastLogin time.Time `json:"last_login,omitempty"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// NewUser constructs a User ready for persistence. The passwordHash argument
// must already be a derived value (bcrypt output), never plaintext.
//
// Returns ErrInvalidUsername or ErrInvalidEmail if the identity attributes
// do not pass validation. New accounts always start with RoleStandard.
func NewUser(username, email, passwordHash string) (User, error) {
	if strings.TrimSpace(username) == "" {
		return User{}, ErrInvalidUsername
	}
	if !validEmail(email) {
		return User{}, ErrInvalidEmail
	}

	return User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         RoleStandard,
	}, nil
}

// ValidateEmail reports whether addr is acceptable as an account email.
// Used by the email-update operation so the check lives next to the model.
func ValidateEmail(addr string) error {
	if !validEmail(addr) {
		return ErrInvalidEmail
	}
	return nil
}

// validEmail performs a shape check only: one "@" with a dot somewhere after
// it. Deliverability is not this layer's concern.
func validEmail(addr string) bool {
	at := strings.Index(addr, "@")
	if at <= 0 || at == len(addr)-1 {
		return false
	}
	domain := addr[at+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}

// ValidRole reports whether r is one of the known role values.
func ValidRole(r Role) bool {
	switch r {
	case RoleStandard, RoleAdmin:
		return true
	}
	return false
}
