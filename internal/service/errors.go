package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials is the single generic authentication failure.
	// It deliberately does not distinguish unknown usernames from wrong
	// passwords or disabled accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	// ErrEventBuffered reports that a threat event could not be written to
	// the primary store and was spilled to the local buffer. The decision
	// the event records is unaffected.
	ErrEventBuffered = errors.New("threat event was buffered locally")

	// ErrRecordingFailed reports that a threat event was neither persisted
	// nor buffered. The caller decides whether to retry; the decision the
	// event records is unaffected.
	ErrRecordingFailed = errors.New("threat event recording failed")
)
