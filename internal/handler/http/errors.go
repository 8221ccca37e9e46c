package http

import "errors"

// Authorization header errors returned by the auth middleware.
var (
	// ErrEmptyAuthorizationHeader is returned when the "Authorization"
	// header is absent from the request.
	ErrEmptyAuthorizationHeader = errors.New("empty authorization header")

	// ErrInvalidAuthorizationHeader is returned when the header value is
	// not of the form "<scheme> <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid authorization header")

	// ErrNoUserIDInContext is returned when an authenticated handler runs
	// without a user ID in the request context, which indicates a routing
	// mistake rather than a client error.
	ErrNoUserIDInContext = errors.New("no user id in request context")
)
