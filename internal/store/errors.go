package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUsernameAlreadyExists is returned when registering a user fails
	// because the username is already taken.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrNoUserWasFound is returned when a query expected to match a user
	// record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrRuleNotFound is returned when an operation targets a rule
	// (identified by rule ID and owning user ID) that does not exist.
	ErrRuleNotFound = errors.New("rule was not found")

	// ErrEventNotSaved is returned when an INSERT of a threat event
	// completes without a driver error but persists no row.
	ErrEventNotSaved = errors.New("threat event was not saved")

	// ErrSettingsNotFound is returned when a settings lookup matches no row.
	ErrSettingsNotFound = errors.New("user settings were not found")

	// ErrBufferClosed is returned by spill buffer operations after Close.
	ErrBufferClosed = errors.New("event buffer is closed")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain
// logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised
	// SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
