package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestClassify_NilError(t *testing.T) {
	c := NewPostgresErrorClassifier()

	if got := c.Classify(nil); got != NonRetryable {
		t.Errorf("expected NonRetryable for nil, got %v", got)
	}
}

func TestClassify_RetryableCodes(t *testing.T) {
	c := NewPostgresErrorClassifier()

	for _, code := range []string{
		pgerrcode.ConnectionException,
		pgerrcode.ConnectionDoesNotExist,
		pgerrcode.ConnectionFailure,
		pgerrcode.TransactionRollback,
		pgerrcode.SerializationFailure,
		pgerrcode.DeadlockDetected,
		pgerrcode.CannotConnectNow,
	} {
		if got := c.Classify(&pgconn.PgError{Code: code}); got != Retryable {
			t.Errorf("code %s: expected Retryable, got %v", code, got)
		}
	}
}

func TestClassify_NonRetryableCodes(t *testing.T) {
	c := NewPostgresErrorClassifier()

	for _, code := range []string{
		pgerrcode.UniqueViolation,
		pgerrcode.ForeignKeyViolation,
		pgerrcode.SyntaxError,
		pgerrcode.InvalidTextRepresentation,
	} {
		if got := c.Classify(&pgconn.PgError{Code: code}); got != NonRetryable {
			t.Errorf("code %s: expected NonRetryable, got %v", code, got)
		}
	}
}

func TestClassify_WrappedError(t *testing.T) {
	c := NewPostgresErrorClassifier()

	wrapped := fmt.Errorf("save failed: %w", &pgconn.PgError{Code: pgerrcode.DeadlockDetected})
	if got := c.Classify(wrapped); got != Retryable {
		t.Errorf("expected Retryable for wrapped deadlock, got %v", got)
	}
}

func TestClassify_UnknownError(t *testing.T) {
	c := NewPostgresErrorClassifier()

	if got := c.Classify(errors.New("something else")); got != NonRetryable {
		t.Errorf("expected NonRetryable for a non-driver error, got %v", got)
	}
}
