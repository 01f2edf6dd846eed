//go:build unit

package pgconv_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"closet-rental/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestCode(t *testing.T) {
	wrapped := fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgconv.CodeExclusionViolation})

	assert.Equal(t, pgconv.CodeExclusionViolation, pgconv.Code(wrapped))
	assert.True(t, pgconv.IsExclusionViolation(wrapped))
	assert.False(t, pgconv.IsUniqueViolation(wrapped))
	assert.Equal(t, "", pgconv.Code(errors.New("plain")))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, pgconv.IsRetryable(&pgconn.PgError{Code: pgconv.CodeSerializationFailure}))
	assert.True(t, pgconv.IsRetryable(&pgconn.PgError{Code: pgconv.CodeDeadlockDetected}))
	assert.False(t, pgconv.IsRetryable(&pgconn.PgError{Code: pgconv.CodeUniqueViolation}))
	assert.False(t, pgconv.IsRetryable(sql.ErrNoRows))
}

func TestNullUUIDRoundTrip(t *testing.T) {
	assert.Nil(t, pgconv.UUIDPtrFromNull(pgconv.UUIDPtrToNull(nil)))

	id := uuid.New()
	got := pgconv.UUIDPtrFromNull(pgconv.UUIDPtrToNull(&id))
	if assert.NotNil(t, got) {
		assert.Equal(t, id, *got)
	}
}
