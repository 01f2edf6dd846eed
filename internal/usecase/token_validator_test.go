//go:build unit

package usecase_test

import (
	"testing"
	"time"

	"closet-rental/internal/pkg/jwt"
	"closet-rental/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenValidator(t *testing.T) {
	svc := jwt.NewService("secret", "")
	validator := usecase.NewTokenValidator(svc)

	t.Run("returns the user id", func(t *testing.T) {
		id := uuid.New()
		token, err := svc.GenerateToken(id, time.Hour)
		require.NoError(t, err)

		got, err := validator.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, id, got)
	})

	t.Run("rejects the reserved system id", func(t *testing.T) {
		token, err := svc.GenerateToken(uuid.Nil, time.Hour)
		require.NoError(t, err)

		_, err = validator.ValidateToken(token)
		assert.ErrorIs(t, err, usecase.ErrAnonymousToken)
	})
}
