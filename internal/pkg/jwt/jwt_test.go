//go:build unit

package jwt_test

import (
	"testing"
	"time"

	"closet-rental/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_RoundTrip(t *testing.T) {
	svc := jwt.NewService("secret", "closet-id")
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
}

func TestService_Rejects(t *testing.T) {
	userID := uuid.New()

	testCases := []struct {
		name    string
		token   func(t *testing.T) string
		wantErr error
	}{
		{
			name: "expired token",
			token: func(t *testing.T) string {
				tok, err := jwt.NewService("secret", "closet-id").GenerateToken(userID, -time.Minute)
				require.NoError(t, err)
				return tok
			},
			wantErr: jwt.ErrExpiredToken,
		},
		{
			name: "signed with another key",
			token: func(t *testing.T) string {
				tok, err := jwt.NewService("other", "closet-id").GenerateToken(userID, time.Hour)
				require.NoError(t, err)
				return tok
			},
			wantErr: jwt.ErrInvalidToken,
		},
		{
			name: "foreign issuer",
			token: func(t *testing.T) string {
				tok, err := jwt.NewService("secret", "someone-else").GenerateToken(userID, time.Hour)
				require.NoError(t, err)
				return tok
			},
			wantErr: jwt.ErrInvalidToken,
		},
		{
			name:    "garbage",
			token:   func(*testing.T) string { return "not.a.token" },
			wantErr: jwt.ErrInvalidToken,
		},
	}

	svc := jwt.NewService("secret", "closet-id")
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.ValidateToken(tc.token(t))
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}
