package usecase

import (
	"errors"

	"closet-rental/internal/pkg/jwt"

	"github.com/google/uuid"
)

var ErrAnonymousToken = errors.New("token carries no user id")

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (uuid.UUID, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (uuid.UUID, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return uuid.Nil, err
	}

	// uuid.Nil is reserved for the scheduler
	if claims.UserID == uuid.Nil {
		return uuid.Nil, ErrAnonymousToken
	}

	return claims.UserID, nil
}
