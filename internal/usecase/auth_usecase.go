package usecase

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"go-portfolio-console/internal/domain"
	"go-portfolio-console/pkg/apperror"
)

type authUsecase struct {
	passwordHash string
	jwtSecret    []byte
	tokenTTL     time.Duration
}

func NewAuthUsecase(passwordHash, jwtSecret string, tokenTTL time.Duration) domain.AuthUsecase {
	return &authUsecase{
		passwordHash: passwordHash,
		jwtSecret:    []byte(jwtSecret),
		tokenTTL:     tokenTTL,
	}
}

// Login checks the admin password against its bcrypt hash and issues a
// short-lived HS256 token. Every rejection returns the same message so
// nothing about the server configuration leaks.
func (u *authUsecase) Login(ctx context.Context, password string) (string, error) {
	if u.passwordHash == "" || len(u.jwtSecret) == 0 {
		return "", apperror.Unauthorized("Invalid password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(password)); err != nil {
		return "", apperror.Unauthorized("Invalid password")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin",
		"iat": now.Unix(),
		"exp": now.Add(u.tokenTTL).Unix(),
	})
	signed, err := token.SignedString(u.jwtSecret)
	if err != nil {
		return "", apperror.Internal(err)
	}
	return signed, nil
}
