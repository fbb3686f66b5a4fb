package auth

import (
	"context"
	"errors"

	"github.com/lokiedu/yoga_admin/gateway"
	"github.com/lokiedu/yoga_admin/models"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// LoginWithPassword verifies credentials against the stored bcrypt hash.
// Unknown email and wrong password are indistinguishable to the caller.
func LoginWithPassword(ctx context.Context, gw gateway.Gateway, email, password string) (*models.User, error) {
	user, err := gw.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
