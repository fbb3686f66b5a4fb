package auth

import (
	"time"

	"github.com/lokiedu/yoga_admin/models"
	"github.com/golang-jwt/jwt/v4"
)

// IssueToken signs a session token for an authenticated user.
func IssueToken(user *models.User, secret string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(time.Hour * 72).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
