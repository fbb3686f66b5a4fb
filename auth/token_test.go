package auth

import (
	"testing"

	"github.com/lokiedu/yoga_admin/models"
	"github.com/golang-jwt/jwt/v4"
)

func TestIssueTokenCarriesUserClaims(t *testing.T) {
	user := &models.User{ID: "u1", Email: "b@x.com", Role: models.RoleAdmin}

	signed, err := IssueToken(user, "secret")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	token, err := jwt.Parse(signed, func(t *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("parse: %v", err)
	}

	claims := token.Claims.(jwt.MapClaims)
	if claims["user_id"] != "u1" || claims["email"] != "b@x.com" || claims["role"] != "admin" {
		t.Fatalf("claims mismatch: %v", claims)
	}
	if _, ok := claims["exp"]; !ok {
		t.Fatalf("token must expire")
	}
}
