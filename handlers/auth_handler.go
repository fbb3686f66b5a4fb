package handlers

import (
	"strings"

	"github.com/lokiedu/yoga_admin/auth"
	"github.com/lokiedu/yoga_admin/gateway"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

var validate = validator.New()

type AuthHandler struct {
	Gateway   gateway.Gateway
	Verifier  auth.TokenVerifier
	JWTSecret string
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GoogleSignInRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

// Login is the direct email/password path. Success behaves exactly like a
// matched federated identity: token issued, route home.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	user, err := auth.LoginWithPassword(c.Context(), h.Gateway, req.Email, req.Password)
	if err != nil {
		if err == auth.ErrInvalidCredentials {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password."})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to verify credentials"})
	}

	t, err := auth.IssueToken(user, h.JWTSecret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create token"})
	}

	return c.JSON(fiber.Map{"token": t, "user": user, "route": auth.RouteHome})
}

// GoogleSignIn verifies a Google ID token and resolves it through the
// bootstrap. A valid token whose email matches no app user is still
// unauthenticated.
func (h *AuthHandler) GoogleSignIn(c *fiber.Ctx) error {
	var req GoogleSignInRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	identity, err := h.Verifier.Verify(req.IDToken)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid Google ID token"})
	}

	result, err := auth.NewBootstrap(h.Gateway).Resolve(c.Context(), identity)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to resolve user"})
	}
	if result.State != auth.StateAuthenticated {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User not found in the database.",
			"state": result.State,
			"route": result.Route,
		})
	}

	t, err := auth.IssueToken(result.User, h.JWTSecret)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create token"})
	}

	return c.JSON(fiber.Map{"token": t, "user": result.User, "route": result.Route})
}

// Session is the cold-start bootstrap: the client presents whatever session
// token it holds and learns where to route. A missing or stale token is a
// normal outcome, not an error.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	boot := auth.NewBootstrap(h.Gateway)

	identity := h.bearerIdentity(c)
	result, err := boot.Resolve(c.Context(), identity)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to resolve session"})
	}

	return c.JSON(result)
}

// bearerIdentity extracts the identity from the Authorization header, or nil
// when the client holds no usable session.
func (h *AuthHandler) bearerIdentity(c *fiber.Ctx) *auth.Identity {
	header := c.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil
	}

	token, err := jwt.Parse(strings.TrimPrefix(header, "Bearer "), func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(h.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	email, _ := claims["email"].(string)
	if email == "" {
		return nil
	}
	return &auth.Identity{Email: email}
}
