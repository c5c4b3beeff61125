// Package middleware provides HTTP middleware for the fiber app, most
// importantly JWT authentication for the wallet routes.
package middleware

import (
	"log/slog"
	"strings"

	"ledgerpay/internal/services/auth"
	"ledgerpay/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// Context keys set by the auth middleware.
const (
	ClaimsKey = "claims"
	UserIDKey = "userID"
)

// AuthMiddleware validates bearer tokens and resolves the authenticated user.
type AuthMiddleware struct {
	authService auth.Service
	logger      *slog.Logger
}

func NewAuthMiddleware(authService auth.Service, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		logger:      logger,
	}
}

// Handler checks the Authorization header, the token signature and expiry,
// and that the token version still matches the account. Claims and the user
// id are stored in the request context for the handlers.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization format"})
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	claims, err := utils.ParseToken(tokenString)
	if err != nil {
		m.logger.Debug("token validation failed", "error", err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
	}

	currentVersion, err := m.authService.GetUserTokenVersion(c.Context(), claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
	}
	// A logout or password change bumps the version, expiring this token.
	if claims.TokenVersion != currentVersion {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "session expired"})
	}

	c.Locals(ClaimsKey, claims)
	c.Locals(UserIDKey, claims.UserID)
	return c.Next()
}
