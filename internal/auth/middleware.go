package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// localsClaimsKey is the fiber.Locals key holding the verified claims.
const localsClaimsKey = "authClaims"

// RequireAuth creates Fiber middleware that requires a valid auth token cookie.
// Missing or invalid tokens fail with 401; invalid tokens also clear the cookie.
func (s *Service) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(CookieName)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		}

		claims, err := s.VerifyToken(tokenString)
		if err != nil {
			// stale or forged cookie, clear it
			ClearCookie(c)

			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		}

		c.Locals(localsClaimsKey, claims)

		return c.Next()
	}
}

// RequireAdmin creates Fiber middleware that requires a valid auth token
// cookie belonging to an administrator. Non-admin users fail with 403.
func (s *Service) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(CookieName)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		}

		claims, err := s.VerifyToken(tokenString)
		if err != nil {
			ClearCookie(c)

			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		}

		if !claims.IsAdmin {
			log.Warn().Uint64("user_id", claims.UserID).
				Str("path", c.Path()).
				Msg("user lacks admin role")

			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
		}

		c.Locals(localsClaimsKey, claims)

		return c.Next()
	}
}

// ClaimsFromContext returns the verified claims stored by the guard middleware.
// Returns nil if the request did not pass through RequireAuth or RequireAdmin.
func ClaimsFromContext(c *fiber.Ctx) *Claims {
	claims, ok := c.Locals(localsClaimsKey).(*Claims)
	if !ok {
		return nil
	}

	return claims
}

// SetCookie attaches the signed token to the response.
func SetCookie(c *fiber.Ctx, token string, maxAge int, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		MaxAge:   maxAge,
		Secure:   secure,
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

// ClearCookie removes the auth token cookie from the client.
func ClearCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		MaxAge:   -1,
		HTTPOnly: true,
		SameSite: "Lax",
	})
}
