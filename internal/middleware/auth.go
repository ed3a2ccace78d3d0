package middleware

import (
	"gradi/server/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware validates JWT token from cookie
func AuthMiddleware(c *fiber.Ctx) error {
	// Get token from cookie
	tokenString := c.Cookies("token")
	if tokenString == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized - No token provided",
		})
	}

	// Validate token
	claims, err := utils.ValidateToken(tokenString)
	if err != nil || claims.Type != "access" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized - Invalid token",
		})
	}

	// Store user info in context
	c.Locals("userID", claims.UserID)
	c.Locals("email", claims.Email)

	return c.Next()
}

// OptionalAuthMiddleware populates the viewer identity when a valid token
// cookie is present and continues anonymously otherwise. Used on public
// reads (feed, group directory) where affordances depend on the viewer.
func OptionalAuthMiddleware(c *fiber.Ctx) error {
	tokenString := c.Cookies("token")
	if tokenString != "" {
		if claims, err := utils.ValidateToken(tokenString); err == nil && claims.Type == "access" {
			c.Locals("userID", claims.UserID)
			c.Locals("email", claims.Email)
		}
	}
	return c.Next()
}

// GetUserID gets user ID from context; empty for anonymous viewers
func GetUserID(c *fiber.Ctx) string {
	userID, ok := c.Locals("userID").(string)
	if !ok {
		return ""
	}
	return userID
}

// GetUserEmail gets user email from context
func GetUserEmail(c *fiber.Ctx) string {
	email, ok := c.Locals("email").(string)
	if !ok {
		return ""
	}
	return email
}
