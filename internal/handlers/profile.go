package handlers

import (
	"context"
	"strconv"
	"strings"
	"time"

	"gradi/server/internal/database"
	"gradi/server/internal/models"
	"gradi/server/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

// UpdateProfileRequest represents profile update request body
type UpdateProfileRequest struct {
	FullName  *string `json:"fullName,omitempty"`
	Username  *string `json:"username,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

// SetPasswordRequest represents set password request body
type SetPasswordRequest struct {
	Password string `json:"password"`
}

// UpdateProfile updates the authenticated user's profile fields
func UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	// Build update dynamically from the fields that were sent
	query := "UPDATE profiles SET updated_at = $1"
	args := []interface{}{time.Now()}
	argCount := 2

	if req.FullName != nil {
		query += ", full_name = $" + strconv.Itoa(argCount)
		args = append(args, strings.TrimSpace(*req.FullName))
		argCount++
	}

	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if username == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   "Username cannot be empty",
			})
		}

		var taken bool
		err := database.Pool.QueryRow(context.Background(),
			"SELECT EXISTS(SELECT 1 FROM profiles WHERE username = $1 AND id != $2)",
			username, userID).Scan(&taken)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "Database error",
			})
		}
		if taken {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"success": false,
				"error":   "Username already taken",
			})
		}

		query += ", username = $" + strconv.Itoa(argCount)
		args = append(args, username)
		argCount++
	}

	if req.Bio != nil {
		query += ", bio = $" + strconv.Itoa(argCount)
		args = append(args, *req.Bio)
		argCount++
	}

	if req.AvatarURL != nil {
		query += ", avatar_url = $" + strconv.Itoa(argCount)
		args = append(args, *req.AvatarURL)
		argCount++
	}

	query += " WHERE id = $" + strconv.Itoa(argCount) +
		" RETURNING id, username, full_name, avatar_url, bio, email, has_password, auth_provider, created_at, updated_at"
	args = append(args, userID)

	var profile models.Profile
	err := database.Pool.QueryRow(context.Background(), query, args...).
		Scan(&profile.ID, &profile.Username, &profile.FullName, &profile.AvatarURL, &profile.Bio,
			&profile.Email, &profile.HasPassword, &profile.AuthProvider, &profile.CreatedAt, &profile.UpdatedAt)

	if err == pgx.ErrNoRows {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "User not found",
		})
	}

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to update profile",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    profile.ToResponse(),
	})
}

// SetPassword lets Google-only accounts add a password login
func SetPassword(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	var req SetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if len(req.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Password must be at least 8 characters",
		})
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to hash password",
		})
	}

	_, err = database.Pool.Exec(context.Background(),
		"UPDATE profiles SET password_hash = $1, has_password = true, updated_at = $2 WHERE id = $3",
		hashedPassword, time.Now(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to set password",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Password set successfully",
	})
}

// GetProfile returns a user's public profile
func GetProfile(c *fiber.Ctx) error {
	profileID := c.Params("userId")

	var profile models.Profile
	err := database.Pool.QueryRow(context.Background(), `
		SELECT id, username, full_name, avatar_url, bio, email, has_password, auth_provider, created_at, updated_at
		FROM profiles WHERE id = $1
	`, profileID).Scan(&profile.ID, &profile.Username, &profile.FullName, &profile.AvatarURL, &profile.Bio,
		&profile.Email, &profile.HasPassword, &profile.AuthProvider, &profile.CreatedAt, &profile.UpdatedAt)

	if err == pgx.ErrNoRows {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "User not found",
		})
	}

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Database error",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    profile.ToResponse(),
	})
}
