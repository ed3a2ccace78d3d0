package handlers

import (
	"context"
	"strings"
	"time"

	"gradi/server/internal/database"
	"gradi/server/internal/middleware"
	"gradi/server/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateCommentRequest represents comment submit request body
type CreateCommentRequest struct {
	Content  string  `json:"content"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

// GetComments returns a post's comments, oldest first, with author
// profiles. Group-post comments are gated like the group's feed.
func GetComments(c *fiber.Ctx) error {
	viewerID := middleware.GetUserID(c)
	postID := c.Params("postId")

	if status, msg := checkPostAccess(viewerID, postID); status != 0 {
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"error":   msg,
		})
	}

	rows, err := database.Pool.Query(context.Background(), `
		SELECT pc.id, pc.post_id, pc.content, pc.image_url, pc.created_at,
		       pr.id, pr.username, pr.full_name, pr.avatar_url
		FROM post_comments pc
		INNER JOIN profiles pr ON pc.user_id = pr.id
		WHERE pc.post_id = $1
		ORDER BY pc.created_at ASC
	`, postID)

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Database error",
		})
	}
	defer rows.Close()

	var comments []models.CommentView

	for rows.Next() {
		var cv models.CommentView
		err := rows.Scan(&cv.ID, &cv.PostID, &cv.Content, &cv.ImageURL, &cv.CreatedAt,
			&cv.Author.ID, &cv.Author.Username, &cv.Author.FullName, &cv.Author.AvatarURL)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "Database error",
			})
		}
		comments = append(comments, cv)
	}

	if comments == nil {
		comments = []models.CommentView{}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    comments,
	})
}

// CreateComment inserts a comment and returns the confirmed row with its
// server-assigned id, timestamp and author profile. Clients append the
// comment only from this response, never speculatively.
func CreateComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	postID := c.Params("postId")

	var req CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if strings.TrimSpace(req.Content) == "" && req.ImageURL == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Comment content is required",
		})
	}

	if status, msg := checkPostAccess(userID, postID); status != 0 {
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"error":   msg,
		})
	}

	var cv models.CommentView
	err := database.Pool.QueryRow(context.Background(), `
		WITH inserted AS (
			INSERT INTO post_comments (id, post_id, user_id, content, image_url, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, post_id, user_id, content, image_url, created_at
		)
		SELECT i.id, i.post_id, i.content, i.image_url, i.created_at,
		       pr.id, pr.username, pr.full_name, pr.avatar_url
		FROM inserted i
		INNER JOIN profiles pr ON i.user_id = pr.id
	`, newID(), postID, userID, req.Content, req.ImageURL, time.Now()).
		Scan(&cv.ID, &cv.PostID, &cv.Content, &cv.ImageURL, &cv.CreatedAt,
			&cv.Author.ID, &cv.Author.Username, &cv.Author.FullName, &cv.Author.AvatarURL)

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to post comment",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    cv,
	})
}

// DeleteComment removes a comment; only the author may delete
func DeleteComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	commentID := c.Params("commentId")

	tag, err := database.Pool.Exec(context.Background(),
		"DELETE FROM post_comments WHERE id = $1 AND user_id = $2", commentID, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to delete comment",
		})
	}

	if tag.RowsAffected() == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Comment not found or not yours",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Comment deleted",
	})
}
