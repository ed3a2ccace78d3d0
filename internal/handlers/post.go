package handlers

import (
	"context"
	"strconv"
	"strings"
	"time"

	"gradi/server/internal/database"
	"gradi/server/internal/membership"
	"gradi/server/internal/middleware"
	"gradi/server/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

// CreatePostRequest represents create post request body
type CreatePostRequest struct {
	Content  string  `json:"content"`
	GroupID  *string `json:"groupId,omitempty"`
	ImageURL *string `json:"imageUrl,omitempty"`
	FileURL  *string `json:"fileUrl,omitempty"`
	FileName *string `json:"fileName,omitempty"`
}

// postSelect is the shared projection for feed queries: author profile
// joined in, counts recomputed from the like/comment tables on every read.
const postSelect = `
	SELECT
		p.id, p.group_id, p.content, p.image_url, p.file_url, p.file_name, p.created_at,
		pr.id, pr.username, pr.full_name, pr.avatar_url,
		(SELECT COUNT(*) FROM post_likes WHERE post_id = p.id) AS like_count,
		(SELECT COUNT(*) FROM post_comments WHERE post_id = p.id) AS comment_count,
		EXISTS(SELECT 1 FROM post_likes WHERE post_id = p.id AND user_id = NULLIF($1, '')::uuid) AS liked_by_me
	FROM posts p
	INNER JOIN profiles pr ON p.user_id = pr.id
`

// checkPostAccess resolves the post's group context and applies the
// membership gate shared by every per-post endpoint, so a private group's
// posts cannot be read or mutated through their IDs by non-members. It
// returns a zero status when the post is visible to the viewer, otherwise
// the status and message to respond with.
func checkPostAccess(viewerID, postID string) (int, string) {
	var groupID *string
	err := database.Pool.QueryRow(context.Background(),
		"SELECT group_id FROM posts WHERE id = $1", postID).Scan(&groupID)
	if err == pgx.ErrNoRows {
		return fiber.StatusNotFound, "Post not found"
	}
	if err != nil {
		return fiber.StatusInternalServerError, "Database error"
	}

	var group *models.Group
	var row *models.GroupMember
	if groupID != nil {
		g, err := fetchGroup(*groupID)
		if err != nil {
			return fiber.StatusInternalServerError, "Database error"
		}
		group = &g

		row, err = fetchMembership(*groupID, viewerID)
		if err != nil {
			return fiber.StatusInternalServerError, "Database error"
		}
	}

	if !membership.CanViewPost(viewerID, group, row) {
		return fiber.StatusForbidden, "You are not a member of this group"
	}
	return 0, ""
}

// GetFeed returns main-feed posts (group_id IS NULL), newest first
func GetFeed(c *fiber.Ctx) error {
	viewerID := middleware.GetUserID(c)
	page, limit := pagination(c)

	rows, err := database.Pool.Query(context.Background(),
		postSelect+`
		WHERE p.group_id IS NULL
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3
	`, viewerID, limit, (page-1)*limit)

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Database error",
		})
	}
	defer rows.Close()

	posts, err := scanPostViews(rows)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Database error",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    posts,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
		},
	})
}

// GetGroupFeed returns posts scoped to a group, gated by membership
func GetGroupFeed(c *fiber.Ctx) error {
	viewerID := c.Locals("userID").(string)
	groupID := c.Params("groupId")
	page, limit := pagination(c)

	group, err := fetchGroup(groupID)
	if err == pgx.ErrNoRows {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Group not found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Database error",
		})
	}

	row, err := fetchMembership(groupID, viewerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Database error",
		})
	}

	if !membership.CanViewPosts(viewerID, group, row) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"error":   "You are not a member of this group",
		})
	}

	rows, err := database.Pool.Query(context.Background(),
		postSelect+`
		WHERE p.group_id = $2
		ORDER BY p.created_at DESC
		LIMIT $3 OFFSET $4
	`, viewerID, groupID, limit, (page-1)*limit)

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Database error",
		})
	}
	defer rows.Close()

	posts, err := scanPostViews(rows)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Database error",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    posts,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
		},
	})
}

// CreatePost creates a main-feed or group post
func CreatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	var req CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if strings.TrimSpace(req.Content) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Post content is required",
		})
	}

	// Group posts require posting rights in that group
	if req.GroupID != nil {
		group, err := fetchGroup(*req.GroupID)
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"error":   "Group not found",
			})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "Database error",
			})
		}

		row, err := fetchMembership(*req.GroupID, userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "Database error",
			})
		}

		if !membership.Decide(userID, group, row).GrantsEntry() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"error":   "You are not a member of this group",
			})
		}
	} else if req.FileURL != nil {
		// File attachments are a group-post feature; the main feed takes
		// text and images only
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "File attachments are only allowed on group posts",
		})
	}

	var post models.Post
	err := database.Pool.QueryRow(context.Background(), `
		INSERT INTO posts (id, user_id, group_id, content, image_url, file_url, file_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, user_id, group_id, content, image_url, file_url, file_name, created_at
	`, newID(), userID, req.GroupID, req.Content, req.ImageURL, req.FileURL, req.FileName, time.Now()).
		Scan(&post.ID, &post.UserID, &post.GroupID, &post.Content, &post.ImageURL,
			&post.FileURL, &post.FileName, &post.CreatedAt)

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to create post",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    post,
	})
}

// DeletePost removes a post; only the author may delete
func DeletePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	postID := c.Params("postId")

	tag, err := database.Pool.Exec(context.Background(),
		"DELETE FROM posts WHERE id = $1 AND user_id = $2", postID, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to delete post",
		})
	}

	if tag.RowsAffected() == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Post not found or not yours",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Post deleted",
	})
}

func scanPostViews(rows pgx.Rows) ([]models.PostView, error) {
	var posts []models.PostView

	for rows.Next() {
		var pv models.PostView
		err := rows.Scan(
			&pv.ID, &pv.GroupID, &pv.Content, &pv.ImageURL, &pv.FileURL, &pv.FileName, &pv.CreatedAt,
			&pv.Author.ID, &pv.Author.Username, &pv.Author.FullName, &pv.Author.AvatarURL,
			&pv.LikeCount, &pv.CommentCount, &pv.LikedByMe,
		)
		if err != nil {
			return nil, err
		}
		posts = append(posts, pv)
	}

	if posts == nil {
		posts = []models.PostView{}
	}
	return posts, rows.Err()
}

// pagination reads page/limit query params with the usual bounds
func pagination(c *fiber.Ctx) (page, limit int) {
	page, _ = strconv.Atoi(c.Query("page", "1"))
	limit, _ = strconv.Atoi(c.Query("limit", "20"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
