package handlers

import (
	"context"

	"gradi/server/internal/database"
	"gradi/server/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

// likeToggles coalesces concurrent toggle requests per (post, user) so a
// burst of rapid clicks resolves to one mutation and one authoritative
// state, instead of racing the boolean against the counter.
var likeToggles singleflight.Group

// likeStore is the slice of storage the toggle sequence needs. The
// production implementation runs all three statements in one transaction
// so the returned state cannot drift from what is stored.
type likeStore interface {
	RemoveLike(ctx context.Context, postID, userID string) (bool, error)
	AddLike(ctx context.Context, postID, userID string) error
	CountLikes(ctx context.Context, postID string) (int, error)
}

// ToggleLike flips the like state for the authenticated user on a post and
// returns the resulting boolean plus the count recomputed from post_likes.
// Group-post likes are gated like the group's feed.
func ToggleLike(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	postID := c.Params("postId")

	if status, msg := checkPostAccess(userID, postID); status != 0 {
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"error":   msg,
		})
	}

	result, err, _ := likeToggles.Do(postID+"/"+userID, func() (interface{}, error) {
		return toggleLike(context.Background(), postID, userID)
	})

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to update like",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    result.(models.LikeState),
	})
}

// toggleLike runs the toggle inside one transaction; any step failing
// rolls the whole mutation back.
func toggleLike(ctx context.Context, postID, userID string) (models.LikeState, error) {
	tx, err := database.Pool.Begin(ctx)
	if err != nil {
		return models.LikeState{}, err
	}
	defer tx.Rollback(ctx)

	state, err := toggle(ctx, txLikeStore{tx}, postID, userID)
	if err != nil {
		return models.LikeState{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return models.LikeState{}, err
	}
	return state, nil
}

// toggle removes the (post, user) like if present, adds it otherwise, and
// rereads the count from the store rather than patching a counter.
func toggle(ctx context.Context, store likeStore, postID, userID string) (models.LikeState, error) {
	removed, err := store.RemoveLike(ctx, postID, userID)
	if err != nil {
		return models.LikeState{}, err
	}

	liked := false
	if !removed {
		if err := store.AddLike(ctx, postID, userID); err != nil {
			return models.LikeState{}, err
		}
		liked = true
	}

	count, err := store.CountLikes(ctx, postID)
	if err != nil {
		return models.LikeState{}, err
	}

	return models.LikeState{PostID: postID, Liked: liked, LikeCount: count}, nil
}

type txLikeStore struct {
	tx pgx.Tx
}

func (s txLikeStore) RemoveLike(ctx context.Context, postID, userID string) (bool, error) {
	tag, err := s.tx.Exec(ctx,
		"DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2", postID, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s txLikeStore) AddLike(ctx context.Context, postID, userID string) error {
	// ON CONFLICT guards the duplicate-row invariant even if a concurrent
	// insert slipped between the delete and here
	_, err := s.tx.Exec(ctx, `
		INSERT INTO post_likes (post_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (post_id, user_id) DO NOTHING
	`, postID, userID)
	return err
}

func (s txLikeStore) CountLikes(ctx context.Context, postID string) (int, error) {
	var count int
	err := s.tx.QueryRow(ctx,
		"SELECT COUNT(*) FROM post_likes WHERE post_id = $1", postID).Scan(&count)
	return count, err
}
