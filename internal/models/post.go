package models

import "time"

// Post represents a feed or group post
type Post struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	GroupID   *string   `json:"groupId,omitempty" db:"group_id"` // nil = main feed
	Content   string    `json:"content" db:"content"`
	ImageURL  *string   `json:"imageUrl,omitempty" db:"image_url"`
	FileURL   *string   `json:"fileUrl,omitempty" db:"file_url"`
	FileName  *string   `json:"fileName,omitempty" db:"file_name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// PostView is a post joined with its author and the viewer-dependent
// like/comment metadata the feed renders.
type PostView struct {
	ID           string    `json:"id"`
	GroupID      *string   `json:"groupId,omitempty"`
	Content      string    `json:"content"`
	ImageURL     *string   `json:"imageUrl,omitempty"`
	FileURL      *string   `json:"fileUrl,omitempty"`
	FileName     *string   `json:"fileName,omitempty"`
	LikeCount    int       `json:"likeCount"`
	CommentCount int       `json:"commentCount"`
	LikedByMe    bool      `json:"likedByMe"`
	CreatedAt    time.Time `json:"createdAt"`
	Author       Author    `json:"author"`
}

// Comment represents a comment on a post
type Comment struct {
	ID        string    `json:"id" db:"id"`
	PostID    string    `json:"postId" db:"post_id"`
	UserID    string    `json:"userId" db:"user_id"`
	Content   *string   `json:"content,omitempty" db:"content"`
	ImageURL  *string   `json:"imageUrl,omitempty" db:"image_url"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// CommentView is a comment joined with its author. Comments are only
// returned to clients once the insert has succeeded, so every CommentView
// carries a server-assigned ID and timestamp.
type CommentView struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	Content   *string   `json:"content,omitempty"`
	ImageURL  *string   `json:"imageUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	Author    Author    `json:"author"`
}

// LikeState is the authoritative like state returned after a toggle:
// the boolean for the toggling user plus the count recomputed from
// post_likes.
type LikeState struct {
	PostID    string `json:"postId"`
	Liked     bool   `json:"liked"`
	LikeCount int    `json:"likeCount"`
}
