package models

import "time"

// MembershipStatus is the state of one user's membership row in a group.
type MembershipStatus string

const (
	StatusPending  MembershipStatus = "pending"
	StatusApproved MembershipStatus = "approved"
	StatusRejected MembershipStatus = "rejected"

	// StatusNone is the derived state when no membership row exists.
	// It is never persisted.
	StatusNone MembershipStatus = "none"
)

// Valid reports whether s is a status that may be stored in group_members.
func (s MembershipStatus) Valid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// Approvable reports whether s may transition to approved. Only a pending
// request is approvable; re-approving an approved row is a no-op at call
// sites, and anything else stays put.
func (s MembershipStatus) Approvable() bool {
	return s == StatusPending
}

// Group represents a study group
type Group struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	ImageURL    *string   `json:"imageUrl,omitempty" db:"image_url"`
	CreatedBy   string    `json:"createdBy" db:"created_by"`
	IsPrivate   bool      `json:"isPrivate" db:"is_private"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// GroupMember represents a user's membership row in a group
type GroupMember struct {
	GroupID     string           `json:"groupId" db:"group_id"`
	UserID      string           `json:"userId" db:"user_id"`
	Status      MembershipStatus `json:"status" db:"status"`
	JoinMessage *string          `json:"joinMessage,omitempty" db:"join_message"`
	Role        string           `json:"role" db:"role"`
	JoinedAt    time.Time        `json:"joinedAt" db:"joined_at"`
}

// GroupView is a group as seen by a particular viewer: counts are
// recomputed from group_members on every read, never cached.
type GroupView struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Description  *string          `json:"description,omitempty"`
	ImageURL     *string          `json:"imageUrl,omitempty"`
	CreatedBy    string           `json:"createdBy"`
	IsPrivate    bool             `json:"isPrivate"`
	MemberCount  int              `json:"memberCount"`
	PendingCount *int             `json:"pendingCount,omitempty"` // creator only
	ViewerStatus MembershipStatus `json:"viewerStatus"`
	Affordance   string           `json:"affordance"`
	CreatedAt    time.Time        `json:"createdAt"`
}

// JoinRequest is a pending membership row joined with the requester's profile,
// as shown to the group creator in the moderation list.
type JoinRequest struct {
	GroupID     string    `json:"groupId"`
	UserID      string    `json:"userId"`
	JoinMessage *string   `json:"joinMessage,omitempty"`
	JoinedAt    time.Time `json:"joinedAt"`
	Profile     Author    `json:"profile"`
}
