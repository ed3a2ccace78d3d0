// Package membership derives what a viewer may do with a group from the
// group's visibility, its creator and the viewer's membership row.
package membership

import "gradi/server/internal/models"

// Affordance is the single action a client should present for a group.
type Affordance string

const (
	// SignIn: no authenticated viewer; any join click must start the
	// auth flow instead of a membership mutation.
	SignIn Affordance = "sign_in"
	// Manage: viewer is the group creator; entry is granted and the
	// pending-request moderation surface is exposed.
	Manage Affordance = "manage"
	// Enter: viewer holds an approved membership.
	Enter Affordance = "enter"
	// Pending: a request is waiting on the creator; no action available.
	Pending Affordance = "pending"
	// Join: public group, no membership row; joining approves immediately.
	Join Affordance = "join"
	// Request: private group, no membership row; joining collects a
	// message and creates a pending row.
	Request Affordance = "request"
)

// GrantsEntry reports whether the affordance lets the viewer open the group.
func (a Affordance) GrantsEntry() bool {
	return a == Enter || a == Manage
}

// Decide returns the affordance for viewerID on group, given the viewer's
// membership row (nil when none exists). viewerID is empty for anonymous
// viewers. Rules are evaluated in precedence order; a rejected row is
// re-requestable and falls through to the no-row case.
func Decide(viewerID string, group models.Group, row *models.GroupMember) Affordance {
	if viewerID == "" {
		return SignIn
	}
	if viewerID == group.CreatedBy {
		return Manage
	}
	if row != nil {
		switch row.Status {
		case models.StatusApproved:
			return Enter
		case models.StatusPending:
			return Pending
		}
		// rejected: treated as no membership for re-request purposes
	}
	if group.IsPrivate {
		return Request
	}
	return Join
}

// ViewerStatus derives the status exposed to the viewer from their row.
// Unlike Decide, it keeps rejected distinct from none so clients can tell
// a declined request from one that was never made.
func ViewerStatus(row *models.GroupMember) models.MembershipStatus {
	if row == nil {
		return models.StatusNone
	}
	return row.Status
}

// CanModerate reports whether viewerID may approve or reject requests
// for group. Only the creator moderates, regardless of visibility.
func CanModerate(viewerID string, group models.Group) bool {
	return viewerID != "" && viewerID == group.CreatedBy
}

// CanViewPost reports whether viewerID may read a single post and its
// comments and likes. Main-feed posts carry no group and are visible to
// everyone; group posts are gated exactly like the group's feed.
func CanViewPost(viewerID string, group *models.Group, row *models.GroupMember) bool {
	if group == nil {
		return true
	}
	return CanViewPosts(viewerID, *group, row)
}

// CanViewPosts reports whether viewerID may read group-scoped posts.
// Public group posts are readable by any authenticated user; private
// group posts require the creator or an approved membership.
func CanViewPosts(viewerID string, group models.Group, row *models.GroupMember) bool {
	if viewerID == "" {
		return false
	}
	if !group.IsPrivate {
		return true
	}
	return Decide(viewerID, group, row).GrantsEntry()
}
