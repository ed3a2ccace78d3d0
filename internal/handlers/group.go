package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"gradi/server/internal/database"
	"gradi/server/internal/membership"
	"gradi/server/internal/middleware"
	"gradi/server/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// CreateGroupRequest represents create group request body
type CreateGroupRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	IsPrivate   bool    `json:"isPrivate"`
}

// UpdateGroupRequest represents update group request body
type UpdateGroupRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	IsPrivate   *bool   `json:"isPrivate,omitempty"`
}

// JoinGroupRequest represents join/request-to-join request body
type JoinGroupRequest struct {
	Message string `json:"message"`
}

func newID() string {
	return uuid.New().String()
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// fetchGroup loads one group row
func fetchGroup(groupID string) (models.Group, error) {
	var g models.Group
	err := database.Pool.QueryRow(context.Background(), `
		SELECT id, name, description, image_url, created_by, is_private, created_at
		FROM groups WHERE id = $1
	`, groupID).Scan(&g.ID, &g.Name, &g.Description, &g.ImageURL, &g.CreatedBy, &g.IsPrivate, &g.CreatedAt)
	return g, err
}

// fetchMembership loads the viewer's membership row, nil when none exists
// or the viewer is anonymous
func fetchMembership(groupID, userID string) (*models.GroupMember, error) {
	if userID == "" {
		return nil, nil
	}

	var m models.GroupMember
	err := database.Pool.QueryRow(context.Background(), `
		SELECT group_id, user_id, status, join_message, role, joined_at
		FROM group_members WHERE group_id = $1 AND user_id = $2
	`, groupID, userID).Scan(&m.GroupID, &m.UserID, &m.Status, &m.JoinMessage, &m.Role, &m.JoinedAt)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// groupCounts recomputes member and pending counts from group_members.
// Counts are always re-derived from the authoritative row set, never
// patched incrementally.
func groupCounts(groupID string) (memberCount, pendingCount int, err error) {
	err = database.Pool.QueryRow(context.Background(), `
		SELECT
			COUNT(*) FILTER (WHERE status = 'approved'),
			COUNT(*) FILTER (WHERE status = 'pending')
		FROM group_members WHERE group_id = $1
	`, groupID).Scan(&memberCount, &pendingCount)
	return memberCount, pendingCount, err
}

// buildGroupView assembles the per-viewer directory entry for one group
func buildGroupView(viewerID string, g models.Group, row *models.GroupMember, memberCount, pendingCount int) models.GroupView {
	view := models.GroupView{
		ID:           g.ID,
		Name:         g.Name,
		Description:  g.Description,
		ImageURL:     g.ImageURL,
		CreatedBy:    g.CreatedBy,
		IsPrivate:    g.IsPrivate,
		MemberCount:  memberCount,
		ViewerStatus: membership.ViewerStatus(row),
		Affordance:   string(membership.Decide(viewerID, g, row)),
		CreatedAt:    g.CreatedAt,
	}

	// Pending count is moderation data; only the creator sees it
	if membership.CanModerate(viewerID, g) {
		view.PendingCount = &pendingCount
	}
	return view
}

// GetGroups returns the group directory with per-viewer affordances.
// Works for anonymous viewers; they get the sign-in affordance.
func GetGroups(c *fiber.Ctx) error {
	viewerID := middleware.GetUserID(c)
	page, limit := pagination(c)

	rows, err := database.Pool.Query(context.Background(), `
		SELECT
			g.id, g.name, g.description, g.image_url, g.created_by, g.is_private, g.created_at,
			(SELECT COUNT(*) FROM group_members WHERE group_id = g.id AND status = 'approved') AS member_count,
			(SELECT COUNT(*) FROM group_members WHERE group_id = g.id AND status = 'pending') AS pending_count,
			gm.group_id, gm.user_id, gm.status, gm.join_message, gm.role, gm.joined_at
		FROM groups g
		LEFT JOIN group_members gm ON gm.group_id = g.id AND gm.user_id = NULLIF($1, '')::uuid
		ORDER BY g.created_at DESC
		LIMIT $2 OFFSET $3
	`, viewerID, limit, (page-1)*limit)

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Database error",
		})
	}
	defer rows.Close()

	var views []models.GroupView

	for rows.Next() {
		var g models.Group
		var memberCount, pendingCount int
		var gmGroupID, gmUserID *string
		var gmStatus *models.MembershipStatus
		var gmMessage, gmRole *string
		var gmJoinedAt *time.Time

		err := rows.Scan(
			&g.ID, &g.Name, &g.Description, &g.ImageURL, &g.CreatedBy, &g.IsPrivate, &g.CreatedAt,
			&memberCount, &pendingCount,
			&gmGroupID, &gmUserID, &gmStatus, &gmMessage, &gmRole, &gmJoinedAt,
		)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "Database error",
			})
		}

		var row *models.GroupMember
		if gmGroupID != nil {
			row = &models.GroupMember{
				GroupID:     *gmGroupID,
				UserID:      *gmUserID,
				Status:      *gmStatus,
				JoinMessage: gmMessage,
				Role:        *gmRole,
				JoinedAt:    *gmJoinedAt,
			}
		}

		views = append(views, buildGroupView(viewerID, g, row, memberCount, pendingCount))
	}

	if views == nil {
		views = []models.GroupView{}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    views,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
		},
	})
}

// GetGroupDetails returns one group with the viewer's affordance
func GetGroupDetails(c *fiber.Ctx) error {
	viewerID := middleware.GetUserID(c)
	groupID := c.Params("groupId")

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

	memberCount, pendingCount, err := groupCounts(groupID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Database error",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    buildGroupView(viewerID, group, row, memberCount, pendingCount),
	})
}

// CreateGroup creates a study group owned by the caller
func CreateGroup(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	var req CreateGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if strings.TrimSpace(req.Name) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Group name is required",
		})
	}

	var group models.Group
	err := database.Pool.QueryRow(context.Background(), `
		INSERT INTO groups (id, name, description, image_url, created_by, is_private, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, name, description, image_url, created_by, is_private, created_at
	`, newID(), req.Name, req.Description, req.ImageURL, userID, req.IsPrivate, time.Now()).
		Scan(&group.ID, &group.Name, &group.Description, &group.ImageURL,
			&group.CreatedBy, &group.IsPrivate, &group.CreatedAt)

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to create group",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    buildGroupView(userID, group, nil, 0, 0),
	})
}

// UpdateGroup updates group settings; creator only
func UpdateGroup(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	groupID := c.Params("groupId")

	var req UpdateGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

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

	if !membership.CanModerate(userID, group) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"error":   "Only group creator can update group",
		})
	}

	// Build update from the fields that were sent
	query := "UPDATE groups SET id = id"
	args := []interface{}{}
	argCount := 1

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   "Group name cannot be empty",
			})
		}
		query += ", name = $" + strconv.Itoa(argCount)
		args = append(args, *req.Name)
		argCount++
	}

	if req.Description != nil {
		query += ", description = $" + strconv.Itoa(argCount)
		args = append(args, *req.Description)
		argCount++
	}

	if req.ImageURL != nil {
		query += ", image_url = $" + strconv.Itoa(argCount)
		args = append(args, *req.ImageURL)
		argCount++
	}

	if req.IsPrivate != nil {
		query += ", is_private = $" + strconv.Itoa(argCount)
		args = append(args, *req.IsPrivate)
		argCount++
	}

	query += " WHERE id = $" + strconv.Itoa(argCount) +
		" RETURNING id, name, description, image_url, created_by, is_private, created_at"
	args = append(args, groupID)

	err = database.Pool.QueryRow(context.Background(), query, args...).
		Scan(&group.ID, &group.Name, &group.Description, &group.ImageURL,
			&group.CreatedBy, &group.IsPrivate, &group.CreatedAt)

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to update group",
		})
	}

	memberCount, pendingCount, err := groupCounts(groupID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Database error",
		})
	}

	row, _ := fetchMembership(groupID, userID)
	return c.JSON(fiber.Map{
		"success": true,
		"data":    buildGroupView(userID, group, row, memberCount, pendingCount),
	})
}

// DeleteGroup removes a group and, via cascade, its memberships and posts;
// creator only
func DeleteGroup(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	groupID := c.Params("groupId")

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

	if !membership.CanModerate(userID, group) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"error":   "Only group creator can delete group",
		})
	}

	if _, err := database.Pool.Exec(context.Background(),
		"DELETE FROM groups WHERE id = $1", groupID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to delete group",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Group deleted",
	})
}

// JoinGroup joins a public group immediately or files a pending request
// for a private one. The membership mutation is never applied
// optimistically: the caller gets the authoritative resulting state or an
// error with nothing changed.
func JoinGroup(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	groupID := c.Params("groupId")

	var req JoinGroupRequest
	// Body is optional for public groups
	_ = c.BodyParser(&req)

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

	row, err := fetchMembership(groupID, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Database error",
		})
	}

	switch membership.Decide(userID, group, row) {
	case membership.Manage, membership.Enter:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"error":   "You are already a member of this group",
		})
	case membership.Pending:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"error":   "Your request is already pending",
		})
	}

	status := models.StatusApproved
	var joinMessage *string
	if group.IsPrivate {
		message := strings.TrimSpace(req.Message)
		if message == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   "A message is required to request joining a private group",
			})
		}
		status = models.StatusPending
		joinMessage = &message
	}

	// A stale rejected row is replaced in the same transaction as the new
	// request, so the (group, user) uniqueness invariant holds throughout
	tx, err := database.Pool.Begin(context.Background())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Database error",
		})
	}
	defer tx.Rollback(context.Background())

	if row != nil && row.Status == models.StatusRejected {
		if _, err := tx.Exec(context.Background(),
			"DELETE FROM group_members WHERE group_id = $1 AND user_id = $2",
			groupID, userID); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "Database error",
			})
		}
	}

	var member models.GroupMember
	err = tx.QueryRow(context.Background(), `
		INSERT INTO group_members (group_id, user_id, status, join_message, role, joined_at)
		VALUES ($1, $2, $3, $4, 'member', $5)
		RETURNING group_id, user_id, status, join_message, role, joined_at
	`, groupID, userID, status, joinMessage, time.Now()).
		Scan(&member.GroupID, &member.UserID, &member.Status, &member.JoinMessage, &member.Role, &member.JoinedAt)

	if err != nil {
		// The membership read and this insert are not atomic; a concurrent
		// join that won the race hits the (group_id, user_id) key. Report it
		// as the same conflict the up-front check would have caught.
		if isUniqueViolation(err) {
			msg := "You are already a member of this group"
			if status == models.StatusPending {
				msg = "Your request is already pending"
			}
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"success": false,
				"error":   msg,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to join group",
		})
	}

	if err := tx.Commit(context.Background()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Database error",
		})
	}

	memberCount, pendingCount, err := groupCounts(groupID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Database error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"membership": member,
			"group":      buildGroupView(userID, group, &member, memberCount, pendingCount),
		},
	})
}

// LeaveGroup removes the caller's membership row. The creator cannot leave
// their own group; they delete it instead.
func LeaveGroup(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	groupID := c.Params("groupId")

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

	if group.CreatedBy == userID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Group creator cannot leave their own group",
		})
	}

	if _, err := database.Pool.Exec(context.Background(),
		"DELETE FROM group_members WHERE group_id = $1 AND user_id = $2",
		groupID, userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to leave group",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Left group",
	})
}

// GetJoinRequests returns the pending request list with requester
// profiles; creator only
func GetJoinRequests(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	groupID := c.Params("groupId")

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

	if !membership.CanModerate(userID, group) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"error":   "Only group creator can view join requests",
		})
	}

	rows, err := database.Pool.Query(context.Background(), `
		SELECT gm.group_id, gm.user_id, gm.join_message, gm.joined_at,
		       pr.id, pr.username, pr.full_name, pr.avatar_url
		FROM group_members gm
		INNER JOIN profiles pr ON gm.user_id = pr.id
		WHERE gm.group_id = $1 AND gm.status = 'pending'
		ORDER BY gm.joined_at ASC
	`, groupID)

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Database error",
		})
	}
	defer rows.Close()

	var requests []models.JoinRequest

	for rows.Next() {
		var r models.JoinRequest
		err := rows.Scan(&r.GroupID, &r.UserID, &r.JoinMessage, &r.JoinedAt,
			&r.Profile.ID, &r.Profile.Username, &r.Profile.FullName, &r.Profile.AvatarURL)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "Database error",
			})
		}
		requests = append(requests, r)
	}

	if requests == nil {
		requests = []models.JoinRequest{}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    requests,
	})
}

// ApproveRequest transitions a pending membership to approved; creator
// only. Approving an already-approved membership is a no-op success.
func ApproveRequest(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	groupID := c.Params("groupId")
	targetID := c.Params("userId")

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

	if !membership.CanModerate(userID, group) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"error":   "Only group creator can approve requests",
		})
	}

	row, err := fetchMembership(groupID, targetID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Database error",
		})
	}

	// Approving a non-existent request is not representable
	if row == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "No membership request for this user",
		})
	}

	if row.Status != models.StatusApproved {
		if !row.Status.Approvable() {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"success": false,
				"error":   "Only pending requests can be approved",
			})
		}

		// status guard repeated in SQL in case the row changed since the read
		_, err = database.Pool.Exec(context.Background(),
			"UPDATE group_members SET status = 'approved' WHERE group_id = $1 AND user_id = $2 AND status = 'pending'",
			groupID, targetID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "Failed to approve request",
			})
		}
	}

	memberCount, pendingCount, err := groupCounts(groupID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Database error",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"memberCount":  memberCount,
			"pendingCount": pendingCount,
		},
	})
}

// RejectRequest deletes the membership row entirely; creator only.
// Rejecting an already-absent row is a no-op success.
func RejectRequest(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	groupID := c.Params("groupId")
	targetID := c.Params("userId")

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

	if !membership.CanModerate(userID, group) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"error":   "Only group creator can reject requests",
		})
	}

	_, err = database.Pool.Exec(context.Background(),
		"DELETE FROM group_members WHERE group_id = $1 AND user_id = $2",
		groupID, targetID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to reject request",
		})
	}

	memberCount, pendingCount, err := groupCounts(groupID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Database error",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"memberCount":  memberCount,
			"pendingCount": pendingCount,
		},
	})
}

// GetGroupMembers returns the approved member list with profiles
func GetGroupMembers(c *fiber.Ctx) error {
	viewerID := c.Locals("userID").(string)
	groupID := c.Params("groupId")

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

	rows, err := database.Pool.Query(context.Background(), `
		SELECT pr.id, pr.username, pr.full_name, pr.avatar_url
		FROM profiles pr
		INNER JOIN group_members gm ON pr.id = gm.user_id
		WHERE gm.group_id = $1 AND gm.status = 'approved'
		ORDER BY gm.joined_at ASC
	`, groupID)

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Database error",
		})
	}
	defer rows.Close()

	var members []models.Author

	for rows.Next() {
		var a models.Author
		if err := rows.Scan(&a.ID, &a.Username, &a.FullName, &a.AvatarURL); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "Database error",
			})
		}
		members = append(members, a)
	}

	if members == nil {
		members = []models.Author{}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    members,
	})
}
