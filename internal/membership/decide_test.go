package membership

import (
	"testing"

	"gradi/server/internal/models"

	"github.com/stretchr/testify/assert"
)

func member(status models.MembershipStatus) *models.GroupMember {
	return &models.GroupMember{
		GroupID: "g1",
		UserID:  "u2",
		Status:  status,
		Role:    "member",
	}
}

func TestDecide(t *testing.T) {
	public := models.Group{ID: "g1", Name: "Calculus", CreatedBy: "u1", IsPrivate: false}
	private := models.Group{ID: "g2", Name: "Thesis", CreatedBy: "u1", IsPrivate: true}

	tests := []struct {
		name     string
		viewerID string
		group    models.Group
		row      *models.GroupMember
		want     Affordance
	}{
		{"anonymous viewer gets sign-in", "", public, nil, SignIn},
		{"anonymous viewer on private group gets sign-in", "", private, nil, SignIn},
		{"creator manages public group", "u1", public, nil, Manage},
		{"creator manages private group", "u1", private, nil, Manage},
		{"creator wins even over a pending row", "u1", private, member(models.StatusPending), Manage},
		{"approved member enters", "u2", private, member(models.StatusApproved), Enter},
		{"pending requester waits", "u2", private, member(models.StatusPending), Pending},
		{"no row on public group joins", "u2", public, nil, Join},
		{"no row on private group requests", "u2", private, nil, Request},
		{"rejected row re-requests on private group", "u2", private, member(models.StatusRejected), Request},
		{"rejected row re-joins on public group", "u2", public, member(models.StatusRejected), Join},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.viewerID, tt.group, tt.row))
		})
	}
}

func TestDecideIsPure(t *testing.T) {
	g := models.Group{ID: "g1", CreatedBy: "u1", IsPrivate: true}
	row := member(models.StatusPending)

	first := Decide("u2", g, row)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Decide("u2", g, row))
	}
	assert.Equal(t, models.StatusPending, row.Status, "Decide must not mutate the row")
}

func TestGrantsEntry(t *testing.T) {
	assert.True(t, Enter.GrantsEntry())
	assert.True(t, Manage.GrantsEntry())
	assert.False(t, Pending.GrantsEntry())
	assert.False(t, Join.GrantsEntry())
	assert.False(t, Request.GrantsEntry())
	assert.False(t, SignIn.GrantsEntry())
}

func TestViewerStatus(t *testing.T) {
	assert.Equal(t, models.StatusNone, ViewerStatus(nil))
	assert.Equal(t, models.StatusApproved, ViewerStatus(member(models.StatusApproved)))
	assert.Equal(t, models.StatusPending, ViewerStatus(member(models.StatusPending)))
	// rejected stays visible as rejected, not none
	assert.Equal(t, models.StatusRejected, ViewerStatus(member(models.StatusRejected)))
}

func TestCanModerate(t *testing.T) {
	g := models.Group{ID: "g1", CreatedBy: "u1"}
	assert.True(t, CanModerate("u1", g))
	assert.False(t, CanModerate("u2", g))
	assert.False(t, CanModerate("", g))
}

func TestCanViewPosts(t *testing.T) {
	public := models.Group{ID: "g1", CreatedBy: "u1", IsPrivate: false}
	private := models.Group{ID: "g2", CreatedBy: "u1", IsPrivate: true}

	assert.False(t, CanViewPosts("", public, nil))
	assert.True(t, CanViewPosts("u2", public, nil))
	assert.True(t, CanViewPosts("u1", private, nil), "creator reads own private group")
	assert.True(t, CanViewPosts("u2", private, member(models.StatusApproved)))
	assert.False(t, CanViewPosts("u2", private, member(models.StatusPending)))
	assert.False(t, CanViewPosts("u2", private, nil))
	assert.False(t, CanViewPosts("u2", private, member(models.StatusRejected)))
}

func TestCanViewPost(t *testing.T) {
	private := models.Group{ID: "g2", CreatedBy: "u1", IsPrivate: true}

	// main-feed posts carry no group and are visible to everyone
	assert.True(t, CanViewPost("", nil, nil))
	assert.True(t, CanViewPost("u2", nil, nil))

	// holding a private group's post ID grants nothing without membership
	assert.False(t, CanViewPost("", &private, nil))
	assert.False(t, CanViewPost("u2", &private, nil))
	assert.False(t, CanViewPost("u2", &private, member(models.StatusPending)))
	assert.False(t, CanViewPost("u2", &private, member(models.StatusRejected)))

	assert.True(t, CanViewPost("u1", &private, nil))
	assert.True(t, CanViewPost("u2", &private, member(models.StatusApproved)))
}
