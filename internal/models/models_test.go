package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMembershipStatusValid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusApproved.Valid())
	assert.True(t, StatusRejected.Valid())

	// derived-only and garbage values are not storable
	assert.False(t, StatusNone.Valid())
	assert.False(t, MembershipStatus("banned").Valid())
	assert.False(t, MembershipStatus("").Valid())
}

func TestMembershipStatusApprovable(t *testing.T) {
	assert.True(t, StatusPending.Approvable())

	// a rejected row is re-requestable, never directly approvable, and an
	// approved row has nothing to transition
	assert.False(t, StatusRejected.Approvable())
	assert.False(t, StatusApproved.Approvable())
	assert.False(t, StatusNone.Approvable())
}

func TestTaskEnums(t *testing.T) {
	assert.True(t, TaskRequest.Valid())
	assert.True(t, TaskOffer.Valid())
	assert.False(t, TaskType("trade").Valid())

	for _, s := range []TaskStatus{TaskOpen, TaskInProgress, TaskCompleted, TaskClosed} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, TaskStatus("done").Valid())
}

func TestProfileToResponseHidesSecrets(t *testing.T) {
	hash := "bcrypt-hash"
	googleID := "google-sub"
	p := Profile{
		ID:           "u1",
		Email:        "ana@uni.edu",
		Password:     &hash,
		GoogleID:     &googleID,
		HasPassword:  true,
		AuthProvider: "email",
	}

	resp := p.ToResponse()
	assert.Equal(t, "u1", resp.ID)
	assert.Equal(t, "ana@uni.edu", resp.Email)
	assert.True(t, resp.HasPassword)
}
