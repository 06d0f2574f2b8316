package authz

import (
	"testing"

	"inkpost/backend/app/models"

	"github.com/stretchr/testify/assert"
)

func TestRoleGate(t *testing.T) {
	assert.True(t, RoleGate(models.RoleAuthor).Allowed)

	d := RoleGate(models.RoleReader)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonRole, d.Reason)

	assert.False(t, RoleGate("").Allowed)
}

func TestOwnershipGate(t *testing.T) {
	alice := Identity{ID: "u-1", Username: "alice", Role: models.RoleAuthor}

	assert.True(t, OwnershipGate(alice, "u-1").Allowed)
	assert.False(t, OwnershipGate(alice, "u-2").Allowed)
	t.Run("Should never match an empty identity against an empty owner", func(t *testing.T) {
		assert.False(t, OwnershipGate(Identity{}, "").Allowed)
	})
}

func TestCanView(t *testing.T) {
	owner := &Identity{ID: "u-1", Role: models.RoleAuthor}
	other := &Identity{ID: "u-2", Role: models.RoleAuthor}
	published := &models.Post{AuthorID: "u-1", Status: models.PostPublished}
	hidden := &models.Post{AuthorID: "u-1", Status: models.PostHidden}

	assert.True(t, CanView(nil, published))
	assert.True(t, CanView(other, published))

	assert.False(t, CanView(nil, hidden))
	assert.False(t, CanView(other, hidden), "another author cannot see hidden content")
	assert.True(t, CanView(owner, hidden))
}

func TestViewerID(t *testing.T) {
	assert.Equal(t, "", ViewerID(nil))
	assert.Equal(t, "u-9", ViewerID(&Identity{ID: "u-9"}))
}
