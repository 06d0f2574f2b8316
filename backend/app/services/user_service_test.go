package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"inkpost/backend/app/apperr"
	"inkpost/backend/app/dto"
	"inkpost/backend/app/models"
	"inkpost/backend/app/repo"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignUp(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	t.Run("Should create a reader with a hashed password", func(t *testing.T) {
		id := f.signUp(t, "alice")
		assert.Equal(t, models.RoleReader, id.Role)
		assert.NotEmpty(t, id.ID)

		var u models.User
		require.NoError(t, f.db.First(&u, "id = ?", id.ID).Error)
		assert.NotEqual(t, "password123", u.PasswordHash)
	})
	t.Run("Should reject a taken username", func(t *testing.T) {
		_, err := f.users.SignUp(ctx, dto.SignUpRequest{Username: "alice", Email: "other@example.com", Password: "password123", ConfirmPassword: "password123"})
		assertKind(t, apperr.KindConflict, err)
		assert.Equal(t, "This username is already taken.", err.Error())
	})
	t.Run("Should reject a taken e-mail", func(t *testing.T) {
		_, err := f.users.SignUp(ctx, dto.SignUpRequest{Username: "alice2", Email: "alice@example.com", Password: "password123", ConfirmPassword: "password123"})
		assertKind(t, apperr.KindConflict, err)
		assert.Equal(t, "This e-mail is already taken.", err.Error())
	})
	t.Run("Should validate the request", func(t *testing.T) {
		_, err := f.users.SignUp(ctx, dto.SignUpRequest{Username: "bob", Email: "bob@example.com", Password: "password123", ConfirmPassword: "password124"})
		assertKind(t, apperr.KindValidation, err)
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	id := f.signUp(t, "alice")

	u, err := f.users.Authenticate(ctx, dto.LoginRequest{Username: "alice", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, id.ID, u.ID)

	_, err = f.users.Authenticate(ctx, dto.LoginRequest{Username: "alice", Password: "wrong-password"})
	assertKind(t, apperr.KindUnauthenticated, err)

	_, err = f.users.Authenticate(ctx, dto.LoginRequest{Username: "nobody", Password: "password123"})
	assertKind(t, apperr.KindUnauthenticated, err)
	assert.Equal(t, msgInvalidCredentials, err.Error())

	_, err = f.users.Authenticate(ctx, dto.LoginRequest{Username: "alice"})
	assertKind(t, apperr.KindValidation, err)
}

func TestAuthenticateThrottle(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	f := newFixture(t, NewRedisThrottle(client, 2, time.Minute))
	f.signUp(t, "alice")

	for i := 0; i < 2; i++ {
		_, err := f.users.Authenticate(ctx, dto.LoginRequest{Username: "alice", Password: "nope-nope"})
		assertKind(t, apperr.KindUnauthenticated, err)
	}
	_, err := f.users.Authenticate(ctx, dto.LoginRequest{Username: "alice", Password: "password123"})
	assertKind(t, apperr.KindTooManyRequests, err)

	mr.FastForward(2 * time.Minute)
	_, err = f.users.Authenticate(ctx, dto.LoginRequest{Username: "alice", Password: "password123"})
	require.NoError(t, err)
	assert.False(t, mr.Exists(throttleKey("alice")))
}

func TestUpgradeRoleIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	id := f.signUp(t, "alice")

	u, changed, err := f.users.UpgradeRole(ctx, id.ID)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, models.RoleAuthor, u.Role)
	firstUpdate := u.UpdatedAt

	u, changed, err = f.users.UpgradeRole(ctx, id.ID)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, models.RoleAuthor, u.Role)
	assert.Equal(t, firstUpdate, u.UpdatedAt)

	_, _, err = f.users.UpgradeRole(ctx, "missing")
	assertKind(t, apperr.KindNotFound, err)
}

func TestProfile(t *testing.T) {
	f := newFixture(t, nil)
	f.signUp(t, "alice")

	u, err := f.users.Profile(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)

	_, err = f.users.Profile(context.Background(), "ghost")
	assertKind(t, apperr.KindNotFound, err)
}

type countingHasher struct {
	PasswordHasher
	verified []string
}

func (h *countingHasher) Verify(plain, hash string) bool {
	h.verified = append(h.verified, hash)
	return h.PasswordHasher.Verify(plain, hash)
}

func TestAuthenticateUnknownUserComparesHash(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.signUp(t, "alice")
	hasher := &countingHasher{PasswordHasher: PasswordHasher{Cost: 4}}
	users := NewUserService(repo.NewUserRepository(f.db), hasher, nil)

	_, err := users.Authenticate(ctx, dto.LoginRequest{Username: "alice", Password: "wrong-password"})
	assertKind(t, apperr.KindUnauthenticated, err)
	_, err = users.Authenticate(ctx, dto.LoginRequest{Username: "nobody", Password: "wrong-password"})
	assertKind(t, apperr.KindUnauthenticated, err)
	_, err = users.Authenticate(ctx, dto.LoginRequest{Username: "ghost", Password: "password123"})
	assertKind(t, apperr.KindUnauthenticated, err)

	require.Len(t, hasher.verified, 3)
	assert.True(t, strings.HasPrefix(hasher.verified[1], "$2a$04$"), "unknown user must be checked against a real bcrypt hash")
	assert.Equal(t, hasher.verified[1], hasher.verified[2])
	assert.NotEqual(t, hasher.verified[0], hasher.verified[1])
}
