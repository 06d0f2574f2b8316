package services

import (
	"context"
	"path/filepath"
	"testing"

	"inkpost/backend/app/apperr"
	"inkpost/backend/app/authz"
	"inkpost/backend/app/db"
	"inkpost/backend/app/dto"
	"inkpost/backend/app/models"
	"inkpost/backend/app/repo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	users    *UserService
	posts    *PostService
	comments *CommentService
}

func newFixture(t *testing.T, throttle LoginThrottle) *fixture {
	t.Helper()
	gdb, err := db.Connect(db.Config{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	userRepo := repo.NewUserRepository(gdb)
	postRepo := repo.NewPostRepository(gdb)
	commentRepo := repo.NewCommentRepository(gdb)
	return &fixture{
		db:       gdb,
		users:    NewUserService(userRepo, PasswordHasher{Cost: 4}, throttle),
		posts:    NewPostService(postRepo, commentRepo),
		comments: NewCommentService(commentRepo, postRepo),
	}
}

func (f *fixture) signUp(t *testing.T, username string) authz.Identity {
	t.Helper()
	u, err := f.users.SignUp(context.Background(), dto.SignUpRequest{
		Username: username, Email: username + "@example.com",
		Password: "password123", ConfirmPassword: "password123",
	})
	require.NoError(t, err)
	return authz.Identity{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
}

func (f *fixture) author(t *testing.T, username string) authz.Identity {
	t.Helper()
	id := f.signUp(t, username)
	u, _, err := f.users.UpgradeRole(context.Background(), id.ID)
	require.NoError(t, err)
	id.Role = u.Role
	return id
}

func (f *fixture) post(t *testing.T, id authz.Identity, title string) *models.Post {
	t.Helper()
	p, err := f.posts.Create(context.Background(), id, dto.PostRequest{Title: title, Content: "long enough content"})
	require.NoError(t, err)
	return p
}

func (f *fixture) hide(t *testing.T, id authz.Identity, p *models.Post) {
	t.Helper()
	_, _, err := f.posts.SetStatus(context.Background(), id, p.ID, dto.PostStatusRequest{Status: models.PostHidden})
	require.NoError(t, err)
}

func assertKind(t *testing.T, kind apperr.Kind, err error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, kind, apperr.KindOf(err), err.Error())
}
