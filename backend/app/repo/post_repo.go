package repo

import (
	"context"

	"inkpost/backend/app/models"

	"gorm.io/gorm"
)

type PostRepository struct{ db *gorm.DB }

func NewPostRepository(db *gorm.DB) *PostRepository { return &PostRepository{db: db} }

// VisibleTo restricts posts to PUBLISHED ones plus the viewer's own.
// An empty viewerID sees published posts only.
func VisibleTo(viewerID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if viewerID == "" {
			return db.Where("posts.status = ?", models.PostPublished)
		}
		return db.Where("(posts.status = ? OR posts.author_id = ?)", models.PostPublished, viewerID)
	}
}

func withAuthor(db *gorm.DB) *gorm.DB {
	return db.Preload("Author", func(db *gorm.DB) *gorm.DB { return db.Select("id", "username") })
}

func (r *PostRepository) ListPublished(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).Scopes(VisibleTo(""), withAuthor).
		Order("posts.created_at DESC").Find(&posts).Error
	return posts, err
}

// FindVisible loads a post with its comments if viewerID may read it.
func (r *PostRepository) FindVisible(ctx context.Context, id, viewerID string) (*models.Post, error) {
	var p models.Post
	err := r.db.WithContext(ctx).Scopes(VisibleTo(viewerID), withAuthor).
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("comments.created_at ASC") }).
		Preload("Comments.Author", func(db *gorm.DB) *gorm.DB { return db.Select("id", "username") }).
		Where("posts.id = ?", id).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindOwned loads a post only if authorID owns it.
func (r *PostRepository) FindOwned(ctx context.Context, id, authorID string) (*models.Post, error) {
	var p models.Post
	if err := r.db.WithContext(ctx).Where("id = ? AND author_id = ?", id, authorID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostRepository) ExistsByTitle(ctx context.Context, authorID, title string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("author_id = ? AND title = ?", authorID, title).Count(&count).Error
	return count > 0, err
}

func (r *PostRepository) Create(ctx context.Context, p *models.Post) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// UpdateOwned applies updates scoped by id and owner.
func (r *PostRepository) UpdateOwned(ctx context.Context, id, authorID string, updates map[string]any) error {
	return r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ? AND author_id = ?", id, authorID).Updates(updates).Error
}

// DeleteOwned removes the post and its comments in one transaction and
// reports whether the post existed for that owner.
func (r *PostRepository) DeleteOwned(ctx context.Context, id, authorID string) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Post{}).Where("id = ? AND author_id = ?", id, authorID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return nil
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ? AND author_id = ?", id, authorID).Delete(&models.Post{})
		deleted = res.RowsAffected > 0
		return res.Error
	})
	return deleted, err
}

// IncrementLikes bumps the like counter of a published post atomically.
func (r *PostRepository) IncrementLikes(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ? AND status = ?", id, models.PostPublished).
		UpdateColumn("likes", gorm.Expr("likes + ?", 1))
	return res.RowsAffected > 0, res.Error
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*models.Post, error) {
	var p models.Post
	if err := r.db.WithContext(ctx).Scopes(withAuthor).Where("posts.id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByAuthor lists the posts of username visible to viewerID.
func (r *PostRepository) ListByAuthor(ctx context.Context, username, viewerID string) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).Scopes(VisibleTo(viewerID), withAuthor).
		Joins("JOIN users ON users.id = posts.author_id").
		Where("users.username = ?", username).
		Order("posts.created_at DESC").Find(&posts).Error
	return posts, err
}
