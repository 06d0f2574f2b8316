package repo

import (
	"context"

	"inkpost/backend/app/models"

	"gorm.io/gorm"
)

type CommentRepository struct{ db *gorm.DB }

func NewCommentRepository(db *gorm.DB) *CommentRepository { return &CommentRepository{db: db} }

func (r *CommentRepository) Create(ctx context.Context, c *models.Comment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CommentRepository) FindOwned(ctx context.Context, id, authorID string) (*models.Comment, error) {
	var c models.Comment
	if err := r.db.WithContext(ctx).Where("id = ? AND author_id = ?", id, authorID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CommentRepository) FindByID(ctx context.Context, id string) (*models.Comment, error) {
	var c models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author", func(db *gorm.DB) *gorm.DB { return db.Select("id", "username") }).
		Where("comments.id = ?", id).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CommentRepository) UpdateOwned(ctx context.Context, id, authorID, content string) error {
	return r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("id = ? AND author_id = ?", id, authorID).Update("content", content).Error
}

func (r *CommentRepository) DeleteOwned(ctx context.Context, id, authorID string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND author_id = ?", id, authorID).Delete(&models.Comment{})
	return res.RowsAffected > 0, res.Error
}

func (r *CommentRepository) ListByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author", func(db *gorm.DB) *gorm.DB { return db.Select("id", "username") }).
		Where("post_id = ?", postID).Order("created_at ASC").Find(&comments).Error
	return comments, err
}

// ListByAuthor lists the comments written by username on posts visible to
// viewerID.
func (r *CommentRepository) ListByAuthor(ctx context.Context, username, viewerID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author", func(db *gorm.DB) *gorm.DB { return db.Select("id", "username") }).
		Joins("JOIN users ON users.id = comments.author_id").
		Joins("JOIN posts ON posts.id = comments.post_id").
		Scopes(VisibleTo(viewerID)).
		Where("users.username = ?", username).
		Order("comments.created_at DESC").Find(&comments).Error
	return comments, err
}
