package services

import (
	"context"
	"errors"
	"fmt"

	"inkpost/backend/app/apperr"
	"inkpost/backend/app/authz"
	"inkpost/backend/app/dto"
	"inkpost/backend/app/models"
	"inkpost/backend/app/repo"
	"inkpost/backend/app/validation"

	"gorm.io/gorm"
)

var errCommentNotFound = apperr.NotFound("Comment not found.")

type CommentService struct {
	comments *repo.CommentRepository
	posts    *repo.PostRepository
}

func NewCommentService(comments *repo.CommentRepository, posts *repo.PostRepository) *CommentService {
	return &CommentService{comments: comments, posts: posts}
}

// Create adds a comment to a post the caller can see.
func (s *CommentService) Create(ctx context.Context, id authz.Identity, postID string, req dto.CommentRequest) (*models.Comment, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	p, err := s.posts.FindVisible(ctx, postID, id.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find post: %w", err)
	}
	if !authz.CanView(&id, p) {
		return nil, errPostNotFound
	}
	c := &models.Comment{Content: req.Content, PostID: p.ID, AuthorID: id.ID}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return s.reload(ctx, c.ID)
}

func (s *CommentService) owned(ctx context.Context, id authz.Identity, commentID string) (*models.Comment, error) {
	c, err := s.comments.FindOwned(ctx, commentID, id.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find comment: %w", err)
	}
	if !authz.OwnershipGate(id, c.AuthorID).Allowed {
		return nil, errCommentNotFound
	}
	return c, nil
}

func (s *CommentService) reload(ctx context.Context, commentID string) (*models.Comment, error) {
	c, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("reload comment: %w", err)
	}
	return c, nil
}

func (s *CommentService) Update(ctx context.Context, id authz.Identity, commentID string, req dto.CommentRequest) (*models.Comment, error) {
	if _, err := s.owned(ctx, id, commentID); err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if err := s.comments.UpdateOwned(ctx, commentID, id.ID, req.Content); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return s.reload(ctx, commentID)
}

func (s *CommentService) Delete(ctx context.Context, id authz.Identity, commentID string) error {
	if _, err := s.owned(ctx, id, commentID); err != nil {
		return err
	}
	deleted, err := s.comments.DeleteOwned(ctx, commentID, id.ID)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if !deleted {
		return errCommentNotFound
	}
	return nil
}

// ListByAuthor lists comments by username on posts visible to viewer.
func (s *CommentService) ListByAuthor(ctx context.Context, viewer *authz.Identity, username string) ([]models.Comment, error) {
	comments, err := s.comments.ListByAuthor(ctx, username, authz.ViewerID(viewer))
	if err != nil {
		return nil, fmt.Errorf("list user comments: %w", err)
	}
	return comments, nil
}
