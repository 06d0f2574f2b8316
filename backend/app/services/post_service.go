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

const msgPostNotFound = "Post not found."

var errPostNotFound = apperr.NotFound(msgPostNotFound)

type PostService struct {
	posts    *repo.PostRepository
	comments *repo.CommentRepository
}

func NewPostService(posts *repo.PostRepository, comments *repo.CommentRepository) *PostService {
	return &PostService{posts: posts, comments: comments}
}

func requireAuthor(id authz.Identity) error {
	if d := authz.RoleGate(id.Role); !d.Allowed {
		return apperr.Forbidden(d.Reason)
	}
	return nil
}

// owned loads a post scoped by id and owner. A post that exists but
// belongs to someone else is reported as not found.
func (s *PostService) owned(ctx context.Context, id authz.Identity, postID string) (*models.Post, error) {
	p, err := s.posts.FindOwned(ctx, postID, id.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find post: %w", err)
	}
	if !authz.OwnershipGate(id, p.AuthorID).Allowed {
		return nil, errPostNotFound
	}
	return p, nil
}

func (s *PostService) reload(ctx context.Context, postID string) (*models.Post, error) {
	p, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("reload post: %w", err)
	}
	return p, nil
}

func (s *PostService) ListPublished(ctx context.Context) ([]models.Post, error) {
	posts, err := s.posts.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// Get returns the post with its comments if viewer may read it.
func (s *PostService) Get(ctx context.Context, viewer *authz.Identity, postID string) (*models.Post, error) {
	p, err := s.posts.FindVisible(ctx, postID, authz.ViewerID(viewer))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find post: %w", err)
	}
	return p, nil
}

func (s *PostService) Create(ctx context.Context, id authz.Identity, req dto.PostRequest) (*models.Post, error) {
	if err := requireAuthor(id); err != nil {
		return nil, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	exists, err := s.posts.ExistsByTitle(ctx, id.ID, req.Title)
	if err != nil {
		return nil, fmt.Errorf("check title: %w", err)
	}
	if exists {
		return nil, apperr.Conflict("You already have a post with this title.")
	}
	p := &models.Post{Title: req.Title, Content: req.Content, AuthorID: id.ID, Status: models.PostPublished}
	if err := s.posts.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return p, nil
}

// Update changes title and content. changed is false when both already
// hold the requested values.
func (s *PostService) Update(ctx context.Context, id authz.Identity, postID string, req dto.PostRequest) (*models.Post, bool, error) {
	p, err := s.owned(ctx, id, postID)
	if err != nil {
		return nil, false, err
	}
	if err := requireAuthor(id); err != nil {
		return nil, false, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, false, err
	}
	updates := map[string]any{}
	if p.Title != req.Title {
		updates["title"] = req.Title
	}
	if p.Content != req.Content {
		updates["content"] = req.Content
	}
	if len(updates) == 0 {
		return p, false, nil
	}
	if err := s.posts.UpdateOwned(ctx, postID, id.ID, updates); err != nil {
		return nil, false, fmt.Errorf("update post: %w", err)
	}
	p, err = s.reload(ctx, postID)
	return p, err == nil, err
}

func (s *PostService) Delete(ctx context.Context, id authz.Identity, postID string) error {
	if _, err := s.owned(ctx, id, postID); err != nil {
		return err
	}
	if err := requireAuthor(id); err != nil {
		return err
	}
	deleted, err := s.posts.DeleteOwned(ctx, postID, id.ID)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if !deleted {
		return errPostNotFound
	}
	return nil
}

// SetStatus publishes or hides a post. changed is false when the post is
// already in the requested status.
func (s *PostService) SetStatus(ctx context.Context, id authz.Identity, postID string, req dto.PostStatusRequest) (*models.Post, bool, error) {
	p, err := s.owned(ctx, id, postID)
	if err != nil {
		return nil, false, err
	}
	if err := requireAuthor(id); err != nil {
		return nil, false, err
	}
	if err := validation.Struct(req); err != nil {
		return nil, false, err
	}
	if p.Status == req.Status {
		return p, false, nil
	}
	if err := s.posts.UpdateOwned(ctx, postID, id.ID, map[string]any{"status": req.Status}); err != nil {
		return nil, false, fmt.Errorf("update post status: %w", err)
	}
	p, err = s.reload(ctx, postID)
	return p, err == nil, err
}

// Like increments the like counter of a published post.
func (s *PostService) Like(ctx context.Context, postID string) (*models.Post, error) {
	ok, err := s.posts.IncrementLikes(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("like post: %w", err)
	}
	if !ok {
		return nil, errPostNotFound
	}
	return s.reload(ctx, postID)
}

// Comments lists the comments of a post visible to viewer.
func (s *PostService) Comments(ctx context.Context, viewer *authz.Identity, postID string) ([]models.Comment, error) {
	if _, err := s.Get(ctx, viewer, postID); err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// ListByAuthor lists the posts of username. Hidden posts are included only
// when viewer is that user.
func (s *PostService) ListByAuthor(ctx context.Context, viewer *authz.Identity, username string) ([]models.Post, error) {
	posts, err := s.posts.ListByAuthor(ctx, username, authz.ViewerID(viewer))
	if err != nil {
		return nil, fmt.Errorf("list user posts: %w", err)
	}
	return posts, nil
}
