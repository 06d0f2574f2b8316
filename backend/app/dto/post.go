package dto

import (
	"time"

	"inkpost/backend/app/models"
)

type PostRequest struct {
	Title   string `json:"title" validate:"required,min=3,max=100"`
	Content string `json:"content" validate:"required,min=10"`
}

type PostStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PUBLISHED HIDDEN"`
}

type PostResponse struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Content   string          `json:"content"`
	Status    string          `json:"status"`
	Likes     int64           `json:"likes"`
	AuthorID  string          `json:"authorId"`
	Author    *AuthorResponse `json:"author,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type AuthorResponse struct {
	Username string `json:"username"`
}

func NewPostResponse(p *models.Post) PostResponse {
	resp := PostResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Status:    p.Status,
		Likes:     p.Likes,
		AuthorID:  p.AuthorID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.Author.Username != "" {
		resp.Author = &AuthorResponse{Username: p.Author.Username}
	}
	return resp
}

// PostDetailResponse is a single post with its comments, always an array.
type PostDetailResponse struct {
	PostResponse
	Comments []CommentResponse `json:"comments"`
}

func NewPostDetailResponse(p *models.Post) PostDetailResponse {
	return PostDetailResponse{PostResponse: NewPostResponse(p), Comments: NewCommentResponses(p.Comments)}
}

func NewPostResponses(posts []models.Post) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, NewPostResponse(&posts[i]))
	}
	return out
}
