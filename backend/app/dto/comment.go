package dto

import (
	"time"

	"inkpost/backend/app/models"
)

type CommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

type CommentResponse struct {
	ID        string          `json:"id"`
	Content   string          `json:"content"`
	AuthorID  string          `json:"authorId"`
	PostID    string          `json:"postId"`
	Author    *AuthorResponse `json:"author,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func NewCommentResponse(c *models.Comment) CommentResponse {
	resp := CommentResponse{
		ID:        c.ID,
		Content:   c.Content,
		AuthorID:  c.AuthorID,
		PostID:    c.PostID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.Author.Username != "" {
		resp.Author = &AuthorResponse{Username: c.Author.Username}
	}
	return resp
}

func NewCommentResponses(comments []models.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, NewCommentResponse(&comments[i]))
	}
	return out
}
