package controllers

import (
	"net/http"

	"inkpost/backend/app/dto"
	"inkpost/backend/app/services"
)

type CommentController struct {
	Comments *services.CommentService
	render   Renderer
}

func NewCommentController(comments *services.CommentService, render Renderer) *CommentController {
	return &CommentController{Comments: comments, render: render}
}

// Create POST /posts/{id}/comments
func (c *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	id, err := caller(r)
	if err != nil {
		c.render.Error(w, r, err)
		return
	}
	var req dto.CommentRequest
	if err := decodeJSON(r, &req); err != nil {
		c.render.Error(w, r, err)
		return
	}
	cm, err := c.Comments.Create(r.Context(), id, r.PathValue("id"), req)
	if err != nil {
		c.render.Error(w, r, err)
		return
	}
	writeOK(w, http.StatusCreated, "Successfully created the comment.", dto.NewCommentResponse(cm))
}

// Update PATCH /comments/{id}
func (c *CommentController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := caller(r)
	if err != nil {
		c.render.Error(w, r, err)
		return
	}
	var req dto.CommentRequest
	if err := decodeJSON(r, &req); err != nil {
		c.render.Error(w, r, err)
		return
	}
	cm, err := c.Comments.Update(r.Context(), id, r.PathValue("id"), req)
	if err != nil {
		c.render.Error(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Successfully updated the comment.", dto.NewCommentResponse(cm))
}

// Delete DELETE /comments/{id}
func (c *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := caller(r)
	if err != nil {
		c.render.Error(w, r, err)
		return
	}
	if err := c.Comments.Delete(r.Context(), id, r.PathValue("id")); err != nil {
		c.render.Error(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Successfully deleted the comment.", nil)
}
