package controllers

import (
	"net/http"

	"inkpost/backend/app/apperr"
	"inkpost/backend/app/authz"
	"inkpost/backend/app/dto"
	"inkpost/backend/app/middleware"
	"inkpost/backend/app/models"
	"inkpost/backend/app/services"
)

type PostController struct {
	Posts  *services.PostService
	render Renderer
}

func NewPostController(posts *services.PostService, render Renderer) *PostController {
	return &PostController{Posts: posts, render: render}
}

// caller returns the verified identity of a RequireAuth route.
func caller(r *http.Request) (authz.Identity, error) {
	id := middleware.Identity(r.Context())
	if id == nil {
		return authz.Identity{}, apperr.Unauthenticated("Authentication required.")
	}
	return *id, nil
}

// List GET /posts
func (c *PostController) List(w http.ResponseWriter, r *http.Request) {
	posts, err := c.Posts.ListPublished(r.Context())
	if err != nil {
		c.render.Error(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Successfully loaded all posts.", dto.NewPostResponses(posts))
}

// Get GET /posts/{id}
func (c *PostController) Get(w http.ResponseWriter, r *http.Request) {
	p, err := c.Posts.Get(r.Context(), middleware.Identity(r.Context()), r.PathValue("id"))
	if err != nil {
		c.render.Error(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Successfully loaded the post.", dto.NewPostDetailResponse(p))
}

// Create POST /posts
func (c *PostController) Create(w http.ResponseWriter, r *http.Request) {
	id, err := caller(r)
	if err != nil {
		c.render.Error(w, r, err)
		return
	}
	var req dto.PostRequest
	if err := decodeJSON(r, &req); err != nil {
		c.render.Error(w, r, err)
		return
	}
	p, err := c.Posts.Create(r.Context(), id, req)
	if err != nil {
		c.render.Error(w, r, err)
		return
	}
	writeOK(w, http.StatusCreated, "Successfully created the post.", dto.NewPostResponse(p))
}

// Update PATCH /posts/{id}
func (c *PostController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := caller(r)
	if err != nil {
		c.render.Error(w, r, err)
		return
	}
	var req dto.PostRequest
	if err := decodeJSON(r, &req); err != nil {
		c.render.Error(w, r, err)
		return
	}
	p, changed, err := c.Posts.Update(r.Context(), id, r.PathValue("id"), req)
	if err != nil {
		c.render.Error(w, r, err)
		return
	}
	msg := "Successfully updated the post."
	if !changed {
		msg = "Title and content are not changed. Post remains unchanged."
	}
	writeOK(w, http.StatusOK, msg, dto.NewPostResponse(p))
}

// Delete DELETE /posts/{id}
func (c *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := caller(r)
	if err != nil {
		c.render.Error(w, r, err)
		return
	}
	if err := c.Posts.Delete(r.Context(), id, r.PathValue("id")); err != nil {
		c.render.Error(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Successfully deleted the post.", nil)
}

// SetStatus PATCH /posts/{id}/status
func (c *PostController) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := caller(r)
	if err != nil {
		c.render.Error(w, r, err)
		return
	}
	var req dto.PostStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		c.render.Error(w, r, err)
		return
	}
	p, changed, err := c.Posts.SetStatus(r.Context(), id, r.PathValue("id"), req)
	if err != nil {
		c.render.Error(w, r, err)
		return
	}
	msg := "Post status is not changed. Post remains unchanged."
	if changed {
		msg = "Successfully hid the post."
		if req.Status == models.PostPublished {
			msg = "Successfully published the post."
		}
	}
	writeOK(w, http.StatusOK, msg, dto.NewPostResponse(p))
}

// Like POST /posts/{id}/like
func (c *PostController) Like(w http.ResponseWriter, r *http.Request) {
	p, err := c.Posts.Like(r.Context(), r.PathValue("id"))
	if err != nil {
		c.render.Error(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Liked the post.", dto.NewPostResponse(p))
}

// Comments GET /posts/{id}/comments
func (c *PostController) Comments(w http.ResponseWriter, r *http.Request) {
	comments, err := c.Posts.Comments(r.Context(), middleware.Identity(r.Context()), r.PathValue("id"))
	if err != nil {
		c.render.Error(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Successfully loaded the comments.", dto.NewCommentResponses(comments))
}
