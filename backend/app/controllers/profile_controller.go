package controllers

import (
	"net/http"

	"inkpost/backend/app/dto"
	"inkpost/backend/app/middleware"
	"inkpost/backend/app/services"
)

type ProfileController struct {
	users    *services.UserService
	posts    *services.PostService
	comments *services.CommentService
	sessions *Sessions
	render   Renderer
}

func NewProfileController(users *services.UserService, posts *services.PostService, comments *services.CommentService, sessions *Sessions, render Renderer) *ProfileController {
	return &ProfileController{users: users, posts: posts, comments: comments, sessions: sessions, render: render}
}

// Get GET /profile/{username}
func (c *ProfileController) Get(w http.ResponseWriter, r *http.Request) {
	u, err := c.users.Profile(r.Context(), r.PathValue("username"))
	if err != nil {
		c.render.Error(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Successfully loaded the profile.", dto.ProfileResponse{
		Username: u.Username, Role: u.Role, CreatedAt: u.CreatedAt,
	})
}

// Posts GET /profile/{username}/posts
func (c *ProfileController) Posts(w http.ResponseWriter, r *http.Request) {
	posts, err := c.posts.ListByAuthor(r.Context(), middleware.Identity(r.Context()), r.PathValue("username"))
	if err != nil {
		c.render.Error(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Successfully loaded the user posts.", dto.NewPostResponses(posts))
}

// Comments GET /profile/{username}/comments
func (c *ProfileController) Comments(w http.ResponseWriter, r *http.Request) {
	comments, err := c.comments.ListByAuthor(r.Context(), middleware.Identity(r.Context()), r.PathValue("username"))
	if err != nil {
		c.render.Error(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, "Successfully loaded the user comments.", dto.NewCommentResponses(comments))
}

// UpgradeRole PATCH /profile/role promotes the caller to AUTHOR and
// reissues the caller's session so this client sees the new role. Other
// tokens already issued keep their original role until they expire.
func (c *ProfileController) UpgradeRole(w http.ResponseWriter, r *http.Request) {
	id, err := caller(r)
	if err != nil {
		c.render.Error(w, r, err)
		return
	}
	u, changed, err := c.users.UpgradeRole(r.Context(), id.ID)
	if err != nil {
		c.render.Error(w, r, err)
		return
	}
	if id.Role != u.Role {
		if err := c.sessions.Issue(w, u); err != nil {
			c.render.Error(w, r, err)
			return
		}
	}
	msg := "User already has Author role."
	if changed {
		msg = "Successfully upgraded the user role to Author."
	}
	writeOK(w, http.StatusOK, msg, dto.ProfileResponse{
		Username: u.Username, Email: u.Email, Role: u.Role, CreatedAt: u.CreatedAt,
	})
}
