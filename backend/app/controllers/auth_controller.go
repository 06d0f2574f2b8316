package controllers

import (
	"fmt"
	"net/http"

	"inkpost/backend/app/dto"
	"inkpost/backend/app/middleware"
	"inkpost/backend/app/services"
)

type AuthController struct {
	Users    *services.UserService
	Sessions *Sessions
	render   Renderer
}

func NewAuthController(users *services.UserService, sessions *Sessions, render Renderer) *AuthController {
	return &AuthController{Users: users, Sessions: sessions, render: render}
}

// SignUp POST /sign-up
func (c *AuthController) SignUp(w http.ResponseWriter, r *http.Request) {
	var req dto.SignUpRequest
	if err := decodeJSON(r, &req); err != nil {
		c.render.Error(w, r, err)
		return
	}
	u, err := c.Users.SignUp(r.Context(), req)
	if err != nil {
		c.render.Error(w, r, err)
		return
	}
	if err := c.Sessions.Issue(w, u); err != nil {
		c.render.Error(w, r, err)
		return
	}
	writeOK(w, http.StatusCreated, fmt.Sprintf("Successfully signed up as %s.", u.Username), dto.NewUserResponse(u))
}

// LogIn POST /log-in
func (c *AuthController) LogIn(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		c.render.Error(w, r, err)
		return
	}
	u, err := c.Users.Authenticate(r.Context(), req)
	if err != nil {
		c.render.Error(w, r, err)
		return
	}
	if err := c.Sessions.Issue(w, u); err != nil {
		c.render.Error(w, r, err)
		return
	}
	writeOK(w, http.StatusOK, fmt.Sprintf("Successfully logged in as %s.", u.Username), dto.NewUserResponse(u))
}

// LogOut POST /log-out
func (c *AuthController) LogOut(w http.ResponseWriter, r *http.Request) {
	c.Sessions.Clear(w)
	writeOK(w, http.StatusOK, "Successfully logged out.", nil)
}

// Me GET /me reports the identity carried by the session, if any.
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	id := middleware.Identity(r.Context())
	if id == nil {
		writeJSON(w, http.StatusOK, dto.MeResponse{Success: true, Message: "User is not authenticated."})
		return
	}
	writeJSON(w, http.StatusOK, dto.MeResponse{
		Success: true,
		Message: "User is authenticated.",
		Data:    &dto.UserResponse{ID: id.ID, Username: id.Username, Email: id.Email, Role: id.Role},
	})
}
