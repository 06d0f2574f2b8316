package router

import (
	"net/http"

	"inkpost/backend/app/controllers"
	"inkpost/backend/app/middleware"
)

type Controllers struct {
	HTTP     *controllers.HTTPController
	Auth     *controllers.AuthController
	Posts    *controllers.PostController
	Comments *controllers.CommentController
	Profiles *controllers.ProfileController
}

func NewRouter(c Controllers, mw *middleware.Auth) http.Handler {
	mux := http.NewServeMux()
	required := func(h http.HandlerFunc) http.Handler { return mw.RequireAuth(h) }
	optional := func(h http.HandlerFunc) http.Handler { return mw.OptionalAuth(h) }

	mux.HandleFunc("GET /ping", c.HTTP.Ping)

	// auth
	mux.HandleFunc("POST /sign-up", c.Auth.SignUp)
	mux.HandleFunc("POST /log-in", c.Auth.LogIn)
	mux.Handle("POST /log-out", required(c.Auth.LogOut))
	mux.Handle("GET /me", optional(c.Auth.Me))

	// posts
	mux.HandleFunc("GET /posts", c.Posts.List)
	mux.Handle("GET /posts/{id}", optional(c.Posts.Get))
	mux.Handle("POST /posts", required(c.Posts.Create))
	mux.Handle("PATCH /posts/{id}", required(c.Posts.Update))
	mux.Handle("DELETE /posts/{id}", required(c.Posts.Delete))
	mux.Handle("PATCH /posts/{id}/status", required(c.Posts.SetStatus))
	mux.HandleFunc("POST /posts/{id}/like", c.Posts.Like)
	mux.Handle("GET /posts/{id}/comments", optional(c.Posts.Comments))

	// comments
	mux.Handle("POST /posts/{id}/comments", required(c.Comments.Create))
	mux.Handle("PATCH /comments/{id}", required(c.Comments.Update))
	mux.Handle("DELETE /comments/{id}", required(c.Comments.Delete))

	// profiles
	mux.Handle("PATCH /profile/role", required(c.Profiles.UpgradeRole))
	mux.HandleFunc("GET /profile/{username}", c.Profiles.Get)
	mux.Handle("GET /profile/{username}/posts", optional(c.Profiles.Posts))
	mux.Handle("GET /profile/{username}/comments", optional(c.Profiles.Comments))

	mux.HandleFunc("/", c.HTTP.NotFound)
	return mux
}
