package middleware

import (
	"context"
	"net/http"

	"inkpost/backend/app/apperr"
	jwtutil "inkpost/backend/app/jwt"
)

type ctxKey int

const ClaimsKey ctxKey = 1

// DefaultCookieName carries the session token.
const DefaultCookieName = "token"

// ErrorWriter renders an error in the API envelope.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

type Auth struct {
	Signer     *jwtutil.Signer
	CookieName string
	WriteError ErrorWriter
}

func (a *Auth) cookieName() string {
	if a.CookieName == "" {
		return DefaultCookieName
	}
	return a.CookieName
}

// claims verifies the session cookie, returning nil when it is missing or
// invalid.
func (a *Auth) claims(r *http.Request) *jwtutil.Claims {
	c, err := r.Cookie(a.cookieName())
	if err != nil || c.Value == "" {
		return nil
	}
	claims, err := a.Signer.Parse(c.Value)
	if err != nil {
		return nil
	}
	return claims
}

func (a *Auth) fail(w http.ResponseWriter, r *http.Request, err error) {
	if a.WriteError != nil {
		a.WriteError(w, r, err)
		return
	}
	w.WriteHeader(apperr.KindOf(err).Status())
}

// RequireAuth rejects requests without a valid session.
func (a *Auth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := a.claims(r)
		if claims == nil {
			a.fail(w, r, apperr.Unauthenticated("Authentication required."))
			return
		}
		ctx := context.WithValue(r.Context(), ClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth attaches the session claims when present and valid and
// otherwise lets the request through as anonymous.
func (a *Auth) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims := a.claims(r); claims != nil {
			r = r.WithContext(context.WithValue(r.Context(), ClaimsKey, claims))
		}
		next.ServeHTTP(w, r)
	})
}
