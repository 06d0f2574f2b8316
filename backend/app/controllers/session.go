package controllers

import (
	"net/http"
	"time"

	"inkpost/backend/app/authz"
	jwtutil "inkpost/backend/app/jwt"
	"inkpost/backend/app/models"
)

// Sessions issues and clears the session cookie. The cookie is HTTP-only,
// same-site restricted and Secure in production.
type Sessions struct {
	Signer     *jwtutil.Signer
	CookieName string
	Secure     bool
	SameSite   http.SameSite
}

func (s *Sessions) cookie(value string, maxAge int, expires time.Time) *http.Cookie {
	sameSite := s.SameSite
	if sameSite == 0 {
		sameSite = http.SameSiteStrictMode
	}
	return &http.Cookie{
		Name:     s.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Expires:  expires,
		HttpOnly: true,
		Secure:   s.Secure || sameSite == http.SameSiteNoneMode,
		SameSite: sameSite,
	}
}

// Issue signs a token for u and sets it on the response.
func (s *Sessions) Issue(w http.ResponseWriter, u *models.User) error {
	token, err := s.Signer.Sign(authz.Identity{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role})
	if err != nil {
		return err
	}
	ttl := s.Signer.TTL()
	http.SetCookie(w, s.cookie(token, int(ttl/time.Second), time.Now().Add(ttl)))
	return nil
}

func (s *Sessions) Clear(w http.ResponseWriter) {
	http.SetCookie(w, s.cookie("", -1, time.Unix(0, 0)))
}
