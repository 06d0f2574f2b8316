package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"inkpost/backend/app/authz"
	jwtutil "inkpost/backend/app/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuth() *Auth {
	return &Auth{Signer: &jwtutil.Signer{Secret: []byte("test-secret"), Issuer: "inkpost"}}
}

// echo reports the caller's username, or "anonymous".
func echo(w http.ResponseWriter, r *http.Request) {
	id := Identity(r.Context())
	if id == nil {
		_, _ = w.Write([]byte("anonymous"))
		return
	}
	_, _ = w.Write([]byte(id.Username))
}

func request(t *testing.T, token string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: token})
	}
	return req
}

func TestRequireAuth(t *testing.T) {
	a := newAuth()
	alice := authz.Identity{ID: "u1", Username: "alice", Role: "READER"}
	valid, err := a.Signer.Sign(alice)
	require.NoError(t, err)

	expiredSigner := &jwtutil.Signer{Secret: a.Signer.Secret, Issuer: "inkpost", Now: func() time.Time { return time.Now().Add(-2 * time.Hour) }}
	expired, err := expiredSigner.Sign(alice)
	require.NoError(t, err)

	foreign, err := (&jwtutil.Signer{Secret: []byte("other"), Issuer: "inkpost"}).Sign(alice)
	require.NoError(t, err)

	cases := []struct {
		name   string
		token  string
		status int
		body   string
	}{
		{"valid", valid, http.StatusOK, "alice"},
		{"missing", "", http.StatusUnauthorized, ""},
		{"expired", expired, http.StatusUnauthorized, ""},
		{"foreign secret", foreign, http.StatusUnauthorized, ""},
		{"garbage", "not-a-jwt", http.StatusUnauthorized, ""},
	}
	h := a.RequireAuth(http.HandlerFunc(echo))
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, request(t, tc.token))
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.body, rec.Body.String())
		})
	}
}

func TestRequireAuthUsesErrorWriter(t *testing.T) {
	a := newAuth()
	var got error
	a.WriteError = func(w http.ResponseWriter, r *http.Request, err error) {
		got = err
		w.WriteHeader(http.StatusTeapot)
	}
	rec := httptest.NewRecorder()
	a.RequireAuth(http.HandlerFunc(echo)).ServeHTTP(rec, request(t, ""))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	require.Error(t, got)
	assert.Equal(t, "Authentication required.", got.Error())
}

func TestOptionalAuth(t *testing.T) {
	a := newAuth()
	valid, err := a.Signer.Sign(authz.Identity{ID: "u1", Username: "alice", Role: "AUTHOR"})
	require.NoError(t, err)
	h := a.OptionalAuth(http.HandlerFunc(echo))

	for token, want := range map[string]string{valid: "alice", "": "anonymous", "broken": "anonymous"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, request(t, token))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, want, rec.Body.String())
	}
}

func TestCustomCookieName(t *testing.T) {
	a := newAuth()
	a.CookieName = "session"
	valid, err := a.Signer.Sign(authz.Identity{ID: "u1", Username: "alice"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: valid})
	rec := httptest.NewRecorder()
	a.RequireAuth(http.HandlerFunc(echo)).ServeHTTP(rec, req)
	assert.Equal(t, "alice", rec.Body.String())

	rec = httptest.NewRecorder()
	a.RequireAuth(http.HandlerFunc(echo)).ServeHTTP(rec, request(t, valid))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
