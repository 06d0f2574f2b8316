package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"inkpost/backend/app/apperr"
	"inkpost/backend/app/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, rd Renderer, err error) (int, dto.Response) {
	t.Helper()
	rec := httptest.NewRecorder()
	rd.Error(rec, httptest.NewRequest(http.MethodGet, "/posts", nil), err)
	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec.Code, resp
}

func TestRendererError(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")

	code, resp := render(t, Renderer{}, apperr.Conflict("Username is already taken."))
	assert.Equal(t, http.StatusConflict, code)
	assert.False(t, resp.Success)
	assert.Equal(t, "Username is already taken.", resp.Message)

	code, resp = render(t, Renderer{Production: true}, cause)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, msgInternal, resp.Message)

	_, resp = render(t, Renderer{}, cause)
	assert.Equal(t, cause.Error(), resp.Message)

	code, resp = render(t, Renderer{Production: true}, apperr.Wrap(apperr.KindNotFound, "Post not found.", cause))
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Post not found.", resp.Message)
}

func TestDecodeJSON(t *testing.T) {
	var req dto.LoginRequest
	r := httptest.NewRequest(http.MethodPost, "/log-in", strings.NewReader(`{"username":"alice","password":"pw"}`))
	require.NoError(t, decodeJSON(r, &req))
	assert.Equal(t, "alice", req.Username)

	r = httptest.NewRequest(http.MethodPost, "/log-in", strings.NewReader(`{"username":`))
	err := decodeJSON(r, &req)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	r = httptest.NewRequest(http.MethodPost, "/log-in", nil)
	assert.NoError(t, decodeJSON(r, &dto.LoginRequest{}))
}
