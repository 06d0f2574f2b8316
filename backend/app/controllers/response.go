package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"inkpost/backend/app/apperr"
	"inkpost/backend/app/dto"
	"inkpost/backend/global"
)

const msgInternal = "Internal server error."

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeOK(w http.ResponseWriter, status int, msg string, data any) {
	writeJSON(w, status, dto.Response{Success: true, Message: msg, Data: data})
}

// Renderer maps errors onto the API envelope. In production internal
// failures are reported with a generic message.
type Renderer struct{ Production bool }

func (rd Renderer) Error(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperr.Error
	kind := apperr.KindOf(err)
	msg := msgInternal
	switch {
	case kind == apperr.KindInternal:
		global.Logger.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
		if !rd.Production {
			msg = err.Error()
		}
	case errors.As(err, &appErr):
		msg = appErr.Message
		if appErr.Err != nil {
			global.Logger.Warn().Err(appErr.Err).Str("kind", kind.String()).Str("path", r.URL.Path).Msg(appErr.Message)
		}
	}
	writeJSON(w, kind.Status(), dto.Response{Success: false, Message: msg})
}

// decodeJSON reads the request body into v. An empty body leaves v zero.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return apperr.Wrap(apperr.KindValidation, "Request body must be valid JSON.", err)
	}
	return nil
}
