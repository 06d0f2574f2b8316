package controllers

import (
	"context"
	"net/http"
	"time"

	"inkpost/backend/app/apperr"
	"inkpost/backend/app/dto"

	"gorm.io/gorm"
)

type HTTPController struct {
	db     *gorm.DB
	render Renderer
}

func NewHTTPController(db *gorm.DB, render Renderer) *HTTPController {
	return &HTTPController{db: db, render: render}
}

// Ping GET /ping reports liveness and database reachability.
func (c *HTTPController) Ping(w http.ResponseWriter, r *http.Request) {
	sqlDB, err := c.db.DB()
	if err == nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		c.render.Error(w, r, apperr.Wrap(apperr.KindInternal, "database unavailable", err))
		return
	}
	writeOK(w, http.StatusOK, "pong", nil)
}

// NotFound answers every unmatched route.
func (c *HTTPController) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, dto.Response{Success: false, Message: "Oops... It seems like you are lost!"})
}
