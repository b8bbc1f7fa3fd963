package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type Handler struct{ db *gorm.DB }

func NewHandler(db *gorm.DB) *Handler { return &Handler{db: db} }

func (h *Handler) Health(c echo.Context) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		sqlDB, err := h.db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]any{
				"status": "degraded",
				"time":   now,
				"error":  err.Error(),
			})
		}
	}
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   now,
	})
}
