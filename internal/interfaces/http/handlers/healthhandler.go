package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const healthPingTimeout = 2 * time.Second

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// HealthCheck handles GET /health. The database is pinged when configured;
// a failed ping is reported in the body and still answers 200.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	database := "unconfigured"
	if h.db != nil {
		database = "ok"
		if sqlDB, err := h.db.DB(); err != nil {
			database = "unavailable"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
			defer cancel()
			if err := sqlDB.PingContext(ctx); err != nil {
				database = "unavailable"
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"service":  "locates",
		"database": database,
	})
}
