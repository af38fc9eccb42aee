package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const Version = "1.0.0"

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db  Pinger
	now func() time.Time
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db, now: time.Now}
}

func (h *HealthHandler) Register(router gin.IRoutes) {
	router.GET("/", h.root)
	router.GET("/health", h.health)
}

func (h *HealthHandler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Flight Booking API is running",
		"version": Version,
		"docs":    "/api/docs",
	})
}

func (h *HealthHandler) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status, database, code := "healthy", "connected", http.StatusOK
	if err := h.db.Ping(ctx); err != nil {
		_ = c.Error(err)
		status, database, code = "degraded", "disconnected", http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":    status,
		"database":  database,
		"timestamp": h.now().UTC().Format(time.RFC3339),
	})
}
