package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nareswara/libris/pkg/response"
)

type HealthHandler struct {
	Pool *pgxpool.Pool
}

func NewHealthHandler(pool *pgxpool.Pool) *HealthHandler {
	return &HealthHandler{Pool: pool}
}

// Check GET /api/health
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.Pool.Ping(ctx); err != nil {
		response.JSON(c, response.Error[any](c, http.StatusServiceUnavailable, "database unreachable", nil))
		return
	}
	response.JSON(c, response.Success(c, http.StatusOK, gin.H{"status": "ok"}, "healthy", nil))
}
