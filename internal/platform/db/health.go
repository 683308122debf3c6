package db

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

const healthPingTimeout = 5 * time.Second

// PoolStatus is the pool snapshot reported by the database health endpoint.
// Healthy means at least one connection is open.
type PoolStatus struct {
	TotalConns    int32  `json:"total_conns"`
	IdleConns     int32  `json:"idle_conns"`
	AcquiredConns int32  `json:"acquired_conns"`
	MaxConns      int32  `json:"max_conns"`
	AcquireCount  int64  `json:"acquire_count"`
	AcquireWait   string `json:"acquire_wait"`
	Healthy       bool   `json:"healthy"`
}

type healthReport struct {
	Status string     `json:"status"`
	Error  string     `json:"error,omitempty"`
	Pool   PoolStatus `json:"pool"`
}

func snapshotPool(pool *pgxpool.Pool) PoolStatus {
	stat := pool.Stat()
	return PoolStatus{
		TotalConns:    stat.TotalConns(),
		IdleConns:     stat.IdleConns(),
		AcquiredConns: stat.AcquiredConns(),
		MaxConns:      stat.MaxConns(),
		AcquireCount:  stat.AcquireCount(),
		AcquireWait:   stat.AcquireDuration().String(),
		Healthy:       stat.TotalConns() > 0,
	}
}

// HealthHandler serves the database health endpoint. A failed ping reports
// 503 with the pool snapshot attached, so operators can tell an exhausted
// pool from an unreachable server.
func HealthHandler(pool *pgxpool.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), healthPingTimeout)
		defer cancel()

		status := snapshotPool(pool)
		if err := pool.Ping(ctx); err != nil {
			status.Healthy = false
			return c.JSON(http.StatusServiceUnavailable, healthReport{
				Status: "unhealthy",
				Error:  err.Error(),
				Pool:   status,
			})
		}

		return c.JSON(http.StatusOK, healthReport{Status: "healthy", Pool: status})
	}
}
