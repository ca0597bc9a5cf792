package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthChecker は外部ストアの疎通確認
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthHandler はヘルスチェックAPIのハンドラー
type HealthHandler struct {
	checkers map[string]HealthChecker
}

// NewHealthHandler は新しいHealthHandlerインスタンスを作成
func NewHealthHandler(checkers map[string]HealthChecker) *HealthHandler {
	return &HealthHandler{checkers: checkers}
}

// GetHealth はサービスと各ストアの状態を返す
// GET /api/health
func (h *HealthHandler) GetHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	stores := gin.H{}
	status := "healthy"
	for name, checker := range h.checkers {
		if err := checker.HealthCheck(ctx); err != nil {
			stores[name] = "unhealthy: " + err.Error()
			status = "degraded"
			continue
		}
		stores[name] = "healthy"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  status,
		"service": "goplanner",
		"stores":  stores,
	})
}
