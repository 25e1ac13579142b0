package route

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-vendas/internal/adapter/api/controller"
	"github.com/hugohenrick/erp-vendas/internal/ledger"
	"github.com/hugohenrick/erp-vendas/pkg/logger"
)

// HealthChecker verifica a disponibilidade do armazenamento
type HealthChecker func(ctx context.Context) error

// SetupRoutes registra todas as rotas da API em /api/v1
func SetupRoutes(r *gin.Engine, service *ledger.Service, log logger.Logger, health HealthChecker) {
	v1 := r.Group("/api/v1")

	v1.GET("/health", func(c *gin.Context) {
		if health != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := health(ctx); err != nil {
				log.Error("health check falhou", "error", err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	RegisterSaleRoutes(v1, controller.NewSaleController(service, log))
	RegisterClientRoutes(v1, controller.NewClientController(service, log))
}
