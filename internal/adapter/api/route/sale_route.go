package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-vendas/internal/adapter/api/controller"
)

// RegisterSaleRoutes registra as rotas de vendas, pagamentos e baixa em lote
func RegisterSaleRoutes(r *gin.RouterGroup, saleController *controller.SaleController) {
	sales := r.Group("/sales")
	{
		sales.POST("", saleController.Create)
		sales.GET("", saleController.List)
		sales.GET("/:id", saleController.Get)
		sales.PUT("/:id", saleController.Update)
		sales.DELETE("/:id", saleController.Delete)
		sales.POST("/:id/payments", saleController.AddPayment)
		sales.DELETE("/payments/:payment_id", saleController.DeletePayment)
		sales.POST("/batch-payment/:client_id", saleController.BatchPayment)
	}
}
