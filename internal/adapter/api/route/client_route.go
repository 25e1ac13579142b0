package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-vendas/internal/adapter/api/controller"
)

// RegisterClientRoutes registra as consultas de contas a receber por cliente
func RegisterClientRoutes(r *gin.RouterGroup, clientController *controller.ClientController) {
	clients := r.Group("/clients")
	{
		clients.GET("/:id/balance", clientController.Balance)
		clients.GET("/:id/open-sales", clientController.OpenSales)
	}
}
