package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-vendas/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-vendas/internal/ledger"
	"github.com/hugohenrick/erp-vendas/pkg/logger"
)

// ClientController gerencia as consultas de contas a receber por cliente
type ClientController struct {
	service *ledger.Service
	logger  logger.Logger
}

// NewClientController cria uma nova instância de ClientController
func NewClientController(service *ledger.Service, logger logger.Logger) *ClientController {
	return &ClientController{
		service: service,
		logger:  logger,
	}
}

// Balance retorna o saldo devedor do cliente
// @Summary Saldo devedor
// @Description Soma o saldo devedor das vendas não quitadas do cliente
// @Tags clients
// @Produce json
// @Param id path string true "ID do cliente"
// @Success 200 {object} dto.ClientBalanceResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /clients/{id}/balance [get]
func (c *ClientController) Balance(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	balance, err := c.service.OutstandingBalance(ctx, id)
	if err != nil {
		respondError(ctx, c.logger, "erro ao calcular saldo do cliente", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToClientBalanceResponse(balance))
}

// OpenSales lista as vendas em aberto do cliente
// @Summary Vendas em aberto
// @Description Lista as vendas não quitadas do cliente, da mais antiga para a mais recente
// @Tags clients
// @Produce json
// @Param id path string true "ID do cliente"
// @Success 200 {array} dto.SaleResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /clients/{id}/open-sales [get]
func (c *ClientController) OpenSales(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	open, err := c.service.OpenSales(ctx, id)
	if err != nil {
		respondError(ctx, c.logger, "erro ao listar vendas em aberto", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSaleResponses(open))
}
