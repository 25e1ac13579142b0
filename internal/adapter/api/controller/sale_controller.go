package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-vendas/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-vendas/internal/ledger"
	"github.com/hugohenrick/erp-vendas/pkg/logger"
)

// SaleController gerencia as requisições relacionadas a vendas e pagamentos
type SaleController struct {
	service *ledger.Service
	logger  logger.Logger
}

// NewSaleController cria uma nova instância de SaleController
func NewSaleController(service *ledger.Service, logger logger.Logger) *SaleController {
	return &SaleController{
		service: service,
		logger:  logger,
	}
}

// Create cria uma nova venda
// @Summary Criar venda
// @Description Cria uma venda a partir dos itens e registra o pagamento inicial quando houver
// @Tags sales
// @Accept json
// @Produce json
// @Param sale body dto.CreateSaleRequest true "Dados da venda"
// @Success 201 {object} dto.SaleResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales [post]
func (c *SaleController) Create(ctx *gin.Context) {
	var req dto.CreateSaleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	created, err := c.service.CreateSale(ctx, req.ToCreateSaleInput())
	if err != nil {
		respondError(ctx, c.logger, "erro ao criar venda", err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToSaleResponse(created))
}

// List retorna a lista de vendas
// @Summary Listar vendas
// @Description Retorna a lista de vendas paginada, mais recentes primeiro
// @Tags sales
// @Produce json
// @Param page query int false "Número da página"
// @Param size query int false "Tamanho da página"
// @Success 200 {object} dto.SaleListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales [get]
func (c *SaleController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))
	p := dto.GetPagination(page, size)

	sales, total, err := c.service.ListSales(ctx, p.PageSize, p.Offset())
	if err != nil {
		respondError(ctx, c.logger, "erro ao listar vendas", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSaleListResponse(sales, total, p))
}

// Get retorna uma venda pelo ID
// @Summary Buscar venda
// @Description Retorna a venda com itens e pagamentos
// @Tags sales
// @Produce json
// @Param id path string true "ID da venda"
// @Success 200 {object} dto.SaleResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales/{id} [get]
func (c *SaleController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	found, err := c.service.GetSale(ctx, id)
	if err != nil {
		respondError(ctx, c.logger, "erro ao buscar venda", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSaleResponse(found))
}

// Update substitui os itens de uma venda
// @Summary Atualizar venda
// @Description Substitui os itens da venda e recalcula total e status
// @Tags sales
// @Accept json
// @Produce json
// @Param id path string true "ID da venda"
// @Param sale body dto.UpdateSaleRequest true "Dados da venda"
// @Success 200 {object} dto.SaleResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales/{id} [put]
func (c *SaleController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateSaleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	updated, err := c.service.UpdateSale(ctx, id, req.ToUpdateSaleInput())
	if err != nil {
		respondError(ctx, c.logger, "erro ao atualizar venda", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSaleResponse(updated))
}

// Delete exclui uma venda
// @Summary Excluir venda
// @Description Exclui a venda com seus itens e pagamentos
// @Tags sales
// @Produce json
// @Param id path string true "ID da venda"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales/{id} [delete]
func (c *SaleController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.service.DeleteSale(ctx, id); err != nil {
		respondError(ctx, c.logger, "erro ao excluir venda", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// AddPayment registra um pagamento em uma venda
// @Summary Registrar pagamento
// @Description Registra um pagamento na venda e recalcula o status
// @Tags payments
// @Accept json
// @Produce json
// @Param id path string true "ID da venda"
// @Param payment body dto.PaymentRequest true "Dados do pagamento"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales/{id}/payments [post]
func (c *SaleController) AddPayment(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.PaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	payment, err := c.service.RecordPayment(ctx, id, req.ToPaymentInput())
	if err != nil {
		respondError(ctx, c.logger, "erro ao registrar pagamento", err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToPaymentResponse(payment))
}

// DeletePayment exclui um pagamento
// @Summary Excluir pagamento
// @Description Exclui o pagamento e recalcula o status da venda
// @Tags payments
// @Produce json
// @Param payment_id path string true "ID do pagamento"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales/payments/{payment_id} [delete]
func (c *SaleController) DeletePayment(ctx *gin.Context) {
	id, ok := pathID(ctx, "payment_id")
	if !ok {
		return
	}

	if err := c.service.DeletePayment(ctx, id); err != nil {
		respondError(ctx, c.logger, "erro ao excluir pagamento", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// BatchPayment distribui um recebimento entre as vendas em aberto do cliente
// @Summary Baixa em lote (FIFO)
// @Description Distribui o valor entre as vendas em aberto do cliente, da mais antiga para a mais recente
// @Tags payments
// @Accept json
// @Produce json
// @Param client_id path string true "ID do cliente"
// @Param payment body dto.PaymentRequest true "Dados do recebimento"
// @Success 200 {object} dto.BatchPaymentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales/batch-payment/{client_id} [post]
func (c *SaleController) BatchPayment(ctx *gin.Context) {
	clientID, ok := pathID(ctx, "client_id")
	if !ok {
		return
	}

	var req dto.PaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	result, err := c.service.AllocateBatchPayment(ctx, clientID, req.ToPaymentInput())
	if err != nil {
		respondError(ctx, c.logger, "erro na baixa em lote", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBatchPaymentResponse(result))
}
