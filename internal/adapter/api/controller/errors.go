package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hugohenrick/erp-vendas/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-vendas/internal/domain/sale"
	"github.com/hugohenrick/erp-vendas/pkg/logger"
)

// statusFor traduz a categoria do erro de domínio para o status HTTP
func statusFor(err error) int {
	switch {
	case errors.Is(err, sale.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, sale.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, sale.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError escreve a resposta de erro. Erros internos são registrados e
// devolvidos com mensagem genérica.
func respondError(ctx *gin.Context, log logger.Logger, message string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error(message, "error", err, "path", ctx.FullPath())
		ctx.JSON(status, dto.NewErrorResponse(status, message, "erro interno do servidor"))
		return
	}
	ctx.JSON(status, dto.NewErrorResponse(status, message, err.Error()))
}

// pathID lê e valida um parâmetro de rota com UUID
func pathID(ctx *gin.Context, name string) (string, bool) {
	id := ctx.Param(name)
	if err := uuid.Validate(id); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "id inválido", id))
		return "", false
	}
	return id, true
}
