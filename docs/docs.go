// Package docs registra a documentação OpenAPI servida em /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/sales": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sales"],
                "summary": "Listar vendas",
                "parameters": [
                    {"type": "integer", "description": "Número da página", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Tamanho da página", "name": "size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SaleListResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sales"],
                "summary": "Criar venda",
                "parameters": [
                    {"description": "Dados da venda", "name": "sale", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateSaleRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.SaleResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/sales/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sales"],
                "summary": "Buscar venda",
                "parameters": [{"type": "string", "description": "ID da venda", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SaleResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sales"],
                "summary": "Atualizar venda",
                "parameters": [
                    {"type": "string", "description": "ID da venda", "name": "id", "in": "path", "required": true},
                    {"description": "Dados da venda", "name": "sale", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateSaleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SaleResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["sales"],
                "summary": "Excluir venda",
                "parameters": [{"type": "string", "description": "ID da venda", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/sales/{id}/payments": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["payments"],
                "summary": "Registrar pagamento",
                "parameters": [
                    {"type": "string", "description": "ID da venda", "name": "id", "in": "path", "required": true},
                    {"description": "Dados do pagamento", "name": "payment", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.PaymentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.PaymentResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/sales/payments/{payment_id}": {
            "delete": {
                "tags": ["payments"],
                "summary": "Excluir pagamento",
                "parameters": [{"type": "string", "description": "ID do pagamento", "name": "payment_id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/sales/batch-payment/{client_id}": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["payments"],
                "summary": "Baixa em lote (FIFO)",
                "parameters": [
                    {"type": "string", "description": "ID do cliente", "name": "client_id", "in": "path", "required": true},
                    {"description": "Dados do recebimento", "name": "payment", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.PaymentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.BatchPaymentResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/clients/{id}/balance": {
            "get": {
                "produces": ["application/json"],
                "tags": ["clients"],
                "summary": "Saldo devedor",
                "parameters": [{"type": "string", "description": "ID do cliente", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ClientBalanceResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/clients/{id}/open-sales": {
            "get": {
                "produces": ["application/json"],
                "tags": ["clients"],
                "summary": "Vendas em aberto",
                "parameters": [{"type": "string", "description": "ID do cliente", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.SaleResponse"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "message": {"type": "string"},
                "details": {"type": "string"}
            }
        },
        "dto.SaleItemRequest": {
            "type": "object",
            "required": ["product_id"],
            "properties": {
                "product_id": {"type": "string"},
                "quantity": {"type": "string", "example": "2"},
                "unit_price": {"type": "string", "example": "5.00"}
            }
        },
        "dto.CreateSaleRequest": {
            "type": "object",
            "properties": {
                "client_id": {"type": "string"},
                "status": {"type": "string", "enum": ["pending", "partial", "paid"]},
                "payment_method": {"type": "string", "enum": ["cash", "debit_card", "credit_card", "pix"]},
                "total": {"type": "string", "example": "0.00"},
                "initial_payment": {"type": "string", "example": "0.00"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/dto.SaleItemRequest"}}
            }
        },
        "dto.UpdateSaleRequest": {
            "type": "object",
            "properties": {
                "client_id": {"type": "string"},
                "payment_method": {"type": "string", "enum": ["cash", "debit_card", "credit_card", "pix"]},
                "total": {"type": "string", "example": "0.00"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/dto.SaleItemRequest"}}
            }
        },
        "dto.PaymentRequest": {
            "type": "object",
            "required": ["method"],
            "properties": {
                "amount": {"type": "string", "example": "50.00"},
                "method": {"type": "string", "enum": ["cash", "debit_card", "credit_card", "pix"]},
                "note": {"type": "string"}
            }
        },
        "dto.SaleItemResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "product_id": {"type": "string"},
                "quantity": {"type": "string"},
                "unit_price": {"type": "string"},
                "subtotal": {"type": "string"}
            }
        },
        "dto.PaymentResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "sale_id": {"type": "string"},
                "paid_at": {"type": "string"},
                "amount": {"type": "string"},
                "method": {"type": "string"},
                "note": {"type": "string"}
            }
        },
        "dto.SaleResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "number": {"type": "integer"},
                "client_id": {"type": "string"},
                "created_at": {"type": "string"},
                "payment_method": {"type": "string"},
                "total": {"type": "string"},
                "paid_amount": {"type": "string"},
                "debt": {"type": "string"},
                "status": {"type": "string", "enum": ["pending", "partial", "paid"]},
                "items": {"type": "array", "items": {"$ref": "#/definitions/dto.SaleItemResponse"}},
                "payments": {"type": "array", "items": {"$ref": "#/definitions/dto.PaymentResponse"}},
                "updated_at": {"type": "string"}
            }
        },
        "dto.SaleListResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/dto.SaleResponse"}},
                "total_count": {"type": "integer"},
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
        },
        "dto.AllocationResponse": {
            "type": "object",
            "properties": {
                "sale_id": {"type": "string"},
                "sale_number": {"type": "integer"},
                "amount": {"type": "string"},
                "debt_before": {"type": "string"},
                "debt_after": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "dto.BatchPaymentResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "client_id": {"type": "string"},
                "total_amount": {"type": "string"},
                "distributed_amount": {"type": "string"},
                "remaining_credit": {"type": "string"},
                "allocations": {"type": "array", "items": {"$ref": "#/definitions/dto.AllocationResponse"}}
            }
        },
        "dto.ClientBalanceResponse": {
            "type": "object",
            "properties": {
                "client_id": {"type": "string"},
                "open_sales": {"type": "integer"},
                "outstanding": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo contém as informações exportadas da documentação
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "ERP Vendas API",
	Description:      "API de contas a receber: vendas, pagamentos, saldo devedor e baixa em lote",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
