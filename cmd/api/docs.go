package main

// @title           ERP Vendas API
// @version         1.0
// @description     API de contas a receber: vendas, pagamentos, saldo devedor e baixa em lote (FIFO)

// @contact.name   API Support
// @contact.email  suporte@erpvendas.local

// @host      localhost:8080
// @BasePath  /api/v1
