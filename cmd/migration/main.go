package main

import (
	"flag"
	"log"

	"github.com/hugohenrick/erp-vendas/internal/infrastructure/database"
	"github.com/hugohenrick/erp-vendas/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	down := flag.Bool("down", false, "reverte a última migração aplicada")
	path := flag.String("path", "migrations", "diretório das migrações")
	flag.Parse()

	// Carregar variáveis de ambiente
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: Arquivo .env não encontrado: %v", err)
	}

	appLogger, err := logger.NewLogger(logger.Config{Level: "info", Format: "console"})
	if err != nil {
		log.Fatalf("Erro ao configurar logger: %v", err)
	}
	defer appLogger.Sync() //nolint:errcheck

	dbURL := database.NewPostgresConfigFromEnv().MigrationURL()

	if *down {
		if err := database.RollbackMigrations(dbURL, *path, appLogger); err != nil {
			log.Fatalf("Erro ao reverter migração: %v", err)
		}
		return
	}

	// Executar as migrações
	if err := database.RunMigrations(dbURL, *path, appLogger); err != nil {
		log.Fatalf("Erro ao executar migrações: %v", err)
	}

	log.Println("Migrações executadas com sucesso!")
}
