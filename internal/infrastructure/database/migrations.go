package database

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/hugohenrick/erp-vendas/pkg/logger"
)

// RunMigrations aplica as migrações pendentes do diretório informado
func RunMigrations(dbURL, migrationsPath string, log logger.Logger) error {
	if log == nil {
		log = logger.NewNop()
	}

	abs, err := filepath.Abs(migrationsPath)
	if err != nil {
		return fmt.Errorf("erro ao resolver caminho das migrações: %w", err)
	}
	sourceURL := fmt.Sprintf("file://%s", filepath.ToSlash(abs))

	m, err := migrate.New(sourceURL, dbURL)
	if err != nil {
		return fmt.Errorf("erro ao criar migrate: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("erro ao aplicar migrações: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("erro ao obter versão das migrações: %w", err)
	}
	log.Info("migrações aplicadas", "version", version, "dirty", dirty)
	return nil
}

// RollbackMigrations desfaz a última migração aplicada
func RollbackMigrations(dbURL, migrationsPath string, log logger.Logger) error {
	if log == nil {
		log = logger.NewNop()
	}

	abs, err := filepath.Abs(migrationsPath)
	if err != nil {
		return fmt.Errorf("erro ao resolver caminho das migrações: %w", err)
	}

	m, err := migrate.New(fmt.Sprintf("file://%s", filepath.ToSlash(abs)), dbURL)
	if err != nil {
		return fmt.Errorf("erro ao criar migrate: %w", err)
	}
	defer m.Close()

	if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("erro ao reverter migração: %w", err)
	}
	log.Info("última migração revertida")
	return nil
}
