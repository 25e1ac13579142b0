package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/hugohenrick/erp-vendas/internal/domain/client"
)

// Drivers de armazenamento aceitos em STORAGE_DRIVER
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Config contém as configurações da aplicação lidas do ambiente
type Config struct {
	ServerPort        string
	GinMode           string
	CORSOrigins       []string
	StorageDriver     string
	MigrationsPath    string
	RunMigrations     bool
	DefaultClientName string
	LogLevel          string
	LogFormat         string
}

// NewConfigFromEnv cria a configuração a partir de variáveis de ambiente
func NewConfigFromEnv() *Config {
	runMigrations, err := strconv.ParseBool(getEnv("RUN_MIGRATIONS", "true"))
	if err != nil {
		runMigrations = true
	}

	return &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		GinMode:           getEnv("GIN_MODE", "release"),
		CORSOrigins:       splitList(getEnv("CORS_ORIGINS", "*")),
		StorageDriver:     strings.ToLower(getEnv("STORAGE_DRIVER", StorageDriverPostgres)),
		MigrationsPath:    getEnv("MIGRATIONS_PATH", "migrations"),
		RunMigrations:     runMigrations,
		DefaultClientName: getEnv("DEFAULT_CLIENT_NAME", client.DefaultName),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "json"),
	}
}

func splitList(value string) []string {
	var out []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// getEnv retorna o valor de uma variável de ambiente ou um valor padrão
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
