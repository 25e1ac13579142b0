package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-vendas/docs"
	"github.com/hugohenrick/erp-vendas/internal/adapter/api/route"
	"github.com/hugohenrick/erp-vendas/internal/adapter/repository"
	"github.com/hugohenrick/erp-vendas/internal/infrastructure/database"
	"github.com/hugohenrick/erp-vendas/internal/ledger"
	"github.com/hugohenrick/erp-vendas/pkg/logger"
	"github.com/hugohenrick/erp-vendas/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// App representa a aplicação e suas dependências
type App struct {
	config  *Config
	router  *gin.Engine
	db      *database.PostgresDB
	service *ledger.Service
	logger  logger.Logger
}

// NewApp cria uma nova instância do aplicativo
func NewApp(ctx context.Context, cfg *Config, log logger.Logger) (*App, error) {
	app := &App{config: cfg, logger: log}

	store, health, err := app.openStore(ctx)
	if err != nil {
		return nil, err
	}

	// Garantir o cliente padrão das vendas de balcão
	err = store.Transaction(ctx, func(ctx context.Context, r ledger.Repositories) error {
		c, err := r.Clients.EnsureDefault(ctx, cfg.DefaultClientName)
		if err != nil {
			return err
		}
		log.Info("cliente padrão disponível", "client_id", c.ID, "name", c.Name)
		return nil
	})
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("erro ao criar cliente padrão: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.service = ledger.NewService(store, log, ledger.NewMetrics(registry))

	// Configurar router com modo correto
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.NewHTTPMetrics(registry).Handler())
	router.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	route.SetupRoutes(router, app.service, log, health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	docs.SwaggerInfo.Host = "localhost:" + cfg.ServerPort
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	app.router = router
	return app, nil
}

// openStore cria o armazenamento configurado em STORAGE_DRIVER
func (a *App) openStore(ctx context.Context) (ledger.Store, route.HealthChecker, error) {
	switch a.config.StorageDriver {
	case StorageDriverMemory:
		a.logger.Warn("usando armazenamento em memória; os dados não são persistidos")
		return repository.NewMemoryStore(), nil, nil

	case StorageDriverPostgres:
		dbConfig := database.NewPostgresConfigFromEnv()
		if a.config.RunMigrations {
			if err := database.RunMigrations(dbConfig.MigrationURL(), a.config.MigrationsPath, a.logger); err != nil {
				return nil, nil, err
			}
		}

		db, err := database.NewPostgresDB(ctx, dbConfig, a.logger)
		if err != nil {
			return nil, nil, err
		}
		a.db = db
		return repository.NewPostgresStore(db), db.Ping, nil

	default:
		return nil, nil, fmt.Errorf("STORAGE_DRIVER inválido: %q", a.config.StorageDriver)
	}
}

// Start inicia o servidor HTTP e bloqueia até ctx ser cancelado
func (a *App) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + a.config.ServerPort,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("servidor iniciado", "port", a.config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("encerrando servidor")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("erro ao encerrar servidor: %w", err)
	}
	return nil
}

// GetRouter retorna o router da aplicação
func (a *App) GetRouter() *gin.Engine {
	return a.router
}

// Close libera os recursos da aplicação
func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
