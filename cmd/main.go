package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/collectors"

	"stockcount/config"
	"stockcount/internal/pkg/cache"
	"stockcount/internal/pkg/database"
	"stockcount/internal/pkg/logger"
	"stockcount/internal/pkg/metrics"
	"stockcount/internal/pkg/middleware"
	"stockcount/internal/pkg/token"

	"stockcount/internal/api/auth"
	"stockcount/internal/api/count"
	"stockcount/internal/api/inventory"
	"stockcount/internal/api/product"
	"stockcount/internal/api/router"
	"stockcount/internal/api/user"
	"stockcount/internal/api/warehouse"
	"stockcount/internal/repository/countrepo"
	"stockcount/internal/repository/itemrepo"
	"stockcount/internal/repository/productrepo"
	"stockcount/internal/repository/userrepo"
	"stockcount/internal/repository/warehouserepo"
	"stockcount/internal/service/countservice"
	"stockcount/internal/service/inventoryservice"
	"stockcount/internal/service/productservice"
	"stockcount/internal/service/userservice"
	"stockcount/internal/service/warehouseservice"
)

// @title StockCount API
// @version 1.0
// @description Contagens de inventário, estoque por armazém e política de acesso por armazém.
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	log.Println("⚡ Inicializando serviço StockCount...")

	cfg := config.LoadConfig()
	appLog := logger.NewLogger(cfg.LogLevel)
	appLog.Info("Configurações carregadas.", map[string]interface{}{"env": cfg.Environment})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Infraestrutura
	db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL)
	if err != nil {
		appLog.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()
	appLog.Info("Conexão PostgreSQL estabelecida.", nil)

	cacheClient, err := cache.NewRedisClient(ctx, cfg.RedisAddr)
	if err != nil {
		appLog.Fatal("Falha ao conectar ao Redis.", err)
	}
	defer cacheClient.Close()
	appLog.Info("Conexão Redis estabelecida.", nil)

	appMetrics := metrics.New()
	appMetrics.Registerer().MustRegister(collectors.NewDBStatsCollector(db, "stockcount"))

	// 2. Repositórios
	userRepo := userrepo.NewUserRepository(db, cfg.DBTimeout, appLog)
	warehouseRepo := warehouserepo.NewWarehouseRepository(db, cfg.DBTimeout, appLog)
	productRepo := productrepo.NewProductRepository(db, cacheClient, cfg.DBTimeout, cfg.CacheTTL, appLog)
	countRepo := countrepo.NewCountRepository(db, cfg.DBTimeout, appLog)
	itemRepo := itemrepo.NewItemRepository(db, cfg.DBTimeout, appLog)

	// 3. Serviços
	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)
	userSvc := userservice.NewService(userRepo, warehouseRepo, tokenSvc, appLog)
	warehouseSvc := warehouseservice.NewService(warehouseRepo, appLog)
	productSvc := productservice.NewService(productRepo, appLog)
	countSvc := countservice.NewService(countRepo, itemRepo, warehouseRepo, productRepo, appLog)
	inventorySvc := inventoryservice.NewService(itemRepo, countRepo, warehouseRepo, productRepo, appLog)

	// 4. Handlers e roteador
	handler := router.NewRouter(router.Handlers{
		Auth:      auth.NewHandler(userSvc, appLog),
		User:      user.NewHandler(userSvc, appLog),
		Warehouse: warehouse.NewHandler(warehouseSvc, appLog),
		Product:   product.NewHandler(productSvc, appLog),
		Count:     count.NewHandler(countSvc, appLog),
		Inventory: inventory.NewHandler(inventorySvc, appLog),
	}, router.Options{
		Logger:          appLog,
		Authenticator:   middleware.NewAuthenticator(tokenSvc, userRepo, appLog),
		Metrics:         appMetrics,
		RateLimitClient: cacheClient,
		RateLimit:       cfg.RateLimitMaxRequests,
		RateLimitPeriod: cfg.RateLimitPeriod,
		Production:      cfg.IsProduction(),
		Dependencies: map[string]router.Pinger{
			"postgres": db,
			"redis":    router.PingerFunc(cacheClient.Ping),
		},
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		appLog.Info("Servidor StockCount ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal("Servidor falhou.", err)
		}
	}()

	<-ctx.Done()
	appLog.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLog.Error("Desligamento do servidor forçado.", err)
	}

	appLog.Info("Servidor encerrado com sucesso.", nil)
}
