package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/wms/backend/internal/application/catalog"
	identityapp "github.com/wms/backend/internal/application/identity"
	inventoryapp "github.com/wms/backend/internal/application/inventory"
	ordersapp "github.com/wms/backend/internal/application/orders"
	partnerapp "github.com/wms/backend/internal/application/partner"
	"github.com/wms/backend/internal/infrastructure/auth"
	"github.com/wms/backend/internal/infrastructure/config"
	"github.com/wms/backend/internal/infrastructure/logger"
	"github.com/wms/backend/internal/infrastructure/persistence"
	"github.com/wms/backend/internal/interfaces/http/handler"
	"github.com/wms/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting WMS backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLogLevel := gormlogger.Silent
	if cfg.Log.Level == "debug" {
		gormLogLevel = gormlogger.Info
	}
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogLevel)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Token blacklist: Redis in production, in-memory fallback elsewhere so
	// the server can run without a Redis instance during development.
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
	if err != nil {
		if cfg.IsProduction() {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		defer func() {
			if err := redisBlacklist.Close(); err != nil {
				log.Error("Error closing Redis", zap.Error(err))
			}
		}()
		blacklist = redisBlacklist
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	locationRepo := persistence.NewGormStorageLocationRepository(db.DB)
	lotRepo := persistence.NewGormLotRepository(db.DB)
	movementRepo := persistence.NewGormMovementRepository(db.DB)
	inboundRepo := persistence.NewGormInboundOrderRepository(db.DB)
	outboundRepo := persistence.NewGormOutboundOrderRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	inventoryTxScope := persistence.NewGormInventoryTransactionScope(db.DB)
	orderTxScope := persistence.NewGormOrderTransactionScope(db.DB)

	// Application services
	productService := catalogapp.NewProductService(productRepo)
	customerService := partnerapp.NewCustomerService(customerRepo)
	supplierService := partnerapp.NewSupplierService(supplierRepo)
	locationService := partnerapp.NewLocationService(locationRepo)
	inventoryService := inventoryapp.NewInventoryService(lotRepo, movementRepo, outboundRepo, inventoryTxScope, log)
	inboundService := ordersapp.NewInboundService(inboundRepo, supplierRepo, locationRepo, orderTxScope, log)
	outboundService := ordersapp.NewOutboundService(outboundRepo, customerRepo, lotRepo, orderTxScope, log)

	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, cfg.Auth, log)
	userService := identityapp.NewUserService(userRepo, jwtService, blacklist, log)

	// HTTP layer
	handlers := router.Handlers{
		System:    handler.NewSystemHandler(db, cfg.App.Name, cfg.App.Env, log),
		Auth:      handler.NewAuthHandler(authService, userService, log),
		User:      handler.NewUserHandler(userService, log),
		Product:   handler.NewProductHandler(productService, log),
		Customer:  handler.NewCustomerHandler(customerService, log),
		Supplier:  handler.NewSupplierHandler(supplierService, log),
		Location:  handler.NewLocationHandler(locationService, log),
		Inventory: handler.NewInventoryHandler(inventoryService, log),
		Inbound:   handler.NewInboundOrderHandler(inboundService, log),
		Outbound:  handler.NewOutboundOrderHandler(outboundService, log),
	}

	engine := router.New(cfg, log, jwtService, blacklist, handlers)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
