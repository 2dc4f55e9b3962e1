package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	financeapp "github.com/pos/backend/internal/application/finance"
	partnerapp "github.com/pos/backend/internal/application/partner"
	salesapp "github.com/pos/backend/internal/application/sales"
	"github.com/pos/backend/internal/domain/numbering"
	"github.com/pos/backend/internal/infrastructure/config"
	"github.com/pos/backend/internal/infrastructure/logger"
	"github.com/pos/backend/internal/infrastructure/persistence"
	"github.com/pos/backend/internal/interfaces/http/handler"
	"github.com/pos/backend/internal/interfaces/http/middleware"
	"github.com/pos/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log := logger.New(cfg.Log)
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting POS Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("shop", cfg.Shop.Code),
	)

	// GORM logger backed by zap; SQL tracing only in debug
	gormLogLevel := gormlogger.Warn
	if cfg.Log.Level == "debug" {
		gormLogLevel = gormlogger.Info
	}
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Open the embedded store and run migrations
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}
	log.Info("Database ready", zap.String("path", cfg.Database.Path))

	// Calendar rules for document numbering come from configuration
	locale := numbering.Locale{
		UTCOffsetMinutes:     cfg.Locale.UTCOffsetMinutes,
		FiscalYearStartMonth: time.Month(cfg.Locale.FiscalYearStartMonth),
	}

	// Initialize repositories
	counterRepo := persistence.NewGormCounterRepository(db.DB, locale)
	billRepo := persistence.NewGormBillRepository(db.DB)
	kotRepo := persistence.NewGormKOTRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	advanceTxRepo := persistence.NewGormAdvanceTransactionRepository(db.DB)
	advanceReceiptRepo := persistence.NewGormAdvanceReceiptRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseVoucherRepository(db.DB)

	// One sequencer per shop scope; all document families mint through it
	sequencer := numbering.NewSequencer(cfg.Shop.Code, locale, counterRepo)

	// Initialize application services
	billingService := salesapp.NewBillingService(billRepo, customerRepo, advanceTxRepo, sequencer, db)
	kotService := salesapp.NewKOTService(kotRepo, sequencer, db)
	expenseService := financeapp.NewExpenseService(expenseRepo, sequencer, db)
	advanceService := partnerapp.NewAdvanceService(customerRepo, advanceTxRepo, advanceReceiptRepo, sequencer, db)

	// Initialize HTTP handlers
	billHandler := handler.NewBillHandler(billingService)
	kotHandler := handler.NewKOTHandler(kotService)
	expenseHandler := handler.NewExpenseHandler(expenseService)
	customerHandler := handler.NewCustomerHandler(advanceService)
	systemHandler := handler.NewSystemHandler()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(billHandler).
		Register(kotHandler).
		Register(expenseHandler).
		Register(customerHandler).
		Register(systemHandler)
	r.Setup()

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

	// Graceful shutdown
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

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
