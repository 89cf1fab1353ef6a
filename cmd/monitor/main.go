package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"tradingplaces/internal/broker"
	"tradingplaces/internal/client/brokerage"
	"tradingplaces/internal/config"
	cronrunner "tradingplaces/internal/cron"
	"tradingplaces/internal/db"
	"tradingplaces/internal/handler"
	"tradingplaces/internal/logger"
	gormrepository "tradingplaces/internal/repository/gorm"
	"tradingplaces/internal/service"

	_ "tradingplaces/docs"
)

func main() {
	cfgPath := os.Getenv("TP_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("TP_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	if err := db.SetTimezone(dbConn, cfg.DB.Timezone); err != nil {
		logger.Warn("failed to set timezone", zap.Error(err))
	}
	if err := db.AutoMigrate(dbConn); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	brokerageHTTP := &http.Client{Timeout: cfg.Brokerage.Timeout}
	brokerageClient := brokerage.NewClient(brokerageHTTP, cfg.Brokerage.BaseURL)
	reliable := &broker.Reliable{
		Quotes:   brokerageClient,
		Trades:   brokerageClient,
		Attempts: cfg.Brokerage.RetryAttempts,
	}
	store := gormrepository.New(dbConn.Gorm)

	strategySvc := &service.StrategyService{
		Repo:   store,
		Broker: reliable,
		Logger: logger,
	}
	monitor := &service.MonitorService{
		Repo:       store,
		Broker:     reliable,
		Strategies: strategySvc,
		Logger:     logger,
		Config:     cfg.Monitor,
	}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	healthHandler := &handler.HealthHandler{DB: dbConn.Gorm}
	healthHandler.Register(engine)
	strategyHandler := &handler.StrategyHandler{
		Service: strategySvc,
		Repo:    store,
		Logger:  logger,
	}
	strategyHandler.Register(engine)
	executionHandler := &handler.ExecutionHandler{Repo: store}
	executionHandler.Register(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cronRunner := cronrunner.New(logger, ctx)
	if _, err := cronRunner.Add(cfg.Monitor.Heartbeat, func(ctx context.Context) {
		total, err := store.CountStrategies(ctx)
		if err != nil {
			logger.Warn("strategy count failed", zap.Error(err))
			return
		}
		logger.Info("monitor heartbeat", zap.Int64("active_strategies", total))
	}); err != nil {
		logger.Warn("cron register heartbeat failed", zap.Error(err))
	}
	if cfg.Retention.ExecutionMaxAge > 0 {
		if _, err := cronRunner.Add(cfg.Retention.PruneSchedule, func(ctx context.Context) {
			n, err := store.DeleteExecutionsBefore(ctx, time.Now().UTC().Add(-cfg.Retention.ExecutionMaxAge))
			if err != nil {
				logger.Warn("execution prune failed", zap.Error(err))
				return
			}
			if n > 0 {
				logger.Info("pruned old executions", zap.Int64("count", n))
			}
		}); err != nil {
			logger.Warn("cron register execution prune failed", zap.Error(err))
		}
	}
	cronRunner.Start()
	defer cronRunner.Stop()

	go func() {
		if err := monitor.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("monitor stopped", zap.Error(err))
		}
	}()

	errCh := make(chan error, 1)

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
