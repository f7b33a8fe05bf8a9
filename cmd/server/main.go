package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"solverpro/internal/analysis"
	"solverpro/internal/config"
	"solverpro/internal/dashboard"
	"solverpro/internal/handlers"
	"solverpro/internal/jobs"
	"solverpro/internal/llm"
	_ "solverpro/internal/llm/gemini"
	"solverpro/internal/metrics"
	"solverpro/internal/middleware"
	"solverpro/internal/pricing"
	"solverpro/internal/prompts"
	"solverpro/internal/routers"
	"solverpro/internal/session"
	"solverpro/internal/storage"
	"solverpro/internal/store"
	"solverpro/internal/submission"
	"solverpro/internal/utils"
)

const sessionKeyPrefix = "solverpro_auth:"

func newRouter(cfg *config.Config, api routers.APIHandlers, healthHandler *handlers.HealthHandler, auth middleware.Authenticator) *chi.Mux {
	router := chi.NewRouter()

	// cors middleware
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	router.Use(chimiddleware.RequestID, chimiddleware.RealIP, chimiddleware.Logger, chimiddleware.Recoverer, chimiddleware.Timeout(60*time.Second))
	router.Use(metrics.Middleware)

	routers.HealthRoutes(router, healthHandler)
	routers.APIRoutes(router, api, auth)
	return router
}

// newFlagStore picks Redis when configured, otherwise flags live in process.
func newFlagStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (session.FlagStore, func()) {
	if cfg.RedisAddr == "" {
		logger.Info("REDIS_ADDR not set, admin sessions are kept in memory")
		return session.NewMemoryFlagStore(), func() {}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis unreachable at startup, sessions will fail until it recovers",
			zap.String("addr", cfg.RedisAddr), zap.Error(err))
	}
	return session.NewRedisFlagStore(rdb, sessionKeyPrefix), func() { rdb.Close() }
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logger, err := utils.NewLogger(cfg.LogLevel)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	logger.Info("Configuration loaded",
		zap.String("provider", cfg.Provider),
		zap.String("db_driver", cfg.DBDriver))

	ctx := context.Background()

	db, err := storage.Open(cfg)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	kv, err := storage.NewGormKV(db)
	if err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	problemStore := store.NewProblemStore(kv, cfg.StoreKey, logger)
	loaded := problemStore.Load(ctx)
	logger.Info("Problems loaded", zap.Int("count", len(loaded)))

	catalog, err := pricing.DefaultCatalog()
	if err != nil {
		logger.Fatal("Failed to load pricing catalog", zap.Error(err))
	}

	promptManager, err := prompts.NewPromptManager()
	if err != nil {
		logger.Fatal("Failed to initialize prompt manager", zap.Error(err))
	}

	// the service still accepts submissions without a provider
	aiProvider, err := llm.NewProvider(cfg.Provider)
	if err != nil {
		logger.Error("Failed to initialize AI provider, analysis is disabled",
			zap.Strings("registered", llm.Providers()), zap.Error(err))
	}

	resultCache := analysis.NewResultCache(cfg.AnalysisCacheTTL)
	defer resultCache.Close()
	analyzer := analysis.NewAnalyzer(aiProvider, promptManager, resultCache, logger)

	flags, closeFlags := newFlagStore(ctx, cfg, logger)
	defer closeFlags()
	sessions, err := session.NewManager(flags, cfg.SessionTTL, cfg.AdminUsername, cfg.AdminPassword, logger)
	if err != nil {
		logger.Fatal("Failed to initialize session manager", zap.Error(err))
	}

	node, err := snowflake.NewNode(cfg.SnowflakeNode)
	if err != nil {
		logger.Fatal("Failed to initialize id generator", zap.Error(err))
	}

	submissions := submission.NewService(problemStore, catalog, analyzer, node, logger)
	dashboardService := dashboard.NewService(problemStore, logger)

	backupJob := jobs.NewSnapshotBackupJob(problemStore, cfg.Backup, logger)
	if err := backupJob.Start(); err != nil {
		logger.Error("Failed to start backup job", zap.Error(err))
	}

	api := routers.APIHandlers{
		Auth:     handlers.NewAuthHandler(sessions, cfg.SessionTTL, logger),
		Packages: handlers.NewPackageHandler(catalog),
		Analysis: handlers.NewAnalysisHandler(analyzer, logger),
		Problems: handlers.NewProblemHandler(submissions, logger),
		Admin:    handlers.NewAdminHandler(dashboardService, logger),
	}
	healthHandler := handlers.NewHealthHandler(kv, analyzer, promptManager, cfg)

	serverAddr := ":" + cfg.Port

	// http server with timeouts; bodies carry base64 photos
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      newRouter(cfg, api, healthHandler, sessions),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 75 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("SolverPro service starting", zap.String("addr", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// wait for interrupt signal to gracefully shutdown the server
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChan

	logger.Info("SolverPro service shutting down...")

	backupJob.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("SolverPro service exited")
}
