package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/ptmnhat/grafana-proxy/internal/config"
	"github.com/ptmnhat/grafana-proxy/internal/hasher"
	"github.com/ptmnhat/grafana-proxy/internal/middleware"
	"github.com/ptmnhat/grafana-proxy/internal/proxy"
	"github.com/ptmnhat/grafana-proxy/internal/repository/postgres"
	"github.com/ptmnhat/grafana-proxy/internal/service"
	"github.com/ptmnhat/grafana-proxy/pkg/logger"
)

// Proxy binary. Terminates tenant API keys, authorizes dashboard access and
// forwards allowed requests to the upstream Grafana instance.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	appLogger := logger.NewLogger(os.Getenv("APP_ENV"))

	cfg, err := config.Load()
	if err != nil {
		appLogger.Fatal("Failed to load config", err)
	}

	dbConnections, err := config.NewDatabaseConnections()
	if err != nil {
		appLogger.Fatal("Failed to connect to database", err)
	}
	defer dbConnections.Close()

	redisConfig := config.DefaultRedisConfig()
	redisClient, err := redisConfig.GetClient()
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", err)
	}
	defer redisClient.Close()

	repo := postgres.NewPostgresRepository(dbConnections)
	authorizer := service.NewAuthorizer(repo, hasher.NewArgon2Hasher())

	tenantAccess := middleware.NewTenantAccessMiddleware(authorizer, cfg, appLogger)
	rateLimit := middleware.NewRateLimitMiddleware(redisClient, cfg, appLogger)

	grafanaProxy, err := proxy.NewProxy(cfg, redisClient, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize upstream proxy", err)
	}

	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Dashboard routes. The explicit :dashboardUid route covers the common
	// shape; the catch-all covers asset and sub-resource paths where the
	// UID is the first remainder segment.
	dashboards := router.Group("/grafana/public/dashboards",
		tenantAccess.RequireDashboardAccess(),
		rateLimit.TenantRateLimit(),
	)
	{
		dashboards.Any("/:dashboardUid", grafanaProxy.Handle)
		dashboards.Any("/:dashboardUid/*remainder", grafanaProxy.Handle)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ProxyPort),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start proxy", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down proxy...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal("Proxy forced to shutdown", err)
	}

	appLogger.Info("Proxy exiting")
	appLogger.Sync()
}
