package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/bundlemart/internal/metrics"
	"github.com/polkiloo/bundlemart/internal/server/http/handlers"
	"github.com/polkiloo/bundlemart/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.MartFacade, admin middleware.AdminKeyChecker, m *metrics.Metrics, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest(middleware.DefaultMaxBodyBytes))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	cartHandler := handlers.NewCartHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	walletHandler := handlers.NewWalletHandler(facade)
	adminHandler := handlers.NewAdminHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)

	engine.GET("/healthz", healthHandler.Check)
	if m != nil {
		engine.GET("/metrics", gin.WrapH(m.Handler()))
	}

	api := engine.Group("/api")
	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	userAuth := user.Group("")
	userAuth.Use(middleware.AuthRequired(facade))
	userAuth.POST("/cart", cartHandler.Add)
	userAuth.GET("/cart", cartHandler.List)
	userAuth.DELETE("/cart/:id", cartHandler.Remove)
	userAuth.POST("/checkout", orderHandler.Checkout)
	userAuth.GET("/orders", orderHandler.List)
	userAuth.GET("/orders/:id", orderHandler.Get)
	userAuth.GET("/wallet", walletHandler.Balance)
	userAuth.GET("/wallet/transactions", walletHandler.Transactions)
	userAuth.POST("/wallet/topup", walletHandler.TopUp)

	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.AdminRequired(admin))
	adminGroup.GET("/settings/push", adminHandler.PushSetting)
	adminGroup.PUT("/settings/push", adminHandler.SetPushSetting)
	adminGroup.PUT("/orders/:id/status", adminHandler.OverrideStatus)
	adminGroup.POST("/orders/:id/submit", adminHandler.Resubmit)
	adminGroup.POST("/reconcile", adminHandler.Reconcile)

	return engine
}
