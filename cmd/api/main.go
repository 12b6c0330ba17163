package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"catalog-admin/internal/auth"
	"catalog-admin/internal/config"
	"catalog-admin/internal/database"
	"catalog-admin/internal/handlers"
	"catalog-admin/internal/models"
	"catalog-admin/internal/routes"
	"catalog-admin/internal/store"
)

func main() {
	cfg := config.LoadConfig()

	logger := newLogger(cfg.Env)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logger.Fatal("mongo connect failed", zap.Error(err))
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.MongoDB)

	brandStore := store.NewCollection[*models.Brand](db.Collection("brands"), "name")
	productStore := store.NewCollection[*models.Product](db.Collection("products"), "name")
	orderStore := store.NewCollection[*models.Order](db.Collection("orders"), "createdAt")

	brandFeed := store.NewFeed[*models.Brand]("brands", logger)
	productFeed := store.NewFeed[*models.Product]("products", logger)
	orderFeed := store.NewFeed[*models.Order]("orders", logger)

	startFeed(ctx, logger, brandFeed, brandStore)
	startFeed(ctx, logger, productFeed, productStore)
	startFeed(ctx, logger, orderFeed, orderStore)

	authSvc := auth.NewService(cfg.JWTSecret, cfg.AdminEmail, cfg.AdminPassword, cfg.SessionTTL)

	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	routes.Register(router, authSvc, routes.Handlers{
		Auth:     handlers.NewAuthHandler(authSvc, logger),
		Brands:   handlers.NewBrandHandler(brandFeed, brandStore, logger),
		Products: handlers.NewProductHandler(productFeed, brandFeed, productStore, logger),
		Orders:   handlers.NewOrderHandler(orderFeed, logger),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("server running", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}

// startFeed opens the collection's change-stream subscription and
// keeps the feed current for the process lifetime. A subscription
// that cannot even be opened marks the feed failed immediately so
// the views show an error instead of an empty table.
func startFeed[T store.Doc](ctx context.Context, logger *zap.Logger, feed *store.Feed[T], coll *store.Collection[T]) {
	sub, err := coll.Subscribe(ctx)
	if err != nil {
		logger.Error("subscribe failed", zap.String("collection", coll.Name()), zap.Error(err))
		feed.Fail(err)
		return
	}
	go feed.Run(ctx, sub)
}

func newLogger(env string) *zap.Logger {
	if env == "dev" {
		logger, _ := zap.NewDevelopment()
		return logger
	}
	logger, _ := zap.NewProduction()
	return logger
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)),
		)
	}
}
