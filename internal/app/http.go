package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"task-api/internal/cache"
	"task-api/internal/config"
	"task-api/internal/delivery/http/v1"
	"task-api/internal/store"
)

func MustListenAndServeHTTP() {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}))
	registerRoutes(router)

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	// Wait for the interrupt signal to gracefully
	// shut down the server.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}

func registerRoutes(router gin.IRouter) {
	cfg := config.Global()

	taskStore := store.NewMongoStore(
		globalLogger,
		globalMongoDatabase,
		cfg.Mongo.OperationTimeout,
	)
	if globalRedisClient != nil {
		taskCache := cache.NewTaskCache(globalRedisClient, cfg.Redis.ListTTL)
		taskStore = store.NewCachedStore(globalLogger, taskStore, taskCache)
	}

	handler := v1.New(globalLogger, taskStore)
	router.Use(handler.HandleRequestIDMiddleware)
	router.Use(handler.HandleLoggingMiddleware)
	v1.RegisterRoutes(router, handler)
}
