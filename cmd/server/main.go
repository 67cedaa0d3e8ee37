package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"taskman/configs"
	"taskman/delivery/rest"
	"taskman/infrastructure/logger"
	"taskman/internal/repository/postgres"
	"taskman/internal/usecase"
	"taskman/server"
)

func main() {
	if err := logger.InitFromEnv(); err != nil {
		panic(err)
	}
	defer logger.Sync()

	log := logger.Named("main")

	cfg, err := configs.LoadConfig("")
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// The pool is the process-wide store handle: acquired here, passed
	// down explicitly, released on shutdown.
	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer postgres.Close(db)

	if err := postgres.RunMigrations(db, "migrations"); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	taskRepo := postgres.NewTaskRepository(db)
	taskService := usecase.NewTaskService(taskRepo)
	h := rest.NewHandler(taskService)

	srv := server.NewServer(cfg.Server, h)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	log.Info("Server started", zap.String("address", cfg.Server.Address()))

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server shutdown failed", zap.Error(err))
	}

	log.Info("Server stopped")
}
