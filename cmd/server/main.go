package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/cannoahgkt/moviesapi/internal/config"
	"github.com/cannoahgkt/moviesapi/internal/httpserver"
	"github.com/cannoahgkt/moviesapi/internal/infrastructure/postgres"
	"github.com/cannoahgkt/moviesapi/internal/infrastructure/token"
	authusecase "github.com/cannoahgkt/moviesapi/internal/usecase/auth"
	movieusecase "github.com/cannoahgkt/moviesapi/internal/usecase/movie"
	userusecase "github.com/cannoahgkt/moviesapi/internal/usecase/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	rootCtx := context.Background()
	db, err := postgres.New(rootCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Migrate(rootCtx); err != nil {
		log.Fatalf("failed to run database migrations: %v", err)
	}

	tokenManager := token.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry, cfg.JWTIssuer)
	userRepo := postgres.NewUserRepository(db.Pool)

	authService := authusecase.NewService(userRepo, tokenManager)
	userService := userusecase.NewService(userRepo)
	movieService := movieusecase.NewService(postgres.NewMovieRepository(db.Pool))

	server := httpserver.NewServer(cfg, authService, userService, movieService)
	log.Printf("HTTP server listening on %s", server.Addr())

	go func() {
		if err := server.Start(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				log.Printf("HTTP server closed: %v", err)
				return
			}
			log.Fatalf("server error: %v", err)
		}
	}()

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	} else {
		log.Printf("graceful shutdown completed")
	}
}
