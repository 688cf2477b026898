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

	"github.com/joho/godotenv"
	"github.com/waitlist-api/internal/config"
	"github.com/waitlist-api/internal/infrastructure/dynamo"
	"github.com/waitlist-api/internal/infrastructure/turnstile"
	transporthttp "github.com/waitlist-api/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap the waitlist table (created if it doesn't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.WaitlistTable)

	// Turnstile verifier (optional — submissions fail with a config error
	// when no secret is set, without ever calling out).
	var verifier *turnstile.Verifier
	if cfg.TurnstileSecret != "" {
		verifier = turnstile.NewVerifier(cfg.TurnstileSecret, cfg.TurnstileVerifyURL)
	} else {
		log.Println("WARN: TURNSTILE_SECRET_KEY not set, waitlist submissions will be rejected")
	}

	deps := &transporthttp.Deps{
		WaitlistRepo: dynamo.NewWaitlistRepo(dynamoClient, cfg.WaitlistTable),
		Diag:         dynamo.NewDiag(dynamoClient),
		Verifier:     verifier,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
