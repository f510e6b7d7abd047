package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"lms-auth/internal/bootstrap"
	"lms-auth/internal/config"
	apihttp "lms-auth/internal/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := bootstrap.NewLogger(cfg)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("bootstrap", zap.Error(err))
	}
	defer app.Close()

	go bootstrap.RunOTPJanitor(ctx, logger, app.OTPs, cfg.OTPPurgeInterval)

	userHandler := apihttp.NewUserHandler(logger, app.Auth)
	router := apihttp.NewUserRouter(logger, userHandler, app.Auth)

	if err := bootstrap.Serve(ctx, logger, ":"+cfg.HTTPPort, router); err != nil {
		logger.Error("server error", zap.Error(err))
	}
}
