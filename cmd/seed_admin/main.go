package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"lms-auth/internal/bootstrap"
	"lms-auth/internal/config"
	"lms-auth/internal/domain"
)

// seed_admin crea el admin por defecto o restablece sus credenciales.
func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadStorageConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	seed, err := config.LoadSeedConfig()
	if err != nil {
		log.Fatalf("seed config: %v", err)
	}

	logger, err := bootstrap.NewLogger(cfg)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	app, err := bootstrap.NewAdminOnly(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("bootstrap", zap.Error(err))
	}
	defer app.Close()

	admin, created, err := app.Admins.SeedDefault(ctx, seed.FullName, seed.Email, seed.Password, domain.AdminRole(seed.Role))
	if err != nil {
		logger.Fatal("seed admin", zap.Error(err))
	}
	if created {
		logger.Info("default admin created", zap.String("email", admin.Email), zap.String("role", string(admin.Role)))
		return
	}
	logger.Info("default admin reset", zap.String("email", admin.Email), zap.String("role", string(admin.Role)))
}
