// Package bootstrap arma las dependencias compartidas por los comandos.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"lms-auth/internal/config"
	"lms-auth/internal/db"
	"lms-auth/internal/email"
	"lms-auth/internal/repository"
	"lms-auth/internal/service"
)

// App agrupa los servicios listos para montar en un router o en un comando.
type App struct {
	Config *config.Config
	Logger *zap.Logger
	Auth   *service.AuthService
	Admins *service.AdminService
	OTPs   *service.OTPService

	closers []func()
}

// NewLogger usa el encoder de desarrollo solo con APP_ENV=development.
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// New conecta storage, mail y el lock de emision de OTP, y construye los servicios.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	app := &App{Config: cfg, Logger: logger}

	st, err := app.openStores(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}

	sender, err := email.NewSender(ctx, cfg, logger)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("mail sender: %w", err)
	}

	hasher := service.NewBcryptHasher()
	tokens := service.NewJWTService(cfg.JWTSecret, cfg.JWTExpiresIn, cfg.JWTIssuer)
	app.OTPs = service.NewOTPService(logger, st.otps, hasher, app.issueLocker(ctx), cfg.OTPTTL())
	app.Auth = service.NewAuthService(logger, st.users, app.OTPs, hasher, tokens, sender)
	app.Admins = service.NewAdminService(logger, st.admins, hasher, tokens)

	return app, nil
}

// NewAdminOnly abre solo el storage y arma AdminService, sin mail ni lock.
// Alcanza para cmd/seed_admin.
func NewAdminOnly(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	app := &App{Config: cfg, Logger: logger}

	st, err := app.openStores(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}

	tokens := service.NewJWTService(cfg.JWTSecret, cfg.JWTExpiresIn, cfg.JWTIssuer)
	app.Admins = service.NewAdminService(logger, st.admins, service.NewBcryptHasher(), tokens)
	return app, nil
}

// Close libera conexiones en orden inverso a su apertura.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

type stores struct {
	users  repository.UserRepository
	admins repository.AdminRepository
	otps   repository.OTPRepository
}

func (a *App) openStores(ctx context.Context) (stores, error) {
	switch a.Config.StorageDriver {
	case config.StorageDriverPostgres:
		pool, err := db.NewPool(ctx, a.Config)
		if err != nil {
			return stores{}, fmt.Errorf("db connect: %w", err)
		}
		a.closers = append(a.closers, pool.Close)
		if err := db.Migrate(ctx, pool); err != nil {
			return stores{}, err
		}
		return stores{
			users:  repository.NewPgUserRepository(pool),
			admins: repository.NewPgAdminRepository(pool),
			otps:   repository.NewPgOTPRepository(pool),
		}, nil
	case config.StorageDriverMongo:
		client, database, err := db.NewMongo(ctx, a.Config)
		if err != nil {
			return stores{}, err
		}
		a.closers = append(a.closers, func() { disconnectMongo(client, a.Logger) })
		if err := db.EnsureIndexes(ctx, database); err != nil {
			return stores{}, err
		}
		return stores{
			users:  repository.NewMongoUserRepository(database.Collection(db.UsersCollection)),
			admins: repository.NewMongoAdminRepository(database.Collection(db.AdminsCollection)),
			otps:   repository.NewMongoOTPRepository(database.Collection(db.OTPsCollection)),
		}, nil
	default:
		return stores{}, fmt.Errorf("unknown storage driver %q", a.Config.StorageDriver)
	}
}

// issueLocker usa Redis cuando hay REDIS_ADDR y responde al ping.
// Sin Redis la emision se serializa solo dentro del proceso.
func (a *App) issueLocker(ctx context.Context) service.IssueLocker {
	if a.Config.RedisAddr == "" {
		return service.NewLocalIssueLocker()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     a.Config.RedisAddr,
		Password: a.Config.RedisPassword,
		DB:       a.Config.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		a.Logger.Warn("redis ping failed, using in-process otp lock", zap.Error(err))
		_ = client.Close()
		return service.NewLocalIssueLocker()
	}

	a.closers = append(a.closers, func() { _ = client.Close() })
	return service.NewRedisIssueLocker(client, 0)
}

func disconnectMongo(client *mongo.Client, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil && !errors.Is(err, mongo.ErrClientDisconnected) {
		logger.Warn("mongo disconnect", zap.Error(err))
	}
}
