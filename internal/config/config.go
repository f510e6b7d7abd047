package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"

	"lms-auth/internal/domain"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMongo    = "mongo"

	MailProviderSMTP = "smtp"
	MailProviderSES  = "ses"
	MailProviderLog  = "log"
)

// Config centraliza la configuración del servicio.
type Config struct {
	AppEnv        string `env:"APP_ENV" envDefault:"production"`
	HTTPPort      string `env:"HTTP_PORT" envDefault:"5001"`
	AdminHTTPPort string `env:"ADMIN_HTTP_PORT" envDefault:"5002"`

	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"postgres"`
	DatabaseURL   string `env:"DATABASE_URL"`
	MongoURI      string `env:"MONGODB_URI"`
	MongoDatabase string `env:"MONGODB_DATABASE" envDefault:"lms"`

	JWTSecret    string        `env:"JWT_SECRET"`
	JWTExpiresIn time.Duration `env:"JWT_EXPIRES_IN" envDefault:"168h"`
	JWTIssuer    string        `env:"JWT_ISSUER" envDefault:"lms-auth"`

	OTPExpMinutes    int           `env:"OTP_EXP_MINUTES" envDefault:"10"`
	OTPPurgeInterval time.Duration `env:"OTP_PURGE_INTERVAL" envDefault:"15m"`

	MailProvider string `env:"MAIL_PROVIDER" envDefault:"smtp"`
	MailHost     string `env:"MAIL_HOST"`
	MailPort     int    `env:"MAIL_PORT" envDefault:"587"`
	MailUser     string `env:"MAIL_USER"`
	MailPass     string `env:"MAIL_PASS"`
	MailUseTLS   bool   `env:"MAIL_USE_TLS" envDefault:"false"`
	MailFrom     string `env:"MAIL_FROM" envDefault:"noreply@clt-academy.com"`
	MailFromName string `env:"MAIL_FROM_NAME" envDefault:"CLT Academy"`
	SESRegion    string `env:"SES_REGION" envDefault:"us-east-1"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
}

// SeedConfig describe el administrador por defecto que crea cmd/seed_admin.
type SeedConfig struct {
	Email    string `env:"DEFAULT_ADMIN_EMAIL,required,notEmpty"`
	Password string `env:"DEFAULT_ADMIN_PASSWORD,required,notEmpty"`
	FullName string `env:"DEFAULT_ADMIN_FULLNAME" envDefault:"Super Admin"`
	Role     string `env:"DEFAULT_ADMIN_ROLE" envDefault:"superadmin"`
}

// LoadConfig carga y valida la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadSeedConfig carga la configuración del administrador por defecto.
func LoadSeedConfig() (*SeedConfig, error) {
	var cfg SeedConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	cfg.Email = strings.ToLower(strings.TrimSpace(cfg.Email))
	if !domain.AdminRole(cfg.Role).Valid() {
		return nil, fmt.Errorf("invalid DEFAULT_ADMIN_ROLE: %s", cfg.Role)
	}
	return &cfg, nil
}

// LoadStorageConfig carga la configuración exigiendo solo el storage.
// La usan los comandos que no emiten tokens ni envían correo.
func LoadStorageConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.ValidateStorage(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate revisa combinaciones que los tags no pueden expresar.
func (c *Config) Validate() error {
	errs := c.storageErrors()

	if strings.TrimSpace(c.JWTSecret) == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}

	switch c.MailProvider {
	case MailProviderSMTP:
		if strings.TrimSpace(c.MailHost) == "" {
			errs = append(errs, errors.New("MAIL_HOST is required for the smtp provider"))
		}
	case MailProviderSES, MailProviderLog:
	default:
		errs = append(errs, fmt.Errorf("unknown MAIL_PROVIDER: %s", c.MailProvider))
	}

	if c.OTPExpMinutes <= 0 {
		errs = append(errs, errors.New("OTP_EXP_MINUTES must be positive"))
	}
	if c.JWTExpiresIn <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRES_IN must be positive"))
	}

	return errors.Join(errs...)
}

func (c *Config) ValidateStorage() error {
	return errors.Join(c.storageErrors()...)
}

func (c *Config) storageErrors() []error {
	var errs []error

	switch c.StorageDriver {
	case StorageDriverPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres driver"))
		}
	case StorageDriverMongo:
		if strings.TrimSpace(c.MongoURI) == "" {
			errs = append(errs, errors.New("MONGODB_URI is required for the mongo driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_DRIVER: %s", c.StorageDriver))
	}
	return errs
}

func (c *Config) OTPTTL() time.Duration {
	return time.Duration(c.OTPExpMinutes) * time.Minute
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}
