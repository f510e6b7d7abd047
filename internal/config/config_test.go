package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DATABASE_URL", "postgres://localhost/lms")
	t.Setenv("MAIL_HOST", "smtp.example.com")
}

func TestLoadConfig_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "5001", cfg.HTTPPort)
	assert.Equal(t, "5002", cfg.AdminHTTPPort)
	assert.Equal(t, StorageDriverPostgres, cfg.StorageDriver)
	assert.Equal(t, 7*24*time.Hour, cfg.JWTExpiresIn)
	assert.Equal(t, 10*time.Minute, cfg.OTPTTL())
	assert.Equal(t, 587, cfg.MailPort)
	assert.Equal(t, MailProviderSMTP, cfg.MailProvider)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoadConfig_MissingSecretFails(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadStorageConfig_IgnoresMailAndSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/lms")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("MAIL_HOST", "")

	cfg, err := LoadStorageConfig()
	require.NoError(t, err)
	assert.Equal(t, MailProviderSMTP, cfg.MailProvider)

	_, err = LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAIL_HOST")

	t.Setenv("DATABASE_URL", "")
	_, err = LoadStorageConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoadConfig_MongoRequiresURI(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("STORAGE_DRIVER", "mongo")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGODB_URI")

	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "lms", cfg.MongoDatabase)
}

func TestValidate_RejectsUnknownValues(t *testing.T) {
	cfg := Config{
		StorageDriver: "sqlite",
		MailProvider:  "pigeon",
		OTPExpMinutes: 0,
		JWTExpiresIn:  time.Hour,
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORAGE_DRIVER")
	assert.Contains(t, err.Error(), "MAIL_PROVIDER")
	assert.Contains(t, err.Error(), "OTP_EXP_MINUTES")
}

func TestValidate_LogProviderNeedsNoHost(t *testing.T) {
	cfg := Config{
		StorageDriver: StorageDriverPostgres,
		DatabaseURL:   "postgres://localhost/lms",
		MailProvider:  MailProviderLog,
		OTPExpMinutes: 5,
		JWTSecret:     "secret",
		JWTExpiresIn:  time.Hour,
	}
	assert.NoError(t, cfg.Validate())
}

func TestLoadSeedConfig(t *testing.T) {
	t.Setenv("DEFAULT_ADMIN_EMAIL", " Root@Company.com ")
	t.Setenv("DEFAULT_ADMIN_PASSWORD", "StrongPass123!")

	cfg, err := LoadSeedConfig()
	require.NoError(t, err)
	assert.Equal(t, "root@company.com", cfg.Email)
	assert.Equal(t, "Super Admin", cfg.FullName)
	assert.Equal(t, "superadmin", cfg.Role)

	t.Setenv("DEFAULT_ADMIN_ROLE", "owner")
	_, err = LoadSeedConfig()
	require.Error(t, err)
}
