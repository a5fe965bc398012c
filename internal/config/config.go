package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	JWT       JWTConfig
	S3        S3Config
	Email     EmailConfig
	CORS      CORSConfig
	Log       LogConfig
	Retention RetentionConfig
	Plan      PlanConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings for export artifacts.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// EmailConfig holds invoice email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RetentionConfig holds trash retention and maintenance settings.
type RetentionConfig struct {
	// WindowDays is how long a trashed invoice survives before the sweeper
	// purges it.
	WindowDays int `mapstructure:"window_days"`
	// SweepInterval is how often the background worker runs the sweeper and
	// the overdue promoter.
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// Window returns the retention window as a duration.
func (r *RetentionConfig) Window() time.Duration {
	return time.Duration(r.WindowDays) * 24 * time.Hour
}

// PlanConfig holds plan-limit settings.
type PlanConfig struct {
	// MaxInvoices caps the number of non-trashed invoices per owner.
	// Zero means unlimited.
	MaxInvoices int `mapstructure:"max_invoices"`
}

// Load reads configuration from environment variables with the BILLFOLD_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BILLFOLD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "billfold")
	v.SetDefault("db.password", "billfold_secret")
	v.SetDefault("db.name", "billfold_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "billfold")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "billfold-exports")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "invoices@billfold.app")
	v.SetDefault("email.from_name", "Billfold")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Retention defaults
	v.SetDefault("retention.window_days", 30)
	v.SetDefault("retention.sweep_interval", "1h")

	// Plan defaults (0 = unlimited)
	v.SetDefault("plan.max_invoices", 0)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":              "BILLFOLD_SERVER_PORT",
		"server.read_timeout":      "BILLFOLD_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "BILLFOLD_SERVER_WRITE_TIMEOUT",
		"server.environment":       "BILLFOLD_SERVER_ENVIRONMENT",
		"db.host":                  "BILLFOLD_DB_HOST",
		"db.port":                  "BILLFOLD_DB_PORT",
		"db.user":                  "BILLFOLD_DB_USER",
		"db.password":              "BILLFOLD_DB_PASSWORD",
		"db.name":                  "BILLFOLD_DB_NAME",
		"db.sslmode":               "BILLFOLD_DB_SSLMODE",
		"db.max_open":              "BILLFOLD_DB_MAX_OPEN",
		"db.max_idle":              "BILLFOLD_DB_MAX_IDLE",
		"jwt.secret":               "BILLFOLD_JWT_SECRET",
		"jwt.access_expiry":        "BILLFOLD_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":       "BILLFOLD_JWT_REFRESH_EXPIRY",
		"jwt.issuer":               "BILLFOLD_JWT_ISSUER",
		"s3.region":                "BILLFOLD_S3_REGION",
		"s3.bucket":                "BILLFOLD_S3_BUCKET",
		"s3.endpoint":              "BILLFOLD_S3_ENDPOINT",
		"s3.access_key":            "BILLFOLD_S3_ACCESS_KEY",
		"s3.secret_key":            "BILLFOLD_S3_SECRET_KEY",
		"s3.presign_expiry":        "BILLFOLD_S3_PRESIGN_EXPIRY",
		"email.provider":           "BILLFOLD_EMAIL_PROVIDER",
		"email.region":             "BILLFOLD_EMAIL_REGION",
		"email.from_address":       "BILLFOLD_EMAIL_FROM_ADDRESS",
		"email.from_name":          "BILLFOLD_EMAIL_FROM_NAME",
		"cors.allowed_origins":     "BILLFOLD_CORS_ALLOWED_ORIGINS",
		"log.level":                "BILLFOLD_LOG_LEVEL",
		"log.format":               "BILLFOLD_LOG_FORMAT",
		"retention.window_days":    "BILLFOLD_RETENTION_WINDOW_DAYS",
		"retention.sweep_interval": "BILLFOLD_RETENTION_SWEEP_INTERVAL",
		"plan.max_invoices":        "BILLFOLD_PLAN_MAX_INVOICES",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if BILLFOLD_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("BILLFOLD_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Retention = RetentionConfig{
		WindowDays:    v.GetInt("retention.window_days"),
		SweepInterval: v.GetDuration("retention.sweep_interval"),
	}
	cfg.Plan = PlanConfig{
		MaxInvoices: v.GetInt("plan.max_invoices"),
	}

	return cfg, nil
}
