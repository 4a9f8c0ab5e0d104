package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix of environment overrides, e.g. RENTAL_DATABASE_PASSWORD.
const EnvPrefix = "RENTAL"

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Server    ServerConfig    `toml:"server" envconfig:"SERVER"`
	Database  DatabaseConfig  `toml:"database" envconfig:"DATABASE"`
	Logs      LogsConfig      `toml:"logs" envconfig:"LOGS"`
	Metrics   MetricsConfig   `toml:"metrics" envconfig:"METRICS"`
	Auth      AuthConfig      `toml:"auth" envconfig:"AUTH"`
	Pricing   PricingConfig   `toml:"pricing" envconfig:"PRICING"`
	Razorpay  RazorpayConfig  `toml:"razorpay" envconfig:"RAZORPAY"`
	Redis     RedisConfig     `toml:"redis" envconfig:"REDIS"`
	SendGrid  SendGridConfig  `toml:"sendgrid" envconfig:"SENDGRID"`
	MQ        MQConfig        `toml:"mq" envconfig:"MQ"`
	Scheduler SchedulerConfig `toml:"scheduler" envconfig:"SCHEDULER"`
	RateLimit RateLimitConfig `toml:"ratelimit" envconfig:"RATELIMIT"`
	CORS      CORSConfig      `toml:"cors" envconfig:"CORS"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port" envconfig:"HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    int `toml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     int `toml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout int `toml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

type DatabaseConfig struct {
	Host            string `toml:"host" envconfig:"HOST"`
	Port            int    `toml:"port" envconfig:"PORT"`
	User            string `toml:"user" envconfig:"USER"`
	Password        string `toml:"password" envconfig:"PASSWORD"`
	DBName          string `toml:"dbname" envconfig:"DBNAME"`
	SSLMode         string `toml:"sslmode" envconfig:"SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns" envconfig:"MAX_OPEN_CONNS"`
	MaxIdleConns    int    `toml:"max_idle_conns" envconfig:"MAX_IDLE_CONNS"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" envconfig:"CONN_MAX_LIFETIME"`
	AutoMigrate     bool   `toml:"auto_migrate" envconfig:"AUTO_MIGRATE"`
}

// DSN returns the lib/pq connection string.
func (d DatabaseConfig) DSN() string {
	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, sslMode)
}

type LogsConfig struct {
	Level string `toml:"level" envconfig:"LEVEL"`
	File  string `toml:"file" envconfig:"FILE"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" envconfig:"ENABLED"`
	Path        string `toml:"path" envconfig:"PATH"`
	ServiceName string `toml:"service_name" envconfig:"SERVICE_NAME"`
}

type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret" envconfig:"JWT_SECRET"`
	Issuer    string `toml:"issuer" envconfig:"ISSUER"`
	Audience  string `toml:"audience" envconfig:"AUDIENCE"`
}

type PricingConfig struct {
	TaxRate          float64 `toml:"tax_rate" envconfig:"TAX_RATE"`
	AdvanceRate      float64 `toml:"advance_rate" envconfig:"ADVANCE_RATE"`
	MaxPaymentAmount float64 `toml:"max_payment_amount" envconfig:"MAX_PAYMENT_AMOUNT"`
	Currency         string  `toml:"currency" envconfig:"CURRENCY"`
	PhoneLocale      string  `toml:"phone_locale" envconfig:"PHONE_LOCALE"`
}

// RazorpayConfig may be left empty; payment endpoints then fail per request with a configuration error.
type RazorpayConfig struct {
	KeyID     string `toml:"key_id" envconfig:"KEY_ID"`
	KeySecret string `toml:"key_secret" envconfig:"KEY_SECRET"`
	BaseURL   string `toml:"base_url" envconfig:"BASE_URL"`
	Timeout   int    `toml:"timeout" envconfig:"TIMEOUT"`
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled" envconfig:"ENABLED"`
	Addr     string `toml:"addr" envconfig:"ADDR"`
	Password string `toml:"password" envconfig:"PASSWORD"`
	DB       int    `toml:"db" envconfig:"DB"`
	TTL      int    `toml:"ttl" envconfig:"TTL"`
}

type SendGridConfig struct {
	Enabled    bool   `toml:"enabled" envconfig:"ENABLED"`
	APIKey     string `toml:"api_key" envconfig:"API_KEY"`
	FromEmail  string `toml:"from_email" envconfig:"FROM_EMAIL"`
	FromName   string `toml:"from_name" envconfig:"FROM_NAME"`
	AdminEmail string `toml:"admin_email" envconfig:"ADMIN_EMAIL"`
}

type MQConfig struct {
	Enabled  bool   `toml:"enabled" envconfig:"ENABLED"`
	URL      string `toml:"url" envconfig:"URL"`
	Exchange string `toml:"exchange" envconfig:"EXCHANGE"`
}

type SchedulerConfig struct {
	Enabled                 bool   `toml:"enabled" envconfig:"ENABLED"`
	PaymentReminderSpec     string `toml:"payment_reminder_spec" envconfig:"PAYMENT_REMINDER_SPEC"`
	RentalStartReminderSpec string `toml:"rental_start_reminder_spec" envconfig:"RENTAL_START_REMINDER_SPEC"`
	ReminderWindowHours     int    `toml:"reminder_window_hours" envconfig:"REMINDER_WINDOW_HOURS"`
}

type RateLimitConfig struct {
	Enabled bool    `toml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `toml:"rps" envconfig:"RPS"`
	Burst   int     `toml:"burst" envconfig:"BURST"`
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`
}

// Load reads the TOML file at path, applies RENTAL_* environment overrides, fills defaults and validates.
// A missing file is not an error when the environment provides everything.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("env overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used for values absent from file and environment.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "rental-service",
		},
		Pricing: PricingConfig{
			TaxRate:          0.18,
			AdvanceRate:      0.30,
			MaxPaymentAmount: 10_000_000,
			Currency:         "INR",
			PhoneLocale:      "IN",
		},
		Razorpay: RazorpayConfig{
			BaseURL: "https://api.razorpay.com/v1",
			Timeout: 10,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
			TTL:  300,
		},
		SendGrid: SendGridConfig{FromName: "HeavyRent"},
		MQ:       MQConfig{Exchange: "rental.events"},
		Scheduler: SchedulerConfig{
			PaymentReminderSpec:     "0 0 8 * * *",
			RentalStartReminderSpec: "0 30 8 * * *",
			ReminderWindowHours:     24,
		},
		RateLimit: RateLimitConfig{RPS: 2, Burst: 5},
		CORS:      CORSConfig{AllowedOrigins: []string{"*"}},
	}
}

// Validate checks values the service cannot start without.
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, "server.http_port out of range")
	}
	if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
		problems = append(problems, "database host, dbname and user are required")
	}
	if c.Auth.JWTSecret == "" {
		problems = append(problems, "auth.jwt_secret is required")
	}
	if c.Pricing.TaxRate < 0 || c.Pricing.TaxRate >= 1 {
		problems = append(problems, "pricing.tax_rate must be in [0,1)")
	}
	if c.Pricing.AdvanceRate <= 0 || c.Pricing.AdvanceRate > 1 {
		problems = append(problems, "pricing.advance_rate must be in (0,1]")
	}
	if c.Pricing.MaxPaymentAmount <= 0 {
		problems = append(problems, "pricing.max_payment_amount must be positive")
	}
	if c.Redis.Enabled && c.Redis.TTL <= 0 {
		problems = append(problems, "redis.ttl must be positive")
	}
	if c.SendGrid.Enabled && (c.SendGrid.APIKey == "" || c.SendGrid.FromEmail == "") {
		problems = append(problems, "sendgrid api_key and from_email are required when enabled")
	}
	if c.MQ.Enabled && c.MQ.URL == "" {
		problems = append(problems, "mq.url is required when enabled")
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		problems = append(problems, "ratelimit rps and burst must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
