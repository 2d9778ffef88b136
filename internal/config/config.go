package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type PayoutConfig struct {
	Env          string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer   `yaml:"http_server"`
	GRPCServer   `yaml:"grpc_server"`
	PayoutDB     `yaml:"payout_db"`
	LogConfig    `yaml:"log_config"`
	MailService  `yaml:"mail-service"`
	KafkaService `yaml:"kafka-service"`
	Auth         `yaml:"auth"`
	Withdrawals  `yaml:"withdrawals"`
}

type HTTPServer struct {
	Host            string        `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env-default:"15s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"10s"`
}

type GRPCServer struct {
	Host string `yaml:"host" env:"GRPC_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"GRPC_PORT" env-default:"50051"`
}

type PayoutDB struct {
	// Driver is "postgres" or "memory".
	Driver         string     `yaml:"driver" env:"PAYOUT_DB_DRIVER" env-default:"postgres"`
	Dsn            string     `yaml:"dsn" env:"PAYOUT_DB_DSN"`
	SkipMigrations bool       `yaml:"skip_migrations" env:"PAYOUT_DB_SKIP_MIGRATIONS"`
	SeedShops      []SeedShop `yaml:"seed_shops"`
}

// SeedShop preloads the memory driver.
type SeedShop struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Email   string `yaml:"email"`
	Balance string `yaml:"balance"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT" env-default:"json"`
	LogOutput string `yaml:"log_output" env:"LOG_OUTPUT" env-default:"stdout"`
}

type MailService struct {
	Enabled bool          `yaml:"enabled" env:"MAIL_ENABLED"`
	BaseURL string        `yaml:"base_url" env:"MAIL_BASE_URL"`
	APIKey  string        `yaml:"api_key" env:"MAIL_API_KEY"`
	From    string        `yaml:"from" env:"MAIL_FROM" env-default:"no-reply@shvark.market"`
	Timeout time.Duration `yaml:"timeout" env:"MAIL_TIMEOUT" env-default:"5s"`
}

type KafkaService struct {
	Enabled    bool     `yaml:"enabled" env:"KAFKA_ENABLED"`
	Brokers    []string `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:","`
	Topic      string   `yaml:"topic" env:"KAFKA_TOPIC" env-default:"withdrawal-events"`
	Username   string   `yaml:"username" env:"KAFKA_USERNAME"`
	Password   string   `yaml:"password" env:"KAFKA_PASSWORD"`
	Mechanism  string   `yaml:"mechanism" env:"KAFKA_MECHANISM"`
	TLSEnabled bool     `yaml:"tls_enabled" env:"KAFKA_TLS_ENABLED"`
	Async      bool     `yaml:"async" env:"KAFKA_ASYNC"`
}

type Auth struct {
	JWTSecret string `yaml:"jwt_secret" env:"AUTH_JWT_SECRET"`
}

type Withdrawals struct {
	NotifyTimeout     time.Duration `yaml:"notify_timeout" env:"WITHDRAWALS_NOTIFY_TIMEOUT" env-default:"10s"`
	RefundOnReject    bool          `yaml:"refund_on_reject" env:"WITHDRAWALS_REFUND_ON_REJECT"`
	ReconcileInterval time.Duration `yaml:"reconcile_interval" env-default:"1m"`
	ReconcileBatch    int           `yaml:"reconcile_batch" env-default:"100"`
}

// Load reads the YAML file at path and applies env overrides.
func Load(path string) (*PayoutConfig, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	var cfg PayoutConfig
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func MustLoad() *PayoutConfig {
	configPath := os.Getenv("PAYOUT_CONFIG_PATH")
	if configPath == "" {
		log.Fatalf("PAYOUT_CONFIG_PATH was not found\n")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("%v\n", err)
	}
	return cfg
}

func (c *PayoutConfig) validate() error {
	switch c.PayoutDB.Driver {
	case "postgres":
		if c.PayoutDB.Dsn == "" {
			return fmt.Errorf("payout_db.dsn is required for the postgres driver")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown payout_db.driver %q", c.PayoutDB.Driver)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}
	if c.MailService.Enabled && c.MailService.BaseURL == "" {
		return fmt.Errorf("mail-service.base_url is required when mail is enabled")
	}
	if c.KafkaService.Enabled && len(c.KafkaService.Brokers) == 0 {
		return fmt.Errorf("kafka-service.brokers is required when kafka is enabled")
	}
	return nil
}
