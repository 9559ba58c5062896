// Package config предоставляет структуры и функции для загрузки конфига сервиса подписок
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Драйверы хранилища
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config общая структура для хранения настроек
type Config struct {
	Env             string `yaml:"env" env:"ENV" env-default:"local"`
	Storage         `yaml:"storage"`
	RedisConnection `yaml:"redis_connection"`
	HTTPServer      `yaml:"http_server"`
	GRPCServer      `yaml:"grpc_server"`
	RabbitMQ        `yaml:"rabbitmq"`
	JWTToken        `yaml:"jwttoken"`
	Entitlements    `yaml:"entitlements"`
	Scheduler       `yaml:"scheduler"`
	RateLimit       `yaml:"rate_limit"`
}

// Storage настройки хранилища
type Storage struct {
	Driver                  string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"postgres"`
	StorageConnectionString string `yaml:"connection_string" env:"STORAGE_CONNECTION_STRING"`
	SQLitePath              string `yaml:"sqlite_path" env:"SQLITE_PATH" env-default:"./data/entitlements.db"`
	MigrationsPath          string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// GRPCServer адрес внутреннего gRPC API
type GRPCServer struct {
	AddressGRPC string `yaml:"addressgrpc" env:"GRPC_ADDRESS" env-default:":50051"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// RabbitMQ настройки публикации событий
type RabbitMQ struct {
	Enabled    bool          `yaml:"enabled" env:"RABBITMQ_ENABLED"`
	URL        string        `yaml:"url" env:"RABBITMQ_URL"`
	Exchange   string        `yaml:"exchange" env-default:"entitlements"`
	MaxRetries int           `yaml:"max_retries" env-default:"5"`
	RetryDelay time.Duration `yaml:"retry_delay" env-default:"2s"`
}

// JWTToken структура для работы с jwt-токеном
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"24h"`
}

// Entitlements правила триала, назначения тарифов и хранения истории
type Entitlements struct {
	TrialDays     int           `yaml:"trial_days" env-default:"10"`
	TrialPlan     string        `yaml:"trial_plan" env-default:"trial"`
	FreePlan      string        `yaml:"free_plan" env-default:"free"`
	AssignPeriod  time.Duration `yaml:"assign_period" env-default:"8760h"`
	RetentionDays int           `yaml:"retention_days" env-default:"30"`
	PlanCacheTTL  time.Duration `yaml:"plan_cache_ttl" env-default:"10m"`
}

// Scheduler интервалы фоновых задач
type Scheduler struct {
	PurgeInterval      time.Duration `yaml:"purge_interval" env-default:"24h"`
	TrialSweepInterval time.Duration `yaml:"trial_sweep_interval" env-default:"1h"`
}

// RateLimit ограничение частоты запросов к HTTP API
type RateLimit struct {
	RPS   float64 `yaml:"rps" env-default:"20"`
	Burst int     `yaml:"burst" env-default:"40"`
}

// Load читает конфиг из файла path и проверяет его
func Load(path string) (*Config, error) {
	const op = "config.Load"

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// MustLoad загружает конфиг по пути из CONFIG_PATH и завершает процесс при ошибке
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	var errs []error
	switch c.Driver {
	case DriverPostgres:
		if c.StorageConnectionString == "" {
			errs = append(errs, errors.New("storage.connection_string is required for postgres"))
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			errs = append(errs, errors.New("storage.sqlite_path is required for sqlite"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage driver %q", c.Driver))
	}
	if c.JWTSecretKey == "" {
		errs = append(errs, errors.New("jwttoken.jwt_secret_key is required"))
	}
	if c.TrialDays <= 0 {
		errs = append(errs, errors.New("entitlements.trial_days must be positive"))
	}
	if c.RetentionDays <= 0 {
		errs = append(errs, errors.New("entitlements.retention_days must be positive"))
	}
	if c.RabbitMQ.Enabled && c.RabbitMQ.URL == "" {
		errs = append(errs, errors.New("rabbitmq.url is required when rabbitmq is enabled"))
	}
	return errors.Join(errs...)
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"Storage:\n"+
			"  Driver: %s\n"+
			"  SQLitePath: %s\n"+
			"  MigrationsPath: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"GRPCServer:\n"+
			"  Address: %s\n"+
			"RabbitMQ:\n"+
			"  Enabled: %t\n"+
			"  Exchange: %s\n"+
			"Entitlements:\n"+
			"  TrialDays: %d\n"+
			"  TrialPlan: %s\n"+
			"  FreePlan: %s\n"+
			"  RetentionDays: %d\n",
		c.Env,
		c.Driver,
		c.SQLitePath,
		c.MigrationsPath,
		c.AddressRedis,
		c.DB,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.AddressGRPC,
		c.RabbitMQ.Enabled,
		c.Exchange,
		c.TrialDays,
		c.TrialPlan,
		c.FreePlan,
		c.RetentionDays,
	)
}
