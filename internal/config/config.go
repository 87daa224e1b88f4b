package config

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

// envPrefix префикс переменных окружения, переопределяющих значения из файла
const envPrefix = "PLAYGROUND"

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server            ServerConfig            `toml:"server" envconfig:"SERVER"`
	Database          DatabaseConfig          `toml:"database" envconfig:"DATABASE"`
	Logs              LogsConfig              `toml:"logs" envconfig:"LOGS"`
	Metrics           MetricsConfig           `toml:"metrics" envconfig:"METRICS"`
	PlaygroundService PlaygroundServiceConfig `toml:"playground_service" envconfig:"PLAYGROUND_SERVICE"`
	Booking           BookingConfig           `toml:"booking" envconfig:"BOOKING"`
	Events            EventsConfig            `toml:"events" envconfig:"EVENTS"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" envconfig:"HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    int `toml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     int `toml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout int `toml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	RequestTimeout  int `toml:"request_timeout" envconfig:"REQUEST_TIMEOUT"`
}

// DatabaseConfig настройки подключения к PostgreSQL
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
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, sslMode)
}

type LogsConfig struct {
	File  string `toml:"file" envconfig:"FILE"`
	Level string `toml:"level" envconfig:"LEVEL"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" envconfig:"ENABLED"`
	Path        string `toml:"path" envconfig:"PATH"`
	ServiceName string `toml:"service_name" envconfig:"SERVICE_NAME"`
}

// PlaygroundServiceConfig настройки клиента каталога площадок (timeout в секундах)
type PlaygroundServiceConfig struct {
	URL     string `toml:"url" envconfig:"URL"`
	Timeout int    `toml:"timeout" envconfig:"TIMEOUT"`
}

// BookingConfig настройки бронирования
type BookingConfig struct {
	// Timezone часовой пояс, в котором интерпретируются даты и время бронирований
	Timezone string `toml:"timezone" envconfig:"TIMEZONE"`
}

// Location загружает часовой пояс бронирований
func (c BookingConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: booking.timezone %q: %v", ErrInvalidConfig, c.Timezone, err)
	}
	return loc, nil
}

// EventsConfig настройки публикации событий бронирований в RabbitMQ
type EventsConfig struct {
	Enabled  bool   `toml:"enabled" envconfig:"ENABLED"`
	URL      string `toml:"url" envconfig:"URL"`
	Exchange string `toml:"exchange" envconfig:"EXCHANGE"`
}

// Load читает конфигурацию из TOML файла и применяет переопределения из окружения
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, fmt.Errorf("apply env overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535, got %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if c.PlaygroundService.URL == "" {
		return fmt.Errorf("%w: playground_service.url is required", ErrInvalidConfig)
	}
	if c.Events.Enabled && (c.Events.URL == "" || c.Events.Exchange == "") {
		return fmt.Errorf("%w: events.url and events.exchange are required when events are enabled", ErrInvalidConfig)
	}
	if _, err := c.Booking.Location(); err != nil {
		return err
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
			RequestTimeout:  10,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "playground-booking",
		},
		PlaygroundService: PlaygroundServiceConfig{
			Timeout: 5,
		},
		Booking: BookingConfig{
			Timezone: "UTC",
		},
		Events: EventsConfig{
			Exchange: "playground.bookings",
		},
	}
}
