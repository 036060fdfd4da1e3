package config

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
)

var (
	// ErrReadConfig возвращается, если файл не удалось прочитать или разобрать
	ErrReadConfig = errors.New("config: failed to read config")

	// ErrInvalidConfig возвращается при некорректных значениях
	ErrInvalidConfig = errors.New("config: invalid config")
)

// Config конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	MenuService MenuServiceConfig `toml:"menu_service"`
	Restaurant  RestaurantConfig  `toml:"restaurant"`
}

// ServerConfig настройки HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`  // пусто = только stdout
	Level string `toml:"level"` // debug | info | warn | error
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// MenuServiceConfig настройки клиента каталога меню
type MenuServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// RestaurantConfig настройки ресторана
type RestaurantConfig struct {
	// Timezone IANA часовой пояс, в котором считаются полночь и календарные дни
	Timezone string `toml:"timezone"`

	location *time.Location
}

// Location часовой пояс ресторана; загружается в Load
func (c RestaurantConfig) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

// Load читает конфигурацию из TOML файла и подставляет значения по умолчанию
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(cfg.Restaurant.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: restaurant.timezone %q: %v", ErrInvalidConfig, cfg.Restaurant.Timezone, err)
	}
	cfg.Restaurant.location = loc

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
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
			ServiceName: "booking_window_service",
		},
		MenuService: MenuServiceConfig{
			Timeout: 5,
		},
		Restaurant: RestaurantConfig{
			Timezone: "UTC",
		},
	}
}

// applyDefaults подставляет дефолты вместо значений, явно обнулённых в файле
func applyDefaults(cfg *Config) {
	def := defaultConfig()

	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = def.Server.HTTPPort
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = def.Server.ShutdownTimeout
	}
	if cfg.Logs.Level == "" {
		cfg.Logs.Level = def.Logs.Level
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = def.Metrics.Path
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = def.Metrics.ServiceName
	}
	if cfg.MenuService.Timeout == 0 {
		cfg.MenuService.Timeout = def.MenuService.Timeout
	}
	if cfg.Restaurant.Timezone == "" {
		cfg.Restaurant.Timezone = def.Restaurant.Timezone
	}
}

func (c *Config) validate() error {
	if c.Server.HTTPPort < 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
	}
	if c.MenuService.URL == "" {
		return fmt.Errorf("%w: menu_service.url is required", ErrInvalidConfig)
	}
	if c.MenuService.Timeout < 0 {
		return fmt.Errorf("%w: menu_service.timeout must not be negative", ErrInvalidConfig)
	}
	return nil
}
