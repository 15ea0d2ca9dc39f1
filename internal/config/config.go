// Package config загружает конфигурацию сервиса из TOML файла
// с переопределением через .env и переменные окружения
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-BoxScheduler/internal/domain"
	"github.com/m04kA/SMC-BoxScheduler/pkg/civilclock"
	"github.com/m04kA/SMC-BoxScheduler/pkg/types"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Civil    CivilConfig    `toml:"civil"`
	Boxes    BoxesConfig    `toml:"boxes"`
	Grid     GridConfig     `toml:"grid"`
	Booking  BookingConfig  `toml:"booking"`
	Events   EventsConfig   `toml:"events"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
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
	AutoMigrate     bool   `toml:"auto_migrate"`
}

// DSN возвращает строку подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // пусто = stdout
}

// MetricsConfig настройки prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// CivilConfig фиксированное смещение гражданского времени от UTC
type CivilConfig struct {
	OffsetMinutes int `toml:"offset_minutes"`
}

// BoxesConfig список боксов
type BoxesConfig struct {
	Names []string `toml:"names"`
}

// Has проверяет, что бокс есть в списке
func (c BoxesConfig) Has(box string) bool {
	for _, name := range c.Names {
		if name == box {
			return true
		}
	}
	return false
}

// GridConfig границы и шаг сетки слотов на день
type GridConfig struct {
	Start       string `toml:"start"`
	End         string `toml:"end"`
	StepMinutes int    `toml:"step_minutes"`
}

// Times возвращает времена сетки от Start до End включительно с шагом StepMinutes
func (c GridConfig) Times() ([]types.TimeString, error) {
	start, err := types.NewTimeStringFromString(c.Start)
	if err != nil {
		return nil, fmt.Errorf("%w: grid.start: %v", ErrInvalidConfig, err)
	}
	end, err := types.NewTimeStringFromString(c.End)
	if err != nil {
		return nil, fmt.Errorf("%w: grid.end: %v", ErrInvalidConfig, err)
	}
	if c.StepMinutes <= 0 {
		return nil, fmt.Errorf("%w: grid.step_minutes must be positive", ErrInvalidConfig)
	}
	if start.IsAfter(end) {
		return nil, fmt.Errorf("%w: grid.start is after grid.end", ErrInvalidConfig)
	}

	times := make([]types.TimeString, 0)
	for m := start.Minutes(); m <= end.Minutes(); m += c.StepMinutes {
		times = append(times, types.FromMinutes(m))
	}
	return times, nil
}

// BookingConfig правила бронирования
type BookingConfig struct {
	DefaultDurationMinutes int  `toml:"default_duration_minutes"`
	StrictOverlap          bool `toml:"strict_overlap"`      // проверять пересечение интервалов, а не только ячейку
	EnforceTransitions     bool `toml:"enforce_transitions"` // проверять переходы статусов при обновлении
}

// EventsConfig настройки публикации событий в RabbitMQ
type EventsConfig struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

// Load читает конфигурацию из TOML файла, затем применяет .env и переменные окружения
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	// .env необязателен
	_ = godotenv.Load(".env")

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
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
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "box-scheduler",
		},
		Civil: CivilConfig{OffsetMinutes: domain.DefaultOffsetMinutes},
		Grid: GridConfig{
			Start:       "08:00",
			End:         "20:00",
			StepMinutes: domain.DefaultGridStepMinutes,
		},
		Booking: BookingConfig{DefaultDurationMinutes: domain.DefaultDurationMinutes},
		Events:  EventsConfig{Exchange: "box-scheduler.events"},
	}
}

// applyEnv переопределяет значения из переменных окружения
func (c *Config) applyEnv() error {
	if v := os.Getenv("DB_HOST"); v != "" {
		c.Database.Host = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: HTTP_PORT=%q is not a number", ErrInvalidConfig, v)
		}
		c.Server.HTTPPort = port
	}
	if v := os.Getenv("AMQP_URL"); v != "" {
		c.Events.URL = v
	}
	return nil
}

// Validate проверяет конфигурацию
func (c *Config) Validate() error {
	if len(c.Boxes.Names) == 0 {
		return fmt.Errorf("%w: boxes.names must not be empty", ErrInvalidConfig)
	}
	seen := make(map[string]bool, len(c.Boxes.Names))
	for _, name := range c.Boxes.Names {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: boxes.names contains an empty name", ErrInvalidConfig)
		}
		if seen[name] {
			return fmt.Errorf("%w: duplicate box %q", ErrInvalidConfig, name)
		}
		seen[name] = true
	}

	if c.Civil.OffsetMinutes < -civilclock.MaxOffsetMinutes || c.Civil.OffsetMinutes > civilclock.MaxOffsetMinutes {
		return fmt.Errorf("%w: civil.offset_minutes=%d is outside ±%d", ErrInvalidConfig,
			c.Civil.OffsetMinutes, civilclock.MaxOffsetMinutes)
	}

	if _, err := c.Grid.Times(); err != nil {
		return err
	}

	if c.Booking.DefaultDurationMinutes < domain.MinDurationMinutes ||
		c.Booking.DefaultDurationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: booking.default_duration_minutes=%d out of range", ErrInvalidConfig,
			c.Booking.DefaultDurationMinutes)
	}

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	if c.Events.Enabled && c.Events.URL == "" {
		return fmt.Errorf("%w: events.url is required when events are enabled", ErrInvalidConfig)
	}

	return nil
}
