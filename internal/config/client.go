package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// ClientConfig конфигурация консольного клиента courtctl
type ClientConfig struct {
	API     APIConfig     `toml:"api"`
	Session SessionConfig `toml:"session"`
	Logs    LogsConfig    `toml:"logs"`
	Booking BookingConfig `toml:"booking"`
	Metrics MetricsConfig `toml:"metrics"`
}

type APIConfig struct {
	BaseURL string `toml:"base_url"`
	Timeout int    `toml:"timeout"` // секунды
}

type SessionConfig struct {
	// TokenFile файл с bearer-токеном; переменная окружения COURT_TOKEN имеет приоритет
	TokenFile string `toml:"token_file"`
}

type BookingConfig struct {
	DefaultField string `toml:"default_field"`
	Timezone     string `toml:"timezone"`
	// RollbackOnPartialFailure удалять успешно созданные бронирования, если часть пакета не прошла
	RollbackOnPartialFailure bool `toml:"rollback_on_partial_failure"`
	WatchInterval            int  `toml:"watch_interval"` // секунды
}

// Location возвращает часовой пояс, в котором клиент считает даты
func (c BookingConfig) Location() (*time.Location, error) {
	return loadLocation(c.Timezone)
}

// LoadClient загружает конфигурацию клиента. Отсутствующий файл не является ошибкой:
// используются значения по умолчанию
func LoadClient(path string) (*ClientConfig, error) {
	cfg := &ClientConfig{}

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *ClientConfig) applyDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = "http://localhost:3000/api"
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = 10
	}
	if c.Session.TokenFile == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.Session.TokenFile = filepath.Join(home, ".courtctl", "token")
		} else {
			c.Session.TokenFile = ".courtctl-token"
		}
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "warn"
	}
	if c.Booking.DefaultField == "" {
		c.Booking.DefaultField = "basket"
	}
	if c.Booking.WatchInterval == 0 {
		c.Booking.WatchInterval = 30
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "courtctl"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.Addr == "" {
		c.Metrics.Addr = ":9102"
	}
}

// Validate проверяет параметры клиента
func (c *ClientConfig) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: api.base_url must be an absolute URL", ErrInvalidConfig)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("%w: api.timeout must not be negative", ErrInvalidConfig)
	}
	if c.Booking.WatchInterval < 0 {
		return fmt.Errorf("%w: booking.watch_interval must not be negative", ErrInvalidConfig)
	}
	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("%w: booking.timezone: %v", ErrInvalidConfig, err)
	}
	return nil
}
