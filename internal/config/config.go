package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/annel0/voxel-layout/internal/layout"
	"github.com/annel0/voxel-layout/internal/logging"
	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации генератора уровней
type Config struct {
	Layout    LayoutConfig    `yaml:"layout"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Dump      DumpConfig      `yaml:"dump"`
}

type LayoutConfig struct {
	Archetype layout.Archetype `yaml:"archetype"`
	NumAgents int              `yaml:"num_agents"`
	Seed      *int64           `yaml:"seed"`
	Episodes  int              `yaml:"episodes"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	Dir   string `yaml:"dir"`
}

type MetricsConfig struct {
	Port int `yaml:"port"`
}

type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
}

type DumpConfig struct {
	Path string `yaml:"path"`
}

const (
	defaultNumAgents   = 2
	defaultEpisodes    = 1
	defaultMetricsPort = 2112
	defaultServiceName = "voxel-layout"
)

// Default конфигурация без файла
func Default() *Config {
	return &Config{
		Layout: LayoutConfig{
			Archetype: layout.Empty,
			NumAgents: defaultNumAgents,
			Episodes:  defaultEpisodes,
		},
		Logging:   LoggingConfig{Level: "INFO"},
		Telemetry: TelemetryConfig{ServiceName: defaultServiceName},
	}
}

// GetMetricsPort возвращает порт метрик с поддержкой fallback значений
func (m *MetricsConfig) GetMetricsPort() int {
	return getPortWithEnvFallback(m.Port, "LAYOUT_METRICS_PORT", defaultMetricsPort)
}

// GetSeed возвращает сид с приоритетом: config -> env LAYOUT_SEED -> 0
func (l *LayoutConfig) GetSeed() int64 {
	if l.Seed != nil {
		return *l.Seed
	}
	if envVal := os.Getenv("LAYOUT_SEED"); envVal != "" {
		if seed, err := strconv.ParseInt(envVal, 10, 64); err == nil {
			return seed
		}
	}
	return 0
}

// ConsoleLevel уровень логирования консоли; при ошибке INFO
func (l *LoggingConfig) ConsoleLevel() logging.LogLevel {
	level, err := logging.ParseLevel(l.Level)
	if err != nil {
		return logging.INFO
	}
	return level
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	if configPort > 0 {
		return configPort
	}

	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	return defaultPort
}

// Validate проверяет значения после загрузки
func (c *Config) Validate() error {
	if c.Layout.NumAgents <= 0 {
		return fmt.Errorf("%w: %d", layout.ErrInvalidAgentCount, c.Layout.NumAgents)
	}
	if !c.Layout.Archetype.Valid() {
		return fmt.Errorf("%w: %d", layout.ErrUnsupportedArchetype, int(c.Layout.Archetype))
	}
	if c.Layout.Episodes < 0 {
		return fmt.Errorf("episodes must not be negative: %d", c.Layout.Episodes)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}

// Load читает YAML файл конфигурации поверх значений по умолчанию.
// Если path == "", пытается прочитать из ENV LAYOUT_CONFIG; если и там пусто, возвращает Default().
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("LAYOUT_CONFIG")
		if path == "" {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}
