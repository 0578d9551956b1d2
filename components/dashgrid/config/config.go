// Package config loads gridserver and gridctl settings from a config file and
// DASHGRID_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/goliatone/go-dashgrid/components/dashgrid"
)

// EnvPrefix namespaces environment overrides, e.g. DASHGRID_GRID_COLUMNS.
const EnvPrefix = "DASHGRID"

// Config is the complete runtime configuration.
type Config struct {
	Server     ServerConfig      `mapstructure:"server"`
	Grid       dashgrid.Settings `mapstructure:"grid"`
	Logging    LoggingConfig     `mapstructure:"logging"`
	Dashboards []string          `mapstructure:"dashboards"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr     string `mapstructure:"addr"`
	BasePath string `mapstructure:"base_path"`

	// StreamAddr serves the net/http API plus SSE and WebSocket event streams.
	// Empty disables it.
	StreamAddr string `mapstructure:"stream_addr"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	// Level is one of DEBUG, INFO, WARN, ERROR.
	Level string `mapstructure:"level"`
	// Format is "json" or "text".
	Format string `mapstructure:"format"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:       ":8080",
			BasePath:   "/admin",
			StreamAddr: ":8081",
		},
		Grid: dashgrid.DefaultSettings(),
		Logging: LoggingConfig{
			Level:  "INFO",
			Format: "json",
		},
	}
}

// SetDefaults registers every default on v so env overrides resolve for keys
// absent from the config file.
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("server.addr", defaults.Server.Addr)
	v.SetDefault("server.base_path", defaults.Server.BasePath)
	v.SetDefault("server.stream_addr", defaults.Server.StreamAddr)

	v.SetDefault("grid.columns", defaults.Grid.Columns)
	v.SetDefault("grid.row_height", defaults.Grid.RowHeight)
	v.SetDefault("grid.margin.x", defaults.Grid.Margin.X)
	v.SetDefault("grid.margin.y", defaults.Grid.Margin.Y)
	v.SetDefault("grid.container_padding.x", defaults.Grid.ContainerPadding.X)
	v.SetDefault("grid.container_padding.y", defaults.Grid.ContainerPadding.Y)
	v.SetDefault("grid.max_rows", defaults.Grid.MaxRows)
	v.SetDefault("grid.floating_max_rows", defaults.Grid.FloatingMaxRows)
	v.SetDefault("grid.breakpoints.md", defaults.Grid.Breakpoints.MD)
	v.SetDefault("grid.breakpoints.hysteresis", defaults.Grid.Breakpoints.Hysteresis)
	v.SetDefault("grid.viewing_height_ratio", defaults.Grid.ViewingHeightRatio)

	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)

	v.SetDefault("dashboards", []string{})
}

// Load reads path (any format viper understands) when set, applies env
// overrides, and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	if err := dashgrid.ValidateSettings(c.Grid); err != nil {
		errs = append(errs, err)
	}
	if c.Grid.ViewingHeightRatio <= 0 || c.Grid.ViewingHeightRatio > 1 {
		errs = append(errs, fmt.Errorf("config: grid.viewing_height_ratio must be in (0, 1], got %v", c.Grid.ViewingHeightRatio))
	}
	if c.Grid.Breakpoints.Hysteresis < 0 {
		errs = append(errs, fmt.Errorf("config: grid.breakpoints.hysteresis must not be negative"))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("config: logging.format must be json or text, got %q", c.Logging.Format))
	}
	return errors.Join(errs...)
}

// Logger builds a slog logger for the logging section.
func (c LoggingConfig) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(c.Level)}
	if strings.EqualFold(c.Format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func parseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
