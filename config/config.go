// Package config loads runtime settings from the environment, with an
// optional .env file for bench setups.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"

	"lcdcal/export"
	"lcdcal/geometry"
)

// Config is everything the calibration tool reads from the environment.
// Pin names address host GPIO lines; the pin numbers are what gets written
// into the exported record for the device firmware.
type Config struct {
	PanelWidth  int `env:"LCDCAL_PANEL_WIDTH" default:"160"`
	PanelHeight int `env:"LCDCAL_PANEL_HEIGHT" default:"128"`
	Rotation    int `env:"LCDCAL_ROTATION" default:"1"`

	EscapeWindow time.Duration `env:"LCDCAL_ESCAPE_WINDOW" default:"10ms"`

	SPIPort      string `env:"LCDCAL_SPI_PORT" default:""`
	DCPin        string `env:"LCDCAL_PIN_DC" default:"GPIO24"`
	ResetPin     string `env:"LCDCAL_PIN_RESET" default:"GPIO25"`
	BacklightPin string `env:"LCDCAL_PIN_BACKLIGHT" default:""`

	PinRST int `env:"LCDCAL_RECORD_PIN_RST" default:"9"`
	PinDC  int `env:"LCDCAL_RECORD_PIN_DC" default:"8"`
	PinCS  int `env:"LCDCAL_RECORD_PIN_CS" default:"10"`
	PinBL  int `env:"LCDCAL_RECORD_PIN_BL" default:"7"`

	LogLevel  string `env:"LCDCAL_LOG_LEVEL" default:"info"`
	LogFormat string `env:"LCDCAL_LOG_FORMAT" default:"text"`
}

// Load reads the optional .env file and then the environment. A named file
// that does not exist is an error; the default ".env" is simply skipped.
func Load(dotenv string) (Config, error) {
	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil {
			return Config{}, fmt.Errorf("load %s: %w", dotenv, err)
		}
	} else if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	if cfg.PanelWidth <= 0 || cfg.PanelHeight <= 0 {
		return Config{}, fmt.Errorf("invalid panel dimensions %dx%d", cfg.PanelWidth, cfg.PanelHeight)
	}
	if !geometry.Rotation(cfg.Rotation).Valid() {
		return Config{}, fmt.Errorf("invalid rotation %d (want 0-3)", cfg.Rotation)
	}
	return cfg, nil
}

// Published returns the manufacturer-published panel dimensions. By the
// record convention these are the landscape width and height.
func (c Config) Published() geometry.Surface {
	return geometry.Surface{Width: c.PanelWidth, Height: c.PanelHeight}
}

// StartRotation returns the rotation the session begins in.
func (c Config) StartRotation() geometry.Rotation {
	return geometry.Rotation(c.Rotation)
}

// Pins returns the pin numbers stamped into exported records.
func (c Config) Pins() export.Pinout {
	return export.Pinout{RST: c.PinRST, DC: c.PinDC, CS: c.PinCS, BL: c.PinBL}
}

// Logger builds the slog logger described by the config, writing to w.
func (c Config) Logger(w *os.File) *slog.Logger {
	var level slog.Level
	switch c.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
