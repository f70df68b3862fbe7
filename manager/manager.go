// Package manager keeps the registry of calibrated displays and renders
// verification patterns against their recorded usable bounds.
package manager

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"lcdcal/canvas"
	"lcdcal/export"
	"lcdcal/geometry"
)

var ErrDuplicateName = errors.New("display name already registered")

// Config is the applied form of a calibration record: everything a consumer
// needs to address the usable area of a physical panel.
type Config struct {
	Name         string
	Manufacturer string
	Model        string
	Published    geometry.Surface
	Rotation     geometry.Rotation
	Pins         export.Pinout
	Bounds       geometry.Bounds
}

// ConfigFromRecord converts a parsed calibration record into a Config.
func ConfigFromRecord(rec export.Record) (Config, error) {
	rot, ok := geometry.RotationFor(rec.Orientation)
	if !ok {
		return Config{}, fmt.Errorf("record %q: unknown orientation %q", rec.Name, rec.Orientation)
	}
	return Config{
		Name:         rec.Name,
		Manufacturer: rec.Manufacturer,
		Model:        rec.Model,
		Published:    rec.Published,
		Rotation:     rot,
		Pins:         rec.Pins,
		Bounds:       rec.Bounds(),
	}, nil
}

// Manager owns the set of registered displays. Names are unique; a second
// registration under the same name is rejected rather than replacing the
// first, so a stale record cannot silently shadow a live panel.
type Manager struct {
	displays map[string]*Display
	log      *slog.Logger
}

func New(log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{displays: make(map[string]*Display), log: log}
}

// Register binds a config to its canvas and adds it to the registry.
func (m *Manager) Register(cfg Config, cv canvas.Canvas) (*Display, error) {
	if cfg.Name == "" {
		return nil, errors.New("display name cannot be empty")
	}
	if _, exists := m.displays[cfg.Name]; exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateName, cfg.Name)
	}
	surf := cfg.Rotation.SurfaceFor(cfg.Published)
	bounds, clamped := geometry.Clamp(surf, cfg.Bounds)
	if clamped {
		m.log.Warn("registered bounds clamped to surface",
			"display", cfg.Name, "bounds", bounds)
	}
	cfg.Bounds = bounds
	d := &Display{Config: cfg, cv: cv}
	cv.SetRotation(cfg.Rotation)
	m.displays[cfg.Name] = d
	m.log.Info("display registered",
		"display", cfg.Name, "model", cfg.Model,
		"orientation", cfg.Rotation.Orientation())
	return d, nil
}

// Get looks a display up by name.
func (m *Manager) Get(name string) (*Display, bool) {
	d, ok := m.displays[name]
	return d, ok
}

// Names lists the registered display names in a stable order.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.displays))
	for name := range m.displays {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
