package export

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"lcdcal/geometry"
)

// ErrNoRecord is returned when the input contains no recognizable record.
var ErrNoRecord = errors.New("no calibration record found")

// recordFile mirrors the TOML layout of an exported record.
type recordFile struct {
	Device struct {
		Name                string `toml:"name"`
		Manufacturer        string `toml:"manufacturer"`
		Model               string `toml:"model"`
		PublishedResolution []int  `toml:"published_resolution"`
	} `toml:"device"`
	Pinout      Pinout `toml:"pinout"`
	Calibration struct {
		Orientation string `toml:"orientation"`
		Left        int    `toml:"left"`
		Right       int    `toml:"right"`
		Top         int    `toml:"top"`
		Bottom      int    `toml:"bottom"`
		Center      []int  `toml:"center"`
	} `toml:"calibration"`
}

// Parse reads a calibration record, either the bare TOML body or a full
// marker-bounded block as copied from a serial log. It validates the
// contract fields a consumer depends on.
func Parse(text string) (Record, error) {
	body, err := extractBody(text)
	if err != nil {
		return Record{}, err
	}

	var f recordFile
	if _, err := toml.Decode(body, &f); err != nil {
		return Record{}, fmt.Errorf("malformed calibration record: %w", err)
	}

	if f.Device.Name == "" {
		return Record{}, errors.New("calibration record has no device name")
	}
	if len(f.Device.PublishedResolution) != 2 {
		return Record{}, fmt.Errorf("published_resolution must have 2 entries, got %d", len(f.Device.PublishedResolution))
	}
	if _, ok := geometry.RotationFor(f.Calibration.Orientation); !ok {
		return Record{}, fmt.Errorf("unknown orientation %q", f.Calibration.Orientation)
	}
	if f.Calibration.Right < f.Calibration.Left || f.Calibration.Bottom < f.Calibration.Top {
		return Record{}, errors.New("calibration edges are inverted")
	}
	if len(f.Calibration.Center) != 2 {
		return Record{}, fmt.Errorf("center must have 2 entries, got %d", len(f.Calibration.Center))
	}

	return Record{
		Name:         f.Device.Name,
		Manufacturer: f.Device.Manufacturer,
		Model:        f.Device.Model,
		Published: geometry.Surface{
			Width:  f.Device.PublishedResolution[0],
			Height: f.Device.PublishedResolution[1],
		},
		Pins:        f.Pinout,
		Orientation: f.Calibration.Orientation,
		Left:        f.Calibration.Left,
		Right:       f.Calibration.Right,
		Top:         f.Calibration.Top,
		Bottom:      f.Calibration.Bottom,
		CenterX:     f.Calibration.Center[0],
		CenterY:     f.Calibration.Center[1],
	}, nil
}

// extractBody strips the BEGIN/END markers and anything outside them. Input
// without markers is assumed to be a bare TOML body.
func extractBody(text string) (string, error) {
	begin := strings.Index(text, BeginMarker)
	end := strings.Index(text, EndMarker)
	if begin < 0 && end < 0 {
		if strings.TrimSpace(text) == "" {
			return "", ErrNoRecord
		}
		return text, nil
	}
	if begin < 0 || end < 0 || end < begin {
		return "", ErrNoRecord
	}
	return text[begin+len(BeginMarker) : end], nil
}
