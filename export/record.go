package export

import (
	"errors"
	"fmt"
	"strings"

	"lcdcal/geometry"
)

// ErrBoundsNotSet is returned when an export is attempted before any usable
// bounds have been calibrated for the current rotation.
var ErrBoundsNotSet = errors.New("usable bounds not set")

// Record markers. Everything between them is valid TOML; the markers let an
// operator copy the block out of a scrolling serial log without guessing
// where it starts.
const (
	BeginMarker = "========== BEGIN CONFIG FILE =========="
	EndMarker   = "=========== END CONFIG FILE ==========="
)

// Pinout identifies the transport wiring of the panel. The calibration
// engine passes it through untouched; only the record consumer cares.
type Pinout struct {
	RST int `toml:"rst"`
	DC  int `toml:"dc"`
	CS  int `toml:"cs"`
	BL  int `toml:"bl"`
}

// Record is one complete calibration result. Field names, the orientation
// labels and the inclusive-edge convention are a wire contract with record
// consumers; changing any of them requires a format version bump.
type Record struct {
	Name         string
	Manufacturer string
	Model        string
	Published    geometry.Surface
	Pins         Pinout
	Orientation  string
	Left         int
	Right        int
	Top          int
	Bottom       int
	CenterX      int
	CenterY      int
}

// Build assembles a record from the calibrated state. It fails with
// ErrBoundsNotSet when bounds are still the unset sentinel.
func Build(name string, published geometry.Surface, rot geometry.Rotation, b geometry.Bounds, pins Pinout) (Record, error) {
	if !b.IsSet() {
		return Record{}, ErrBoundsNotSet
	}
	cx, cy := b.Center()
	return Record{
		Name:         name,
		Manufacturer: "Unknown",
		Model:        "Generic ST7735",
		Published:    published,
		Pins:         pins,
		Orientation:  rot.Orientation(),
		Left:         b.X,
		Right:        b.Right(),
		Top:          b.Y,
		Bottom:       b.Bottom(),
		CenterX:      cx,
		CenterY:      cy,
	}, nil
}

// Bounds reconstructs the usable rectangle from the inclusive edges.
func (r Record) Bounds() geometry.Bounds {
	return geometry.FromEdges(r.Left, r.Right, r.Top, r.Bottom)
}

// Render emits the record as the marker-bounded TOML block. The output is a
// pure function of the record: same record, byte-identical block.
func (r Record) Render() string {
	var sb strings.Builder

	fmt.Fprintln(&sb, BeginMarker)
	fmt.Fprintf(&sb, "# ST7735 Display Configuration - %s\n", r.Name)
	fmt.Fprintln(&sb, "# Format: TOML v1.0.0")
	fmt.Fprintln(&sb)
	fmt.Fprintln(&sb, "[device]")
	fmt.Fprintf(&sb, "name = %q\n", r.Name)
	fmt.Fprintf(&sb, "manufacturer = %q\n", r.Manufacturer)
	fmt.Fprintf(&sb, "model = %q\n", r.Model)
	fmt.Fprintf(&sb, "published_resolution = [%d, %d]\n", r.Published.Width, r.Published.Height)
	fmt.Fprintln(&sb)
	fmt.Fprintln(&sb, "[pinout]")
	fmt.Fprintf(&sb, "rst = %d\n", r.Pins.RST)
	fmt.Fprintf(&sb, "dc = %d\n", r.Pins.DC)
	fmt.Fprintf(&sb, "cs = %d\n", r.Pins.CS)
	fmt.Fprintf(&sb, "bl = %d\n", r.Pins.BL)
	fmt.Fprintln(&sb)
	fmt.Fprintln(&sb, "[calibration]")
	fmt.Fprintf(&sb, "orientation = %q\n", r.Orientation)
	fmt.Fprintln(&sb, "# Usable area bounds (0-indexed, inclusive)")
	fmt.Fprintf(&sb, "left = %d\n", r.Left)
	fmt.Fprintf(&sb, "right = %d\n", r.Right)
	fmt.Fprintf(&sb, "top = %d\n", r.Top)
	fmt.Fprintf(&sb, "bottom = %d\n", r.Bottom)
	fmt.Fprintln(&sb, "# Calculated center point")
	fmt.Fprintf(&sb, "center = [%d, %d]\n", r.CenterX, r.CenterY)
	fmt.Fprintln(&sb, EndMarker)

	return sb.String()
}
