// Package display drives an ST7735 panel over SPI, presenting it as a
// canvas.Canvas. Drawing goes into an in-memory framebuffer; Flush streams
// the buffer to the controller in one address window.
package display

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"lcdcal/canvas"
	"lcdcal/geometry"
)

// ST7735 controller commands.
const (
	cmdSWRESET = 0x01
	cmdSLPOUT  = 0x11
	cmdINVOFF  = 0x20
	cmdDISPON  = 0x29
	cmdCASET   = 0x2A
	cmdRASET   = 0x2B
	cmdRAMWR   = 0x2C
	cmdMADCTL  = 0x36
	cmdCOLMOD  = 0x3A
)

// MADCTL bits.
const (
	madMY  = 0x80
	madMX  = 0x40
	madMV  = 0x20
	madBGR = 0x08
)

// madctlFor maps the logical rotation onto the controller's scan flags.
var madctlFor = map[geometry.Rotation]byte{
	geometry.RotPortrait:         madMX | madMY | madBGR,
	geometry.RotLandscape:        madMY | madMV | madBGR,
	geometry.RotReversePortrait:  madBGR,
	geometry.RotReverseLandscape: madMX | madMV | madBGR,
}

// maxTx keeps SPI transfers under the common 4KiB kernel limit.
const maxTx = 4096

// Options configures the SPI wiring of the panel.
type Options struct {
	SPIPort   string // e.g. "SPI0.0", empty for the first available port
	DCPin     string // data/command select
	ResetPin  string
	Backlight string // optional, empty when hardwired on
	Speed     physic.Frequency
	Published geometry.Surface
	Rotation  geometry.Rotation
}

// ST7735 is the hardware canvas. All drawing happens on the embedded
// framebuffer; nothing touches the bus until Flush.
type ST7735 struct {
	*canvas.Memory
	port spi.PortCloser
	conn spi.Conn
	dc   gpio.PinIO
	rst  gpio.PinIO
	bl   gpio.PinIO
}

var _ canvas.Canvas = (*ST7735)(nil)

// Open initializes the host, claims the SPI port and GPIO lines, resets the
// controller and leaves the panel on with the backlight lit.
func Open(opts Options) (*ST7735, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("host init: %w", err)
	}
	port, err := spireg.Open(opts.SPIPort)
	if err != nil {
		return nil, fmt.Errorf("open spi port %q: %w", opts.SPIPort, err)
	}
	speed := opts.Speed
	if speed == 0 {
		speed = 16 * physic.MegaHertz
	}
	conn, err := port.Connect(speed, spi.Mode0, 8)
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("spi connect: %w", err)
	}

	d := &ST7735{
		Memory: canvas.NewMemory(opts.Published, opts.Rotation),
		port:   port,
		conn:   conn,
	}
	if d.dc = gpioreg.ByName(opts.DCPin); d.dc == nil {
		port.Close()
		return nil, fmt.Errorf("dc pin %q not found", opts.DCPin)
	}
	if d.rst = gpioreg.ByName(opts.ResetPin); d.rst == nil {
		port.Close()
		return nil, fmt.Errorf("reset pin %q not found", opts.ResetPin)
	}
	if opts.Backlight != "" {
		if d.bl = gpioreg.ByName(opts.Backlight); d.bl == nil {
			port.Close()
			return nil, fmt.Errorf("backlight pin %q not found", opts.Backlight)
		}
	}

	if err := d.reset(); err != nil {
		port.Close()
		return nil, err
	}
	if err := d.initSequence(); err != nil {
		port.Close()
		return nil, err
	}
	if err := d.SetBacklight(true); err != nil {
		port.Close()
		return nil, err
	}
	return d, nil
}

func (d *ST7735) reset() error {
	if err := d.rst.Out(gpio.Low); err != nil {
		return fmt.Errorf("reset low: %w", err)
	}
	time.Sleep(10 * time.Millisecond)
	if err := d.rst.Out(gpio.High); err != nil {
		return fmt.Errorf("reset high: %w", err)
	}
	time.Sleep(120 * time.Millisecond)
	return nil
}

func (d *ST7735) initSequence() error {
	steps := []struct {
		cmd   byte
		data  []byte
		delay time.Duration
	}{
		{cmd: cmdSWRESET, delay: 150 * time.Millisecond},
		{cmd: cmdSLPOUT, delay: 120 * time.Millisecond},
		{cmd: cmdCOLMOD, data: []byte{0x05}}, // 16bpp
		{cmd: cmdMADCTL, data: []byte{madctlFor[d.Rotation()]}},
		{cmd: cmdINVOFF},
		{cmd: cmdDISPON, delay: 20 * time.Millisecond},
	}
	for _, s := range steps {
		if err := d.command(s.cmd, s.data...); err != nil {
			return err
		}
		if s.delay > 0 {
			time.Sleep(s.delay)
		}
	}
	return nil
}

func (d *ST7735) command(cmd byte, data ...byte) error {
	if err := d.dc.Out(gpio.Low); err != nil {
		return fmt.Errorf("dc low: %w", err)
	}
	if err := d.conn.Tx([]byte{cmd}, nil); err != nil {
		return fmt.Errorf("command 0x%02X: %w", cmd, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := d.dc.Out(gpio.High); err != nil {
		return fmt.Errorf("dc high: %w", err)
	}
	if err := d.conn.Tx(data, nil); err != nil {
		return fmt.Errorf("command 0x%02X data: %w", cmd, err)
	}
	return nil
}

// SetRotation reprograms the controller scan direction and swaps the
// framebuffer axes.
func (d *ST7735) SetRotation(r geometry.Rotation) {
	if !r.Valid() {
		return
	}
	d.Memory.SetRotation(r)
	// A failed MADCTL write leaves the panel mis-scanned until the next
	// Flush retries it; the canvas interface has nowhere to report it.
	d.command(cmdMADCTL, madctlFor[r])
}

// SetBacklight switches the backlight line, a no-op when the panel has none
// wired.
func (d *ST7735) SetBacklight(on bool) error {
	if d.bl == nil {
		return nil
	}
	level := gpio.Low
	if on {
		level = gpio.High
	}
	if err := d.bl.Out(level); err != nil {
		return fmt.Errorf("backlight: %w", err)
	}
	return nil
}

// Flush streams the whole framebuffer to the controller.
func (d *ST7735) Flush() error {
	w, h := d.Width(), d.Height()
	if err := d.window(0, 0, w-1, h-1); err != nil {
		return err
	}
	buf := make([]byte, 0, w*h*2)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			px := uint16(d.Get(x, y))
			buf = append(buf, byte(px>>8), byte(px))
		}
	}
	if err := d.dc.Out(gpio.High); err != nil {
		return fmt.Errorf("dc high: %w", err)
	}
	for off := 0; off < len(buf); off += maxTx {
		end := off + maxTx
		if end > len(buf) {
			end = len(buf)
		}
		if err := d.conn.Tx(buf[off:end], nil); err != nil {
			return fmt.Errorf("pixel stream: %w", err)
		}
	}
	return nil
}

func (d *ST7735) window(x0, y0, x1, y1 int) error {
	if err := d.command(cmdCASET, 0, byte(x0), 0, byte(x1)); err != nil {
		return err
	}
	if err := d.command(cmdRASET, 0, byte(y0), 0, byte(y1)); err != nil {
		return err
	}
	return d.command(cmdRAMWR)
}

// Close blanks the panel, drops the backlight and releases the SPI port.
func (d *ST7735) Close() error {
	d.Clear()
	d.Flush()
	d.SetBacklight(false)
	return d.port.Close()
}
