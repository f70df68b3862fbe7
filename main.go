package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"lcdcal/canvas"
	"lcdcal/config"
	"lcdcal/display"
	"lcdcal/export"
	"lcdcal/geometry"
	"lcdcal/input"
	"lcdcal/manager"
	"lcdcal/session"
	"lcdcal/simulator"
	"lcdcal/terminal"
)

func main() {
	var (
		sim        = flag.Bool("sim", false, "Run against a terminal-window simulator instead of SPI hardware")
		envFile    = flag.String("env", "", "Env file with panel and wiring settings (default: ./.env if present)")
		recordFile = flag.String("record", "", "Existing calibration record to start from (TOML)")
		pattern    = flag.Bool("pattern", false, "Render the record's verification pattern and exit (requires -record)")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		printUsage()
		return
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		fatal(err)
	}
	log := cfg.Logger(os.Stderr)

	var prior *export.Record
	if *recordFile != "" {
		text, err := os.ReadFile(*recordFile)
		if err != nil {
			fatal(err)
		}
		rec, err := export.Parse(string(text))
		if err != nil {
			fatal(fmt.Errorf("parse %s: %w", *recordFile, err))
		}
		prior = &rec
		log.Info("loaded calibration record", "device", rec.Name, "file", *recordFile)
	}
	if *pattern && prior == nil {
		fatal(errors.New("-pattern needs -record"))
	}

	if *sim {
		err = runSimulated(cfg, log, prior, *pattern)
	} else {
		err = runHardware(cfg, log, prior, *pattern)
	}
	if err != nil {
		fatal(err)
	}
}

func runSimulated(cfg config.Config, log *slog.Logger, prior *export.Record, pattern bool) error {
	rotation := cfg.StartRotation()
	if prior != nil {
		if r, ok := geometry.RotationFor(prior.Orientation); ok {
			rotation = r
		}
	}
	win, err := simulator.New(cfg.Published(), rotation)
	if err != nil {
		return err
	}
	defer win.Close()

	if pattern {
		return showPattern(win, win, prior, log)
	}
	return runSession(win, win, cfg, log, prior)
}

func runHardware(cfg config.Config, log *slog.Logger, prior *export.Record, pattern bool) error {
	rotation := cfg.StartRotation()
	if prior != nil {
		if r, ok := geometry.RotationFor(prior.Orientation); ok {
			rotation = r
		}
	}
	panel, err := display.Open(display.Options{
		SPIPort:   cfg.SPIPort,
		DCPin:     cfg.DCPin,
		ResetPin:  cfg.ResetPin,
		Backlight: cfg.BacklightPin,
		Published: cfg.Published(),
		Rotation:  rotation,
	})
	if err != nil {
		return err
	}
	defer panel.Close()

	console, err := terminal.OpenConsole()
	if err != nil {
		return err
	}
	defer console.Close()

	if pattern {
		return showPattern(console, panel, prior, log)
	}
	return runSession(console, panel, cfg, log, prior)
}

// runSession bootstraps a session on the given terminal and canvas and
// drives it to completion. A prior record whose name matches the chosen
// device seeds the starting calibration instead of the full surface.
func runSession(term terminal.Terminal, cv canvas.Canvas, cfg config.Config, log *slog.Logger, prior *export.Record) error {
	var known []string
	if prior != nil {
		known = []string{prior.Name}
	}
	state, err := session.Bootstrap(term, known, cfg.Published(), cfg.StartRotation())
	if err != nil {
		if errors.Is(err, session.ErrAborted) {
			return nil
		}
		return err
	}
	if prior != nil && prior.Name == state.Name {
		if r, ok := geometry.RotationFor(prior.Orientation); ok {
			state.Rotation = r
			cv.SetRotation(r)
		}
		state.Bounds = prior.Bounds()
		term.WriteLine("Starting from the saved calibration.")
	}

	m := session.NewMachine(state, term, cv, cfg.Pins(), log)
	return m.Run(input.NewDecoder(term, nil, cfg.EscapeWindow))
}

// showPattern registers the recorded panel and renders its verification
// pattern, waiting for a keypress so the operator can inspect it.
func showPattern(term terminal.Terminal, cv canvas.Canvas, rec *export.Record, log *slog.Logger) error {
	mgrCfg, err := manager.ConfigFromRecord(*rec)
	if err != nil {
		return err
	}
	reg := manager.New(log)
	d, err := reg.Register(mgrCfg, cv)
	if err != nil {
		return err
	}
	if err := d.TestPattern(); err != nil {
		return err
	}
	term.WriteLine(d.Info())
	term.WriteLine("Press any key to exit.")
	term.ReadByte()
	return nil
}

func printUsage() {
	fmt.Println(`lcdcal - interactive LCD usable-area calibration

Usage:
  lcdcal [flags]

Flags:
  -sim             run in a terminal-window simulator (no hardware needed)
  -env FILE        load panel and wiring settings from FILE
  -record FILE     start from an existing calibration record
  -pattern         render the record's verification pattern and exit
  -help            show this help

Environment (see -env):
  LCDCAL_PANEL_WIDTH / LCDCAL_PANEL_HEIGHT   published landscape resolution
  LCDCAL_ROTATION                            starting rotation (0-3)
  LCDCAL_SPI_PORT, LCDCAL_PIN_DC, LCDCAL_PIN_RESET, LCDCAL_PIN_BACKLIGHT
  LCDCAL_ESCAPE_WINDOW                       lone-ESC decision window
  LCDCAL_LOG_LEVEL, LCDCAL_LOG_FORMAT`)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "lcdcal:", err)
	os.Exit(1)
}
