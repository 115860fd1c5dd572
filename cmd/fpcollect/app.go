package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dmitrymomot/devicefp/pkg/browser"
	"github.com/dmitrymomot/devicefp/pkg/config"
	"github.com/dmitrymomot/devicefp/pkg/fingerprint"
	"github.com/dmitrymomot/devicefp/pkg/logger"
)

const version = "0.1.0"

const (
	sourceSnapshot = "snapshot"
	sourceBrowser  = "browser"
)

type application struct {
	cfg Config
	log *slog.Logger
}

func newApp(stdout, stderr io.Writer) *cli.App {
	a := &application{}

	return &cli.App{
		Name:      serviceName,
		Usage:     "Collect and hash browser/device fingerprints",
		Version:   version,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "env-file",
				Usage: "Load environment variables from `FILE` before reading FP_* settings",
			},
		},
		Before: a.setup,
		Commands: []*cli.Command{
			a.collectCommand(),
			a.hashCommand(),
		},
	}
}

func (a *application) setup(c *cli.Context) error {
	opts := []config.Option{config.WithPrefix(envPrefix)}
	if files := c.StringSlice("env-file"); len(files) > 0 {
		opts = append(opts, config.WithEnvFiles(files...))
	}
	if err := config.Load(&a.cfg, opts...); err != nil {
		return err
	}

	log, err := newLogger(a.cfg, c.App.ErrWriter)
	if err != nil {
		return err
	}
	a.log = log
	return nil
}

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: json or table",
			Value:   outputJSON,
		},
		&cli.StringFlag{
			Name:  "color",
			Usage: "Colorize table output: yes, no or auto",
			Value: "auto",
		},
	}
}

func (a *application) collectCommand() *cli.Command {
	return &cli.Command{
		Name:  "collect",
		Usage: "Collect a fingerprint record and print it with its identifiers",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "source",
				Aliases: []string{"s"},
				Usage:   "Signal source: snapshot or browser",
				Value:   sourceSnapshot,
			},
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "Snapshot `FILE` (JSON or YAML), - for stdin",
			},
			&cli.StringFlag{
				Name:  "url",
				Usage: "Page the browser opens before probing",
			},
			&cli.StringFlag{
				Name:  "canvas",
				Usage: "Canvas sub-fingerprint: off, geometric or text",
			},
			&cli.BoolFlag{
				Name:  "reported-plugins",
				Usage: "Append plugins enumerated by the environment",
			},
		}, outputFlags()...),
		Action: a.collect,
	}
}

func (a *application) hashCommand() *cli.Command {
	return &cli.Command{
		Name:  "hash",
		Usage: "Hash a record stored as a JSON object",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "Record `FILE`, - for stdin",
			},
			&cli.StringFlag{
				Name:  "expect",
				Usage: "Fail unless the record hashes to `HASH`",
			},
		}, outputFlags()...),
		Action: a.hash,
	}
}

func (a *application) collect(c *cli.Context) error {
	policy := a.cfg.CanvasPolicy
	if c.IsSet("canvas") {
		policy = c.String("canvas")
	}
	canvas, err := fingerprint.ParseCanvasPolicy(policy)
	if err != nil {
		return err
	}

	reported := a.cfg.ReportedPlugins
	if c.IsSet("reported-plugins") {
		reported = c.Bool("reported-plugins")
	}

	source := c.String("source")
	env, release, err := a.environment(c, source)
	if err != nil {
		return err
	}
	defer release()

	collector := fingerprint.New(
		fingerprint.WithLogger(a.log),
		fingerprint.WithCanvasPolicy(canvas),
		fingerprint.WithReportedPlugins(reported),
	)

	start := time.Now()
	res := newResult(collector.Collect(env))

	ctx := fingerprint.SetToContext(c.Context, res.Hash)
	a.log.InfoContext(ctx, "fingerprint collected",
		logger.Source(source),
		slog.Int("signals", res.Record.Len()),
		logger.Duration(time.Since(start)),
	)

	return render(c.App.Writer, res, c.String("output"), c.String("color"))
}

// environment opens the signal source. The returned release func is never nil.
func (a *application) environment(c *cli.Context, source string) (fingerprint.Environment, func(), error) {
	switch source {
	case sourceSnapshot:
		data, err := readInput(c)
		if err != nil {
			return nil, nil, err
		}
		snap, err := fingerprint.ParseSnapshot(data)
		if err != nil {
			return nil, nil, err
		}
		return snap, func() {}, nil

	case sourceBrowser:
		url := a.cfg.BrowserURL
		if c.IsSet("url") {
			url = c.String("url")
		}
		session, err := browser.Launch(c.Context,
			browser.WithBin(a.cfg.BrowserBin),
			browser.WithHeadless(a.cfg.BrowserHeadless),
			browser.WithURL(url),
			browser.WithProbeTimeout(a.cfg.BrowserTimeout),
		)
		if err != nil {
			return nil, nil, err
		}
		return session.Environment(), func() {
			if err := session.Close(); err != nil {
				a.log.Warn("failed to close browser", logger.Error(err))
			}
		}, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownSource, source)
	}
}

func (a *application) hash(c *cli.Context) error {
	data, err := readInput(c)
	if err != nil {
		return err
	}

	var rec fingerprint.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return errors.Join(ErrInvalidRecord, err)
	}

	if expected := c.String("expect"); expected != "" && !fingerprint.Validate(&rec, expected) {
		return fmt.Errorf("%w: got %s, expected %s", ErrHashMismatch, fingerprint.Hash(&rec), expected)
	}

	return render(c.App.Writer, newResult(&rec), c.String("output"), c.String("color"))
}

func readInput(c *cli.Context) ([]byte, error) {
	switch path := c.String("input"); path {
	case "":
		return nil, ErrMissingInput
	case "-":
		return io.ReadAll(c.App.Reader)
	default:
		return os.ReadFile(path)
	}
}
