package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dmitrymomot/devicefp/pkg/fingerprint"
	"github.com/dmitrymomot/devicefp/pkg/logger"
)

const (
	serviceName = "fpcollect"
	envPrefix   = "FP_"
)

// Config is read from FP_* environment variables and optional .env files.
// Command flags take precedence over it.
type Config struct {
	Env             string        `env:"ENV" envDefault:"development"`
	LogLevel        string        `env:"LOG_LEVEL"`
	LogFormat       string        `env:"LOG_FORMAT"`
	CanvasPolicy    string        `env:"CANVAS_POLICY" envDefault:"off"`
	ReportedPlugins bool          `env:"REPORTED_PLUGINS" envDefault:"false"`
	BrowserBin      string        `env:"BROWSER_BIN"`
	BrowserHeadless bool          `env:"BROWSER_HEADLESS" envDefault:"true"`
	BrowserURL      string        `env:"BROWSER_URL" envDefault:"about:blank"`
	BrowserTimeout  time.Duration `env:"BROWSER_TIMEOUT" envDefault:"5s"`
}

// newLogger builds the CLI logger. LOG_LEVEL and LOG_FORMAT override the
// defaults implied by ENV.
func newLogger(cfg Config, w io.Writer) (*slog.Logger, error) {
	opts := []logger.Option{
		logger.WithEnvironment(cfg.Env, serviceName),
		logger.WithOutput(w),
		logger.WithContextExtractors(fingerprint.LogAttr),
	}

	if cfg.LogLevel != "" {
		level, err := logger.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		opts = append(opts, logger.WithLevel(level))
	}

	switch f := logger.Format(cfg.LogFormat); f {
	case "":
	case logger.FormatJSON, logger.FormatText:
		opts = append(opts, logger.WithFormat(f))
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.LogFormat)
	}

	return logger.New(opts...), nil
}
