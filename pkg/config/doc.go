// Package config loads typed configuration from environment variables.
//
// It wraps github.com/caarlos0/env/v11 for tag-driven parsing and
// github.com/joho/godotenv for optional .env files:
//
//	type Config struct {
//	    Env          string        `env:"ENV" envDefault:"development"`
//	    CanvasPolicy string        `env:"CANVAS_POLICY" envDefault:"off"`
//	    Timeout      time.Duration `env:"BROWSER_TIMEOUT" envDefault:"30s"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg, config.WithPrefix("FP_")); err != nil {
//	    log.Fatal(err)
//	}
//
// # Error Handling
//
// Errors wrap the package sentinels and can be matched with errors.Is:
//
//   - ErrParsingConfig means a value failed to parse or a required one is missing.
//   - ErrLoadingEnvFile means an explicitly requested .env file could not be read.
//   - ErrNilPointer means nil pointer passed to Load/MustLoad.
package config
