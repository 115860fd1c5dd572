package fingerprint

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/devicefp/pkg/logger"
)

// Collector gathers a Record from an Environment.
// A Collector is immutable after New and safe for concurrent use.
type Collector struct {
	log             *slog.Logger
	canvas          CanvasPolicy
	pluginTable     []PluginProbe
	reportedPlugins bool
}

// Option configures a Collector.
type Option func(*Collector)

// WithLogger sets the logger used to report degraded signals at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(c *Collector) {
		if l != nil {
			c.log = l
		}
	}
}

// WithCanvasPolicy enables or disables the canvas sub-fingerprint.
// Unknown policies are ignored.
func WithCanvasPolicy(p CanvasPolicy) Option {
	return func(c *Collector) {
		if parsed, err := ParseCanvasPolicy(string(p)); err == nil {
			c.canvas = parsed
		}
	}
}

// WithPluginTable replaces PluginTableV1. Changing the table changes
// every identifier that includes the plugin list.
func WithPluginTable(table []PluginProbe) Option {
	return func(c *Collector) {
		c.pluginTable = append([]PluginProbe(nil), table...)
	}
}

// WithReportedPlugins appends the plugins enumerated by the environment
// after the table entries.
func WithReportedPlugins(enabled bool) Option {
	return func(c *Collector) {
		c.reportedPlugins = enabled
	}
}

// New creates a Collector. Defaults: PluginTableV1, canvas off, no reported
// plugins, logging discarded.
func New(opts ...Option) *Collector {
	c := &Collector{
		log:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		canvas:      CanvasOff,
		pluginTable: PluginTableV1,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With(logger.Component("fingerprint"))
	return c
}

var defaultCollector = New()

// Collect gathers a Record using the default collector.
func Collect(env Environment) *Record {
	return defaultCollector.Collect(env)
}

// CanvasPolicy returns the configured canvas policy.
func (c *Collector) CanvasPolicy() CanvasPolicy {
	return c.canvas
}

// Collect reads every signal from env and returns a complete record.
// It never fails: each probe is isolated and a failed probe yields the
// signal's sentinel value.
func (c *Collector) Collect(env Environment) *Record {
	r := NewRecord()

	r.Set(KeyUserAgent, c.text(KeyUserAgent, func() (string, error) { return env.UserAgent() }))
	r.Set(KeyLanguage, canonicalLanguage(c.text(KeyLanguage, func() (string, error) { return env.Language() })))
	r.Set(KeyPlatform, c.text(KeyPlatform, func() (string, error) { return env.Platform() }))
	r.Set(KeyCookiesEnabled, c.flag(KeyCookiesEnabled, func() (bool, error) { return env.CookiesEnabled() }))
	r.Set(KeyLocalStorageAvailable, c.flag(KeyLocalStorageAvailable, func() (bool, error) { return env.LocalStorage() }))

	c.setScreen(r, env)

	r.Set(KeyTimezone, c.text(KeyTimezone, func() (string, error) { return env.Timezone() }))
	r.Set(KeyWebGLSupported, c.flag(KeyWebGLSupported, func() (bool, error) { return env.HasFeature(FeatureWebGL) }))

	touch, err := probe(func() (Touch, error) { return env.Touch() })
	c.degraded(KeyTouchSupport, err)
	r.Set(KeyTouchSupport, err == nil && touch.Supported())

	mem, err := probe(func() (float64, error) { return env.DeviceMemory() })
	c.degraded(KeyDeviceMemory, err)
	if err == nil && mem > 0 && !math.IsInf(mem, 0) && !math.IsNaN(mem) {
		r.Set(KeyDeviceMemory, mem)
	} else {
		r.Set(KeyDeviceMemory, SentinelUnknown)
	}

	cores, err := probe(func() (int, error) { return env.HardwareConcurrency() })
	c.degraded(KeyHardwareConcurrency, err)
	if err == nil && cores > 0 {
		r.Set(KeyHardwareConcurrency, cores)
	} else {
		r.Set(KeyHardwareConcurrency, SentinelUnknown)
	}

	r.Set(KeyWebGLDetail, c.webGLDetail(env))
	r.Set(KeyPluginList, c.plugins(env))

	if scene, ok := c.canvas.Scene(); ok {
		r.Set(KeyCanvas, c.canvasHash(env, scene))
	}

	return r
}

func (c *Collector) setScreen(r *Record, env Environment) {
	s, err := probe(func() (Screen, error) { return env.Screen() })
	c.degraded(KeyScreenResolution, err)
	if err != nil {
		r.Set(KeyScreenResolution, SentinelUnknown)
		r.Set(KeyColorDepth, SentinelUnknown)
		r.Set(KeyPixelDepth, SentinelUnknown)
		return
	}

	if s.Width > 0 && s.Height > 0 {
		r.Set(KeyScreenResolution, strconv.Itoa(s.Width)+"x"+strconv.Itoa(s.Height))
	} else {
		r.Set(KeyScreenResolution, SentinelUnknown)
	}
	r.Set(KeyColorDepth, positiveOrUnknown(s.ColorDepth))
	r.Set(KeyPixelDepth, positiveOrUnknown(s.PixelDepth))
}

func (c *Collector) webGLDetail(env Environment) any {
	gpu, err := probe(func() (GPU, error) { return env.WebGL() })
	switch {
	case err == nil:
		return WebGLDetail{
			Vendor:   nonEmpty(gpu.Vendor),
			Renderer: nonEmpty(gpu.Renderer),
		}
	case errors.Is(err, ErrMasked):
		// A masked context is a valid outcome, not a failure.
		return WebGLDetail{Vendor: SentinelMasked, Renderer: SentinelMasked}
	case errors.Is(err, ErrUnsupported):
		c.degraded(KeyWebGLDetail, err)
		return SentinelWebGLNotSupported
	default:
		c.degraded(KeyWebGLDetail, err)
		return SentinelWebGLError
	}
}

func (c *Collector) plugins(env Environment) []Plugin {
	list := make([]Plugin, 0, len(c.pluginTable))
	for _, p := range c.pluginTable {
		if p.Feature == "" {
			list = append(list, p.Plugin)
			continue
		}
		present, err := probe(func() (bool, error) { return env.HasFeature(p.Feature) })
		if err != nil {
			c.degraded(KeyPluginList, fmt.Errorf("feature %s: %w", p.Feature, err))
			continue
		}
		if present {
			list = append(list, p.Plugin)
		}
	}

	if c.reportedPlugins {
		reported, err := probe(func() ([]Plugin, error) { return env.Plugins() })
		c.degraded(KeyPluginList, err)
		for _, p := range reported {
			if p.Name = strings.TrimSpace(p.Name); p.Name != "" {
				list = append(list, p)
			}
		}
	}

	return dedupePlugins(list)
}

func (c *Collector) canvasHash(env Environment, scene CanvasScene) string {
	data, err := probe(func() (string, error) { return env.RenderCanvas(scene) })
	if err != nil || data == "" {
		c.degraded(KeyCanvas, err)
		return SentinelCanvasNotSupported
	}
	return Sum(data)
}

func (c *Collector) text(key string, fn func() (string, error)) string {
	v, err := probe(fn)
	c.degraded(key, err)
	if err != nil {
		return SentinelUnknown
	}
	return nonEmpty(v)
}

func (c *Collector) flag(key string, fn func() (bool, error)) bool {
	v, err := probe(fn)
	c.degraded(key, err)
	return err == nil && v
}

func (c *Collector) degraded(key string, err error) {
	if err == nil {
		return
	}
	c.log.Debug("signal degraded to sentinel", logger.Signal(key), logger.Error(err))
}

// probe calls fn and turns a panic into ErrProbePanic.
func probe[T any](fn func() (T, error)) (v T, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			var zero T
			v, err = zero, fmt.Errorf("%w: %v", ErrProbePanic, rec)
		}
	}()
	return fn()
}

// dedupePlugins keeps the first entry for each name.
func dedupePlugins(in []Plugin) []Plugin {
	seen := make(map[string]struct{}, len(in))
	out := make([]Plugin, 0, len(in))
	for _, p := range in {
		if _, ok := seen[p.Name]; ok {
			continue
		}
		seen[p.Name] = struct{}{}
		out = append(out, p)
	}
	return out
}

func canonicalLanguage(s string) string {
	if s == SentinelUnknown {
		return s
	}
	tag, err := language.Parse(s)
	if err != nil {
		return s
	}
	return tag.String()
}

func nonEmpty(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return SentinelUnknown
	}
	return s
}

func positiveOrUnknown(n int) any {
	if n > 0 {
		return n
	}
	return SentinelUnknown
}
