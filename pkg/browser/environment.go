package browser

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-rod/rod"

	"github.com/dmitrymomot/devicefp/pkg/fingerprint"
)

// Environment reads fingerprint signals from a live page.
type Environment struct {
	page    *rod.Page
	timeout time.Duration
}

var _ fingerprint.Environment = (*Environment)(nil)

// evalRaw runs a probe script and returns its result as JSON.
func evalRaw(e *Environment, js string) ([]byte, error) {
	page := e.page
	if e.timeout > 0 {
		page = page.Timeout(e.timeout)
		defer page.CancelTimeout()
	}
	res, err := page.Eval(js)
	if err != nil {
		return nil, err
	}
	return res.Value.MarshalJSON()
}

// eval runs a probe script and decodes its result into T.
func eval[T any](e *Environment, js string) (T, error) {
	raw, err := evalRaw(e, js)
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeResult[T](raw)
}

// evalOptional is eval for probes that return null when the signal is absent.
func evalOptional[T any](e *Environment, js string) (T, error) {
	raw, err := evalRaw(e, js)
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeOptional[T](raw)
}

func decodeResult[T any](raw []byte) (T, error) {
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode probe result: %w", err)
	}
	return out, nil
}

// decodeOptional maps a JSON null to fingerprint.ErrUnavailable.
func decodeOptional[T any](raw []byte) (T, error) {
	v, err := decodeResult[*T](raw)
	if err != nil {
		var zero T
		return zero, err
	}
	if v == nil {
		var zero T
		return zero, fingerprint.ErrUnavailable
	}
	return *v, nil
}

func (e *Environment) UserAgent() (string, error) { return eval[string](e, jsUserAgent) }
func (e *Environment) Language() (string, error)  { return eval[string](e, jsLanguage) }
func (e *Environment) Platform() (string, error)  { return eval[string](e, jsPlatform) }
func (e *Environment) Timezone() (string, error)  { return eval[string](e, jsTimezone) }

func (e *Environment) CookiesEnabled() (bool, error) { return eval[bool](e, jsCookiesEnabled) }
func (e *Environment) LocalStorage() (bool, error)   { return eval[bool](e, jsLocalStorage) }

func (e *Environment) Screen() (fingerprint.Screen, error) {
	return eval[fingerprint.Screen](e, jsScreen)
}

func (e *Environment) Touch() (fingerprint.Touch, error) {
	return eval[fingerprint.Touch](e, jsTouch)
}

func (e *Environment) DeviceMemory() (float64, error) {
	return evalOptional[float64](e, jsDeviceMemory)
}

func (e *Environment) HardwareConcurrency() (int, error) {
	return evalOptional[int](e, jsConcurrency)
}

type webGLResult struct {
	Supported bool   `json:"supported"`
	Masked    bool   `json:"masked"`
	Vendor    string `json:"vendor"`
	Renderer  string `json:"renderer"`
}

func (e *Environment) WebGL() (fingerprint.GPU, error) {
	raw, err := evalRaw(e, jsWebGL)
	if err != nil {
		return fingerprint.GPU{}, err
	}
	return decodeWebGL(raw)
}

// decodeWebGL maps the WebGL probe result: no context is ErrUnsupported, a
// context without debug info is ErrMasked.
func decodeWebGL(raw []byte) (fingerprint.GPU, error) {
	res, err := decodeResult[webGLResult](raw)
	switch {
	case err != nil:
		return fingerprint.GPU{}, err
	case !res.Supported:
		return fingerprint.GPU{}, fingerprint.ErrUnsupported
	case res.Masked:
		return fingerprint.GPU{}, fingerprint.ErrMasked
	default:
		return fingerprint.GPU{Vendor: res.Vendor, Renderer: res.Renderer}, nil
	}
}

func (e *Environment) HasFeature(f fingerprint.Feature) (bool, error) {
	js, ok := featureScripts[f]
	if !ok {
		return false, fmt.Errorf("%w: feature %s", fingerprint.ErrUnsupported, f)
	}
	return eval[bool](e, js)
}

func (e *Environment) Plugins() ([]fingerprint.Plugin, error) {
	raw, err := evalRaw(e, jsPlugins)
	if err != nil {
		return nil, err
	}
	return decodePlugins(raw)
}

func decodePlugins(raw []byte) ([]fingerprint.Plugin, error) {
	plugins, err := decodeResult[[]fingerprint.Plugin](raw)
	if err != nil {
		return nil, err
	}
	if plugins == nil {
		return nil, fingerprint.ErrUnsupported
	}
	return plugins, nil
}

func (e *Environment) RenderCanvas(scene fingerprint.CanvasScene) (string, error) {
	return eval[string](e, canvasScript(scene))
}
