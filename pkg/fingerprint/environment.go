package fingerprint

// Environment is the signal-probe surface a Collector reads from.
//
// Implementations report a missing signal with ErrUnsupported, ErrUnavailable
// or ErrMasked. Any other error, and any panic, is treated the same way by the
// collector: the signal takes its sentinel value and collection continues.
type Environment interface {
	UserAgent() (string, error)
	Language() (string, error)
	Platform() (string, error)
	CookiesEnabled() (bool, error)
	LocalStorage() (bool, error)
	Screen() (Screen, error)
	Timezone() (string, error)
	Touch() (Touch, error)
	DeviceMemory() (float64, error)
	HardwareConcurrency() (int, error)
	WebGL() (GPU, error)
	HasFeature(f Feature) (bool, error)
	Plugins() ([]Plugin, error)
	RenderCanvas(scene CanvasScene) (string, error)
}

// Screen is the display geometry reported by the environment.
type Screen struct {
	Width      int `json:"width" yaml:"width"`
	Height     int `json:"height" yaml:"height"`
	ColorDepth int `json:"colorDepth" yaml:"colorDepth"`
	PixelDepth int `json:"pixelDepth" yaml:"pixelDepth"`
}

// Touch describes touch capabilities.
type Touch struct {
	Events         bool `json:"events" yaml:"events"`
	MaxTouchPoints int  `json:"maxTouchPoints" yaml:"maxTouchPoints"`
}

// Supported reports whether any touch input is available.
func (t Touch) Supported() bool {
	return t.Events || t.MaxTouchPoints > 0
}

// GPU holds the unmasked WebGL vendor and renderer strings.
type GPU struct {
	Vendor   string `json:"vendor" yaml:"vendor"`
	Renderer string `json:"renderer" yaml:"renderer"`
}

// WebGLDetail is the record value stored under KeyWebGLDetail.
// Field order is part of the canonical form.
type WebGLDetail struct {
	Vendor   string `json:"vendor"`
	Renderer string `json:"renderer"`
}

// Plugin is one entry of the plugin list. Entries are unique by Name.
type Plugin struct {
	Name        string `json:"name" yaml:"name"`
	Filename    string `json:"filename,omitempty" yaml:"filename,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Feature names a capability the environment can be asked about.
type Feature string

const (
	FeatureCanvas      Feature = "canvas"
	FeatureWebGL       Feature = "webgl"
	FeatureWebRTC      Feature = "webrtc"
	FeatureMedia       Feature = "media"
	FeatureGeolocation Feature = "geolocation"
)
