package fingerprint

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Signals is the raw signal set gathered by a browser agent. A nil field means
// the agent could not read that signal.
type Signals struct {
	UserAgent           *string           `json:"userAgent,omitempty" yaml:"userAgent,omitempty"`
	Language            *string           `json:"language,omitempty" yaml:"language,omitempty"`
	Platform            *string           `json:"platform,omitempty" yaml:"platform,omitempty"`
	CookiesEnabled      *bool             `json:"cookiesEnabled,omitempty" yaml:"cookiesEnabled,omitempty"`
	LocalStorage        *bool             `json:"localStorageAvailable,omitempty" yaml:"localStorageAvailable,omitempty"`
	Screen              *Screen           `json:"screen,omitempty" yaml:"screen,omitempty"`
	Timezone            *string           `json:"timezone,omitempty" yaml:"timezone,omitempty"`
	Touch               *Touch            `json:"touch,omitempty" yaml:"touch,omitempty"`
	DeviceMemory        *float64          `json:"deviceMemory,omitempty" yaml:"deviceMemory,omitempty"`
	HardwareConcurrency *int              `json:"hardwareConcurrency,omitempty" yaml:"hardwareConcurrency,omitempty"`
	WebGL               *SnapshotWebGL    `json:"webgl,omitempty" yaml:"webgl,omitempty"`
	Features            map[Feature]bool  `json:"features,omitempty" yaml:"features,omitempty"`
	Plugins             []Plugin          `json:"plugins,omitempty" yaml:"plugins,omitempty"`
	Canvas              map[string]string `json:"canvas,omitempty" yaml:"canvas,omitempty"`
}

// SnapshotWebGL is the WebGL probe outcome as seen by the agent.
type SnapshotWebGL struct {
	Supported bool   `json:"supported" yaml:"supported"`
	Masked    bool   `json:"masked,omitempty" yaml:"masked,omitempty"`
	Vendor    string `json:"vendor,omitempty" yaml:"vendor,omitempty"`
	Renderer  string `json:"renderer,omitempty" yaml:"renderer,omitempty"`
}

// Snapshot is an Environment backed by signals already gathered elsewhere,
// typically posted by a browser agent.
type Snapshot struct {
	sig Signals
}

// NewSnapshot wraps a signal set as an Environment.
func NewSnapshot(s Signals) *Snapshot {
	return &Snapshot{sig: s}
}

// ParseSnapshot decodes a signal set from JSON or YAML. Input starting with
// '{' is read as JSON, so escaped surrogate pairs decode as browsers emit them.
func ParseSnapshot(data []byte) (*Snapshot, error) {
	var (
		s   Signals
		err error
	)
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		err = json.Unmarshal(data, &s)
	} else {
		err = yaml.Unmarshal(data, &s)
	}
	if err != nil {
		return nil, errors.Join(ErrInvalidSnapshot, err)
	}
	return NewSnapshot(s), nil
}

// Signals returns the wrapped signal set.
func (s *Snapshot) Signals() Signals {
	return s.sig
}

var _ Environment = (*Snapshot)(nil)

func (s *Snapshot) UserAgent() (string, error) { return deref(s.sig.UserAgent) }
func (s *Snapshot) Language() (string, error)  { return deref(s.sig.Language) }
func (s *Snapshot) Platform() (string, error)  { return deref(s.sig.Platform) }
func (s *Snapshot) Timezone() (string, error)  { return deref(s.sig.Timezone) }

func (s *Snapshot) CookiesEnabled() (bool, error) { return deref(s.sig.CookiesEnabled) }
func (s *Snapshot) LocalStorage() (bool, error)   { return deref(s.sig.LocalStorage) }
func (s *Snapshot) Screen() (Screen, error)       { return deref(s.sig.Screen) }
func (s *Snapshot) Touch() (Touch, error)         { return deref(s.sig.Touch) }

func (s *Snapshot) DeviceMemory() (float64, error)    { return deref(s.sig.DeviceMemory) }
func (s *Snapshot) HardwareConcurrency() (int, error) { return deref(s.sig.HardwareConcurrency) }

func (s *Snapshot) WebGL() (GPU, error) {
	switch {
	case s.sig.WebGL == nil || !s.sig.WebGL.Supported:
		return GPU{}, ErrUnsupported
	case s.sig.WebGL.Masked:
		return GPU{}, ErrMasked
	default:
		return GPU{Vendor: s.sig.WebGL.Vendor, Renderer: s.sig.WebGL.Renderer}, nil
	}
}

// HasFeature reports false for features absent from a non-nil map.
func (s *Snapshot) HasFeature(f Feature) (bool, error) {
	if s.sig.Features == nil {
		return false, ErrUnsupported
	}
	return s.sig.Features[f], nil
}

func (s *Snapshot) Plugins() ([]Plugin, error) {
	if s.sig.Plugins == nil {
		return nil, ErrUnsupported
	}
	return s.sig.Plugins, nil
}

// RenderCanvas returns the data the agent rendered for the scene name.
func (s *Snapshot) RenderCanvas(scene CanvasScene) (string, error) {
	data, ok := s.sig.Canvas[scene.Name]
	if !ok {
		return "", fmt.Errorf("%w: scene %s", ErrUnsupported, scene.Name)
	}
	return data, nil
}

func deref[T any](p *T) (T, error) {
	if p == nil {
		var zero T
		return zero, ErrUnavailable
	}
	return *p, nil
}
