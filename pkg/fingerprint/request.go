package fingerprint

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/avct/uasurfer"
	"golang.org/x/text/language"
)

// Client hint headers read by RequestEnvironment.
const (
	HeaderUAPlatform         = "Sec-CH-UA-Platform"
	HeaderUAMobile           = "Sec-CH-UA-Mobile"
	HeaderDeviceMemory       = "Sec-CH-Device-Memory"
	HeaderDeviceMemoryLegacy = "Device-Memory"
)

// RequestEnvironment derives the signals an HTTP request carries: the
// User-Agent, Accept-Language and client hints. Screen, timezone, WebGL,
// canvas and feature probes need script access and are reported unsupported.
type RequestEnvironment struct {
	r  *http.Request
	ua *uasurfer.UserAgent
}

// NewRequestEnvironment wraps r. The User-Agent is parsed once, up front.
func NewRequestEnvironment(r *http.Request) *RequestEnvironment {
	return &RequestEnvironment{
		r:  r,
		ua: uasurfer.Parse(r.UserAgent()),
	}
}

var _ Environment = (*RequestEnvironment)(nil)

func (e *RequestEnvironment) UserAgent() (string, error) {
	if ua := e.r.UserAgent(); ua != "" {
		return ua, nil
	}
	return "", ErrUnavailable
}

// Language returns the highest weighted Accept-Language tag.
func (e *RequestEnvironment) Language() (string, error) {
	h := e.r.Header.Get("Accept-Language")
	if h == "" {
		return "", ErrUnavailable
	}
	tags, _, err := language.ParseAcceptLanguage(h)
	if err != nil {
		return "", err
	}
	if len(tags) == 0 {
		return "", ErrUnavailable
	}
	return tags[0].String(), nil
}

// Platform prefers the Sec-CH-UA-Platform hint and falls back to the OS
// parsed from the User-Agent.
func (e *RequestEnvironment) Platform() (string, error) {
	if h := strings.TrimSpace(e.r.Header.Get(HeaderUAPlatform)); h != "" {
		if v, err := strconv.Unquote(h); err == nil {
			h = v
		}
		if h != "" {
			return h, nil
		}
	}
	switch e.ua.OS.Name {
	case uasurfer.OSWindows, uasurfer.OSWindowsPhone:
		return "Windows", nil
	case uasurfer.OSMacOSX:
		return "macOS", nil
	case uasurfer.OSiOS:
		return "iOS", nil
	case uasurfer.OSAndroid:
		return "Android", nil
	case uasurfer.OSChromeOS:
		return "Chrome OS", nil
	case uasurfer.OSLinux:
		return "Linux", nil
	default:
		return "", ErrUnavailable
	}
}

// CookiesEnabled can only be confirmed, never denied, from a request.
func (e *RequestEnvironment) CookiesEnabled() (bool, error) {
	if len(e.r.Cookies()) > 0 {
		return true, nil
	}
	return false, ErrUnavailable
}

// Touch is inferred from the device class; phones and tablets have touch input.
func (e *RequestEnvironment) Touch() (Touch, error) {
	if mobile := e.r.Header.Get(HeaderUAMobile); mobile == "?1" {
		return Touch{Events: true}, nil
	}
	switch e.ua.DeviceType {
	case uasurfer.DevicePhone, uasurfer.DeviceTablet:
		return Touch{Events: true}, nil
	case uasurfer.DeviceUnknown:
		return Touch{}, ErrUnavailable
	default:
		return Touch{}, nil
	}
}

func (e *RequestEnvironment) DeviceMemory() (float64, error) {
	h := e.r.Header.Get(HeaderDeviceMemory)
	if h == "" {
		h = e.r.Header.Get(HeaderDeviceMemoryLegacy)
	}
	if h == "" {
		return 0, ErrUnavailable
	}
	return strconv.ParseFloat(strings.TrimSpace(h), 64)
}

func (e *RequestEnvironment) LocalStorage() (bool, error)       { return false, ErrUnsupported }
func (e *RequestEnvironment) Screen() (Screen, error)           { return Screen{}, ErrUnsupported }
func (e *RequestEnvironment) Timezone() (string, error)         { return "", ErrUnsupported }
func (e *RequestEnvironment) HardwareConcurrency() (int, error) { return 0, ErrUnsupported }
func (e *RequestEnvironment) WebGL() (GPU, error)               { return GPU{}, ErrUnsupported }
func (e *RequestEnvironment) HasFeature(Feature) (bool, error)  { return false, ErrUnsupported }
func (e *RequestEnvironment) Plugins() ([]Plugin, error)        { return nil, ErrUnsupported }

func (e *RequestEnvironment) RenderCanvas(CanvasScene) (string, error) {
	return "", ErrUnsupported
}
