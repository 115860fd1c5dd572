package fingerprint

import (
	"fmt"
	"strings"
)

// PluginProbe adds Plugin to the plugin list when the environment reports
// Feature. A probe with an empty Feature always matches.
type PluginProbe struct {
	Plugin  Plugin
	Feature Feature
}

// PluginTableV1 lists capabilities that stay constant across normal and
// private browsing. Legacy media plugins are deliberately absent.
var PluginTableV1 = []PluginProbe{
	{Plugin: Plugin{Name: "JavaScript", Filename: "javascript", Description: "JavaScript Runtime"}},
	{Plugin: Plugin{Name: "Canvas", Filename: "canvas", Description: "HTML5 Canvas Support"}, Feature: FeatureCanvas},
	{Plugin: Plugin{Name: "WebGL", Filename: "webgl", Description: "Web Graphics Library"}, Feature: FeatureWebGL},
	{Plugin: Plugin{Name: "WebRTC", Filename: "webrtc", Description: "Web Real-Time Communication"}, Feature: FeatureWebRTC},
	{Plugin: Plugin{Name: "HTML5 Media", Filename: "html5-media", Description: "HTML5 Audio/Video Support"}, Feature: FeatureMedia},
	{Plugin: Plugin{Name: "Geolocation", Filename: "geolocation", Description: "Geographic Location API"}, Feature: FeatureGeolocation},
}

// CanvasPolicy selects whether and how the canvas sub-fingerprint is drawn.
type CanvasPolicy string

const (
	// CanvasOff leaves the canvas signal out of the record.
	CanvasOff CanvasPolicy = "off"
	// CanvasGeometric draws fixed shapes and colours only.
	CanvasGeometric CanvasPolicy = "geometric"
	// CanvasText adds fixed text on top of the geometric scene. Output then
	// depends on the installed font stack and changes more often.
	CanvasText CanvasPolicy = "text"
)

// ParseCanvasPolicy converts a config string into a CanvasPolicy.
// The empty string maps to CanvasOff.
func ParseCanvasPolicy(s string) (CanvasPolicy, error) {
	switch p := CanvasPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "", CanvasOff:
		return CanvasOff, nil
	case CanvasGeometric, CanvasText:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidCanvasPolicy, s)
	}
}

// Scene returns the canvas scene drawn under the policy.
// It returns false for CanvasOff.
func (p CanvasPolicy) Scene() (CanvasScene, bool) {
	switch p {
	case CanvasGeometric:
		return GeometryScene, true
	case CanvasText:
		return TextScene, true
	default:
		return CanvasScene{}, false
	}
}

// DrawKind is a 2D drawing primitive.
type DrawKind string

const (
	DrawRect DrawKind = "rect"
	DrawArc  DrawKind = "arc"
	DrawText DrawKind = "text"
)

// DrawOp is one fill operation on a 2D canvas. For DrawArc, X/Y is the centre
// and W the radius; for DrawText, X/Y is the baseline origin.
type DrawOp struct {
	Kind DrawKind
	Fill string
	X, Y float64
	W, H float64
	Text string
	Font string
}

// CanvasScene is a named, fixed drawing the environment renders and returns
// as serialised pixel data (a data URL in browsers).
type CanvasScene struct {
	Name   string
	Width  int
	Height int
	Ops    []DrawOp
}

// HasText reports whether the scene renders glyphs.
func (s CanvasScene) HasText() bool {
	for _, op := range s.Ops {
		if op.Kind == DrawText {
			return true
		}
	}
	return false
}

var geometryOps = []DrawOp{
	{Kind: DrawRect, Fill: "#ffffff", X: 0, Y: 0, W: 100, H: 50},
	{Kind: DrawRect, Fill: "rgba(102, 204, 0, 0.7)", X: 10, Y: 5, W: 50, H: 20},
	{Kind: DrawRect, Fill: "#f60", X: 40, Y: 20, W: 40, H: 25},
	{Kind: DrawArc, Fill: "rgba(0, 51, 153, 0.6)", X: 75, Y: 25, W: 18},
}

// GeometryScene contains no text, so it varies only with the rasteriser.
var GeometryScene = CanvasScene{
	Name:   "geometry-v1",
	Width:  100,
	Height: 50,
	Ops:    geometryOps,
}

// TextScene is GeometryScene plus two fixed labels.
var TextScene = CanvasScene{
	Name:   "text-v1",
	Width:  100,
	Height: 50,
	Ops: append(append([]DrawOp{}, geometryOps...),
		DrawOp{Kind: DrawText, Fill: "#000000", X: 10, Y: 20, Text: "Device", Font: "12px Arial"},
		DrawOp{Kind: DrawText, Fill: "#000000", X: 10, Y: 35, Text: "Fingerprint", Font: "12px Arial"},
	),
}
