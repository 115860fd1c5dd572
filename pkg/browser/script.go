package browser

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrymomot/devicefp/pkg/fingerprint"
)

// Probe scripts. Each is a function expression evaluated in the page.
const (
	jsUserAgent      = `() => navigator.userAgent`
	jsLanguage       = `() => navigator.language`
	jsPlatform       = `() => navigator.platform`
	jsCookiesEnabled = `() => navigator.cookieEnabled === true`
	jsLocalStorage   = `() => { try { return typeof window.localStorage !== 'undefined' && window.localStorage !== null } catch (e) { return false } }`
	jsTimezone       = `() => Intl.DateTimeFormat().resolvedOptions().timeZone`
	jsDeviceMemory   = `() => typeof navigator.deviceMemory === 'number' ? navigator.deviceMemory : null`
	jsConcurrency    = `() => typeof navigator.hardwareConcurrency === 'number' ? navigator.hardwareConcurrency : null`

	jsScreen = `() => ({
		width: screen.width,
		height: screen.height,
		colorDepth: screen.colorDepth,
		pixelDepth: screen.pixelDepth
	})`

	jsTouch = `() => ({
		events: 'ontouchstart' in window,
		maxTouchPoints: navigator.maxTouchPoints || 0
	})`

	// The WebGL probe distinguishes "no context" from "context without
	// debug info", which private modes use to mask the GPU.
	jsWebGL = `() => {
		const canvas = document.createElement('canvas');
		const gl = canvas.getContext('webgl') || canvas.getContext('experimental-webgl');
		if (!gl) return { supported: false };
		const info = gl.getExtension('WEBGL_debug_renderer_info');
		if (!info) return { supported: true, masked: true };
		return {
			supported: true,
			vendor: String(gl.getParameter(info.UNMASKED_VENDOR_WEBGL) || ''),
			renderer: String(gl.getParameter(info.UNMASKED_RENDERER_WEBGL) || '')
		};
	}`

	jsPlugins = `() => {
		if (!navigator.plugins) return null;
		return Array.from(navigator.plugins).map(p => ({
			name: p.name,
			filename: p.filename,
			description: p.description
		}));
	}`
)

var featureScripts = map[fingerprint.Feature]string{
	fingerprint.FeatureCanvas:      `() => !!document.createElement('canvas').getContext`,
	fingerprint.FeatureWebGL:       `() => !!window.WebGLRenderingContext`,
	fingerprint.FeatureWebRTC:      `() => !!(window.RTCPeerConnection || window.webkitRTCPeerConnection)`,
	fingerprint.FeatureMedia:       `() => !!document.createElement('video').canPlayType`,
	fingerprint.FeatureGeolocation: `() => !!navigator.geolocation`,
}

// canvasScript renders scene on a throwaway canvas and returns its data URL.
func canvasScript(scene fingerprint.CanvasScene) string {
	var b strings.Builder
	b.WriteString("() => {\n")
	b.WriteString("\tconst canvas = document.createElement('canvas');\n")
	fmt.Fprintf(&b, "\tcanvas.width = %d;\n\tcanvas.height = %d;\n", scene.Width, scene.Height)
	b.WriteString("\tconst ctx = canvas.getContext('2d');\n")
	b.WriteString("\tif (!ctx) throw new Error('2d context unavailable');\n")
	for _, op := range scene.Ops {
		fmt.Fprintf(&b, "\tctx.fillStyle = %s;\n", jsString(op.Fill))
		switch op.Kind {
		case fingerprint.DrawRect:
			fmt.Fprintf(&b, "\tctx.fillRect(%s, %s, %s, %s);\n", num(op.X), num(op.Y), num(op.W), num(op.H))
		case fingerprint.DrawArc:
			b.WriteString("\tctx.beginPath();\n")
			fmt.Fprintf(&b, "\tctx.arc(%s, %s, %s, 0, Math.PI * 2, true);\n", num(op.X), num(op.Y), num(op.W))
			b.WriteString("\tctx.closePath();\n\tctx.fill();\n")
		case fingerprint.DrawText:
			b.WriteString("\tctx.textBaseline = 'alphabetic';\n")
			fmt.Fprintf(&b, "\tctx.font = %s;\n", jsString(op.Font))
			fmt.Fprintf(&b, "\tctx.fillText(%s, %s, %s);\n", jsString(op.Text), num(op.X), num(op.Y))
		}
	}
	b.WriteString("\treturn canvas.toDataURL();\n}")
	return b.String()
}

func jsString(s string) string {
	data, _ := json.Marshal(s)
	return string(data)
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
