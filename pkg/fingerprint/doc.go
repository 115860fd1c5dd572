// Package fingerprint collects browser and device signals into a canonical
// record and reduces that record to a short, deterministic identifier used
// for best-effort device recognition.
//
// A signal is one observable attribute of the client: its User-Agent,
// preferred language, screen geometry, timezone, hardware hints, WebGL
// vendor/renderer and the capabilities it exposes. Signals are read from an
// Environment, an opaque capability provider. Three implementations exist:
//
//   - Snapshot: signals already gathered by a browser agent and posted as
//     JSON or YAML (see ParseSnapshot). Also the natural test double.
//   - RequestEnvironment: what a plain *http.Request reveals (User-Agent,
//     Accept-Language and client hints).
//   - browser.Environment (package browser): a live headless Chromium page.
//
// # Architecture
//
// Collection and hashing are separate, pure steps:
//
//   - Collector.Collect reads every signal and builds a Record. Each probe is
//     isolated: an error or a panic in one probe replaces that signal with a
//     sentinel ("unknown", "masked", "webgl-not-supported", ...) and the rest
//     of the collection proceeds. Collect never fails.
//   - Hash serialises the record with keys in the fixed CanonicalKeys order
//     and folds the JSON through Sum, a 32-bit multiply-add rolling hash
//     (h = h*31 + c), returning its magnitude as lowercase hex.
//   - CoreHash hashes only CoreKeys, the signals private browsing modes do
//     not usually alter.
//
// Plugins are detected through PluginTableV1, an explicit table of
// capability probes; results are deduplicated by name. The canvas
// sub-fingerprint is off by default and can be enabled with
// WithCanvasPolicy: CanvasGeometric draws fixed shapes only, CanvasText adds
// fixed text and therefore also varies with the installed fonts.
//
// # Usage
//
//	import "github.com/dmitrymomot/devicefp/pkg/fingerprint"
//
//	snap, err := fingerprint.ParseSnapshot(body)
//	if err != nil {
//	    return err
//	}
//	rec := fingerprint.Collect(snap)
//	id := fingerprint.Hash(rec)
//
// Within an HTTP server the middleware stores the request-derived record and
// identifier in the request context:
//
//	http.Handle("/", fingerprint.Middleware(yourHandler))
//
//	id := fingerprint.FromContext(r.Context())
//
// # Compatibility
//
// The identifier depends on the key order, the value formatting and the
// plugin table. Changing any of them invalidates every identifier issued
// before; SchemaVersion tracks this.
//
// # Error Handling
//
// Collect, Hash and CoreHash have no error outcome. The identifier is not a
// security primitive: 32 bits collide, and any drift in an included signal
// yields a new value. Never use it for authentication.
package fingerprint
