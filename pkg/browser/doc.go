// Package browser provides a fingerprint.Environment backed by a real
// Chromium instance driven over the DevTools protocol with go-rod.
//
// Launch starts the browser (an explicit binary with WithBin, otherwise the
// one go-rod finds or downloads), opens a page and waits for it to load.
// Every probe of the returned Environment evaluates a small script in that
// page under its own timeout; probe errors surface to the collector, which
// degrades the affected signal to its sentinel.
//
//	sess, err := browser.Launch(ctx, browser.WithBin(cfg.BrowserBin))
//	if err != nil {
//	    return err
//	}
//	defer sess.Close()
//
//	rec := fingerprint.New(fingerprint.WithCanvasPolicy(fingerprint.CanvasGeometric)).
//	    Collect(sess.Environment())
//
// The WebGL probe reports a context without WEBGL_debug_renderer_info as
// masked rather than failed. Canvas scenes are rendered on a throwaway
// element that is never attached to the document.
package browser
