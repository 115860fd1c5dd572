package fingerprint

import "net/http"

// Middleware collects a record from each request with the default collector
// and stores the record and its identifier in the request context.
func Middleware(next http.Handler) http.Handler {
	return defaultCollector.Middleware(next)
}

// Middleware is like the package-level Middleware but uses c.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := c.Collect(NewRequestEnvironment(r))
		ctx := SetRecordToContext(r.Context(), rec)
		ctx = SetToContext(ctx, Hash(rec))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
