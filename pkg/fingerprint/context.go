package fingerprint

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/devicefp/pkg/logger"
)

type (
	hashContextKey   struct{}
	recordContextKey struct{}
)

// SetToContext stores a fingerprint identifier in ctx.
func SetToContext(ctx context.Context, hash string) context.Context {
	return context.WithValue(ctx, hashContextKey{}, hash)
}

// FromContext returns the identifier stored by SetToContext, or "".
func FromContext(ctx context.Context) string {
	hash, _ := ctx.Value(hashContextKey{}).(string)
	return hash
}

func SetRecordToContext(ctx context.Context, r *Record) context.Context {
	return context.WithValue(ctx, recordContextKey{}, r)
}

func RecordFromContext(ctx context.Context) (*Record, bool) {
	r, ok := ctx.Value(recordContextKey{}).(*Record)
	return r, ok && r != nil
}

// LogAttr is a logger.ContextExtractor adding the identifier to log records.
func LogAttr(ctx context.Context) (slog.Attr, bool) {
	hash := FromContext(ctx)
	if hash == "" {
		return slog.Attr{}, false
	}
	return logger.Fingerprint(hash), true
}
