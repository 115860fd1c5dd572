package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error records err under "error". A nil error yields an empty Attr,
// which slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Errors groups the non-nil errors under "errors".
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Signal names the fingerprint signal a record is about.
func Signal(key string) slog.Attr {
	return slog.String("signal", key)
}

// Fingerprint records a device identifier under "fingerprint".
// An empty identifier yields an empty Attr.
func Fingerprint(hash string) slog.Attr {
	if hash == "" {
		return slog.Attr{}
	}
	return slog.String("fingerprint", hash)
}

// Source names the environment signals were read from (snapshot, browser, request).
func Source(name string) slog.Attr {
	return slog.String("source", name)
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}
