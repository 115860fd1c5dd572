// Package logger builds *slog.Logger values with functional options and
// keeps attribute names consistent across the module.
//
// New picks slog's text or JSON handler, applies static attributes and wraps
// the handler in LogHandlerDecorator, which runs registered ContextExtractor
// callbacks on every record. fingerprint.LogAttr is such an extractor: a
// context carrying a device identifier gets a "fingerprint" attribute.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "fpcollect"),
//	    logger.WithContextExtractors(fingerprint.LogAttr),
//	)
//	logger.SetAsDefault(log)
//
//	log.DebugContext(ctx, "signal degraded to sentinel",
//	    logger.Signal("webGLDetail"),
//	    logger.Error(err),
//	)
//
// Error, Errors and Fingerprint return an empty slog.Attr for nil or empty
// input, so they can be passed unconditionally.
package logger
