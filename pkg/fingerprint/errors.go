package fingerprint

import "errors"

var (
	// ErrUnsupported reports that the environment cannot provide a signal at all,
	// e.g. no WebGL context or no plugin enumeration.
	ErrUnsupported = errors.New("signal not supported by environment")

	// ErrUnavailable reports that a signal exists in principle but has no value
	// in this environment, e.g. deviceMemory on Firefox.
	ErrUnavailable = errors.New("signal unavailable")

	// ErrMasked reports that the environment answered but deliberately hid the
	// real value, as private browsing modes do with WebGL debug info.
	ErrMasked = errors.New("signal masked by environment")

	// ErrProbePanic wraps a panic recovered from an environment probe.
	ErrProbePanic = errors.New("signal probe panicked")

	// ErrInvalidCanvasPolicy is returned by ParseCanvasPolicy for names other
	// than off, geometric and text.
	ErrInvalidCanvasPolicy = errors.New("invalid canvas policy")

	// ErrInvalidSnapshot wraps JSON or YAML decoding failures in ParseSnapshot.
	ErrInvalidSnapshot = errors.New("invalid signal snapshot")
)
