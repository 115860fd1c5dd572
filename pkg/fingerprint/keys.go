package fingerprint

// SchemaVersion identifies the canonical key order below. Any change to
// CanonicalKeys, CoreKeys or value formatting must bump it: identifiers
// issued under one version never match identifiers of another.
const SchemaVersion = 1

// Signal keys.
const (
	KeyUserAgent             = "userAgent"
	KeyLanguage              = "language"
	KeyPlatform              = "platform"
	KeyCookiesEnabled        = "cookiesEnabled"
	KeyLocalStorageAvailable = "localStorageAvailable"
	KeyScreenResolution      = "screenResolution"
	KeyColorDepth            = "colorDepth"
	KeyPixelDepth            = "pixelDepth"
	KeyTimezone              = "timezone"
	KeyWebGLSupported        = "webGLSupported"
	KeyTouchSupport          = "touchSupport"
	KeyDeviceMemory          = "deviceMemory"
	KeyHardwareConcurrency   = "hardwareConcurrency"
	KeyWebGLDetail           = "webGLDetail"
	KeyPluginList            = "pluginList"
	KeyCanvas                = "canvas"
)

// Sentinel values substituted for signals that could not be obtained.
const (
	SentinelUnknown            = "unknown"
	SentinelMasked             = "masked"
	SentinelWebGLNotSupported  = "webgl-not-supported"
	SentinelWebGLError         = "webgl-error"
	SentinelCanvasNotSupported = "canvas-not-supported"
)

// CanonicalKeys is the fixed serialisation order used by Hash.
var CanonicalKeys = []string{
	KeyUserAgent,
	KeyLanguage,
	KeyPlatform,
	KeyCookiesEnabled,
	KeyLocalStorageAvailable,
	KeyScreenResolution,
	KeyColorDepth,
	KeyPixelDepth,
	KeyTimezone,
	KeyWebGLSupported,
	KeyTouchSupport,
	KeyDeviceMemory,
	KeyHardwareConcurrency,
	KeyWebGLDetail,
	KeyPluginList,
	KeyCanvas,
}

// CoreKeys are the signals private browsing modes do not normally alter.
// CoreHash covers only these.
var CoreKeys = []string{
	KeyUserAgent,
	KeyPlatform,
	KeyLanguage,
	KeyHardwareConcurrency,
	KeyDeviceMemory,
	KeyTouchSupport,
	KeyScreenResolution,
	KeyColorDepth,
}

// NestedKeys fixes the field order inside nested objects: WebGLDetail fields,
// then Plugin fields. Other nested keys follow, sorted.
var NestedKeys = []string{"vendor", "renderer", "name", "filename", "description"}

var (
	canonicalIndex = keyIndex(CanonicalKeys)
	nestedIndex    = keyIndex(NestedKeys)
)

func keyIndex(keys []string) map[string]int {
	m := make(map[string]int, len(keys))
	for i, k := range keys {
		m[k] = i
	}
	return m
}
