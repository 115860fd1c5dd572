package fingerprint_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/devicefp/pkg/fingerprint"
)

const hexPattern = "^[0-9a-f]+$"

// scenarioRecord is inserted in a different order than CanonicalKeys on purpose.
func scenarioRecord() *fingerprint.Record {
	r := fingerprint.NewRecord()
	r.Set("userAgent", "UA1")
	r.Set("platform", "P1")
	r.Set("language", "en-US")
	r.Set("hardwareConcurrency", 8)
	r.Set("deviceMemory", 8)
	r.Set("screenResolution", "1920x1080")
	r.Set("colorDepth", 24)
	r.Set("webGLSupported", true)
	r.Set("touchSupport", false)
	r.Set("timezone", "UTC")
	return r
}

func TestSum(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "0"},
		{"a", "61"},
		{"ab", "c21"},
		{"é", "e9"},
		{"😀", "1b0d63"}, // surrogate pair D83D DE00
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, fingerprint.Sum(tt.in))
		})
	}

	t.Run("never signed", func(t *testing.T) {
		for _, in := range []string{"negative?", "zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz", "￿￿￿"} {
			assert.Regexp(t, hexPattern, fingerprint.Sum(in))
		}
	})
}

func TestHash(t *testing.T) {
	t.Run("scenario record is stable", func(t *testing.T) {
		first := fingerprint.Hash(scenarioRecord())
		second := fingerprint.Hash(scenarioRecord())

		require.NotEmpty(t, first)
		assert.Equal(t, first, second)
		assert.Regexp(t, hexPattern, first)
		assert.Equal(t, "6fa3a2a9", first)
	})

	t.Run("insertion order does not matter", func(t *testing.T) {
		r := fingerprint.NewRecord()
		r.Set("timezone", "UTC")
		r.Set("touchSupport", false)
		r.Set("webGLSupported", true)
		r.Set("colorDepth", 24)
		r.Set("screenResolution", "1920x1080")
		r.Set("deviceMemory", 8)
		r.Set("hardwareConcurrency", 8)
		r.Set("language", "en-US")
		r.Set("platform", "P1")
		r.Set("userAgent", "UA1")

		assert.Equal(t, fingerprint.Hash(scenarioRecord()), fingerprint.Hash(r))
	})

	t.Run("single signal change changes hash", func(t *testing.T) {
		changed := scenarioRecord()
		changed.Set("screenResolution", "1366x768")

		assert.NotEqual(t, fingerprint.Hash(scenarioRecord()), fingerprint.Hash(changed))
		assert.Equal(t, "3115335", fingerprint.Hash(changed))
	})

	t.Run("every included signal matters", func(t *testing.T) {
		base := fingerprint.Hash(scenarioRecord())
		changes := map[string]any{
			"userAgent":           "UA2",
			"platform":            "P2",
			"language":            "en-GB",
			"hardwareConcurrency": 4,
			"deviceMemory":        4,
			"colorDepth":          30,
			"webGLSupported":      false,
			"touchSupport":        true,
			"timezone":            "Europe/Berlin",
		}
		for key, v := range changes {
			r := scenarioRecord()
			r.Set(key, v)
			assert.NotEqual(t, base, fingerprint.Hash(r), key)
		}
	})

	t.Run("nil and empty records", func(t *testing.T) {
		assert.Equal(t, fingerprint.Sum("{}"), fingerprint.Hash(nil))
		assert.Equal(t, fingerprint.Hash(nil), fingerprint.Hash(fingerprint.NewRecord()))
	})

	t.Run("unencodable values fall back to their string form", func(t *testing.T) {
		r := fingerprint.NewRecord()
		r.Set("userAgent", "UA1")
		r.Set("callback", func() {})

		h := fingerprint.Hash(r)
		assert.Regexp(t, hexPattern, h)
		assert.Equal(t, h, fingerprint.Hash(r))
	})
}

func TestCanonical(t *testing.T) {
	t.Run("canonical keys first then extras sorted", func(t *testing.T) {
		r := fingerprint.NewRecord()
		r.Set("zeta", 1)
		r.Set("timezone", "UTC")
		r.Set("alpha", "<b>")
		r.Set("userAgent", "UA1")

		data, err := fingerprint.Canonical(r)
		require.NoError(t, err)
		assert.Equal(t, `{"userAgent":"UA1","timezone":"UTC","alpha":"<b>","zeta":1}`, string(data))
	})

	t.Run("structured values", func(t *testing.T) {
		r := fingerprint.NewRecord()
		r.Set(fingerprint.KeyPluginList, []fingerprint.Plugin{{Name: "JavaScript"}, {Name: "PDF", Filename: "pdf.so", Description: "a&b"}})
		r.Set(fingerprint.KeyWebGLDetail, fingerprint.WebGLDetail{Vendor: "Intel", Renderer: "Mesa"})

		data, err := fingerprint.Canonical(r)
		require.NoError(t, err)
		assert.Equal(t,
			`{"webGLDetail":{"vendor":"Intel","renderer":"Mesa"},"pluginList":[{"name":"JavaScript"},{"name":"PDF","filename":"pdf.so","description":"a&b"}]}`,
			string(data))
	})
}

func TestCanonicalNestedKeyOrder(t *testing.T) {
	decode := func(t *testing.T, raw string) *fingerprint.Record {
		t.Helper()
		var r fingerprint.Record
		require.NoError(t, json.Unmarshal([]byte(raw), &r))
		return &r
	}

	built := fingerprint.NewRecord()
	built.Set(fingerprint.KeyUserAgent, "UA1")
	built.Set(fingerprint.KeyWebGLDetail, fingerprint.WebGLDetail{Vendor: "V", Renderer: "R"})
	built.Set(fingerprint.KeyPluginList, []fingerprint.Plugin{{Name: "PDF", Filename: "pdf.so", Description: "d"}})

	inOrder := decode(t, `{"userAgent":"UA1","webGLDetail":{"vendor":"V","renderer":"R"},"pluginList":[{"name":"PDF","filename":"pdf.so","description":"d"}]}`)
	swapped := decode(t, `{"pluginList":[{"description":"d","filename":"pdf.so","name":"PDF"}],"webGLDetail":{"renderer":"R","vendor":"V"},"userAgent":"UA1"}`)

	want, err := fingerprint.Canonical(built)
	require.NoError(t, err)
	for _, r := range []*fingerprint.Record{inOrder, swapped} {
		got, err := fingerprint.Canonical(r)
		require.NoError(t, err)
		assert.Equal(t, string(want), string(got))
		assert.Equal(t, fingerprint.Hash(built), fingerprint.Hash(r))
	}

	t.Run("unknown nested keys sorted after known ones", func(t *testing.T) {
		r := decode(t, `{"webGLDetail":{"zeta":1,"renderer":"R","alpha":2,"vendor":"V"}}`)
		data, err := fingerprint.Canonical(r)
		require.NoError(t, err)
		assert.Equal(t, `{"webGLDetail":{"vendor":"V","renderer":"R","alpha":2,"zeta":1}}`, string(data))
	})

	t.Run("plain maps follow the same order", func(t *testing.T) {
		r := fingerprint.NewRecord()
		r.Set(fingerprint.KeyWebGLDetail, map[string]any{"renderer": "R", "vendor": "V"})
		data, err := fingerprint.Canonical(r)
		require.NoError(t, err)
		assert.Equal(t, `{"webGLDetail":{"vendor":"V","renderer":"R"}}`, string(data))
	})
}

func TestHashSurvivesJSONRoundTrip(t *testing.T) {
	snap := fingerprint.NewSnapshot(fullSignals())
	rec := fingerprint.New(fingerprint.WithCanvasPolicy(fingerprint.CanvasGeometric)).Collect(snap)

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var decoded fingerprint.Record
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, rec.Keys(), decoded.Keys())
	assert.Equal(t, fingerprint.Hash(rec), fingerprint.Hash(&decoded))
	assert.Equal(t, fingerprint.CoreHash(rec), fingerprint.CoreHash(&decoded))
}

func TestCoreHash(t *testing.T) {
	t.Run("ignores non-core signals", func(t *testing.T) {
		a := scenarioRecord()
		b := scenarioRecord()
		b.Set("timezone", "Asia/Tokyo")
		b.Set("webGLSupported", false)
		b.Set(fingerprint.KeyPluginList, []fingerprint.Plugin{{Name: "X"}})

		assert.Equal(t, fingerprint.CoreHash(a), fingerprint.CoreHash(b))
		assert.NotEqual(t, fingerprint.Hash(a), fingerprint.Hash(b))
	})

	t.Run("tracks core signals", func(t *testing.T) {
		b := scenarioRecord()
		b.Set("hardwareConcurrency", 16)
		assert.NotEqual(t, fingerprint.CoreHash(scenarioRecord()), fingerprint.CoreHash(b))
	})

	t.Run("format", func(t *testing.T) {
		assert.Regexp(t, hexPattern, fingerprint.CoreHash(scenarioRecord()))
		assert.Regexp(t, hexPattern, fingerprint.CoreHash(nil))
	})
}

func TestValidate(t *testing.T) {
	stored := fingerprint.Hash(scenarioRecord())

	assert.True(t, fingerprint.Validate(scenarioRecord(), stored))

	changed := scenarioRecord()
	changed.Set("platform", "P2")
	assert.False(t, fingerprint.Validate(changed, stored))
	assert.False(t, fingerprint.Validate(scenarioRecord(), ""))
	assert.False(t, fingerprint.Validate(scenarioRecord(), "not-hex"))
}

func BenchmarkHash(b *testing.B) {
	rec := fingerprint.Collect(fingerprint.NewSnapshot(fullSignals()))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		fingerprint.Hash(rec)
	}
}
