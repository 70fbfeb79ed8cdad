package plugins

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmrzaf/makebelieve/pkg/rng"
)

func seeded(seed int64) *rng.Generator {
	return Register(rng.MustNew(rng.WithSeed(seed)))
}

func TestRegister_AddsDefaults(t *testing.T) {
	g := seeded(1)
	for _, p := range Defaults() {
		assert.True(t, g.Has(p.Name), p.Name)
	}
}

func TestFakerPlugins_ReproduciblePerSeed(t *testing.T) {
	for _, name := range []string{"firstName", "lastName", "name", "email", "username", "word", "sentence"} {
		t.Run(name, func(t *testing.T) {
			a, b := seeded(123), seeded(123)
			for i := 0; i < 5; i++ {
				va, err := a.Invoke(name, nil)
				require.NoError(t, err)
				vb, err := b.Invoke(name, nil)
				require.NoError(t, err)

				s, ok := va.(string)
				require.True(t, ok)
				assert.NotEmpty(t, s)
				assert.Equal(t, va, vb)
			}
			assert.Equal(t, a.State(), b.State())
			assert.NotEqual(t, int64(123), a.State(), "faker must draw from the generator")
		})
	}
}

func TestUUID4(t *testing.T) {
	a, err := seeded(42).Invoke("uuid4", nil)
	require.NoError(t, err)
	b, err := seeded(42).Invoke("uuid4", nil)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	u, err := uuid.Parse(a.(string))
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), u.Version())
	assert.Equal(t, uuid.RFC4122, u.Variant())

	c, err := seeded(43).Invoke("uuid4", nil)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestChoice_Uniform(t *testing.T) {
	g := seeded(123)
	got, err := g.Invoke("choice", Params{"values": []string{"a", "b", "c", "d", "e"}})
	require.NoError(t, err)
	// Same draw as rng.Pick on seed 123: index 0.
	assert.Equal(t, "a", got)
}

func TestChoice_Weighted(t *testing.T) {
	g := seeded(7)
	for i := 0; i < 20; i++ {
		got, err := g.Invoke("choice", Params{
			"values":  []any{"never", "always", "zero"},
			"weights": []any{0, 2.5, 0},
		})
		require.NoError(t, err)
		assert.Equal(t, "always", got)
	}
}

func TestChoice_InvalidParams(t *testing.T) {
	g := seeded(1)
	cases := []any{
		nil,
		"not a map",
		Params{"values": 3},
		Params{"values": []any{}},
		Params{"values": []any{1, 2}, "weights": []any{1}},
		Params{"values": []any{1, 2}, "weights": []any{-1, 2}},
		Params{"values": []any{1, 2}, "weights": []any{0, 0}},
	}
	for _, opts := range cases {
		_, err := g.Invoke("choice", opts)
		assert.ErrorIs(t, err, ErrInvalidParams, "%v", opts)
	}
}

func TestIntRange(t *testing.T) {
	g := seeded(123)
	got := make([]any, 3)
	for i := range got {
		v, err := g.Invoke("intRange", Params{"min": -100, "max": 100})
		require.NoError(t, err)
		got[i] = v
	}
	assert.Equal(t, []any{int64(-100), int64(-64), int64(88)}, got)

	_, err := g.Invoke("intRange", Params{"min": 5, "max": 1})
	assert.ErrorIs(t, err, ErrInvalidParams)
	_, err = g.Invoke("intRange", Params{"min": 5})
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestFloatRange(t *testing.T) {
	g := seeded(123)
	v, err := g.Invoke("floatRange", Params{"min": 0, "max": 1})
	require.NoError(t, err)
	assert.Equal(t, 0.0009626434189093501, v)

	_, err = g.Invoke("floatRange", Params{"min": "a", "max": 1})
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestNormal(t *testing.T) {
	g := seeded(2024)
	const n = 20000
	sum, sumSq := 0.0, 0.0
	for i := 0; i < n; i++ {
		v, err := g.Invoke("normal", Params{"mean": 10.0, "std": 2.0})
		require.NoError(t, err)
		f := v.(float64)
		sum += f
		sumSq += f * f
	}
	mean := sum / n
	std := math.Sqrt(sumSq/n - mean*mean)
	assert.InDelta(t, 10.0, mean, 0.1)
	assert.InDelta(t, 2.0, std, 0.1)

	_, err := g.Invoke("normal", Params{"mean": 1})
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestNormal_RejectsNegativeStream(t *testing.T) {
	g := Register(rng.MustNew(rng.WithSeed(-5)))
	_, err := g.Invoke("normal", Params{"mean": 0, "std": 1})
	assert.ErrorIs(t, err, rng.ErrIndexOutOfRange)
}

func TestTimeSeries(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	g := seeded(1)

	v, err := g.Invoke("timeSeries", Params{"start": "-1d", "step": "1h", "index": 3, "now": now})
	require.NoError(t, err)
	assert.Equal(t, now.Add(-24*time.Hour+3*time.Hour), v)
	assert.Equal(t, int64(1), g.State(), "no jitter means no draw")

	v, err = g.Invoke("timeSeries", Params{
		"start":          "2024-01-01T00:00:00Z",
		"step":           "1d",
		"index":          int64(2),
		"jitter_seconds": 30,
	})
	require.NoError(t, err)
	ts := v.(time.Time)
	base := now.Add(48 * time.Hour)
	assert.WithinDuration(t, base, ts, 30*time.Second)

	_, err = g.Invoke("timeSeries", Params{"start": "-1d"})
	assert.ErrorIs(t, err, ErrInvalidParams)
	_, err = g.Invoke("timeSeries", Params{"start": "yesterday", "step": "1h"})
	assert.ErrorIs(t, err, ErrInvalidParams)
	_, err = g.Invoke("timeSeries", Params{"start": "-1d", "step": "1h", "now": 5})
	assert.ErrorIs(t, err, ErrInvalidParams)
}
