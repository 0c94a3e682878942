package wave

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	g, err := New(DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, float64(0), g.Time())
	assert.Equal(t, uint64(0), g.Index())
	assert.InDelta(t, 1.0/16000, g.Step(), 1e-15)
}

func TestNew_InvalidParams(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr error
	}{
		{"zero frequency", Params{Amplitude: 100, Frequency: 0}, ErrInvalidFrequency},
		{"negative frequency", Params{Amplitude: 100, Frequency: -1}, ErrInvalidFrequency},
		{"NaN frequency", Params{Amplitude: 100, Frequency: math.NaN()}, ErrInvalidFrequency},
		{"infinite frequency", Params{Amplitude: 100, Frequency: math.Inf(1)}, ErrInvalidFrequency},
		{"negative amplitude", Params{Amplitude: -1, Frequency: 1000}, ErrInvalidAmplitude},
		{"NaN amplitude", Params{Amplitude: math.NaN(), Frequency: 1000}, ErrInvalidAmplitude},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.params)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, g)
		})
	}
}

func TestNext_FirstSample(t *testing.T) {
	g, err := New(DefaultParams())
	require.NoError(t, err)

	pt := g.Next()
	assert.Equal(t, uint64(0), pt.Index)
	assert.Equal(t, float64(0), pt.Time)
	assert.Equal(t, float64(0), pt.Y)
	assert.Equal(t, uint8(100), pt.Value)
}

func TestNext_Range(t *testing.T) {
	g, err := New(DefaultParams())
	require.NoError(t, err)

	var lo, hi uint8 = 255, 0
	for range 16 * 1000 {
		v := g.Next().Value
		lo = min(lo, v)
		hi = max(hi, v)
	}
	assert.LessOrEqual(t, hi, uint8(200))
	assert.GreaterOrEqual(t, lo, uint8(0))
	// A full cycle visits both ends of the range
	assert.Equal(t, uint8(200), hi)
	assert.LessOrEqual(t, lo, uint8(1))
}

func TestNext_PhaseAdvance(t *testing.T) {
	g, err := New(DefaultParams())
	require.NoError(t, err)

	prev := g.Time()
	for range 16 {
		g.Next()
		assert.InDelta(t, 1.0/16000, g.Time()-prev, 1e-12)
		prev = g.Time()
	}
	assert.InDelta(t, 0.001, g.Time(), 1e-12)
	assert.Equal(t, uint64(16), g.Index())
}

func TestNext_OneCycle(t *testing.T) {
	g, err := New(DefaultParams())
	require.NoError(t, err)

	want := []uint8{100, 138, 170, 192, 200, 192, 170, 138, 100, 61, 29, 7, 0, 7, 29, 61}
	got := make([]uint8, 0, len(want))
	for range want {
		got = append(got, g.Next().Value)
	}

	// Accumulated rounding may move a value across an integer boundary
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1, "sample %d", i)
	}
}

func TestNext_Periodicity(t *testing.T) {
	for _, mode := range []PhaseMode{PhaseAccumulator, PhaseTicks} {
		p := DefaultParams()
		p.Phase = mode
		g, err := New(p)
		require.NoError(t, err)

		first := make([]float64, Oversampling)
		for i := range first {
			first[i] = g.Next().Y
		}
		for i := range Oversampling {
			assert.InDelta(t, first[i], g.Next().Y, 1e-9, "mode %d sample %d", mode, i)
		}
	}
}

func TestNext_TicksExactAfterLongRun(t *testing.T) {
	p := DefaultParams()
	p.Phase = PhaseTicks
	g, err := New(p)
	require.NoError(t, err)

	first := make([]Point, Oversampling)
	for i := range first {
		first[i] = g.Next()
	}
	for range 100000 * Oversampling {
		g.Next()
	}
	for i := range Oversampling {
		pt := g.Next()
		assert.Equal(t, first[i].Y, pt.Y)
		assert.Equal(t, first[i].Value, pt.Value)
	}
	assert.InDelta(t, float64(100002*Oversampling)/16000, g.Time(), 1e-9)
}

func TestNext_Overflow(t *testing.T) {
	tests := []struct {
		name string
		mode QuantizeMode
		want uint8
	}{
		// amplitude 200: peak shifted value is 400
		{"wrap", QuantizeWrap, 400 % 256},
		{"saturate", QuantizeSaturate, 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(Params{Amplitude: 200, Frequency: 1000, Quantize: tt.mode})
			require.NoError(t, err)
			var peak Point
			for range 5 {
				peak = g.Next()
			}
			// Sample 4 sits on the crest
			assert.InDelta(t, 200, peak.Y, 1e-9)
			assert.Equal(t, tt.want, peak.Value)
		})
	}
}

func TestParseModes(t *testing.T) {
	pm, err := ParsePhaseMode("ticks")
	require.NoError(t, err)
	assert.Equal(t, PhaseTicks, pm)

	pm, err = ParsePhaseMode("")
	require.NoError(t, err)
	assert.Equal(t, PhaseAccumulator, pm)

	_, err = ParsePhaseMode("wallclock")
	assert.Error(t, err)

	qm, err := ParseQuantizeMode("saturate")
	require.NoError(t, err)
	assert.Equal(t, QuantizeSaturate, qm)

	_, err = ParseQuantizeMode("round")
	assert.Error(t, err)
}

func TestGenerator32(t *testing.T) {
	g := NewGenerator32(100, 1000)
	assert.Equal(t, float32(0), g.Time())
	assert.Equal(t, uint8(100), g.Next())

	ref, err := New(DefaultParams())
	require.NoError(t, err)
	ref.Next()

	for i := 1; i < 64; i++ {
		got := g.Next()
		want := ref.Next().Value
		assert.InDelta(t, want, got, 1, "sample %d", i)
		assert.LessOrEqual(t, got, uint8(200))
	}
	assert.InDelta(t, 64.0/16000, g.Time(), 1e-6)
}
