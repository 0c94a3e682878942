package wave

import (
	"fmt"
	"math"
)

// QuantizeMode selects what happens to shifted values outside [0,255].
type QuantizeMode int

const (
	// QuantizeWrap truncates toward zero and keeps the low 8 bits, the way a
	// fixed-width integer conversion does. Out of range values wrap silently.
	QuantizeWrap QuantizeMode = iota
	// QuantizeSaturate truncates toward zero and clamps to [0,255].
	QuantizeSaturate
)

// ParseQuantizeMode converts a configuration string to a QuantizeMode.
func ParseQuantizeMode(s string) (QuantizeMode, error) {
	switch s {
	case "", "wrap":
		return QuantizeWrap, nil
	case "saturate":
		return QuantizeSaturate, nil
	}
	return 0, fmt.Errorf("unknown quantize mode %q", s)
}

// Apply quantizes v to a byte. NaN and infinities map to 0.
func (m QuantizeMode) Apply(v float64) uint8 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if m == QuantizeSaturate {
		return Saturate(v)
	}
	return Wrap(v)
}

// Wrap truncates v toward zero and wraps it modulo 256.
func Wrap(v float64) uint8 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	// Values beyond int64 would make the conversion implementation defined.
	v = math.Mod(math.Trunc(v), 256)
	return uint8(int64(v))
}

// Saturate truncates v toward zero and clamps it to [0,255].
func Saturate(v float64) uint8 {
	switch {
	case math.IsNaN(v):
		return 0
	case v <= 0:
		return 0
	case v >= math.MaxUint8:
		return math.MaxUint8
	}
	return uint8(v)
}
