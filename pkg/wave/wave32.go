package wave

import "github.com/chewxy/math32"

// Generator32 is a single-precision Generator for targets without a double
// precision FPU. It always uses the time accumulator and wrap quantization.
type Generator32 struct {
	amplitude float32
	frequency float32
	step      float32
	time      float32
}

// NewGenerator32 creates a float32 generator. The caller is responsible for
// passing a positive frequency.
func NewGenerator32(amplitude, frequency float32) *Generator32 {
	return &Generator32{
		amplitude: amplitude,
		frequency: frequency,
		step:      1 / (frequency * Oversampling),
	}
}

// Time returns the logical time of the next sample.
func (g *Generator32) Time() float32 {
	return g.time
}

// Step returns the logical time increment per sample.
func (g *Generator32) Step() float32 {
	return g.step
}

// Next returns the quantized sample at the current time and advances it.
func (g *Generator32) Next() uint8 {
	y := g.amplitude * math32.Sin(2*math32.Pi*g.frequency*g.time)
	g.time += g.step
	return wrap32(y + g.amplitude)
}

func wrap32(v float32) uint8 {
	if math32.IsNaN(v) || math32.IsInf(v, 0) {
		return 0
	}
	v = math32.Mod(math32.Trunc(v), 256)
	return uint8(int32(v))
}
