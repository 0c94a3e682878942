// Package wave synthesizes a discrete sine wave and quantizes each sample to
// an unsigned byte.
//
// Time is logical: it advances by a fixed step per sample, one sixteenth of
// the waveform period, independent of how fast samples are consumed.
package wave

import (
	"errors"
	"fmt"
	"math"
)

// Oversampling is the number of samples produced per waveform cycle.
const Oversampling = 16

var (
	// ErrInvalidFrequency indicates a non-positive or non-finite frequency.
	ErrInvalidFrequency = errors.New("invalid frequency")
	// ErrInvalidAmplitude indicates a negative or non-finite amplitude.
	ErrInvalidAmplitude = errors.New("invalid amplitude")
)

// PhaseMode selects how the generator tracks waveform phase.
type PhaseMode int

const (
	// PhaseAccumulator adds the step to a float64 time accumulator on every
	// sample. Rounding error grows with run time.
	PhaseAccumulator PhaseMode = iota
	// PhaseTicks derives the phase from the sample counter modulo
	// Oversampling, so every cycle repeats exactly.
	PhaseTicks
)

// ParsePhaseMode converts a configuration string to a PhaseMode.
func ParsePhaseMode(s string) (PhaseMode, error) {
	switch s {
	case "", "accumulator":
		return PhaseAccumulator, nil
	case "ticks":
		return PhaseTicks, nil
	}
	return 0, fmt.Errorf("unknown phase mode %q", s)
}

// Params are the waveform parameters. They are fixed for the lifetime of a
// Generator.
type Params struct {
	Amplitude float64 // Peak magnitude
	Frequency float64 // Cycles per second
	Phase     PhaseMode
	Quantize  QuantizeMode
}

// DefaultParams returns amplitude 100 at 1 kHz, which keeps samples in [0,200].
func DefaultParams() Params {
	return Params{
		Amplitude: 100,
		Frequency: 1000,
	}
}

// Validate checks that the parameters describe a usable waveform.
func (p Params) Validate() error {
	if !(p.Frequency > 0) || math.IsInf(p.Frequency, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidFrequency, p.Frequency)
	}
	if !(p.Amplitude >= 0) || math.IsInf(p.Amplitude, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidAmplitude, p.Amplitude)
	}
	return nil
}

// Step returns the logical time between consecutive samples in seconds.
func (p Params) Step() float64 {
	return 1 / (p.Frequency * Oversampling)
}

// Point is one generated sample.
type Point struct {
	Index uint64  // Sample number, starting at 0
	Time  float64 // Logical time the sample was taken at (s)
	Y     float64 // Sine value before shifting
	Value uint8   // Shifted and quantized sample
}

// Generator produces successive samples of a sine wave.
// It is not safe for concurrent use.
type Generator struct {
	params Params
	step   float64
	time   float64
	index  uint64
}

// New creates a generator starting at logical time zero.
func New(p Params) (*Generator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Generator{
		params: p,
		step:   p.Step(),
	}, nil
}

// Params returns the generator parameters.
func (g *Generator) Params() Params {
	return g.params
}

// Step returns the logical time increment per sample.
func (g *Generator) Step() float64 {
	return g.step
}

// Time returns the logical time of the next sample.
func (g *Generator) Time() float64 {
	if g.params.Phase == PhaseTicks {
		return float64(g.index) * g.step
	}
	return g.time
}

// Index returns the number of samples generated so far.
func (g *Generator) Index() uint64 {
	return g.index
}

// Next computes the sample at the current logical time and advances time by
// one step.
func (g *Generator) Next() Point {
	t := g.Time()

	phaseTime := g.time
	if g.params.Phase == PhaseTicks {
		phaseTime = float64(g.index%Oversampling) * g.step
	}

	y := g.params.Amplitude * math.Sin(2*math.Pi*g.params.Frequency*phaseTime)
	pt := Point{
		Index: g.index,
		Time:  t,
		Y:     y,
		Value: g.params.Quantize.Apply(y + g.params.Amplitude),
	}

	g.time += g.step
	g.index++

	return pt
}
