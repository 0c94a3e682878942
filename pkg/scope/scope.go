package scope

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/itohio/gosine/pkg/config"
)

const (
	// Payloads are bytes, so the vertical axis is fixed.
	yMin = 0.0
	yMax = 255.0
)

// ScopeWidget is a custom Fyne widget that plots the most recently emitted
// payload bytes.
type ScopeWidget struct {
	widget.BaseWidget

	// Data (protected by mu)
	mu         sync.RWMutex
	display    []float64
	peakToPeak float64
	frequency  float64
	rate       float64

	maxDisplayPoints int
}

// New creates a new ScopeWidget instance.
func New(cfg *config.Config) *ScopeWidget {
	maxPoints := cfg.Preview.MaxPoints
	if maxPoints <= 0 {
		maxPoints = 200
	}

	s := &ScopeWidget{
		display:          make([]float64, 0, maxPoints),
		maxDisplayPoints: maxPoints,
	}
	s.ExtendBaseWidget(s)
	s.Refresh()
	return s
}

// UpdateData replaces the plotted samples. values is copied and may be
// reused by the caller. sampleRate is the measured
// packet rate and is used for the frequency readout.
// This should be called from the main thread using fyne.Do().
func (s *ScopeWidget) UpdateData(values []float64, sampleRate float64) {
	s.mu.Lock()

	s.display = Downsample(s.display, values, s.maxDisplayPoints)
	s.peakToPeak = PeakToPeak(values)
	s.frequency = EstimateFrequency(values, sampleRate)
	s.rate = sampleRate

	s.mu.Unlock()

	s.Refresh()
}

// Readout returns the current peak-to-peak, estimated frequency and rate.
func (s *ScopeWidget) Readout() (peakToPeak, frequency, rate float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.peakToPeak, s.frequency, s.rate
}

// CreateRenderer creates the widget renderer.
func (s *ScopeWidget) CreateRenderer() fyne.WidgetRenderer {
	grid := canvas.NewRectangle(color.RGBA{R: 20, G: 20, B: 20, A: 255}) // Dark background
	return &scopeRenderer{
		scope:   s,
		grid:    grid,
		objects: []fyne.CanvasObject{grid},
	}
}
