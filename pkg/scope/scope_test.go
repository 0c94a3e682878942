package scope

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/itohio/gosine/pkg/config"
	"github.com/itohio/gosine/pkg/wave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeWidget_UpdateData(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	cfg := config.Default()
	cfg.Preview.MaxPoints = 8
	s := New(cfg)
	s.Resize(fyne.NewSize(400, 300))

	values := make([]float64, 48)
	for i := range values {
		if i%16 < 8 {
			values[i] = 200
		}
	}
	s.UpdateData(values, 16000)

	p2p, freq, rate := s.Readout()
	assert.Equal(t, float64(200), p2p)
	assert.InDelta(t, 1000, freq, 1e-6)
	assert.Equal(t, float64(16000), rate)

	s.mu.RLock()
	assert.Len(t, s.display, 8)
	s.mu.RUnlock()

	// Caller may reuse its buffer
	values[0] = 42
	s.mu.RLock()
	assert.Equal(t, float64(200), s.display[0])
	s.mu.RUnlock()

	r := test.WidgetRenderer(s)
	assert.NotEmpty(t, r.Objects())
}

func TestScopeWidget_DecimatesHistory(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	cfg := config.Default()
	s := New(cfg)

	// Tick phase keeps every period identical, so the crossings are exact
	params := wave.DefaultParams()
	params.Phase = wave.PhaseTicks
	gen, err := wave.New(params)
	require.NoError(t, err)

	history := NewHistory(cfg.Preview.HistoryPoints)
	for range 2 * cfg.Preview.HistoryPoints {
		history.Push(gen.Next())
	}

	values := history.Values(nil)
	assert.Len(t, values, cfg.Preview.HistoryPoints)
	s.UpdateData(values, 16000)

	s.mu.RLock()
	defer s.mu.RUnlock()
	assert.Len(t, s.display, cfg.Preview.MaxPoints)
	// Every other sample of the retained history is drawn
	assert.Equal(t, values[0], s.display[0])
	assert.Equal(t, values[2], s.display[1])
	assert.InDelta(t, 1000, s.frequency, 1e-6)
	assert.InDelta(t, 200, s.peakToPeak, 1)
}
