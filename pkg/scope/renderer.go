package scope

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

// scopeRenderer renders the scope widget.
type scopeRenderer struct {
	scope *ScopeWidget

	grid    *canvas.Rectangle
	legend  *canvas.Text
	objects []fyne.CanvasObject

	lastSize fyne.Size
}

// MinSize returns the minimum size of the widget.
func (r *scopeRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 300)
}

// Layout arranges the widget components.
func (r *scopeRenderer) Layout(size fyne.Size) {
	r.grid.Resize(size)

	if r.lastSize != size {
		r.lastSize = size
		r.scope.BaseWidget.Refresh()
	}
}

// Refresh rebuilds the canvas objects from the current data.
func (r *scopeRenderer) Refresh() {
	r.scope.mu.RLock()
	values := r.scope.display
	peakToPeak := r.scope.peakToPeak
	frequency := r.scope.frequency
	rate := r.scope.rate
	r.scope.mu.RUnlock()

	size := r.scope.Size()
	if size.Width == 0 || size.Height == 0 {
		return
	}

	r.objects = []fyne.CanvasObject{r.grid}

	marginLeft := float32(40.0)
	marginRight := float32(20.0)
	marginTop := float32(30.0)
	marginBottom := float32(30.0)

	plotWidth := size.Width - marginLeft - marginRight
	plotHeight := size.Height - marginTop - marginBottom
	plotX := marginLeft
	plotY := marginTop

	r.drawGrid(plotX, plotY, plotWidth, plotHeight, len(values))

	if len(values) > 1 {
		r.drawSampleLine(plotX, plotY, plotWidth, plotHeight, values)
	}

	r.legend = canvas.NewText(
		fmt.Sprintf("Peak-to-Peak=%.1f, Freq=%.1f Hz, Rate=%.0f pkt/s", peakToPeak, frequency, rate),
		color.RGBA{R: 200, G: 200, B: 200, A: 255},
	)
	r.legend.TextSize = 11
	r.legend.Move(fyne.NewPos(plotX+10, 8))
	r.objects = append(r.objects, r.legend)
}

// drawGrid draws the oscilloscope-style grid with byte values on the Y axis
// and sample numbers on the X axis.
func (r *scopeRenderer) drawGrid(plotX, plotY, plotWidth, plotHeight float32, points int) {
	gridColor := color.RGBA{R: 40, G: 40, B: 40, A: 255}
	textColor := color.RGBA{R: 150, G: 150, B: 150, A: 255}

	numHLines := 5
	for i := range numHLines + 1 {
		y := plotY + float32(i)*plotHeight/float32(numHLines)
		line := canvas.NewLine(gridColor)
		line.Position1 = fyne.NewPos(plotX, y)
		line.Position2 = fyne.NewPos(plotX+plotWidth, y)
		line.StrokeWidth = 1
		r.objects = append(r.objects, line)

		value := yMax - float64(i)*(yMax-yMin)/float64(numHLines)
		text := canvas.NewText(fmt.Sprintf("%.0f", value), textColor)
		text.TextSize = 10
		text.Alignment = fyne.TextAlignTrailing
		text.Move(fyne.NewPos(plotX-5, y-6))
		r.objects = append(r.objects, text)
	}

	numVLines := 10
	for i := range numVLines + 1 {
		x := plotX + float32(i)*plotWidth/float32(numVLines)
		line := canvas.NewLine(gridColor)
		line.Position1 = fyne.NewPos(x, plotY)
		line.Position2 = fyne.NewPos(x, plotY+plotHeight)
		line.StrokeWidth = 1
		r.objects = append(r.objects, line)

		text := canvas.NewText(fmt.Sprintf("%d", i*points/numVLines), textColor)
		text.TextSize = 10
		text.Alignment = fyne.TextAlignCenter
		text.Move(fyne.NewPos(x-10, plotY+plotHeight+5))
		r.objects = append(r.objects, text)
	}
}

// drawSampleLine draws the payload curve (blue, like the serial plotter).
func (r *scopeRenderer) drawSampleLine(plotX, plotY, plotWidth, plotHeight float32, values []float64) {
	dx := plotWidth / float32(len(values)-1)

	prev := fyne.NewPos(plotX, r.yPos(plotY, plotHeight, values[0]))
	for i := 1; i < len(values); i++ {
		curr := fyne.NewPos(plotX+float32(i)*dx, r.yPos(plotY, plotHeight, values[i]))
		line := canvas.NewLine(color.RGBA{R: 60, G: 120, B: 255, A: 255})
		line.Position1 = prev
		line.Position2 = curr
		line.StrokeWidth = 1.5
		r.objects = append(r.objects, line)
		prev = curr
	}
}

func (r *scopeRenderer) yPos(plotY, plotHeight float32, v float64) float32 {
	return plotY + plotHeight - float32((v-yMin)/(yMax-yMin))*plotHeight
}

// Objects returns all canvas objects for rendering.
func (r *scopeRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

// Destroy cleans up resources.
func (r *scopeRenderer) Destroy() {}
