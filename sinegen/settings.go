package main

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/itohio/gosine/pkg/link"
)

// showSettingsDialog displays the settings dialog. Changes are saved to the
// config file and take effect the next time streaming starts.
func showSettingsDialog(state *appState) {
	tabs := container.NewAppTabs(
		createSerialTab(state),
		createWaveTab(state),
	)

	content := container.NewBorder(nil, nil, nil, nil, tabs)

	d := dialog.NewCustom("Settings", "Close", content, state.window)
	d.Resize(fyne.NewSize(500, 300))
	d.Show()
}

// createSerialTab creates the Serial configuration tab.
func createSerialTab(state *appState) *container.TabItem {
	portOptions := []string{}
	if ports, err := link.Ports(); err == nil {
		for _, port := range ports {
			portOptions = append(portOptions, port.Name)
		}
	}

	currentPort := state.cfg.Serial.Port
	found := false
	for _, opt := range portOptions {
		if opt == currentPort {
			found = true
			break
		}
	}
	if !found && currentPort != "" {
		portOptions = append(portOptions, currentPort)
	}

	portSelect := widget.NewSelect(portOptions, nil)
	if currentPort != "" {
		portSelect.SetSelected(currentPort)
	}

	baudEntry := widget.NewEntry()
	baudEntry.SetText(strconv.Itoa(state.cfg.Serial.BaudRate))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Serial Port", Widget: portSelect},
			{Text: "Baud Rate", Widget: baudEntry},
		},
		OnSubmit: func() {
			baud, err := strconv.Atoi(baudEntry.Text)
			if err != nil || baud <= 0 {
				dialog.ShowError(fmt.Errorf("invalid baud rate: %s", baudEntry.Text), state.window)
				return
			}

			if portSelect.Selected != "" {
				state.cfg.Serial.Port = portSelect.Selected
			}
			state.cfg.Serial.BaudRate = baud
			saveConfig(state)
		},
	}

	return container.NewTabItem("Serial", form)
}

// createWaveTab creates the Wave configuration tab.
func createWaveTab(state *appState) *container.TabItem {
	amplitudeEntry := widget.NewEntry()
	amplitudeEntry.SetText(strconv.FormatFloat(state.cfg.Wave.Amplitude, 'f', -1, 64))

	frequencyEntry := widget.NewEntry()
	frequencyEntry.SetText(strconv.FormatFloat(state.cfg.Wave.Frequency, 'f', -1, 64))

	phaseSelect := widget.NewSelect([]string{"accumulator", "ticks"}, nil)
	phaseSelect.SetSelected(state.cfg.Wave.Phase)

	quantizeSelect := widget.NewSelect([]string{"wrap", "saturate"}, nil)
	quantizeSelect.SetSelected(state.cfg.Wave.Quantize)

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Amplitude", Widget: amplitudeEntry},
			{Text: "Frequency (Hz)", Widget: frequencyEntry},
			{Text: "Phase", Widget: phaseSelect},
			{Text: "Quantize", Widget: quantizeSelect},
		},
		OnSubmit: func() {
			amplitude, err := strconv.ParseFloat(amplitudeEntry.Text, 64)
			if err != nil {
				dialog.ShowError(fmt.Errorf("invalid amplitude: %w", err), state.window)
				return
			}
			frequency, err := strconv.ParseFloat(frequencyEntry.Text, 64)
			if err != nil {
				dialog.ShowError(fmt.Errorf("invalid frequency: %w", err), state.window)
				return
			}

			updated := *state.cfg
			updated.Wave.Amplitude = amplitude
			updated.Wave.Frequency = frequency
			updated.Wave.Phase = phaseSelect.Selected
			updated.Wave.Quantize = quantizeSelect.Selected
			if err := updated.Validate(); err != nil {
				dialog.ShowError(err, state.window)
				return
			}

			state.cfg.Wave = updated.Wave
			saveConfig(state)
		},
	}

	return container.NewTabItem("Wave", form)
}

func saveConfig(state *appState) {
	if err := state.cfg.Save(state.configPath); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save config: %w", err), state.window)
		return
	}
	dialog.ShowInformation("Settings", "Saved. Changes apply the next time streaming starts.", state.window)
}
