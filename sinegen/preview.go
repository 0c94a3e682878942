package main

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/itohio/gosine/pkg/config"
	"github.com/itohio/gosine/pkg/scope"
)

// appState holds the preview application state.
type appState struct {
	cfg         *config.Config
	configPath  string
	useMock     bool
	window      fyne.Window
	scopeWidget *scope.ScopeWidget
	startBtn    *widget.Button

	mu      sync.Mutex
	sess    *session
	history *scope.History
	cancel  context.CancelFunc
	done    chan struct{} // Closed when the streaming goroutine exits
}

func runPreview(cfg *config.Config, configPath string, useMock bool) {
	application := app.NewWithID("com.itohio.gosine")

	window := application.NewWindow("Sine Generator")
	window.Resize(fyne.NewSize(1000, 500))
	window.CenterOnScreen()

	state := &appState{
		cfg:        cfg,
		configPath: configPath,
		useMock:    useMock,
		window:     window,
	}

	toolbar := createToolbar(state)
	state.scopeWidget = scope.New(cfg)

	window.SetContent(container.NewBorder(toolbar, nil, nil, nil, state.scopeWidget))
	window.SetOnClosed(func() {
		stopStreaming(state)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go refreshLoop(ctx, state)

	window.ShowAndRun()
}

// createToolbar creates the toolbar with Start/Stop and Settings buttons.
func createToolbar(state *appState) fyne.CanvasObject {
	startBtn := widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() {
		handleStartStop(state)
	})
	state.startBtn = startBtn

	settingsBtn := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		showSettingsDialog(state)
	})

	return container.NewHBox(startBtn, settingsBtn)
}

// handleStartStop toggles streaming.
func handleStartStop(state *appState) {
	state.mu.Lock()
	running := state.sess != nil
	state.mu.Unlock()

	if running {
		stopStreaming(state)
		state.startBtn.SetText("Start")
		state.startBtn.SetIcon(theme.MediaPlayIcon())
		return
	}

	if err := startStreaming(state); err != nil {
		dialog.ShowError(err, state.window)
		return
	}
	state.startBtn.SetText("Stop")
	state.startBtn.SetIcon(theme.MediaStopIcon())
}

// startStreaming opens a new session with a fresh generator and runs it in
// a goroutine.
func startStreaming(state *appState) error {
	sess, err := openSession(state.cfg, state.useMock)
	if err != nil {
		return fmt.Errorf("failed to start streaming: %w", err)
	}

	history := scope.NewHistory(state.cfg.Preview.HistoryPoints)
	sess.streamer.OnSample(history.Push)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	state.mu.Lock()
	state.sess = sess
	state.history = history
	state.cancel = cancel
	state.done = done
	state.mu.Unlock()

	go func() {
		defer close(done)
		if err := sess.streamer.Run(ctx); err != nil {
			log.Printf("Streaming stopped: %v", err)
			if !finishFailedSession(state, sess) {
				return
			}
			fyne.Do(func() {
				state.startBtn.SetText("Start")
				state.startBtn.SetIcon(theme.MediaPlayIcon())
				dialog.ShowError(err, state.window)
			})
		}
	}()

	return nil
}

// finishFailedSession detaches sess after its run loop returned an error and
// closes the sink. It returns false when sess is no longer the active session,
// in which case stopStreaming owns the cleanup.
func finishFailedSession(state *appState, sess *session) bool {
	state.mu.Lock()
	if state.sess != sess {
		state.mu.Unlock()
		return false
	}
	cancel := state.cancel
	state.sess, state.history, state.cancel, state.done = nil, nil, nil, nil
	state.mu.Unlock()

	cancel()
	if err := sess.Close(); err != nil {
		log.Printf("Error closing sink: %v", err)
	}

	st := sess.streamer.Stats()
	fmt.Printf("Failed after %d packets (%d bytes, %d write errors)\n", st.Packets, st.Bytes, st.WriteErrors)
	return true
}

// stopStreaming cancels the run loop, waits for it to exit and closes the sink.
func stopStreaming(state *appState) {
	state.mu.Lock()
	sess, cancel, done := state.sess, state.cancel, state.done
	state.sess, state.cancel, state.done = nil, nil, nil
	state.mu.Unlock()

	if sess == nil {
		return
	}

	cancel()
	<-done

	if err := sess.Close(); err != nil {
		log.Printf("Error closing sink: %v", err)
	}

	st := sess.streamer.Stats()
	fmt.Printf("Stopped after %d packets (%d bytes, %d write errors)\n", st.Packets, st.Bytes, st.WriteErrors)
}

// refreshLoop pushes the latest samples to the scope at the configured rate.
func refreshLoop(ctx context.Context, state *appState) {
	ticker := time.NewTicker(state.cfg.Preview.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			state.mu.Lock()
			sess, history := state.sess, state.history
			state.mu.Unlock()

			if sess == nil {
				continue
			}

			values := history.Values(nil)
			rate := sess.streamer.Stats().Rate(now)
			fyne.Do(func() {
				state.scopeWidget.UpdateData(values, rate)
			})
		}
	}
}
