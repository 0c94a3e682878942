package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/itohio/gosine/pkg/config"
	"github.com/itohio/gosine/pkg/link"
	"github.com/itohio/gosine/pkg/stream"
	"github.com/itohio/gosine/pkg/wave"
)

func main() {
	var (
		portFlag    = flag.String("p", "", "Serial port override (e.g., COM6 or /dev/ttyUSB0)")
		configFlag  = flag.String("config", "config.yaml", "Configuration file path")
		mockFlag    = flag.Bool("mock", false, "Write to an in-memory sink instead of a serial port")
		previewFlag = flag.Bool("preview", false, "Open a window plotting the emitted samples")
		strictFlag  = flag.Bool("strict", false, "Stop on the first write failure (overrides config)")
		rateFlag    = flag.Float64("rate", -1, "Packets per second, 0 = unpaced (overrides config)")
		listFlag    = flag.Bool("list-ports", false, "List serial ports and exit")
	)
	flag.Parse()

	if *listFlag {
		listPorts()
		return
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if *portFlag != "" {
		cfg.Serial.Port = *portFlag
	}
	if *strictFlag {
		cfg.Stream.Strict = true
	}
	if *rateFlag >= 0 {
		cfg.Stream.RateHz = *rateFlag
	}

	if *previewFlag {
		runPreview(cfg, *configFlag, *mockFlag)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runHeadless(ctx, cfg, *mockFlag); err != nil {
		log.Fatalf("Streaming stopped: %v", err)
	}
}

func listPorts() {
	ports, err := link.Ports()
	if err != nil {
		log.Fatalf("Failed to list ports: %v", err)
	}
	if len(ports) == 0 {
		fmt.Println("No serial ports found")
		return
	}
	for _, p := range ports {
		fmt.Println(p.Name)
	}
}

// waveParams converts the wave section of the config to generator parameters.
func waveParams(cfg *config.WaveConfig) (wave.Params, error) {
	phase, err := wave.ParsePhaseMode(cfg.Phase)
	if err != nil {
		return wave.Params{}, err
	}
	quantize, err := wave.ParseQuantizeMode(cfg.Quantize)
	if err != nil {
		return wave.Params{}, err
	}

	p := wave.Params{
		Amplitude: cfg.Amplitude,
		Frequency: cfg.Frequency,
		Phase:     phase,
		Quantize:  quantize,
	}
	if 2*p.Amplitude > 255 {
		log.Printf("Amplitude %.1f exceeds the 8-bit range; samples will %s", p.Amplitude, cfg.Quantize)
	}
	return p, nil
}

// newSink creates the configured output.
func newSink(cfg *config.Config, useMock bool) link.Sink {
	if useMock {
		return link.NewMock(&cfg.Mock)
	}
	return link.NewSerial(cfg.Serial.Port, cfg.Serial.BaudRate)
}

// session is one open sink plus the streamer writing to it.
type session struct {
	sink     link.Sink
	streamer *stream.Streamer
}

// openSession creates a generator starting at t=0, opens the sink and wires
// both into a streamer.
func openSession(cfg *config.Config, useMock bool) (*session, error) {
	params, err := waveParams(&cfg.Wave)
	if err != nil {
		return nil, err
	}
	gen, err := wave.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}

	sink := newSink(cfg, useMock)
	if err := sink.Open(); err != nil {
		return nil, err
	}

	if useMock {
		fmt.Println("Streaming to mocked sink")
	} else {
		fmt.Printf("Streaming to %s at %d baud\n", cfg.Serial.Port, cfg.Serial.BaudRate)
	}

	return &session{
		sink:     sink,
		streamer: stream.New(gen, sink, stream.OptionsFromConfig(&cfg.Stream)),
	}, nil
}

func (s *session) Close() error {
	return s.sink.Close()
}

// runHeadless streams until ctx is cancelled, logging stats periodically.
func runHeadless(ctx context.Context, cfg *config.Config, useMock bool) error {
	sess, err := openSession(cfg, useMock)
	if err != nil {
		return err
	}
	defer sess.Close()

	go logStats(ctx, sess.streamer, cfg.Stream.StatsInterval)

	if err := sess.streamer.Run(ctx); err != nil {
		return err
	}

	st := sess.streamer.Stats()
	fmt.Printf("Stopped after %d packets (%d bytes, %d write errors)\n", st.Packets, st.Bytes, st.WriteErrors)
	return nil
}

func logStats(ctx context.Context, s *stream.Streamer, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			st := s.Stats()
			log.Printf("packets=%d bytes=%d write_errors=%d rate=%.0f/s", st.Packets, st.Bytes, st.WriteErrors, st.Rate(now))
		}
	}
}
