package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joeydtaylor/pulsescope/pkg/builder"
)

// Subscribes to two channels, keeps a short history per trace and prints the
// averaged pulse height and the strongest noise bin every two seconds.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := builder.DefaultMonitorConfig()
	if path := builder.EnvOr("PULSESCOPE_CONFIG", ""); path != "" {
		loaded, err := builder.LoadMonitorConfig(path)
		if err != nil {
			fmt.Printf("load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	cfg.ApplyEnv()
	if len(cfg.Traces) == 0 {
		cfg.Traces = []builder.TraceConfig{
			{ID: "A", Channel: 1, Spectra: true},
			{ID: "B", Channel: 2},
		}
	}

	logger := builder.NewLogger(builder.LoggerWithLevel(cfg.LogLevel))
	defer logger.Flush()

	pipeline, err := builder.NewPipeline(ctx, cfg, logger)
	if err != nil {
		fmt.Printf("build pipeline: %v\n", err)
		os.Exit(1)
	}
	if err := pipeline.Start(); err != nil {
		fmt.Printf("start pipeline: %v\n", err)
		os.Exit(1)
	}

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			if err := pipeline.Stop(); err != nil {
				fmt.Printf("pipeline stopped with error: %v\n", err)
			}
			return
		case <-ticker.C:
			for _, tr := range pipeline.Monitor.Traces() {
				printTrace(tr)
			}
		}
	}
}

func printTrace(tr *builder.Trace) {
	mean, err := tr.MeanRecord()
	if err != nil {
		fmt.Printf("trace %s (channel %d): no records\n", tr.ID(), tr.Channel())
		return
	}
	pulse := builder.BaselineSubtracted(mean)
	peak := 0.0
	for _, v := range pulse {
		if v > peak {
			peak = v
		}
	}
	line := fmt.Sprintf("trace %s (channel %d): %d records, peak %.1f arbs", tr.ID(), tr.Channel(), tr.Len(), peak)

	if tr.SpectraEnabled() {
		psd, err := tr.Spectrum(true, true)
		freq := tr.FrequencyAxis()
		if err == nil && len(psd) > 1 && len(freq) == len(psd) {
			best := 1
			for i := 2; i < len(psd); i++ {
				if psd[i] > psd[best] {
					best = i
				}
			}
			line += fmt.Sprintf(", strongest bin %.0f Hz", freq[best])
		}
	}
	fmt.Println(line)
}
