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

// Publishes synthetic pulses on channels 1..20, ten per second, the way a
// detector readout would. Point monitor_example at the same address to watch them.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kind := builder.EnvOr("PULSESCOPE_TRANSPORT", builder.TransportZMQ)
	addr := builder.EnvOr("PULSESCOPE_ADDR", "*:5502")
	topic := builder.EnvOr("PULSESCOPE_TOPIC", "")
	interval := builder.EnvDurationOr("PULSESCOPE_INTERVAL", 100*time.Millisecond)
	alg, err := builder.ParseCompression(builder.EnvOr("PULSESCOPE_COMPRESSION", ""))
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	logger := builder.NewLogger(builder.LoggerWithLevel(builder.EnvOr("PULSESCOPE_LOG_LEVEL", "info")))
	defer logger.Flush()

	meter := builder.NewMeter(ctx, builder.MeterWithLogger(logger))
	sensor := builder.NewSensor(
		builder.SensorWithMeter(meter),
		builder.SensorWithOnErrorFunc(func(c builder.ComponentMetadata, err error) {
			fmt.Printf("publish error: %v\n", err)
		}),
	)

	publisher, err := builder.NewCompressedPublisher(ctx, kind, addr, topic, alg)
	if err != nil {
		fmt.Printf("open %s publisher on %s: %v\n", kind, addr, err)
		os.Exit(1)
	}
	defer publisher.Close()

	breaker := builder.NewCircuitBreaker(5, 10*time.Second,
		builder.CircuitBreakerWithLogger(logger),
		builder.CircuitBreakerWithComponentMetadata("publish-guard", "cb-1"),
	)

	generator := builder.NewGenerator(ctx,
		builder.GeneratorWithPublisher(publisher),
		builder.GeneratorWithCircuitBreaker(breaker),
		builder.GeneratorWithLogger(logger),
		builder.GeneratorWithSensor(sensor),
		builder.GeneratorWithChannels(1, 20),
		builder.GeneratorWithInterval(interval),
		builder.GeneratorWithNoise(20),
		builder.GeneratorWithComponentMetadata("demo-pulses", "generator-1"),
	)

	if err := generator.Start(ctx); err != nil {
		fmt.Printf("start generator: %v\n", err)
		os.Exit(1)
	}
	go meter.Monitor(ctx, 5*time.Second)

	<-ctx.Done()
	_ = generator.Stop()
	fmt.Printf("published %d records\n", meter.GetMetricCount(string(builder.MetricRecordsDecoded)))
}
