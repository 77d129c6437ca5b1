package builder

import (
	"context"
	"errors"
	"fmt"

	"github.com/joeydtaylor/pulsescope/pkg/internal/monitor"
	"github.com/joeydtaylor/pulsescope/pkg/internal/trace"
	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
)

// Pipeline is a transport, a receiver decoding its frames, and a monitor routing
// the records to traces. The monitor's trace bindings drive the receiver's
// channel subscriptions. A meter counts what the receiver sees.
type Pipeline struct {
	Config    MonitorConfig
	Transport types.Transport
	Receiver  types.Receiver
	Monitor   *monitor.Monitor
	Sensor    types.Sensor
	Meter     types.Meter

	ctx     context.Context
	cancel  context.CancelFunc
	logger  types.Logger
	logSink string
}

// LogFileSink is the sink identifier a pipeline registers for MonitorConfig.LogFile.
const LogFileSink = "pipeline-log-file"

// NewPipeline dials the configured transport and wires a pipeline around it.
func NewPipeline(ctx context.Context, cfg MonitorConfig, logger types.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	t, err := DialTransport(ctx, cfg.Transport, cfg.Address, cfg.Topic, cfg.GroupID, logger)
	if err != nil {
		return nil, fmt.Errorf("dial %s transport at %s: %w", cfg.Transport, cfg.Address, err)
	}
	p, err := NewPipelineWithTransport(ctx, cfg, t, logger)
	if err != nil {
		_ = t.Close()
		return nil, err
	}
	return p, nil
}

// NewPipelineWithTransport wires a pipeline around an already open transport.
// Traces from cfg are created and bound, which subscribes their channels.
func NewPipelineWithTransport(ctx context.Context, cfg MonitorConfig, t types.Transport, logger types.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = NewLogger(LoggerWithLevel(cfg.LogLevel))
	}
	logSink := ""
	if cfg.LogFile != "" {
		err := logger.AddSink(LogFileSink, SinkConfig{
			Type:   string(FileSink),
			Config: map[string]interface{}{"path": cfg.LogFile},
		})
		if err != nil {
			return nil, fmt.Errorf("log file %s: %w", cfg.LogFile, err)
		}
		logSink = LogFileSink
	}
	ctx, cancel := context.WithCancel(ctx)

	m := NewMeter(ctx, MeterWithLogger(logger))
	s := NewSensor(SensorWithMeter(m))
	r := NewReceiver(ctx,
		ReceiverWithTransport(t),
		ReceiverWithPollTimeout(cfg.PollTimeout),
		ReceiverWithLogger(logger),
		ReceiverWithSensor(s),
	)
	mon := NewMonitor(ctx, r,
		MonitorWithHistoryLength(cfg.History),
		MonitorWithLogger(logger),
	)
	r.ConnectOutput(mon)

	p := &Pipeline{
		Config:    cfg,
		Transport: t,
		Receiver:  r,
		Monitor:   mon,
		Sensor:    s,
		Meter:     m,
		ctx:       ctx,
		cancel:    cancel,
		logger:    logger,
		logSink:   logSink,
	}
	for _, tc := range cfg.Traces {
		if err := p.AddTrace(tc); err != nil {
			cancel()
			p.closeLogSink()
			return nil, err
		}
	}
	return p, nil
}

// AddTrace creates a trace from tc and binds it to its channel.
func (p *Pipeline) AddTrace(tc TraceConfig) error {
	opts := []types.Option[*trace.Trace]{TraceWithSpectra(tc.Spectra)}
	if tc.Length > 0 {
		opts = append(opts, TraceWithLength(tc.Length))
	}
	if _, err := p.Monitor.AddTrace(tc.ID, opts...); err != nil {
		return err
	}
	if err := p.Monitor.BindTrace(tc.ID, tc.Channel); err != nil {
		return fmt.Errorf("bind trace %s to channel %d: %w", tc.ID, tc.Channel, err)
	}
	return nil
}

// Start launches the monitor, then the receiver, then periodic meter reports when
// MeterInterval is set.
func (p *Pipeline) Start() error {
	if err := p.Monitor.Start(p.ctx); err != nil {
		return err
	}
	if err := p.Receiver.Start(p.ctx); err != nil {
		_ = p.Monitor.Stop()
		return err
	}
	if p.Config.MeterInterval > 0 {
		go p.Meter.Monitor(p.ctx, p.Config.MeterInterval)
	}
	return nil
}

// Stop halts the receiver, which closes the transport, and then the monitor.
// It returns the error that ended the receive loop, if any.
func (p *Pipeline) Stop() error {
	rerr := p.Receiver.Stop()
	merr := p.Monitor.Stop()
	p.cancel()
	p.closeLogSink()
	return errors.Join(rerr, merr)
}

// closeLogSink flushes and detaches the log file sink, once.
func (p *Pipeline) closeLogSink() {
	if p.logSink == "" {
		return
	}
	_ = p.logger.Flush()
	_ = p.logger.RemoveSink(p.logSink)
	p.logSink = ""
}

// Wait blocks until the receive loop ends.
func (p *Pipeline) Wait() error {
	return p.Receiver.Wait()
}
