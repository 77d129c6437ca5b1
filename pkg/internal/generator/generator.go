// Package generator publishes synthetic pulse records. Each record is a
// double-exponential pulse on a uint16 baseline, sent on a random channel at a
// fixed interval.
package generator

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
	"github.com/joeydtaylor/pulsescope/pkg/internal/utils"
)

const (
	DefaultFirstChannel uint16  = 1
	DefaultLastChannel  uint16  = 20
	DefaultSamples      uint32  = 1000
	DefaultPresamples   uint32  = 200
	DefaultTimebase     float32 = 2.5e-6
	DefaultVoltsPerArb  float32 = 1.0 / 65535
	DefaultInterval             = 100 * time.Millisecond

	riseTime = 40.0
	fallTime = 200.0
)

type Generator struct {
	ctx               context.Context
	cancel            context.CancelFunc
	componentMetadata types.ComponentMetadata
	metadataLock      sync.Mutex
	configLock        sync.Mutex

	publisher    types.Publisher
	breaker      types.CircuitBreaker
	firstChannel uint16
	lastChannel  uint16
	samples      uint32
	presamples   uint32
	timebase     float32
	voltsPerArb  float32
	interval     time.Duration
	noise        float64

	shape    []float64
	shapeKey [2]uint32

	rng     *rand.Rand
	rngLock sync.Mutex

	frames    uint64
	published uint64

	loggers     []types.Logger
	loggersLock sync.Mutex
	sensors     []types.Sensor
	sensorsLock sync.Mutex

	started  int32
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewGenerator builds a generator with the defaults of the demo pulse source:
// channels 1..20, 1000 samples with 200 presamples, one record every 100 ms.
func NewGenerator(ctx context.Context, options ...types.Option[types.Generator]) types.Generator {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	g := &Generator{
		ctx:    ctx,
		cancel: cancel,
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "GENERATOR",
		},
		firstChannel: DefaultFirstChannel,
		lastChannel:  DefaultLastChannel,
		samples:      DefaultSamples,
		presamples:   DefaultPresamples,
		timebase:     DefaultTimebase,
		voltsPerArb:  DefaultVoltsPerArb,
		interval:     DefaultInterval,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range options {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

var _ types.Generator = (*Generator)(nil)
