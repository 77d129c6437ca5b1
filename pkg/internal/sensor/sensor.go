// Package sensor provides callback hooks that components fire on lifecycle and data
// events. A sensor connected to meters turns those events into counters.
package sensor

import (
	"sync"

	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
	"github.com/joeydtaylor/pulsescope/pkg/internal/utils"
)

// Sensor holds registered callbacks per event.
type Sensor struct {
	componentMetadata types.ComponentMetadata
	metadataLock      sync.Mutex

	OnStart       []func(types.ComponentMetadata)
	OnStop        []func(types.ComponentMetadata)
	OnRecord      []func(types.ComponentMetadata, types.PulseRecord)
	OnError       []func(types.ComponentMetadata, error)
	OnSubscribe   []func(types.ComponentMetadata, uint16)
	OnUnsubscribe []func(types.ComponentMetadata, uint16)

	callbackLock sync.Mutex
	loggers      []types.Logger
	loggersLock  sync.Mutex
	meters       []types.Meter
	metersLock   sync.Mutex
}

// NewSensor constructs a Sensor with optional configuration.
func NewSensor(options ...types.Option[types.Sensor]) types.Sensor {
	s := &Sensor{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "SENSOR",
		},
	}

	for _, opt := range s.decorateCallbacks(options...) {
		if opt == nil {
			continue
		}
		opt(s)
	}

	return s
}

var _ types.Sensor = (*Sensor)(nil)
