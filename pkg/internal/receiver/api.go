package receiver

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
)

var errNoTransport = errors.New("receiver: no transport configured")

// ConnectLogger attaches loggers.
func (r *Receiver) ConnectLogger(loggers ...types.Logger) {
	r.loggersLock.Lock()
	defer r.loggersLock.Unlock()
	for _, l := range loggers {
		if l == nil {
			continue
		}
		r.loggers = append(r.loggers, l)
		atomic.AddInt32(&r.loggerCount, 1)
	}
}

// ConnectSensor attaches sensors.
func (r *Receiver) ConnectSensor(sensors ...types.Sensor) {
	r.sensorLock.Lock()
	defer r.sensorLock.Unlock()
	for _, s := range sensors {
		if s == nil {
			continue
		}
		r.sensors = append(r.sensors, s)
		atomic.AddInt32(&r.sensorCount, 1)
	}
}

// ConnectOutput registers consumers in delivery order.
func (r *Receiver) ConnectOutput(outputs ...types.Consumer) {
	r.requireNotStarted("ConnectOutput")
	for _, o := range outputs {
		if o != nil {
			r.outputs = append(r.outputs, o)
		}
	}
}

// ConnectErrorSink registers callbacks for records that could not be decoded or delivered.
func (r *Receiver) ConnectErrorSink(sinks ...types.ErrorSink) {
	r.requireNotStarted("ConnectErrorSink")
	for _, s := range sinks {
		if s != nil {
			r.errorSinks = append(r.errorSinks, s)
		}
	}
}

func (r *Receiver) SetTransport(t types.Transport) {
	r.requireNotStarted("SetTransport")
	r.transport = t
}

// SetPollTimeout changes the bound on each poll. Non-positive values restore the default.
func (r *Receiver) SetPollTimeout(d time.Duration) {
	r.requireNotStarted("SetPollTimeout")
	if d <= 0 {
		d = DefaultPollTimeout
	}
	r.pollTimeout = d
}

func (r *Receiver) GetComponentMetadata() types.ComponentMetadata {
	return r.componentMetadata
}

func (r *Receiver) SetComponentMetadata(name string, id string) {
	r.requireNotStarted("SetComponentMetadata")
	r.componentMetadata.Name = name
	r.componentMetadata.ID = id
}

// SubscribeChannel attaches the transport filter for channel.
func (r *Receiver) SubscribeChannel(channel uint16) error {
	if r.transport == nil {
		return errNoTransport
	}
	if err := r.transport.SubscribeChannel(channel); err != nil {
		r.notifySubscriptionError("subscribe", channel, err)
		return err
	}
	r.notifySubscribe(channel)
	return nil
}

// UnsubscribeChannel removes the transport filter for channel.
func (r *Receiver) UnsubscribeChannel(channel uint16) error {
	if r.transport == nil {
		return errNoTransport
	}
	if err := r.transport.UnsubscribeChannel(channel); err != nil {
		r.notifySubscriptionError("unsubscribe", channel, err)
		return err
	}
	r.notifyUnsubscribe(channel)
	return nil
}

func (r *Receiver) State() types.ReceiverState {
	return types.ReceiverState(atomic.LoadInt32(&r.state))
}

// Err returns the terminal error of the loop, nil after a clean stop.
func (r *Receiver) Err() error {
	r.errLock.Lock()
	defer r.errLock.Unlock()
	return r.err
}

func (r *Receiver) setErr(err error) {
	r.errLock.Lock()
	defer r.errLock.Unlock()
	if r.err == nil {
		r.err = err
	}
}
