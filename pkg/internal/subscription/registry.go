// Package subscription keeps a transport's topic filter in step with the channels
// that traces currently want.
package subscription

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/joeydtaylor/pulsescope/pkg/internal/types"
)

// Registry maps trace ids to channels and emits the minimal subscribe/unsubscribe
// calls needed to keep the subscriber's filter equal to the set of wanted channels.
type Registry struct {
	mu     sync.Mutex
	target types.ChannelSubscriber
	wanted map[string]uint16
	active map[uint16]struct{}
	hooks  []func(ch uint16, subscribed bool)
}

// New returns an empty registry driving target.
func New(target types.ChannelSubscriber) *Registry {
	return &Registry{
		target: target,
		wanted: make(map[string]uint16),
		active: make(map[uint16]struct{}),
	}
}

// OnChange registers a callback invoked after every successful subscribe or unsubscribe.
func (r *Registry) OnChange(fn func(ch uint16, subscribed bool)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks = append(r.hooks, fn)
}

// Set records that traceID wants ch.
func (r *Registry) Set(traceID string, ch uint16) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.wanted[traceID] = ch
	return r.syncLocked()
}

// Unset records that traceID no longer wants any channel.
func (r *Registry) Unset(traceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.wanted, traceID)
	return r.syncLocked()
}

// Remove is Unset for a trace that is going away.
func (r *Registry) Remove(traceID string) error {
	return r.Unset(traceID)
}

// Replace swaps the whole trace-to-channel mapping and emits a single diff.
func (r *Registry) Replace(mapping map[string]uint16) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.wanted = make(map[string]uint16, len(mapping))
	for id, ch := range mapping {
		r.wanted[id] = ch
	}
	return r.syncLocked()
}

// Wanted returns the channel traceID is registered for.
func (r *Registry) Wanted(traceID string) (uint16, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ch, ok := r.wanted[traceID]
	return ch, ok
}

// Active returns the channels currently subscribed on the target, ascending.
func (r *Registry) Active() []uint16 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return sortedKeys(r.active)
}

// Resync subscribes every active channel again, for use after the target reconnects.
func (r *Registry) Resync() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var errs []error
	for _, ch := range sortedKeys(r.active) {
		if err := r.target.SubscribeChannel(ch); err != nil {
			delete(r.active, ch)
			errs = append(errs, fmt.Errorf("resubscribe channel %d: %w", ch, err))
		}
	}
	return errors.Join(errs...)
}

func (r *Registry) syncLocked() error {
	desired := make(map[uint16]struct{}, len(r.wanted))
	for _, ch := range r.wanted {
		desired[ch] = struct{}{}
	}

	var errs []error
	for _, ch := range sortedKeys(r.active) {
		if _, keep := desired[ch]; keep {
			continue
		}
		if err := r.target.UnsubscribeChannel(ch); err != nil {
			errs = append(errs, fmt.Errorf("unsubscribe channel %d: %w", ch, err))
			continue
		}
		delete(r.active, ch)
		r.notify(ch, false)
	}
	for _, ch := range sortedKeys(desired) {
		if _, have := r.active[ch]; have {
			continue
		}
		if err := r.target.SubscribeChannel(ch); err != nil {
			errs = append(errs, fmt.Errorf("subscribe channel %d: %w", ch, err))
			continue
		}
		r.active[ch] = struct{}{}
		r.notify(ch, true)
	}
	return errors.Join(errs...)
}

func (r *Registry) notify(ch uint16, subscribed bool) {
	for _, fn := range r.hooks {
		fn(ch, subscribed)
	}
}

func sortedKeys(m map[uint16]struct{}) []uint16 {
	out := make([]uint16, 0, len(m))
	for ch := range m {
		out = append(out, ch)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
