package receiver

import "sync/atomic"

// requireNotStarted panics if the receiver has already been started.
func (r *Receiver) requireNotStarted(action string) {
	if atomic.LoadInt32(&r.used) == 1 {
		panic("receiver: " + action + " called after Start")
	}
}
