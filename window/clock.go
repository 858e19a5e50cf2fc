// Copyright 2026 The gostim Authors
// SPDX-License-Identifier: MIT

package window

import (
	"time"

	"github.com/gostim/gostim"
)

// presentWaitTimeout bounds the platform wait after each present.
// Expiry is fatal to the window: continuing without a timing guarantee
// would silently break onset trustworthiness.
const presentWaitTimeout = 10 * time.Second

// PresentationClock abstracts the platform's present-completion signal.
//
// Platforms with a frame-latency waitable primitive block on it and return
// a confirmed timestamp. Platforms without one return the time the present
// call completed, flagged unconfirmed: callers must treat that as an
// approximation of onset, not a measurement.
type PresentationClock interface {
	// WaitForPresentComplete blocks until the last present is believed
	// on screen, or until timeout. confirmed is true only when the
	// platform actually signalled completion.
	WaitForPresentComplete(timeout time.Duration) (ts time.Time, confirmed bool, err error)
}

// returnClock is the default clock: it assumes present() returning means
// the frame is queued for the next vsync and reports the current time,
// unconfirmed.
type returnClock struct{}

// NewReturnClock creates the fallback clock for platforms without a
// present-completion signal.
func NewReturnClock() PresentationClock {
	return returnClock{}
}

func (returnClock) WaitForPresentComplete(time.Duration) (time.Time, bool, error) {
	return time.Now(), false, nil
}

// SignalClock adapts a platform present-completion callback to a
// PresentationClock. The platform thread delivers timestamps through
// Signal; WaitForPresentComplete blocks for the next one and reports it
// confirmed. Expects a single producer.
type SignalClock struct {
	ch chan time.Time
}

// NewSignalClock creates a clock fed by Signal.
func NewSignalClock() *SignalClock {
	return &SignalClock{ch: make(chan time.Time, 1)}
}

// Signal records a confirmed completion timestamp without blocking.
// An unconsumed earlier timestamp is replaced.
func (c *SignalClock) Signal(ts time.Time) {
	select {
	case <-c.ch:
	default:
	}
	c.ch <- ts
}

func (c *SignalClock) WaitForPresentComplete(timeout time.Duration) (time.Time, bool, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case ts := <-c.ch:
		return ts, true, nil
	case <-timer.C:
		return time.Time{}, false, timeoutError(timeout)
	}
}

// timeoutError builds the fatal error for an expired present wait.
func timeoutError(timeout time.Duration) error {
	return &gostim.TimingError{
		Msg: "present completion wait exceeded " + timeout.String(),
	}
}
