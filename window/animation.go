// Copyright 2026 The gostim Authors
// SPDX-License-Identifier: MIT

package window

import (
	"math"
	"time"
)

// Easing shapes an animation's progress curve.
type Easing uint8

const (
	EaseLinear Easing = iota
	EaseIn
	EaseOut
	EaseInOut
)

// RepeatPolicy controls what an animation does after its duration elapses.
type RepeatPolicy uint8

const (
	// RepeatNone holds the end value.
	RepeatNone RepeatPolicy = iota
	// RepeatLoop restarts from the beginning.
	RepeatLoop
	// RepeatMirror plays forward then backward, alternating.
	RepeatMirror
)

// Animation drives one named stimulus parameter from From to To over
// Duration, starting at Start.
type Animation struct {
	Param    string
	From, To float64
	Start    time.Time
	Duration time.Duration
	Easing   Easing
	Repeat   RepeatPolicy
}

// Value returns the parameter value at the given time.
func (a Animation) Value(now time.Time) float64 {
	if a.Duration <= 0 {
		return a.To
	}
	t := float64(now.Sub(a.Start)) / float64(a.Duration)
	if t <= 0 {
		return a.From
	}
	switch a.Repeat {
	case RepeatLoop:
		t = t - math.Floor(t)
	case RepeatMirror:
		cycle := int(t)
		t -= float64(cycle)
		if cycle%2 == 1 {
			t = 1 - t
		}
	default:
		if t >= 1 {
			return a.To
		}
	}
	return a.From + (a.To-a.From)*ease(a.Easing, t)
}

func ease(e Easing, t float64) float64 {
	switch e {
	case EaseIn:
		return t * t
	case EaseOut:
		return t * (2 - t)
	case EaseInOut:
		if t < 0.5 {
			return 2 * t * t
		}
		return -1 + (4-2*t)*t
	default:
		return t
	}
}
