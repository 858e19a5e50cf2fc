// Copyright 2026 The gostim Authors
// SPDX-License-Identifier: MIT

package window

import (
	"github.com/gostim/gostim"
	"github.com/gostim/gostim/scene"
)

// Frame collects the stimuli for one presented image. Frames are built
// on the experiment thread and handed to Window.Present; a frame may be
// presented repeatedly but belongs to the window that created it.
type Frame struct {
	background gostim.LinRGBA
	stimuli    []Stimulus
	onOnset    []func(Event)
}

// NewFrame is called by Window.NewFrame; the background starts as the
// window's background color.
func newFrame(background gostim.LinRGBA) *Frame {
	return &Frame{background: background}
}

// SetBackground overrides the frame's background color.
func (f *Frame) SetBackground(c gostim.LinRGBA) { f.background = c }

// Background returns the frame's background color.
func (f *Frame) Background() gostim.LinRGBA { return f.background }

// Add appends a stimulus. Stimuli draw in insertion order, later ones
// over earlier ones.
func (f *Frame) Add(s Stimulus) {
	if s == nil {
		return
	}
	f.stimuli = append(f.stimuli, s)
}

// Stimuli returns the stimuli in draw order. The slice is shared; do not
// mutate it during a present.
func (f *Frame) Stimuli() []Stimulus { return f.stimuli }

// OnOnset registers a callback invoked once with the onset event of the
// first presented iteration of this frame.
func (f *Frame) OnOnset(fn func(Event)) {
	if fn == nil {
		return
	}
	f.onOnset = append(f.onOnset, fn)
}

// draw replays the frame into a fresh scene.
func (f *Frame) draw(sc *scene.Scene, state *WindowState) {
	sc.SetBackground(f.background)
	for _, s := range f.stimuli {
		if !s.Visible() {
			continue
		}
		s.Draw(sc, state)
	}
}
