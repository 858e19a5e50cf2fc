// Copyright 2026 The gostim Authors
// SPDX-License-Identifier: MIT

package window

import "github.com/gostim/gostim/compositor"

// Options describes the window to create.
type Options struct {
	Mode  Mode
	Title string

	// Width and Height are the windowed size, or the fullscreen size
	// constraint (zero means unconstrained where the mode allows it).
	Width, Height int

	// Monitor selects the display for fullscreen modes; nil means the
	// primary monitor.
	Monitor *Monitor

	// RefreshRateHz constrains fullscreen mode selection; zero means
	// unconstrained.
	RefreshRateHz float64

	// PhysicalWidthMM and ViewingDistanceMM calibrate physical units.
	// Zero values leave degree/mm sizes unusable until SetPhysicalScreen.
	PhysicalWidthMM   float32
	ViewingDistanceMM float32
}

// Windowed creates options for a decorated window of the given pixel size.
func Windowed(width, height int) Options {
	return Options{Mode: ModeWindowed, Width: width, Height: height, Title: "gostim"}
}

// FullscreenExact creates options demanding an exact mode on a monitor.
func FullscreenExact(m *Monitor, width, height int, refreshHz float64) Options {
	return Options{
		Mode: ModeFullscreenExact, Monitor: m,
		Width: width, Height: height, RefreshRateHz: refreshHz,
		Title: "gostim",
	}
}

// FullscreenHighestRefreshRate creates options picking the fastest mode
// satisfying the optional size constraints.
func FullscreenHighestRefreshRate(m *Monitor, width, height int) Options {
	return Options{
		Mode: ModeFullscreenHighestRefresh, Monitor: m,
		Width: width, Height: height,
		Title: "gostim",
	}
}

// FullscreenHighestResolution creates options picking the largest mode
// satisfying the optional refresh constraint.
func FullscreenHighestResolution(m *Monitor, refreshHz float64) Options {
	return Options{
		Mode: ModeFullscreenHighestResolution, Monitor: m,
		RefreshRateHz: refreshHz,
		Title:         "gostim",
	}
}

// DefaultGamma returns the standard sRGB-encoding compositor options.
func DefaultGamma() compositor.Options {
	return compositor.DefaultOptions()
}

// PresentOptions carries the optional arguments of Window.Present.
// The zero value presents exactly one frame.
type PresentOptions struct {
	// RepeatFrames presents the frame this many times. Mutually exclusive
	// with RepeatTime.
	RepeatFrames *int
	// RepeatTime presents the frame for this many seconds, resolved
	// against the display's refresh period.
	RepeatTime *float64
	// RepeatUpdate re-advances stimulus animations on every repeat
	// iteration. Defaults to true; set to Bool(false) to freeze the
	// frame after the first iteration.
	RepeatUpdate *bool
	// Pedantic overrides the window config's pedantic mode for this call.
	Pedantic *bool
}

// Int returns a pointer to v, for filling option fields inline.
func Int(v int) *int { return &v }

// Float returns a pointer to v, for filling option fields inline.
func Float(v float64) *float64 { return &v }

// Bool returns a pointer to v, for filling option fields inline.
func Bool(v bool) *bool { return &v }
