// Copyright 2026 The gostim Authors
// SPDX-License-Identifier: MIT

package window

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gostim/gostim"
)

// VideoMode is one resolution/refresh combination a monitor supports.
type VideoMode struct {
	Width, Height int
	RefreshRateHz float64
}

// Monitor describes one attached display.
type Monitor struct {
	Name   string
	Index  int
	Modes  []VideoMode
	handle *glfw.Monitor
}

// Current returns the monitor's active video mode.
// Monitors without a reported refresh rate fail with a *MonitorError.
func (m *Monitor) Current() (VideoMode, error) {
	if m.handle == nil {
		if len(m.Modes) == 0 {
			return VideoMode{}, &gostim.MonitorError{Msg: "monitor has no video modes"}
		}
		return m.Modes[0], nil
	}
	vm := m.handle.GetVideoMode()
	if vm == nil {
		return VideoMode{}, &gostim.MonitorError{Msg: "monitor reports no current video mode"}
	}
	if vm.RefreshRate <= 0 {
		return VideoMode{}, &gostim.MonitorError{Msg: fmt.Sprintf("monitor %q reports no refresh rate", m.Name)}
	}
	return VideoMode{Width: vm.Width, Height: vm.Height, RefreshRateHz: float64(vm.RefreshRate)}, nil
}

// EnumerateMonitors lists the attached monitors. Must be called on the
// display thread; experiment code goes through the app context instead.
func EnumerateMonitors() ([]Monitor, error) {
	handles := glfw.GetMonitors()
	if len(handles) == 0 {
		return nil, &gostim.MonitorError{Msg: "no monitors attached"}
	}
	monitors := make([]Monitor, 0, len(handles))
	for i, h := range handles {
		m := Monitor{Name: h.GetName(), Index: i, handle: h}
		for _, vm := range h.GetVideoModes() {
			m.Modes = append(m.Modes, VideoMode{
				Width: vm.Width, Height: vm.Height, RefreshRateHz: float64(vm.RefreshRate),
			})
		}
		monitors = append(monitors, m)
	}
	return monitors, nil
}

// Handle returns the underlying glfw monitor for fullscreen window
// creation, nil for synthetic monitors.
func (m *Monitor) Handle() *glfw.Monitor { return m.handle }

// Mode selects how a window maps onto a monitor.
type Mode uint8

const (
	// ModeWindowed is a decorated window of a fixed size.
	ModeWindowed Mode = iota
	// ModeFullscreenExact uses an exact resolution and refresh rate and
	// fails if the monitor does not offer it.
	ModeFullscreenExact
	// ModeFullscreenHighestRefresh picks the supported mode with the
	// highest refresh rate satisfying the size constraints.
	ModeFullscreenHighestRefresh
	// ModeFullscreenHighestResolution picks the supported mode with the
	// most pixels satisfying the refresh constraint.
	ModeFullscreenHighestResolution
)

// SelectVideoMode applies a fullscreen selection strategy to a monitor's
// mode list. Constraints at zero are unconstrained.
func SelectVideoMode(modes []VideoMode, mode Mode, wantW, wantH int, wantHz float64) (VideoMode, error) {
	switch mode {
	case ModeFullscreenExact:
		for _, vm := range modes {
			if vm.Width == wantW && vm.Height == wantH && (wantHz == 0 || vm.RefreshRateHz == wantHz) {
				return vm, nil
			}
		}
		return VideoMode{}, &gostim.MonitorError{
			Msg: fmt.Sprintf("no video mode %dx%d@%g", wantW, wantH, wantHz),
		}
	case ModeFullscreenHighestRefresh:
		best, found := VideoMode{}, false
		for _, vm := range modes {
			if wantW != 0 && vm.Width != wantW {
				continue
			}
			if wantH != 0 && vm.Height != wantH {
				continue
			}
			if !found || vm.RefreshRateHz > best.RefreshRateHz {
				best, found = vm, true
			}
		}
		if !found {
			return VideoMode{}, &gostim.MonitorError{Msg: "no video mode satisfies the size constraints"}
		}
		return best, nil
	case ModeFullscreenHighestResolution:
		best, found := VideoMode{}, false
		for _, vm := range modes {
			if wantHz != 0 && vm.RefreshRateHz != wantHz {
				continue
			}
			if !found || vm.Width*vm.Height > best.Width*best.Height {
				best, found = vm, true
			}
		}
		if !found {
			return VideoMode{}, &gostim.MonitorError{Msg: "no video mode satisfies the refresh constraint"}
		}
		return best, nil
	default:
		return VideoMode{Width: wantW, Height: wantH, RefreshRateHz: wantHz}, nil
	}
}
