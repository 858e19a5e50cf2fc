package app

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gostim/gostim"
	"github.com/gostim/gostim/compositor"
	"github.com/gostim/gostim/window"
)

// ExperimentContext is the experiment goroutine's handle to the display
// thread. Its methods block until the display thread has served the
// request; they must not be called from event handlers.
type ExperimentContext struct {
	cfg     gostim.ExperimentConfig
	actions chan<- action
}

// Config returns the configuration the app was started with.
func (c *ExperimentContext) Config() gostim.ExperimentConfig { return c.cfg }

// CreateWindow opens a window on the display thread and blocks until it
// exists. gamma selects the compositor's output encoding; use
// window.DefaultGamma() for a standard sRGB display.
func (c *ExperimentContext) CreateWindow(opts window.Options, gamma compositor.Options) (*window.Window, error) {
	reply := make(chan createWindowResult, 1)
	c.actions <- createWindowAction{opts: opts, gamma: gamma, reply: reply}
	glfw.PostEmptyEvent()
	res := <-reply
	return res.win, res.err
}

// AvailableMonitors lists the attached monitors with their video modes.
func (c *ExperimentContext) AvailableMonitors() ([]window.Monitor, error) {
	reply := make(chan monitorsResult, 1)
	c.actions <- monitorsAction{reply: reply}
	glfw.PostEmptyEvent()
	res := <-reply
	return res.monitors, res.err
}
