// Package app runs the two-thread model every experiment lives in: the
// main OS thread owns glfw and serves window management, while the
// experiment function runs on its own goroutine and talks to the display
// thread through a typed action channel.
package app

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gostim/gostim"
	"github.com/gostim/gostim/compositor"
	"github.com/gostim/gostim/window"
)

func init() {
	// glfw event handling must run on the main OS thread.
	runtime.LockOSThread()
}

// App owns the display thread. Construct one with New, then call Run
// exactly once from main.
type App struct {
	cfg gostim.ExperimentConfig
}

// New creates an app with the given configuration. Use
// gostim.DefaultConfig() when nothing was loaded from file.
func New(cfg gostim.ExperimentConfig) *App {
	return &App{cfg: cfg}
}

// action is a request the experiment goroutine sends to the display
// thread. Sends are followed by glfw.PostEmptyEvent so the event loop
// wakes up.
type action interface{ isAction() }

type createWindowAction struct {
	opts  window.Options
	gamma compositor.Options
	reply chan createWindowResult
}

type createWindowResult struct {
	win *window.Window
	err error
}

type monitorsAction struct {
	reply chan monitorsResult
}

type monitorsResult struct {
	monitors []window.Monitor
	err      error
}

type shutdownAction struct {
	err error
}

func (createWindowAction) isAction() {}
func (monitorsAction) isAction()     {}
func (shutdownAction) isAction()     {}

// Run initializes glfw and the GPU, starts the experiment on its own
// goroutine, and serves display-thread requests until the experiment
// returns. The experiment's error, if any, is returned.
//
// Run must be called from the main goroutine.
func (a *App) Run(experiment func(*ExperimentContext) error) error {
	if err := glfw.Init(); err != nil {
		return &gostim.ResourceError{Resource: "glfw", Err: err}
	}
	defer glfw.Terminate()

	instance := wgpu.CreateInstance(nil)
	if instance == nil {
		return &gostim.ResourceError{Resource: "wgpu instance", Err: fmt.Errorf("creation returned nil")}
	}
	defer instance.Release()

	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return &gostim.ResourceError{Resource: "wgpu adapter", Err: err}
	}
	defer adapter.Release()

	device, err := adapter.RequestDevice(nil)
	if err != nil {
		return &gostim.ResourceError{Resource: "wgpu device", Err: err}
	}
	defer device.Release()
	queue := device.GetQueue()
	gostim.Logger().Info("gpu ready")

	d := &display{
		app:      a,
		instance: instance,
		adapter:  adapter,
		device:   device,
		queue:    queue,
	}

	actions := make(chan action, 16)
	ctx := &ExperimentContext{cfg: a.cfg, actions: actions}

	go func() {
		err := experiment(ctx)
		actions <- shutdownAction{err: err}
		glfw.PostEmptyEvent()
	}()

	for {
		glfw.WaitEvents()
	drain:
		for {
			select {
			case act := <-actions:
				switch act := act.(type) {
				case createWindowAction:
					win, err := d.createWindow(act.opts, act.gamma)
					act.reply <- createWindowResult{win: win, err: err}
				case monitorsAction:
					ms, err := window.EnumerateMonitors()
					act.reply <- monitorsResult{monitors: ms, err: err}
				case shutdownAction:
					d.closeAll()
					return act.err
				}
			default:
				break drain
			}
		}
	}
}
