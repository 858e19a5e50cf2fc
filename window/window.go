// Copyright 2026 The gostim Authors
// SPDX-License-Identifier: MIT

package window

import (
	"sync"
	"time"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/google/uuid"

	"github.com/gostim/gostim"
	"github.com/gostim/gostim/geometry"
	"github.com/gostim/gostim/render"
)

// compositorPass is the color pipeline a window blits through. It is the
// method set of compositor.Pipeline, kept as an interface so the present
// loop's resize bookkeeping can be exercised without a GPU.
type compositorPass interface {
	Intermediate() *wgpu.Texture
	Size() (width, height uint32)
	Resize(device *wgpu.Device, width, height uint32) error
	Blit(device *wgpu.Device, queue *wgpu.Queue, dstView *wgpu.TextureView) error
	Release()
}

type phase int

const (
	phaseOpen phase = iota
	phaseClosed
)

// Config wires a Window to the hardware objects owned by the display
// thread. It is filled in by app when a window is created; experiments
// never construct one.
type Config struct {
	Adapter       *wgpu.Adapter
	Device        *wgpu.Device
	Queue         *wgpu.Queue
	Surface       *wgpu.Surface
	SurfaceConfig *wgpu.SurfaceConfiguration
	GLFW          *glfw.Window
	Backend       render.Backend
	Compositor    compositorPass
	RefreshRateHz float64
	Screen        geometry.PhysicalScreen
	Clock         PresentationClock

	// Pedantic sets the default repeat-time strictness for Present.
	// Nil means pedantic.
	Pedantic *bool
}

// WindowState is the state shared between the display and experiment
// threads. It is only ever touched with the owning Window's lock held;
// stimuli receive it during Draw and may read it freely there.
type WindowState struct {
	adapter       *wgpu.Adapter
	device        *wgpu.Device
	queue         *wgpu.Queue
	surface       *wgpu.Surface
	surfaceConfig *wgpu.SurfaceConfiguration
	glfwWin       *glfw.Window

	backend render.Backend
	comp    compositorPass

	width, height uint32
	screen        geometry.PhysicalScreen
	background    gostim.LinRGBA

	mouseX, mouseY float32
	cursorVisible  bool

	handlers  *handlerRegistry
	refreshHz float64
	clock     PresentationClock
	presenter framePresenter
	pedantic  bool

	frameID uint64
	phase   phase
}

// Size returns the framebuffer size in pixels.
func (s *WindowState) Size() (width, height uint32) { return s.width, s.height }

// Viewport returns the framebuffer size as a geometry viewport.
func (s *WindowState) Viewport() geometry.Viewport {
	return geometry.Viewport{Width: float32(s.width), Height: float32(s.height)}
}

// PhysicalScreen returns the physical calibration of the display.
func (s *WindowState) PhysicalScreen() geometry.PhysicalScreen { return s.screen }

// Backend returns the renderer backend, for stimuli that build bitmaps.
func (s *WindowState) Backend() render.Backend { return s.backend }

// Background returns the window's default frame background.
func (s *WindowState) Background() gostim.LinRGBA { return s.background }

// MousePosition returns the last cursor position in center-origin pixel
// coordinates, x rightward and y upward.
func (s *WindowState) MousePosition() (x, y float32) { return s.mouseX, s.mouseY }

// RefreshRateHz returns the display refresh rate.
func (s *WindowState) RefreshRateHz() float64 { return s.refreshHz }

// Window is a presentable surface. All methods are safe to call from the
// experiment thread; the window serializes access to its state, so event
// handlers and presents never observe each other half way.
type Window struct {
	mu    sync.Mutex
	state WindowState
}

// New assembles a window from display-thread hardware. The zero clock
// defaults to call-return timing and the background to mid gray.
func New(cfg Config) (*Window, error) {
	if cfg.Backend == nil {
		return nil, &gostim.ParameterError{Op: "window.New", Msg: "Config.Backend is required"}
	}
	clock := cfg.Clock
	if clock == nil {
		clock = NewReturnClock()
	}
	pedantic := true
	if cfg.Pedantic != nil {
		pedantic = *cfg.Pedantic
	}
	var width, height uint32
	if cfg.SurfaceConfig != nil {
		width, height = cfg.SurfaceConfig.Width, cfg.SurfaceConfig.Height
	} else if cfg.Compositor != nil {
		width, height = cfg.Compositor.Size()
	}
	w := &Window{state: WindowState{
		adapter:       cfg.Adapter,
		device:        cfg.Device,
		queue:         cfg.Queue,
		surface:       cfg.Surface,
		surfaceConfig: cfg.SurfaceConfig,
		glfwWin:       cfg.GLFW,
		backend:       cfg.Backend,
		comp:          cfg.Compositor,
		width:         width,
		height:        height,
		screen:        cfg.Screen,
		background:    gostim.Gray,
		cursorVisible: true,
		handlers:      newHandlerRegistry(),
		refreshHz:     cfg.RefreshRateHz,
		clock:         clock,
		pedantic:      pedantic,
	}}
	w.state.presenter = &surfacePresenter{state: &w.state}
	return w, nil
}

// OffscreenState returns a WindowState bound to no surface, for drawing
// stimuli outside a window: offscreen rendering and tests.
func OffscreenState(backend render.Backend, width, height uint32, screen geometry.PhysicalScreen) *WindowState {
	return &WindowState{
		backend:       backend,
		width:         width,
		height:        height,
		screen:        screen,
		background:    gostim.Gray,
		cursorVisible: true,
		handlers:      newHandlerRegistry(),
		clock:         NewReturnClock(),
		pedantic:      true,
	}
}

// NewFrame returns an empty frame with the window's background color.
func (w *Window) NewFrame() *Frame {
	w.mu.Lock()
	defer w.mu.Unlock()
	return newFrame(w.state.background)
}

// Size returns the framebuffer size in pixels.
func (w *Window) Size() (width, height uint32) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.width, w.state.height
}

// PhysicalScreen returns the physical calibration of the display.
func (w *Window) PhysicalScreen() geometry.PhysicalScreen {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.screen
}

// SetPhysicalScreen replaces the physical calibration.
func (w *Window) SetPhysicalScreen(s geometry.PhysicalScreen) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.screen = s
}

// Background returns the default background new frames start with.
func (w *Window) Background() gostim.LinRGBA {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.background
}

// SetBackground sets the default background for frames created afterwards.
func (w *Window) SetBackground(c gostim.LinRGBA) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.background = c
}

// RefreshRateHz returns the display refresh rate.
func (w *Window) RefreshRateHz() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.refreshHz
}

// MousePosition returns the last cursor position in center-origin pixel
// coordinates.
func (w *Window) MousePosition() (x, y float32) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.mouseX, w.state.mouseY
}

// CursorVisible reports whether the cursor shows over the window.
func (w *Window) CursorVisible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.cursorVisible
}

// SetCursorVisible shows or hides the cursor over the window.
func (w *Window) SetCursorVisible(visible bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.cursorVisible = visible
	if w.state.glfwWin != nil {
		mode := glfw.CursorNormal
		if !visible {
			mode = glfw.CursorHidden
		}
		w.state.glfwWin.SetInputMode(glfw.CursorMode, mode)
	}
}

// AddEventHandler registers fn for events of the given kind and returns
// a handle for RemoveEventHandler. Handlers run with the window locked;
// they must not call back into the window.
func (w *Window) AddEventHandler(kind EventKind, fn EventHandler) uuid.UUID {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.handlers.add(kind, fn)
}

// RemoveEventHandler drops a handler registered with AddEventHandler.
func (w *Window) RemoveEventHandler(id uuid.UUID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.handlers.remove(id)
}

// Closed reports whether the window has been closed.
func (w *Window) Closed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.phase == phaseClosed
}

// Close releases the window's GPU resources and marks it closed.
// Presents fail afterwards. Closing twice is a no-op.
func (w *Window) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closeLocked()
}

func (w *Window) closeLocked() {
	if w.state.phase == phaseClosed {
		return
	}
	w.state.phase = phaseClosed
	if w.state.comp != nil {
		w.state.comp.Release()
	}
	if w.state.glfwWin != nil {
		w.state.glfwWin.SetShouldClose(true)
	}
	gostim.Logger().Info("window closed")
}

// HandleResize is called from the display thread when the framebuffer
// changes size. It reconfigures the surface, resizes the compositor
// target and dispatches a Resized event.
func (w *Window) HandleResize(width, height uint32, now time.Time) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state.phase == phaseClosed || width == 0 || height == 0 {
		return nil
	}
	w.state.width, w.state.height = width, height
	if w.state.surfaceConfig != nil && w.state.surface != nil {
		w.state.surfaceConfig.Width = width
		w.state.surfaceConfig.Height = height
		w.state.surface.Configure(w.state.adapter, w.state.device, w.state.surfaceConfig)
	}
	if w.state.comp != nil {
		if err := w.state.comp.Resize(w.state.device, width, height); err != nil {
			return err
		}
	}
	w.state.handlers.dispatch(Event{Kind: EventResized, Timestamp: now, X: float32(width), Y: float32(height)})
	return nil
}

// DispatchEvent delivers an input event from the display thread to the
// window's handlers, recording cursor motion on the way.
func (w *Window) DispatchEvent(ev Event) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state.phase == phaseClosed {
		return
	}
	if ev.Kind == EventCursorMoved {
		w.state.mouseX, w.state.mouseY = ev.X, ev.Y
	}
	w.state.handlers.dispatch(ev)
}
