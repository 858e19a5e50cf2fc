package app

import (
	"errors"
	"time"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gostim/gostim"
	"github.com/gostim/gostim/compositor"
	"github.com/gostim/gostim/geometry"
	"github.com/gostim/gostim/render"
	"github.com/gostim/gostim/window"
)

var errNoFormats = errors.New("surface reports no texture formats")

// display holds the GPU objects the display thread owns and the windows
// it has created. All methods run on the display thread.
type display struct {
	app      *App
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	windows  []*window.Window
}

func (d *display) resolveMonitor(opts window.Options) (*window.Monitor, error) {
	if opts.Monitor != nil {
		return opts.Monitor, nil
	}
	monitors, err := window.EnumerateMonitors()
	if err != nil {
		return nil, err
	}
	return &monitors[0], nil
}

// createWindow builds the whole window stack: glfw window, wgpu surface,
// gamma pipeline, renderer backend, and the Window tying them together.
func (d *display) createWindow(opts window.Options, gamma compositor.Options) (*window.Window, error) {
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	var (
		glfwWin   *glfw.Window
		refreshHz float64
		err       error
	)
	switch opts.Mode {
	case window.ModeWindowed:
		glfw.WindowHint(glfw.Resizable, glfw.True)
		glfwWin, err = glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
		if err != nil {
			return nil, &gostim.ResourceError{Resource: "glfw window", Err: err}
		}
		if mon, merr := d.resolveMonitor(opts); merr == nil {
			if vm, cerr := mon.Current(); cerr == nil {
				refreshHz = vm.RefreshRateHz
			}
		}
		if refreshHz == 0 {
			gostim.Logger().Warn("monitor refresh rate unknown, duration repeats unavailable")
		}
	default:
		mon, merr := d.resolveMonitor(opts)
		if merr != nil {
			return nil, merr
		}
		vm, serr := window.SelectVideoMode(mon.Modes, opts.Mode, opts.Width, opts.Height, opts.RefreshRateHz)
		if serr != nil {
			return nil, serr
		}
		glfw.WindowHint(glfw.RefreshRate, int(vm.RefreshRateHz))
		glfwWin, err = glfw.CreateWindow(vm.Width, vm.Height, opts.Title, mon.Handle(), nil)
		if err != nil {
			return nil, &gostim.ResourceError{Resource: "glfw window", Err: err}
		}
		refreshHz = vm.RefreshRateHz
	}

	surface := d.instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(glfwWin))
	fbw, fbh := glfwWin.GetFramebufferSize()

	caps := surface.GetCapabilities(d.adapter)
	if len(caps.Formats) == 0 {
		glfwWin.Destroy()
		return nil, &gostim.ResourceError{Resource: "surface formats", Err: errNoFormats}
	}
	// Gamma encoding happens in the compositor's lookup table; an sRGB
	// surface format would encode a second time.
	format := caps.Formats[0]
	pick := func(wanted ...wgpu.TextureFormat) bool {
		for _, want := range wanted {
			for _, f := range caps.Formats {
				if f == want {
					format = f
					return true
				}
			}
		}
		return false
	}
	if d.app.cfg.DisplayColorFormat != gostim.DisplayRGB10 || !pick(wgpu.TextureFormatRGB10A2Unorm) {
		pick(wgpu.TextureFormatBGRA8Unorm, wgpu.TextureFormatRGBA8Unorm)
	}

	config := &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      format,
		Width:       uint32(fbw),
		Height:      uint32(fbh),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	}
	surface.Configure(d.adapter, d.device, config)

	comp, err := compositor.New(d.device, d.queue, format, uint32(fbw), uint32(fbh), gamma)
	if err != nil {
		glfwWin.Destroy()
		return nil, err
	}

	var screen geometry.PhysicalScreen
	switch {
	case opts.PhysicalWidthMM > 0 && opts.ViewingDistanceMM > 0:
		screen = geometry.NewPhysicalScreen(float32(fbw), opts.PhysicalWidthMM, opts.ViewingDistanceMM)
	case d.app.cfg.ScreenWidthMM > 0 && d.app.cfg.ViewingDistanceMM > 0:
		screen = geometry.NewPhysicalScreen(float32(fbw),
			float32(d.app.cfg.ScreenWidthMM), float32(d.app.cfg.ViewingDistanceMM))
	}

	win, err := window.New(window.Config{
		Adapter:       d.adapter,
		Device:        d.device,
		Queue:         d.queue,
		Surface:       surface,
		SurfaceConfig: config,
		GLFW:          glfwWin,
		Backend:       render.NewSoftBackend(),
		Compositor:    comp,
		RefreshRateHz: refreshHz,
		Screen:        screen,
		Pedantic:      &d.app.cfg.Pedantic,
	})
	if err != nil {
		comp.Release()
		glfwWin.Destroy()
		return nil, err
	}
	if d.app.cfg.DefaultBackground != "" {
		if bg, perr := gostim.ParseColor(d.app.cfg.DefaultBackground); perr == nil {
			win.SetBackground(bg)
		}
	}

	d.installCallbacks(glfwWin, win)
	d.windows = append(d.windows, win)
	gostim.Logger().Info("window created",
		"width", fbw, "height", fbh, "refresh_hz", refreshHz)
	return win, nil
}

func (d *display) installCallbacks(glfwWin *glfw.Window, win *window.Window) {
	glfwWin.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		if err := win.HandleResize(uint32(w), uint32(h), time.Now()); err != nil {
			gostim.Logger().Error("resize failed", "err", err)
		}
	})
	glfwWin.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		var kind window.EventKind
		switch action {
		case glfw.Press:
			kind = window.EventKeyPress
		case glfw.Release:
			kind = window.EventKeyRelease
		default:
			return
		}
		win.DispatchEvent(window.Event{Kind: kind, Timestamp: time.Now(), Key: int(key)})
	})
	glfwWin.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w, h := win.Size()
		win.DispatchEvent(window.Event{
			Kind:      window.EventCursorMoved,
			Timestamp: time.Now(),
			X:         float32(x) - float32(w)/2,
			Y:         float32(h)/2 - float32(y),
		})
	})
	glfwWin.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		var kind window.EventKind
		switch action {
		case glfw.Press:
			kind = window.EventMouseButtonPress
		case glfw.Release:
			kind = window.EventMouseButtonRelease
		default:
			return
		}
		mx, my := win.MousePosition()
		win.DispatchEvent(window.Event{
			Kind: kind, Timestamp: time.Now(),
			Button: int(button), X: mx, Y: my,
		})
	})
	glfwWin.SetCloseCallback(func(_ *glfw.Window) {
		win.DispatchEvent(window.Event{Kind: window.EventCloseRequested, Timestamp: time.Now()})
	})
}

func (d *display) closeAll() {
	for _, w := range d.windows {
		w.Close()
	}
	d.windows = nil
}
