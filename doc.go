// Package gostim is a toolkit for building psychophysics and vision-science
// experiments with frame-accurate visual stimulus presentation.
//
// The root package holds the value types shared by every subsystem: linear
// RGBA colors and the sRGB transfer function, the experiment configuration,
// the error taxonomy, and the package logger.
//
// The interesting machinery lives in the subpackages:
//
//   - scene records one frame's worth of declarative draw commands
//   - render rasterizes a scene into an intermediate GPU texture
//   - compositor applies gamma/LUT correction onto the swapchain
//   - window owns the presentable surface and the present state machine
//   - stimuli implements the uniform stimulus draw contract
//   - app runs the display-thread event loop and the experiment goroutine
//
// A minimal experiment:
//
//	app.New(gostim.DefaultConfig()).Run(func(ctx *app.ExperimentContext) error {
//	    win, err := ctx.CreateWindow(window.Windowed(800, 600), window.DefaultGamma())
//	    if err != nil {
//	        return err
//	    }
//	    frame := win.NewFrame()
//	    frame.Add(stimuli.NewPattern(...))
//	    onset, err := win.Present(frame, window.PresentOptions{})
//	    ...
//	})
package gostim
