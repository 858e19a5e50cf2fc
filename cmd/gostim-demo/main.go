// Command gostim-demo opens a window and presents a drifting grating
// over a gray background for one second's worth of frames, printing the
// onset timestamp of the presentation.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gostim/gostim"
	"github.com/gostim/gostim/app"
	"github.com/gostim/gostim/geometry"
	"github.com/gostim/gostim/stimuli"
	"github.com/gostim/gostim/window"
)

func main() {
	gostim.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	a := app.New(gostim.DefaultConfig())
	if err := a.Run(experiment); err != nil {
		fmt.Fprintln(os.Stderr, "gostim-demo:", err)
		os.Exit(1)
	}
}

func experiment(ctx *app.ExperimentContext) error {
	win, err := ctx.CreateWindow(window.Windowed(800, 600), window.DefaultGamma())
	if err != nil {
		return err
	}
	defer win.Close()

	grating := stimuli.NewPattern(stimuli.PatternSinusoidal,
		geometry.Pixels(0), geometry.Pixels(0),
		geometry.Pixels(400), geometry.Pixels(400),
		gostim.Black, gostim.White)
	grating.AddAnimation(window.Animation{
		Param: "phase", From: 0, To: 360,
		Start: time.Now(), Duration: time.Second,
		Repeat: window.RepeatLoop,
	})

	frame := win.NewFrame()
	frame.Add(grating)

	onset, err := win.Present(frame, window.PresentOptions{
		RepeatFrames: window.Int(60),
	})
	if err != nil {
		return err
	}
	fmt.Println("onset:", onset.Format(time.RFC3339Nano))
	return nil
}
