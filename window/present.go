// Copyright 2026 The gostim Authors
// SPDX-License-Identifier: MIT

package window

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/gostim/gostim"
	"github.com/gostim/gostim/scene"
)

// repeatTolerance is how far a time-based repeat may sit from a whole
// number of refresh periods before pedantic mode rejects it.
const repeatTolerance = 1e-4

// resolveRepeatCount turns PresentOptions into a concrete number of
// refresh cycles. At most one of RepeatFrames and RepeatTime may be set;
// neither means a single frame.
//
// A time-based repeat is resolved against the refresh rate. In pedantic
// mode the duration must land on a whole number of frames to within
// repeatTolerance, otherwise it rounds to the nearest frame.
func resolveRepeatCount(opts PresentOptions, refreshHz float64, pedantic bool) (int, error) {
	if opts.RepeatFrames != nil && opts.RepeatTime != nil {
		return 0, &gostim.ParameterError{
			Op:  "Present",
			Msg: "RepeatFrames and RepeatTime are mutually exclusive",
		}
	}
	if opts.Pedantic != nil {
		pedantic = *opts.Pedantic
	}
	switch {
	case opts.RepeatFrames != nil:
		n := *opts.RepeatFrames
		if n < 1 {
			return 0, &gostim.ParameterError{
				Op:  "Present",
				Msg: fmt.Sprintf("RepeatFrames must be at least 1, got %d", n),
			}
		}
		return n, nil
	case opts.RepeatTime != nil:
		t := *opts.RepeatTime
		if t <= 0 {
			return 0, &gostim.ParameterError{
				Op:  "Present",
				Msg: fmt.Sprintf("RepeatTime must be positive, got %g", t),
			}
		}
		if refreshHz <= 0 {
			return 0, &gostim.MonitorError{
				Msg: "refresh rate unknown, cannot resolve RepeatTime",
			}
		}
		f := t * refreshHz
		if pedantic && math.Abs(f-math.Round(f)) > repeatTolerance {
			return 0, &gostim.ParameterError{
				Op: "Present",
				Msg: fmt.Sprintf(
					"RepeatTime %gs is %g frames at %gHz, not a whole number; round it or disable pedantic mode",
					t, f, refreshHz),
			}
		}
		n := int(math.Round(f))
		if n < 1 {
			if pedantic {
				return 0, &gostim.ParameterError{
					Op:  "Present",
					Msg: fmt.Sprintf("RepeatTime %gs is shorter than one frame at %gHz", t, refreshHz),
				}
			}
			n = 1
		}
		return n, nil
	default:
		return 1, nil
	}
}

// framePresenter is the per-iteration hardware surface of Present,
// factored out so the loop can run against a fake in tests.
type framePresenter interface {
	acquire() (*wgpu.TextureView, error)
	renderScene(sc *scene.Scene) error
	blit(dst *wgpu.TextureView) error
	present()
	release(dst *wgpu.TextureView)
}

// surfacePresenter drives the real swapchain: software raster into the
// compositor's intermediate texture, gamma blit into the acquired view,
// then present.
type surfacePresenter struct {
	state   *WindowState
	current *wgpu.Texture
}

func (p *surfacePresenter) acquire() (*wgpu.TextureView, error) {
	tex, err := p.state.surface.GetCurrentTexture()
	if err != nil {
		return nil, &gostim.ResourceError{Resource: "surface texture", Err: err}
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, &gostim.ResourceError{Resource: "surface texture view", Err: err}
	}
	p.current = tex
	return view, nil
}

func (p *surfacePresenter) renderScene(sc *scene.Scene) error {
	s := p.state
	return s.backend.RenderToTexture(s.device, s.queue, s.comp.Intermediate(), s.width, s.height, sc)
}

func (p *surfacePresenter) blit(dst *wgpu.TextureView) error {
	s := p.state
	return s.comp.Blit(s.device, s.queue, dst)
}

func (p *surfacePresenter) present() {
	p.state.surface.Present()
}

func (p *surfacePresenter) release(dst *wgpu.TextureView) {
	if dst != nil {
		dst.Release()
	}
	if p.current != nil {
		p.current.Release()
		p.current = nil
	}
}

// Present shows the frame for the resolved number of refresh cycles and
// blocks until the last one is queued. It returns the onset time of the
// first iteration: a confirmed platform timestamp where available,
// otherwise the time the first present call returned.
//
// Each iteration re-records the frame into a fresh scene. Stimulus
// animations advance before every iteration unless opts.RepeatUpdate
// disables updates after the first.
//
// A timeout waiting for present completion is fatal: the window closes
// and a TimingError is returned.
func (w *Window) Present(frame *Frame, opts PresentOptions) (time.Time, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if frame == nil {
		return time.Time{}, &gostim.ParameterError{Op: "Present", Msg: "frame is nil"}
	}
	if w.state.phase == phaseClosed {
		return time.Time{}, &gostim.ParameterError{Op: "Present", Msg: "window is closed"}
	}

	n, err := resolveRepeatCount(opts, w.state.refreshHz, w.state.pedantic)
	if err != nil {
		return time.Time{}, err
	}
	w.state.frameID++
	frameID := w.state.frameID

	repeatUpdate := opts.RepeatUpdate == nil || *opts.RepeatUpdate

	var onset time.Time
	for i := 0; i < n; i++ {
		ts, err := w.presentOnce(frame, i == 0 || repeatUpdate)
		if err != nil {
			var terr *gostim.TimingError
			if errors.As(err, &terr) {
				gostim.Logger().Error("present wait timed out, closing window", "err", err)
				w.closeLocked()
			}
			return time.Time{}, err
		}
		if i == 0 {
			onset = ts
			ev := Event{Kind: EventOnset, Timestamp: onset}
			w.state.handlers.dispatch(ev)
			for _, fn := range frame.onOnset {
				fn(ev)
			}
		}
	}
	gostim.Logger().Debug("frame presented", "frame_id", frameID, "iterations", n)
	return onset, nil
}

// presentOnce runs one iteration of the present loop with the lock held.
func (w *Window) presentOnce(frame *Frame, update bool) (time.Time, error) {
	s := &w.state
	pr := s.presenter

	view, err := pr.acquire()
	if err != nil {
		return time.Time{}, err
	}
	defer pr.release(view)

	sc := s.backend.CreateScene(s.width, s.height)
	if update {
		now := time.Now()
		for _, st := range frame.stimuli {
			st.UpdateAnimations(now)
		}
	}
	frame.draw(sc, s)

	if err := pr.renderScene(sc); err != nil {
		return time.Time{}, err
	}
	if err := pr.blit(view); err != nil {
		return time.Time{}, err
	}
	pr.present()

	ts, confirmed, err := s.clock.WaitForPresentComplete(presentWaitTimeout)
	if err != nil {
		return time.Time{}, err
	}
	if !confirmed && ts.IsZero() {
		ts = time.Now()
	}
	return ts, nil
}
