// Copyright 2026 The gostim Authors
// SPDX-License-Identifier: MIT

package window

import (
	"testing"
	"time"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gostim/gostim"
	"github.com/gostim/gostim/geometry"
	"github.com/gostim/gostim/render"
	"github.com/gostim/gostim/scene"
)

type fakeComp struct {
	w, h      uint32
	resizes   int
	released  bool
	resizeErr error
}

func (c *fakeComp) Intermediate() *wgpu.Texture { return nil }
func (c *fakeComp) Size() (uint32, uint32)      { return c.w, c.h }
func (c *fakeComp) Resize(_ *wgpu.Device, w, h uint32) error {
	if c.resizeErr != nil {
		return c.resizeErr
	}
	c.w, c.h = w, h
	c.resizes++
	return nil
}
func (c *fakeComp) Blit(*wgpu.Device, *wgpu.Queue, *wgpu.TextureView) error { return nil }

func (c *fakeComp) Release() { c.released = true }

type fakePresenter struct {
	acquires, renders, blits, presents, releases int
}

func (p *fakePresenter) acquire() (*wgpu.TextureView, error) { p.acquires++; return nil, nil }
func (p *fakePresenter) renderScene(*scene.Scene) error      { p.renders++; return nil }
func (p *fakePresenter) blit(*wgpu.TextureView) error        { p.blits++; return nil }
func (p *fakePresenter) present()                            { p.presents++ }
func (p *fakePresenter) release(*wgpu.TextureView)           { p.releases++ }

type fakeClock struct {
	ts        time.Time
	confirmed bool
	err       error
	waits     int
}

func (c *fakeClock) WaitForPresentComplete(time.Duration) (time.Time, bool, error) {
	c.waits++
	return c.ts, c.confirmed, c.err
}

type fakeStimulus struct {
	id      uuid.UUID
	visible bool
	tf      geometry.Transform2D
	draws   int
	updates int
}

func newFakeStimulus() *fakeStimulus {
	return &fakeStimulus{id: uuid.New(), visible: true, tf: geometry.Identity()}
}

func (s *fakeStimulus) UUID() uuid.UUID                         { return s.id }
func (s *fakeStimulus) Draw(*scene.Scene, *WindowState)         { s.draws++ }
func (s *fakeStimulus) Visible() bool                           { return s.visible }
func (s *fakeStimulus) SetVisible(v bool)                       { s.visible = v }
func (s *fakeStimulus) Transform() geometry.Transform2D         { return s.tf }
func (s *fakeStimulus) SetTransform(t geometry.Transform2D)     { s.tf = t }
func (s *fakeStimulus) AddTransform(t geometry.Transform2D)     { s.tf = t.Mul(s.tf) }
func (s *fakeStimulus) Param(string) (float64, bool)            { return 0, false }
func (s *fakeStimulus) SetParam(string, float64) error          { return nil }
func (s *fakeStimulus) Animations() []Animation                 { return nil }
func (s *fakeStimulus) AddAnimation(Animation)                  {}
func (s *fakeStimulus) UpdateAnimations(time.Time)              { s.updates++ }
func (s *fakeStimulus) Contains(float32, float32, *Window) bool { return false }

func newTestWindow(t *testing.T, clock PresentationClock) (*Window, *fakeComp, *fakePresenter) {
	t.Helper()
	comp := &fakeComp{w: 640, h: 480}
	w, err := New(Config{
		Backend:       render.NewSoftBackend(),
		Compositor:    comp,
		RefreshRateHz: 60,
		Screen:        geometry.NewPhysicalScreen(640, 320, 570),
		Clock:         clock,
	})
	require.NoError(t, err)
	fp := &fakePresenter{}
	w.state.presenter = fp
	return w, comp, fp
}

func TestNewDefaults(t *testing.T) {
	w, _, _ := newTestWindow(t, nil)
	width, height := w.Size()
	assert.Equal(t, uint32(640), width)
	assert.Equal(t, uint32(480), height)
	assert.Equal(t, gostim.Gray, w.Background())
	assert.True(t, w.CursorVisible())
	assert.False(t, w.Closed())
	assert.InDelta(t, 60.0, w.RefreshRateHz(), 1e-9)
}

func TestNewRequiresBackend(t *testing.T) {
	_, err := New(Config{})
	var perr *gostim.ParameterError
	require.ErrorAs(t, err, &perr)
}

func TestNewFrameCarriesWindowBackground(t *testing.T) {
	w, _, _ := newTestWindow(t, nil)
	assert.Equal(t, gostim.Gray, w.NewFrame().Background())

	w.SetBackground(gostim.Black)
	f := w.NewFrame()
	assert.Equal(t, gostim.Black, f.Background())

	f.SetBackground(gostim.White)
	assert.Equal(t, gostim.White, f.Background())
	assert.Equal(t, gostim.Black, w.Background())
}

func TestFrameSkipsInvisibleStimuli(t *testing.T) {
	w, _, _ := newTestWindow(t, nil)
	shown := newFakeStimulus()
	hidden := newFakeStimulus()
	hidden.SetVisible(false)

	f := w.NewFrame()
	f.Add(shown)
	f.Add(hidden)
	f.Add(nil)
	require.Len(t, f.Stimuli(), 2)

	_, err := w.Present(f, PresentOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, shown.draws)
	assert.Equal(t, 0, hidden.draws)
}

func TestHandleResize(t *testing.T) {
	w, comp, _ := newTestWindow(t, nil)

	var got Event
	w.AddEventHandler(EventResized, func(ev Event) { got = ev })

	require.NoError(t, w.HandleResize(1024, 768, time.Now()))
	width, height := w.Size()
	assert.Equal(t, uint32(1024), width)
	assert.Equal(t, uint32(768), height)
	assert.Equal(t, 1, comp.resizes)
	cw, ch := comp.Size()
	assert.Equal(t, uint32(1024), cw)
	assert.Equal(t, uint32(768), ch)
	assert.Equal(t, EventResized, got.Kind)
	assert.Equal(t, float32(1024), got.X)

	// Zero-sized framebuffers (minimized windows) are ignored.
	require.NoError(t, w.HandleResize(0, 0, time.Now()))
	width, _ = w.Size()
	assert.Equal(t, uint32(1024), width)
}

func TestDispatchEventRecordsCursor(t *testing.T) {
	w, _, _ := newTestWindow(t, nil)

	var kinds []EventKind
	w.AddEventHandler(EventCursorMoved, func(ev Event) { kinds = append(kinds, ev.Kind) })
	w.AddEventHandler(EventKeyPress, func(ev Event) { kinds = append(kinds, ev.Kind) })

	w.DispatchEvent(Event{Kind: EventCursorMoved, X: 10, Y: -20})
	x, y := w.MousePosition()
	assert.Equal(t, float32(10), x)
	assert.Equal(t, float32(-20), y)

	w.DispatchEvent(Event{Kind: EventKeyPress})
	assert.Equal(t, []EventKind{EventCursorMoved, EventKeyPress}, kinds)
}

func TestRemoveEventHandler(t *testing.T) {
	w, _, _ := newTestWindow(t, nil)

	calls := 0
	id := w.AddEventHandler(EventKeyPress, func(Event) { calls++ })
	w.DispatchEvent(Event{Kind: EventKeyPress})
	w.RemoveEventHandler(id)
	w.DispatchEvent(Event{Kind: EventKeyPress})
	assert.Equal(t, 1, calls)
}

func TestCloseReleasesAndSticks(t *testing.T) {
	w, comp, _ := newTestWindow(t, nil)
	w.Close()
	assert.True(t, w.Closed())
	assert.True(t, comp.released)
	w.Close() // no-op

	w.DispatchEvent(Event{Kind: EventKeyPress}) // ignored, must not panic
	require.NoError(t, w.HandleResize(800, 600, time.Now()))
	width, _ := w.Size()
	assert.Equal(t, uint32(640), width)
}
