// Package stimuli provides concrete stimulus types: patterned
// rectangles, decoded images, and advance-layout text. All of them draw
// through the uniform contract the presentation loop expects, keep their
// length parameters in physical units until draw time, and animate named
// scalar parameters.
package stimuli

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gostim/gostim"
	"github.com/gostim/gostim/geometry"
	"github.com/gostim/gostim/window"
)

// base carries the parts of the stimulus contract every concrete type
// shares: identity, visibility, the transform, the named parameter set
// and the attached animations. Concrete stimuli embed it and add Draw
// and Contains.
type base struct {
	id uuid.UUID

	mu      sync.Mutex
	visible bool
	tf      geometry.Transform2D
	params  map[string]float64
	anims   []window.Animation
}

// newBase seeds the parameter set; SetParam rejects names not present
// at construction.
func newBase(params map[string]float64) base {
	p := make(map[string]float64, len(params))
	for k, v := range params {
		p[k] = v
	}
	return base{
		id:      uuid.New(),
		visible: true,
		tf:      geometry.Identity(),
		params:  p,
	}
}

func (b *base) UUID() uuid.UUID { return b.id }

func (b *base) Visible() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.visible
}

func (b *base) SetVisible(v bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.visible = v
}

func (b *base) Transform() geometry.Transform2D {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tf
}

func (b *base) SetTransform(t geometry.Transform2D) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tf = t
}

// AddTransform composes t onto the current transform, applying t first.
func (b *base) AddTransform(t geometry.Transform2D) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tf = b.tf.Mul(t)
}

func (b *base) Param(name string) (float64, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.params[name]
	return v, ok
}

func (b *base) SetParam(name string, value float64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.params[name]; !ok {
		return &gostim.ParameterError{
			Op:  "SetParam",
			Msg: fmt.Sprintf("unknown parameter %q", name),
		}
	}
	b.params[name] = value
	return nil
}

func (b *base) Animations() []window.Animation {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]window.Animation(nil), b.anims...)
}

func (b *base) AddAnimation(a window.Animation) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.anims = append(b.anims, a)
}

// UpdateAnimations writes each animation's value at now into its target
// parameter. Animations naming an unknown parameter are skipped.
func (b *base) UpdateAnimations(now time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, a := range b.anims {
		if _, ok := b.params[a.Param]; !ok {
			continue
		}
		b.params[a.Param] = a.Value(now)
	}
}

// param reads a parameter without reporting absence; missing names
// return zero.
func (b *base) param(name string) float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.params[name]
}

// snapshot returns the transform and a parameter copy in one lock
// acquisition, so Draw sees a consistent view.
func (b *base) snapshot() (geometry.Transform2D, map[string]float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p := make(map[string]float64, len(b.params))
	for k, v := range b.params {
		p[k] = v
	}
	return b.tf, p
}
