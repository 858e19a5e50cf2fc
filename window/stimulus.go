// Copyright 2026 The gostim Authors
// SPDX-License-Identifier: MIT

package window

import (
	"time"

	"github.com/google/uuid"

	"github.com/gostim/gostim/geometry"
	"github.com/gostim/gostim/scene"
)

// Stimulus is the uniform draw contract the presentation loop calls.
// The loop never inspects stimulus-specific fields: any type satisfying
// this interface can be added to a Frame.
type Stimulus interface {
	// UUID identifies the stimulus across frames.
	UUID() uuid.UUID

	// Draw emits the stimulus's draw commands into the scene, evaluating
	// size parameters against the window state's viewport and calibration.
	Draw(sc *scene.Scene, state *WindowState)

	// Visible reports whether Draw currently emits anything.
	Visible() bool
	SetVisible(v bool)

	// Transform is the stimulus's current transform, applied on top of its
	// own geometry when drawing and inverted for hit tests.
	Transform() geometry.Transform2D
	SetTransform(t geometry.Transform2D)
	// AddTransform composes t onto the current transform.
	AddTransform(t geometry.Transform2D)

	// Param and SetParam access named scalar parameters; animations drive
	// parameters through SetParam.
	Param(name string) (float64, bool)
	SetParam(name string, value float64) error

	// Animations returns the attached animations.
	Animations() []Animation
	AddAnimation(a Animation)
	// UpdateAnimations advances every animation to now, writing the
	// resulting values into parameters.
	UpdateAnimations(now time.Time)

	// Contains reports whether the point (x, y), in the window's
	// center-origin pixel space, hits the stimulus under its current
	// transform.
	Contains(x, y float32, win *Window) bool
}
