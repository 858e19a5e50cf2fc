// Copyright 2026 The gostim Authors
// SPDX-License-Identifier: MIT

package window

import (
	"time"

	"github.com/google/uuid"
)

// EventKind discriminates window events.
type EventKind uint8

const (
	// EventOnset fires once a presented frame is believed visible.
	EventOnset EventKind = iota
	EventKeyPress
	EventKeyRelease
	EventCursorMoved
	EventMouseButtonPress
	EventMouseButtonRelease
	EventResized
	EventCloseRequested
)

// Event is one input or lifecycle occurrence on a window.
// X and Y are in center-origin pixel coordinates where that applies.
type Event struct {
	Kind      EventKind
	Timestamp time.Time
	// Key is the platform key code for key events.
	Key int
	// Button is the mouse button index for button events.
	Button int
	X, Y   float32
}

// EventHandler receives dispatched events.
type EventHandler func(Event)

// handlerRegistry maps random handler ids to kind-filtered handlers.
// Access is guarded by the owning window's state lock.
type handlerRegistry struct {
	handlers map[uuid.UUID]registeredHandler
}

type registeredHandler struct {
	kind EventKind
	fn   EventHandler
}

func newHandlerRegistry() *handlerRegistry {
	return &handlerRegistry{handlers: make(map[uuid.UUID]registeredHandler)}
}

func (r *handlerRegistry) add(kind EventKind, fn EventHandler) uuid.UUID {
	id := uuid.New()
	r.handlers[id] = registeredHandler{kind: kind, fn: fn}
	return id
}

func (r *handlerRegistry) remove(id uuid.UUID) {
	delete(r.handlers, id)
}

func (r *handlerRegistry) dispatch(ev Event) {
	for _, h := range r.handlers {
		if h.kind == ev.Kind {
			h.fn(ev)
		}
	}
}
