package kinetik

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// EventKind distinguishes what a CollisionEvent describes.
type EventKind int

const (
	// EventBounce is an ordinary collision between two non-ring bodies.
	EventBounce EventKind = iota
	// EventRingBreach is a body hitting a ring's inner or outer boundary.
	EventRingBreach
	// EventRingPassThrough is a body fully escaping through a ring's gap.
	EventRingPassThrough
	// EventRingActivated is a ring transitioning from full circle to arc.
	EventRingActivated
	// EventRingVanished is a ring's disappearance countdown expiring.
	EventRingVanished
)

func (k EventKind) String() string {
	switch k {
	case EventBounce:
		return "bounce"
	case EventRingBreach:
		return "ring-breach"
	case EventRingPassThrough:
		return "ring-pass-through"
	case EventRingActivated:
		return "ring-activated"
	case EventRingVanished:
		return "ring-vanished"
	}
	return "unknown"
}

// CollisionEvent is what Step hands to external consumers (renderer,
// audio mapper). Bodies are referenced by ID, never by pointer.
type CollisionEvent struct {
	BodyA         uuid.UUID
	BodyB         uuid.UUID
	Contact       mgl64.Vec2
	Normal        mgl64.Vec2
	RelativeSpeed float64
	Kind          EventKind
}

// EventBuffer collects events during a step; drained by App.Step.
type EventBuffer struct {
	events []CollisionEvent
}

func (eb *EventBuffer) push(e CollisionEvent) {
	eb.events = append(eb.events, e)
}

func (eb *EventBuffer) drain() []CollisionEvent {
	out := eb.events
	eb.events = nil
	return out
}
