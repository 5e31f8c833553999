package kinetik

import (
	"github.com/google/uuid"
)

// RingState is the ring lifecycle. Transitions only ever move forward:
// circle -> arc -> disappearing -> gone.
type RingState int

const (
	// RingCircle is a dormant, gapless, fully solid ring.
	RingCircle RingState = iota
	// RingArc is an active ring whose gap rotates and admits escapes.
	RingArc
	// RingDisappearing is a non-collidable ring burning down its countdown.
	RingDisappearing
	// RingGone is terminal; the ring is excluded from everything.
	RingGone
)

func (s RingState) String() string {
	switch s {
	case RingCircle:
		return "circle"
	case RingArc:
		return "arc"
	case RingDisappearing:
		return "disappearing"
	case RingGone:
		return "gone"
	}
	return "unknown"
}

const (
	// ringDisappearDuration is the countdown, in time units, between
	// TriggerDisappear and the ring being gone.
	ringDisappearDuration = 1.0
	// ringFragmentRate controls the stochastic debris emission while a
	// ring disappears: a fragment spawns when rand < rate*dt.
	ringFragmentRate = 20.0
)

func (r *Ring) State() RingState { return r.state }

// Activate turns a dormant full circle into a rotating arc. Calls from
// any other state are ignored.
func (r *Ring) Activate() bool {
	if r.state != RingCircle {
		return false
	}
	r.state = RingArc
	r.justActivated = true
	return true
}

// TriggerDisappear starts the disappearance countdown. Only an active
// arc can disappear; repeated calls are ignored.
func (r *Ring) TriggerDisappear() bool {
	if r.state != RingArc {
		return false
	}
	r.state = RingDisappearing
	r.disappearTimer = ringDisappearDuration
	return true
}

// IsInGap reports whether the given world angle (degrees) falls inside
// the ring's gap sector. The sector is half-open: [start, start+gap).
// Only an active arc with a nonzero gap has a gap at all.
func (r *Ring) IsInGap(angleDeg float64) bool {
	if r.state != RingArc || r.GapAngle <= 0 {
		return false
	}
	a := normalizeDeg(angleDeg)
	start := r.gapStart
	end := normalizeDeg(start + r.GapAngle)
	if start < end {
		return a >= start && a < end
	}
	// Sector wraps past 360.
	return a >= start || a < end
}

// Opacity is the render alpha for the ring: 1 while solid, fading
// linearly to 0 through the disappearance countdown.
func (r *Ring) Opacity() float64 {
	switch r.state {
	case RingDisappearing:
		return clamp(r.disappearTimer/ringDisappearDuration, 0, 1)
	case RingGone:
		return 0
	}
	return 1
}

// RingModule drives gap rotation, escape detection and the
// disappearance lifecycle.
type RingModule struct {
}

func (mod RingModule) Install(app *App, cmd *Commands) {
	cmd.UseSystem(System(ringSpinSystem).InStage(PreUpdate))
	cmd.UseSystem(System(ringEscapeSystem).InStage(PostUpdate))
	cmd.UseSystem(System(ringLifecycleSystem).InStage(PostUpdate))
}

// ringSpinSystem rotates the gap of every active arc.
func ringSpinSystem(w *World, tm *Time) {
	for _, b := range w.rings {
		ring, _ := b.ring()
		if ring.state == RingArc {
			ring.gapStart = normalizeDeg(ring.gapStart + ring.RotationSpeed*tm.Dt)
		}
	}
}

// ringEscapeSystem detects bodies that fully exited an active ring
// through its gap: center inside the gap sector and beyond the outer
// radius. The escape retires the ring.
func ringEscapeSystem(w *World, events *EventBuffer) {
	for _, rb := range w.rings {
		ring, _ := rb.ring()
		if ring.state != RingArc {
			continue
		}
		for _, b := range w.bodies {
			if b == rb || b.Immovable {
				continue
			}
			if _, isRing := b.ring(); isRing {
				continue
			}
			rel := b.Pos.Sub(rb.Pos)
			if rel.Len() <= ring.OuterRadius {
				continue
			}
			if !ring.IsInGap(angleDegOf(rel)) {
				continue
			}
			events.push(CollisionEvent{
				BodyA:         b.ID,
				BodyB:         rb.ID,
				Contact:       rb.Pos.Add(safeDir(rel).Mul(ring.OuterRadius)),
				Normal:        safeDir(rel),
				RelativeSpeed: b.Vel.Sub(rb.Vel).Len(),
				Kind:          EventRingPassThrough,
			})
			ring.TriggerDisappear()
			break
		}
	}
}

// ringLifecycleSystem emits activation events, runs disappearance
// countdowns with debris emission, and finalizes gone rings. A finished
// ring optionally hands activation to the next dormant ring.
func ringLifecycleSystem(w *World, tm *Time, events *EventBuffer) {
	for _, rb := range w.rings {
		ring, _ := rb.ring()

		if ring.justActivated {
			ring.justActivated = false
			events.push(CollisionEvent{BodyA: rb.ID, BodyB: uuid.Nil, Kind: EventRingActivated})
		}

		if ring.state != RingDisappearing {
			continue
		}

		if w.rng.Float64() < ringFragmentRate*tm.Dt {
			ring.pool.spawnRingFragment(w.rng, rb.Pos, ring.InnerRadius(), ring.OuterRadius, rb.Color)
		}

		ring.disappearTimer -= tm.Dt
		if ring.disappearTimer > 0 {
			continue
		}
		ring.state = RingGone
		events.push(CollisionEvent{BodyA: rb.ID, BodyB: uuid.Nil, Kind: EventRingVanished})

		if w.ChainActivation {
			activateNextRing(w)
		}
	}
}

// activateNextRing activates the first dormant ring in creation order.
func activateNextRing(w *World) {
	for _, rb := range w.rings {
		ring, _ := rb.ring()
		if ring.state == RingCircle {
			ring.Activate()
			return
		}
	}
}
