package kinetik

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// canonicalPair orders a collision pair for the narrow-phase tests:
// ring before circle before rect. Returns whether the pair was swapped,
// so callers can flip the normal back into their own frame.
func canonicalPair(a, b *Body) (*Body, *Body, bool) {
	if shapeRank(a.Shape) <= shapeRank(b.Shape) {
		return a, b, false
	}
	return b, a, true
}

func shapeRank(s Shape) int {
	switch s.(type) {
	case *Ring:
		return 0
	case Circle:
		return 1
	}
	return 2
}

// Collide reports whether the two bodies are in contact. Symmetric.
// Ring pairs and rect pairs are unsupported and never collide; a ring
// that is disappearing or gone is intangible, and a body traversing an
// active ring's gap sector passes through freely.
func Collide(a, b *Body) bool {
	ca, cb, _ := canonicalPair(a, b)
	return collideCanonical(ca, cb)
}

func collideCanonical(a, b *Body) bool {
	switch sh := a.Shape.(type) {
	case *Ring:
		if _, isRing := b.Shape.(*Ring); isRing {
			return false
		}
		if sh.state == RingDisappearing || sh.state == RingGone {
			return false
		}
		rel := b.Pos.Sub(a.Pos)
		dist := rel.Len()
		// The gap removes ring material at those angles entirely, so a
		// body whose center sits in the gap sector touches nothing.
		if sh.IsInGap(angleDegOf(rel)) {
			return false
		}
		rEff := b.Pos.Sub(ClosestPointOnSurface(b, a.Pos)).Len()
		return math.Abs(dist-ringBreachedRadius(sh, dist)) <= rEff
	case Circle:
		if c, ok := b.Shape.(Circle); ok {
			return a.Pos.Sub(b.Pos).Len() <= sh.Radius+c.Radius
		}
		// circle vs rect
		return a.Pos.Sub(ClosestPointOnSurface(b, a.Pos)).Len() <= sh.Radius
	}
	// rect vs rect is out of scope
	return false
}

// ringBreachedRadius picks the boundary the body is pressing against:
// the inner circle when it sits in the inner half of the annulus band,
// the outer circle otherwise.
func ringBreachedRadius(r *Ring, dist float64) float64 {
	if dist < (r.InnerRadius()+r.OuterRadius)/2 {
		return r.InnerRadius()
	}
	return r.OuterRadius
}

// CollisionNormal returns the unit direction along which a is pushed to
// separate the pair. Meaningful only when Collide(a, b) holds.
func CollisionNormal(a, b *Body) mgl64.Vec2 {
	ca, cb, swapped := canonicalPair(a, b)
	n := collisionNormalCanonical(ca, cb)
	if swapped {
		return n.Mul(-1)
	}
	return n
}

func collisionNormalCanonical(a, b *Body) mgl64.Vec2 {
	if sh, ok := a.Shape.(*Ring); ok {
		rel := b.Pos.Sub(a.Pos)
		radial := safeDir(rel)
		// A body inside the breached boundary pushes the ring outward
		// along the radial; outside, the push reverses.
		if rel.Len() < ringBreachedRadius(sh, rel.Len()) {
			return radial
		}
		return radial.Mul(-1)
	}
	return safeDir(a.Pos.Sub(ClosestPointOnSurface(b, a.Pos)))
}

// CollisionDepth returns the penetration depth of the pair, measured
// against the breached boundary. Symmetric.
func CollisionDepth(a, b *Body) float64 {
	ca, cb, _ := canonicalPair(a, b)
	return collisionDepthCanonical(ca, cb)
}

func collisionDepthCanonical(a, b *Body) float64 {
	if sh, ok := a.Shape.(*Ring); ok {
		dist := b.Pos.Sub(a.Pos).Len()
		rEff := b.Pos.Sub(ClosestPointOnSurface(b, a.Pos)).Len()
		return rEff - math.Abs(dist-ringBreachedRadius(sh, dist))
	}
	if sh, ok := a.Shape.(Circle); ok {
		return sh.Radius - a.Pos.Sub(ClosestPointOnSurface(b, a.Pos)).Len()
	}
	return 0
}

// contactInfo is a resolved narrow-phase result in canonical order.
type contactInfo struct {
	a, b    *Body
	contact mgl64.Vec2
	normal  mgl64.Vec2 // pushes a
	depth   float64
}

func computeContact(a, b *Body) (contactInfo, bool) {
	ca, cb, _ := canonicalPair(a, b)
	if !collideCanonical(ca, cb) {
		return contactInfo{}, false
	}
	return contactInfo{
		a:       ca,
		b:       cb,
		contact: ClosestPointOnSurface(ca, cb.Pos),
		normal:  collisionNormalCanonical(ca, cb),
		depth:   collisionDepthCanonical(ca, cb),
	}, true
}

// applyResponse runs the response on a contact: positional correction
// of the overlap beyond the slop, then the restitution impulse split by
// inverse mass with torque from the contact offset. A pair already
// separating gets the correction but no impulse and reports false.
func applyResponse(ci contactInfo, slop, percent float64) bool {
	invA, invB := ci.a.InvMass(), ci.b.InvMass()
	total := invA + invB

	corr := math.Max(ci.depth-slop, 0) * percent
	if corr > 0 {
		ci.a.Pos = ci.a.Pos.Add(ci.normal.Mul(corr * invA / total))
		ci.b.Pos = ci.b.Pos.Sub(ci.normal.Mul(corr * invB / total))
	}

	relVel := ci.a.Vel.Sub(ci.b.Vel)
	vn := relVel.Dot(ci.normal)
	if vn > 0 {
		return false
	}

	e := math.Min(ci.a.Restitution, ci.b.Restitution)
	j := -(1 + e) * vn / total
	impulse := ci.normal.Mul(j)
	ci.a.ApplyImpulseAt(impulse, ci.contact)
	ci.b.ApplyImpulseAt(impulse.Mul(-1), ci.contact)
	return true
}

// ResolveCollision tests the pair and, on contact with approaching
// velocity, applies the restitution impulse. Returns whether a
// collision was resolved. Two immovable bodies never resolve.
func ResolveCollision(a, b *Body) bool {
	if a.Immovable && b.Immovable {
		return false
	}
	ci, ok := computeContact(a, b)
	if !ok {
		return false
	}
	return applyResponse(ci, defaultSlop, defaultCorrectionPercent)
}

// PhysicsModule installs gravity integration and the collision solve.
type PhysicsModule struct {
}

func (mod PhysicsModule) Install(app *App, cmd *Commands) {
	cmd.UseSystem(System(integrateSystem).InStage(Update))
	cmd.UseSystem(System(collisionSystem).InStage(Update))
}

func integrateSystem(w *World, tm *Time) {
	for _, b := range w.bodies {
		if b.Immovable {
			continue
		}
		b.ApplyForce(w.Gravity.Mul(b.Mass), tm.Dt)
		b.integrate(tm.Dt)
	}
}

// collisionSystem walks every pair in stable body order, resolves
// contacts and emits one event (plus an impact burst) per resolution.
func collisionSystem(w *World, events *EventBuffer) {
	bodies := w.bodies
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			a, b := bodies[i], bodies[j]
			if a.Immovable && b.Immovable {
				continue
			}
			ci, ok := computeContact(a, b)
			if !ok {
				continue
			}
			relSpeed := ci.a.Vel.Sub(ci.b.Vel).Len()
			if !applyResponse(ci, w.Slop, w.CorrectionPercent) {
				continue
			}

			kind := EventBounce
			if _, isRing := ci.a.Shape.(*Ring); isRing {
				kind = EventRingBreach
			}
			events.push(CollisionEvent{
				BodyA:         ci.a.ID,
				BodyB:         ci.b.ID,
				Contact:       ci.contact,
				Normal:        ci.normal,
				RelativeSpeed: relSpeed,
				Kind:          kind,
			})

			// Sparks fly in the direction the non-ring body got pushed.
			burstNormal := ci.normal
			burstColor := ci.a.Color
			if kind == EventRingBreach {
				burstNormal = ci.normal.Mul(-1)
				burstColor = ci.b.Color
			}
			w.impacts.spawnImpactBurst(w.rng, ci.contact, burstNormal, relSpeed, burstColor)
		}
	}
}
