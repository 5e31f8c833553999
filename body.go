package kinetik

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Body is a dynamic or static object in the world. Mass and moment of
// inertia are derived from the shape at construction; an immovable body
// has infinite effective mass and is never displaced or given impulse,
// but still transmits impulse to its collision partner.
type Body struct {
	ID    uuid.UUID
	Label string
	Shape Shape

	Pos        mgl64.Vec2
	Angle      float64 // degrees, wraps at 360
	Vel        mgl64.Vec2
	AngularVel float64

	Mass        float64
	Moment      float64
	Restitution float64
	Friction    float64
	Immovable   bool

	Color color.RGBA
}

const (
	defaultRestitution = 0.8
	defaultFriction    = 0.2
)

func NewBody(shape Shape, pos mgl64.Vec2) *Body {
	mass := shapeMass(shape)
	return &Body{
		ID:          uuid.New(),
		Shape:       shape,
		Pos:         pos,
		Mass:        mass,
		Moment:      shapeMoment(shape, mass),
		Restitution: defaultRestitution,
		Friction:    defaultFriction,
		Color:       color.RGBA{R: 255, G: 255, B: 255, A: 255},
	}
}

func NewImmovableBody(shape Shape, pos mgl64.Vec2) *Body {
	b := NewBody(shape, pos)
	b.Immovable = true
	return b
}

// InvMass returns the inverse mass used by the solver; zero for
// immovable bodies so they absorb impulses without responding.
func (b *Body) InvMass() float64 {
	if b.Immovable {
		return 0
	}
	return 1 / b.Mass
}

func (b *Body) ApplyForce(force mgl64.Vec2, dt float64) {
	if b.Immovable {
		return
	}
	b.Vel = b.Vel.Add(force.Mul(dt / b.Mass))
}

func (b *Body) ApplyTorque(torque, dt float64) {
	if b.Immovable {
		return
	}
	b.AngularVel += torque * dt / b.Moment
}

func (b *Body) ApplyImpulse(impulse mgl64.Vec2) {
	if b.Immovable {
		return
	}
	b.Vel = b.Vel.Add(impulse.Mul(1 / b.Mass))
}

// ApplyImpulseAt applies a linear impulse and converts the lever arm at
// the contact point into angular velocity.
func (b *Body) ApplyImpulseAt(impulse mgl64.Vec2, contact mgl64.Vec2) {
	if b.Immovable {
		return
	}
	b.Vel = b.Vel.Add(impulse.Mul(1 / b.Mass))
	r := contact.Sub(b.Pos)
	torque := r.X()*impulse.Y() - r.Y()*impulse.X()
	b.AngularVel += torque / b.Moment
}

// integrate advances position and orientation by one tick.
func (b *Body) integrate(dt float64) {
	b.Pos = b.Pos.Add(b.Vel.Mul(dt))
	b.Angle = normalizeDeg(b.Angle + b.AngularVel*dt)
}

// ring returns the ring shape if this body carries one.
func (b *Body) ring() (*Ring, bool) {
	r, ok := b.Shape.(*Ring)
	return r, ok
}
