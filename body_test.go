package kinetik

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestBodyDerivesMassAndMoment(t *testing.T) {
	b := mustCircleBody(t, 10, mgl64.Vec2{})
	assert.InDelta(t, 314.159265, b.Mass, 1e-4)
	assert.InDelta(t, 0.5*b.Mass*100, b.Moment, 1e-9)
	assert.InDelta(t, 1/b.Mass, b.InvMass(), 1e-12)

	b.Immovable = true
	assert.Equal(t, 0.0, b.InvMass())
}

func TestApplyForce(t *testing.T) {
	b := mustCircleBody(t, 10, mgl64.Vec2{})
	b.ApplyForce(mgl64.Vec2{b.Mass * 100, 0}, 0.5)
	assert.InDelta(t, 50, b.Vel.X(), 1e-9)
	assert.InDelta(t, 0, b.Vel.Y(), 1e-9)
}

func TestApplyTorque(t *testing.T) {
	b := mustCircleBody(t, 10, mgl64.Vec2{})
	b.ApplyTorque(b.Moment*4, 0.25)
	assert.InDelta(t, 1, b.AngularVel, 1e-9)
}

func TestApplyImpulse(t *testing.T) {
	b := mustCircleBody(t, 10, mgl64.Vec2{})
	b.ApplyImpulse(mgl64.Vec2{0, b.Mass * 30})
	assert.InDelta(t, 30, b.Vel.Y(), 1e-9)
}

func TestApplyImpulseAtOffsetSpinsBody(t *testing.T) {
	b := mustCircleBody(t, 10, mgl64.Vec2{})
	// An impulse applied at the body's right edge, pointing up, spins it.
	b.ApplyImpulseAt(mgl64.Vec2{0, b.Moment}, mgl64.Vec2{10, 0})
	assert.InDelta(t, 10, b.AngularVel, 1e-9)
}

func TestImmovableBodyIgnoresForces(t *testing.T) {
	b := NewImmovableBody(Circle{Radius: 10}, mgl64.Vec2{})
	b.ApplyForce(mgl64.Vec2{1000, 0}, 1)
	b.ApplyTorque(1000, 1)
	b.ApplyImpulse(mgl64.Vec2{1000, 0})
	b.ApplyImpulseAt(mgl64.Vec2{1000, 0}, mgl64.Vec2{0, 10})

	assert.Equal(t, mgl64.Vec2{0, 0}, b.Vel)
	assert.Equal(t, 0.0, b.AngularVel)
}

func TestIntegrateWrapsAngle(t *testing.T) {
	b := mustCircleBody(t, 10, mgl64.Vec2{})
	b.Angle = 350
	b.AngularVel = 40
	b.Vel = mgl64.Vec2{10, -20}
	b.integrate(0.5)

	assert.InDelta(t, 10, normalizeDeg(b.Angle), 1e-9)
	assert.InDelta(t, 5, b.Pos.X(), 1e-9)
	assert.InDelta(t, -10, b.Pos.Y(), 1e-9)
}
