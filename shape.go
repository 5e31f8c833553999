package kinetik

import (
	"fmt"
	"math"
)

// Shape is the closed set of geometric variants a Body can carry.
// The geometry queries in geom.go dispatch on the concrete type;
// adding a variant means extending every switch there.
type Shape interface {
	shapeKind() ShapeKind
}

type ShapeKind int

const (
	KindCircle ShapeKind = iota
	KindRect
	KindRing
)

func (k ShapeKind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindRect:
		return "rect"
	case KindRing:
		return "ring"
	}
	return "unknown"
}

type Circle struct {
	Radius float64
}

func (Circle) shapeKind() ShapeKind { return KindCircle }

func NewCircle(radius float64) (Circle, error) {
	if radius <= 0 {
		return Circle{}, fmt.Errorf("circle radius must be positive, got %v", radius)
	}
	return Circle{Radius: radius}, nil
}

// Rect is an oriented rectangle; the owning body's Angle rotates it.
// Rect/rect collision is not supported and always reports no contact.
type Rect struct {
	Width  float64
	Height float64
}

func (Rect) shapeKind() ShapeKind { return KindRect }

func NewRect(width, height float64) (Rect, error) {
	if width <= 0 || height <= 0 {
		return Rect{}, fmt.Errorf("rect dimensions must be positive, got %vx%v", width, height)
	}
	return Rect{Width: width, Height: height}, nil
}

// Ring is an annulus obstacle with an optional rotating angular gap and a
// lifecycle (full circle -> rotating arc -> disappearing -> gone).
// Mutable per-instance state means rings are always used by pointer.
type Ring struct {
	OuterRadius   float64
	Thickness     float64
	GapAngle      float64 // degrees, [0, 360)
	RotationSpeed float64 // degrees per time unit while in RingArc

	gapStart       float64
	state          RingState
	disappearTimer float64
	justActivated  bool

	// Cosmetic particles owned by this ring; never touch body state.
	pool *particlePool
}

func (*Ring) shapeKind() ShapeKind { return KindRing }

func NewRing(outerRadius, thickness, gapAngle, gapStart, rotationSpeed float64) (*Ring, error) {
	if outerRadius <= 0 {
		return nil, fmt.Errorf("ring outer radius must be positive, got %v", outerRadius)
	}
	if thickness <= 0 {
		return nil, fmt.Errorf("ring thickness must be positive, got %v", thickness)
	}
	if thickness >= outerRadius {
		return nil, fmt.Errorf("ring thickness %v must be smaller than outer radius %v", thickness, outerRadius)
	}
	if gapAngle < 0 || gapAngle >= 360 {
		return nil, fmt.Errorf("ring gap angle must be in [0, 360), got %v", gapAngle)
	}
	return &Ring{
		OuterRadius:    outerRadius,
		Thickness:      thickness,
		GapAngle:       gapAngle,
		RotationSpeed:  rotationSpeed,
		gapStart:       normalizeDeg(gapStart),
		state:          RingCircle,
		disappearTimer: ringDisappearDuration,
		pool:           newParticlePool(ringParticleCapacity),
	}, nil
}

// InnerRadius is derived so the inner/outer invariant can never drift
// when OuterRadius or Thickness change.
func (r *Ring) InnerRadius() float64 { return r.OuterRadius - r.Thickness }

func (r *Ring) GapStart() float64 { return r.gapStart }

// Particles returns a render snapshot of the ring's cosmetic particles.
func (r *Ring) Particles() []ParticleInstance { return r.pool.instances() }

// shapeMass returns the reference mass for a shape (density 1).
func shapeMass(s Shape) float64 {
	switch sh := s.(type) {
	case Circle:
		return math.Pi * sh.Radius * sh.Radius
	case Rect:
		return sh.Width * sh.Height
	case *Ring:
		inner := sh.InnerRadius()
		return math.Pi * (sh.OuterRadius*sh.OuterRadius - inner*inner)
	}
	return 1
}

// shapeMoment returns the moment of inertia for the given mass.
func shapeMoment(s Shape, mass float64) float64 {
	switch sh := s.(type) {
	case Circle:
		return 0.5 * mass * sh.Radius * sh.Radius
	case Rect:
		return (1.0 / 12.0) * mass * (sh.Width*sh.Width + sh.Height*sh.Height)
	case *Ring:
		inner := sh.InnerRadius()
		return 0.5 * mass * (sh.OuterRadius*sh.OuterRadius + inner*inner)
	}
	return 1
}
