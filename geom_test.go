package kinetik

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func mustCircleBody(t *testing.T, radius float64, pos mgl64.Vec2) *Body {
	t.Helper()
	c, err := NewCircle(radius)
	require.NoError(t, err)
	return NewBody(c, pos)
}

func mustRectBody(t *testing.T, w, h float64, pos mgl64.Vec2) *Body {
	t.Helper()
	r, err := NewRect(w, h)
	require.NoError(t, err)
	return NewBody(r, pos)
}

func mustRingBody(t *testing.T, outer, thickness, gapAngle, gapStart, speed float64, pos mgl64.Vec2) *Body {
	t.Helper()
	ring, err := NewRing(outer, thickness, gapAngle, gapStart, speed)
	require.NoError(t, err)
	return NewImmovableBody(ring, pos)
}

func TestNormalizeDeg(t *testing.T) {
	assert.InDelta(t, 0.0, normalizeDeg(360), eps)
	assert.InDelta(t, 350.0, normalizeDeg(-10), eps)
	assert.InDelta(t, 45.0, normalizeDeg(405), eps)
	assert.InDelta(t, 0.0, normalizeDeg(0), eps)
}

func TestSafeDirDegenerate(t *testing.T) {
	d := safeDir(mgl64.Vec2{0, 0})
	assert.Equal(t, mgl64.Vec2{1, 0}, d)
}

func TestContains(t *testing.T) {
	circle := mustCircleBody(t, 10, mgl64.Vec2{5, 5})
	assert.True(t, Contains(circle, mgl64.Vec2{10, 5}))
	assert.False(t, Contains(circle, mgl64.Vec2{20, 5}))

	rect := mustRectBody(t, 20, 10, mgl64.Vec2{0, 0})
	assert.True(t, Contains(rect, mgl64.Vec2{9, 4}))
	assert.False(t, Contains(rect, mgl64.Vec2{9, 6}))

	// A rotated rect admits points the axis-aligned one would not.
	rect.Angle = 90
	assert.True(t, Contains(rect, mgl64.Vec2{4, 9}))
	assert.False(t, Contains(rect, mgl64.Vec2{9, 4}))

	ring := mustRingBody(t, 100, 20, 0, 0, 0, mgl64.Vec2{0, 0})
	assert.True(t, Contains(ring, mgl64.Vec2{90, 0}))
	assert.False(t, Contains(ring, mgl64.Vec2{50, 0}))
	assert.False(t, Contains(ring, mgl64.Vec2{110, 0}))
}

func TestClosestPointOnSurface(t *testing.T) {
	circle := mustCircleBody(t, 10, mgl64.Vec2{0, 0})
	p := ClosestPointOnSurface(circle, mgl64.Vec2{20, 0})
	assert.InDelta(t, 10, p.X(), eps)
	assert.InDelta(t, 0, p.Y(), eps)

	// Query from the exact center falls back to (1,0).
	p = ClosestPointOnSurface(circle, mgl64.Vec2{0, 0})
	assert.InDelta(t, 10, p.X(), eps)

	rect := mustRectBody(t, 20, 10, mgl64.Vec2{0, 0})
	p = ClosestPointOnSurface(rect, mgl64.Vec2{30, 0})
	assert.InDelta(t, 10, p.X(), eps)
	assert.InDelta(t, 0, p.Y(), eps)

	// Inside the rect the query snaps to the nearest edge.
	p = ClosestPointOnSurface(rect, mgl64.Vec2{9, 0})
	assert.InDelta(t, 10, p.X(), eps)
	assert.InDelta(t, 0, p.Y(), eps)

	ring := mustRingBody(t, 100, 20, 0, 0, 0, mgl64.Vec2{0, 0})
	p = ClosestPointOnSurface(ring, mgl64.Vec2{85, 0})
	assert.InDelta(t, 80, p.X(), eps)
	p = ClosestPointOnSurface(ring, mgl64.Vec2{95, 0})
	assert.InDelta(t, 100, p.X(), eps)
}

func TestNormalAtPoint(t *testing.T) {
	circle := mustCircleBody(t, 10, mgl64.Vec2{0, 0})
	n := NormalAtPoint(circle, mgl64.Vec2{10, 0})
	assert.InDelta(t, 1, n.X(), eps)
	assert.InDelta(t, 0, n.Y(), eps)

	ring := mustRingBody(t, 100, 20, 0, 0, 0, mgl64.Vec2{0, 0})
	// Inner boundary normal points toward the ring center.
	n = NormalAtPoint(ring, mgl64.Vec2{80, 0})
	assert.InDelta(t, -1, n.X(), eps)
	n = NormalAtPoint(ring, mgl64.Vec2{100, 0})
	assert.InDelta(t, 1, n.X(), eps)

	rect := mustRectBody(t, 20, 10, mgl64.Vec2{0, 0})
	n = NormalAtPoint(rect, mgl64.Vec2{10, 2})
	assert.InDelta(t, 1, n.X(), eps)
	n = NormalAtPoint(rect, mgl64.Vec2{3, -5})
	assert.InDelta(t, -1, n.Y(), eps)
}

func TestDistanceToPoint(t *testing.T) {
	circle := mustCircleBody(t, 10, mgl64.Vec2{0, 0})
	assert.InDelta(t, 5, DistanceToPoint(circle, mgl64.Vec2{15, 0}), eps)
	assert.InDelta(t, -5, DistanceToPoint(circle, mgl64.Vec2{5, 0}), eps)

	ring := mustRingBody(t, 100, 20, 0, 0, 0, mgl64.Vec2{0, 0})
	assert.InDelta(t, 10, DistanceToPoint(ring, mgl64.Vec2{70, 0}), eps)
	assert.InDelta(t, -5, DistanceToPoint(ring, mgl64.Vec2{85, 0}), eps)
	assert.InDelta(t, 7, DistanceToPoint(ring, mgl64.Vec2{107, 0}), eps)

	rect := mustRectBody(t, 20, 10, mgl64.Vec2{0, 0})
	assert.InDelta(t, 5, DistanceToPoint(rect, mgl64.Vec2{15, 0}), eps)
	assert.InDelta(t, -1, DistanceToPoint(rect, mgl64.Vec2{9, 0}), eps)
}

func TestPointAtNormal(t *testing.T) {
	circle := mustCircleBody(t, 10, mgl64.Vec2{0, 0})
	p := PointAtNormal(circle, mgl64.Vec2{0, 3})
	assert.InDelta(t, 0, p.X(), eps)
	assert.InDelta(t, 10, p.Y(), eps)

	rect := mustRectBody(t, 20, 10, mgl64.Vec2{0, 0})
	p = PointAtNormal(rect, mgl64.Vec2{1, 0})
	assert.InDelta(t, 10, p.X(), eps)
	p = PointAtNormal(rect, mgl64.Vec2{0, -1})
	assert.InDelta(t, -5, p.Y(), eps)

	ring := mustRingBody(t, 100, 20, 0, 0, 0, mgl64.Vec2{0, 0})
	p = PointAtNormal(ring, mgl64.Vec2{1, 0})
	assert.InDelta(t, 100, p.X(), eps)
}

// parallel reports whether two unit vectors point the same way.
func parallel(a, b mgl64.Vec2) bool {
	cross := a.X()*b.Y() - a.Y()*b.X()
	return math.Abs(cross) < 1e-6 && a.Dot(b) > 0
}

func TestNormalRoundTripCircle(t *testing.T) {
	circle := mustCircleBody(t, 25, mgl64.Vec2{3, -7})
	for _, deg := range []float64{0, 30, 117, 245, 359} {
		rad := deg * math.Pi / 180
		n := mgl64.Vec2{math.Cos(rad), math.Sin(rad)}
		back := NormalAtPoint(circle, PointAtNormal(circle, n))
		assert.True(t, parallel(n, back), "circle normal %v came back as %v", n, back)
	}
}

func TestNormalRoundTripRect(t *testing.T) {
	for _, angle := range []float64{0, 30} {
		rect := mustRectBody(t, 20, 10, mgl64.Vec2{3, -7})
		rect.Angle = angle
		// Edge normals of the (possibly rotated) rect; each must round-trip.
		for _, local := range []mgl64.Vec2{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			n := localToWorldDir(rect, local)
			back := NormalAtPoint(rect, PointAtNormal(rect, n))
			assert.True(t, parallel(n, back), "rect(%v°) normal %v came back as %v", angle, n, back)
		}
	}
}

// Closest-point results must sit on the shape boundary: the signed
// distance of the returned point is zero within tolerance, for points
// sampled inside, outside and at the center of every shape.
func TestClosestPointLiesOnBoundary(t *testing.T) {
	bodies := []*Body{
		mustCircleBody(t, 25, mgl64.Vec2{3, -7}),
		mustRectBody(t, 40, 16, mgl64.Vec2{-5, 12}),
		mustRingBody(t, 100, 20, 0, 0, 0, mgl64.Vec2{8, 8}),
	}
	bodies[1].Angle = 30

	for _, b := range bodies {
		for _, frac := range []float64{0, 0.3, 0.9, 1.1, 2.5} {
			for deg := 0.0; deg < 360; deg += 40 {
				rad := deg * math.Pi / 180
				p := b.Pos.Add(mgl64.Vec2{math.Cos(rad), math.Sin(rad)}.Mul(frac * 120))
				cp := ClosestPointOnSurface(b, p)
				d := DistanceToPoint(b, cp)
				assert.InDelta(t, 0, d, 1e-6,
					"%s closest point %v of %v is off the boundary by %v",
					b.Shape.shapeKind(), cp, p, d)
			}
		}
	}
}
