package kinetik

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const geomEpsilon = 1e-6

// fallbackDir is the documented degenerate-case policy: queries from a
// point exactly at a circle or ring center use this direction.
var fallbackDir = mgl64.Vec2{1, 0}

func normalizeDeg(a float64) float64 {
	m := math.Mod(a, 360)
	if m < 0 {
		m += 360
	}
	return m
}

// angleDegOf returns the angle of v in degrees, normalized to [0, 360).
func angleDegOf(v mgl64.Vec2) float64 {
	return normalizeDeg(math.Atan2(v.Y(), v.X()) * 180 / math.Pi)
}

// safeDir normalizes v, falling back to (1,0) for near-zero vectors.
func safeDir(v mgl64.Vec2) mgl64.Vec2 {
	l := v.Len()
	if l < geomEpsilon {
		return fallbackDir
	}
	return v.Mul(1 / l)
}

func worldToLocal(b *Body, p mgl64.Vec2) mgl64.Vec2 {
	rot := mgl64.Rotate2D(-b.Angle * math.Pi / 180)
	return rot.Mul2x1(p.Sub(b.Pos))
}

func localToWorld(b *Body, p mgl64.Vec2) mgl64.Vec2 {
	rot := mgl64.Rotate2D(b.Angle * math.Pi / 180)
	return rot.Mul2x1(p).Add(b.Pos)
}

func worldToLocalDir(b *Body, d mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Rotate2D(-b.Angle * math.Pi / 180).Mul2x1(d)
}

func localToWorldDir(b *Body, d mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Rotate2D(b.Angle * math.Pi / 180).Mul2x1(d)
}

// Contains reports whether p lies inside the body's shape. For a ring
// the occupied region is the annulus between inner and outer radius;
// the gap sector is ignored here (it only affects collision tests).
func Contains(b *Body, p mgl64.Vec2) bool {
	switch sh := b.Shape.(type) {
	case Circle:
		return p.Sub(b.Pos).Len() <= sh.Radius
	case Rect:
		lp := worldToLocal(b, p)
		return math.Abs(lp.X()) <= sh.Width/2 && math.Abs(lp.Y()) <= sh.Height/2
	case *Ring:
		d := p.Sub(b.Pos).Len()
		return d >= sh.InnerRadius() && d <= sh.OuterRadius
	}
	return false
}

// ClosestPointOnSurface returns the nearest point on the shape's boundary
// to p. A point at a circle or ring center projects along (1,0).
func ClosestPointOnSurface(b *Body, p mgl64.Vec2) mgl64.Vec2 {
	switch sh := b.Shape.(type) {
	case Circle:
		return b.Pos.Add(safeDir(p.Sub(b.Pos)).Mul(sh.Radius))
	case Rect:
		return localToWorld(b, rectClosestLocal(sh, worldToLocal(b, p)))
	case *Ring:
		dir := p.Sub(b.Pos)
		dist := dir.Len()
		n := safeDir(dir)
		// Project onto whichever boundary circle is nearer.
		if dist < (sh.InnerRadius()+sh.OuterRadius)/2 {
			return b.Pos.Add(n.Mul(sh.InnerRadius()))
		}
		return b.Pos.Add(n.Mul(sh.OuterRadius))
	}
	return p
}

func rectClosestLocal(sh Rect, lp mgl64.Vec2) mgl64.Vec2 {
	hw, hh := sh.Width/2, sh.Height/2

	inside := math.Abs(lp.X()) <= hw && math.Abs(lp.Y()) <= hh
	if !inside {
		return mgl64.Vec2{clamp(lp.X(), -hw, hw), clamp(lp.Y(), -hh, hh)}
	}

	// Inside: snap to the nearest of the four edges.
	distLeft := hw + lp.X()
	distRight := hw - lp.X()
	distTop := hh + lp.Y()
	distBottom := hh - lp.Y()

	minDist := math.Min(math.Min(distLeft, distRight), math.Min(distTop, distBottom))
	switch minDist {
	case distLeft:
		return mgl64.Vec2{-hw, lp.Y()}
	case distRight:
		return mgl64.Vec2{hw, lp.Y()}
	case distTop:
		return mgl64.Vec2{lp.X(), -hh}
	default:
		return mgl64.Vec2{lp.X(), hh}
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NormalAtPoint returns the outward unit normal of the boundary at p.
// For a ring the inner boundary's normal points toward the ring center.
func NormalAtPoint(b *Body, p mgl64.Vec2) mgl64.Vec2 {
	switch sh := b.Shape.(type) {
	case Circle:
		return safeDir(p.Sub(b.Pos))
	case Rect:
		return localToWorldDir(b, rectNormalLocal(sh, worldToLocal(b, p)))
	case *Ring:
		dir := p.Sub(b.Pos)
		dist := dir.Len()
		n := safeDir(dir)
		innerDist := math.Abs(dist - sh.InnerRadius())
		outerDist := math.Abs(dist - sh.OuterRadius)
		if innerDist < outerDist {
			return n.Mul(-1)
		}
		return n
	}
	return fallbackDir
}

func rectNormalLocal(sh Rect, lp mgl64.Vec2) mgl64.Vec2 {
	hw, hh := sh.Width/2, sh.Height/2

	switch {
	case math.Abs(lp.X()-hw) < geomEpsilon:
		return mgl64.Vec2{1, 0}
	case math.Abs(lp.X()+hw) < geomEpsilon:
		return mgl64.Vec2{-1, 0}
	case math.Abs(lp.Y()-hh) < geomEpsilon:
		return mgl64.Vec2{0, 1}
	case math.Abs(lp.Y()+hh) < geomEpsilon:
		return mgl64.Vec2{0, -1}
	}
	// Off-boundary query: pick the side the dominant component faces.
	if math.Abs(lp.X())/hw >= math.Abs(lp.Y())/hh {
		if lp.X() >= 0 {
			return mgl64.Vec2{1, 0}
		}
		return mgl64.Vec2{-1, 0}
	}
	if lp.Y() >= 0 {
		return mgl64.Vec2{0, 1}
	}
	return mgl64.Vec2{0, -1}
}

// DistanceToPoint returns the signed distance from the shape's surface to
// p; negative when p is inside the shape (for rings: inside the annulus),
// consistent with Contains.
func DistanceToPoint(b *Body, p mgl64.Vec2) float64 {
	switch sh := b.Shape.(type) {
	case Circle:
		return p.Sub(b.Pos).Len() - sh.Radius
	case Rect:
		d := p.Sub(ClosestPointOnSurface(b, p)).Len()
		if Contains(b, p) {
			return -d
		}
		return d
	case *Ring:
		dist := p.Sub(b.Pos).Len()
		inner, outer := sh.InnerRadius(), sh.OuterRadius
		if dist > inner && dist < outer {
			return -math.Min(outer-dist, dist-inner)
		}
		if dist <= inner {
			return inner - dist
		}
		return dist - outer
	}
	return 0
}

// PointAtNormal is the inverse of NormalAtPoint: it returns the boundary
// point whose outward normal best matches the given direction. For a
// rectangle the edge whose axis dominates the direction wins; for a ring
// the outer boundary is the canonical match.
func PointAtNormal(b *Body, normal mgl64.Vec2) mgl64.Vec2 {
	n := safeDir(normal)
	switch sh := b.Shape.(type) {
	case Circle:
		return b.Pos.Add(n.Mul(sh.Radius))
	case Rect:
		ln := worldToLocalDir(b, n)
		hw, hh := sh.Width/2, sh.Height/2
		var lp mgl64.Vec2
		if math.Abs(ln.X()) > math.Abs(ln.Y()) {
			lp = mgl64.Vec2{math.Copysign(hw, ln.X()), 0}
		} else {
			lp = mgl64.Vec2{0, math.Copysign(hh, ln.Y())}
		}
		return localToWorld(b, lp)
	case *Ring:
		return b.Pos.Add(n.Mul(sh.OuterRadius))
	}
	return b.Pos
}
