package common

import (
	"cmp"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// / Returns the square of the value.
// / @param[in]		a	The value.
// / @return The square of the value.
func Sqr[T IT](a T) T {
	return a * a
}

// / Returns the absolute value.
// / @param[in]		a	The value.
// / @return The absolute value of the specified value.
func Abs[T IT](a T) T {
	if a < 0 {
		return -a
	}
	return a
}

// / Clamps the value to the specified range.
// / @param[in]		value			The value to clamp.
// / @param[in]		minInclusive	The minimum permitted return value.
// / @param[in]		maxInclusive	The maximum permitted return value.
// / @return The value, clamped to the specified range.
func Clamp[T cmp.Ordered](value, minInclusive, maxInclusive T) T {
	if value < minInclusive {
		return minInclusive
	}
	if value > maxInclusive {
		return maxInclusive
	}
	return value
}

// / Checks that the specified vector's components are all finite.
// /  @param[in]		v	A point. [(x, y, z)]
// / @return True if none of the components is NaN or an infinity.
func Visfinite(v Vec3) bool {
	return IsFinite(v[0]) && IsFinite(v[1]) && IsFinite(v[2])
}

func IsFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

// / Calculates the axis aligned bounds of the points.
// /  @param[in]		verts	The points.
// /  @param[out]	bmin	The minimum bounds of the AABB. [(x, y, z)]
// /  @param[out]	bmax	The maximum bounds of the AABB. [(x, y, z)]
func CalcBounds(verts []Vec3) (bmin, bmax Vec3) {
	if len(verts) == 0 {
		return
	}
	bmin, bmax = verts[0], verts[0]
	for _, v := range verts[1:] {
		for i := 0; i < 3; i++ {
			bmin[i] = min(bmin[i], v[i])
			bmax[i] = max(bmax[i], v[i])
		}
	}
	return bmin, bmax
}

// / Length of the bounding box diagonal of the points.
func BoundsDiagonal(verts []Vec3) float64 {
	bmin, bmax := CalcBounds(verts)
	return bmax.Sub(bmin).Len()
}

// / Derives the area weighted normal of triangle ABC.
// / The returned vector has a length of twice the triangle area.
func TriAreaNormal(a, b, c Vec3) Vec3 {
	return b.Sub(a).Cross(c.Sub(a))
}

// / Derives the unit normal and area of triangle ABC.
// / A degenerate triangle returns a zero normal and zero area.
func TriNormal(a, b, c Vec3) (n Vec3, area float64) {
	n = TriAreaNormal(a, b, c)
	l := n.Len()
	if l == 0 {
		return Vec3{}, 0
	}
	return n.Mul(1 / l), l * 0.5
}

// / Ratio of the longest to the shortest edge of triangle ABC.
// / A triangle with a zero length edge has an infinite aspect ratio.
func AspectRatio(a, b, c Vec3) float64 {
	l0 := b.Sub(a).Len()
	l1 := c.Sub(b).Len()
	l2 := a.Sub(c).Len()
	shortest := min(l0, l1, l2)
	if shortest == 0 {
		return math.Inf(1)
	}
	return max(l0, l1, l2) / shortest
}

// / Unsigned distance from p to the plane through origin with unit normal n.
func DistanceToPlane(p, origin, n Vec3) float64 {
	return math.Abs(n.Dot(p.Sub(origin)))
}

// / Distance from p to the infinite line through a and b. When a and b
// / coincide the distance to a is returned.
func DistanceToLine(p, a, b Vec3) float64 {
	ab := b.Sub(a)
	l := ab.Len()
	if l == 0 {
		return p.Sub(a).Len()
	}
	return ab.Cross(p.Sub(a)).Len() / l
}

// / Angle in degrees between two unit normals. Zero normals are treated as
// / perpendicular to everything.
func DihedralAngle(n0, n1 Vec3) float64 {
	d := Clamp(n0.Dot(n1), -1, 1)
	return mgl64.RadToDeg(math.Acos(d))
}

// / Builds an orthonormal basis (u, w) of the plane with unit normal n so that
// / (u, w, n) is right handed. The axis with the smallest normal component
// / seeds the basis; for axis aligned normals the result is exact.
func PlaneBasis(n Vec3) (u, w Vec3) {
	axis := Vec3{1, 0, 0}
	ax, ay, az := math.Abs(n[0]), math.Abs(n[1]), math.Abs(n[2])
	if ay < ax && ay <= az {
		axis = Vec3{0, 1, 0}
	} else if az < ax && az < ay {
		axis = Vec3{0, 0, 1}
	}
	u = n.Cross(axis).Normalize()
	w = n.Cross(u)
	return u, w
}

// / Projects p onto the plane basis (u, w).
func Project2D(p, u, w Vec3) Vec2 {
	return Vec2{p.Dot(u), p.Dot(w)}
}
