package common

// Orientation predicates on projected polygon points. A positive area means
// c lies to the left of the directed line a->b (counter clockwise turn).
// Values with a magnitude not above eps are treated as collinear.

// Area2 returns twice the signed area of triangle abc.
func Area2(a, b, c Vec2) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (c[0]-a[0])*(b[1]-a[1])
}

// Left reports whether c is strictly to the left of the directed line a->b.
func Left(a, b, c Vec2, eps float64) bool {
	return Area2(a, b, c) > eps
}

// LeftOn reports whether c is left of or on the directed line a->b.
func LeftOn(a, b, c Vec2, eps float64) bool {
	return Area2(a, b, c) >= -eps
}

func Collinear(a, b, c Vec2, eps float64) bool {
	return Abs(Area2(a, b, c)) <= eps
}

// Exclusive or: true iff exactly one argument is true.
func xorb(x, y bool) bool {
	return x != y
}

// IntersectProp returns true iff ab properly intersects cd: they share
// a point interior to both segments. The properness of the
// intersection is ensured by using strict leftness.
func IntersectProp(a, b, c, d Vec2, eps float64) bool {
	// Eliminate improper cases.
	if Collinear(a, b, c, eps) || Collinear(a, b, d, eps) ||
		Collinear(c, d, a, eps) || Collinear(c, d, b, eps) {
		return false
	}
	return xorb(Left(a, b, c, eps), Left(a, b, d, eps)) && xorb(Left(c, d, a, eps), Left(c, d, b, eps))
}

// Between returns true iff (a,b,c) are collinear and point c lies
// on the closed segment ab.
func Between(a, b, c Vec2, eps float64) bool {
	if !Collinear(a, b, c, eps) {
		return false
	}
	// If ab not vertical, check betweenness on x; else on y.
	if a[0] != b[0] {
		return ((a[0] <= c[0]) && (c[0] <= b[0])) || ((a[0] >= c[0]) && (c[0] >= b[0]))
	}
	return ((a[1] <= c[1]) && (c[1] <= b[1])) || ((a[1] >= c[1]) && (c[1] >= b[1]))
}

// Intersect returns true iff segments ab and cd intersect, properly or improperly.
func Intersect(a, b, c, d Vec2, eps float64) bool {
	if IntersectProp(a, b, c, d, eps) {
		return true
	}
	return Between(a, b, c, eps) || Between(a, b, d, eps) ||
		Between(c, d, a, eps) || Between(c, d, b, eps)
}

// PolygonArea2 returns twice the signed area of the closed polygon.
func PolygonArea2(pts []Vec2) float64 {
	var area float64
	n := len(pts)
	for i := 0; i < n; i++ {
		j := Next(i, n)
		area += pts[i][0]*pts[j][1] - pts[j][0]*pts[i][1]
	}
	return area
}
