package decimate

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gorustyt/godecimate/common"
)

// Ear clipping over the ring projected onto its plane. The predicates follow
// O'Rourke, Computational Geometry in C: a diagonal (i,j) is valid if it
// lies in the cone of both end points and crosses no polygon edge.

// Returns T iff (v_i, v_j) is a proper internal *or* external diagonal of P,
// *ignoring edges incident to v_i and v_j*.
func diagonalie(i, j int, idx []int, pts []mgl64.Vec2, eps float64) bool {
	n := len(idx)
	d0 := pts[idx[i]]
	d1 := pts[idx[j]]

	// For each edge (k,k+1) of P
	for k := 0; k < n; k++ {
		k1 := common.Next(k, n)
		// Skip edges incident to i or j
		if (k == i) || (k1 == i) || (k == j) || (k1 == j) {
			continue
		}
		if common.Intersect(d0, d1, pts[idx[k]], pts[idx[k1]], eps) {
			return false
		}
	}
	return true
}

// Returns true iff the diagonal (i,j) is strictly internal to the polygon
// P in the neighborhood of the i endpoint.
func inCone(i, j int, idx []int, pts []mgl64.Vec2, eps float64) bool {
	n := len(idx)
	pi := pts[idx[i]]
	pj := pts[idx[j]]
	pi1 := pts[idx[common.Next(i, n)]]
	pin1 := pts[idx[common.Prev(i, n)]]

	// If P[i] is a convex vertex [ i+1 left or on (i-1,i) ].
	if common.LeftOn(pin1, pi, pi1, eps) {
		return common.Left(pi, pj, pin1, eps) && common.Left(pj, pi, pi1, eps)
	}
	// else P[i] is reflex.
	return !(common.LeftOn(pi, pj, pi1, eps) && common.LeftOn(pj, pi, pin1, eps))
}

// Returns T iff (v_i, v_j) is a proper internal diagonal of P.
func diagonal(i, j int, idx []int, pts []mgl64.Vec2, eps float64) bool {
	return inCone(i, j, idx, pts, eps) && inCone(j, i, idx, pts, eps) && diagonalie(i, j, idx, pts, eps)
}

// selfIntersects reports whether the closed polygon has a zero length edge,
// folds back onto itself or has two non adjacent edges touching.
func selfIntersects(pts []mgl64.Vec2, eps float64) bool {
	n := len(pts)
	for i := 0; i < n; i++ {
		i1 := common.Next(i, n)
		i2 := common.Next(i1, n)
		e0 := pts[i1].Sub(pts[i])
		e1 := pts[i2].Sub(pts[i1])
		if e0.Dot(e0) <= eps {
			return true
		}
		if common.Collinear(pts[i], pts[i1], pts[i2], eps) && e0.Dot(e1) < 0 {
			return true
		}
		for j := i + 1; j < n; j++ {
			j1 := common.Next(j, n)
			if j == i1 || j1 == i {
				continue
			}
			if common.Intersect(pts[i], pts[i1], pts[j], pts[j1], eps) {
				return true
			}
		}
	}
	return false
}

// edgeAllowed applies the edge use rule to a new edge a->b that will
// border added new triangles. No edge may end with more than two triangles.
// Reusing an edge that already borders a triangle closes a hole or joins
// two boundaries, so it needs topology changes to be allowed and the
// existing triangle must run the edge b->a.
func (d *decimator) edgeAllowed(a, b VertexID, added int) bool {
	use := d.store.EdgeUse(a, b)
	if use+added > 2 {
		return false
	}
	if use == 0 {
		return true
	}
	return !d.cfg.PreserveTopology && !d.store.HasDirectedEdge(a, b)
}

// degreeLimit is the largest degree v may reach after a deletion. Vertices
// already above the configured bound may keep but not grow their count.
func (d *decimator) degreeLimit(v VertexID) int {
	return max(d.cfg.Degree, d.store.V[v].Degree)
}

// prepareDegrees loads the degree every loop vertex will have once the fan
// triangles are gone.
func (d *decimator) prepareDegrees(loop *Loop) {
	if len(d.degree) < len(d.store.V) {
		d.degree = make([]int, len(d.store.V))
	}
	for _, v := range loop.Verts {
		d.degree[v] = d.store.V[v].Degree
	}
	for _, t := range loop.Tris {
		for _, v := range d.store.T[t].Verts {
			if v != loop.Vertex {
				d.degree[v]--
			}
		}
	}
}

// triangleScore returns the aspect ratio of a prospective triangle, or
// false if it exceeds the aspect ratio bound or duplicates a live triangle.
func (d *decimator) triangleScore(a, b, c VertexID) (float64, bool) {
	s := d.store
	aspect := common.AspectRatio(s.V[a].Pos, s.V[b].Pos, s.V[c].Pos)
	if aspect > d.cfg.AspectRatio {
		return 0, false
	}
	if s.HasTriangle(a, b, c) {
		return 0, false
	}
	return aspect, true
}

func (d *decimator) fits(v VertexID, extra int) bool {
	return d.degree[v]+extra <= d.degreeLimit(v)
}

func (d *decimator) emit(a, b, c VertexID) {
	d.newTris = append(d.newTris, [3]VertexID{a, b, c})
	d.degree[a]++
	d.degree[b]++
	d.degree[c]++
}

// triangulate fills the counter clockwise ring with len(ring)-2 triangles
// appended to d.newTris. Each step clips the ear whose new triangles have
// the smallest worst aspect ratio; ties go to the smallest diagonal by
// vertex ids. It fails when the projected ring is not a simple polygon or
// no ear satisfies the aspect ratio, degree and edge use rules.
func (d *decimator) triangulate(ring []VertexID, normal mgl64.Vec3) bool {
	n := len(ring)
	if n < 3 {
		return false
	}
	s := d.store
	u, w := common.PlaneBasis(normal)
	pts := d.pts[:0]
	for _, v := range ring {
		pts = append(pts, common.Project2D(s.V[v].Pos, u, w))
	}
	d.pts = pts

	var longest float64
	for i := range pts {
		e := pts[common.Next(i, n)].Sub(pts[i])
		longest = max(longest, e.Dot(e))
	}
	eps := longest * 1e-12
	if longest == 0 || common.PolygonArea2(pts) <= eps || selfIntersects(pts, eps) {
		return false
	}

	idx := d.idx[:0]
	for i := 0; i < n; i++ {
		idx = append(idx, i)
	}
	defer func() { d.idx = idx[:0] }()

	for len(idx) > 3 {
		m := len(idx)
		best := -1
		bestScore := math.Inf(1)
		var bestKey [2]VertexID
		for i := 0; i < m; i++ {
			i0, i2 := common.Prev(i, m), common.Next(i, m)
			a, b, c := ring[idx[i0]], ring[idx[i]], ring[idx[i2]]
			if !common.Left(pts[idx[i0]], pts[idx[i]], pts[idx[i2]], eps) {
				continue
			}
			if !diagonal(i0, i2, idx, pts, eps) || !d.edgeAllowed(a, c, 2) {
				continue
			}
			score, ok := d.triangleScore(a, b, c)
			if !ok {
				continue
			}
			if m == 4 {
				// The diagonal also closes the last triangle.
				r := ring[idx[common.Next(i2, m)]]
				if !common.Left(pts[idx[i2]], pts[idx[common.Next(i2, m)]], pts[idx[i0]], eps) {
					continue
				}
				rest, ok := d.triangleScore(c, r, a)
				if !ok {
					continue
				}
				score = max(score, rest)
				if !d.fits(a, 2) || !d.fits(c, 2) || !d.fits(b, 1) || !d.fits(r, 1) {
					continue
				}
			} else if !d.fits(a, 1) || !d.fits(b, 1) || !d.fits(c, 1) {
				continue
			}
			key := [2]VertexID{min(a, c), max(a, c)}
			if score < bestScore || score == bestScore && (key[0] < bestKey[0] || key[0] == bestKey[0] && key[1] < bestKey[1]) {
				best, bestScore, bestKey = i, score, key
			}
		}
		if best < 0 {
			return false
		}
		i0, i2 := common.Prev(best, m), common.Next(best, m)
		d.emit(ring[idx[i0]], ring[idx[best]], ring[idx[i2]])
		idx = append(idx[:best], idx[best+1:]...)
	}

	a, b, c := ring[idx[0]], ring[idx[1]], ring[idx[2]]
	if !common.Left(pts[idx[0]], pts[idx[1]], pts[idx[2]], eps) {
		return false
	}
	if _, ok := d.triangleScore(a, b, c); !ok {
		return false
	}
	if !d.fits(a, 1) || !d.fits(b, 1) || !d.fits(c, 1) {
		return false
	}
	d.emit(a, b, c)
	return true
}
