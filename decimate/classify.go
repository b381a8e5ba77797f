package decimate

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/gorustyt/godecimate/common"
)

// Loop is the ordered ring of vertices around a candidate vertex. For a
// closed ring Tris[i] is the fan triangle (Vertex, Verts[i], Verts[i+1]);
// an open ring (boundary vertex) has one triangle less than vertices.
// The ring runs counter clockwise around Normal.
type Loop struct {
	Vertex VertexID
	Verts  []VertexID
	Tris   []TriangleID
	Open   bool

	// Features holds the ring positions k whose spoke Vertex->Verts[k] is
	// shared by two triangles meeting above the feature angle.
	Features []int

	Normal   mgl64.Vec3
	Centroid mgl64.Vec3
	Area     float64

	reason string
}

func (l *Loop) reset(v VertexID) {
	l.Vertex = v
	l.Verts = l.Verts[:0]
	l.Tris = l.Tris[:0]
	l.Features = l.Features[:0]
	l.Open = false
	l.Normal = mgl64.Vec3{}
	l.Centroid = mgl64.Vec3{}
	l.Area = 0
	l.reason = ""
}

// rimEdge is the edge a->b of fan triangle t opposite the candidate.
type rimEdge struct {
	a, b VertexID
	t    TriangleID
}

func rimOf(verts [3]VertexID, v VertexID) (a, b VertexID) {
	switch v {
	case verts[0]:
		return verts[1], verts[2]
	case verts[1]:
		return verts[2], verts[0]
	default:
		return verts[0], verts[1]
	}
}

// vertexType maps the ring shape and its feature count to a classification.
// The two boundary spokes of an open ring already bound it, so any
// interior feature on top of them makes the vertex complex.
func vertexType(open bool, features int) VertexType {
	if open {
		if features == 0 {
			return BoundaryEdge
		}
		return Complex
	}
	switch features {
	case 0:
		return Simple
	case 1:
		return InteriorEdge
	case 2:
		return Corner
	}
	return Complex
}

// classify builds the loop of v and decides its type under the current
// feature angle. It never mutates the mesh. The returned loop is scratch
// storage reused by the next call.
func (d *decimator) classify(v VertexID) (VertexType, *Loop) {
	s := d.store
	loop := &d.loop
	loop.reset(v)

	tris := s.Incident(v)
	if len(tris) > d.cfg.Degree {
		loop.reason = "degree"
		return Complex, loop
	}

	d.rim = d.rim[:0]
	for _, t := range tris {
		a, b := rimOf(s.T[t].Verts, v)
		for _, e := range d.rim {
			// Two triangles leaving or entering the same rim vertex means
			// the spoke has more than two triangles or flipped winding.
			if e.a == a || e.b == b {
				loop.reason = "non-manifold"
				return Complex, loop
			}
		}
		d.rim = append(d.rim, rimEdge{a: a, b: b, t: t})
	}

	start := -1
	starts := 0
	for i, e := range d.rim {
		if d.findRim(e.a, false) < 0 {
			starts++
			if start < 0 {
				start = i
			}
		}
	}
	if starts > 1 {
		loop.reason = "non-manifold"
		return Complex, loop
	}
	loop.Open = starts == 1
	if !loop.Open {
		start = 0
	}

	cur := start
	for range d.rim {
		e := d.rim[cur]
		loop.Verts = append(loop.Verts, e.a)
		loop.Tris = append(loop.Tris, e.t)
		nxt := d.findRim(e.b, true)
		if nxt < 0 {
			loop.Verts = append(loop.Verts, e.b)
			break
		}
		if nxt == start {
			break
		}
		cur = nxt
	}
	if len(loop.Tris) != len(d.rim) {
		// Several fans meet at v.
		loop.reason = "non-manifold"
		return Complex, loop
	}

	var sum, centroid mgl64.Vec3
	for _, t := range loop.Tris {
		tri := &s.T[t]
		sum = sum.Add(tri.Normal.Mul(tri.Area))
		c := s.V[tri.Verts[0]].Pos.Add(s.V[tri.Verts[1]].Pos).Add(s.V[tri.Verts[2]].Pos).Mul(1.0 / 3)
		centroid = centroid.Add(c.Mul(tri.Area))
		loop.Area += tri.Area
	}
	if loop.Area == 0 || sum.Len() == 0 {
		loop.reason = "degenerate"
		return Complex, loop
	}
	loop.Normal = sum.Normalize()
	loop.Centroid = centroid.Mul(1 / loop.Area)

	d.findFeatures(loop)
	vt := vertexType(loop.Open, len(loop.Features))
	if vt == Complex {
		loop.reason = "features"
	}
	return vt, loop
}

// findRim returns the index of the rim edge starting (or, when byStart is
// false, ending) at v, or -1.
func (d *decimator) findRim(v VertexID, byStart bool) int {
	for i, e := range d.rim {
		if byStart && e.a == v || !byStart && e.b == v {
			return i
		}
	}
	return -1
}

// findFeatures records the interior spokes whose dihedral angle exceeds the
// current feature angle and stores the largest angle on the vertex.
func (d *decimator) findFeatures(loop *Loop) {
	s := d.store
	n := len(loop.Verts)
	first, last := 0, n
	if loop.Open {
		// Spokes 0 and n-1 are boundary edges with a single triangle.
		first, last = 1, n-1
	}
	var extremum float64
	for k := first; k < last; k++ {
		t0 := loop.Tris[common.Prev(k, len(loop.Tris))]
		t1 := loop.Tris[k%len(loop.Tris)]
		angle := common.DihedralAngle(s.T[t0].Normal, s.T[t1].Normal)
		extremum = max(extremum, angle)
		if angle > d.featureAngle {
			loop.Features = append(loop.Features, k)
		}
	}
	s.V[loop.Vertex].FeatureAngle = extremum
}
