package decimate

import (
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/mat"

	"github.com/gorustyt/godecimate/common"
)

// evaluateError returns the distance of the loop vertex to the surface that
// would replace it, as a fraction of the input bounding box diagonal.
// Interior vertices are measured against the loop plane, boundary vertices
// against the line joining the two ends of the boundary and corners
// against the line joining the two feature vertices.
func (d *decimator) evaluateError(vt VertexType, loop *Loop) float64 {
	s := d.store
	x := s.V[loop.Vertex].Pos
	var dist float64
	switch vt {
	case BoundaryEdge:
		a := s.V[loop.Verts[0]].Pos
		b := s.V[loop.Verts[len(loop.Verts)-1]].Pos
		dist = common.DistanceToLine(x, a, b)
	case Corner:
		a := s.V[loop.Verts[loop.Features[0]]].Pos
		b := s.V[loop.Verts[loop.Features[1]]].Pos
		dist = common.DistanceToLine(x, a, b)
	default:
		origin, normal := d.fitPlane(loop)
		dist = common.DistanceToPlane(x, origin, normal)
	}
	if d.diagonal == 0 {
		return 0
	}
	return dist / d.diagonal
}

// fitPlane returns a point on and the unit normal of the loop plane.
func (d *decimator) fitPlane(loop *Loop) (origin, normal mgl64.Vec3) {
	if d.cfg.PlaneFit == PlaneFitLeastSquares {
		if o, n, ok := leastSquaresPlane(d.store, loop.Verts); ok {
			if n.Dot(loop.Normal) < 0 {
				n = n.Mul(-1)
			}
			return o, n
		}
	}
	return loop.Centroid, loop.Normal
}

// leastSquaresPlane fits a plane through the points by total least squares:
// the normal is the eigenvector of the smallest eigenvalue of the
// covariance of the points about their mean.
func leastSquaresPlane(s *MeshStore, verts []VertexID) (origin, normal mgl64.Vec3, ok bool) {
	if len(verts) < 3 {
		return origin, normal, false
	}
	for _, v := range verts {
		origin = origin.Add(s.V[v].Pos)
	}
	origin = origin.Mul(1 / float64(len(verts)))

	cov := mat.NewSymDense(3, nil)
	for _, v := range verts {
		p := s.V[v].Pos.Sub(origin)
		for i := 0; i < 3; i++ {
			for j := i; j < 3; j++ {
				cov.SetSym(i, j, cov.At(i, j)+p[i]*p[j])
			}
		}
	}

	var eig mat.EigenSym
	if !eig.Factorize(cov, true) {
		return origin, normal, false
	}
	// Values are in ascending order.
	var vecs mat.Dense
	eig.VectorsTo(&vecs)
	normal = mgl64.Vec3{vecs.At(0, 0), vecs.At(1, 0), vecs.At(2, 0)}
	if l := normal.Len(); l == 0 || !common.Visfinite(normal) {
		return origin, normal, false
	}
	return origin, normal.Normalize(), true
}
