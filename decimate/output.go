package decimate

import (
	"github.com/go-gl/mathgl/mgl64"
)

// output compacts the store into a Result. Points keep their input order,
// triangles their slot order.
func (d *decimator) output() *Result {
	s := d.store
	res := &Result{}
	remap := make([]int, len(s.V))
	points := make([]int, 0, len(s.V))
	for i := range s.V {
		remap[i] = -1
		if s.V[i].Deleted || s.V[i].Degree == 0 {
			continue
		}
		remap[i] = len(points)
		points = append(points, i)
	}

	res.Mesh.Points = make([]mgl64.Vec3, 0, len(points))
	if d.cfg.GenerateErrorScalars {
		res.ErrorScalars = make([]float64, 0, len(points))
	}
	for _, i := range points {
		v := &s.V[i]
		res.Mesh.Points = append(res.Mesh.Points, v.Pos)
		if res.ErrorScalars != nil {
			var e float64
			if v.evaluated {
				e = v.Error
			}
			res.ErrorScalars = append(res.ErrorScalars, e)
		}
	}

	res.Mesh.Polys = make([][]int, 0, s.NumLiveTriangles())
	for i := range s.T {
		tri := &s.T[i]
		if tri.Deleted {
			continue
		}
		res.Mesh.Polys = append(res.Mesh.Polys, []int{
			remap[tri.Verts[0]], remap[tri.Verts[1]], remap[tri.Verts[2]],
		})
	}

	st := d.stats
	st.OutputPoints = len(res.Mesh.Points)
	st.OutputTriangles = len(res.Mesh.Polys)
	st.FinalError = d.errorThreshold
	st.FinalFeatureAngle = d.featureAngle
	st.Reduction = d.reduction()
	res.Stats = st

	d.log.Debug("decimation finished", statsField(&res.Stats))
	return res
}
