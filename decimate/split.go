package decimate

import "github.com/go-gl/mathgl/mgl64"

// subLoop is one side of a loop split along the chord between its two
// feature vertices.
type subLoop struct {
	Verts  []VertexID
	Normal mgl64.Vec3
}

// split cuts the loop of a corner vertex along the chord joining the two
// feature vertices. The first side runs Verts[f0..f1], the second
// Verts[f1..f0] wrapping around; both keep the chord as their closing
// edge. Each side gets the area weighted normal of its own fan triangles
// so the crease between them survives triangulation.
func (d *decimator) split(loop *Loop) ([2]*subLoop, bool) {
	var out [2]*subLoop
	if len(loop.Features) != 2 || loop.Open {
		return out, false
	}
	n := len(loop.Verts)
	f0, f1 := loop.Features[0], loop.Features[1]

	first := &d.sub[0]
	second := &d.sub[1]
	first.Verts = append(first.Verts[:0], loop.Verts[f0:f1+1]...)
	second.Verts = append(second.Verts[:0], loop.Verts[f1:]...)
	second.Verts = append(second.Verts, loop.Verts[:f0+1]...)
	if len(first.Verts) < 3 || len(second.Verts) < 3 {
		return out, false
	}

	// Both sides together need n-2 triangles, one less than the n removed.
	budget := len(loop.Tris) - 1
	if len(first.Verts)-2+len(second.Verts)-2 > budget {
		return out, false
	}
	// The chord closes both sides.
	if !d.edgeAllowed(loop.Verts[f0], loop.Verts[f1], 2) {
		return out, false
	}

	var ok bool
	if first.Normal, ok = d.sectorNormal(loop, f0, f1); !ok {
		return out, false
	}
	if second.Normal, ok = d.sectorNormal(loop, f1, f0+n); !ok {
		return out, false
	}
	out[0], out[1] = first, second
	return out, true
}

// sectorNormal averages the fan triangles Tris[from..to-1], wrapping around
// the loop, weighted by area.
func (d *decimator) sectorNormal(loop *Loop, from, to int) (mgl64.Vec3, bool) {
	var sum mgl64.Vec3
	n := len(loop.Tris)
	for k := from; k < to; k++ {
		tri := &d.store.T[loop.Tris[k%n]]
		sum = sum.Add(tri.Normal.Mul(tri.Area))
	}
	if sum.Len() == 0 {
		return sum, false
	}
	return sum.Normalize(), true
}
