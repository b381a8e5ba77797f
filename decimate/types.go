package decimate

import (
	"github.com/go-gl/mathgl/mgl64"
)

type VertexID int32
type TriangleID int32

const nilID = -1

// VertexType is the classification of a candidate vertex.
type VertexType int

const (
	Simple VertexType = iota
	BoundaryEdge
	InteriorEdge
	Corner
	Complex
	numVertexTypes
)

func (t VertexType) String() string {
	switch t {
	case Simple:
		return "simple"
	case BoundaryEdge:
		return "boundary-edge"
	case InteriorEdge:
		return "interior-edge"
	case Corner:
		return "corner"
	case Complex:
		return "complex"
	}
	return "unknown"
}

// Vertex is a point of the working mesh. Degree is the number of live
// triangles referencing it.
type Vertex struct {
	ID           VertexID
	Pos          mgl64.Vec3
	FeatureAngle float64
	Degree       int
	Deleted      bool

	// last evaluated local error, as a fraction of the bounds diagonal
	Error     float64
	evaluated bool
}

type Triangle struct {
	ID      TriangleID
	Verts   [3]VertexID
	Area    float64
	Normal  mgl64.Vec3
	Deleted bool
}

// Mesh is the input and output geometry. Polys are vertex index lists; the
// decimator only accepts triangles and only produces triangles.
type Mesh struct {
	Points []mgl64.Vec3
	Polys  [][]int
}

func (m *Mesh) NumTriangles() int {
	return len(m.Polys)
}

type Result struct {
	Mesh Mesh
	// ErrorScalars has one entry per output point when
	// GenerateErrorScalars is enabled, nil otherwise.
	ErrorScalars []float64
	Stats        Stats
}
