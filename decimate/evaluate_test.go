package decimate

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluatePlaneError(t *testing.T) {
	diag := math.Sqrt(8.09)
	m := fanMesh(8, 0.3, 1)

	d := loadDecimator(t, m, DefaultConfig())
	vt, loop := d.classify(0)
	require.Equal(t, Simple, vt)
	// The area weighted centroid sits at a third of the apex height.
	assert.InDelta(t, 0.2/diag, d.evaluateError(vt, loop), 1e-9)

	cfg := DefaultConfig()
	cfg.PlaneFit = PlaneFitLeastSquares
	d = loadDecimator(t, m, cfg)
	vt, loop = d.classify(0)
	require.Equal(t, Simple, vt)
	// The fitted plane runs through the rim.
	assert.InDelta(t, 0.3/diag, d.evaluateError(vt, loop), 1e-9)
}

func TestLeastSquaresPlane(t *testing.T) {
	s := NewMeshStore()
	n := mgl64.Vec3{1, 2, 2}.Normalize()
	u := mgl64.Vec3{2, -1, 0}.Normalize()
	w := n.Cross(u)
	for k := 0; k < 7; k++ {
		a := 2 * math.Pi * float64(k) / 7
		p := u.Mul(2 * math.Cos(a)).Add(w.Mul(math.Sin(a))).Add(mgl64.Vec3{5, 5, 5})
		s.AddVertex(p)
	}
	origin, normal, ok := leastSquaresPlane(s, []VertexID{0, 1, 2, 3, 4, 5, 6})
	require.True(t, ok)
	assert.InDelta(t, 1, math.Abs(normal.Dot(n)), 1e-9)
	assert.InDelta(t, 0, normal.Dot(origin.Sub(mgl64.Vec3{5, 5, 5})), 1e-9)

	_, _, ok = leastSquaresPlane(s, []VertexID{0, 1})
	assert.False(t, ok)
}

func TestEvaluateBoundaryAndCornerError(t *testing.T) {
	d := loadDecimator(t, gridMesh(3, 3, nil), DefaultConfig())
	vt, loop := d.classify(0)
	require.Equal(t, BoundaryEdge, vt)
	// Corner of the grid against the line through its two neighbours.
	assert.InDelta(t, 1.0/6, d.evaluateError(vt, loop), 1e-12)

	d = loadDecimator(t, creaseMesh(), DefaultConfig())
	vt, loop = d.classify(12)
	require.Equal(t, Corner, vt)
	assert.InDelta(t, 0, d.evaluateError(vt, loop), 1e-12)
}

func TestSplitCrease(t *testing.T) {
	m := creaseMesh()
	d := loadDecimator(t, m, DefaultConfig())
	vt, loop := d.classify(12)
	require.Equal(t, Corner, vt)

	subs, ok := d.split(loop)
	require.True(t, ok)
	total := 0
	for _, sub := range subs {
		require.GreaterOrEqual(t, len(sub.Verts), 3)
		total += len(sub.Verts)
		ends := []VertexID{sub.Verts[0], sub.Verts[len(sub.Verts)-1]}
		assert.ElementsMatch(t, []VertexID{11, 13}, ends)

		side := 0.0
		for _, v := range sub.Verts {
			y := m.Points[v][1]
			if y != 2 {
				side = math.Copysign(1, 2-y)
			}
		}
		require.NotZero(t, side)
		for _, v := range sub.Verts {
			assert.GreaterOrEqual(t, side*(2-m.Points[v][1]), 0.0)
		}
		want := mgl64.Vec3{0, side, 1}.Normalize()
		assert.InDelta(t, 1, sub.Normal.Dot(want), 1e-12)
	}
	assert.Equal(t, len(loop.Verts)+2, total)

	loop.Features = []int{0, 1}
	_, ok = d.split(loop)
	assert.False(t, ok)
}

// topologyMesh has a triangular hole a-v-b where edge a-b already borders
// triangle a-x-b.
func topologyMesh() *Mesh {
	return &Mesh{
		Points: []mgl64.Vec3{{0, 0, 0}, {2, 0, 0}, {1, 1, 0}, {1, 2, 0}, {1, -1, 0}},
		Polys:  [][]int{{0, 4, 1}, {0, 2, 3}, {2, 1, 3}},
	}
}

func TestPreserveTopologyRejectsClosingChord(t *testing.T) {
	d := loadDecimator(t, topologyMesh(), DefaultConfig())
	d.errorThreshold = 1
	vt, loop := d.classify(2)
	require.Equal(t, BoundaryEdge, vt)
	require.Equal(t, []VertexID{1, 3, 0}, loop.Verts)
	assert.Equal(t, declineTriangulation, d.tryDelete(vt, loop))

	cfg := DefaultConfig()
	cfg.PreserveTopology = false
	d = loadDecimator(t, topologyMesh(), cfg)
	d.errorThreshold = 1
	vt, loop = d.classify(2)
	require.Equal(t, BoundaryEdge, vt)
	assert.Equal(t, declineNone, d.tryDelete(vt, loop))
	require.NoError(t, d.store.Check())
	assert.True(t, d.store.V[2].Deleted)
	assert.Equal(t, 2, d.store.EdgeUse(0, 1))
	assert.True(t, d.store.HasTriangle(0, 1, 3))
}

func TestSplitChordAlreadyInUse(t *testing.T) {
	for _, preserve := range []bool{true, false} {
		cfg := DefaultConfig()
		cfg.PreserveTopology = preserve
		d := loadDecimator(t, creaseWithFlap(), cfg)
		d.errorThreshold = 1
		vt, loop := d.classify(12)
		require.Equal(t, Corner, vt)
		require.Equal(t, 1, d.store.EdgeUse(11, 13))

		assert.Equal(t, declineSplit, d.tryDelete(vt, loop), "preserve topology %v", preserve)
		assert.False(t, d.store.V[12].Deleted)
		assert.Equal(t, 1, d.store.EdgeUse(11, 13))
		require.NoError(t, d.store.Check())
	}
}

func TestEdgeAllowed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PreserveTopology = false
	d := loadDecimator(t, topologyMesh(), cfg)
	// 0-1 borders triangle 0-4-1, which runs it 1->0
	assert.True(t, d.edgeAllowed(0, 1, 1))
	assert.False(t, d.edgeAllowed(1, 0, 1))
	assert.False(t, d.edgeAllowed(0, 1, 2))
	assert.True(t, d.edgeAllowed(1, 2, 0))
	assert.False(t, d.edgeAllowed(2, 3, 1))
	assert.True(t, d.edgeAllowed(4, 3, 2))

	d = loadDecimator(t, topologyMesh(), DefaultConfig())
	assert.False(t, d.edgeAllowed(0, 1, 1))
	assert.True(t, d.edgeAllowed(4, 3, 2))
}

func TestPreserveEdges(t *testing.T) {
	d := loadDecimator(t, fanMesh(8, 0, 1), DefaultConfig())
	_, loop := d.classify(0)
	assert.Equal(t, declinePreserved, d.tryDelete(InteriorEdge, loop))
	assert.False(t, d.store.V[0].Deleted)

	cfg := DefaultConfig()
	cfg.PreserveEdges = false
	d = loadDecimator(t, fanMesh(8, 0, 1), cfg)
	_, loop = d.classify(0)
	assert.Equal(t, declineNone, d.tryDelete(InteriorEdge, loop))
	assert.True(t, d.store.V[0].Deleted)
	assert.Equal(t, 6, d.store.NumLiveTriangles())
}

func TestErrorBoundDecline(t *testing.T) {
	d := loadDecimator(t, fanMesh(8, 0.3, 1), DefaultConfig())
	vt, loop := d.classify(0)
	assert.Equal(t, declineErrorBound, d.tryDelete(vt, loop))
	assert.True(t, d.store.V[0].evaluated)
	assert.Greater(t, d.store.V[0].Error, 0.0)
}
