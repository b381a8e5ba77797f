package decimate

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"
)

// gridMesh returns an nx by ny grid of unit squares, each split into two
// counter clockwise triangles, with heights from z (nil for flat).
func gridMesh(nx, ny int, z func(x, y float64) float64) *Mesh {
	m := &Mesh{}
	id := func(i, j int) int { return j*(nx+1) + i }
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			x, y := float64(i), float64(j)
			var h float64
			if z != nil {
				h = z(x, y)
			}
			m.Points = append(m.Points, mgl64.Vec3{x, y, h})
		}
	}
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			p00, p10, p11, p01 := id(i, j), id(i+1, j), id(i+1, j+1), id(i, j+1)
			m.Polys = append(m.Polys, []int{p00, p10, p11}, []int{p00, p11, p01})
		}
	}
	return m
}

// cubeMesh is the closed unit cube; point i is at (i&1, i>>1&1, i>>2&1).
func cubeMesh() *Mesh {
	m := &Mesh{}
	for i := 0; i < 8; i++ {
		m.Points = append(m.Points, mgl64.Vec3{float64(i & 1), float64(i >> 1 & 1), float64(i >> 2 & 1)})
	}
	m.Polys = [][]int{
		{0, 2, 3}, {0, 3, 1}, // z = 0
		{4, 5, 7}, {4, 7, 6}, // z = 1
		{0, 1, 5}, {0, 5, 4}, // y = 0
		{2, 6, 7}, {2, 7, 3}, // y = 1
		{0, 4, 6}, {0, 6, 2}, // x = 0
		{1, 3, 7}, {1, 7, 5}, // x = 1
	}
	return m
}

// fanMesh is a closed fan of n triangles around point 0 at height h, the rim
// on the unit circle with y scaled by yScale.
func fanMesh(n int, h, yScale float64) *Mesh {
	m := &Mesh{Points: []mgl64.Vec3{{0, 0, h}}}
	for k := 0; k < n; k++ {
		a := 2 * math.Pi * float64(k) / float64(n)
		m.Points = append(m.Points, mgl64.Vec3{math.Cos(a), yScale * math.Sin(a), 0})
	}
	for k := 0; k < n; k++ {
		m.Polys = append(m.Polys, []int{0, k + 1, (k+1)%n + 1})
	}
	return m
}

// sphereMesh is a closed unit UV sphere with outward facing triangles.
func sphereMesh(slices, stacks int) *Mesh {
	m := &Mesh{Points: []mgl64.Vec3{{0, 0, 1}}}
	for k := 1; k < stacks; k++ {
		phi := math.Pi * float64(k) / float64(stacks)
		for j := 0; j < slices; j++ {
			theta := 2 * math.Pi * float64(j) / float64(slices)
			m.Points = append(m.Points, mgl64.Vec3{
				math.Sin(phi) * math.Cos(theta),
				math.Sin(phi) * math.Sin(theta),
				math.Cos(phi),
			})
		}
	}
	south := len(m.Points)
	m.Points = append(m.Points, mgl64.Vec3{0, 0, -1})

	ring := func(k, j int) int { return 1 + (k-1)*slices + j%slices }
	for j := 0; j < slices; j++ {
		m.Polys = append(m.Polys, []int{0, ring(1, j), ring(1, j+1)})
	}
	for k := 1; k < stacks-1; k++ {
		for j := 0; j < slices; j++ {
			a, b := ring(k, j), ring(k, j+1)
			c, d := ring(k+1, j), ring(k+1, j+1)
			m.Polys = append(m.Polys, []int{a, c, d}, []int{a, d, b})
		}
	}
	for j := 0; j < slices; j++ {
		m.Polys = append(m.Polys, []int{south, ring(stacks-1, j+1), ring(stacks-1, j)})
	}
	return m
}

// creaseMesh folds a 4x4 grid along y = 2 so the halves meet at 90 degrees.
func creaseMesh() *Mesh {
	return gridMesh(4, 4, func(x, y float64) float64 { return math.Abs(y - 2) })
}

// creaseWithFlap adds triangle 11-13-25 standing above the crease, so the
// chord between the feature neighbours of vertex 12 already borders a
// triangle.
func creaseWithFlap() *Mesh {
	m := creaseMesh()
	m.Points = append(m.Points, mgl64.Vec3{2, 2, 5})
	m.Polys = append(m.Polys, []int{11, 13, 25})
	return m
}

func loadDecimator(t *testing.T, m *Mesh, cfg Config, opts ...Option) *decimator {
	t.Helper()
	require.NoError(t, validate(m))
	d := newDecimator(cfg, opts...)
	d.load(m)
	d.errorThreshold = d.cfg.InitialError
	d.featureAngle = d.cfg.InitialFeatureAngle
	return d
}

type edgeKey [2]int

// checkManifold asserts that no edge has more than two triangles and that
// neighbouring triangles agree on orientation. It returns the number of
// undirected edges used by exactly one triangle.
func checkManifold(t *testing.T, m *Mesh) (boundary int) {
	t.Helper()
	directed := map[edgeKey]int{}
	undirected := map[edgeKey]int{}
	for i, cell := range m.Polys {
		require.Len(t, cell, 3, "cell %d", i)
		for k := 0; k < 3; k++ {
			a, b := cell[k], cell[(k+1)%3]
			directed[edgeKey{a, b}]++
			undirected[edgeKey{min(a, b), max(a, b)}]++
		}
	}
	for e, n := range directed {
		require.Equal(t, 1, n, "directed edge %v used %d times", e, n)
	}
	for e, n := range undirected {
		require.LessOrEqual(t, n, 2, "edge %v used %d times", e, n)
		if n == 1 {
			boundary++
		}
	}
	return boundary
}

func eulerCharacteristic(m *Mesh) int {
	edges := map[edgeKey]struct{}{}
	used := map[int]struct{}{}
	for _, cell := range m.Polys {
		for k := 0; k < 3; k++ {
			a, b := cell[k], cell[(k+1)%3]
			edges[edgeKey{min(a, b), max(a, b)}] = struct{}{}
			used[a] = struct{}{}
		}
	}
	return len(used) - len(edges) + len(m.Polys)
}
