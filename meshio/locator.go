package meshio

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const vertexBucketCount = 1 << 12

func computeVertexHash(x, y, z int64) int {
	const (
		h1 = 0x8da6b343 // Large multiplicative constants;
		h2 = 0xd8163841 // here arbitrarily chosen primes
		h3 = 0xcb1ab31f
	)
	n := h1*x + h2*y + h3*z
	return int(n & (vertexBucketCount - 1))
}

// Locator merges coincident points while a mesh is being assembled. With a
// zero tolerance only bit identical points merge; otherwise points that
// quantize to the same cell of size Tolerance do.
type Locator struct {
	Tolerance float64
	Points    []mgl64.Vec3

	cells     [][3]int64
	firstVert [vertexBucketCount]int
	nextVert  []int
}

func NewLocator(tolerance float64) *Locator {
	l := &Locator{Tolerance: tolerance}
	for i := range l.firstVert {
		l.firstVert[i] = -1
	}
	return l
}

func (l *Locator) cell(p mgl64.Vec3) (c [3]int64) {
	for i := 0; i < 3; i++ {
		if l.Tolerance > 0 {
			c[i] = int64(math.Floor(p[i] / l.Tolerance))
		} else {
			c[i] = int64(math.Float64bits(p[i] + 0))
		}
	}
	return c
}

// Insert returns the index of the point merged with p, adding p when no
// earlier point matches.
func (l *Locator) Insert(p mgl64.Vec3) int {
	c := l.cell(p)
	bucket := computeVertexHash(c[0], c[1], c[2])
	i := l.firstVert[bucket]
	for i != -1 {
		if l.cells[i] == c {
			return i
		}
		i = l.nextVert[i] // next
	}

	// Could not find, create new.
	i = len(l.Points)
	l.Points = append(l.Points, p)
	l.cells = append(l.cells, c)
	l.nextVert = append(l.nextVert, l.firstVert[bucket])
	l.firstVert[bucket] = i
	return i
}
