package decimate

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/gorustyt/godecimate/common"
)

// MeshStore owns the working vertex and triangle arrays of one decimation
// run. Deletion only sets tombstones so ids stay stable while a pass walks
// the arrays; Output compacts them once at the end.
type MeshStore struct {
	V []Vertex
	T []Triangle

	// links[v] lists the live triangles using v, in insertion order.
	links [][]TriangleID
	live  int
}

func NewMeshStore() *MeshStore {
	return &MeshStore{}
}

// Reset empties the store but keeps the allocated arrays for the next run.
func (s *MeshStore) Reset() {
	s.V = s.V[:0]
	s.T = s.T[:0]
	for i := range s.links {
		s.links[i] = s.links[i][:0]
	}
	s.links = s.links[:0]
	s.live = 0
}

func (s *MeshStore) AddVertex(p mgl64.Vec3) VertexID {
	id := VertexID(len(s.V))
	s.V = append(s.V, Vertex{ID: id, Pos: p})
	if len(s.links) < cap(s.links) {
		s.links = s.links[:len(s.links)+1]
		s.links[id] = s.links[id][:0]
	} else {
		s.links = append(s.links, make([]TriangleID, 0, 6))
	}
	return id
}

func (s *MeshStore) AddTriangle(a, b, c VertexID) TriangleID {
	id := TriangleID(len(s.T))
	s.T = append(s.T, Triangle{ID: id})
	s.setTriangle(id, [3]VertexID{a, b, c})
	s.live++
	return id
}

func (s *MeshStore) setTriangle(t TriangleID, verts [3]VertexID) {
	tri := &s.T[t]
	tri.Verts = verts
	tri.Deleted = false
	tri.Normal, tri.Area = common.TriNormal(s.V[verts[0]].Pos, s.V[verts[1]].Pos, s.V[verts[2]].Pos)
	for _, v := range verts {
		s.links[v] = append(s.links[v], t)
		s.V[v].Degree = len(s.links[v])
	}
}

func (s *MeshStore) unlink(t TriangleID) {
	for _, v := range s.T[t].Verts {
		l := s.links[v]
		for i, id := range l {
			if id == t {
				copy(l[i:], l[i+1:])
				l = l[:len(l)-1]
				break
			}
		}
		s.links[v] = l
		s.V[v].Degree = len(l)
	}
}

// ReplaceTriangle reuses the slot of a live triangle for new corners.
func (s *MeshStore) ReplaceTriangle(t TriangleID, verts [3]VertexID) {
	s.unlink(t)
	s.setTriangle(t, verts)
}

func (s *MeshStore) DeleteTriangle(t TriangleID) {
	if s.T[t].Deleted {
		return
	}
	s.unlink(t)
	s.T[t].Deleted = true
	s.live--
}

// DeleteVertex retires a vertex. It must no longer be used by any triangle.
func (s *MeshStore) DeleteVertex(v VertexID) {
	s.V[v].Deleted = true
}

// Incident returns the live triangles using v. The slice belongs to the
// store and is only valid until the next mutation.
func (s *MeshStore) Incident(v VertexID) []TriangleID {
	return s.links[v]
}

// EdgeUse counts the live triangles having an edge between a and b.
func (s *MeshStore) EdgeUse(a, b VertexID) int {
	n := 0
	for _, t := range s.links[a] {
		vs := s.T[t].Verts
		if vs[0] == b || vs[1] == b || vs[2] == b {
			n++
		}
	}
	return n
}

// HasDirectedEdge reports whether a live triangle runs the edge a->b.
func (s *MeshStore) HasDirectedEdge(a, b VertexID) bool {
	for _, t := range s.links[a] {
		vs := s.T[t].Verts
		for k := 0; k < 3; k++ {
			if vs[k] == a && vs[(k+1)%3] == b {
				return true
			}
		}
	}
	return false
}

// HasTriangle reports whether a live triangle uses exactly a, b and c, in
// any order.
func (s *MeshStore) HasTriangle(a, b, c VertexID) bool {
	for _, t := range s.links[a] {
		vs := s.T[t].Verts
		hasB := vs[0] == b || vs[1] == b || vs[2] == b
		hasC := vs[0] == c || vs[1] == c || vs[2] == c
		if hasB && hasC {
			return true
		}
	}
	return false
}

func (s *MeshStore) NumLiveTriangles() int {
	return s.live
}

// Check verifies that every live triangle uses three distinct live
// vertices, that no edge borders more than two live triangles and that
// every recorded degree matches the live triangles.
func (s *MeshStore) Check() error {
	count := make([]int, len(s.V))
	edges := make(map[[2]VertexID]int)
	live := 0
	for i := range s.T {
		tri := &s.T[i]
		if tri.Deleted {
			continue
		}
		live++
		a, b, c := tri.Verts[0], tri.Verts[1], tri.Verts[2]
		if a == b || b == c || a == c {
			return errors.Errorf("triangle %d repeats a vertex: %v", i, tri.Verts)
		}
		for _, v := range tri.Verts {
			if s.V[v].Deleted {
				return errors.Errorf("triangle %d uses deleted vertex %d", i, v)
			}
			count[v]++
		}
		for k := 0; k < 3; k++ {
			p, q := tri.Verts[k], tri.Verts[(k+1)%3]
			e := [2]VertexID{min(p, q), max(p, q)}
			edges[e]++
			if edges[e] > 2 {
				return errors.Errorf("edge %v borders more than two triangles", e)
			}
		}
	}
	if live != s.live {
		return errors.Errorf("live triangle count %d, recorded %d", live, s.live)
	}
	for i := range s.V {
		if s.V[i].Degree != count[i] || len(s.links[i]) != count[i] {
			return errors.Errorf("vertex %d degree %d, links %d, actual %d",
				i, s.V[i].Degree, len(s.links[i]), count[i])
		}
	}
	return nil
}
