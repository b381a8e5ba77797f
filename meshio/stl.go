package meshio

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/gorustyt/godecimate/common"
	"github.com/gorustyt/godecimate/common/rw"
)

const (
	stlHeaderSize = 80
	stlFacetSize  = 50
)

// ReadSTL decodes a binary or ASCII STL file. STL stores every facet with
// its own corners, so coincident corners are welded into shared points.
func ReadSTL(data []byte) (*Mesh, error) {
	if len(data) >= stlHeaderSize+4 {
		r := rw.NewBinReader(data[stlHeaderSize : stlHeaderSize+4])
		n := int(r.ReadUInt32())
		if len(data) == stlHeaderSize+4+n*stlFacetSize {
			return readBinarySTL(data[stlHeaderSize+4:], n)
		}
	}
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("solid")) {
		return readASCIISTL(data)
	}
	return nil, errors.Wrap(ErrMalformed, "stl: neither binary nor ascii")
}

func readBinarySTL(data []byte, n int) (*Mesh, error) {
	r := rw.NewBinReader(data)
	loc := NewLocator(0)
	m := &Mesh{}
	var corner [3]float32
	for i := 0; i < n; i++ {
		r.Skip(12) // facet normal
		var cell [3]int
		for k := 0; k < 3; k++ {
			r.ReadFloat32s(corner[:])
			cell[k] = loc.Insert(mgl64.Vec3{float64(corner[0]), float64(corner[1]), float64(corner[2])})
		}
		r.Skip(2) // attribute byte count
		if err := r.Err(); err != nil {
			return nil, errors.Wrapf(ErrMalformed, "stl facet %d: %v", i, err)
		}
		m.Polys = append(m.Polys, []int{cell[0], cell[1], cell[2]})
	}
	m.Points = loc.Points
	return m, nil
}

func readASCIISTL(data []byte) (*Mesh, error) {
	loc := NewLocator(0)
	m := &Mesh{}
	var cell []int
	scanner := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for scanner.Scan() {
		line++
		ss := strings.Fields(scanner.Text())
		if len(ss) == 0 {
			continue
		}
		switch ss[0] {
		case "outer":
			cell = cell[:0]
		case "vertex":
			if len(ss) != 4 {
				return nil, errors.Wrapf(ErrMalformed, "stl line %d: vertex needs 3 coordinates", line)
			}
			var p mgl64.Vec3
			for i := 0; i < 3; i++ {
				v, err := strconv.ParseFloat(ss[i+1], 64)
				if err != nil {
					return nil, errors.Wrapf(ErrMalformed, "stl line %d: bad coordinate %q", line, ss[i+1])
				}
				p[i] = v
			}
			cell = append(cell, loc.Insert(p))
		case "endloop":
			if len(cell) != 3 {
				return nil, errors.Wrapf(ErrMalformed, "stl line %d: facet has %d corners", line, len(cell))
			}
			m.Polys = append(m.Polys, []int{cell[0], cell[1], cell[2]})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	m.Points = loc.Points
	return m, nil
}

// EncodeSTL writes a binary STL. Only triangles are representable; the
// coordinates are narrowed to float32.
func EncodeSTL(m *Mesh) ([]byte, error) {
	w := rw.NewBinWriter()
	header := fmt.Sprintf("godecimate %d points %d triangles", len(m.Points), len(m.Polys))
	w.WriteBytes([]byte(header))
	w.PadZero(stlHeaderSize - len(header))
	w.WriteUInt32(uint32(len(m.Polys)))
	for i, cell := range m.Polys {
		if len(cell) != 3 {
			return nil, errors.Errorf("stl: cell %d has %d corners, only triangles are supported", i, len(cell))
		}
		a, b, c := m.Points[cell[0]], m.Points[cell[1]], m.Points[cell[2]]
		n, _ := common.TriNormal(a, b, c)
		w.WriteFloat32s(n[:])
		w.WriteFloat32s(a[:])
		w.WriteFloat32s(b[:])
		w.WriteFloat32s(c[:])
		w.WriteUInt16(0)
	}
	return w.GetWriteBytes(), nil
}
