// Package meshio reads and writes triangle meshes as Wavefront OBJ, STL
// (binary or ASCII) and meshpb, a protobuf encoded point/index/scalar
// message.
package meshio

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/gorustyt/godecimate/decimate"
)

var (
	ErrUnknownFormat = errors.New("unknown mesh format")
	ErrMalformed     = errors.New("malformed mesh file")
)

type Format string

const (
	FormatOBJ    Format = "obj"
	FormatSTL    Format = "stl"
	FormatMeshPB Format = "meshpb"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(p string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(p), ".")) {
	case "obj":
		return FormatOBJ, nil
	case "stl":
		return FormatSTL, nil
	case "meshpb", "pb":
		return FormatMeshPB, nil
	}
	return "", errors.Wrapf(ErrUnknownFormat, "%q", p)
}

// Mesh is a decoded file: geometry plus the per point scalars some formats
// carry.
type Mesh struct {
	decimate.Mesh
	Scalars []float64
}

func Read(r io.Reader, f Format) (*Mesh, error) {
	switch f {
	case FormatOBJ:
		return ReadOBJ(r)
	case FormatSTL:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		return ReadSTL(data)
	case FormatMeshPB:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		return ReadMeshPB(data)
	}
	return nil, errors.Wrapf(ErrUnknownFormat, "%q", f)
}

func Write(w io.Writer, f Format, m *Mesh) error {
	switch f {
	case FormatOBJ:
		return WriteOBJ(w, m)
	case FormatSTL:
		data, err := EncodeSTL(m)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case FormatMeshPB:
		data, err := EncodeMeshPB(m)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}
	return errors.Wrapf(ErrUnknownFormat, "%q", f)
}

// Load reads the mesh stored at p.
func Load(p string) (*Mesh, error) {
	f, err := FormatFromPath(p)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	m, err := Read(file, f)
	if err != nil {
		return nil, errors.WithMessagef(err, "load %s", filepath.Base(p))
	}
	return m, nil
}

// Save writes m to p, replacing any existing file.
func Save(p string, m *Mesh) error {
	f, err := FormatFromPath(p)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Write(&buf, f, m); err != nil {
		return errors.WithMessagef(err, "save %s", filepath.Base(p))
	}
	return os.WriteFile(p, buf.Bytes(), 0o644)
}

// Triangulate splits every polygon with more than three corners into a fan
// around its first corner. Cells with fewer than three corners are dropped.
func Triangulate(m *decimate.Mesh) {
	polys := make([][]int, 0, len(m.Polys))
	for _, cell := range m.Polys {
		for i := 2; i < len(cell); i++ {
			polys = append(polys, []int{cell[0], cell[i-1], cell[i]})
		}
	}
	m.Polys = polys
}
