package meshio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// objReader accumulates the vertices and faces of an OBJ stream. Faces are
// kept as polygons; see Triangulate.
type objReader struct {
	m    *Mesh
	line int
}

// ReadOBJ parses "v" and "f" records. Face corners may use the v, v/vt,
// v//vn and v/vt/vn forms and negative (relative) indices. Other records
// are ignored.
func ReadOBJ(r io.Reader) (*Mesh, error) {
	o := &objReader{m: &Mesh{}}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		o.line++
		row := strings.TrimSpace(scanner.Text())
		if row == "" || strings.HasPrefix(row, "#") {
			continue
		}
		if err := o.parseRow(strings.Fields(row)); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return o.m, nil
}

func (o *objReader) errorf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrMalformed, "obj line %d: %s", o.line, fmt.Sprintf(format, args...))
}

func (o *objReader) parseRow(ss []string) error {
	switch ss[0] {
	case "v":
		return o.parseVertex(ss[1:])
	case "f":
		return o.parseFace(ss[1:])
	}
	return nil
}

func (o *objReader) parseVertex(ss []string) error {
	// An optional fourth w component is ignored.
	if len(ss) < 3 {
		return o.errorf("vertex needs 3 coordinates, got %d", len(ss))
	}
	var p mgl64.Vec3
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(ss[i], 64)
		if err != nil {
			return o.errorf("bad coordinate %q", ss[i])
		}
		p[i] = v
	}
	o.m.Points = append(o.m.Points, p)
	return nil
}

func (o *objReader) parseFace(ss []string) error {
	if len(ss) < 3 {
		return o.errorf("face needs 3 corners, got %d", len(ss))
	}
	n := len(o.m.Points)
	cell := make([]int, 0, len(ss))
	for _, s := range ss {
		vs := strings.SplitN(s, "/", 2)
		vi, err := strconv.Atoi(vs[0])
		if err != nil {
			return o.errorf("bad face corner %q", s)
		}
		if vi < 0 {
			vi += n
		} else {
			vi--
		}
		if vi < 0 || vi >= n {
			return o.errorf("face corner %q out of range", s)
		}
		cell = append(cell, vi)
	}
	o.m.Polys = append(o.m.Polys, cell)
	return nil
}

// WriteOBJ writes points and faces with 1 based indices. Scalars are not
// representable and are skipped.
func WriteOBJ(w io.Writer, m *Mesh) error {
	bw := bufio.NewWriter(w)
	for _, p := range m.Points {
		fmt.Fprintf(bw, "v %s %s %s\n", formatFloat(p[0]), formatFloat(p[1]), formatFloat(p[2]))
	}
	for _, cell := range m.Polys {
		bw.WriteString("f")
		for _, v := range cell {
			bw.WriteByte(' ')
			bw.WriteString(strconv.Itoa(v + 1))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
