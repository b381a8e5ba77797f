package meshio

import (
	"math"

	"github.com/pkg/errors"

	"github.com/gorustyt/godecimate/common"
	"github.com/gorustyt/godecimate/common/message"
)

// ReadMeshPB decodes a meshpb message. Indices are read as triangles.
func ReadMeshPB(data []byte) (*Mesh, error) {
	var msg message.Mesh
	if err := message.Decode(data, &msg); err != nil {
		return nil, errors.Wrapf(ErrMalformed, "meshpb: %v", err)
	}
	if len(msg.Points)%3 != 0 {
		return nil, errors.Wrapf(ErrMalformed, "meshpb: %d coordinates do not form points", len(msg.Points))
	}
	if len(msg.Indices)%3 != 0 {
		return nil, errors.Wrapf(ErrMalformed, "meshpb: %d indices do not form triangles", len(msg.Indices))
	}
	m := &Mesh{Scalars: msg.Scalars}
	m.Points = common.UnflattenVec3(msg.Points)
	if m.Scalars != nil && len(m.Scalars) != len(m.Points) {
		return nil, errors.Wrapf(ErrMalformed, "meshpb: %d scalars for %d points", len(m.Scalars), len(m.Points))
	}
	for i := 0; i < len(msg.Indices); i += 3 {
		m.Polys = append(m.Polys, []int{int(msg.Indices[i]), int(msg.Indices[i+1]), int(msg.Indices[i+2])})
	}
	return m, nil
}

// EncodeMeshPB encodes triangles, points and scalars.
func EncodeMeshPB(m *Mesh) ([]byte, error) {
	msg := message.Mesh{
		Points:  common.FlattenVec3(m.Points),
		Indices: make([]uint32, 0, len(m.Polys)*3),
		Scalars: m.Scalars,
	}
	for i, cell := range m.Polys {
		if len(cell) != 3 {
			return nil, errors.Errorf("meshpb: cell %d has %d corners, only triangles are supported", i, len(cell))
		}
		for _, v := range cell {
			if v < 0 || uint64(v) > math.MaxUint32 {
				return nil, errors.Errorf("meshpb: cell %d index %d out of range", i, v)
			}
			msg.Indices = append(msg.Indices, uint32(v))
		}
	}
	return message.Encode(&msg)
}
