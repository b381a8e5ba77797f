package message

import (
	"math"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"
)

// meshDescriptor describes
//
//	syntax = "proto3";
//	package godecimate;
//	message Mesh {
//	  repeated double points  = 1; // x,y,z triples
//	  repeated uint64 indices = 2; // triangle corners, at most MaxUint32
//	  repeated double scalars = 3; // optional per point values
//	}
//
// Repeated scalars are packed in proto3. Indices are declared uint64 so an
// oversized value is seen and rejected instead of being truncated.
var meshDescriptor = mustMeshDescriptor()

var (
	fieldPoints  = meshDescriptor.Fields().ByNumber(1)
	fieldIndices = meshDescriptor.Fields().ByNumber(2)
	fieldScalars = meshDescriptor.Fields().ByNumber(3)
)

var ErrMalformed = errors.New("malformed mesh message")

// Mesh is the decoded form of the mesh message.
type Mesh struct {
	Points  []float64
	Indices []uint32
	Scalars []float64
}

func repeatedField(name string, number int32, typ descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:     proto.String(name),
		JsonName: proto.String(name),
		Number:   proto.Int32(number),
		Label:    descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum(),
		Type:     typ.Enum(),
	}
}

func mustMeshDescriptor() protoreflect.MessageDescriptor {
	fdp := &descriptorpb.FileDescriptorProto{
		Name:    proto.String("godecimate/mesh.proto"),
		Package: proto.String("godecimate"),
		Syntax:  proto.String("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{{
			Name: proto.String("Mesh"),
			Field: []*descriptorpb.FieldDescriptorProto{
				repeatedField("points", 1, descriptorpb.FieldDescriptorProto_TYPE_DOUBLE),
				repeatedField("indices", 2, descriptorpb.FieldDescriptorProto_TYPE_UINT64),
				repeatedField("scalars", 3, descriptorpb.FieldDescriptorProto_TYPE_DOUBLE),
			},
		}},
	}
	fd, err := protodesc.NewFile(fdp, new(protoregistry.Files))
	if err != nil {
		panic(err)
	}
	return fd.Messages().ByName("Mesh")
}

func setDoubles(m *dynamicpb.Message, fd protoreflect.FieldDescriptor, values []float64) {
	if len(values) == 0 {
		return
	}
	l := m.Mutable(fd).List()
	for _, v := range values {
		l.Append(protoreflect.ValueOfFloat64(v))
	}
}

func getDoubles(m *dynamicpb.Message, fd protoreflect.FieldDescriptor) []float64 {
	l := m.Get(fd).List()
	if l.Len() == 0 {
		return nil
	}
	out := make([]float64, l.Len())
	for i := range out {
		out[i] = l.Get(i).Float()
	}
	return out
}

func Encode(msg *Mesh) (data []byte, err error) {
	m := dynamicpb.NewMessage(meshDescriptor)
	setDoubles(m, fieldPoints, msg.Points)
	if len(msg.Indices) > 0 {
		l := m.Mutable(fieldIndices).List()
		for _, v := range msg.Indices {
			l.Append(protoreflect.ValueOfUint64(uint64(v)))
		}
	}
	setDoubles(m, fieldScalars, msg.Scalars)
	data, err = proto.Marshal(m)
	return data, errors.Wrap(err, "encode mesh")
}

// Decode parses data into msg. Unknown fields are skipped. Both packed and
// unpacked encodings of the repeated fields are accepted.
func Decode(data []byte, msg *Mesh) error {
	m := dynamicpb.NewMessage(meshDescriptor)
	if err := proto.Unmarshal(data, m); err != nil {
		return errors.Wrapf(ErrMalformed, "%v", err)
	}
	msg.Points = getDoubles(m, fieldPoints)
	msg.Scalars = getDoubles(m, fieldScalars)
	msg.Indices = nil
	l := m.Get(fieldIndices).List()
	if l.Len() > 0 {
		msg.Indices = make([]uint32, l.Len())
	}
	for i := 0; i < l.Len(); i++ {
		v := l.Get(i).Uint()
		if v > math.MaxUint32 {
			return errors.Wrapf(ErrMalformed, "index %d overflows uint32", v)
		}
		msg.Indices[i] = uint32(v)
	}
	return nil
}
