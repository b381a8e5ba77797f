package decimate

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Stats summarises a decimation run.
type Stats struct {
	InputPoints     int
	InputTriangles  int
	OutputPoints    int
	OutputTriangles int

	// Classifications counts every classification made, indexed by
	// VertexType. A vertex is counted once per visit.
	Classifications [numVertexTypes]int

	Deleted int

	// Vertices kept although their type allowed deletion, by reason.
	DeclinedPreserved     int
	DeclinedErrorBound    int
	DeclinedSplit         int
	DeclinedTriangulation int

	Squawks           int
	SuppressedSquawks int

	Iterations    int
	SubIterations int

	FinalError        float64
	FinalFeatureAngle float64
	Reduction         float64

	Aborted bool
}

func (s *Stats) Count(t VertexType) int {
	return s.Classifications[t]
}

func (s *Stats) tallyDecline(r declineReason) {
	switch r {
	case declinePreserved:
		s.DeclinedPreserved++
	case declineErrorBound:
		s.DeclinedErrorBound++
	case declineSplit:
		s.DeclinedSplit++
	case declineTriangulation:
		s.DeclinedTriangulation++
	}
}

// MarshalLogObject lets a Stats value be logged with zap.Object.
func (s *Stats) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt("input_triangles", s.InputTriangles)
	enc.AddInt("output_triangles", s.OutputTriangles)
	enc.AddInt("input_points", s.InputPoints)
	enc.AddInt("output_points", s.OutputPoints)
	enc.AddFloat64("reduction", s.Reduction)
	enc.AddInt("deleted", s.Deleted)
	for t := Simple; t < numVertexTypes; t++ {
		enc.AddInt(t.String(), s.Classifications[t])
	}
	enc.AddInt("declined_preserved", s.DeclinedPreserved)
	enc.AddInt("declined_error", s.DeclinedErrorBound)
	enc.AddInt("declined_split", s.DeclinedSplit)
	enc.AddInt("declined_triangulation", s.DeclinedTriangulation)
	enc.AddInt("squawks", s.Squawks)
	enc.AddInt("suppressed_squawks", s.SuppressedSquawks)
	enc.AddInt("iterations", s.Iterations)
	enc.AddInt("sub_iterations", s.SubIterations)
	enc.AddFloat64("final_error", s.FinalError)
	enc.AddFloat64("final_feature_angle", s.FinalFeatureAngle)
	enc.AddBool("aborted", s.Aborted)
	return nil
}

var _ zapcore.ObjectMarshaler = (*Stats)(nil)

func statsField(s *Stats) zap.Field {
	return zap.Object("stats", s)
}
