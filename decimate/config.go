package decimate

import (
	"math"

	"github.com/gorustyt/godecimate/common"
)

// PlaneFit selects how the local plane of a vertex loop is estimated.
type PlaneFit string

const (
	// PlaneFitArea averages the fan triangle normals weighted by area.
	PlaneFitArea PlaneFit = "area"
	// PlaneFitLeastSquares fits the loop points with a total least squares
	// plane.
	PlaneFitLeastSquares PlaneFit = "least_squares"
)

// / Specifies the parameters of a decimation run.
// / Error values are fractions of the input bounding box diagonal, angles are
// / in degrees.
type Config struct {
	/// Error threshold of the first pass. [Limits: 0 <= value <= 1]
	InitialError float64 `yaml:"initial_error"`

	/// Added to the error threshold after every pass. [Limits: 0 <= value <= 1]
	ErrorIncrement float64 `yaml:"error_increment"`

	/// Ceiling of the error threshold. [Limits: 0 <= value <= 1]
	MaximumError float64 `yaml:"maximum_error"`

	/// Fraction of the input triangles to remove. [Limits: 0 <= value <= 1]
	TargetReduction float64 `yaml:"target_reduction"`

	/// Number of error/angle levels to run. [Limit: >= 1]
	MaximumIterations int `yaml:"maximum_iterations"`

	/// Sweeps over all vertices per level. [Limit: >= 1]
	MaximumSubIterations int `yaml:"maximum_sub_iterations"`

	/// Dihedral angle above which a spoke is a feature edge. [Limits: 0 <= value <= 180]
	InitialFeatureAngle float64 `yaml:"initial_feature_angle"`

	/// Added to the feature angle after every pass. [Limits: 0 <= value <= 180]
	FeatureAngleIncrement float64 `yaml:"feature_angle_increment"`

	/// Ceiling of the feature angle. [Limits: 0 <= value <= 180]
	MaximumFeatureAngle float64 `yaml:"maximum_feature_angle"`

	/// Keep vertices sitting on a single feature edge.
	PreserveEdges bool `yaml:"preserve_edges"`

	/// Allow deleting vertices on the mesh boundary.
	BoundaryVertexDeletion bool `yaml:"boundary_vertex_deletion"`

	/// Largest longest/shortest edge ratio of a new triangle. [Limits: 1 <= value <= 1000]
	AspectRatio float64 `yaml:"aspect_ratio"`

	/// Vertices with more triangles are never deleted, and no vertex is
	/// pushed past this count. [Limit: >= 25]
	Degree int `yaml:"degree"`

	/// Forbid deletions that close holes or join boundaries.
	PreserveTopology bool `yaml:"preserve_topology"`

	/// Emit the per point error array.
	GenerateErrorScalars bool `yaml:"generate_error_scalars"`

	/// Number of complex vertex warnings logged before going quiet. [Limit: >= 0]
	MaximumNumberOfSquawks int `yaml:"maximum_number_of_squawks"`

	PlaneFit PlaneFit `yaml:"plane_fit"`
}

const (
	minDegree         = 25
	maxAspectRatio    = 1000
	maxFeatureAngle   = 180
	defaultIterations = 6
)

func DefaultConfig() Config {
	return Config{
		InitialError:           0.0,
		ErrorIncrement:         0.005,
		MaximumError:           0.1,
		TargetReduction:        0.9,
		MaximumIterations:      defaultIterations,
		MaximumSubIterations:   2,
		InitialFeatureAngle:    30,
		FeatureAngleIncrement:  0,
		MaximumFeatureAngle:    60,
		PreserveEdges:          true,
		BoundaryVertexDeletion: true,
		AspectRatio:            25,
		Degree:                 minDegree,
		PreserveTopology:       true,
		GenerateErrorScalars:   false,
		MaximumNumberOfSquawks: 10,
		PlaneFit:               PlaneFitArea,
	}
}

func clampFraction(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return common.Clamp(v, 0, 1)
}

func clampAngle(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return common.Clamp(v, 0, maxFeatureAngle)
}

// Clamped returns a copy with every option forced into its valid range.
func (c Config) Clamped() Config {
	c.InitialError = clampFraction(c.InitialError)
	c.ErrorIncrement = clampFraction(c.ErrorIncrement)
	c.MaximumError = clampFraction(c.MaximumError)
	c.TargetReduction = clampFraction(c.TargetReduction)
	c.MaximumIterations = max(c.MaximumIterations, 1)
	c.MaximumSubIterations = max(c.MaximumSubIterations, 1)
	c.InitialFeatureAngle = clampAngle(c.InitialFeatureAngle)
	c.FeatureAngleIncrement = clampAngle(c.FeatureAngleIncrement)
	c.MaximumFeatureAngle = clampAngle(c.MaximumFeatureAngle)
	// Thresholds never start above their ceilings.
	c.InitialError = min(c.InitialError, c.MaximumError)
	c.InitialFeatureAngle = min(c.InitialFeatureAngle, c.MaximumFeatureAngle)
	if math.IsNaN(c.AspectRatio) {
		c.AspectRatio = 1
	}
	c.AspectRatio = common.Clamp(c.AspectRatio, 1, maxAspectRatio)
	c.Degree = max(c.Degree, minDegree)
	c.MaximumNumberOfSquawks = max(c.MaximumNumberOfSquawks, 0)
	if c.PlaneFit != PlaneFitLeastSquares {
		c.PlaneFit = PlaneFitArea
	}
	return c
}
