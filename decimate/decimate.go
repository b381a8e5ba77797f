// Package decimate reduces the triangle count of a mesh by repeatedly
// deleting vertices and re-triangulating the holes they leave.
//
// Each pass visits every vertex, classifies it from the shape of its
// triangle fan, measures how far it lies from the surface that would
// replace it, and deletes it when that distance stays under the current
// error threshold and the hole can be filled with well shaped triangles.
// Thresholds grow pass after pass until the target reduction is reached or
// the limits are exhausted. Only existing points are kept; no point is
// moved or created.
package decimate

import (
	"context"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/gorustyt/godecimate/common"
)

type decimator struct {
	cfg      Config
	store    *MeshStore
	log      *zap.Logger
	progress func(float64)

	// bounding box diagonal of the input, the unit of every error value
	diagonal float64

	errorThreshold float64
	featureAngle   float64
	inputTris      int
	done           bool
	stats          Stats

	// called after every committed deletion
	onDelete func(v VertexID, err, threshold float64)

	loop    Loop
	sub     [2]subLoop
	rim     []rimEdge
	pts     []mgl64.Vec2
	idx     []int
	degree  []int
	newTris [][3]VertexID
}

func newDecimator(cfg Config, opts ...Option) *decimator {
	d := &decimator{
		cfg: cfg.Clamped(),
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.store == nil {
		d.store = NewMeshStore()
	}
	return d
}

// Decimate removes vertices from in until cfg.TargetReduction of its
// triangles are gone or no further vertex can be deleted within the error,
// feature angle, aspect ratio, degree and topology limits. The input is not
// modified.
//
// Cancelling ctx stops the run between two vertices; the mesh reached so
// far is returned with Stats.Aborted set.
func Decimate(ctx context.Context, in *Mesh, cfg Config, opts ...Option) (*Result, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	d := newDecimator(cfg, opts...)
	d.load(in)
	d.run(ctx)
	return d.output(), nil
}

func validate(in *Mesh) error {
	if in == nil || len(in.Points) == 0 {
		return errors.Wrap(ErrInvalidInput, "no points")
	}
	if len(in.Polys) == 0 {
		return errors.Wrap(ErrInvalidInput, "no cells")
	}
	for i, p := range in.Points {
		if !common.Visfinite(p) {
			return errors.Wrapf(ErrInvalidInput, "point %d is not finite: %v", i, p)
		}
	}
	for i, cell := range in.Polys {
		if len(cell) != 3 {
			return errors.Wrapf(ErrInvalidInput, "cell %d has %d points, only triangles are supported", i, len(cell))
		}
		for _, v := range cell {
			if v < 0 || v >= len(in.Points) {
				return errors.Wrapf(ErrInvalidInput, "cell %d references point %d of %d", i, v, len(in.Points))
			}
		}
		if cell[0] == cell[1] || cell[1] == cell[2] || cell[0] == cell[2] {
			return errors.Wrapf(ErrInvalidInput, "cell %d repeats a point: %v", i, cell)
		}
	}
	return nil
}

func (d *decimator) load(in *Mesh) {
	s := d.store
	s.Reset()
	for _, p := range in.Points {
		s.AddVertex(p)
	}
	for _, cell := range in.Polys {
		s.AddTriangle(VertexID(cell[0]), VertexID(cell[1]), VertexID(cell[2]))
	}
	d.diagonal = common.BoundsDiagonal(in.Points)
	d.inputTris = len(in.Polys)
	d.stats = Stats{
		InputPoints:    len(in.Points),
		InputTriangles: len(in.Polys),
	}
	d.done = false
}

func (d *decimator) reduction() float64 {
	if d.inputTris == 0 {
		return 0
	}
	return 1 - float64(d.store.NumLiveTriangles())/float64(d.inputTris)
}

func (d *decimator) targetReached() bool {
	return d.reduction() >= d.cfg.TargetReduction
}

func (d *decimator) reportProgress() {
	if d.progress == nil {
		return
	}
	fraction := 1.0
	if d.cfg.TargetReduction > 0 {
		fraction = math.Min(d.reduction()/d.cfg.TargetReduction, 1)
	}
	d.progress(fraction)
}

// run drives the passes. Every pass sweeps the vertices up to
// MaximumSubIterations times at fixed thresholds, then relaxes the error
// and feature angle thresholds by their increments.
func (d *decimator) run(ctx context.Context) {
	cfg := d.cfg
	d.errorThreshold = cfg.InitialError
	d.featureAngle = cfg.InitialFeatureAngle
	defer d.reportProgress()

	for d.stats.Iterations < cfg.MaximumIterations && !d.done {
		if d.targetReached() {
			d.done = true
			break
		}
		d.stats.Iterations++
		passDeleted := 0
		for sub := 0; sub < cfg.MaximumSubIterations; sub++ {
			if d.targetReached() {
				d.done = true
				break
			}
			deleted, aborted := d.sweep(ctx)
			d.stats.SubIterations++
			passDeleted += deleted
			if aborted {
				d.stats.Aborted = true
				d.log.Debug("decimation cancelled", zap.Error(ctx.Err()))
				return
			}
			d.reportProgress()
			if deleted == 0 || d.done {
				break
			}
		}

		d.log.Debug("pass finished",
			zap.Int("pass", d.stats.Iterations),
			zap.Float64("error", d.errorThreshold),
			zap.Float64("feature_angle", d.featureAngle),
			zap.Int("deleted", passDeleted),
			zap.Int("triangles", d.store.NumLiveTriangles()))

		if d.done {
			break
		}
		if d.errorThreshold >= cfg.MaximumError && d.featureAngle >= cfg.MaximumFeatureAngle && passDeleted == 0 {
			break
		}
		d.errorThreshold = math.Min(d.errorThreshold+cfg.ErrorIncrement, cfg.MaximumError)
		d.featureAngle = math.Min(d.featureAngle+cfg.FeatureAngleIncrement, cfg.MaximumFeatureAngle)
	}
}

// sweep visits every live vertex once in index order.
func (d *decimator) sweep(ctx context.Context) (deleted int, aborted bool) {
	for i := range d.store.V {
		if ctx.Err() != nil {
			return deleted, true
		}
		v := &d.store.V[i]
		if v.Deleted || v.Degree == 0 {
			continue
		}
		if d.visit(VertexID(i)) {
			deleted++
			if d.targetReached() {
				d.done = true
				return deleted, false
			}
		}
	}
	return deleted, false
}

// visit classifies v and deletes it if every constraint holds.
func (d *decimator) visit(v VertexID) bool {
	vt, loop := d.classify(v)
	d.stats.Classifications[vt]++
	if vt == Complex {
		d.squawk(loop)
		return false
	}
	if r := d.tryDelete(vt, loop); r != declineNone {
		d.stats.tallyDecline(r)
		return false
	}
	return true
}

func (d *decimator) squawk(loop *Loop) {
	if d.stats.Squawks >= d.cfg.MaximumNumberOfSquawks {
		d.stats.SuppressedSquawks++
		return
	}
	d.stats.Squawks++
	v := &d.store.V[loop.Vertex]
	d.log.Warn("complex vertex kept",
		zap.Int32("vertex", int32(loop.Vertex)),
		zap.String("reason", loop.reason),
		zap.Int("degree", v.Degree),
		zap.Int("features", len(loop.Features)),
		zap.Float64("feature_angle", v.FeatureAngle))
}

func (d *decimator) tryDelete(vt VertexType, loop *Loop) declineReason {
	switch vt {
	case BoundaryEdge:
		if !d.cfg.BoundaryVertexDeletion {
			return declinePreserved
		}
	case InteriorEdge:
		if d.cfg.PreserveEdges {
			return declinePreserved
		}
	case Complex:
		return declineComplex
	}

	e := d.evaluateError(vt, loop)
	vert := &d.store.V[loop.Vertex]
	vert.Error = e
	vert.evaluated = true
	if e > d.errorThreshold {
		return declineErrorBound
	}

	d.newTris = d.newTris[:0]
	d.prepareDegrees(loop)
	switch {
	case vt == Corner:
		subs, ok := d.split(loop)
		if !ok {
			return declineSplit
		}
		for _, sub := range subs {
			if !d.triangulate(sub.Verts, sub.Normal) {
				return declineTriangulation
			}
		}
	case loop.Open:
		n := len(loop.Verts)
		if n < 3 || !d.edgeAllowed(loop.Verts[n-1], loop.Verts[0], 1) {
			return declineTriangulation
		}
		if !d.triangulate(loop.Verts, loop.Normal) {
			return declineTriangulation
		}
	default:
		if !d.triangulate(loop.Verts, loop.Normal) {
			return declineTriangulation
		}
	}
	if len(d.newTris) >= len(loop.Tris) {
		return declineTriangulation
	}

	d.commit(loop)
	if d.onDelete != nil {
		d.onDelete(loop.Vertex, e, d.errorThreshold)
	}
	return declineNone
}

// commit swaps the fan of the loop vertex for the new triangles. Fan slots
// are reused in order and the leftovers deleted.
func (d *decimator) commit(loop *Loop) {
	s := d.store
	for k, t := range loop.Tris {
		if k < len(d.newTris) {
			s.ReplaceTriangle(t, d.newTris[k])
		} else {
			s.DeleteTriangle(t)
		}
	}
	s.DeleteVertex(loop.Vertex)
	d.stats.Deleted++
}
