package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertTrue(t *testing.T, value bool, msg string) {
	t.Helper()
	if !value {
		t.Error(msg)
	}
}

func TestClamp(t *testing.T) {
	assertTrue(t, Clamp(2, 0, 1) == 1, "Higher than range error")
	assertTrue(t, Clamp(1, 0, 2) == 1, "Within range error")
	assertTrue(t, Clamp(0, 1, 2) == 1, "Lower than range error")
}

func TestSqr(t *testing.T) {
	assertTrue(t, Sqr(2) == 4, "Sqr squares a number")
	assertTrue(t, Sqr(-4) == 16, "Sqr squares a number")
	assertTrue(t, Sqr(0) == 0, "Sqr squares a number")
}

func TestCalcBounds(t *testing.T) {
	verts := []Vec3{{1, 2, 3}, {0, 4, -1}, {2, 0, 0}}
	bmin, bmax := CalcBounds(verts)
	assert.Equal(t, Vec3{0, 0, -1}, bmin)
	assert.Equal(t, Vec3{2, 4, 3}, bmax)
	assert.InDelta(t, math.Sqrt(4+16+16), BoundsDiagonal(verts), 1e-12)

	bmin, bmax = CalcBounds(nil)
	assert.Equal(t, Vec3{}, bmin)
	assert.Equal(t, Vec3{}, bmax)
}

func TestTriNormal(t *testing.T) {
	n, area := TriNormal(Vec3{0, 0, 0}, Vec3{2, 0, 0}, Vec3{0, 2, 0})
	assert.Equal(t, Vec3{0, 0, 1}, n)
	assert.Equal(t, 2.0, area)

	n, area = TriNormal(Vec3{0, 0, 0}, Vec3{1, 0, 0}, Vec3{2, 0, 0})
	assert.Equal(t, Vec3{}, n, "collinear triangle has no normal")
	assert.Zero(t, area)
}

func TestAspectRatio(t *testing.T) {
	assert.InDelta(t, 1.0, AspectRatio(Vec3{0, 0, 0}, Vec3{1, 0, 0}, Vec3{0.5, math.Sqrt(3) / 2, 0}), 1e-12)
	assert.InDelta(t, math.Sqrt2, AspectRatio(Vec3{0, 0, 0}, Vec3{1, 0, 0}, Vec3{0, 1, 0}), 1e-12)
	assert.True(t, math.IsInf(AspectRatio(Vec3{0, 0, 0}, Vec3{0, 0, 0}, Vec3{0, 1, 0}), 1))
}

func TestDistances(t *testing.T) {
	assert.Equal(t, 3.0, DistanceToPlane(Vec3{5, 5, -3}, Vec3{0, 0, 0}, Vec3{0, 0, 1}))
	assert.InDelta(t, 2.0, DistanceToLine(Vec3{1, 2, 0}, Vec3{0, 0, 0}, Vec3{4, 0, 0}), 1e-12)
	assert.InDelta(t, 5.0, DistanceToLine(Vec3{3, 4, 0}, Vec3{0, 0, 0}, Vec3{0, 0, 0}), 1e-12)
}

func TestDihedralAngle(t *testing.T) {
	assert.InDelta(t, 0.0, DihedralAngle(Vec3{0, 0, 1}, Vec3{0, 0, 1}), 1e-9)
	assert.InDelta(t, 90.0, DihedralAngle(Vec3{0, 0, 1}, Vec3{1, 0, 0}), 1e-9)
	assert.InDelta(t, 90.0, DihedralAngle(Vec3{0, 0, 1}, Vec3{}), 1e-9)
	assert.InDelta(t, 180.0, DihedralAngle(Vec3{0, 0, 1}, Vec3{0, 0, -1}), 1e-9)
}

func TestPlaneBasis(t *testing.T) {
	for _, n := range []Vec3{{0, 0, 1}, {0, 1, 0}, {1, 0, 0}, Vec3{1, 2, 3}.Normalize()} {
		u, w := PlaneBasis(n)
		assert.InDelta(t, 0, u.Dot(n), 1e-12)
		assert.InDelta(t, 0, w.Dot(n), 1e-12)
		assert.InDelta(t, 1, u.Len(), 1e-12)
		assert.InDelta(t, 1, u.Cross(w).Dot(n), 1e-12, "basis must be right handed")
	}
	u, w := PlaneBasis(Vec3{0, 0, 1})
	assert.Equal(t, Vec2{1, 2}, Project2D(Vec3{-2, 1, 7}, u, w))
}

func TestFlatten(t *testing.T) {
	pts := []Vec3{{1, 2, 3}, {4, 5, 6}}
	flat := FlattenVec3(pts)
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, flat)
	assert.Equal(t, pts, UnflattenVec3(append(flat, 7)))
}
