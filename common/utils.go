package common

import "github.com/go-gl/mathgl/mgl64"

type Vec3 = mgl64.Vec3
type Vec2 = mgl64.Vec2

type IT interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Prev returns the previous index of a ring of n elements.
func Prev(i, n int) int {
	if i-1 >= 0 {
		return i - 1
	}
	return n - 1
}

// Next returns the next index of a ring of n elements.
func Next(i, n int) int {
	if i+1 < n {
		return i + 1
	}
	return 0
}

// FlattenVec3 packs points into x,y,z triples.
func FlattenVec3(points []Vec3) []float64 {
	res := make([]float64, 0, len(points)*3)
	for _, p := range points {
		res = append(res, p[0], p[1], p[2])
	}
	return res
}

// UnflattenVec3 is the inverse of FlattenVec3. Trailing values that do not
// form a full triple are dropped.
func UnflattenVec3(flat []float64) []Vec3 {
	res := make([]Vec3, 0, len(flat)/3)
	for i := 0; i+2 < len(flat); i += 3 {
		res = append(res, Vec3{flat[i], flat[i+1], flat[i+2]})
	}
	return res
}
