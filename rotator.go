package randfield

import (
	"math"

	mat2d "github.com/flywave/go3d/float64/mat2"
	vec2d "github.com/flywave/go3d/float64/vec2"
)

// Rotator rotates vectors clockwise by Degrees. The matrix is column major,
// as go3d lays out mat2d.T.
type Rotator struct {
	Degrees float64
}

func (r Rotator) RotateVector(v vec2d.T) vec2d.T {
	v2 := v
	mat := r.RotationMatrix()
	mat.TransformVec2(&v2)
	return v2
}

func (r Rotator) RotationMatrix() (m mat2d.T) {
	rad := degToRad(r.Degrees)

	c := math.Cos(rad)
	s := math.Sin(rad)

	m[0][0] = c
	m[0][1] = -s
	m[1][0] = s
	m[1][1] = c

	return m
}

// Anisotropy describes geometric anisotropy: correlation decays over Range
// along the major axis at Angle degrees counter-clockwise from +x, and over
// Range·Ratio across it.
type Anisotropy struct {
	Angle float64 `json:"angle" yaml:"angle"`
	Ratio float64 `json:"ratio" yaml:"ratio"`
}

var Isotropic = Anisotropy{Angle: 0, Ratio: 1}

func (a Anisotropy) Validate() error {
	if !(a.Ratio > 0 && a.Ratio <= 1) {
		return invalidf("anisotropy ratio must be in (0, 1], got %v", a.Ratio)
	}
	if math.IsNaN(a.Angle) || math.IsInf(a.Angle, 0) {
		return invalidf("anisotropy angle must be finite, got %v", a.Angle)
	}
	return nil
}

func (a Anisotropy) isotropic() bool {
	return a.Ratio == 1
}

// metric returns the lag distance function for a.
func (a Anisotropy) metric() func(p, q *vec2d.T) float64 {
	if a.isotropic() {
		return func(p, q *vec2d.T) float64 {
			return math.Hypot(p[0]-q[0], p[1]-q[1])
		}
	}
	// Turning the major axis onto +x.
	m := Rotator{a.Angle}.RotationMatrix()
	ratio := a.Ratio
	return func(p, q *vec2d.T) float64 {
		d := vec2d.Sub(p, q)
		m.TransformVec2(&d)
		d[1] /= ratio
		return d.Length()
	}
}

// Distance returns the anisotropic lag distance between p and q.
func (a Anisotropy) Distance(p, q vec2d.T) float64 {
	return a.metric()(&p, &q)
}
