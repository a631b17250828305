package sakura

import "math"

// Affine is a 2D affine matrix laid out as [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
//
// Canvas implementations keep a stack of these to serve Save, Restore,
// Translate and Rotate.
type Affine [6]float64

// Identity is the identity affine matrix.
var Identity = Affine{1, 0, 0, 1, 0, 0}

// Mul returns m * o (o applied first).
func (m Affine) Mul(o Affine) Affine {
	return Affine{
		m[0]*o[0] + m[2]*o[1],
		m[1]*o[0] + m[3]*o[1],
		m[0]*o[2] + m[2]*o[3],
		m[1]*o[2] + m[3]*o[3],
		m[0]*o[4] + m[2]*o[5] + m[4],
		m[1]*o[4] + m[3]*o[5] + m[5],
	}
}

// Translate returns m with a translation by (x, y) applied in local space.
func (m Affine) Translate(x, y float64) Affine {
	return m.Mul(Affine{1, 0, 0, 1, x, y})
}

// Rotate returns m with a rotation of theta radians applied in local space.
func (m Affine) Rotate(theta float64) Affine {
	sin, cos := math.Sincos(theta)
	return m.Mul(Affine{cos, sin, -sin, cos, 0, 0})
}

// Invert returns the inverse of m, or Identity if m is singular.
func (m Affine) Invert() Affine {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return Identity
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Affine{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// Apply transforms the point (x, y).
func (m Affine) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// Scale returns the mean axis scale of m, used to map line widths and radii
// into device space.
func (m Affine) Scale() float64 {
	sx := math.Hypot(m[0], m[1])
	sy := math.Hypot(m[2], m[3])
	return (sx + sy) / 2
}

// TransformStack is a Save/Restore stack of affine matrices.
// The zero value holds the identity matrix.
type TransformStack struct {
	cur   Affine
	saved []Affine
	init  bool
}

// Current returns the active matrix.
func (s *TransformStack) Current() Affine {
	if !s.init {
		return Identity
	}
	return s.cur
}

// Set replaces the active matrix.
func (s *TransformStack) Set(m Affine) {
	s.cur = m
	s.init = true
}

// Save pushes the active matrix.
func (s *TransformStack) Save() {
	s.saved = append(s.saved, s.Current())
}

// Restore pops the most recently saved matrix. Unbalanced calls are ignored.
func (s *TransformStack) Restore() {
	if len(s.saved) == 0 {
		return
	}
	s.Set(s.saved[len(s.saved)-1])
	s.saved = s.saved[:len(s.saved)-1]
}

// Translate applies a local translation to the active matrix.
func (s *TransformStack) Translate(x, y float64) {
	s.Set(s.Current().Translate(x, y))
}

// Rotate applies a local rotation to the active matrix.
func (s *TransformStack) Rotate(theta float64) {
	s.Set(s.Current().Rotate(theta))
}

// Reset drops every saved matrix and restores the identity.
func (s *TransformStack) Reset() {
	s.cur = Identity
	s.init = true
	s.saved = s.saved[:0]
}

// Depth returns the number of saved matrices.
func (s *TransformStack) Depth() int {
	return len(s.saved)
}
