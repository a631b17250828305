package sakura

import "math"

// LineCap selects how stroked open subpaths end.
type LineCap uint8

const (
	LineCapButt   LineCap = iota // flat end at the endpoint
	LineCapRound                 // semicircle past the endpoint
	LineCapSquare                // half-width square past the endpoint
)

// Canvas is the immediate-mode 2D drawing context the scene renders into.
// It mirrors the subset of the HTML canvas API the scene needs; any surface
// that can fill and stroke paths under an affine transform can host a Scene.
//
// Angles are in radians, coordinates in pixels with Y pointing down.
type Canvas interface {
	Save()
	Restore()
	Translate(x, y float64)
	Rotate(theta float64)

	SetFillColor(c Color)
	SetStrokeColor(c Color)
	SetLineWidth(w float64)
	SetLineCap(lc LineCap)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Arc(x, y, radius, startAngle, endAngle float64)
	Ellipse(x, y, radiusX, radiusY, rotation, startAngle, endAngle float64)
	Fill()
	Stroke()

	FillRect(x, y, w, h float64)
	ClearRect(x, y, w, h float64)
}

// fillCircle fills a full circle.
func fillCircle(c Canvas, x, y, r float64, col Color) {
	c.BeginPath()
	c.Arc(x, y, r, 0, 2*math.Pi)
	c.SetFillColor(col)
	c.Fill()
}

// Subpath is a flattened polyline in device space.
type Subpath struct {
	Points []Vec2
	Closed bool
}

// PathBuilder flattens Canvas path commands into device-space polylines.
// Backends without native curve support embed one and read Subpaths on
// Fill and Stroke.
type PathBuilder struct {
	Subpaths []Subpath
	// Tolerance is the maximum device-space chord error when flattening arcs.
	// Zero means 0.35 px.
	Tolerance float64
}

// Begin discards the current path.
func (p *PathBuilder) Begin() {
	for i := range p.Subpaths {
		p.Subpaths[i].Points = p.Subpaths[i].Points[:0]
	}
	p.Subpaths = p.Subpaths[:0]
}

// MoveTo starts a new subpath at (x, y) transformed by m.
func (p *PathBuilder) MoveTo(m Affine, x, y float64) {
	dx, dy := m.Apply(x, y)
	p.Subpaths = append(p.Subpaths, Subpath{Points: []Vec2{{dx, dy}}})
}

// LineTo extends the current subpath, starting one if none exists.
func (p *PathBuilder) LineTo(m Affine, x, y float64) {
	if len(p.Subpaths) == 0 {
		p.MoveTo(m, x, y)
		return
	}
	dx, dy := m.Apply(x, y)
	sp := &p.Subpaths[len(p.Subpaths)-1]
	sp.Points = append(sp.Points, Vec2{dx, dy})
}

// Ellipse appends an elliptical arc. The arc connects to the current subpath
// with a straight line, as in the HTML canvas. A full turn closes the subpath.
func (p *PathBuilder) Ellipse(m Affine, x, y, rx, ry, rotation, start, end float64) {
	if rx < 0 || ry < 0 {
		return
	}
	sweep := end - start
	full := math.Abs(sweep) >= 2*math.Pi-1e-9
	if full {
		sweep = math.Copysign(2*math.Pi, sweep)
	}

	n := p.segments(math.Max(rx, ry)*m.Scale(), math.Abs(sweep))
	local := Identity.Translate(x, y).Rotate(rotation)
	for i := 0; i <= n; i++ {
		if full && i == n {
			break
		}
		t := start + sweep*float64(i)/float64(n)
		ex, ey := local.Apply(rx*math.Cos(t), ry*math.Sin(t))
		if i == 0 && (full || len(p.Subpaths) == 0) {
			p.MoveTo(m, ex, ey)
			continue
		}
		p.LineTo(m, ex, ey)
	}
	if full {
		p.Subpaths[len(p.Subpaths)-1].Closed = true
	}
}

// segments returns how many chords approximate an arc of the given device
// radius and sweep within the tolerance.
func (p *PathBuilder) segments(radius, sweep float64) int {
	tol := p.Tolerance
	if tol <= 0 {
		tol = 0.35
	}
	if radius <= tol {
		return max(3, int(math.Ceil(sweep/(math.Pi/2))))
	}
	step := 2 * math.Acos(1-tol/radius)
	n := int(math.Ceil(sweep / step))
	return min(max(n, 6), 128)
}
