package host

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/sakura"
)

// maxBatchVertices keeps one DrawTriangles call within uint16 indices.
const maxBatchVertices = 65535 - 256

// capSegments is the chord count of a round cap or join disc.
const capSegments = 12

// --- White pixel singleton (no sync.Once; ebiten drives a single goroutine) ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
// Every untextured triangle samples its center.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// canvasStyle is the part of the drawing state saved by Save.
type canvasStyle struct {
	fill      sakura.Color
	stroke    sakura.Color
	lineWidth float64
	lineCap   sakura.LineCap
}

// Canvas implements sakura.Canvas on an ebiten image. Paths are flattened by
// a sakura.PathBuilder, filled as triangle fans and stroked as quad strips.
// The zero value is not usable; create one with NewCanvas.
type Canvas struct {
	target *ebiten.Image
	xf     sakura.TransformStack
	path   sakura.PathBuilder
	style  canvasStyle
	saved  []canvasStyle

	verts []ebiten.Vertex
	inds  []uint16

	// scratch receives translucent strokes as opaque coverage before they
	// are composited onto target once.
	scratch *ebiten.Image
}

// NewCanvas creates a canvas drawing into target. target may be nil and set
// later with SetTarget.
func NewCanvas(target *ebiten.Image) *Canvas {
	return &Canvas{
		target: target,
		style:  canvasStyle{fill: sakura.Color{A: 1}, stroke: sakura.Color{A: 1}, lineWidth: 1},
	}
}

// SetTarget redirects drawing to img.
func (c *Canvas) SetTarget(img *ebiten.Image) {
	c.target = img
}

// Target returns the image being drawn into.
func (c *Canvas) Target() *ebiten.Image {
	return c.target
}

// Save pushes the transform and style.
func (c *Canvas) Save() {
	c.xf.Save()
	c.saved = append(c.saved, c.style)
}

// Restore pops the transform and style. Unbalanced calls are ignored.
func (c *Canvas) Restore() {
	c.xf.Restore()
	if n := len(c.saved); n > 0 {
		c.style = c.saved[n-1]
		c.saved = c.saved[:n-1]
	}
}

func (c *Canvas) Translate(x, y float64) { c.xf.Translate(x, y) }
func (c *Canvas) Rotate(theta float64)   { c.xf.Rotate(theta) }

func (c *Canvas) SetFillColor(col sakura.Color)   { c.style.fill = col }
func (c *Canvas) SetStrokeColor(col sakura.Color) { c.style.stroke = col }
func (c *Canvas) SetLineWidth(w float64)          { c.style.lineWidth = w }
func (c *Canvas) SetLineCap(lc sakura.LineCap)    { c.style.lineCap = lc }

func (c *Canvas) BeginPath()          { c.path.Begin() }
func (c *Canvas) MoveTo(x, y float64) { c.path.MoveTo(c.xf.Current(), x, y) }
func (c *Canvas) LineTo(x, y float64) { c.path.LineTo(c.xf.Current(), x, y) }

func (c *Canvas) Arc(x, y, radius, startAngle, endAngle float64) {
	c.path.Ellipse(c.xf.Current(), x, y, radius, radius, 0, startAngle, endAngle)
}

func (c *Canvas) Ellipse(x, y, radiusX, radiusY, rotation, startAngle, endAngle float64) {
	c.path.Ellipse(c.xf.Current(), x, y, radiusX, radiusY, rotation, startAngle, endAngle)
}

// Fill fills every subpath of the current path as a convex fan.
func (c *Canvas) Fill() {
	for _, sp := range c.path.Subpaths {
		c.verts, c.inds = appendFan(c.verts, c.inds, sp.Points, c.style.fill)
		c.flushIfFull(ebiten.BlendSourceOver)
	}
	c.flush(ebiten.BlendSourceOver)
}

// Stroke outlines every subpath of the current path with the current line
// width, scaled into device space.
//
// Stroke geometry overlaps itself at joins and caps. Opaque strokes are drawn
// straight to the target; translucent ones are rendered as opaque coverage
// into a scratch image and composited with the stroke color in one draw, so
// every covered pixel gets the stroke alpha exactly once.
func (c *Canvas) Stroke() {
	width := c.style.lineWidth * c.xf.Current().Scale()
	if !(width > 0) || c.style.stroke.A <= 0 {
		return
	}
	col := c.style.stroke
	dst := c.target
	if strokeNeedsCoverage(col) && c.target != nil {
		dst = c.ensureScratch()
		dst.Clear()
		col = sakura.ColorWhite
	}
	for _, sp := range c.path.Subpaths {
		c.verts, c.inds = appendStroke(c.verts, c.inds, sp, width, c.style.lineCap, col)
		if len(c.verts) >= maxBatchVertices {
			c.flushTo(dst, ebiten.BlendSourceOver)
		}
	}
	c.flushTo(dst, ebiten.BlendSourceOver)

	if dst != c.target {
		s := c.style.stroke
		a := float32(clampAlpha(s.A))
		var op ebiten.DrawImageOptions
		op.ColorScale.Scale(float32(s.R)*a, float32(s.G)*a, float32(s.B)*a, a)
		c.target.DrawImage(dst, &op)
	}
}

// strokeNeedsCoverage reports whether overlapping stroke geometry would
// blend visibly in col.
func strokeNeedsCoverage(col sakura.Color) bool {
	return col.A < 1
}

// ensureScratch returns an image covering the target's bounds, reallocating
// it when the target grows or shrinks. Callers clear it before use.
func (c *Canvas) ensureScratch() *ebiten.Image {
	b := c.target.Bounds()
	if c.scratch != nil {
		sb := c.scratch.Bounds()
		if sb.Dx() == b.Max.X && sb.Dy() == b.Max.Y {
			return c.scratch
		}
		c.scratch.Deallocate()
	}
	c.scratch = ebiten.NewImage(b.Max.X, b.Max.Y)
	return c.scratch
}

// FillRect fills a rectangle under the current transform without touching
// the current path.
func (c *Canvas) FillRect(x, y, w, h float64) {
	c.verts, c.inds = appendFan(c.verts, c.inds, c.rectPoints(x, y, w, h), c.style.fill)
	c.flush(ebiten.BlendSourceOver)
}

// ClearRect makes a rectangle fully transparent.
func (c *Canvas) ClearRect(x, y, w, h float64) {
	c.verts, c.inds = appendFan(c.verts, c.inds, c.rectPoints(x, y, w, h), sakura.ColorWhite)
	c.flush(ebiten.BlendClear)
}

func (c *Canvas) rectPoints(x, y, w, h float64) []sakura.Vec2 {
	m := c.xf.Current()
	pts := make([]sakura.Vec2, 4)
	pts[0].X, pts[0].Y = m.Apply(x, y)
	pts[1].X, pts[1].Y = m.Apply(x+w, y)
	pts[2].X, pts[2].Y = m.Apply(x+w, y+h)
	pts[3].X, pts[3].Y = m.Apply(x, y+h)
	return pts
}

func (c *Canvas) flushIfFull(blend ebiten.Blend) {
	if len(c.verts) >= maxBatchVertices {
		c.flush(blend)
	}
}

// flush submits the accumulated triangles to the target in one DrawTriangles
// call.
func (c *Canvas) flush(blend ebiten.Blend) {
	c.flushTo(c.target, blend)
}

func (c *Canvas) flushTo(dst *ebiten.Image, blend ebiten.Blend) {
	if len(c.inds) > 0 && dst != nil {
		var triOp ebiten.DrawTrianglesOptions
		triOp.Blend = blend
		triOp.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
		triOp.AntiAlias = true
		dst.DrawTriangles(c.verts, c.inds, ensureWhitePixel(), &triOp)
	}
	c.verts = c.verts[:0]
	c.inds = c.inds[:0]
}

// --- Geometry ---

// vertex returns a white-pixel vertex with premultiplied color.
func vertex(x, y float64, col sakura.Color) ebiten.Vertex {
	a := float32(col.A)
	return ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   0.5,
		SrcY:   0.5,
		ColorR: float32(col.R) * a,
		ColorG: float32(col.G) * a,
		ColorB: float32(col.B) * a,
		ColorA: a,
	}
}

// appendFan appends a fan-triangulated convex polygon. N points produce N
// vertices and 3*(N-2) indices; fewer than 3 points produce nothing.
func appendFan(verts []ebiten.Vertex, inds []uint16, points []sakura.Vec2, col sakura.Color) ([]ebiten.Vertex, []uint16) {
	n := len(points)
	if n < 3 {
		return verts, inds
	}
	base := uint16(len(verts))
	for _, p := range points {
		verts = append(verts, vertex(p.X, p.Y, col))
	}
	// Vertex 0 is the hub.
	for i := 0; i < n-2; i++ {
		inds = append(inds, base, base+uint16(i+1), base+uint16(i+2))
	}
	return verts, inds
}

// appendQuad appends the rectangle of the given width around segment a-b.
func appendQuad(verts []ebiten.Vertex, inds []uint16, a, b sakura.Vec2, width float64, col sakura.Color) ([]ebiten.Vertex, []uint16) {
	nx, ny := perpendicular(a, b)
	if nx == 0 && ny == 0 {
		return verts, inds
	}
	hw := width / 2
	base := uint16(len(verts))
	verts = append(verts,
		vertex(a.X+nx*hw, a.Y+ny*hw, col),
		vertex(a.X-nx*hw, a.Y-ny*hw, col),
		vertex(b.X+nx*hw, b.Y+ny*hw, col),
		vertex(b.X-nx*hw, b.Y-ny*hw, col),
	)
	inds = append(inds,
		base+0, base+1, base+2,
		base+1, base+3, base+2,
	)
	return verts, inds
}

// appendDisc appends a filled circle, used for round caps and joins.
func appendDisc(verts []ebiten.Vertex, inds []uint16, center sakura.Vec2, radius float64, col sakura.Color) ([]ebiten.Vertex, []uint16) {
	var pts [capSegments]sakura.Vec2
	for i := range pts {
		t := 2 * math.Pi * float64(i) / capSegments
		pts[i] = sakura.Vec2{X: center.X + radius*math.Cos(t), Y: center.Y + radius*math.Sin(t)}
	}
	return appendFan(verts, inds, pts[:], col)
}

// appendStroke appends one quad per edge of sp. Round caps also put a disc on
// every vertex, which doubles as a round join. Square caps extend both open
// ends by half the width.
func appendStroke(verts []ebiten.Vertex, inds []uint16, sp sakura.Subpath, width float64, lc sakura.LineCap, col sakura.Color) ([]ebiten.Vertex, []uint16) {
	pts := sp.Points
	n := len(pts)
	if n < 2 {
		return verts, inds
	}
	first, last := pts[0], pts[n-1]
	if lc == sakura.LineCapSquare && !sp.Closed {
		first = extend(pts[1], pts[0], width/2)
		last = extend(pts[n-2], pts[n-1], width/2)
	}
	for i := 0; i < n-1; i++ {
		a, b := pts[i], pts[i+1]
		if i == 0 {
			a = first
		}
		if i == n-2 {
			b = last
		}
		verts, inds = appendQuad(verts, inds, a, b, width, col)
	}
	if sp.Closed {
		verts, inds = appendQuad(verts, inds, pts[n-1], pts[0], width, col)
	}
	if lc == sakura.LineCapRound {
		for _, p := range pts {
			verts, inds = appendDisc(verts, inds, p, width/2, col)
		}
	}
	return verts, inds
}

// extend returns b moved d further along the direction a->b.
func extend(a, b sakura.Vec2, d float64) sakura.Vec2 {
	dx, dy := b.X-a.X, b.Y-a.Y
	ln := math.Hypot(dx, dy)
	if ln < 1e-10 {
		return b
	}
	return sakura.Vec2{X: b.X + dx/ln*d, Y: b.Y + dy/ln*d}
}

// perpendicular returns the unit left-perpendicular of the segment from a to
// b, or (0, 0) for a degenerate segment.
func perpendicular(a, b sakura.Vec2) (float64, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	ln := math.Sqrt(dx*dx + dy*dy)
	if ln < 1e-10 {
		return 0, 0
	}
	return -dy / ln, dx / ln
}

var _ sakura.Canvas = (*Canvas)(nil)
