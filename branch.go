package sakura

import "math"

// Segment is one straight piece of the tree skeleton.
type Segment struct {
	Start, End Vec2
	Width      float64
	// Depth is the generation level; the root segment has depth 0.
	Depth int
	// Parent is the index of the segment this one grows from, or -1.
	Parent int
}

// branchSeed is a pending recursion step.
type branchSeed struct {
	origin        Vec2
	length, angle float64
	width         float64
	depth, parent int
}

// GenerateBranches builds a randomized tree skeleton rooted at origin.
//
// Each step emits one segment of the given length along angle, then seeds a
// continuation branch and, when the segment is wider than
// cfg.SideBranchMinWidth, up to two side branches. Every child is narrower
// than its parent by at least widthDecay, and a child whose width would fall
// below WidthFloor is never seeded, so generation always terminates.
//
// Segments are returned in pre-order: a parent always precedes its children.
func GenerateBranches(origin Vec2, length, angle, width float64, cfg BranchConfig) []Segment {
	if !(width >= WidthFloor) || !(length > 0) || !origin.Finite() || math.IsNaN(angle) {
		return nil
	}

	var out []Segment
	stack := []branchSeed{{origin: origin, length: length, angle: angle, width: width, parent: -1}}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		sin, cos := math.Sincos(s.angle)
		end := Vec2{s.origin.X + s.length*cos, s.origin.Y + s.length*sin}
		idx := len(out)
		out = append(out, Segment{Start: s.origin, End: end, Width: s.width, Depth: s.depth, Parent: s.parent})

		nextWidth := s.width * widthDecay
		if nextWidth < WidthFloor {
			continue
		}
		nextLength := s.length * cfg.Decay.Random()

		// Pushed in reverse so the continuation is emitted first.
		var children [3]branchSeed
		n := 0
		if s.width > cfg.SideBranchMinWidth {
			sideWidth := nextWidth * cfg.SideWidthScale
			sideLength := nextLength * cfg.SideLengthScale
			for _, dir := range [2]float64{1, -1} {
				if sideWidth >= WidthFloor && chance(cfg.SideBranchChance) {
					children[n] = branchSeed{
						length: sideLength,
						angle:  s.angle + dir*cfg.SideAngle.Random(),
						width:  sideWidth,
					}
					n++
				}
			}
		}
		children[n] = branchSeed{
			length: nextLength,
			angle:  s.angle + cfg.Jitter.Random(),
			width:  nextWidth,
		}
		n++

		for i := 0; i < n; i++ {
			c := children[i]
			c.origin = end
			c.depth = s.depth + 1
			c.parent = idx
			stack = append(stack, c)
		}
	}
	return out
}

// MaxDepth returns the deepest recursion level reachable from a root of the
// given width: the number of times width can be multiplied by widthDecay
// while staying at or above WidthFloor.
func MaxDepth(width float64) int {
	if !(width >= WidthFloor) {
		return -1
	}
	return int(math.Floor(math.Log(WidthFloor/width) / math.Log(widthDecay)))
}

// drawSkeleton strokes every segment with round caps. The canvas state is
// restored afterwards.
func drawSkeleton(c Canvas, segments []Segment, col Color) {
	if len(segments) == 0 {
		return
	}
	c.Save()
	defer c.Restore()
	c.SetStrokeColor(col)
	c.SetLineCap(LineCapRound)
	for i := range segments {
		s := &segments[i]
		c.SetLineWidth(s.Width)
		c.BeginPath()
		c.MoveTo(s.Start.X, s.Start.Y)
		c.LineTo(s.End.X, s.End.Y)
		c.Stroke()
	}
}
