package sakura

import "math"

// rosettePetals is the number of petals drawn around a blossom center.
const rosettePetals = 5

// Blossom is a flower anchored at a twig endpoint. It grows from nothing to
// MaxSize and then stays grown.
type Blossom struct {
	Pos        Vec2
	Size       float64
	MaxSize    float64
	GrowthRate float64
	// Grown latches once Size reaches MaxSize.
	Grown       bool
	Color       Color
	CenterColor Color
}

// NewBlossom creates a blossom at pos with size, growth rate and opacity
// drawn from cfg.
func NewBlossom(pos Vec2, cfg BlossomConfig) Blossom {
	return Blossom{
		Pos:         pos,
		MaxSize:     cfg.MaxSize.Random(),
		GrowthRate:  cfg.GrowthRate.Random(),
		Color:       cfg.Color.WithAlpha(cfg.Alpha.Random()),
		CenterColor: cfg.CenterColor,
	}
}

// Update advances growth by one tick.
func (b *Blossom) Update() {
	if b.Grown {
		return
	}
	b.Size += b.GrowthRate
	if b.Size >= b.MaxSize || b.GrowthRate <= 0 {
		b.Size = b.MaxSize
		b.Grown = true
	}
}

// Draw renders the blossom as a five-petal rosette around a small center disc.
func (b *Blossom) Draw(c Canvas) {
	drawRosette(c, b.Pos, b.Size, b.Color, b.CenterColor)
}

// drawRosette draws rosettePetals ellipses radiating from pos plus a center
// disc. Every dimension scales with size.
func drawRosette(c Canvas, pos Vec2, size float64, petal, center Color) {
	if size <= 0 {
		return
	}
	c.Save()
	c.Translate(pos.X, pos.Y)
	c.SetFillColor(petal)
	for i := 0; i < rosettePetals; i++ {
		c.Rotate(2 * math.Pi / rosettePetals)
		c.BeginPath()
		c.Ellipse(size*0.7, 0, size*0.6, size*0.3, 0, 0, 2*math.Pi)
		c.Fill()
	}
	fillCircle(c, 0, 0, size*0.2, center)
	c.Restore()
}

// PlaceBlossoms samples target twig endpoints, with replacement, and creates a
// blossom at each. Twigs are segments narrower than cfg.TwigWidth. It returns
// nil when target is not positive or the skeleton has no twigs.
func PlaceBlossoms(segments []Segment, target int, cfg BlossomConfig) []Blossom {
	if target <= 0 {
		return nil
	}
	var twigs []int
	for i := range segments {
		if segments[i].Width < cfg.TwigWidth {
			twigs = append(twigs, i)
		}
	}
	if len(twigs) == 0 {
		return nil
	}

	blossoms := make([]Blossom, 0, target)
	for len(blossoms) < target {
		s := &segments[twigs[randIndex(len(twigs))]]
		blossoms = append(blossoms, NewBlossom(s.End, cfg))
	}
	return blossoms
}

// allGrown reports whether every blossom is grown. An empty list is never
// considered grown.
func allGrown(blossoms []Blossom) bool {
	if len(blossoms) == 0 {
		return false
	}
	for i := range blossoms {
		if !blossoms[i].Grown {
			return false
		}
	}
	return true
}
