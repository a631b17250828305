package sakura

import "math"

// Petal is a free-floating particle. It is never destroyed: once it falls
// below the viewport it respawns at a blossom (or the top edge) with fresh
// velocity, so the number of petals stays constant.
type Petal struct {
	Pos Vec2
	Vel Vec2

	Gravity      float64
	Drag         float64
	WindStrength float64
	Phase        float64 // wind phase offset in radians
	WindPeriod   float64
	Wind         float64 // current lateral acceleration

	Rotation float64
	Spin     float64

	Size float64
	// Age counts ticks since the last (re)spawn.
	Age        float64
	DriftAfter float64
	Color      Color

	velX, velY Range
}

// NewPetal creates a petal at pos with per-instance parameters drawn from cfg.
func NewPetal(pos Vec2, cfg PetalConfig) Petal {
	p := Petal{
		Pos:          pos,
		Gravity:      cfg.Gravity,
		Drag:         cfg.Drag,
		WindStrength: cfg.WindStrength.Random(),
		Phase:        randRange(0, 2*math.Pi),
		WindPeriod:   cfg.WindPeriod,
		Rotation:     randRange(0, 2*math.Pi),
		Spin:         cfg.Spin.Random(),
		Size:         cfg.Size.Random(),
		DriftAfter:   cfg.DriftAfter.Random(),
		Color:        HSL(cfg.Hue.Random(), cfg.Saturation, cfg.Lightness),
		velX:         cfg.VelX,
		velY:         cfg.VelY,
	}
	if p.WindPeriod <= 0 {
		p.WindPeriod = 60
	}
	p.Vel = Vec2{p.velX.Random(), p.velY.Random()}
	return p
}

// Update advances the petal one tick and recycles it once it has fallen
// fully below the viewport. anchors are the blossoms a recycled petal may
// respawn at.
func (p *Petal) Update(view Viewport, anchors []Blossom) {
	p.Age++
	if p.Age > p.DriftAfter {
		p.Wind = math.Sin(p.Age/p.WindPeriod+p.Phase) * p.WindStrength
	}

	p.Vel.Y += p.Gravity
	p.Vel.X += p.Wind
	p.Vel.X *= p.Drag

	p.Pos.X += p.Vel.X
	p.Pos.Y += p.Vel.Y
	p.Rotation = math.Mod(p.Rotation+p.Spin, 2*math.Pi)

	if p.Pos.Y > view.Height+p.Size || !p.Pos.Finite() {
		p.respawn(view, anchors)
	}
}

// respawn moves the petal to a random anchor, or to a random x just above the
// top edge when there are no anchors, and resets its motion.
func (p *Petal) respawn(view Viewport, anchors []Blossom) {
	if len(anchors) > 0 {
		p.Pos = anchors[randIndex(len(anchors))].Pos
	} else {
		p.Pos = Vec2{randRange(0, math.Max(view.Width, 0)), -p.Size}
	}
	p.Age = 0
	p.Wind = 0
	p.Vel = Vec2{p.velX.Random(), p.velY.Random()}
}

// Draw fills the petal as a rotated ellipse.
func (p *Petal) Draw(c Canvas) {
	c.BeginPath()
	c.Ellipse(p.Pos.X, p.Pos.Y, p.Size, p.Size*0.65, p.Rotation, 0, 2*math.Pi)
	c.SetFillColor(p.Color)
	c.Fill()
}

// spawnPetals creates one petal at every stride-th blossom, in list order.
func spawnPetals(blossoms []Blossom, stride int, cfg PetalConfig) []Petal {
	if stride < 1 {
		stride = 1
	}
	petals := make([]Petal, 0, (len(blossoms)+stride-1)/stride)
	for i := 0; i < len(blossoms); i += stride {
		petals = append(petals, NewPetal(blossoms[i].Pos, cfg))
	}
	return petals
}
