package sakura

import "math"

// TrailFlower is a small rosette left behind by the pointer. It shrinks and
// fades every tick until it disappears.
type TrailFlower struct {
	Pos        Vec2
	Size       float64
	Opacity    float64
	ShrinkRate float64
	FadeRate   float64
	Color      Color
}

// NewTrailFlower creates a fully opaque trail flower at pos.
func NewTrailFlower(pos Vec2, cfg EffectsConfig) TrailFlower {
	return TrailFlower{
		Pos:        pos,
		Size:       cfg.TrailSize.Random(),
		Opacity:    1,
		ShrinkRate: cfg.TrailShrinkRate,
		FadeRate:   cfg.TrailFadeRate,
		Color:      HSL(cfg.TrailHue.Random(), 0.8, 0.75),
	}
}

// Update shrinks and fades the flower, clamping both at zero.
func (t *TrailFlower) Update() {
	t.Size = math.Max(t.Size-t.ShrinkRate, 0)
	t.Opacity = math.Max(t.Opacity-t.FadeRate, 0)
}

// Dead reports whether the flower has fully decayed.
func (t *TrailFlower) Dead() bool {
	return t.Opacity <= 0 || t.Size <= 0
}

// Draw renders the flower as a miniature rosette.
func (t *TrailFlower) Draw(c Canvas) {
	drawRosette(c, t.Pos, t.Size, t.Color.WithAlpha(t.Opacity), ColorWhite.WithAlpha(t.Opacity))
}

// Ripple is an expanding ring left by a click.
type Ripple struct {
	Pos       Vec2
	Radius    float64
	MaxRadius float64
	Speed     float64
	Opacity   float64
	FadeRate  float64
	LineWidth float64
	Color     Color
}

// NewRipple creates a ripple of zero radius at pos.
func NewRipple(pos Vec2, cfg EffectsConfig) Ripple {
	return Ripple{
		Pos:       pos,
		MaxRadius: cfg.RippleMaxRadius,
		Speed:     cfg.RippleSpeed,
		Opacity:   1,
		FadeRate:  cfg.RippleFadeRate,
		LineWidth: cfg.RippleLineWidth,
		Color:     cfg.RippleColor,
	}
}

// Update grows the ring up to MaxRadius and fades it, clamping at zero.
func (r *Ripple) Update() {
	r.Radius = math.Min(r.Radius+r.Speed, r.MaxRadius)
	r.Opacity = math.Max(r.Opacity-r.FadeRate, 0)
}

// Dead reports whether the ripple has fully faded.
func (r *Ripple) Dead() bool {
	return r.Opacity <= 0
}

// Draw strokes the ring.
func (r *Ripple) Draw(c Canvas) {
	if r.Radius <= 0 {
		return
	}
	c.BeginPath()
	c.Arc(r.Pos.X, r.Pos.Y, r.Radius, 0, 2*math.Pi)
	c.SetStrokeColor(r.Color.WithAlpha(r.Opacity))
	c.SetLineWidth(r.LineWidth)
	c.SetLineCap(LineCapButt)
	c.Stroke()
}

// decayer is an effect with monotonic decay.
type decayer interface {
	Update()
	Dead() bool
}

// updatePool advances every member of pool and compacts the survivors to the
// front in order. Members that die during this tick are removed this tick.
func updatePool[T any, P interface {
	*T
	decayer
}](pool []T) []T {
	live := 0
	for i := range pool {
		p := P(&pool[i])
		p.Update()
		if p.Dead() {
			continue
		}
		pool[live] = pool[i]
		live++
	}
	clear(pool[live:])
	return pool[:live]
}
