package sakura

import "math"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication happens inside the Canvas implementations.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is opaque white.
var ColorWhite = Color{1, 1, 1, 1}

// RGB returns an opaque color from 8-bit channels.
func RGB(r, g, b uint8) Color {
	return Color{float64(r) / 255, float64(g) / 255, float64(b) / 255, 1}
}

// HSL returns an opaque color from hue in degrees and saturation/lightness in [0, 1].
func HSL(h, s, l float64) Color {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return Color{r + m, g + m, b + m, 1}
}

// WithAlpha returns a copy of c with its alpha multiplied by a.
func (c Color) WithAlpha(a float64) Color {
	c.A *= clamp01(a)
	return c
}

// RGBA8 returns the color as premultiplied 8-bit channels.
func (c Color) RGBA8() (r, g, b, a uint8) {
	return uint8(clamp01(c.R*c.A)*255 + 0.5),
		uint8(clamp01(c.G*c.A)*255 + 0.5),
		uint8(clamp01(c.B*c.A)*255 + 0.5),
		uint8(clamp01(c.A)*255 + 0.5)
}

// Vec2 is a 2D vector used for positions and velocities.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Dist returns the Euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float64 { return math.Hypot(v.X-o.X, v.Y-o.Y) }

// Finite reports whether both components are neither NaN nor infinite.
func (v Vec2) Finite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Viewport is the size of the drawing surface in pixels.
type Viewport struct {
	Width, Height float64
}

// Valid reports whether both dimensions are positive.
func (v Viewport) Valid() bool {
	return v.Width > 0 && v.Height > 0
}

// Phase is the scene's coarse lifecycle stage.
type Phase uint8

const (
	PhaseUninitialized Phase = iota // no skeleton yet
	PhaseGrowing                    // skeleton built, blossoms growing
	PhaseShedding                   // every blossom grown, petals falling
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseGrowing:
		return "growing"
	case PhaseShedding:
		return "shedding"
	default:
		return "unknown"
	}
}

// EventType identifies a scene lifecycle event.
type EventType uint8

const (
	EventStart     EventType = iota // Start was called
	EventGenerated                  // skeleton and blossoms were built
	EventBloomed                    // every blossom reached full size
	EventReset                      // the viewport changed and derived state was dropped
)

func (t EventType) String() string {
	switch t {
	case EventStart:
		return "start"
	case EventGenerated:
		return "generated"
	case EventBloomed:
		return "bloomed"
	case EventReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Event describes a scene lifecycle change.
type Event struct {
	Type     EventType
	Phase    Phase
	Viewport Viewport
	Segments int
	Blossoms int
	Petals   int
}

// EventSink receives scene lifecycle events. See package ecs for a Donburi
// implementation.
type EventSink interface {
	EmitEvent(event Event)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
