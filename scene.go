package sakura

import (
	"math"
	"time"
)

// Scene owns the tree skeleton, blossoms, petals and pointer effects, and
// runs them through one update/draw cycle per frame.
//
// A Scene is not safe for concurrent use. Input handlers (Start, Resize,
// PointerMove, Click) only record state; all simulation happens in Update and
// all drawing in Draw, on the same goroutine.
type Scene struct {
	cfg      Config
	viewport Viewport
	phase    Phase

	started      bool
	bloomed      bool // bloom notification latch
	clearPending bool

	segments []Segment
	blossoms []Blossom
	petals   []Petal
	trails   []TrailFlower
	ripples  []Ripple

	lastTrail    Vec2
	hasLastTrail bool

	// OnBloom, when set, is called once per generation on the first tick
	// every blossom is fully grown.
	OnBloom func()

	sink  EventSink
	debug bool
	frame uint64
	stats debugStats

	injectQueue     []syntheticEvent
	testRunner      *TestRunner
	screenshotQueue []string
}

// NewScene creates a scene with the given tuning. The scene generates
// nothing until it has a viewport (Resize) and has been started (Start, or
// cfg.AutoStart).
func NewScene(cfg Config) *Scene {
	return &Scene{
		cfg:     cfg,
		started: cfg.AutoStart,
	}
}

// Config returns a pointer to the scene's config for live tuning. Changes to
// tree and blossom parameters take effect at the next generation.
func (s *Scene) Config() *Config {
	return &s.cfg
}

// Phase returns the current lifecycle phase.
func (s *Scene) Phase() Phase { return s.phase }

// Started reports whether Start has been called.
func (s *Scene) Started() bool { return s.started }

// Viewport returns the last size passed to Resize.
func (s *Scene) Viewport() Viewport { return s.viewport }

// Segments returns the skeleton. The returned slice MUST NOT be mutated.
func (s *Scene) Segments() []Segment { return s.segments }

// Blossoms returns the blossoms. The returned slice MUST NOT be mutated.
func (s *Scene) Blossoms() []Blossom { return s.blossoms }

// Petals returns the falling petals. The returned slice MUST NOT be mutated.
func (s *Scene) Petals() []Petal { return s.petals }

// Trails returns the live trail flowers. The returned slice MUST NOT be mutated.
func (s *Scene) Trails() []TrailFlower { return s.trails }

// Ripples returns the live click ripples. The returned slice MUST NOT be mutated.
func (s *Scene) Ripples() []Ripple { return s.ripples }

// SetEventSink sets the optional lifecycle event receiver.
func (s *Scene) SetEventSink(sink EventSink) {
	s.sink = sink
}

// Start begins tree generation on the next Update. Calls after the first
// are ignored.
func (s *Scene) Start() {
	if s.started {
		return
	}
	s.started = true
	s.emit(EventStart)
}

// Resize records the new viewport and drops every piece of derived state.
// The surface is cleared on the next Draw and, if started, the tree is
// regenerated with fresh randomization on the next Update.
func (s *Scene) Resize(width, height float64) {
	s.viewport = Viewport{Width: width, Height: height}
	s.segments = nil
	s.blossoms = nil
	s.petals = nil
	s.trails = s.trails[:0]
	s.ripples = s.ripples[:0]
	s.hasLastTrail = false
	s.bloomed = false
	s.clearPending = true
	s.setPhase(PhaseUninitialized)
	s.emit(EventReset)
}

// PointerMove spawns a trail flower at (x, y) when the pointer has travelled
// at least the configured spacing since the previous one.
func (s *Scene) PointerMove(x, y float64) {
	pos := Vec2{x, y}
	if !pos.Finite() {
		return
	}
	if s.hasLastTrail && pos.Dist(s.lastTrail) < s.cfg.Effects.TrailSpacing {
		return
	}
	s.trails = append(s.trails, NewTrailFlower(pos, s.cfg.Effects))
	s.lastTrail = pos
	s.hasLastTrail = true
}

// Click spawns a ripple at (x, y) unless absorbed reports that an interface
// control consumed the click.
func (s *Scene) Click(x, y float64, absorbed bool) {
	pos := Vec2{x, y}
	if absorbed || !pos.Finite() {
		return
	}
	s.ripples = append(s.ripples, NewRipple(pos, s.cfg.Effects))
}

// Update advances the simulation by one tick.
func (s *Scene) Update() {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInjected()

	if s.started && s.phase == PhaseUninitialized {
		s.generate()
	}

	s.ripples = updatePool(s.ripples)
	s.trails = updatePool(s.trails)

	for i := range s.blossoms {
		s.blossoms[i].Update()
	}
	if s.phase == PhaseGrowing && !s.bloomed && len(s.petals) == 0 && allGrown(s.blossoms) {
		s.bloom()
	}

	for i := range s.petals {
		s.petals[i].Update(s.viewport, s.blossoms)
	}

	s.frame++
	if s.debug {
		s.stats.updateTime = time.Since(t0)
	}
}

// Draw renders the current state. The overlay is translucent, so surfaces
// that keep the previous frame get fading trails behind moving things.
func (s *Scene) Draw(c Canvas) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	w, h := s.viewport.Width, s.viewport.Height
	if s.clearPending {
		c.ClearRect(0, 0, w, h)
		s.clearPending = false
	}
	if s.viewport.Valid() {
		c.SetFillColor(s.cfg.Scene.Overlay)
		c.FillRect(0, 0, w, h)
	}

	for i := range s.ripples {
		s.ripples[i].Draw(c)
	}
	for i := range s.trails {
		s.trails[i].Draw(c)
	}

	drawSkeleton(c, s.segments, s.cfg.Tree.Color)
	for i := range s.blossoms {
		s.blossoms[i].Draw(c)
	}
	for i := range s.petals {
		s.petals[i].Draw(c)
	}

	if s.debug {
		s.stats.drawTime = time.Since(t0)
		s.debugLog()
	}
}

// Tick runs Update followed by Draw.
func (s *Scene) Tick(c Canvas) {
	s.Update()
	s.Draw(c)
}

// generate builds the skeleton and blossoms for the current viewport. It is a
// no-op until the viewport is known.
func (s *Scene) generate() {
	if !s.viewport.Valid() {
		return
	}
	w, h := s.viewport.Width, s.viewport.Height
	s.segments = GenerateBranches(Vec2{w / 2, h}, h*s.cfg.Tree.TrunkLength, -math.Pi/2, s.cfg.Tree.TrunkWidth, s.cfg.Tree)
	s.blossoms = PlaceBlossoms(s.segments, s.cfg.Blossom.Count, s.cfg.Blossom)
	s.setPhase(PhaseGrowing)
	s.emit(EventGenerated)
}

// bloom fires the bloom notification and starts shedding petals.
func (s *Scene) bloom() {
	s.bloomed = true
	s.petals = spawnPetals(s.blossoms, s.cfg.Petal.Stride, s.cfg.Petal)
	s.setPhase(PhaseShedding)
	s.emit(EventBloomed)
	if s.OnBloom != nil {
		s.OnBloom()
	}
}

func (s *Scene) setPhase(p Phase) {
	if s.phase == p {
		return
	}
	if s.debug {
		debugf("phase %s -> %s (frame %d)", s.phase, p, s.frame)
	}
	s.phase = p
}

func (s *Scene) emit(t EventType) {
	if s.sink == nil {
		return
	}
	s.sink.EmitEvent(Event{
		Type:     t,
		Phase:    s.phase,
		Viewport: s.viewport,
		Segments: len(s.segments),
		Blossoms: len(s.blossoms),
		Petals:   len(s.petals),
	})
}
