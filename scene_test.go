package sakura

import (
	"math"
	"testing"
)

// eventLog is an EventSink that records every event.
type eventLog struct {
	events []Event
}

func (l *eventLog) EmitEvent(e Event) { l.events = append(l.events, e) }

func (l *eventLog) types() []EventType {
	out := make([]EventType, len(l.events))
	for i, e := range l.events {
		out[i] = e.Type
	}
	return out
}

// fastConfig grows every blossom to full size in a single tick.
func fastConfig() Config {
	cfg := DefaultConfig()
	cfg.Blossom.GrowthRate = Range{100, 100}
	return cfg
}

func TestNewSceneDefaults(t *testing.T) {
	s := NewScene(DefaultConfig())
	if s.Phase() != PhaseUninitialized {
		t.Errorf("phase = %v, want uninitialized", s.Phase())
	}
	if s.Started() {
		t.Error("scene should not be started")
	}
	if s.Viewport().Valid() {
		t.Error("viewport should be unset")
	}
}

func TestSceneAutoStart(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AutoStart = true
	s := NewScene(cfg)
	if !s.Started() {
		t.Fatal("AutoStart scene should be started")
	}
	s.Resize(800, 600)
	s.Update()
	if s.Phase() != PhaseGrowing {
		t.Errorf("phase = %v, want growing", s.Phase())
	}
}

func TestSceneNoViewportIsNoOp(t *testing.T) {
	s := NewScene(DefaultConfig())
	s.Start()
	for i := 0; i < 10; i++ {
		s.Update()
	}
	if len(s.Segments()) != 0 || len(s.Blossoms()) != 0 {
		t.Errorf("generated without viewport: %d segments, %d blossoms", len(s.Segments()), len(s.Blossoms()))
	}
	if s.Phase() != PhaseUninitialized {
		t.Errorf("phase = %v, want uninitialized", s.Phase())
	}

	rec := &recorder{}
	s.Draw(rec)
	if rec.count("FillRect") != 0 {
		t.Error("overlay drawn without a viewport")
	}
}

func TestSceneWaitsForStart(t *testing.T) {
	s := NewScene(DefaultConfig())
	s.Resize(800, 600)
	for i := 0; i < 5; i++ {
		s.Update()
	}
	if len(s.Segments()) != 0 {
		t.Errorf("generated %d segments before Start", len(s.Segments()))
	}
}

func TestSceneGeneratesOnFirstUpdate(t *testing.T) {
	s := NewScene(DefaultConfig())
	s.Resize(800, 600)
	s.Start()
	s.Update()

	segs := s.Segments()
	if len(segs) == 0 {
		t.Fatal("no skeleton generated")
	}
	root := segs[0]
	if root.Start != (Vec2{400, 600}) {
		t.Errorf("trunk base = %v, want {400 600}", root.Start)
	}
	assertNear(t, "trunk top", root.End.Y, 600-600*DefaultConfig().Tree.TrunkLength)
	if len(s.Blossoms()) != DefaultConfig().Blossom.Count {
		t.Errorf("blossoms = %d, want %d", len(s.Blossoms()), DefaultConfig().Blossom.Count)
	}
	if s.Phase() != PhaseGrowing {
		t.Errorf("phase = %v, want growing", s.Phase())
	}
	if len(s.Petals()) != 0 {
		t.Errorf("petals = %d before bloom", len(s.Petals()))
	}
}

func TestSceneBloomFiresOnce(t *testing.T) {
	s := NewScene(fastConfig())
	blooms := 0
	s.OnBloom = func() { blooms++ }
	s.Resize(800, 600)
	s.Start()

	for i := 0; i < 200; i++ {
		s.Update()
	}
	if blooms != 1 {
		t.Fatalf("OnBloom fired %d times, want 1", blooms)
	}
	if s.Phase() != PhaseShedding {
		t.Errorf("phase = %v, want shedding", s.Phase())
	}
	if got, want := len(s.Petals()), len(s.Blossoms()); got != want {
		t.Errorf("petals = %d, want one per blossom (%d)", got, want)
	}
}

func TestSceneBloomWaitsForEveryBlossom(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Blossom.MaxSize = Range{10, 10}
	cfg.Blossom.GrowthRate = Range{1, 1}
	s := NewScene(cfg)
	blooms := 0
	s.OnBloom = func() { blooms++ }
	s.Resize(800, 600)
	s.Start()

	for i := 0; i < 9; i++ {
		s.Update()
	}
	if blooms != 0 || s.Phase() != PhaseGrowing {
		t.Fatalf("bloomed early: blooms=%d phase=%v", blooms, s.Phase())
	}
	s.Update()
	if blooms != 1 {
		t.Errorf("blooms = %d after the 10th tick, want 1", blooms)
	}
}

func TestSceneResizeResetsAndRebloom(t *testing.T) {
	s := NewScene(fastConfig())
	blooms := 0
	s.OnBloom = func() { blooms++ }
	s.Resize(800, 600)
	s.Start()
	s.Update()
	s.PointerMove(10, 10)
	s.Click(20, 20, false)
	if blooms != 1 {
		t.Fatalf("blooms = %d, want 1", blooms)
	}

	s.Resize(400, 300)
	if s.Phase() != PhaseUninitialized {
		t.Errorf("phase = %v, want uninitialized", s.Phase())
	}
	if len(s.Segments())+len(s.Blossoms())+len(s.Petals())+len(s.Trails())+len(s.Ripples()) != 0 {
		t.Error("resize left derived state behind")
	}
	if !s.Started() {
		t.Error("resize should not un-start the scene")
	}

	rec := &recorder{}
	s.Draw(rec)
	if rec.index("ClearRect") != 0 {
		t.Errorf("first call after resize = %v, want ClearRect", rec.calls)
	}
	if r := rec.rects[0]; r.w != 400 || r.h != 300 {
		t.Errorf("cleared %vx%v, want 400x300", r.w, r.h)
	}
	rec = &recorder{}
	s.Draw(rec)
	if rec.count("ClearRect") != 0 {
		t.Error("surface cleared twice for a single resize")
	}

	s.Update()
	if len(s.Segments()) == 0 {
		t.Fatal("tree not regenerated after resize")
	}
	if s.Segments()[0].Start != (Vec2{200, 300}) {
		t.Errorf("trunk base = %v, want {200 300}", s.Segments()[0].Start)
	}
	if blooms != 2 {
		t.Errorf("blooms = %d after regeneration, want 2", blooms)
	}
}

func TestSceneTrailThrottle(t *testing.T) {
	s := NewScene(DefaultConfig())
	s.PointerMove(100, 100)
	if len(s.Trails()) != 1 {
		t.Fatalf("trails = %d after first move, want 1", len(s.Trails()))
	}
	s.PointerMove(110, 100)
	if len(s.Trails()) != 1 {
		t.Errorf("trails = %d after a 10px move, want 1", len(s.Trails()))
	}
	s.PointerMove(140, 100)
	if len(s.Trails()) != 2 {
		t.Errorf("trails = %d after a 40px move, want 2", len(s.Trails()))
	}
	// Spacing is measured from the last spawn, not the last sample.
	s.PointerMove(160, 100)
	s.PointerMove(169, 100)
	if len(s.Trails()) != 2 {
		t.Errorf("trails = %d, want 2", len(s.Trails()))
	}
	s.PointerMove(170, 100)
	if len(s.Trails()) != 3 {
		t.Errorf("trails = %d at exactly the spacing, want 3", len(s.Trails()))
	}
}

func TestSceneTrailIgnoresNonFinite(t *testing.T) {
	s := NewScene(DefaultConfig())
	s.PointerMove(0, 0)
	s.PointerMove(math.Inf(1), 0)
	s.PointerMove(math.NaN(), 0)
	if len(s.Trails()) != 1 {
		t.Errorf("trails = %d, want 1", len(s.Trails()))
	}
}

func TestSceneClickAbsorbed(t *testing.T) {
	s := NewScene(DefaultConfig())
	s.Click(50, 50, true)
	if len(s.Ripples()) != 0 {
		t.Errorf("absorbed click spawned %d ripples", len(s.Ripples()))
	}
	s.Click(50, 50, false)
	if len(s.Ripples()) != 1 {
		t.Errorf("ripples = %d, want 1", len(s.Ripples()))
	}
	if s.Ripples()[0].Pos != (Vec2{50, 50}) {
		t.Errorf("ripple at %v, want {50 50}", s.Ripples()[0].Pos)
	}
}

func TestSceneEffectsDecayWithoutTree(t *testing.T) {
	s := NewScene(DefaultConfig())
	s.Click(1, 1, false)
	s.PointerMove(5, 5)
	for i := 0; i < 200; i++ {
		s.Update()
	}
	if len(s.Ripples()) != 0 || len(s.Trails()) != 0 {
		t.Errorf("effects outlived their fade: %d ripples, %d trails", len(s.Ripples()), len(s.Trails()))
	}
}

func TestSceneDrawOrder(t *testing.T) {
	s := NewScene(fastConfig())
	s.Resize(800, 600)
	s.Start()
	s.Update()
	s.Click(100, 100, false)
	s.PointerMove(200, 200)
	s.Update()

	rec := &recorder{}
	s.Draw(rec)

	if rec.index("ClearRect") != 0 {
		t.Errorf("first call = %q, want ClearRect on the frame after a resize", rec.calls[0])
	}
	if rec.count("FillRect") != 1 {
		t.Fatalf("FillRect calls = %d, want 1 overlay", rec.count("FillRect"))
	}
	overlay := rec.rects[1]
	if overlay.color != s.Config().Scene.Overlay || overlay.w != 800 || overlay.h != 600 {
		t.Errorf("overlay = %+v", overlay)
	}

	// Ripples come first, then the skeleton strokes.
	if len(rec.strokes) < 2 {
		t.Fatalf("strokes = %d", len(rec.strokes))
	}
	ripple := rec.strokes[0]
	if ripple.width != s.Config().Effects.RippleLineWidth {
		t.Errorf("first stroke width = %v, want ripple line width", ripple.width)
	}
	bark := rec.strokes[len(rec.strokes)-1]
	if bark.color != s.Config().Tree.Color {
		t.Errorf("last stroke color = %+v, want bark", bark.color)
	}

	// Petals are drawn last.
	last := rec.fills[len(rec.fills)-1]
	if rec.calls[len(rec.calls)-1] != "Fill" {
		t.Errorf("last call = %q, want Fill", rec.calls[len(rec.calls)-1])
	}
	found := false
	for _, p := range s.Petals() {
		if p.Color == last.color {
			found = true
			break
		}
	}
	if !found {
		t.Error("last fill is not a petal")
	}
}

func TestSceneStartIdempotent(t *testing.T) {
	log := &eventLog{}
	s := NewScene(DefaultConfig())
	s.SetEventSink(log)
	s.Start()
	s.Start()
	s.Start()
	n := 0
	for _, e := range log.events {
		if e.Type == EventStart {
			n++
		}
	}
	if n != 1 {
		t.Errorf("EventStart emitted %d times, want 1", n)
	}
}

func TestSceneEventSequence(t *testing.T) {
	log := &eventLog{}
	s := NewScene(fastConfig())
	s.SetEventSink(log)
	s.Resize(640, 480)
	s.Start()
	for i := 0; i < 5; i++ {
		s.Update()
	}

	want := []EventType{EventReset, EventStart, EventGenerated, EventBloomed}
	got := log.types()
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}

	gen := log.events[2]
	if gen.Phase != PhaseGrowing || gen.Segments == 0 || gen.Blossoms != s.Config().Blossom.Count {
		t.Errorf("generated event = %+v", gen)
	}
	if gen.Viewport != (Viewport{640, 480}) {
		t.Errorf("generated viewport = %v", gen.Viewport)
	}
	bloom := log.events[3]
	if bloom.Phase != PhaseShedding || bloom.Petals != len(s.Petals()) {
		t.Errorf("bloomed event = %+v", bloom)
	}
}

func TestSceneTick(t *testing.T) {
	s := NewScene(DefaultConfig())
	s.Resize(100, 100)
	rec := &recorder{}
	s.Tick(rec)
	if s.Stats().Frame != 1 {
		t.Errorf("frame = %d, want 1", s.Stats().Frame)
	}
	if rec.count("FillRect") != 1 {
		t.Errorf("Tick did not draw")
	}
}

func TestSceneConfigIsLive(t *testing.T) {
	s := NewScene(DefaultConfig())
	s.Config().Effects.TrailSpacing = 5
	s.PointerMove(0, 0)
	s.PointerMove(6, 0)
	if len(s.Trails()) != 2 {
		t.Errorf("trails = %d, want 2 with spacing 5", len(s.Trails()))
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		p    Phase
		want string
	}{
		{PhaseUninitialized, "uninitialized"},
		{PhaseGrowing, "growing"},
		{PhaseShedding, "shedding"},
		{Phase(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestEventTypeString(t *testing.T) {
	if got := EventBloomed.String(); got != "bloomed" {
		t.Errorf("EventBloomed.String() = %q", got)
	}
	if got := EventType(42).String(); got != "unknown" {
		t.Errorf("EventType(42).String() = %q", got)
	}
}
