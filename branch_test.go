package sakura

import (
	"math"
	"testing"
)

func TestGenerateBranchesRejectsDegenerateInput(t *testing.T) {
	cfg := DefaultConfig().Tree
	tests := []struct {
		name                 string
		length, angle, width float64
	}{
		{"zero width", 100, -math.Pi / 2, 0},
		{"negative width", 100, -math.Pi / 2, -5},
		{"sub-floor width", 100, -math.Pi / 2, 0.5},
		{"NaN width", 100, -math.Pi / 2, math.NaN()},
		{"zero length", 0, -math.Pi / 2, 10},
		{"NaN angle", 100, math.NaN(), 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateBranches(Vec2{100, 100}, tt.length, tt.angle, tt.width, cfg)
			if len(got) != 0 {
				t.Errorf("len = %d, want 0", len(got))
			}
		})
	}
}

func TestGenerateBranchesRootSegment(t *testing.T) {
	segs := GenerateBranches(Vec2{500, 800}, 280, -math.Pi/2, 30, DefaultConfig().Tree)
	if len(segs) == 0 {
		t.Fatal("expected segments")
	}
	root := segs[0]
	if root.Parent != -1 || root.Depth != 0 {
		t.Errorf("root parent/depth = %d/%d, want -1/0", root.Parent, root.Depth)
	}
	if root.Start != (Vec2{500, 800}) {
		t.Errorf("root start = %v, want {500 800}", root.Start)
	}
	assertNear(t, "root end x", math.Round(root.End.X*1e6)/1e6, 500)
	assertNear(t, "root end y", root.End.Y, 520)
	if root.Width != 30 {
		t.Errorf("root width = %v, want 30", root.Width)
	}
}

func TestGenerateBranchesTermination(t *testing.T) {
	cfg := DefaultConfig().Tree
	for _, width := range []float64{1, 1.3, 2, 5, 12, 30, 35, 60} {
		segs := GenerateBranches(Vec2{0, 0}, 200, -math.Pi/2, width, cfg)
		if len(segs) == 0 {
			t.Fatalf("width %v: expected segments", width)
		}
		bound := math.Log(WidthFloor/width) / math.Log(widthDecay)
		for i, s := range segs {
			if s.Width < WidthFloor {
				t.Fatalf("width %v: segment %d width %v below floor", width, i, s.Width)
			}
			if float64(s.Depth) > bound {
				t.Fatalf("width %v: segment %d depth %d exceeds bound %v", width, i, s.Depth, bound)
			}
			if !s.Start.Finite() || !s.End.Finite() {
				t.Fatalf("width %v: segment %d not finite: %+v", width, i, s)
			}
		}
		if got := MaxDepth(width); got != int(math.Floor(bound)) {
			t.Errorf("MaxDepth(%v) = %d, want %d", width, got, int(math.Floor(bound)))
		}
	}
}

func TestGenerateBranchesWidthMonotonic(t *testing.T) {
	segs := GenerateBranches(Vec2{500, 800}, 280, -math.Pi/2, 30, DefaultConfig().Tree)
	for i, s := range segs {
		if s.Parent < 0 {
			if i != 0 {
				t.Errorf("segment %d has no parent but is not the root", i)
			}
			continue
		}
		if s.Parent >= i {
			t.Fatalf("segment %d parent %d does not precede it", i, s.Parent)
		}
		p := segs[s.Parent]
		if s.Width >= p.Width {
			t.Errorf("segment %d width %v >= parent width %v", i, s.Width, p.Width)
		}
		if s.Start != p.End {
			t.Errorf("segment %d starts at %v, parent ends at %v", i, s.Start, p.End)
		}
		if s.Depth != p.Depth+1 {
			t.Errorf("segment %d depth %d, parent depth %d", i, s.Depth, p.Depth)
		}
	}
}

func TestGenerateBranchesStopsAtFirstSubFloorWidth(t *testing.T) {
	segs := GenerateBranches(Vec2{500, 800}, 280, -math.Pi/2, 30, DefaultConfig().Tree)
	if len(segs) == 0 {
		t.Fatal("expected segments")
	}
	minWidth := math.Inf(1)
	for _, s := range segs {
		minWidth = math.Min(minWidth, s.Width)
	}
	// The thinnest emitted segment is one decay step away from dropping
	// below the floor: its child would have been narrower than 1.
	if minWidth < WidthFloor {
		t.Errorf("min width = %v, want >= %v", minWidth, WidthFloor)
	}
	if minWidth >= WidthFloor/widthDecay {
		t.Errorf("min width = %v, want < %v (generation stopped early)", minWidth, WidthFloor/widthDecay)
	}
	if minWidth*widthDecay >= WidthFloor {
		t.Errorf("min width %v would still produce a child of width %v", minWidth, minWidth*widthDecay)
	}
}

func TestGenerateBranchesNoSideBranchesIsAChain(t *testing.T) {
	cfg := DefaultConfig().Tree
	cfg.SideBranchChance = 0
	segs := GenerateBranches(Vec2{0, 0}, 100, 0, 30, cfg)
	want := MaxDepth(30) + 1
	if len(segs) != want {
		t.Fatalf("len = %d, want %d", len(segs), want)
	}
	for i := 1; i < len(segs); i++ {
		if segs[i].Parent != i-1 {
			t.Errorf("segment %d parent = %d, want %d", i, segs[i].Parent, i-1)
		}
	}
}

func TestGenerateBranchesSideBranchThreshold(t *testing.T) {
	cfg := DefaultConfig().Tree
	cfg.SideBranchChance = 1
	cfg.SideBranchMinWidth = 1000
	segs := GenerateBranches(Vec2{0, 0}, 100, 0, 30, cfg)
	if len(segs) != MaxDepth(30)+1 {
		t.Errorf("len = %d, want %d (no side branches below threshold)", len(segs), MaxDepth(30)+1)
	}

	cfg.SideBranchMinWidth = 0
	forked := GenerateBranches(Vec2{0, 0}, 100, 0, 30, cfg)
	if len(forked) <= len(segs) {
		t.Errorf("forked len = %d, want > %d", len(forked), len(segs))
	}
}

func TestDrawSkeleton(t *testing.T) {
	segs := []Segment{
		{Start: Vec2{0, 0}, End: Vec2{0, -10}, Width: 4, Parent: -1},
		{Start: Vec2{0, -10}, End: Vec2{5, -20}, Width: 3, Depth: 1},
	}
	rec := &recorder{}
	drawSkeleton(rec, segs, RGB(0x5C, 0x40, 0x33))
	if got := rec.count("Stroke"); got != 2 {
		t.Fatalf("Stroke calls = %d, want 2", got)
	}
	if rec.strokes[0].width != 4 || rec.strokes[1].width != 3 {
		t.Errorf("stroke widths = %v, %v; want 4, 3", rec.strokes[0].width, rec.strokes[1].width)
	}
	if rec.strokes[0].color != RGB(0x5C, 0x40, 0x33) {
		t.Errorf("stroke color = %+v", rec.strokes[0].color)
	}
}

func TestDrawSkeletonEmpty(t *testing.T) {
	rec := &recorder{}
	drawSkeleton(rec, nil, ColorWhite)
	if len(rec.calls) != 0 {
		t.Errorf("calls = %v, want none", rec.calls)
	}
}

func TestDrawSkeletonRestoresLineCap(t *testing.T) {
	segs := []Segment{{Start: Vec2{0, 0}, End: Vec2{0, -10}, Width: 4, Parent: -1}}
	rec := &recorder{}
	drawSkeleton(rec, segs, ColorWhite)
	if rec.strokes[0].lineCap != LineCapRound {
		t.Errorf("skeleton cap = %v, want round", rec.strokes[0].lineCap)
	}
	if rec.lineCap != LineCapButt {
		t.Errorf("cap after skeleton = %v, want butt", rec.lineCap)
	}
	if rec.count("Save") != rec.count("Restore") {
		t.Errorf("unbalanced Save/Restore: %d/%d", rec.count("Save"), rec.count("Restore"))
	}
}
