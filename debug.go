package sakura

import (
	"fmt"
	"os"
	"time"
)

// debugLogInterval is how many frames pass between two stats lines.
const debugLogInterval = 120

// globalDebug mirrors the most recently set Scene debug flag so that free
// functions (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene.
var globalDebug bool

// debugStats holds per-frame timing. Only populated when Scene.debug is true.
type debugStats struct {
	updateTime time.Duration
	drawTime   time.Duration
}

// Stats is a snapshot of the scene's collection sizes.
type Stats struct {
	Frame    uint64
	Phase    Phase
	Segments int
	Blossoms int
	Grown    int
	Petals   int
	Trails   int
	Ripples  int
}

// Stats returns the current collection sizes.
func (s *Scene) Stats() Stats {
	grown := 0
	for i := range s.blossoms {
		if s.blossoms[i].Grown {
			grown++
		}
	}
	return Stats{
		Frame:    s.frame,
		Phase:    s.phase,
		Segments: len(s.segments),
		Blossoms: len(s.blossoms),
		Grown:    grown,
		Petals:   len(s.petals),
		Trails:   len(s.trails),
		Ripples:  len(s.ripples),
	}
}

// SetDebugMode enables or disables debug mode. When enabled, inverted random
// ranges panic, phase transitions are printed, and frame stats are logged to
// stderr every debugLogInterval frames.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// DebugMode reports whether debug mode is enabled.
func (s *Scene) DebugMode() bool {
	return s.debug
}

// debugLog prints timing and collection stats to stderr.
func (s *Scene) debugLog() {
	if !s.debug || s.frame%debugLogInterval != 0 {
		return
	}
	st := s.Stats()
	debugf("frame %d | phase: %s | update: %v | draw: %v",
		st.Frame, st.Phase, s.stats.updateTime, s.stats.drawTime)
	debugf("segments: %d | blossoms: %d/%d grown | petals: %d | trails: %d | ripples: %d",
		st.Segments, st.Grown, st.Blossoms, st.Petals, st.Trails, st.Ripples)
}

// debugf writes one prefixed line to stderr.
func debugf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[sakura] "+format+"\n", args...)
}
