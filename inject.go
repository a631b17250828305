package sakura

type syntheticKind uint8

const (
	syntheticMove syntheticKind = iota
	syntheticClick
	syntheticResize
)

// syntheticEvent is a queued input event. Exactly one is consumed per Update,
// before the simulation step, so scripted input plays back one frame at a time.
type syntheticEvent struct {
	kind syntheticKind
	x, y float64
}

// InjectMove queues a pointer move to (x, y).
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticMove, x: x, y: y})
}

// InjectClick queues an unabsorbed click at (x, y).
func (s *Scene) InjectClick(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticClick, x: x, y: y})
}

// InjectResize queues a viewport change to width × height.
func (s *Scene) InjectResize(width, height float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticResize, x: width, y: height})
}

// InjectSweep queues pointer moves linearly interpolated from (fromX, fromY)
// to (toX, toY) over the given number of frames (minimum 2, both endpoints
// included).
func (s *Scene) InjectSweep(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
}

// PendingInput returns the number of queued synthetic events.
func (s *Scene) PendingInput() int {
	return len(s.injectQueue)
}

// processInjected pops one event from the queue and dispatches it.
func (s *Scene) processInjected() {
	if len(s.injectQueue) == 0 {
		return
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	switch evt.kind {
	case syntheticMove:
		s.PointerMove(evt.x, evt.y)
	case syntheticClick:
		s.Click(evt.x, evt.y, false)
	case syntheticResize:
		s.Resize(evt.x, evt.y)
	}
}
