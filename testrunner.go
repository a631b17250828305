package sakura

import (
	"encoding/json"
	"fmt"
)

// testStep is one scripted action. Which fields matter depends on Action:
// points for move and click, both ends for sweep, a size for resize, a
// frame count for wait and sweep, a label for screenshot.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

type testScript struct {
	Steps []testStep `json:"steps"`
}

// stepActions maps an action name to what it does to the scene. wait is
// handled by the runner itself and has no scene effect.
var stepActions = map[string]func(s *Scene, st testStep){
	"start":      func(s *Scene, _ testStep) { s.Start() },
	"move":       func(s *Scene, st testStep) { s.InjectMove(st.X, st.Y) },
	"click":      func(s *Scene, st testStep) { s.InjectClick(st.X, st.Y) },
	"resize":     func(s *Scene, st testStep) { s.InjectResize(st.Width, st.Height) },
	"screenshot": func(s *Scene, st testStep) { s.Screenshot(st.Label) },
	"wait":       func(*Scene, testStep) {},
	"sweep": func(s *Scene, st testStep) {
		s.InjectSweep(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	},
}

// TestRunner plays a JSON script against a scene, one action per frame,
// so a run can be reproduced from the -script flag or from a test. hold
// counts the frames a wait still blocks after the one it ran in.
type TestRunner struct {
	steps []testStep
	next  int
	hold  int
	done  bool
}

// LoadTestScript decodes a script of the form {"steps": [...]}. Every action
// is checked up front so a typo fails before the first frame.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if _, ok := stepActions[st.Action]; !ok {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner makes Update advance runner at the start of every frame,
// ahead of synthetic input.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether the script has run to its end.
func (r *TestRunner) Done() bool {
	return r.done
}

// step runs at most one action. A frame with synthetic input still queued,
// or inside a wait, runs none.
func (r *TestRunner) step(s *Scene) {
	switch {
	case r.done, len(s.injectQueue) > 0:
		return
	case r.hold > 0:
		r.hold--
		return
	case r.next == len(r.steps):
		r.done = true
		return
	}

	st := r.steps[r.next]
	r.next++
	stepActions[st.Action](s, st)
	if st.Action == "wait" && st.Frames > 1 {
		r.hold = st.Frames - 1
	}

	r.done = r.next == len(r.steps) && r.hold == 0 && len(s.injectQueue) == 0
}

// Screenshot asks the surface adapter to capture the next drawn frame under
// label. Adapters without pixel readback ignore it.
func (s *Scene) Screenshot(label string) {
	s.screenshotQueue = append(s.screenshotQueue, label)
}

// TakeScreenshotRequests drains the pending capture labels.
func (s *Scene) TakeScreenshotRequests() []string {
	labels := s.screenshotQueue
	s.screenshotQueue = nil
	if len(labels) == 0 {
		return nil
	}
	return labels
}
