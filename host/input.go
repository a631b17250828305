package host

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/sakura"
)

// HitRect is an axis-aligned rectangular hit area in screen coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// control is an on-screen button that consumes presses inside its rect.
type control struct {
	rect    HitRect
	active  func() bool
	onPress func()
}

// pointerRouter turns raw pointer samples into scene input. A press that
// lands on an active control, or the press that starts the scene, is
// absorbed: the scene sees it but spawns no ripple.
type pointerRouter struct {
	controls []*control

	lastX, lastY float64
	hasLast      bool

	touchIDs []ebiten.TouchID
}

// addControl registers a control. Controls are hit-tested in order.
func (r *pointerRouter) addControl(c *control) {
	r.controls = append(r.controls, c)
}

// move forwards a pointer position to the scene when it changed.
func (r *pointerRouter) move(s *sakura.Scene, x, y float64) {
	if r.hasLast && x == r.lastX && y == r.lastY {
		return
	}
	r.lastX, r.lastY, r.hasLast = x, y, true
	s.PointerMove(x, y)
}

// press routes a press at (x, y).
func (r *pointerRouter) press(s *sakura.Scene, x, y float64) {
	absorbed := false
	for _, c := range r.controls {
		if c.active != nil && !c.active() {
			continue
		}
		if c.rect.Contains(x, y) {
			if c.onPress != nil {
				c.onPress()
			}
			absorbed = true
			break
		}
	}
	if !s.Started() {
		s.Start()
		absorbed = true
	}
	s.Click(x, y, absorbed)
}

// poll reads mouse and touch state for this tick and routes it.
func (r *pointerRouter) poll(s *sakura.Scene) {
	mx, my := ebiten.CursorPosition()
	r.move(s, float64(mx), float64(my))
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		r.press(s, float64(mx), float64(my))
	}

	r.touchIDs = inpututil.AppendJustPressedTouchIDs(r.touchIDs[:0])
	for _, tid := range r.touchIDs {
		tx, ty := ebiten.TouchPosition(tid)
		r.press(s, float64(tx), float64(ty))
	}
	r.touchIDs = ebiten.AppendTouchIDs(r.touchIDs[:0])
	for _, tid := range r.touchIDs {
		tx, ty := ebiten.TouchPosition(tid)
		r.move(s, float64(tx), float64(ty))
	}
}
