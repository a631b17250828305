package host

import (
	"errors"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/phanxgames/sakura"
)

// RunConfig configures the window and the interface drawn over the scene.
type RunConfig struct {
	// Title is the window title. Empty means "sakura".
	Title string
	// Width and Height are the initial window size. Zero means 800x600.
	Width, Height int
	// ShowFPS draws an FPS/TPS widget in the top-left corner.
	ShowFPS bool
	// ScreenshotDir is where scripted screenshots are written. Empty means
	// "screenshots".
	ScreenshotDir string
	// Prompt configures the bloom prompt. Nil means DefaultPromptConfig.
	Prompt *PromptConfig
	// Hint is shown until the scene starts. Empty means "tap to begin".
	Hint string
	// OnUpdate, when set, runs after every scene update. Returning
	// ebiten.Termination ends Run without error.
	OnUpdate func() error
}

func (c *RunConfig) applyDefaults() {
	if c.Title == "" {
		c.Title = "sakura"
	}
	if c.Width <= 0 || c.Height <= 0 {
		c.Width, c.Height = 800, 600
	}
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = "screenshots"
	}
	if c.Prompt == nil {
		p := DefaultPromptConfig()
		c.Prompt = &p
	}
	if c.Hint == "" {
		c.Hint = "tap to begin"
	}
}

var (
	uiFace      = text.NewGoXFace(basicfont.Face7x13)
	uiTextColor = sakura.RGB(0x8B, 0x3A, 0x62)
	uiButton    = sakura.RGB(0xFF, 0x69, 0xB4)
	background  = color.RGBA{R: 0xFF, G: 0xF0, B: 0xF5, A: 0xFF}
)

const (
	uiTextScale   = 2
	buttonWidth   = 72
	buttonHeight  = 40
	promptLineGap = 36
)

// game adapts a sakura.Scene to ebiten.Game.
type game struct {
	scene  *sakura.Scene
	cfg    RunConfig
	router pointerRouter
	prompt *prompt
	button *control
	fps    *fpsWidget

	surface  *ebiten.Image
	canvas   *Canvas
	uiCanvas *Canvas

	layoutW, layoutH int
	sized            bool
}

func newGame(scene *sakura.Scene, cfg RunConfig) *game {
	cfg.applyDefaults()
	g := &game{
		scene:    scene,
		cfg:      cfg,
		prompt:   newPrompt(*cfg.Prompt),
		canvas:   NewCanvas(nil),
		uiCanvas: NewCanvas(nil),
	}
	g.button = &control{
		active: g.prompt.ButtonActive,
		onPress: func() {
			g.prompt.Dismiss()
		},
	}
	g.router.addControl(g.button)

	onBloom := scene.OnBloom
	scene.OnBloom = func() {
		if onBloom != nil {
			onBloom()
		}
		g.prompt.Show()
	}
	return g
}

// Run opens a window and drives scene until the window closes or
// cfg.OnUpdate returns an error.
func Run(scene *sakura.Scene, cfg RunConfig) error {
	g := newGame(scene, cfg)
	if g.cfg.ShowFPS {
		g.fps = newFPSWidget()
	}
	ebiten.SetWindowTitle(g.cfg.Title)
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// Layout records the outside size. The scene is resized from Update so that
// all scene mutation happens in one place.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.layoutW, g.layoutH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func (g *game) Update() error {
	g.applyLayout()

	dt := 1.0 / float64(ebiten.TPS())
	g.router.poll(g.scene)
	g.prompt.Update(float32(dt))
	g.scene.Update()
	if g.fps != nil {
		g.fps.update(dt, g.scene.Stats())
	}

	if g.cfg.OnUpdate != nil {
		return g.cfg.OnUpdate()
	}
	return nil
}

// applyLayout resizes the surface and the scene when the window size changed.
func (g *game) applyLayout() {
	w, h := g.layoutW, g.layoutH
	if w <= 0 || h <= 0 {
		return
	}
	if g.sized {
		b := g.surface.Bounds()
		if b.Dx() == w && b.Dy() == h {
			return
		}
		g.surface.Deallocate()
	}
	g.surface = ebiten.NewImage(w, h)
	g.canvas.SetTarget(g.surface)
	g.sized = true
	g.scene.Resize(float64(w), float64(h))
	g.button.rect = buttonRect(float64(w), float64(h))
}

// buttonRect centers the prompt button below the prompt text.
func buttonRect(w, h float64) HitRect {
	return HitRect{
		X:      w/2 - buttonWidth/2,
		Y:      h/2 + promptLineGap/2,
		Width:  buttonWidth,
		Height: buttonHeight,
	}
}

func (g *game) Draw(screen *ebiten.Image) {
	if !g.sized {
		return
	}
	// The surface keeps the previous frame; the scene's translucent overlay
	// fades it.
	g.scene.Draw(g.canvas)

	screen.Fill(background)
	screen.DrawImage(g.surface, nil)
	g.drawUI(screen)

	if labels := g.scene.TakeScreenshotRequests(); len(labels) > 0 {
		flushScreenshots(screen, g.cfg.ScreenshotDir, labels)
	}
	if g.fps != nil {
		g.fps.draw(screen)
	}
}

// drawUI draws the landing hint, the bloom prompt and the final message.
func (g *game) drawUI(screen *ebiten.Image) {
	b := screen.Bounds()
	cx, cy := float64(b.Dx())/2, float64(b.Dy())/2

	if !g.scene.Started() {
		drawCentered(screen, g.cfg.Hint, cx, cy, uiTextColor, 1)
	}

	if a := g.prompt.promptAlpha; a > 0 {
		drawCentered(screen, g.prompt.cfg.Text, cx, cy-promptLineGap/2, uiTextColor, a)
		r := g.button.rect
		g.uiCanvas.SetTarget(screen)
		g.uiCanvas.SetFillColor(uiButton.WithAlpha(a))
		g.uiCanvas.FillRect(r.X, r.Y, r.Width, r.Height)
		drawCentered(screen, g.prompt.cfg.Button, r.X+r.Width/2, r.Y+r.Height/2, sakura.ColorWhite, a)
	}

	if a := g.prompt.messageAlpha; a > 0 {
		drawCentered(screen, g.prompt.cfg.Message, cx, cy, uiTextColor, a)
	}
}

// drawCentered draws s centered on (x, y) at the UI text scale.
func drawCentered(dst *ebiten.Image, s string, x, y float64, col sakura.Color, alpha float64) {
	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.GeoM.Scale(uiTextScale, uiTextScale)
	op.GeoM.Translate(x, y)
	op.ColorScale.Scale(float32(col.R), float32(col.G), float32(col.B), 1)
	op.ColorScale.ScaleAlpha(float32(alpha))
	text.Draw(dst, s, uiFace, op)
}
