package host

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/sakura"
)

// fpsWidget displays the current FPS and TPS plus the scene phase and how
// many blossoms have opened.
// The text is refreshed every ~0.5 seconds.
type fpsWidget struct {
	img        *ebiten.Image
	lastUpdate float64
}

func newFPSWidget() *fpsWidget {
	// 140x48 is enough for three short lines.
	return &fpsWidget{img: ebiten.NewImage(140, 48), lastUpdate: 0.5}
}

func (w *fpsWidget) update(dt float64, st sakura.Stats) {
	w.lastUpdate += dt
	if w.lastUpdate < 0.5 {
		return
	}
	w.lastUpdate = 0

	w.img.Clear()
	// Semi-transparent background for readability
	w.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(w.img, fpsText(ebiten.ActualFPS(), ebiten.ActualTPS(), st))
}

func (w *fpsWidget) draw(screen *ebiten.Image) {
	screen.DrawImage(w.img, nil)
}

func fpsText(fps, tps float64, st sakura.Stats) string {
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\n%s %d/%d", fps, tps, st.Phase, st.Grown, st.Blossoms)
}
