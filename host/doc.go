// Package host runs a sakura scene in an Ebitengine window.
//
// [Run] owns the game loop. Each tick it polls mouse and touch input, routes
// presses through the on-screen controls, advances the bloom prompt fades
// and updates the scene; each frame it draws the scene onto a persistent
// offscreen image (so the scene's translucent overlay leaves fading trails)
// and composites the interface text on top.
//
//	scene := sakura.NewScene(sakura.DefaultConfig())
//	if err := host.Run(scene, host.RunConfig{ShowFPS: true}); err != nil {
//		log.Fatal(err)
//	}
//
// [Canvas] is usable on its own to draw any [sakura.Canvas] client into an
// *ebiten.Image.
package host
