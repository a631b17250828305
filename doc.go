// Package sakura simulates a blossoming tree: a randomized branching
// skeleton, blossoms that grow on its twigs, petals that drift down once every
// blossom has opened, and short-lived flowers and ripples that follow the
// pointer.
//
// The package does no windowing or input polling of its own. A surface
// adapter owns the window and feeds the [Scene]:
//
//	scene := sakura.NewScene(sakura.DefaultConfig())
//	scene.OnBloom = func() { showPrompt() }
//	scene.Resize(800, 600)
//	scene.Start()
//
//	// every frame
//	scene.PointerMove(mx, my)
//	scene.Update()
//	scene.Draw(canvas)
//
// Drawing goes through the [Canvas] interface, a small subset of the HTML
// canvas API. Package host provides an Ebitengine implementation together
// with a ready-made game loop ([host.Run]); the examples directory contains a
// terminal renderer built on tcell and an SDL one built on tfriedel6/canvas.
//
// # Lifecycle
//
// A scene moves through [PhaseUninitialized], [PhaseGrowing] and
// [PhaseShedding]. The first Update after Start (with a known viewport)
// generates the skeleton and places blossoms. When the last blossom finishes
// growing, [Scene.OnBloom] fires once and petals start falling from the
// blossoms; they recycle forever. [Scene.Resize] drops everything and the
// next Update regenerates a new tree.
//
// # Tuning
//
// Every constant lives in [Config]. [DefaultConfig] holds the tuned values and
// [LoadConfig] overlays a JSON document on them.
//
// # Scripted input
//
// [LoadTestScript] parses a JSON list of steps (start, move, sweep, click,
// resize, wait, screenshot) that drive a scene one frame at a time, which is
// how the package's own end-to-end tests run.
package sakura
