package sakura

import (
	"encoding/json"
	"errors"
	"fmt"
)

// WidthFloor is the absolute stroke width below which the branch generator
// stops recursing.
const WidthFloor = 1.0

// widthDecay is the stroke width multiplier applied at every generation level.
const widthDecay = 0.75

// BranchConfig controls the recursive tree generator.
type BranchConfig struct {
	// TrunkWidth is the stroke width of the root segment.
	TrunkWidth float64 `json:"trunkWidth"`
	// TrunkLength is the root segment length as a fraction of viewport height.
	TrunkLength float64 `json:"trunkLength"`
	// Decay is the band the child length multiplier is drawn from.
	Decay Range `json:"decay"`
	// Jitter is the band the continuation branch's angle offset is drawn from.
	Jitter Range `json:"jitter"`
	// SideBranchChance is the probability of each of the two side branches.
	SideBranchChance float64 `json:"sideBranchChance"`
	// SideBranchMinWidth is the width a segment must exceed to fork sideways.
	SideBranchMinWidth float64 `json:"sideBranchMinWidth"`
	// SideAngle is the band of absolute angle offsets for side branches.
	SideAngle Range `json:"sideAngle"`
	// SideLengthScale and SideWidthScale shrink side branches further than
	// the continuation.
	SideLengthScale float64 `json:"sideLengthScale"`
	SideWidthScale  float64 `json:"sideWidthScale"`
	// Color is the bark stroke color.
	Color Color `json:"color"`
}

// BlossomConfig controls blossom placement and growth.
type BlossomConfig struct {
	// Count is the target number of blossoms.
	Count int `json:"count"`
	// TwigWidth is the width below which a segment may bear a blossom.
	TwigWidth float64 `json:"twigWidth"`
	// MaxSize is the band of full-grown sizes.
	MaxSize Range `json:"maxSize"`
	// GrowthRate is the band of per-tick size increments.
	GrowthRate Range `json:"growthRate"`
	// Alpha is the band of petal opacities.
	Alpha       Range `json:"alpha"`
	Color       Color `json:"color"`
	CenterColor Color `json:"centerColor"`
}

// PetalConfig controls falling petal physics.
type PetalConfig struct {
	// Stride spawns a petal from every Stride-th blossom in list order.
	Stride int   `json:"stride"`
	Size   Range `json:"size"`
	// Hue is the band of HSL hues in degrees.
	Hue        Range   `json:"hue"`
	Saturation float64 `json:"saturation"`
	Lightness  float64 `json:"lightness"`
	// VelX and VelY are the bands initial velocities are drawn from, at
	// construction and on every recycle.
	VelX    Range   `json:"velX"`
	VelY    Range   `json:"velY"`
	Gravity float64 `json:"gravity"`
	// Drag multiplies horizontal velocity every tick. Must be below 1.
	Drag float64 `json:"drag"`
	// DriftAfter is the band of ages after which wind starts acting.
	DriftAfter   Range `json:"driftAfter"`
	WindStrength Range `json:"windStrength"`
	// WindPeriod divides the age inside the wind sine.
	WindPeriod float64 `json:"windPeriod"`
	Spin       Range   `json:"spin"`
}

// EffectsConfig controls the pointer trail and click ripples.
type EffectsConfig struct {
	// TrailSpacing is the minimum pointer travel between two trail flowers.
	TrailSpacing    float64 `json:"trailSpacing"`
	TrailSize       Range   `json:"trailSize"`
	TrailShrinkRate float64 `json:"trailShrinkRate"`
	TrailFadeRate   float64 `json:"trailFadeRate"`
	TrailHue        Range   `json:"trailHue"`

	RippleSpeed     float64 `json:"rippleSpeed"`
	RippleMaxRadius float64 `json:"rippleMaxRadius"`
	RippleFadeRate  float64 `json:"rippleFadeRate"`
	RippleLineWidth float64 `json:"rippleLineWidth"`
	RippleColor     Color   `json:"rippleColor"`
}

// SceneConfig controls the whole-scene composition.
type SceneConfig struct {
	// Overlay is painted over the previous frame every tick, fading
	// everything drawn before it.
	Overlay Color `json:"overlay"`
}

// Config is the complete tuning of a Scene.
type Config struct {
	Tree    BranchConfig  `json:"tree"`
	Blossom BlossomConfig `json:"blossom"`
	Petal   PetalConfig   `json:"petal"`
	Effects EffectsConfig `json:"effects"`
	Scene   SceneConfig   `json:"scene"`
	// AutoStart begins generation without waiting for Start.
	AutoStart bool `json:"autoStart"`
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() Config {
	return Config{
		Tree: BranchConfig{
			TrunkWidth:         35,
			TrunkLength:        0.35,
			Decay:              Range{0.8, 0.9},
			Jitter:             Range{-0.1, 0.1},
			SideBranchChance:   0.6,
			SideBranchMinWidth: 3,
			SideAngle:          Range{0.3, 0.6},
			SideLengthScale:    0.8,
			SideWidthScale:     0.8,
			Color:              RGB(0x5C, 0x40, 0x33),
		},
		Blossom: BlossomConfig{
			Count:       35,
			TwigWidth:   3,
			MaxSize:     Range{12, 22},
			GrowthRate:  Range{0.15, 0.3},
			Alpha:       Range{0.7, 1},
			Color:       RGB(255, 192, 203),
			CenterColor: RGB(0xFF, 0xFD, 0xD0),
		},
		Petal: PetalConfig{
			Stride:       1,
			Size:         Range{3, 7},
			Hue:          Range{310, 350},
			Saturation:   0.85,
			Lightness:    0.68,
			VelX:         Range{-0.1, 0.1},
			VelY:         Range{0.2, 0.6},
			Gravity:      0.01,
			Drag:         0.99,
			DriftAfter:   Range{80, 150},
			WindStrength: Range{0.06, 0.12},
			WindPeriod:   60,
			Spin:         Range{-0.02, 0.02},
		},
		Effects: EffectsConfig{
			TrailSpacing:    30,
			TrailSize:       Range{4, 8},
			TrailShrinkRate: 0.08,
			TrailFadeRate:   0.02,
			TrailHue:        Range{320, 350},
			RippleSpeed:     2,
			RippleMaxRadius: 60,
			RippleFadeRate:  0.02,
			RippleLineWidth: 2,
			RippleColor:     RGB(255, 182, 193),
		},
		Scene: SceneConfig{
			Overlay: Color{R: 1, G: 240.0 / 255, B: 245.0 / 255, A: 0.4},
		},
	}
}

// LoadConfig overlays JSON data on DefaultConfig and validates the result.
// Fields absent from the JSON keep their default values.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate reports every out-of-range field. The returned error joins one
// error per offending field.
func (c Config) Validate() error {
	var errs []error
	checkRange := func(name string, r Range) {
		if !r.Valid() {
			errs = append(errs, fmt.Errorf("%s: min %v > max %v", name, r.Min, r.Max))
		}
	}
	checkPositive := func(name string, v float64) {
		if !(v > 0) {
			errs = append(errs, fmt.Errorf("%s: must be positive, got %v", name, v))
		}
	}
	checkUnit := func(name string, v float64) {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%s: must be in [0, 1], got %v", name, v))
		}
	}

	checkPositive("tree.trunkWidth", c.Tree.TrunkWidth)
	checkPositive("tree.trunkLength", c.Tree.TrunkLength)
	checkRange("tree.decay", c.Tree.Decay)
	if c.Tree.Decay.Max >= 1 || c.Tree.Decay.Min <= 0 {
		errs = append(errs, fmt.Errorf("tree.decay: must lie in (0, 1), got %v", c.Tree.Decay))
	}
	checkRange("tree.jitter", c.Tree.Jitter)
	checkUnit("tree.sideBranchChance", c.Tree.SideBranchChance)
	checkRange("tree.sideAngle", c.Tree.SideAngle)
	checkPositive("tree.sideLengthScale", c.Tree.SideLengthScale)
	if c.Tree.SideWidthScale <= 0 || c.Tree.SideWidthScale > 1 {
		errs = append(errs, fmt.Errorf("tree.sideWidthScale: must be in (0, 1], got %v", c.Tree.SideWidthScale))
	}

	if c.Blossom.Count < 0 {
		errs = append(errs, fmt.Errorf("blossom.count: must not be negative, got %d", c.Blossom.Count))
	}
	checkPositive("blossom.twigWidth", c.Blossom.TwigWidth)
	checkRange("blossom.maxSize", c.Blossom.MaxSize)
	checkRange("blossom.growthRate", c.Blossom.GrowthRate)
	if c.Blossom.GrowthRate.Min <= 0 {
		errs = append(errs, fmt.Errorf("blossom.growthRate: must be positive, got %v", c.Blossom.GrowthRate))
	}
	checkRange("blossom.alpha", c.Blossom.Alpha)

	if c.Petal.Stride < 1 {
		errs = append(errs, fmt.Errorf("petal.stride: must be at least 1, got %d", c.Petal.Stride))
	}
	checkRange("petal.size", c.Petal.Size)
	checkRange("petal.hue", c.Petal.Hue)
	checkUnit("petal.saturation", c.Petal.Saturation)
	checkUnit("petal.lightness", c.Petal.Lightness)
	checkRange("petal.velX", c.Petal.VelX)
	checkRange("petal.velY", c.Petal.VelY)
	if c.Petal.Drag <= 0 || c.Petal.Drag >= 1 {
		errs = append(errs, fmt.Errorf("petal.drag: must lie in (0, 1), got %v", c.Petal.Drag))
	}
	checkRange("petal.driftAfter", c.Petal.DriftAfter)
	checkRange("petal.windStrength", c.Petal.WindStrength)
	checkPositive("petal.windPeriod", c.Petal.WindPeriod)
	checkRange("petal.spin", c.Petal.Spin)

	checkPositive("effects.trailSpacing", c.Effects.TrailSpacing)
	checkRange("effects.trailSize", c.Effects.TrailSize)
	checkPositive("effects.trailShrinkRate", c.Effects.TrailShrinkRate)
	checkPositive("effects.trailFadeRate", c.Effects.TrailFadeRate)
	checkRange("effects.trailHue", c.Effects.TrailHue)
	checkPositive("effects.rippleSpeed", c.Effects.RippleSpeed)
	checkPositive("effects.rippleMaxRadius", c.Effects.RippleMaxRadius)
	checkPositive("effects.rippleFadeRate", c.Effects.RippleFadeRate)
	checkPositive("effects.rippleLineWidth", c.Effects.RippleLineWidth)

	return errors.Join(errs...)
}
