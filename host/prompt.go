package host

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// PromptConfig configures the message shown once every blossom is open.
type PromptConfig struct {
	// Text is the prompt line shown above the button.
	Text string
	// Button is the label of the button that reveals Message.
	Button string
	// Message is the final message.
	Message string

	// FadeIn and FadeOut are durations in seconds.
	FadeIn  float32
	FadeOut float32
	// MessageDelay is the pause in seconds between dismissing the prompt
	// and starting to fade in the message.
	MessageDelay float32
}

// DefaultPromptConfig returns the stock prompt.
func DefaultPromptConfig() PromptConfig {
	return PromptConfig{
		Text:         "Every blossom is open.",
		Button:       "<3",
		Message:      "Happy spring.",
		FadeIn:       0.8,
		FadeOut:      0.5,
		MessageDelay: 0.5,
	}
}

type promptPhase uint8

const (
	promptHidden    promptPhase = iota // nothing shown
	promptShown                        // prompt fading in or visible, button live
	promptDismissed                    // prompt fading out, message pending
	promptMessage                      // message fading in or visible
)

// prompt is the bloom prompt / final message state machine. All fades use
// gween tweens advanced by Update.
type prompt struct {
	cfg   PromptConfig
	phase promptPhase

	promptAlpha  float64
	messageAlpha float64

	promptTween  *gween.Tween
	messageTween *gween.Tween
	delay        float32
}

func newPrompt(cfg PromptConfig) *prompt {
	return &prompt{cfg: cfg}
}

// Show starts fading the prompt in. Calls in any phase but hidden are ignored.
func (p *prompt) Show() {
	if p.phase != promptHidden {
		return
	}
	p.phase = promptShown
	p.promptTween = gween.New(float32(p.promptAlpha), 1, p.cfg.FadeIn, ease.OutCubic)
}

// Dismiss fades the prompt out and schedules the message. It reports whether
// the prompt was live.
func (p *prompt) Dismiss() bool {
	if p.phase != promptShown {
		return false
	}
	p.phase = promptDismissed
	p.promptTween = gween.New(float32(p.promptAlpha), 0, p.cfg.FadeOut, ease.OutCubic)
	p.delay = p.cfg.MessageDelay
	return true
}

// ButtonActive reports whether the button accepts presses.
func (p *prompt) ButtonActive() bool {
	return p.phase == promptShown
}

// Update advances the fades by dt seconds.
func (p *prompt) Update(dt float32) {
	if p.promptTween != nil {
		v, done := p.promptTween.Update(dt)
		p.promptAlpha = clampAlpha(float64(v))
		if done {
			p.promptTween = nil
		}
	}

	if p.phase == promptDismissed {
		p.delay -= dt
		if p.delay <= 0 {
			p.phase = promptMessage
			p.promptTween = nil
			p.promptAlpha = 0
			p.messageTween = gween.New(0, 1, p.cfg.FadeIn, ease.OutCubic)
		}
	}

	if p.messageTween != nil {
		v, done := p.messageTween.Update(dt)
		p.messageAlpha = clampAlpha(float64(v))
		if done {
			p.messageTween = nil
		}
	}
}

func clampAlpha(v float64) float64 {
	return min(max(v, 0), 1)
}
