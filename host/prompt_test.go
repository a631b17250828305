package host

import "testing"

func fastPrompt() *prompt {
	return newPrompt(PromptConfig{FadeIn: 0.2, FadeOut: 0.2, MessageDelay: 0.5})
}

func TestPromptHiddenByDefault(t *testing.T) {
	p := fastPrompt()
	p.Update(1)
	if p.promptAlpha != 0 || p.messageAlpha != 0 {
		t.Errorf("alphas = %v/%v, want 0/0", p.promptAlpha, p.messageAlpha)
	}
	if p.ButtonActive() {
		t.Error("button active before Show")
	}
	if p.Dismiss() {
		t.Error("Dismiss succeeded on a hidden prompt")
	}
}

func TestPromptFadesIn(t *testing.T) {
	p := fastPrompt()
	p.Show()
	if !p.ButtonActive() {
		t.Fatal("button should be active once shown")
	}
	p.Update(0.1)
	if p.promptAlpha <= 0 || p.promptAlpha >= 1 {
		t.Errorf("mid-fade alpha = %v, want in (0, 1)", p.promptAlpha)
	}
	p.Update(0.2)
	if p.promptAlpha != 1 {
		t.Errorf("alpha = %v after fade, want 1", p.promptAlpha)
	}
}

func TestPromptShowIsIdempotent(t *testing.T) {
	p := fastPrompt()
	p.Show()
	p.Update(0.3)
	p.Show()
	if p.promptAlpha != 1 || p.promptTween != nil {
		t.Errorf("second Show restarted the fade: alpha=%v", p.promptAlpha)
	}
}

func TestPromptDismissRevealsMessageAfterDelay(t *testing.T) {
	p := fastPrompt()
	p.Show()
	p.Update(0.3)

	if !p.Dismiss() {
		t.Fatal("Dismiss on a shown prompt should succeed")
	}
	if p.ButtonActive() {
		t.Error("button still active after Dismiss")
	}
	if p.Dismiss() {
		t.Error("second Dismiss should be ignored")
	}

	p.Update(0.3)
	if p.promptAlpha != 0 {
		t.Errorf("prompt alpha = %v after fade-out, want 0", p.promptAlpha)
	}
	if p.messageAlpha != 0 || p.phase != promptDismissed {
		t.Errorf("message started before the delay: alpha=%v phase=%v", p.messageAlpha, p.phase)
	}

	p.Update(0.25)
	if p.phase != promptMessage {
		t.Fatalf("phase = %v, want message after the delay", p.phase)
	}
	p.Update(0.5)
	if p.messageAlpha != 1 {
		t.Errorf("message alpha = %v, want 1", p.messageAlpha)
	}

	p.Show()
	if p.phase != promptMessage {
		t.Error("Show after the message should be ignored")
	}
}

func TestDefaultPromptConfig(t *testing.T) {
	cfg := DefaultPromptConfig()
	if cfg.MessageDelay != 0.5 {
		t.Errorf("MessageDelay = %v, want 0.5", cfg.MessageDelay)
	}
	if cfg.Text == "" || cfg.Button == "" || cfg.Message == "" {
		t.Errorf("empty default text: %+v", cfg)
	}
}
