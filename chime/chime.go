// Package chime plays a short sine-tone arpeggio when a sakura scene
// finishes blooming. Audio is optional: when the speaker cannot be opened
// the player logs the failure and every Play becomes a no-op.
package chime

import (
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

// DefaultSampleRate is the sample rate used when New is given zero.
const DefaultSampleRate = beep.SampleRate(44100)

// Note is one tone of a chime.
type Note struct {
	Freq     float64
	Duration time.Duration
}

// BloomNotes is a rising C major arpeggio ending on the octave.
var BloomNotes = []Note{
	{Freq: 523.25, Duration: 120 * time.Millisecond},
	{Freq: 659.25, Duration: 120 * time.Millisecond},
	{Freq: 783.99, Duration: 120 * time.Millisecond},
	{Freq: 1046.50, Duration: 360 * time.Millisecond},
}

// Player owns the speaker. It is safe for concurrent use.
type Player struct {
	mu     sync.Mutex
	rate   beep.SampleRate
	volume float64
	ready  bool
}

// New creates a player at the given sample rate and linear volume in [0, 1].
// The speaker is not opened until Init.
func New(rate beep.SampleRate, volume float64) *Player {
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	return &Player{rate: rate, volume: volume}
}

// Init opens the speaker with a 100 ms buffer. Calling Init twice is a no-op.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ready {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(time.Second/10)); err != nil {
		return fmt.Errorf("chime: speaker init: %w", err)
	}
	p.ready = true
	return nil
}

// Ready reports whether the speaker was opened.
func (p *Player) Ready() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ready
}

// Play queues the bloom chime. It does nothing before a successful Init.
func (p *Player) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready {
		return
	}
	s, err := Sequence(p.rate, BloomNotes, p.volume)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[sakura] chime: %v\n", err)
		return
	}
	speaker.Play(s)
}

// Close stops playback and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.ready = false
}

// Sequence builds a streamer that plays notes back to back, each faded
// out over its last quarter, at the given linear volume.
func Sequence(rate beep.SampleRate, notes []Note, volume float64) (beep.Streamer, error) {
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		tone, err := generators.SineTone(rate, n.Freq)
		if err != nil {
			return nil, fmt.Errorf("tone %.2f Hz: %w", n.Freq, err)
		}
		total := rate.N(n.Duration)
		parts = append(parts, &release{
			streamer: beep.Take(total, tone),
			total:    total,
			start:    total - total/4,
		})
	}
	return withVolume(beep.Seq(parts...), volume), nil
}

// withVolume maps a linear volume onto effects.Volume's log scale.
// Log2(0) is -Inf so zero and below are silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// release fades the wrapped streamer linearly to zero between start and total.
type release struct {
	streamer beep.Streamer
	pos      int
	start    int
	total    int
}

func (r *release) Stream(samples [][2]float64) (int, bool) {
	n, ok := r.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if r.pos >= r.start && r.total > r.start {
			g := float64(r.total-r.pos) / float64(r.total-r.start)
			samples[i][0] *= g
			samples[i][1] *= g
		}
		r.pos++
	}
	return n, ok
}

func (r *release) Err() error { return r.streamer.Err() }
