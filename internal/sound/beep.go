package sound

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Beep plays effects through the system audio device.
type Beep struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	closed bool
}

// NewBeep initializes the speaker. It fails on machines without an audio
// device; callers fall back to Nop.
func NewBeep() (*Beep, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("sound: cannot init speaker: %w", err)
	}
	b := &Beep{mixer: &beep.Mixer{}}
	speaker.Play(b.mixer)
	return b, nil
}

// Play queues an effect on the mixer.
func (b *Beep) Play(e Effect) {
	s := Stream(e)
	if s == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	speaker.Lock()
	b.mixer.Add(s)
	speaker.Unlock()
}

// Close silences the mixer and releases the device.
func (b *Beep) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	speaker.Clear()
	speaker.Close()
}

// Stream returns a finite streamer for the effect, nil for EffectNone.
func Stream(e Effect) beep.Streamer {
	var parts []beep.Streamer
	switch e {
	case EffectJump:
		parts = append(parts, chirp(90, 520, 880, 0.25))
	case EffectLand:
		parts = append(parts, chirp(70, 140, 90, 0.3))
	case EffectDoor:
		parts = append(parts,
			chirp(90, 660, 660, 0.2),
			chirp(140, 990, 990, 0.2),
		)
	case EffectWin:
		for _, f := range []float64{523, 659, 784, 1047} {
			parts = append(parts, chirp(120, f, f, 0.2))
		}
	case EffectClick:
		parts = append(parts, chirp(25, 1200, 1200, 0.15))
	case EffectResize:
		parts = append(parts, chirp(60, 300, 420, 0.2))
	default:
		return nil
	}
	return beep.Seq(parts...)
}

// chirp is a decaying sweep lasting ms milliseconds.
func chirp(ms int, from, to, amplitude float64) beep.Streamer {
	n := sampleRate.N(time.Duration(ms) * time.Millisecond)
	return beep.Take(n, newTone(sampleRate, from, to, amplitude, n))
}
