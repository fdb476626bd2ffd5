package sound

import (
	"math"

	"github.com/gopxl/beep"
)

// tone is a sine sweep from one frequency to another with a linear decay
// envelope over length samples.
type tone struct {
	sr        beep.SampleRate
	from, to  float64
	amplitude float64
	length    int
	pos       int
	phase     float64
}

func newTone(sr beep.SampleRate, from, to, amplitude float64, length int) *tone {
	return &tone{sr: sr, from: from, to: to, amplitude: amplitude, length: length}
}

func (g *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		progress := 0.0
		if g.length > 0 {
			progress = math.Min(float64(g.pos)/float64(g.length), 1)
		}
		freq := g.from + (g.to-g.from)*progress
		g.phase += 2 * math.Pi * freq / float64(g.sr)
		if g.phase > 2*math.Pi {
			g.phase -= 2 * math.Pi
		}

		sample := g.amplitude * (1 - progress) * math.Sin(g.phase)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *tone) Err() error {
	return nil
}
