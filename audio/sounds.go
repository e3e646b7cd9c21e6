package audio

import (
	"time"

	"github.com/gopxl/beep"
)

type note struct {
	freq    float64
	slide   float64
	d       time.Duration
	wave    Wave
	attack  time.Duration
	release time.Duration
	vol     float64
}

// recipes maps every sound name the game emits to a note sequence.
var recipes = map[string][]note{
	"shoot":     {{freq: 880, slide: -2400, d: 60 * time.Millisecond, wave: WaveSquare, attack: 2 * time.Millisecond, release: 40 * time.Millisecond, vol: 0.15}},
	"hit":       {{freq: 320, d: 50 * time.Millisecond, wave: WaveSaw, attack: time.Millisecond, release: 30 * time.Millisecond, vol: 0.25}},
	"explosion": {{d: 350 * time.Millisecond, wave: WaveNoise, attack: 2 * time.Millisecond, release: 300 * time.Millisecond, vol: 0.4}},
	"damage":    {{freq: 140, slide: -200, d: 250 * time.Millisecond, wave: WaveSaw, attack: 5 * time.Millisecond, release: 150 * time.Millisecond, vol: 0.4}},
	"pickup": {
		{freq: 987.77, d: 70 * time.Millisecond, wave: WaveSquare, attack: 2 * time.Millisecond, release: 30 * time.Millisecond, vol: 0.2},
		{freq: 1318.51, d: 140 * time.Millisecond, wave: WaveSquare, attack: 2 * time.Millisecond, release: 100 * time.Millisecond, vol: 0.2},
	},
	"level_up": {
		{freq: 523.25, d: 90 * time.Millisecond, wave: WaveSine, attack: 5 * time.Millisecond, release: 40 * time.Millisecond, vol: 0.35},
		{freq: 659.25, d: 90 * time.Millisecond, wave: WaveSine, attack: 5 * time.Millisecond, release: 40 * time.Millisecond, vol: 0.35},
		{freq: 783.99, d: 180 * time.Millisecond, wave: WaveSine, attack: 5 * time.Millisecond, release: 120 * time.Millisecond, vol: 0.35},
	},
	"phase":    {{freq: 110, slide: 220, d: 500 * time.Millisecond, wave: WaveSaw, attack: 50 * time.Millisecond, release: 200 * time.Millisecond, vol: 0.35}},
	"teleport": {{freq: 1500, slide: -5000, d: 200 * time.Millisecond, wave: WaveSine, attack: 5 * time.Millisecond, release: 100 * time.Millisecond, vol: 0.3}},
	"mine":     {{freq: 660, d: 40 * time.Millisecond, wave: WaveSquare, attack: time.Millisecond, release: 20 * time.Millisecond, vol: 0.2}},
	"victory": {
		{freq: 523.25, d: 150 * time.Millisecond, wave: WaveSquare, attack: 5 * time.Millisecond, release: 50 * time.Millisecond, vol: 0.3},
		{freq: 659.25, d: 150 * time.Millisecond, wave: WaveSquare, attack: 5 * time.Millisecond, release: 50 * time.Millisecond, vol: 0.3},
		{freq: 783.99, d: 150 * time.Millisecond, wave: WaveSquare, attack: 5 * time.Millisecond, release: 50 * time.Millisecond, vol: 0.3},
		{freq: 1046.5, d: 400 * time.Millisecond, wave: WaveSquare, attack: 5 * time.Millisecond, release: 300 * time.Millisecond, vol: 0.3},
	},
	"game_over": {
		{freq: 392, d: 250 * time.Millisecond, wave: WaveSaw, attack: 10 * time.Millisecond, release: 100 * time.Millisecond, vol: 0.3},
		{freq: 311.13, d: 250 * time.Millisecond, wave: WaveSaw, attack: 10 * time.Millisecond, release: 100 * time.Millisecond, vol: 0.3},
		{freq: 196, d: 600 * time.Millisecond, wave: WaveSaw, attack: 10 * time.Millisecond, release: 500 * time.Millisecond, vol: 0.3},
	},
	"special":     {{freq: 60, slide: 1200, d: 600 * time.Millisecond, wave: WaveNoise, attack: 20 * time.Millisecond, release: 400 * time.Millisecond, vol: 0.45}},
	"slow_motion": {{freq: 400, slide: -500, d: 600 * time.Millisecond, wave: WaveSine, attack: 30 * time.Millisecond, release: 300 * time.Millisecond, vol: 0.3}},
}

// Names lists the sounds the manager can synthesize.
func Names() []string {
	out := make([]string, 0, len(recipes))
	for name := range recipes {
		out = append(out, name)
	}
	return out
}

// NewSound builds a fresh streamer for name, or nil when it is unknown.
func NewSound(name string, rate beep.SampleRate, master float64) beep.Streamer {
	notes, ok := recipes[name]
	if !ok {
		return nil
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		osc := NewOscillator(n.freq, n.slide, n.d, n.wave, rate)
		parts = append(parts, newVolume(NewEnvelope(osc, n.d, n.attack, n.release, rate), n.vol))
	}
	return newVolume(beep.Seq(parts...), master)
}
