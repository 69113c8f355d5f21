package cloudmorph

import (
	"github.com/chewxy/math32"
)

const (
	// Fixed per-tick blend toward the target. Deliberately not scaled by
	// frame delta; matches the original engine's behavior.
	morphBlend = 0.035

	noiseThreshold = 0.01
	noiseAmplitude = 0.06
	noisePhaseGain = 0.5

	spinRate = 0.0008
)

// MorphEngine owns the live buffer and relaxes it toward the current
// target every tick. The target is swapped wholesale on shape change; the
// live buffer is allocated once and mutated in place for the whole
// session, so a shape change never causes a visual jump.
type MorphEngine struct {
	live   ParticleBuffer
	target ParticleBuffer

	// Spin is the accumulated slow rotation of the whole group about the
	// vertical axis, applied by the renderer as a transform, not baked
	// into the points.
	Spin float32
}

func NewMorphEngine(target ParticleBuffer) *MorphEngine {
	live := NewParticleBuffer(target.Count())
	copy(live, target)
	return &MorphEngine{
		live:   live,
		target: target,
	}
}

// Live exposes the displayed buffer. Read-only to callers per frame.
func (e *MorphEngine) Live() ParticleBuffer { return e.live }

// Target returns the buffer currently morphed toward.
func (e *MorphEngine) Target() ParticleBuffer { return e.target }

// SetTarget swaps in a new destination. The live buffer is left alone;
// the next ticks morph it over from wherever it is now.
func (e *MorphEngine) SetTarget(target ParticleBuffer) {
	e.target = target
}

// Step advances the animation one render tick. elapsed is seconds since
// session start (drives the noise phase), speed and noiseStrength come
// from the active config.
func (e *MorphEngine) Step(elapsed, speed, noiseStrength float32) {
	for i := range e.live {
		e.live[i] += (e.target[i] - e.live[i]) * morphBlend
	}

	if noiseStrength > noiseThreshold {
		amp := noiseStrength * noiseAmplitude
		phase := elapsed * speed
		n := e.live.Count()
		for i := 0; i < n; i++ {
			x := e.live[i*3]
			y := e.live[i*3+1]
			z := e.live[i*3+2]
			// Each axis keyed off another axis' coordinate so the
			// perturbation ripples through the cloud instead of
			// translating it.
			e.live[i*3] += math32.Sin(phase+y*noisePhaseGain) * amp
			e.live[i*3+1] += math32.Cos(phase+z*noisePhaseGain) * amp
			e.live[i*3+2] += math32.Sin(phase+x*noisePhaseGain) * amp
		}
	}

	e.Spin += spinRate * speed
}
