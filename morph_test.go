package cloudmorph

import (
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
)

func bufferDistance(a, b ParticleBuffer) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math32.Sqrt(sum)
}

func TestMorphConvergesMonotonically(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	engine := NewMorphEngine(Generate(ShapeSphere, 500, rng))
	engine.SetTarget(Generate(ShapeHeart, 500, rng))

	prev := bufferDistance(engine.Live(), engine.Target())
	for tick := 0; tick < 400; tick++ {
		engine.Step(float32(tick)*0.016, 1.0, 0) // noise off
		d := bufferDistance(engine.Live(), engine.Target())
		if d > prev+1e-4 {
			t.Fatalf("tick %d: distance grew from %v to %v", tick, prev, d)
		}
		prev = d
	}
	if prev > 1.0 {
		t.Errorf("live buffer still %v away from target after 400 ticks", prev)
	}
}

func TestMorphNeverOvershoots(t *testing.T) {
	// A single channel starting below its target must approach from below
	// and never cross it.
	engine := &MorphEngine{
		live:   ParticleBuffer{0, 0, 0},
		target: ParticleBuffer{10, 0, 0},
	}
	for tick := 0; tick < 1000; tick++ {
		engine.Step(0, 1.0, 0)
		if engine.live[0] > 10 {
			t.Fatalf("tick %d: channel overshot to %v", tick, engine.live[0])
		}
	}
	if engine.live[0] < 9.9 {
		t.Errorf("channel only reached %v", engine.live[0])
	}
}

func TestMorphNoiseBelowThresholdIsInert(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	target := Generate(ShapeSphere, 200, rng)

	a := NewMorphEngine(target)
	b := NewMorphEngine(target)
	for tick := 0; tick < 50; tick++ {
		a.Step(float32(tick)*0.016, 1.0, 0)
		b.Step(float32(tick)*0.016, 1.0, noiseThreshold/2)
	}
	for i := range a.Live() {
		if a.Live()[i] != b.Live()[i] {
			t.Fatalf("sub-threshold noise perturbed channel %d", i)
		}
	}
}

func TestMorphNoisePerturbs(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	target := Generate(ShapeSphere, 200, rng)

	quiet := NewMorphEngine(target)
	noisy := NewMorphEngine(target)
	quiet.Step(1.0, 1.0, 0)
	noisy.Step(1.0, 1.0, 2.0)

	if bufferDistance(quiet.Live(), noisy.Live()) == 0 {
		t.Fatal("noise strength 2.0 left the buffer untouched")
	}
}

func TestMorphTargetSwapKeepsLive(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	engine := NewMorphEngine(Generate(ShapeSphere, DefaultParticleCount, rng))

	before := make(ParticleBuffer, len(engine.Live()))
	copy(before, engine.Live())

	// Selecting a new shape replaces the target wholesale but must not
	// touch the live buffer until the next tick.
	engine.SetTarget(Generate(ShapeHeart, DefaultParticleCount, rng))
	for i := range before {
		if engine.Live()[i] != before[i] {
			t.Fatalf("live channel %d changed on target swap", i)
		}
	}

	engine.Step(0.016, 1.0, 0)
	if bufferDistance(engine.Live(), before) == 0 {
		t.Error("live buffer did not start morphing after the swap")
	}
}

func TestMorphSpinScalesWithSpeed(t *testing.T) {
	target := ParticleBuffer{0, 0, 0}
	slow := NewMorphEngine(target)
	fast := NewMorphEngine(target)
	for tick := 0; tick < 10; tick++ {
		slow.Step(0, 1.0, 0)
		fast.Step(0, 3.0, 0)
	}
	if math32.Abs(fast.Spin-3*slow.Spin) > 1e-6 {
		t.Errorf("spin not proportional to speed: slow %v fast %v", slow.Spin, fast.Spin)
	}
}
