package cloudmorph

import (
	"math/rand"
	"time"
)

// DefaultParticleCount is the reference session size.
const DefaultParticleCount = 15000

// ParticleCloud ties the live/target buffers, the morph engine and the
// color buffer together for one session.
type ParticleCloud struct {
	Engine *MorphEngine
	Colors ColorBuffer

	rng         *rand.Rand
	lastShape   Shape
	lastPalette [5]string
}

// Regenerate swaps in a fresh target for the given shape. The live buffer
// keeps its current values; morphing picks up from there.
func (c *ParticleCloud) Regenerate(shape Shape, count int) {
	c.Engine.SetTarget(Generate(shape, count, c.rng))
}

// CloudModule installs the particle cloud and the per-frame morph system.
// Seed zero means time-seeded, the normal interactive case; tests pass a
// fixed seed for reproducible buffers.
type CloudModule struct {
	Count int
	Seed  int64
}

func (m CloudModule) Install(app *App, cmd *Commands) {
	count := m.Count
	if count <= 0 {
		count = DefaultParticleCount
	}
	seed := m.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	cfg := DefaultConfig()
	cloud := &ParticleCloud{
		Engine:      NewMorphEngine(Generate(cfg.Shape, count, rng)),
		Colors:      NewColorBuffer(count),
		rng:         rng,
		lastShape:   cfg.Shape,
		lastPalette: cfg.ColorPalette,
	}
	ComputeColors(cloud.Engine.Target(), cfg.Palette(), cloud.Colors)

	cmd.AddResources(&cfg, cloud)
	app.UseSystem(System(cloudSystem).InStage(Update))
}

// cloudSystem reacts to config changes and steps the morph engine, once
// per render tick. The target is regenerated wholesale on shape change
// and colors are recomputed only when the target or palette changed.
func cloudSystem(t *Time, cfg *ParticleConfig, cloud *ParticleCloud) {
	recolor := false

	if cfg.Shape != cloud.lastShape {
		cloud.Regenerate(cfg.Shape, cloud.Engine.Live().Count())
		cloud.lastShape = cfg.Shape
		recolor = true
	}
	if cfg.ColorPalette != cloud.lastPalette {
		cloud.lastPalette = cfg.ColorPalette
		recolor = true
	}
	if recolor {
		ComputeColors(cloud.Engine.Target(), cfg.Palette(), cloud.Colors)
	}

	cloud.Engine.Step(t.ElapsedSeconds(), cfg.Speed, cfg.NoiseStrength)
}
