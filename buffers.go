package cloudmorph

import (
	"github.com/go-gl/mathgl/mgl32"
)

// ParticleBuffer is a flat array of xyz triples, one per particle. The
// renderer consumes it directly as a vertex attribute, so layout is fixed.
type ParticleBuffer []float32

func NewParticleBuffer(count int) ParticleBuffer {
	return make(ParticleBuffer, count*3)
}

// Count returns the number of particles, not the number of scalars.
func (b ParticleBuffer) Count() int {
	return len(b) / 3
}

func (b ParticleBuffer) At(i int) mgl32.Vec3 {
	return mgl32.Vec3{b[i*3], b[i*3+1], b[i*3+2]}
}

func (b ParticleBuffer) Set(i int, p mgl32.Vec3) {
	b[i*3] = p.X()
	b[i*3+1] = p.Y()
	b[i*3+2] = p.Z()
}

// ColorBuffer holds one rgb triple per particle, components in [0,1],
// parallel to a ParticleBuffer.
type ColorBuffer []float32

func NewColorBuffer(count int) ColorBuffer {
	return make(ColorBuffer, count*3)
}

func (b ColorBuffer) Count() int {
	return len(b) / 3
}

func (b ColorBuffer) Set(i int, r, g, bl float32) {
	b[i*3] = r
	b[i*3+1] = g
	b[i*3+2] = bl
}
