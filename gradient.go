package cloudmorph

import (
	"github.com/lucasb-eyer/go-colorful"
)

// ComputeColors derives one color per particle from its height within the
// target buffer, blended across the five palette stops at 0, 0.25, 0.5,
// 0.75, 1. Only called when the palette or the target buffer changes,
// never per frame.
func ComputeColors(target ParticleBuffer, palette [5]colorful.Color, out ColorBuffer) {
	count := target.Count()

	minY := float32(0)
	maxY := float32(0)
	if count > 0 {
		minY = target[1]
		maxY = target[1]
	}
	for i := 1; i < count; i++ {
		y := target[i*3+1]
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}

	span := maxY - minY
	if span <= 0 {
		// Degenerate buffer (all particles at one height): avoid the
		// divide by zero, everything maps to the bottom stop.
		span = 1
	}

	for i := 0; i < count; i++ {
		t := (target[i*3+1] - minY) / span
		if t < 0 {
			t = 0
		}
		if t > 1 {
			t = 1
		}
		c := paletteAt(palette, t)
		out.Set(i, float32(c.R), float32(c.G), float32(c.B))
	}
}

// paletteAt linearly interpolates within the 0.25-wide band t falls in.
func paletteAt(palette [5]colorful.Color, t float32) colorful.Color {
	if t >= 1 {
		return palette[4]
	}
	seg := int(t * 4)
	frac := float64(t*4 - float32(seg))
	return palette[seg].BlendRgb(palette[seg+1], frac)
}
