package cloudmorph

import (
	"math/rand"
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	sphereRadius = 10.0
	heartScale   = 12.0

	// Irrational angle increment giving even angular coverage without
	// sorting; used for the flower stamen dome.
	goldenAngle = 2.39996
)

// Generate fills a fresh target buffer for the given shape. The buffer is
// always exactly count points long, whatever branch is taken. Point
// placement is random; pass a seeded rng for reproducible output. A nil
// rng gets a time-seeded source.
func Generate(shape Shape, count int, rng *rand.Rand) ParticleBuffer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	buf := NewParticleBuffer(count)

	switch shape {
	case ShapeSphere:
		genSphere(buf, count, rng)
	case ShapeHeart:
		genHeart(buf, count, rng)
	case ShapeFlower:
		genFlower(buf, count, rng)
	case ShapeTree:
		genTree(buf, count, rng)
	case ShapeSnowman:
		genSnowman(buf, count, rng)
	case ShapeGalaxy:
		genGalaxy(buf, count, rng)
	default:
		genCube(buf, count, rng)
	}
	return buf
}

// Uniform sampling over a sphere surface via inverse-CDF spherical
// coordinates: theta uniform, cos(phi) uniform.
func genSphere(buf ParticleBuffer, count int, rng *rand.Rand) {
	for i := 0; i < count; i++ {
		buf.Set(i, spherePoint(rng, mgl32.Vec3{}, sphereRadius))
	}
}

func spherePoint(rng *rand.Rand, center mgl32.Vec3, radius float32) mgl32.Vec3 {
	theta := rng.Float32() * 2 * math32.Pi
	phi := math32.Acos(2*rng.Float32() - 1)
	sinPhi := math32.Sin(phi)
	return mgl32.Vec3{
		center.X() + radius*sinPhi*math32.Cos(theta),
		center.Y() + radius*math32.Cos(phi),
		center.Z() + radius*sinPhi*math32.Sin(theta),
	}
}

// heartImplicit is the classic sextic heart surface, negative inside.
func heartImplicit(x, y, z float32) float32 {
	a := x*x + 2.25*z*z + y*y - 1
	return a*a*a - x*x*y*y*y - 0.1125*z*z*y*y*y
}

// Rejection sampling in the bounding cube. The attempt budget guarantees
// termination; a shortfall (essentially impossible at the real acceptance
// rate) shows up as points parked at the origin rather than a hang.
func genHeart(buf ParticleBuffer, count int, rng *rand.Rand) {
	budget := 20 * count
	idx := 0
	for attempt := 0; attempt < budget && idx < count; attempt++ {
		x := rng.Float32()*3 - 1.5
		y := rng.Float32()*3 - 1.5
		z := rng.Float32()*3 - 1.5
		if heartImplicit(x, y, z) > 0 {
			continue
		}
		buf.Set(idx, mgl32.Vec3{x * heartScale, y * heartScale, z * heartScale})
		idx++
	}
	for ; idx < count; idx++ {
		buf.Set(idx, mgl32.Vec3{})
	}
}

// petalLayer describes one concentric ring of petals.
type petalLayer struct {
	petalCount   int
	radiusOffset float32
	tilt         float32 // elevation of the petal base, radians
	length       float32
	width        float32
	yBase        float32
	inwardCurl   float32
}

var petalLayers = [3]petalLayer{
	{petalCount: 5, radiusOffset: 1.0, tilt: 0.9, length: 3.5, width: 1.5, yBase: 1.0, inwardCurl: 0.8},
	{petalCount: 8, radiusOffset: 2.4, tilt: 0.55, length: 5.5, width: 2.2, yBase: 0.4, inwardCurl: 0.5},
	{petalCount: 13, radiusOffset: 3.8, tilt: 0.25, length: 7.0, width: 2.8, yBase: -0.2, inwardCurl: 0.3},
}

// Flower: every particle independently lands in the stem, the stamen dome
// or one of three petal rings. The stamen uses a per-shape running index
// for golden-angle placement.
func genFlower(buf ParticleBuffer, count int, rng *rand.Rand) {
	stamenIdx := 0
	for i := 0; i < count; i++ {
		pick := rng.Float32()
		switch {
		case pick < 0.10:
			buf.Set(i, flowerStem(rng))
		case pick < 0.25:
			buf.Set(i, flowerStamen(rng, stamenIdx))
			stamenIdx++
		default:
			buf.Set(i, flowerPetal(rng))
		}
	}
}

func flowerStem(rng *rand.Rand) mgl32.Vec3 {
	t := rng.Float32()
	y := -18 + 18*t

	// Tube cross-section, tapering toward the bud.
	radius := lerp32(0.4, 0.14, t)
	ang := rng.Float32() * 2 * math32.Pi
	r := radius * math32.Sqrt(rng.Float32())

	// S-curve: sinusoidal lean in X, half-cosine lean in Z.
	xOff := math32.Sin(t*2.4) * 1.4
	zOff := (1 - math32.Cos(t*math32.Pi/2)) * 1.1

	x := xOff + r*math32.Cos(ang)
	z := zOff + r*math32.Sin(ang)

	// Occasional thorn: a short radial bump.
	if rng.Float32() < 0.04 {
		bump := 0.5 + 0.4*rng.Float32()
		x += bump * math32.Cos(ang)
		z += bump * math32.Sin(ang)
	}

	// Occasional leaf blade on the middle of the stem.
	if t > 0.3 && t < 0.7 && rng.Float32() < 0.07 {
		lu := rng.Float32()       // along the blade
		lv := rng.Float32()*2 - 1 // across the blade
		leafAng := t * 23.0       // height-keyed so a given stem spot always grows the same way
		blade := 0.4 + lu*2.6
		half := math32.Sin(lu*math32.Pi) * 0.6 * lv
		x += blade*math32.Cos(leafAng) - half*math32.Sin(leafAng)
		z += blade*math32.Sin(leafAng) + half*math32.Cos(leafAng)
		y += lu * 0.9
	}

	return mgl32.Vec3{x, y, z}
}

func flowerStamen(rng *rand.Rand, idx int) mgl32.Vec3 {
	// sqrt(U) keeps areal density even across the dome.
	r := 1.5 * math32.Sqrt(rng.Float32())
	ang := float32(idx) * goldenAngle
	rn := r / 1.5
	y := 0.6 + 1.1*(1-rn*rn)
	return mgl32.Vec3{
		r * math32.Cos(ang),
		y + (rng.Float32()-0.5)*0.1,
		r * math32.Sin(ang),
	}
}

func flowerPetal(rng *rand.Rand) mgl32.Vec3 {
	pick := rng.Float32()
	layerIdx := 2
	switch {
	case pick < 0.30:
		layerIdx = 0
	case pick < 0.65:
		layerIdx = 1
	}
	layer := petalLayers[layerIdx]

	petal := rng.Intn(layer.petalCount)
	u := rng.Float32()       // base -> tip
	v := rng.Float32()*2 - 1 // across the width

	widthProfile := math32.Sin(math32.Pow(u, 0.7)*math32.Pi) * layer.width
	across := v * widthProfile * 0.5
	cup := v * v * 2.5 * u

	// Tilt flattens toward the tip; the residual curl pulls the tip back
	// in over the bud.
	elev := layer.tilt + layer.inwardCurl*(1-math32.Pow(u, 1.5))

	radial := layer.radiusOffset + u*layer.length*math32.Cos(elev)
	height := layer.yBase + u*layer.length*math32.Sin(elev) + cup*0.3

	// Interlock: each ring is rotated half a petal against the one inside.
	base := 2*math32.Pi*float32(petal)/float32(layer.petalCount) +
		float32(layerIdx)*math32.Pi/float32(layer.petalCount)

	return mgl32.Vec3{
		radial*math32.Cos(base) - across*math32.Sin(base),
		height,
		radial*math32.Sin(base) + across*math32.Cos(base),
	}
}

func genTree(buf ParticleBuffer, count int, rng *rand.Rand) {
	for i := 0; i < count; i++ {
		if rng.Float32() < 0.10 {
			// Trunk: thin cylinder volume below the canopy.
			y := -10 * rng.Float32()
			r := 0.8 * math32.Sqrt(rng.Float32())
			ang := rng.Float32() * 2 * math32.Pi
			buf.Set(i, mgl32.Vec3{r * math32.Cos(ang), y, r * math32.Sin(ang)})
			continue
		}
		// Canopy: cone volume, radius shrinking linearly toward the apex.
		y := -5 + 25*rng.Float32()
		frac := (y + 5) / 25
		rim := 9 * (1 - frac)
		r := rim * math32.Sqrt(rng.Float32())
		ang := rng.Float32() * 2 * math32.Pi
		buf.Set(i, mgl32.Vec3{r * math32.Cos(ang), y, r * math32.Sin(ang)})
	}
}

const (
	snowBodyY   = -5.0
	snowBodyR   = 6.0
	snowHeadY   = 2.5
	snowHeadR   = 3.5
	snowBrimY   = 5.4
	snowHatTopY = 9.0
)

func genSnowman(buf ParticleBuffer, count int, rng *rand.Rand) {
	for i := 0; i < count; i++ {
		buf.Set(i, snowmanPoint(rng))
	}
}

func snowmanPoint(rng *rand.Rand) mgl32.Vec3 {
	pick := rng.Float32()
	switch {
	case pick < 0.45:
		return spherePoint(rng, mgl32.Vec3{0, snowBodyY, 0}, snowBodyR)
	case pick < 0.70:
		return spherePoint(rng, mgl32.Vec3{0, snowHeadY, 0}, snowHeadR)
	case pick < 0.85:
		return snowmanHat(rng)
	case pick < 0.90:
		return snowmanArm(rng)
	default:
		return snowmanFace(rng)
	}
}

func snowmanHat(rng *rand.Rand) mgl32.Vec3 {
	if rng.Float32() < 0.4 {
		// Flat brim disk.
		r := 3.2 * math32.Sqrt(rng.Float32())
		ang := rng.Float32() * 2 * math32.Pi
		return mgl32.Vec3{
			r * math32.Cos(ang),
			snowBrimY + (rng.Float32()-0.5)*0.2,
			r * math32.Sin(ang),
		}
	}
	// Crown cylinder.
	ang := rng.Float32() * 2 * math32.Pi
	y := snowBrimY + rng.Float32()*(snowHatTopY-snowBrimY)
	return mgl32.Vec3{2.0 * math32.Cos(ang), y, 2.0 * math32.Sin(ang)}
}

func snowmanArm(rng *rand.Rand) mgl32.Vec3 {
	side := float32(1)
	if rng.Float32() < 0.5 {
		side = -1
	}
	t := rng.Float32()
	return mgl32.Vec3{
		side * (5.5 + 5.0*t),
		-3 + 2.0*t + math32.Sin(t*math32.Pi)*0.6,
		(rng.Float32() - 0.5) * 0.4,
	}
}

// faceDepth puts a face-plane offset onto the head sphere's front surface.
func faceDepth(ox, oy float32) float32 {
	d := snowHeadR*snowHeadR - ox*ox - oy*oy
	if d < 0 {
		d = 0
	}
	return math32.Sqrt(d)
}

func snowmanFace(rng *rand.Rand) mgl32.Vec3 {
	pick := rng.Float32()
	switch {
	case pick < 0.3:
		// Eyes.
		side := float32(1)
		if rng.Float32() < 0.5 {
			side = -1
		}
		ox := side*1.2 + (rng.Float32()-0.5)*0.3
		oy := 1.2 + (rng.Float32()-0.5)*0.3
		return mgl32.Vec3{ox, snowHeadY + oy, faceDepth(ox, oy)}
	case pick < 0.55:
		// Carrot nose sticking straight out.
		t := rng.Float32()
		taper := (1 - t) * 0.3
		ox := (rng.Float32() - 0.5) * taper
		oy := 0.3 + (rng.Float32()-0.5)*taper
		return mgl32.Vec3{ox, snowHeadY + oy, faceDepth(0, 0.3) + t*2.0}
	default:
		// Mouth arc.
		t := rng.Float32()
		ox := -1.5 + 3*t
		oy := -1.2 - math32.Sin(t*math32.Pi)*0.5
		return mgl32.Vec3{ox, snowHeadY + oy, faceDepth(ox, oy)}
	}
}

const galaxyTilt = 20 * math32.Pi / 180

// Galaxy: the first 40% of the index range is a spherical core, the rest
// an annulus in a plane tilted about X.
func genGalaxy(buf ParticleBuffer, count int, rng *rand.Rand) {
	coreCount := count * 2 / 5
	sinT := math32.Sin(galaxyTilt)
	cosT := math32.Cos(galaxyTilt)

	for i := 0; i < count; i++ {
		if i < coreCount {
			r := 4 * math32.Pow(rng.Float32(), 1.0/3.0)
			buf.Set(i, spherePoint(rng, mgl32.Vec3{}, r))
			continue
		}
		ringR := 12 + 4*rng.Float32()
		ang := rng.Float32() * 2 * math32.Pi
		x := ringR * math32.Cos(ang)
		y := (rng.Float32() - 0.5) * 1.0
		z := ringR * math32.Sin(ang)
		buf.Set(i, mgl32.Vec3{
			x,
			y*cosT - z*sinT,
			y*sinT + z*cosT,
		})
	}
}

// Fallback for selectors outside the known set.
func genCube(buf ParticleBuffer, count int, rng *rand.Rand) {
	for i := 0; i < count; i++ {
		buf.Set(i, mgl32.Vec3{
			rng.Float32()*20 - 10,
			rng.Float32()*20 - 10,
			rng.Float32()*20 - 10,
		})
	}
}

func lerp32(a, b, t float32) float32 { return a + (b-a)*t }
