package cloudmorph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingOrbit struct {
	enabled   bool
	setCalls  []bool
	rotations [][2]float32
	azimuth   float32
	polar     float32
}

func (o *recordingOrbit) SetEnabled(enabled bool) {
	o.enabled = enabled
	o.setCalls = append(o.setCalls, enabled)
}
func (o *recordingOrbit) Enabled() bool { return o.enabled }
func (o *recordingOrbit) Rotate(dAz, dPolar float32) {
	o.rotations = append(o.rotations, [2]float32{dAz, dPolar})
	o.azimuth += dAz
	o.polar += dPolar
}
func (o *recordingOrbit) Angles() (float32, float32)  { return o.azimuth, o.polar }
func (o *recordingOrbit) SetAngles(az, polar float32) { o.azimuth, o.polar = az, polar }

const testDt = 1.0 / 60.0

func TestRigScaleApproachesTargetWithoutOvershoot(t *testing.T) {
	rig := NewInteractionRig()
	orbit := &recordingOrbit{}
	gs := GestureState{Mode: ModeScaleUp, Detected: true, ScaleTarget: 3.0}

	prev := rig.CurrentScale
	for tick := 0; tick < 600; tick++ {
		rig.Update(testDt, gs, true, orbit)
		if rig.CurrentScale > 3.0 {
			t.Fatalf("tick %d: scale overshot to %v", tick, rig.CurrentScale)
		}
		if rig.CurrentScale < prev {
			t.Fatalf("tick %d: scale moved away from target", tick)
		}
		prev = rig.CurrentScale
	}
	assert.InDelta(t, 3.0, float64(rig.CurrentScale), 1e-2)
}

func TestRigRotationGestureLocksScale(t *testing.T) {
	rig := NewInteractionRig()
	rig.CurrentScale = 2.5
	orbit := &recordingOrbit{}

	gs := GestureState{Mode: ModeRotateZ, Detected: true, ScaleTarget: 3.0}
	for tick := 0; tick < 600; tick++ {
		rig.Update(testDt, gs, true, orbit)
	}
	// Even though the classifier left a scale target behind, rotation
	// modes pin the scale back to 1.
	assert.InDelta(t, 1.0, float64(rig.CurrentScale), 1e-2)
}

func TestRigIdleDecaysScaleAtHalfRate(t *testing.T) {
	fast := NewInteractionRig()
	slow := NewInteractionRig()
	fast.CurrentScale = 3.0
	slow.CurrentScale = 3.0
	orbit := &recordingOrbit{}

	fast.Update(testDt, GestureState{Mode: ModeRotateView, Detected: true}, true, orbit)
	slow.Update(testDt, GestureState{Mode: ModeIdle}, true, orbit)

	fastStep := 3.0 - fast.CurrentScale
	slowStep := 3.0 - slow.CurrentScale
	assert.InDelta(t, float64(fastStep/2), float64(slowStep), 1e-6)
}

func TestRigRotateViewFirstEngagementIsDeltaFree(t *testing.T) {
	rig := NewInteractionRig()
	orbit := &recordingOrbit{}

	gs := GestureState{Mode: ModeRotateView, Detected: true, X: 0.5, Y: 0.5}
	rig.Update(testDt, gs, true, orbit)
	assert.Empty(t, orbit.rotations, "first frame in rotate-view must not rotate")

	gs.X = 0.6
	rig.Update(testDt, gs, true, orbit)
	assert.Len(t, orbit.rotations, 1)
	assert.InDelta(t, float64(-0.1*rigOrbitSensitivity), float64(orbit.rotations[0][0]), 1e-5)
}

func TestRigRotateViewForgetsHandAcrossModes(t *testing.T) {
	rig := NewInteractionRig()
	orbit := &recordingOrbit{}

	rig.Update(testDt, GestureState{Mode: ModeRotateView, Detected: true, X: 0.2, Y: 0.2}, true, orbit)
	rig.Update(testDt, GestureState{Mode: ModeIdle}, true, orbit)

	// Re-engaging far away from the previous position must not produce a
	// jump delta.
	rig.Update(testDt, GestureState{Mode: ModeRotateView, Detected: true, X: 0.9, Y: 0.9}, true, orbit)
	assert.Empty(t, orbit.rotations)
}

func TestRigRollTracksAndDecays(t *testing.T) {
	rig := NewInteractionRig()
	orbit := &recordingOrbit{}

	gs := GestureState{Mode: ModeRotateZ, Detected: true, RotationZ: 0.8}
	for tick := 0; tick < 600; tick++ {
		rig.Update(testDt, gs, true, orbit)
	}
	assert.InDelta(t, float64(0.8+rigRollOffset), float64(rig.CurrentRoll), 1e-2)

	for tick := 0; tick < 1200; tick++ {
		rig.Update(testDt, GestureState{Mode: ModeIdle}, true, orbit)
	}
	assert.InDelta(t, 0, float64(rig.CurrentRoll), 1e-2)
}

func TestRigArbitrationTogglesOrbit(t *testing.T) {
	rig := NewInteractionRig()
	orbit := &recordingOrbit{enabled: true}

	rig.Update(testDt, GestureState{Mode: ModeRotateView, Detected: true}, true, orbit)
	assert.False(t, orbit.enabled, "orbit widget must be locked out during a gesture")

	rig.Update(testDt, GestureState{Mode: ModeIdle}, true, orbit)
	assert.True(t, orbit.enabled, "orbit widget must come back when idle")

	// Gestures disabled entirely: the widget stays in charge whatever the
	// stale snapshot says.
	rig.Update(testDt, GestureState{Mode: ModeScaleUp, Detected: true, ScaleTarget: 3}, false, orbit)
	assert.True(t, orbit.enabled)
}

func TestRigSmoothingIsFrameRateIndependent(t *testing.T) {
	// Same wall-clock time at different tick rates must land close to the
	// same scale.
	coarse := NewInteractionRig()
	fine := NewInteractionRig()
	orbit := &recordingOrbit{}
	gs := GestureState{Mode: ModeScaleUp, Detected: true, ScaleTarget: 3.0}

	for tick := 0; tick < 30; tick++ {
		coarse.Update(1.0/30.0, gs, true, orbit)
	}
	for tick := 0; tick < 120; tick++ {
		fine.Update(1.0/120.0, gs, true, orbit)
	}
	assert.InDelta(t, float64(coarse.CurrentScale), float64(fine.CurrentScale), 0.15)
}
