package cloudmorph

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

// handFixture builds a synthetic frame where each listed finger's tip is
// farther from the wrist than its proximal joint (extended) or nearer
// (curled).
func handFixture(thumb, index, middle, ring, pinky bool) *GestureFrame {
	extended := [5]bool{thumb, index, middle, ring, pinky}

	var frame GestureFrame
	wrist := mgl32.Vec3{0.5, 0.9, 0}
	frame[LandmarkWrist] = wrist

	for finger := 0; finger < 5; finger++ {
		x := 0.3 + 0.1*float32(finger)
		joint := mgl32.Vec3{x, 0.6, 0}
		tip := mgl32.Vec3{x, 0.3, 0} // farther from the wrist
		if !extended[finger] {
			tip = mgl32.Vec3{x, 0.75, 0} // curled back toward the wrist
		}
		frame[finger*4+2] = joint
		frame[finger*4+4] = tip
	}
	return &frame
}

func TestClassifyRotateZ(t *testing.T) {
	state := Classify(handFixture(true, true, true, false, false))
	if state.Mode != ModeRotateZ {
		t.Fatalf("expected rotate-z, got %v", state.Mode)
	}
	if state.FingersCount != 3 {
		t.Errorf("expected 3 fingers, got %d", state.FingersCount)
	}
	if !state.Detected {
		t.Error("state must be marked detected")
	}
}

func TestClassifyRotateView(t *testing.T) {
	state := Classify(handFixture(true, true, false, false, false))
	if state.Mode != ModeRotateView {
		t.Fatalf("expected rotate-view, got %v", state.Mode)
	}
	if state.FingersCount != 2 {
		t.Errorf("expected 2 fingers, got %d", state.FingersCount)
	}
}

func TestClassifyScaleUp(t *testing.T) {
	state := Classify(handFixture(true, true, true, true, true))
	if state.Mode != ModeScaleUp {
		t.Fatalf("expected scale-up, got %v", state.Mode)
	}
	assert.Equal(t, 5, state.FingersCount)
	assert.Equal(t, float32(3.0), state.ScaleTarget)
}

func TestClassifyScaleDownOnFist(t *testing.T) {
	state := Classify(handFixture(false, false, false, false, false))
	if state.Mode != ModeScaleDown {
		t.Fatalf("expected scale-down, got %v", state.Mode)
	}
	assert.Equal(t, 0, state.FingersCount)
	assert.Equal(t, float32(1.0), state.ScaleTarget)
}

func TestClassifyAmbiguousPoseIsIdle(t *testing.T) {
	// Four fingers up matches no gesture.
	state := Classify(handFixture(false, true, true, true, true))
	if state.Mode != ModeIdle {
		t.Fatalf("expected idle, got %v", state.Mode)
	}
	assert.Equal(t, 4, state.FingersCount)
}

func TestClassifyPriorityRotateZBeatsRotateView(t *testing.T) {
	// The rotate-z pose contains the rotate-view pose; priority must pick
	// rotate-z.
	state := Classify(handFixture(true, true, true, false, false))
	assert.Equal(t, ModeRotateZ, state.Mode)
}

func TestClassifyNoHandResets(t *testing.T) {
	state := Classify(nil)
	assert.Equal(t, ModeIdle, state.Mode)
	assert.False(t, state.Detected)
	assert.Zero(t, state.X)
	assert.Zero(t, state.Y)
}

func TestClassifyRotationZAngle(t *testing.T) {
	frame := handFixture(true, true, true, false, false)
	// Put the two tips on a known diagonal.
	frame[LandmarkThumbTip] = mgl32.Vec3{0.2, 0.2, 0}
	frame[LandmarkIndexTip] = mgl32.Vec3{0.4, 0.4, 0}

	state := Classify(frame)
	if state.Mode != ModeRotateZ {
		t.Fatalf("fixture no longer classifies as rotate-z: %v", state.Mode)
	}
	assert.InDelta(t, math32.Pi/4, state.RotationZ, 1e-5)
}

func TestClassifyHandCenter(t *testing.T) {
	frame := handFixture(true, true, false, false, false)
	frame[LandmarkMiddleMCP] = mgl32.Vec3{0.25, 0.75, 0}
	state := Classify(frame)
	assert.Equal(t, float32(0.25), state.X)
	assert.Equal(t, float32(0.75), state.Y)
}
