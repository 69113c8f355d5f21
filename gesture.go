package cloudmorph

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Hand landmark indices, per the usual 21-point hand topology. Normalized
// [0,1] image coordinates, wrist at index 0.
const (
	LandmarkWrist     = 0
	LandmarkThumbMCP  = 2
	LandmarkThumbTip  = 4
	LandmarkIndexPIP  = 6
	LandmarkIndexTip  = 8
	LandmarkMiddleMCP = 9
	LandmarkMiddlePIP = 10
	LandmarkMiddleTip = 12
	LandmarkRingPIP   = 14
	LandmarkRingTip   = 16
	LandmarkPinkyPIP  = 18
	LandmarkPinkyTip  = 20
)

// GestureFrame is one detector sample: all 21 landmarks, index-addressed.
type GestureFrame [21]mgl32.Vec3

// GestureMode is the discrete interaction state. Closed set; consumers
// switch over it exhaustively.
type GestureMode int

const (
	ModeIdle GestureMode = iota
	ModeRotateView
	ModeRotateZ
	ModeScaleUp
	ModeScaleDown
)

func (m GestureMode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeRotateView:
		return "rotate-view"
	case ModeRotateZ:
		return "rotate-z"
	case ModeScaleUp:
		return "scale-up"
	case ModeScaleDown:
		return "scale-down"
	}
	return "unknown"
}

// GestureState is the classifier's per-tick output snapshot.
type GestureState struct {
	Mode         GestureMode
	Detected     bool
	X, Y         float32 // hand center, normalized image coords
	RotationZ    float32 // radians, meaningful only in ModeRotateZ
	ScaleTarget  float32
	FingersCount int
}

// IdleState is what the shared state resets to when no hand is visible.
// The last known position is deliberately discarded.
func IdleState() GestureState {
	return GestureState{Mode: ModeIdle, ScaleTarget: 1.0}
}

// fingerExtended reports whether a finger is stretched out: its tip is
// farther from the wrist than its proximal joint is.
func fingerExtended(frame *GestureFrame, tip, joint int) bool {
	wrist := frame[LandmarkWrist]
	return frame[tip].Sub(wrist).Len() > frame[joint].Sub(wrist).Len()
}

// Classify turns one landmark frame into a gesture state. Pure; the
// polling module owns timing and the shared snapshot.
func Classify(frame *GestureFrame) GestureState {
	if frame == nil {
		return IdleState()
	}

	thumb := fingerExtended(frame, LandmarkThumbTip, LandmarkThumbMCP)
	index := fingerExtended(frame, LandmarkIndexTip, LandmarkIndexPIP)
	middle := fingerExtended(frame, LandmarkMiddleTip, LandmarkMiddlePIP)
	ring := fingerExtended(frame, LandmarkRingTip, LandmarkRingPIP)
	pinky := fingerExtended(frame, LandmarkPinkyTip, LandmarkPinkyPIP)

	count := 0
	for _, up := range []bool{thumb, index, middle, ring, pinky} {
		if up {
			count++
		}
	}

	center := frame[LandmarkMiddleMCP]
	state := GestureState{
		Detected:     true,
		X:            center.X(),
		Y:            center.Y(),
		ScaleTarget:  1.0,
		FingersCount: count,
	}

	// Priority order matters: the three-finger pose contains the
	// two-finger pose, so it must be checked first.
	switch {
	case thumb && index && middle && !ring && !pinky:
		state.Mode = ModeRotateZ
		tip := frame[LandmarkIndexTip]
		base := frame[LandmarkThumbTip]
		state.RotationZ = math32.Atan2(tip.Y()-base.Y(), tip.X()-base.X())
	case thumb && index && !middle && !ring && !pinky:
		state.Mode = ModeRotateView
	case count == 5:
		state.Mode = ModeScaleUp
		state.ScaleTarget = 3.0
	case count == 0:
		state.Mode = ModeScaleDown
		state.ScaleTarget = 1.0
	default:
		state.Mode = ModeIdle
	}

	return state
}
