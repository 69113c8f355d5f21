package cloudmorph

const (
	// Smoothing rate in 1/seconds; the per-frame coefficient is dt*rate,
	// which keeps the feel identical across frame rates. Note this is a
	// different discipline than the morph engine's fixed-step blend.
	rigLerpRate = 5.0

	// Normalized hand-position delta to radians of orbit.
	rigOrbitSensitivity = 4.0

	// The thumb-to-index angle reads roughly -pi/2 for an upright hand;
	// offset it so a neutral pose means zero roll.
	rigRollOffset = 1.5707963
)

// InteractionRig turns the latest gesture snapshot into smoothed scale
// and roll values and relative orbit adjustments. Owned by the render
// tick; nothing else reads its state.
type InteractionRig struct {
	CurrentScale float32
	CurrentRoll  float32

	hasLastHand bool
	lastHandX   float32
	lastHandY   float32
}

func NewInteractionRig() *InteractionRig {
	return &InteractionRig{CurrentScale: 1.0}
}

func approach(current, target, coeff float32) float32 {
	if coeff > 1 {
		coeff = 1
	}
	return current + (target-current)*coeff
}

// Update runs once per render tick. dt is the frame delta in seconds.
// Exactly one channel is driven per mode; the others decay toward rest.
func (r *InteractionRig) Update(dt float32, gs GestureState, gesturesEnabled bool, orbit OrbitControl) {
	// The orbit widget's own input is locked out while a gesture is in
	// charge, re-enabled the moment it is not.
	orbit.SetEnabled(!gesturesEnabled || gs.Mode == ModeIdle)

	lerp := dt * rigLerpRate

	// Scale channel. Rotation gestures pin scale to 1 so a sloppy pose
	// cannot drift the zoom mid-rotate.
	switch gs.Mode {
	case ModeRotateView, ModeRotateZ:
		r.CurrentScale = approach(r.CurrentScale, 1.0, lerp)
	case ModeScaleUp, ModeScaleDown:
		r.CurrentScale = approach(r.CurrentScale, gs.ScaleTarget, lerp)
	case ModeIdle:
		r.CurrentScale = approach(r.CurrentScale, 1.0, lerp*0.5)
	}

	// Rotate-view channel: frame-to-frame hand deltas become relative
	// azimuth/polar adjustments. The remembered position is dropped when
	// the mode is left so re-engaging starts delta-free.
	if gesturesEnabled && gs.Mode == ModeRotateView {
		if r.hasLastHand {
			dx := gs.X - r.lastHandX
			dy := gs.Y - r.lastHandY
			orbit.Rotate(-dx*rigOrbitSensitivity, -dy*rigOrbitSensitivity)
		}
		r.hasLastHand = true
		r.lastHandX = gs.X
		r.lastHandY = gs.Y
	} else {
		r.hasLastHand = false
	}

	// Roll channel.
	if gs.Mode == ModeRotateZ {
		r.CurrentRoll = approach(r.CurrentRoll, gs.RotationZ+rigRollOffset, lerp)
	} else {
		r.CurrentRoll = approach(r.CurrentRoll, 0, lerp*0.5)
	}
}
