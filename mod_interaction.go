package cloudmorph

// Interaction bundles the rig with the orbit collaborator it arbitrates
// against.
type Interaction struct {
	Rig   *InteractionRig
	Orbit OrbitControl
}

// InteractionModule wires the rig into the frame. A nil Orbit gets a
// default orbit camera so the module is usable stand-alone.
type InteractionModule struct {
	Orbit OrbitControl
}

func (m InteractionModule) Install(app *App, cmd *Commands) {
	orbit := m.Orbit
	if orbit == nil {
		orbit = NewOrbitCamera(40)
	}
	cmd.AddResources(&Interaction{
		Rig:   NewInteractionRig(),
		Orbit: orbit,
	})
	app.UseSystem(System(interactionSystem).InStage(PostUpdate))
}

// interactionSystem reads the latest gesture snapshot once per render
// tick and advances the rig.
func interactionSystem(t *Time, g *Gestures, ia *Interaction) {
	ia.Rig.Update(t.DtSeconds(), g.Snapshot(), g.Enabled(), ia.Orbit)
}
