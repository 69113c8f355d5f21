package cloudmorph

// Frame is what the rendering collaborator receives each tick. Positions
// and Colors alias the live buffers and are mutated in place next tick;
// the consumer must treat them as read-only for the frame.
type Frame struct {
	Positions ParticleBuffer
	Colors    ColorBuffer

	ParticleSize float32

	// Transform of the whole particle group.
	Scale float32
	Roll  float32
	Spin  float32
}

// FrameSink is implemented by the scene/rendering collaborator.
type FrameSink interface {
	SubmitFrame(frame Frame)
}

// NopSink discards frames; handy for tests and headless runs.
type NopSink struct{}

func (NopSink) SubmitFrame(Frame) {}

type frameSinkResource struct {
	sink FrameSink
}

// FrameSinkModule pushes the live buffers and the group transform to the
// renderer during the Render stage.
type FrameSinkModule struct {
	Sink FrameSink
}

func (m FrameSinkModule) Install(app *App, cmd *Commands) {
	sink := m.Sink
	if sink == nil {
		sink = NopSink{}
	}
	cmd.AddResources(&frameSinkResource{sink: sink})
	app.UseSystem(System(frameSinkSystem).InStage(Render))
}

func frameSinkSystem(cfg *ParticleConfig, cloud *ParticleCloud, ia *Interaction, res *frameSinkResource) {
	res.sink.SubmitFrame(Frame{
		Positions:    cloud.Engine.Live(),
		Colors:       cloud.Colors,
		ParticleSize: cfg.Size,
		Scale:        ia.Rig.CurrentScale,
		Roll:         ia.Rig.CurrentRoll,
		Spin:         cloud.Engine.Spin,
	})
}
