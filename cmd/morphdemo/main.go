// morphdemo runs the particle cloud headless for a few seconds: it cycles
// through the shapes, feeds the classifier scripted hand poses through a
// stub detector, and prints what a renderer would receive.
package main

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/cloudmorph/cloudmorph"
)

// scriptedDetector replays a fixed pose so the demo exercises the whole
// gesture path without a camera.
type scriptedDetector struct {
	frames atomic.Int64
}

func (d *scriptedDetector) Open(ctx context.Context) error { return nil }
func (d *scriptedDetector) Close() error                   { return nil }

func (d *scriptedDetector) Detect() (*cloudmorph.GestureFrame, error) {
	n := d.frames.Add(1)
	if n%4 == 0 {
		// Hand out of frame every fourth sample.
		return nil, nil
	}
	// Open palm: every tip farther from the wrist than its joint.
	var frame cloudmorph.GestureFrame
	frame[cloudmorph.LandmarkWrist] = mgl32.Vec3{0.5, 0.9, 0}
	for finger := 0; finger < 5; finger++ {
		x := 0.3 + 0.1*float32(finger)
		frame[finger*4+2] = mgl32.Vec3{x, 0.6, 0} // proximal joint
		frame[finger*4+4] = mgl32.Vec3{x, 0.3, 0} // tip
	}
	return &frame, nil
}

type printSink struct {
	every  int
	frames int
}

func (s *printSink) SubmitFrame(f cloudmorph.Frame) {
	s.frames++
	if s.frames%s.every != 0 {
		return
	}
	fmt.Printf("frame %5d  particles=%d scale=%.2f roll=%.2f spin=%.2f first=(%.1f %.1f %.1f)\n",
		s.frames, f.Positions.Count(), f.Scale, f.Roll, f.Spin,
		f.Positions[0], f.Positions[1], f.Positions[2])
}

func main() {
	detector := &scriptedDetector{}
	sink := &printSink{every: 60}

	app := cloudmorph.NewApp()
	app.UseModules(
		cloudmorph.LoggingModule{Prefix: "morphdemo"},
		cloudmorph.TimeModule{},
		cloudmorph.CloudModule{Count: cloudmorph.DefaultParticleCount},
		cloudmorph.GestureModule{Detector: detector, Enabled: true},
		cloudmorph.InteractionModule{},
		cloudmorph.FrameSinkModule{Sink: sink},
	)

	cfg := cloudmorph.Resource[cloudmorph.ParticleConfig](app)
	gestures := cloudmorph.Resource[cloudmorph.Gestures](app)

	shapes := []cloudmorph.Shape{
		cloudmorph.ShapeSphere,
		cloudmorph.ShapeHeart,
		cloudmorph.ShapeFlower,
		cloudmorph.ShapeTree,
		cloudmorph.ShapeSnowman,
		cloudmorph.ShapeGalaxy,
	}

	frame := 0
	deadline := time.Now().Add(6 * time.Second)
	for time.Now().Before(deadline) {
		if frame%120 == 0 {
			cfg.Shape = shapes[(frame/120)%len(shapes)]
			fmt.Printf("-- shape: %s\n", cfg.Shape)
		}
		app.Step()
		frame++
		time.Sleep(16 * time.Millisecond)
	}

	gestures.SetEnabled(false)
	fmt.Printf("done after %d frames, detector %s\n", frame, gestures.Status())
}
