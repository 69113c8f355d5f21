package cloudmorph

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// HandDetector is the narrow capability interface over the camera plus
// landmark model. Open may be slow (device acquisition, model load) and
// is always called off the render tick. Detect returns nil when no hand
// is visible, which is a normal outcome, not an error.
type HandDetector interface {
	Open(ctx context.Context) error
	Detect() (*GestureFrame, error)
	Close() error
}

type DetectorStatus int32

const (
	DetectorOff DetectorStatus = iota
	DetectorStarting
	DetectorReady
	DetectorFailed
)

func (s DetectorStatus) String() string {
	switch s {
	case DetectorOff:
		return "off"
	case DetectorStarting:
		return "starting"
	case DetectorReady:
		return "ready"
	case DetectorFailed:
		return "failed"
	}
	return "unknown"
}

const defaultPollInterval = 33 * time.Millisecond // ~30 Hz

// Gestures owns the polling goroutine and the shared gesture snapshot.
// The poller is the only writer, the interaction system the only reader;
// the hand-off is an atomically swapped pointer so the reader can never
// observe a half-written record.
type Gestures struct {
	detector HandDetector
	interval time.Duration
	logger   Logger

	snapshot atomic.Pointer[GestureState]
	status   atomic.Int32
	enabled  atomic.Bool

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewGestures(detector HandDetector, interval time.Duration, logger Logger) *Gestures {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if logger == nil {
		logger = NewNopLogger()
	}
	g := &Gestures{
		detector: detector,
		interval: interval,
		logger:   logger,
	}
	idle := IdleState()
	g.snapshot.Store(&idle)
	return g
}

func (g *Gestures) Enabled() bool { return g.enabled.Load() }

func (g *Gestures) Status() DetectorStatus {
	return DetectorStatus(g.status.Load())
}

// Snapshot returns the latest classifier output. Called once per render
// tick by the interaction system.
func (g *Gestures) Snapshot() GestureState {
	return *g.snapshot.Load()
}

// SetEnabled starts or stops gesture polling. Enabling never blocks:
// detector startup happens on the poll goroutine and reports through
// Status. Disabling is deterministic: it joins the poll goroutine, which
// closes the detector on its way out.
func (g *Gestures) SetEnabled(enabled bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if enabled == g.enabled.Load() {
		return
	}

	if !enabled {
		g.cancel()
		<-g.done
		g.cancel = nil
		g.done = nil
		g.enabled.Store(false)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	g.cancel = cancel
	g.done = make(chan struct{})
	g.enabled.Store(true)
	g.status.Store(int32(DetectorStarting))
	go g.poll(ctx, g.done)
}

func (g *Gestures) poll(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer func() {
		if err := g.detector.Close(); err != nil {
			g.logger.Warnf("detector close: %v", err)
		}
		g.status.Store(int32(DetectorOff))
		idle := IdleState()
		g.snapshot.Store(&idle)
	}()

	if err := g.detector.Open(ctx); err != nil {
		// The render loop keeps going regardless; gestures just stay
		// inert and the UI shows the status.
		g.logger.Errorf("detector open: %v", err)
		g.status.Store(int32(DetectorFailed))
		<-ctx.Done()
		return
	}
	g.status.Store(int32(DetectorReady))
	g.logger.Infof("gesture detector ready, polling every %v", g.interval)

	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			frame, err := g.detector.Detect()
			if err != nil {
				// Dropped frame; no retry, the next tick samples again.
				g.logger.Debugf("detector frame dropped: %v", err)
				continue
			}
			state := Classify(frame)
			g.snapshot.Store(&state)
		}
	}
}

// GestureModule installs the Gestures resource. Enabled controls whether
// polling starts immediately; it can also be toggled later through the
// resource.
type GestureModule struct {
	Detector HandDetector
	Interval time.Duration
	Enabled  bool
}

func (m GestureModule) Install(app *App, cmd *Commands) {
	g := NewGestures(m.Detector, m.Interval, app.Logger())
	cmd.AddResources(g)
	if m.Enabled {
		g.SetEnabled(true)
	}
}
