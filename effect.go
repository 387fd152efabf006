package sparks

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

// Effect is one live spark-effect instance bound to a font and a text
// string. It owns its overlay surface, particle pool, and clock; multiple
// effects coexist with fully isolated state.
//
// Geometry and text changes from any goroutine are edge-triggered rebuild
// requests: bursts collapse into a single rebuild applied at the next tick,
// and each rebuild replaces the mask, labels, and edge set as one atomic
// snapshot. A tick never observes a half-updated generation.
type Effect struct {
	cfg      Config
	source   *text.FontSource
	fontSize float64

	mu     sync.Mutex
	text   string
	geom   Geometry
	paused bool
	closed bool

	// dirty is the coalesced rebuild request flag.
	dirty atomic.Bool

	// closeCh is closed by Close to release any pending waits.
	closeCh chan struct{}

	field   atomic.Pointer[Field]
	surface atomic.Pointer[gg.Pixmap]

	sim   *Simulator
	comp  *Compositor
	sched Scheduler

	started  atomic.Bool
	lastTick time.Time
}

// New creates an effect for the given font source, size, and text.
//
// A provisional field is built immediately from the zero geometry; call
// SetGeometry once the host has laid the text out, and Start to run the
// internal tick loop (or drive Tick yourself).
func New(source *text.FontSource, fontSize float64, s string, opts ...Option) (*Effect, error) {
	if source == nil {
		return nil, ErrNilFontSource
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	e := &Effect{
		cfg:      cfg,
		source:   source,
		fontSize: fontSize,
		text:     s,
		paused:   cfg.Paused,
		closeCh:  make(chan struct{}),
		sim:      NewSimulator(cfg),
	}
	e.sched = cfg.scheduler
	if e.sched == nil {
		e.sched = newTickerScheduler(cfg.FrameRate)
	}

	// Provisional build: possibly misaligned until the host supplies real
	// geometry and fonts settle, self-correcting on the next rebuild.
	e.rebuild()
	return e, nil
}

// SetGeometry updates the content-box geometry of the host's text element
// and requests a rebuild. Safe to call from any goroutine; multiple calls
// before the next tick collapse into one rebuild.
func (e *Effect) SetGeometry(g Geometry) {
	e.mu.Lock()
	e.geom = g
	e.mu.Unlock()
	e.dirty.Store(true)
}

// SetText replaces the rendered text and requests a rebuild.
func (e *Effect) SetText(s string) {
	e.mu.Lock()
	e.text = s
	e.mu.Unlock()
	e.dirty.Store(true)
}

// SetPaused suspends or resumes the simulation. Pausing stops spawning,
// integration, and drawing only; rebuilds still run, so a paused effect
// keeps tracking resizes.
func (e *Effect) SetPaused(paused bool) {
	e.mu.Lock()
	e.paused = paused
	e.mu.Unlock()
}

// Paused reports whether the simulation is suspended.
func (e *Effect) Paused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.paused
}

// Start launches the effect's internal tick loop. If a fonts-ready channel
// was configured, the first authoritative rebuild waits for it (or for ctx
// cancellation, whichever comes first) so the mask is built against settled
// font metrics; the wait happens once and Close releases it. Cancelling ctx
// closes the effect.
//
// Start returns ErrClosed on a closed effect and nil on an already started
// one.
func (e *Effect) Start(ctx context.Context) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	e.mu.Unlock()

	if !e.started.CompareAndSwap(false, true) {
		return nil
	}

	go func() {
		if e.cfg.fontsReady != nil {
			select {
			case <-e.cfg.fontsReady:
			case <-ctx.Done():
				// Proceed with the metrics at hand rather than
				// keeping the effect dormant forever.
			case <-e.closeCh:
				return
			}
		}

		e.mu.Lock()
		if e.closed {
			e.mu.Unlock()
			return
		}
		e.dirty.Store(true)
		e.sched.Start(e.onFrame)
		e.mu.Unlock()
	}()

	if ctx.Done() != nil {
		go func() {
			select {
			case <-ctx.Done():
				_ = e.Close()
			case <-e.closeCh:
			}
		}()
	}
	return nil
}

// Close tears the effect down: the tick loop stops, any pending fonts-ready
// wait is released, and no callback fires after Close returns. Closing an
// already closed effect is a no-op.
func (e *Effect) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.mu.Unlock()

	close(e.closeCh)
	e.sched.Stop()
	return nil
}

// onFrame is the scheduler callback: it derives dt from wall-clock time and
// runs one tick. Step clamping bounds the first frame and stall recovery.
func (e *Effect) onFrame(now time.Time) {
	dt := maxTickSeconds
	if !e.lastTick.IsZero() {
		dt = now.Sub(e.lastTick).Seconds()
	}
	e.lastTick = now
	e.Tick(dt)
}

// Tick runs one simulation and draw step of dt seconds. The internal
// scheduler calls exactly this; hosts with their own frame loop may drive
// it directly instead of calling Start.
//
// Tick must not be called concurrently with itself.
func (e *Effect) Tick(dt float64) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	paused := e.paused
	e.mu.Unlock()

	// Rebuilds run even while paused.
	if e.dirty.CompareAndSwap(true, false) {
		e.rebuild()
	}
	if paused {
		return
	}

	f := e.field.Load()
	if f == nil || len(f.edges) == 0 {
		// Dormant: no edges to spawn from, nothing to draw.
		return
	}

	e.sim.Step(dt, f)
	e.comp.Frame(e.sim.Particles())
}

// rebuild rasterizes the current text and geometry into a fresh field and
// publishes it atomically. The overlay surface is replaced only when its
// pixel dimensions change.
func (e *Effect) rebuild() {
	e.mu.Lock()
	s, geom := e.text, e.geom
	e.mu.Unlock()

	f := BuildField(e.source, e.fontSize, s, geom, e.cfg.CanvasBleed)

	surf := e.surface.Load()
	if surf == nil || surf.Width() != f.mask.Width() || surf.Height() != f.mask.Height() {
		surf = gg.NewPixmap(f.mask.Width(), f.mask.Height())
		e.surface.Store(surf)
		e.comp = NewCompositor(surf)
	}
	e.field.Store(f)
}

// Surface returns the transparent overlay surface particles are drawn onto.
// It spans the text box plus CanvasBleed on every side, scaled by the
// clamped pixel ratio; the host presents it offset by -CanvasBleed logical
// pixels in both axes so it aligns with the live text, visually above the
// background and behind or above the glyphs as desired, and never
// intercepting input.
//
// The pointer changes when a rebuild alters the surface dimensions, so
// hosts should re-query it after geometry changes.
func (e *Effect) Surface() *gg.Pixmap {
	return e.surface.Load()
}

// Field returns the current rasterization snapshot (mask, labels, edges).
func (e *Effect) Field() *Field {
	return e.field.Load()
}

// ParticleCount returns the number of live particles after the most recent
// tick. Safe to call from any goroutine.
func (e *Effect) ParticleCount() int {
	return e.sim.Count()
}

// Config returns the effect's configuration snapshot.
func (e *Effect) Config() Config {
	return e.cfg
}
