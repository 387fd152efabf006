package sparks

import (
	"math"
	"math/rand/v2"
	"sync/atomic"

	"github.com/gogpu/gg"
)

// maxTickSeconds clamps a single integration step. Tab-resume style stalls
// deliver one bounded step instead of a catapult frame.
const maxTickSeconds = 0.05

// Spawn offset range along the launch direction, in pixels. Starting a hair
// off the edge keeps fresh particles from being culled by the very ink cell
// they spawned from.
const (
	spawnOffsetMin = 1.2
	spawnOffsetMax = 3.0
)

// Simulator owns the live particle pool and advances it against an edge
// field: probabilistic spawning from edge points, gravity integration, and
// removal by lifetime, grid exit, or ink contact.
//
// A Simulator is single-clocked: Step must not be called concurrently.
type Simulator struct {
	cfg  Config
	pal  palette
	rng  *rand.Rand
	pool []particle

	// spawnCarry accumulates the fractional particle left over each tick,
	// so the long-run spawn rate converges to EmissionRate regardless of
	// frame-rate jitter.
	spawnCarry float64

	// liveCount mirrors len(pool) for readers on other goroutines.
	liveCount atomic.Int64

	// spawnTotal counts every particle ever launched, for rate monitoring.
	spawnTotal atomic.Int64
}

// NewSimulator creates a simulator for the given configuration.
// A zero seed in the configuration picks a random one.
func NewSimulator(cfg Config) *Simulator {
	seed := cfg.Seed
	for seed == 0 {
		seed = rand.Uint64()
	}
	return &Simulator{
		cfg:  cfg,
		pal:  newPalette(cfg.Colors),
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		pool: make([]particle, 0, max(cfg.MaxParticles, 0)),
	}
}

// Step advances the simulation by dt seconds against the given field.
// With a nil field or an empty edge set, spawning is skipped and existing
// particles keep integrating; the effect is simply dormant until a rebuild
// populates edges.
func (s *Simulator) Step(dt float64, f *Field) {
	if dt <= 0 {
		return
	}
	if dt > maxTickSeconds {
		dt = maxTickSeconds
	}

	s.enforceBudget()
	if f != nil && len(f.edges) > 0 {
		s.spawn(dt, f.edges)
	}
	s.integrate(dt, f)
	s.liveCount.Store(int64(len(s.pool)))
}

// Count returns the number of live particles after the most recent step.
// Safe to call from any goroutine.
func (s *Simulator) Count() int {
	return int(s.liveCount.Load())
}

// TotalSpawned returns the number of particles launched since creation.
// Safe to call from any goroutine.
func (s *Simulator) TotalSpawned() int64 {
	return s.spawnTotal.Load()
}

// Particles returns the live pool. Owned by the simulator; read-only for
// the caller and valid only until the next Step.
func (s *Simulator) Particles() []particle {
	return s.pool
}

// Reset discards all live particles and accumulated spawn credit.
func (s *Simulator) Reset() {
	s.pool = s.pool[:0]
	s.spawnCarry = 0
	s.liveCount.Store(0)
}

// enforceBudget trims the pool down to the configured ceiling,
// oldest-inserted first.
func (s *Simulator) enforceBudget() {
	if over := len(s.pool) - s.cfg.MaxParticles; over > 0 {
		s.evictOldest(over)
	}
}

// evictOldest removes the n oldest-inserted particles from the front of the
// pool, compacting in place so the backing array is reused.
func (s *Simulator) evictOldest(n int) {
	if n > len(s.pool) {
		n = len(s.pool)
	}
	copy(s.pool, s.pool[n:])
	s.pool = s.pool[:len(s.pool)-n]
}

// spawn converts elapsed time into whole spawns via the fractional carry and
// launches them from uniformly random edge points.
func (s *Simulator) spawn(dt float64, edges []EdgePoint) {
	credit := s.cfg.EmissionRate*dt + s.spawnCarry
	want := int(math.Floor(credit))
	s.spawnCarry = credit - float64(want)
	if want <= 0 {
		return
	}
	if want > s.cfg.MaxParticles {
		want = s.cfg.MaxParticles
	}
	// Make room before spawning: the newest spark wins over the oldest.
	if over := len(s.pool) + want - s.cfg.MaxParticles; over > 0 {
		s.evictOldest(over)
	}

	for i := 0; i < want; i++ {
		s.pool = append(s.pool, s.launch(edges[s.rng.IntN(len(edges))]))
	}
	s.spawnTotal.Add(int64(want))
}

// launch creates one particle at the given edge point.
func (s *Simulator) launch(ep EdgePoint) particle {
	angle := ep.Normal.Atan2() + (s.rng.Float64()-0.5)*s.cfg.Spread
	dir := gg.V2(math.Cos(angle), math.Sin(angle))
	speed := s.cfg.Speed * s.uniform(0.8, 1.4)
	offset := s.uniform(spawnOffsetMin, spawnOffsetMax)

	return particle{
		pos:    ep.Pos.Add(dir.Mul(offset).ToPoint()),
		vel:    dir.Mul(speed),
		radius: s.uniform(s.cfg.SizeMin, s.cfg.SizeMax),
		ttl:    s.uniform(s.cfg.TTLMin, s.cfg.TTLMax),
		color:  s.pal.pick(s.rng),
	}
}

// integrate advances every live particle and compacts away the dead:
// expired by age, walked off the grid, or landed on ink (unless the
// configuration allows traversing it).
func (s *Simulator) integrate(dt float64, f *Field) {
	alive := s.pool[:0]
	for i := range s.pool {
		p := s.pool[i]
		p.vel.Y += s.cfg.Gravity * dt
		p.pos.X += p.vel.X * dt
		p.pos.Y += p.vel.Y * dt
		p.age += dt

		if p.age >= p.ttl {
			continue
		}
		if f != nil {
			x := int(math.Round(p.pos.X))
			y := int(math.Round(p.pos.Y))
			if !f.mask.InBounds(x, y) {
				continue
			}
			if !s.cfg.AllowInside && f.mask.fill[y*f.mask.width+x] {
				continue
			}
		}
		alive = append(alive, p)
	}
	s.pool = alive
}

// uniform returns a uniformly distributed value in [lo, hi).
func (s *Simulator) uniform(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}
