package sparks

import "math"

// Config is the immutable per-effect configuration snapshot. A zero Config
// is not useful; build one through New and the With* options.
//
// Out-of-range values (negative lifetimes, inverted ranges) are not
// validated: they produce degenerate but non-crashing behavior and are the
// caller's contract to avoid.
type Config struct {
	// EmissionRate is the average number of particles spawned per second.
	EmissionRate float64

	// Speed is the base launch speed in pixels per second. Each particle
	// jitters it by a uniform factor in [0.8, 1.4).
	Speed float64

	// Spread is the total angular spread around the edge normal, in radians.
	Spread float64

	// Gravity is the constant downward acceleration in pixels per second².
	Gravity float64

	// MaxParticles caps the live pool. Oldest particles are evicted first
	// when new spawns would exceed it.
	MaxParticles int

	// SizeMin and SizeMax bound the particle radius in pixels.
	SizeMin, SizeMax float64

	// TTLMin and TTLMax bound the particle lifetime in seconds.
	TTLMin, TTLMax float64

	// Colors is the palette as hex strings. Empty means a random fully
	// saturated hue per particle.
	Colors []string

	// Paused starts the effect with simulation and drawing suspended.
	// Geometry rebuilds still run while paused.
	Paused bool

	// CanvasBleed is the margin in logical (unscaled) pixels around the
	// text box reserved for particles to travel into before leaving the
	// surface.
	CanvasBleed float64

	// AllowInside lets particles traverse glyph ink instead of being culled
	// on contact. Spawning is unaffected: particles only ever start at edges.
	AllowInside bool

	// FrameRate is the tick rate of the default scheduler in Hz.
	FrameRate float64

	// Seed seeds the effect's random source. Zero picks a random seed.
	Seed uint64

	scheduler  Scheduler
	fontsReady <-chan struct{}
}

// defaultConfig returns the configuration used when no options are given.
func defaultConfig() Config {
	return Config{
		EmissionRate: 150,
		Speed:        100,
		Spread:       math.Pi / 6,
		Gravity:      100,
		MaxParticles: 1200,
		SizeMin:      0.5,
		SizeMax:      1.2,
		TTLMin:       0.5,
		TTLMax:       1.2,
		CanvasBleed:  60,
		FrameRate:    60,
	}
}

// Option configures an Effect during creation.
// Use functional options to customize Effect behavior.
//
// Example:
//
//	effect, err := sparks.New(source, 96, "Hello",
//	    sparks.WithEmissionRate(300),
//	    sparks.WithGravity(0),
//	)
type Option func(*Config)

// WithEmissionRate sets the average spawn rate in particles per second.
// Default is 150. Zero disables spawning entirely.
func WithEmissionRate(rate float64) Option {
	return func(c *Config) { c.EmissionRate = rate }
}

// WithSpeed sets the base launch speed in pixels per second. Default is 100.
func WithSpeed(speed float64) Option {
	return func(c *Config) { c.Speed = speed }
}

// WithSpread sets the total angular spread around the edge normal in
// radians. Default is π/6.
func WithSpread(spread float64) Option {
	return func(c *Config) { c.Spread = spread }
}

// WithGravity sets the downward acceleration in pixels per second².
// Default is 100.
func WithGravity(gravity float64) Option {
	return func(c *Config) { c.Gravity = gravity }
}

// WithMaxParticles caps the live particle pool. Default is 1200.
func WithMaxParticles(n int) Option {
	return func(c *Config) { c.MaxParticles = n }
}

// WithParticleSize sets the particle radius range in pixels.
// Default is 0.5 to 1.2.
func WithParticleSize(minSize, maxSize float64) Option {
	return func(c *Config) {
		c.SizeMin = minSize
		c.SizeMax = maxSize
	}
}

// WithTTL sets the particle lifetime range in seconds.
// Default is 0.5 to 1.2.
func WithTTL(minTTL, maxTTL float64) Option {
	return func(c *Config) {
		c.TTLMin = minTTL
		c.TTLMax = maxTTL
	}
}

// WithColors sets the palette as hex color strings ("#rrggbb" or "#rgb").
// Without a palette each particle gets a random fully saturated hue.
func WithColors(colors ...string) Option {
	return func(c *Config) { c.Colors = colors }
}

// WithPaused starts the effect paused. Default is running.
func WithPaused(paused bool) Option {
	return func(c *Config) { c.Paused = paused }
}

// WithCanvasBleed sets the margin around the text box, in logical pixels,
// that particles can travel into before leaving the surface. Default is 60.
func WithCanvasBleed(bleed float64) Option {
	return func(c *Config) { c.CanvasBleed = bleed }
}

// WithAllowInside lets particles cross glyph ink instead of being culled
// there. Default is false: sparks stay strictly outside the letterforms.
func WithAllowInside(allow bool) Option {
	return func(c *Config) { c.AllowInside = allow }
}

// WithFrameRate sets the tick rate of the default scheduler in Hz.
// Default is 60. Ignored when a custom scheduler is supplied.
func WithFrameRate(hz float64) Option {
	return func(c *Config) { c.FrameRate = hz }
}

// WithRandSeed seeds the effect's random source for deterministic replay.
// Two effects with the same seed, configuration, and inputs produce
// identical frames.
func WithRandSeed(seed uint64) Option {
	return func(c *Config) { c.Seed = seed }
}

// WithScheduler sets a custom frame scheduler for the effect.
// Use this to drive ticks from a real display callback (a gogpu window) or
// from a test clock.
//
// Example:
//
//	effect, _ := sparks.New(source, 96, "Hi", sparks.WithScheduler(vsync))
func WithScheduler(s Scheduler) Option {
	return func(c *Config) { c.scheduler = s }
}

// WithFontsReady defers the first authoritative mask rebuild until the
// channel is closed, for hosts that swap fonts in asynchronously. The
// provisional mask built at creation self-corrects on that rebuild. A nil
// channel (the default) means fonts are already settled.
func WithFontsReady(ready <-chan struct{}) Option {
	return func(c *Config) { c.fontsReady = ready }
}
