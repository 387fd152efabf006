package sparks

import "github.com/gogpu/gg"

// particle holds per-spark simulation state. Unexported; owned exclusively
// by the simulator's live pool from spawn until expiry or culling.
type particle struct {
	pos    gg.Point
	vel    gg.Vec2
	radius float64
	age    float64
	ttl    float64
	color  gg.RGBA
}

// fade returns the normalized age in [0, 1]: 0 at spawn, 1 at expiry.
// A non-positive lifetime reads as fully faded.
func (p *particle) fade() float64 {
	if p.ttl <= 0 {
		return 1
	}
	t := p.age / p.ttl
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
