package kinetik

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	impactParticleCapacity = 4096
	ringParticleCapacity   = 2048
	impactBurstCount       = 15
)

// ParticleInstance is a render snapshot of a single live particle.
// Alpha already encodes the age-based fade.
type ParticleInstance struct {
	Pos   mgl64.Vec2
	Size  float64
	Color color.RGBA
}

// particlePool is a fixed-capacity SoA pool. Dead particles are removed
// with swap-remove, so iteration order is not stable across updates but
// the live set always occupies [0, alive).
type particlePool struct {
	pos   []mgl64.Vec2
	vel   []mgl64.Vec2
	age   []float64
	life  []float64
	size  []float64
	color []color.RGBA

	alive int
}

func newParticlePool(capacity int) *particlePool {
	return &particlePool{
		pos:   make([]mgl64.Vec2, capacity),
		vel:   make([]mgl64.Vec2, capacity),
		age:   make([]float64, capacity),
		life:  make([]float64, capacity),
		size:  make([]float64, capacity),
		color: make([]color.RGBA, capacity),
	}
}

func (p *particlePool) capacity() int { return len(p.pos) }

func (p *particlePool) spawn(pos, vel mgl64.Vec2, life, size float64, c color.RGBA) {
	if p.alive >= p.capacity() {
		return
	}
	i := p.alive
	p.pos[i] = pos
	p.vel[i] = vel
	p.age[i] = 0
	p.life[i] = life
	p.size[i] = size
	p.color[i] = c
	p.alive++
}

func (p *particlePool) killAt(i int) {
	last := p.alive - 1
	p.pos[i] = p.pos[last]
	p.vel[i] = p.vel[last]
	p.age[i] = p.age[last]
	p.life[i] = p.life[last]
	p.size[i] = p.size[last]
	p.color[i] = p.color[last]
	p.alive = last
}

// update ages and moves every live particle, retiring expired ones.
func (p *particlePool) update(dt float64) {
	for i := 0; i < p.alive; {
		p.age[i] += dt
		if p.age[i] >= p.life[i] {
			p.killAt(i)
			continue
		}
		p.pos[i] = p.pos[i].Add(p.vel[i].Mul(dt))
		i++
	}
}

// instances materializes the live particles with age-faded alpha.
func (p *particlePool) instances() []ParticleInstance {
	if p.alive == 0 {
		return nil
	}
	out := make([]ParticleInstance, p.alive)
	for i := 0; i < p.alive; i++ {
		fade := 1 - p.age[i]/p.life[i]
		c := p.color[i]
		c.A = uint8(fade * float64(c.A))
		out[i] = ParticleInstance{Pos: p.pos[i], Size: p.size[i], Color: c}
	}
	return out
}

func randRange(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// brighten lifts a color toward white for spark-like impact particles.
func brighten(c color.RGBA, amount float64) color.RGBA {
	lift := func(v uint8) uint8 {
		f := float64(v) + (255-float64(v))*amount
		return uint8(math.Min(f, 255))
	}
	return color.RGBA{R: lift(c.R), G: lift(c.G), B: lift(c.B), A: c.A}
}

// spawnImpactBurst emits a cone of sparks around the collision normal.
// The cone spans a half angle of 90 degrees and the speed scales with
// the impact speed, so hard hits throw faster, further sparks.
func (p *particlePool) spawnImpactBurst(rng *rand.Rand, contact, normal mgl64.Vec2, impactSpeed float64, base color.RGBA) {
	baseAngle := math.Atan2(normal.Y(), normal.X())
	baseSpeed := impactSpeed * 0.3
	c := brighten(base, 0.5)
	for i := 0; i < impactBurstCount; i++ {
		ang := baseAngle + randRange(rng, -math.Pi/2, math.Pi/2)
		speed := baseSpeed * randRange(rng, 0.5, 2.0)
		vel := mgl64.Vec2{math.Cos(ang), math.Sin(ang)}.Mul(speed)
		p.spawn(contact, vel, randRange(rng, 0.3, 0.7), randRange(rng, 2, 6), c)
	}
}

// spawnRingFragment emits a single debris particle from a random point
// inside a disappearing ring's annulus, flying radially outward.
func (p *particlePool) spawnRingFragment(rng *rand.Rand, center mgl64.Vec2, inner, outer float64, base color.RGBA) {
	ang := randRange(rng, 0, 2*math.Pi)
	radius := randRange(rng, inner, outer)
	dir := mgl64.Vec2{math.Cos(ang), math.Sin(ang)}
	pos := center.Add(dir.Mul(radius))
	vel := dir.Mul(randRange(rng, 100, 300))
	p.spawn(pos, vel, randRange(rng, 0.5, 1.5), randRange(rng, 3, 8), base)
}

// ParticleModule advances all particle pools at the end of each step.
type ParticleModule struct {
}

func (mod ParticleModule) Install(app *App, cmd *Commands) {
	cmd.UseSystem(System(particleSystem).InStage(Finale))
}

func particleSystem(w *World, tm *Time) {
	w.impacts.update(tm.Dt)
	for _, b := range w.bodies {
		if ring, ok := b.ring(); ok {
			ring.pool.update(tm.Dt)
		}
	}
}
