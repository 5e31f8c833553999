package kinetik

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

const (
	defaultMaxDt             = 0.1
	defaultSlop              = 0.5
	defaultCorrectionPercent = 0.0
)

// World holds every simulated body plus the global solver settings.
// Bodies keep their insertion order; all iteration in the engine walks
// that order so runs with the same seed replay identically.
type World struct {
	bodies []*Body
	byID   map[uuid.UUID]*Body
	rings  []*Body // ring bodies in creation order, for chained activation

	Gravity mgl64.Vec2
	MaxDt   float64

	// Positional correction tuning. Zero percent means impulse-only
	// response; penetration depth is still reported on events.
	Slop              float64
	CorrectionPercent float64

	// ChainActivation makes a vanished ring activate the next dormant one.
	ChainActivation bool

	rng     *rand.Rand
	impacts *particlePool
}

func NewWorld(seed int64) *World {
	return &World{
		byID:              make(map[uuid.UUID]*Body),
		Gravity:           mgl64.Vec2{0, 1000},
		MaxDt:             defaultMaxDt,
		Slop:              defaultSlop,
		CorrectionPercent: defaultCorrectionPercent,
		rng:               rand.New(rand.NewSource(seed)),
		impacts:           newParticlePool(impactParticleCapacity),
	}
}

func (w *World) addBody(b *Body) {
	if _, exists := w.byID[b.ID]; exists {
		return
	}
	w.bodies = append(w.bodies, b)
	w.byID[b.ID] = b
	if _, ok := b.ring(); ok {
		w.rings = append(w.rings, b)
	}
}

func (w *World) removeBody(id uuid.UUID) {
	b, ok := w.byID[id]
	if !ok {
		return
	}
	delete(w.byID, id)
	w.bodies = removeBodyFrom(w.bodies, b)
	if _, isRing := b.ring(); isRing {
		w.rings = removeBodyFrom(w.rings, b)
	}
}

// removeBodyFrom deletes b preserving order; order is part of the
// determinism contract, so no swap-remove here.
func removeBodyFrom(s []*Body, b *Body) []*Body {
	for i, x := range s {
		if x == b {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}

// Bodies returns the live bodies in insertion order. The slice is shared;
// callers must not mutate it.
func (w *World) Bodies() []*Body { return w.bodies }

func (w *World) Body(id uuid.UUID) (*Body, bool) {
	b, ok := w.byID[id]
	return b, ok
}

// Rings returns the ring bodies in creation order.
func (w *World) Rings() []*Body { return w.rings }

// ImpactParticles returns a render snapshot of the shared impact pool.
func (w *World) ImpactParticles() []ParticleInstance { return w.impacts.instances() }

// Reseed replaces the world's random stream. Meant for setup, not mid-run.
func (w *World) Reseed(seed int64) {
	w.rng = rand.New(rand.NewSource(seed))
}

// Reset is a full-state replace: it drops every body and particle and
// reseeds the random stream. The caller rebuilds the scene afterwards.
func (w *World) Reset(seed int64) {
	w.bodies = nil
	w.rings = nil
	w.byID = make(map[uuid.UUID]*Body)
	w.impacts = newParticlePool(impactParticleCapacity)
	w.Reseed(seed)
}

// WorldModule installs the world and the event buffer it feeds.
type WorldModule struct {
	Seed int64
}

func (mod WorldModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(NewWorld(mod.Seed), &EventBuffer{})
}
