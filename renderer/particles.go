package renderer

import (
	"math"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/arena/camera"
	"github.com/pthm-cable/arena/components"
)

// maxParticles caps live particles; bursts beyond it are dropped.
const maxParticles = 512

// particle is a short-lived effect dot in world coordinates.
type particle struct {
	x, y    float32
	vx, vy  float32
	life    float32 // seconds left
	maxLife float32
	size    float32
	color   components.Color
}

// ParticleRenderer renders effect bursts for splits, kills and virus hits.
type ParticleRenderer struct {
	particles []particle
	rng       *rand.Rand
}

// NewParticleRenderer creates a new particle renderer.
func NewParticleRenderer(seed int64) *ParticleRenderer {
	return &ParticleRenderer{rng: rand.New(rand.NewSource(seed))}
}

// Burst emits n particles from (x, y) flying outward at up to speed units per second.
func (r *ParticleRenderer) Burst(x, y float64, n int, speed, size float32, color components.Color) {
	for i := 0; i < n && len(r.particles) < maxParticles; i++ {
		angle := r.rng.Float64() * 2 * math.Pi
		v := speed * (0.4 + 0.6*r.rng.Float32())
		life := 0.3 + 0.3*r.rng.Float32()
		r.particles = append(r.particles, particle{
			x:       float32(x),
			y:       float32(y),
			vx:      float32(math.Cos(angle)) * v,
			vy:      float32(math.Sin(angle)) * v,
			life:    life,
			maxLife: life,
			size:    size,
			color:   color,
		})
	}
}

// Update ages particles by dt seconds and drops the expired ones.
func (r *ParticleRenderer) Update(dt float32) {
	live := r.particles[:0]
	for _, p := range r.particles {
		p.life -= dt
		if p.life <= 0 {
			continue
		}
		p.x += p.vx * dt
		p.y += p.vy * dt
		live = append(live, p)
	}
	r.particles = live
}

// Draw renders all particles.
func (r *ParticleRenderer) Draw(cam *camera.Camera) {
	for i := range r.particles {
		p := &r.particles[i]
		if !cam.IsVisible(p.x, p.y, p.size) {
			continue
		}

		// Fade out over the particle's life
		lifeRatio := p.life / p.maxLife
		color := toRL(p.color)
		color.A = uint8(lifeRatio * 220)

		size := p.size * lifeRatio * cam.Zoom
		if size < 0.5 {
			size = 0.5
		}
		sx, sy := cam.WorldToScreen(p.x, p.y)
		rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, size, color)
	}
}
