package reach

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// RayTargetProvider casts a ray from a locus along a direction. When the ray
// misses and sphere casting is enabled, it retries with growing spheres and
// stops at the first that hits.
type RayTargetProvider struct {
	targetBase

	cfg    RayConfig
	accept TargetingMode

	origin    mgl64.Vec3
	direction mgl64.Vec3
	// castRadius is the sphere radius that produced the hit (0 for the ray).
	castRadius float64
}

// NewRayTargetProvider returns an indirect provider that only targets
// interactables accepting TargetingIndirect.
func NewRayTargetProvider(physics Physics, lookup colliderLookup, cfg RayConfig) (*RayTargetProvider, error) {
	return newRayTargetProvider(physics, lookup, cfg, TargetingIndirect)
}

// newMouseTargetProvider returns a ray provider that accepts every targeting
// mode, since a single pointer stands in for every strategy.
func newMouseTargetProvider(physics Physics, lookup colliderLookup, cfg RayConfig) (*RayTargetProvider, error) {
	return newRayTargetProvider(physics, lookup, cfg, TargetingAll)
}

func newRayTargetProvider(physics Physics, lookup colliderLookup, cfg RayConfig, accept TargetingMode) (*RayTargetProvider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.SphereCastRadii = slices.Clone(cfg.SphereCastRadii)
	cfg.SphereCastOffsets = slices.Clone(cfg.SphereCastOffsets)
	return &RayTargetProvider{
		targetBase: targetBase{physics: physics, lookup: lookup},
		cfg:        cfg,
		accept:     accept,
		direction:  mgl64.Vec3{0, 0, -1},
	}, nil
}

// SetRay sets the ray used by the next Update. A zero direction keeps the
// previous one.
func (p *RayTargetProvider) SetRay(origin, direction mgl64.Vec3) {
	p.origin = origin
	if direction.Len() > geomEpsilon {
		p.direction = direction.Normalize()
	}
}

// Direction returns the ray direction.
func (p *RayTargetProvider) Direction() mgl64.Vec3 {
	return p.direction
}

// MaxDistance returns the configured ray length.
func (p *RayTargetProvider) MaxDistance() float64 {
	return p.cfg.MaxDistance
}

// CastRadius returns the sphere radius that produced the current hit, or 0
// when the plain ray hit.
func (p *RayTargetProvider) CastRadius() float64 {
	return p.castRadius
}

// TargetingMode implements TargetProvider.
func (p *RayTargetProvider) TargetingMode() TargetingMode {
	return TargetingIndirect
}

// Update implements TargetProvider.
func (p *RayTargetProvider) Update() {
	p.start = p.origin
	far := p.origin.Add(p.direction.Mul(p.cfg.MaxDistance))
	p.castRadius = 0

	hit, ok := nearestNestedHit(p.lookup, p.physics.Raycast(p.origin, far), p.accept, TargetingIndirect)
	if !ok && p.cfg.SphereCastEnabled {
		for i, r := range p.cfg.SphereCastRadii {
			offset := p.cfg.SphereCastOffsets[i]
			castStart := p.origin.Add(p.direction.Mul(offset))
			hits := p.physics.SphereCast(r, castStart, far)
			for j := range hits {
				hits[j].Distance += offset
			}
			if hit, ok = nearestNestedHit(p.lookup, hits, p.accept, TargetingIndirect); ok {
				p.castRadius = r
				break
			}
		}
	}

	if !ok {
		p.clearHit()
		p.end = far
		return
	}
	p.setHit(hit)
	p.end = p.origin.Add(p.direction.Mul(hit.Hit.Distance))
}

// Reset implements TargetProvider.
func (p *RayTargetProvider) Reset() {
	p.clearHit()
	p.castRadius = 0
	p.end = p.start
}
