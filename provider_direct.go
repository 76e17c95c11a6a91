package reach

import "github.com/go-gl/mathgl/mgl64"

// DirectTargetProvider places a spherical probe midway between two tracked
// points. A new target must come within the enter radius; an engaged target
// is kept until it leaves the larger exit radius.
type DirectTargetProvider struct {
	targetBase

	enterRadius float64
	exitRadius  float64

	a, b mgl64.Vec3
}

// NewDirectTargetProvider returns a proximity provider. The enter radius
// must be strictly less than the exit radius.
func NewDirectTargetProvider(physics Physics, lookup colliderLookup, cfg DirectConfig) (*DirectTargetProvider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &DirectTargetProvider{
		targetBase:  targetBase{physics: physics, lookup: lookup},
		enterRadius: cfg.EnterRadius,
		exitRadius:  cfg.ExitRadius,
	}, nil
}

// SetPoints sets the two tracked points (e.g. thumb and index tips).
func (p *DirectTargetProvider) SetPoints(a, b mgl64.Vec3) {
	p.a = a
	p.b = b
}

// Center returns the probe position.
func (p *DirectTargetProvider) Center() mgl64.Vec3 {
	return p.a.Add(p.b).Mul(0.5)
}

// EnterRadius returns the engage radius.
func (p *DirectTargetProvider) EnterRadius() float64 { return p.enterRadius }

// ExitRadius returns the release radius.
func (p *DirectTargetProvider) ExitRadius() float64 { return p.exitRadius }

// TargetingMode implements TargetProvider.
func (p *DirectTargetProvider) TargetingMode() TargetingMode {
	return TargetingDirect
}

// Update implements TargetProvider.
func (p *DirectTargetProvider) Update() {
	center := p.Center()
	p.start = center

	if p.hasHit {
		current := p.hit.Interactable
		if current.targetable() && current.TargetingMode.Allows(TargetingDirect) {
			hits := p.physics.OverlapSphere(center, p.exitRadius)
			if h, ok := hitFor(p.lookup, hits, current); ok {
				p.setHit(makeHitInfo(current, h, TargetingDirect))
				p.end = h.Position
				return
			}
		}
		p.clearHit()
	}

	hits := p.physics.OverlapSphere(center, p.enterRadius)
	if hit, ok := nearestNestedHit(p.lookup, hits, TargetingDirect, TargetingDirect); ok {
		p.setHit(hit)
		p.end = hit.Hit.Position
		return
	}
	p.end = center
}

// Reset implements TargetProvider.
func (p *DirectTargetProvider) Reset() {
	p.clearHit()
	p.end = p.start
}
