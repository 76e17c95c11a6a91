package reach

import "github.com/go-gl/mathgl/mgl64"

// PokeTargetProvider sweeps a sphere from a finger's mid joint to its tip.
// A new target is only accepted when the recent tip travel points at the
// hit and into its surface, which filters out hands brushing through
// geometry sideways or from behind. Once engaged the target is kept for as
// long as the sweep still touches it.
type PokeTargetProvider struct {
	targetBase

	cfg PokeConfig

	mid, tip mgl64.Vec3
	history  []mgl64.Vec3 // oldest first
}

// NewPokeTargetProvider returns a poke provider.
func NewPokeTargetProvider(physics Physics, lookup colliderLookup, cfg PokeConfig) (*PokeTargetProvider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &PokeTargetProvider{
		targetBase: targetBase{physics: physics, lookup: lookup},
		cfg:        cfg,
		history:    make([]mgl64.Vec3, 0, cfg.HistorySize),
	}, nil
}

// SetJoints sets the sweep segment for the next Update.
func (p *PokeTargetProvider) SetJoints(mid, tip mgl64.Vec3) {
	p.mid = mid
	p.tip = tip
}

// TargetingMode implements TargetProvider.
func (p *PokeTargetProvider) TargetingMode() TargetingMode {
	return TargetingPoke
}

// Update implements TargetProvider.
func (p *PokeTargetProvider) Update() {
	p.start = p.mid
	p.end = p.tip
	defer p.pushHistory(p.tip)

	hits := p.physics.SphereCast(p.cfg.Radius, p.mid, p.tip)

	if p.hasHit {
		current := p.hit.Interactable
		if current.targetable() && current.TargetingMode.Allows(TargetingPoke) {
			if h, ok := hitFor(p.lookup, hits, current); ok {
				p.setHit(makeHitInfo(current, h, TargetingPoke))
				return
			}
		}
		p.clearHit()
	}

	hit, ok := nearestNestedHit(p.lookup, hits, TargetingPoke, TargetingPoke)
	if ok && p.aligned(hit.Hit) {
		p.setHit(hit)
	}
}

// aligned reports whether the tip has been travelling toward h and into
// its surface.
func (p *PokeTargetProvider) aligned(h RaycastHit) bool {
	if len(p.history) == 0 {
		return false
	}
	oldest := p.history[0]
	travel := p.tip.Sub(oldest)
	if travel.Len() < p.cfg.MinTravel || travel.Len() < geomEpsilon {
		return false
	}
	dir := travel.Normalize()
	if dir.Dot(h.Normal) >= 0 {
		return false
	}
	toHit := h.Position.Sub(oldest)
	if toHit.Len() < geomEpsilon {
		return true
	}
	return dir.Dot(toHit.Normalize()) >= p.cfg.AlignmentCos
}

// track records the tip without sweeping, for frames where another
// provider is active.
func (p *PokeTargetProvider) track() {
	p.pushHistory(p.tip)
}

func (p *PokeTargetProvider) pushHistory(tip mgl64.Vec3) {
	if len(p.history) == p.cfg.HistorySize {
		copy(p.history, p.history[1:])
		p.history = p.history[:len(p.history)-1]
	}
	p.history = append(p.history, tip)
}

// Reset implements TargetProvider.
func (p *PokeTargetProvider) Reset() {
	p.clearHit()
	p.history = p.history[:0]
}
