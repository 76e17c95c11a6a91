package reach

import "github.com/go-gl/mathgl/mgl64"

// TargetProvider is one hit-testing strategy owned by an Interactor.
// The family is closed: RayTargetProvider, DirectTargetProvider and
// PokeTargetProvider.
type TargetProvider interface {
	// StartPoint is where the strategy's query begins this frame.
	StartPoint() mgl64.Vec3
	// EndPoint is the current hit position, or the far end of the query.
	EndPoint() mgl64.Vec3
	// Direction is the normalized query direction (zero for point probes).
	Direction() mgl64.Vec3
	// Update recomputes the hit for this frame.
	Update()
	// CurrentHit returns this frame's best hit.
	CurrentHit() (InteractableHitInfo, bool)
	// HasTarget reports whether CurrentHit would succeed.
	HasTarget() bool
	// TargetingMode is the mode tagged on hits this provider produces.
	TargetingMode() TargetingMode
	// Reset drops the current hit and any history.
	Reset()

	targetProvider()
}

// colliderLookup maps colliders to the interactables that own them.
// Misses return nil and are treated as "no target".
type colliderLookup interface {
	InteractableForCollider(c *Collider) *Interactable
}

// targetBase carries the state shared by every provider.
type targetBase struct {
	physics Physics
	lookup  colliderLookup

	start, end mgl64.Vec3
	hit        InteractableHitInfo
	hasHit     bool
}

func (b *targetBase) StartPoint() mgl64.Vec3 { return b.start }
func (b *targetBase) EndPoint() mgl64.Vec3   { return b.end }

func (b *targetBase) Direction() mgl64.Vec3 {
	d := b.end.Sub(b.start)
	if d.Len() < geomEpsilon {
		return mgl64.Vec3{}
	}
	return d.Normalize()
}

func (b *targetBase) CurrentHit() (InteractableHitInfo, bool) {
	return b.hit, b.hasHit
}

func (b *targetBase) HasTarget() bool { return b.hasHit }

func (b *targetBase) clearHit() {
	b.hit = InteractableHitInfo{}
	b.hasHit = false
}

func (b *targetBase) setHit(h InteractableHitInfo) {
	b.hit = h
	b.hasHit = true
}

func (b *targetBase) targetProvider() {}

// makeHitInfo builds the hit record for a resolved interactable.
func makeHitInfo(it *Interactable, h RaycastHit, mode TargetingMode) InteractableHitInfo {
	return InteractableHitInfo{
		Interactable:  it,
		LocalPosition: it.node.WorldToLocal(h.Position),
		Hit:           h,
		TargetingMode: mode,
	}
}

// nearestNestedHit picks the target among distance-sorted hits: the nearest
// qualifying hit wins, except that a later hit whose interactable is a
// descendant of the current pick replaces it. Hits on colliders that are not
// mapped, on disabled interactables, or on interactables whose targeting
// mode rejects accept are skipped.
func nearestNestedHit(lookup colliderLookup, hits []RaycastHit, accept, produced TargetingMode) (InteractableHitInfo, bool) {
	var best InteractableHitInfo
	found := false
	for _, h := range hits {
		it := lookup.InteractableForCollider(h.Collider)
		if it == nil || !it.targetable() || !it.TargetingMode.Allows(accept) {
			continue
		}
		if !found {
			best = makeHitInfo(it, h, produced)
			found = true
			continue
		}
		if it != best.Interactable && it.node.IsDescendantOf(best.Interactable.node) {
			best = makeHitInfo(it, h, produced)
		}
	}
	return best, found
}

// hitFor returns the first hit belonging to it.
func hitFor(lookup colliderLookup, hits []RaycastHit, it *Interactable) (RaycastHit, bool) {
	for _, h := range hits {
		if lookup.InteractableForCollider(h.Collider) == it {
			return h, true
		}
	}
	return RaycastHit{}, false
}
