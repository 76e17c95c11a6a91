package reach

import "github.com/go-gl/mathgl/mgl64"

// InteractorInputType identifies the kind of device behind an Interactor.
// Values are bit flags and can be combined (e.g. InputLeftHand | InputMouse).
type InteractorInputType uint16

const (
	InputNone       InteractorInputType = 0
	InputLeftHand   InteractorInputType = 1 << 0
	InputRightHand  InteractorInputType = 1 << 1
	InputMobile     InteractorInputType = 1 << 2
	InputMouse      InteractorInputType = 1 << 3
	InputController InteractorInputType = 1 << 4

	InputBothHands = InputLeftHand | InputRightHand
	InputAll       = InputBothHands | InputMobile | InputMouse | InputController
)

// Has reports whether every bit of other is set in t.
func (t InteractorInputType) Has(other InteractorInputType) bool {
	return other != 0 && t&other == other
}

// String returns a readable name for single-bit values.
func (t InteractorInputType) String() string {
	switch t {
	case InputNone:
		return "none"
	case InputLeftHand:
		return "left-hand"
	case InputRightHand:
		return "right-hand"
	case InputBothHands:
		return "both-hands"
	case InputMobile:
		return "mobile"
	case InputMouse:
		return "mouse"
	case InputController:
		return "controller"
	default:
		return "mixed"
	}
}

// InteractorTriggerType is the engagement signal of an Interactor.
type InteractorTriggerType uint8

const (
	TriggerNone  InteractorTriggerType = 0
	TriggerPinch InteractorTriggerType = 1 << 0
	TriggerPoke  InteractorTriggerType = 1 << 1

	// TriggerSelect is any engagement.
	TriggerSelect = TriggerPinch | TriggerPoke
)

// Selecting reports whether t includes any select bit.
func (t InteractorTriggerType) Selecting() bool {
	return t&TriggerSelect != 0
}

// TargetingMode selects which hit-testing strategies may target an
// Interactable, and which strategy produced a hit.
type TargetingMode uint8

const (
	TargetingNone     TargetingMode = 0
	TargetingDirect   TargetingMode = 1 << 0 // proximity probe between two tracked points
	TargetingIndirect TargetingMode = 1 << 1 // ray / sphere cast
	TargetingPoke     TargetingMode = 1 << 2 // fingertip sweep

	TargetingAll = TargetingDirect | TargetingIndirect | TargetingPoke
)

// Allows reports whether any bit of mode is accepted by m.
func (m TargetingMode) Allows(mode TargetingMode) bool {
	return m&mode != 0
}

func (m TargetingMode) String() string {
	switch m {
	case TargetingNone:
		return "none"
	case TargetingDirect:
		return "direct"
	case TargetingIndirect:
		return "indirect"
	case TargetingPoke:
		return "poke"
	case TargetingAll:
		return "all"
	default:
		return "mixed"
	}
}

// EventType identifies a kind of interaction event.
type EventType uint8

const (
	EventHoverEnter      EventType = iota // interactor starts targeting an interactable
	EventHoverUpdate                      // interactor keeps targeting the same interactable
	EventHoverExit                        // interactor stops targeting an interactable
	EventTriggerStart                     // select begins on the target
	EventTriggerUpdate                    // select continues on the same target
	EventTriggerEnd                       // select released normally
	EventTriggerCanceled                  // select aborted (target lost, interactor lost, captured)
	EventDragStart                        // drag vector became available during a trigger
	EventDragUpdate                       // drag vector available on a following frame
	EventDragEnd                          // trigger ended or canceled while dragging

	eventTypeCount
)

var eventTypeNames = [eventTypeCount]string{
	"HoverEnter", "HoverUpdate", "HoverExit",
	"TriggerStart", "TriggerUpdate", "TriggerEnd", "TriggerCanceled",
	"DragStart", "DragUpdate", "DragEnd",
}

func (e EventType) String() string {
	if e < eventTypeCount {
		return eventTypeNames[e]
	}
	return "Unknown"
}

// PropagationPhase tags which pass of a dispatch an event record belongs to.
type PropagationPhase uint8

const (
	PhaseTrickleDown PropagationPhase = iota // ancestors, root-most first
	PhaseTarget                              // the target itself
	PhaseBubbleUp                            // ancestors, immediate parent first
)

func (p PropagationPhase) String() string {
	switch p {
	case PhaseTrickleDown:
		return "TrickleDown"
	case PhaseTarget:
		return "Target"
	default:
		return "BubbleUp"
	}
}

// InteractableID is a handle into an InteractionManager's interactable
// registry. The zero value never refers to a registered interactable.
type InteractableID uint32

// RaycastHit is a single result of a spatial query.
type RaycastHit struct {
	Collider *Collider
	Position mgl64.Vec3 // world-space contact point
	Normal   mgl64.Vec3 // world-space surface normal
	Distance float64    // distance from the query origin
	// Fraction is the normalised position of the hit along the query segment.
	Fraction float64
}

// InteractableHitInfo is the per-frame result of a TargetProvider.
type InteractableHitInfo struct {
	Interactable  *Interactable
	LocalPosition mgl64.Vec3 // hit position in the interactable node's local space
	Hit           RaycastHit
	TargetingMode TargetingMode
}
