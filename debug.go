package reach

import (
	"fmt"
	"log"
	"strings"
)

// globalDebug and debugLogger mirror the manager that most recently enabled
// debug mode, so that node operations, which have no manager reference, can
// run their checks and report through its logger.
var (
	globalDebug bool
	debugLogger *log.Logger
)

// debugCheckDisposed panics with a descriptive message when a disposed node
// is used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("reach debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns through the debug logger if tree depth exceeds
// the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth && debugLogger != nil {
		debugLogger.Printf("warning: tree depth %d exceeds %d (node %q)",
			depth, debugMaxTreeDepth, n.Name)
	}
}

// DebugSummary returns one line per interactor describing its state this
// frame, e.g. "mouse: active indirect -> \"button\" trigger=pinch drag=(1,0,0)".
func (m *InteractionManager) DebugSummary() string {
	var sb strings.Builder
	for i, ir := range m.interactors {
		if i > 0 {
			sb.WriteByte('\n')
		}
		describeInteractor(&sb, ir)
	}
	return sb.String()
}

func describeInteractor(sb *strings.Builder, ir Interactor) {
	sb.WriteString(ir.Name())
	sb.WriteString(": ")
	if !ir.IsActive() {
		sb.WriteString("inactive")
		return
	}
	sb.WriteString("active ")
	sb.WriteString(ir.ActiveTargetingMode().String())
	if it := ir.CurrentInteractable(); it != nil {
		fmt.Fprintf(sb, " -> %q", it.Name())
	}
	fmt.Fprintf(sb, " trigger=%s", triggerName(ir.CurrentTrigger()))
	if v, ok := ir.CurrentDragVector(); ok {
		fmt.Fprintf(sb, " drag=(%.3g,%.3g,%.3g)", v[0], v[1], v[2])
	}
}

func triggerName(t InteractorTriggerType) string {
	switch t {
	case TriggerNone:
		return "none"
	case TriggerPinch:
		return "pinch"
	case TriggerPoke:
		return "poke"
	default:
		return "select"
	}
}

// debugLogFrame logs the frame's event count and every interactor's state.
func (m *InteractionManager) debugLogFrame() {
	m.logger.Printf("frame %d | events: %d | interactors: %d | interactables: %d",
		m.frame, m.eventCount, len(m.interactors), len(m.interactables))
	for _, ir := range m.interactors {
		var sb strings.Builder
		describeInteractor(&sb, ir)
		m.logger.Print(sb.String())
	}
}
