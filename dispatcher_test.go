package reach

import (
	"bytes"
	"log"
	"slices"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// dispatchTree builds root <- panel <- (plain group) <- list <- button and
// returns the interactables.
func dispatchTree(t *testing.T) (m *InteractionManager, panel, list, button *Interactable) {
	t.Helper()
	m, s := newTestWorld(t)
	panel = addTarget(t, m, s.Root(), "panel", mgl64.Vec3{}, panelBox())
	group := NewNode("group")
	panel.Node().AddChild(group)
	list = addTarget(t, m, group, "list", mgl64.Vec3{0, 0, 0.2}, panelBox())
	button = addTarget(t, m, list.Node(), "button", mgl64.Vec3{0, 0, 0.2}, buttonBox())
	return m, panel, list, button
}

// recordAll logs "name:phase" for every event of type et on each of its.
func recordAll(et EventType, out *[]string, its ...*Interactable) {
	for _, it := range its {
		it.On(et, func(e InteractableEvent) {
			*out = append(*out, e.Interactable.Name()+":"+e.Phase.String())
		})
	}
}

func TestDispatchPhaseOrder(t *testing.T) {
	m, panel, list, button := dispatchTree(t)
	var got []string
	recordAll(EventTriggerStart, &got, panel, list, button)

	m.Dispatcher().Dispatch(DispatchRequest{Type: EventTriggerStart, Target: button})

	want := []string{
		"panel:TrickleDown", "list:TrickleDown",
		"button:Target",
		"list:BubbleUp", "panel:BubbleUp",
	}
	if !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestDispatchEventFields(t *testing.T) {
	m, panel, _, button := dispatchTree(t)
	var seen []InteractableEvent
	panel.OnDragUpdate(func(e InteractableEvent) { seen = append(seen, e) })

	m.Dispatcher().Dispatch(DispatchRequest{Type: EventDragUpdate, Target: button, DragVector: mgl64.Vec3{1, 2, 3}})

	if len(seen) != 2 {
		t.Fatalf("panel received %d events, want 2", len(seen))
	}
	for _, e := range seen {
		if e.Target != button || e.Interactable != panel {
			t.Errorf("Target, Interactable = %q, %q, want button, panel", e.Target.Name(), e.Interactable.Name())
		}
		if e.DragVector != (mgl64.Vec3{1, 2, 3}) {
			t.Errorf("DragVector = %v, want (1,2,3)", e.DragVector)
		}
	}
}

func TestDispatchStopPropagation(t *testing.T) {
	tests := []struct {
		name    string
		stopAt  string
		phase   PropagationPhase
		wantLen int
	}{
		{"trickle at panel", "panel", PhaseTrickleDown, 1},
		{"at target", "button", PhaseTarget, 3},
		{"bubble at list", "list", PhaseBubbleUp, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, panel, list, button := dispatchTree(t)
			var got []string
			recordAll(EventHoverEnter, &got, panel, list, button)
			for _, it := range []*Interactable{panel, list, button} {
				it.OnHoverEnter(func(e InteractableEvent) {
					if e.Interactable.Name() == tt.stopAt && e.Phase == tt.phase {
						e.StopPropagation()
					}
				})
			}

			prop := m.Dispatcher().Dispatch(DispatchRequest{Type: EventHoverEnter, Target: button})
			if !prop.Stopped() {
				t.Error("propagation should report stopped")
			}
			if len(got) != tt.wantLen {
				t.Errorf("delivered %v, want %d receivers", got, tt.wantLen)
			}
		})
	}
}

func TestStopPropagationStillRunsSiblingCallbacks(t *testing.T) {
	m, _, _, button := dispatchTree(t)
	calls := 0
	button.OnTriggerEnd(func(e InteractableEvent) { e.StopPropagation(); calls++ })
	button.OnTriggerEnd(func(e InteractableEvent) {
		if !e.PropagationStopped() {
			t.Error("second callback should see the stop")
		}
		calls++
	})
	m.Dispatcher().Dispatch(DispatchRequest{Type: EventTriggerEnd, Target: button})
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestDispatchOriginExcludesAncestors(t *testing.T) {
	m, panel, list, button := dispatchTree(t)
	var got []string
	recordAll(EventTriggerCanceled, &got, panel, list, button)

	m.Dispatcher().Dispatch(DispatchRequest{Type: EventTriggerCanceled, Target: button, Origin: list})

	if want := []string{"button:Target"}; !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}

	got = got[:0]
	m.Dispatcher().Dispatch(DispatchRequest{Type: EventTriggerCanceled, Target: button, Origin: panel})
	want := []string{"list:TrickleDown", "button:Target", "list:BubbleUp"}
	if !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestDispatchAncestors(t *testing.T) {
	m, panel, list, button := dispatchTree(t)
	got := m.Dispatcher().Ancestors(button, nil)
	if len(got) != 2 || got[0] != list || got[1] != panel {
		t.Errorf("Ancestors = %v, want [list panel]", got)
	}
	if got := m.Dispatcher().Ancestors(panel, nil); len(got) != 0 {
		t.Errorf("root-most Ancestors = %v, want none", got)
	}
}

func TestDispatchReentrant(t *testing.T) {
	m, panel, list, button := dispatchTree(t)
	var got []string
	recordAll(EventHoverExit, &got, panel, list, button)
	list.OnHoverEnter(func(e InteractableEvent) {
		if e.Phase == PhaseTarget {
			m.Dispatcher().Dispatch(DispatchRequest{Type: EventHoverExit, Target: button})
		}
	})
	var outer []string
	recordAll(EventHoverEnter, &outer, panel, list)

	m.Dispatcher().Dispatch(DispatchRequest{Type: EventHoverEnter, Target: list})

	if len(got) != 5 {
		t.Errorf("nested dispatch delivered %v, want 5 records", got)
	}
	if want := []string{"panel:TrickleDown", "list:Target", "panel:BubbleUp"}; !slices.Equal(outer, want) {
		t.Errorf("outer order = %v, want %v", outer, want)
	}
}

func TestDispatchEventWithoutInteractorWarns(t *testing.T) {
	m, _, _, button := dispatchTree(t)
	var buf bytes.Buffer
	m.SetLogger(log.New(&buf, "", 0))
	delivered := false
	button.OnHoverUpdate(func(InteractableEvent) { delivered = true })

	m.DispatchEvent(DispatchRequest{Type: EventHoverUpdate, Target: button})

	if !delivered {
		t.Error("event should still be dispatched")
	}
	if !strings.Contains(buf.String(), "no interactor") {
		t.Errorf("log = %q, want a no-interactor warning", buf.String())
	}
}
