package reach

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestLoadScript(t *testing.T) {
	data := []byte(`
steps:
  - {action: hover, source: mouse, x: 100, y: 200}
  - {action: drag, source: mouse, fromX: 0, fromY: 0, toX: 10, toY: 0, frames: 4, ease: out-quad}
  - {action: wait, frames: 3}
  - {action: lose, source: left}
`)
	runner, err := LoadScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(runner.steps))
	}
	if st := runner.steps[0]; st.Action != "hover" || st.Source != "mouse" || st.X != 100 || st.Y != 200 {
		t.Errorf("step 0 = %+v", st)
	}
	if st := runner.steps[1]; st.ToX != 10 || st.Frames != 4 || st.Ease != "out-quad" {
		t.Errorf("step 1 = %+v", st)
	}
	if st := runner.steps[2]; st.Action != "wait" || st.Frames != 3 {
		t.Errorf("step 2 = %+v", st)
	}
}

func TestLoadScript_JSON(t *testing.T) {
	runner, err := LoadScript([]byte(`{"steps": [{"action": "click", "x": 1, "y": 2}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if sourceName(runner.steps[0]) != "default" {
		t.Errorf("source = %q, want default", sourceName(runner.steps[0]))
	}
}

func TestLoadScript_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"invalid", `steps: [unterminated`},
		{"empty", `steps: []`},
		{"unknown action", `steps: [{action: screenshot}]`},
		{"unknown ease", `steps: [{action: drag, ease: wobble}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadScript([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
	if _, err := LoadScript([]byte(`steps: []`)); !errors.Is(err, ErrEmptyScript) {
		t.Errorf("empty: err = %v, want ErrEmptyScript", err)
	}
}

func TestRunnerCheck(t *testing.T) {
	runner, err := LoadScript([]byte(`
steps:
  - {action: click, x: 1, y: 1}
  - {action: lose, source: left}
  - {action: wait, frames: 1}
`))
	if err != nil {
		t.Fatal(err)
	}
	runner.BindPointer("default", NewScriptedPointer())
	if err := runner.Check(); !errors.Is(err, ErrUnknownSource) {
		t.Errorf("unbound hand: err = %v, want ErrUnknownSource", err)
	}
	runner.BindHand("left", NewScriptedHand())
	if err := runner.Check(); err != nil {
		t.Errorf("Check = %v, want nil", err)
	}
}

func TestRunnerCheck_HandOnlyLoses(t *testing.T) {
	runner, err := LoadScript([]byte(`steps: [{action: click, source: left}]`))
	if err != nil {
		t.Fatal(err)
	}
	runner.BindHand("left", NewScriptedHand())
	if err := runner.Check(); !errors.Is(err, ErrUnknownSource) {
		t.Errorf("err = %v, want ErrUnknownSource for a click on a hand", err)
	}
}

func TestRunnerStep_Click(t *testing.T) {
	runner, err := LoadScript([]byte(`steps: [{action: click, x: 50, y: 50}]`))
	if err != nil {
		t.Fatal(err)
	}
	p := NewScriptedPointer()
	runner.BindPointer("default", p)
	logger := log.New(&bytes.Buffer{}, "", 0)

	// First step: click queues press+release.
	runner.step(logger)
	if p.Pending() != 2 {
		t.Fatalf("expected 2 queued frames, got %d", p.Pending())
	}
	if runner.Done() {
		t.Error("runner should not be done while frames are queued")
	}
	p.PointerFrame()
	runner.step(logger)
	if runner.Done() {
		t.Error("runner should wait for the queue to drain")
	}
	p.PointerFrame()
	runner.step(logger)
	if !runner.Done() {
		t.Error("runner should be done after all steps executed and queue drained")
	}
}

func TestRunnerStep_Wait(t *testing.T) {
	runner, err := LoadScript([]byte(`
steps:
  - {action: wait, frames: 3}
  - {action: hover, x: 5, y: 5}
`))
	if err != nil {
		t.Fatal(err)
	}
	p := NewScriptedPointer()
	runner.BindPointer("default", p)
	logger := log.New(&bytes.Buffer{}, "", 0)

	for i := 0; i < 3; i++ {
		runner.step(logger)
		if p.Pending() != 0 {
			t.Fatalf("frame %d: hover applied during the wait", i)
		}
	}
	runner.step(logger)
	if p.Pending() != 1 {
		t.Errorf("Pending = %d, want 1 after the wait", p.Pending())
	}
}

func TestRunnerStep_UnknownSourceLogs(t *testing.T) {
	runner, err := LoadScript([]byte(`steps: [{action: hover, source: ghost}]`))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	runner.step(log.New(&buf, "", 0))
	if !strings.Contains(buf.String(), "skipped") {
		t.Errorf("log = %q, want a skipped-step warning", buf.String())
	}
	if !runner.Done() {
		t.Error("runner should finish after skipping the last step")
	}
}

func TestRunnerDrivesApp(t *testing.T) {
	app := MustApp(DefaultConfig())
	defer app.Close()
	button, err := app.AddInteractable(nil, "button", NewBoxCollider(mgl64.Vec3{0, 0, -10}, mgl64.Vec3{2, 2, 0.1}))
	if err != nil {
		t.Fatal(err)
	}
	ends := 0
	button.OnTriggerEnd(func(InteractableEvent) { ends++ })

	runner, err := LoadScript([]byte(`steps: [{action: click, source: mouse, x: 320, y: 240}]`))
	if err != nil {
		t.Fatal(err)
	}
	app.SetScriptRunner(runner)
	if _, _, err := app.NewScriptedMouse("mouse"); err != nil {
		t.Fatal(err)
	}
	if err := runner.Check(); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 10 && !runner.Done(); i++ {
		app.Update()
	}
	if !runner.Done() {
		t.Fatal("runner should finish")
	}
	if ends != 1 {
		t.Errorf("TriggerEnd count = %d, want 1", ends)
	}
}
