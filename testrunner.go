package reach

import (
	"fmt"
	"log"

	"gopkg.in/yaml.v3"
)

// scriptStep represents a single action in a script.
type scriptStep struct {
	Action string  `yaml:"action"`
	Source string  `yaml:"source,omitempty"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	FromX  float64 `yaml:"fromX,omitempty"`
	FromY  float64 `yaml:"fromY,omitempty"`
	ToX    float64 `yaml:"toX,omitempty"`
	ToY    float64 `yaml:"toY,omitempty"`
	Frames int     `yaml:"frames,omitempty"`
	Ease   string  `yaml:"ease,omitempty"`
}

// script is the top-level structure of a scenario script.
type script struct {
	Steps []scriptStep `yaml:"steps"`
}

// ScriptRunner sequences injected input across frames for scripted
// scenarios. Attach it to an App via SetScriptRunner and bind the named
// sources the script addresses.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool

	pointers map[string]*ScriptedPointer
	hands    map[string]*ScriptedHand
}

// LoadScript parses a YAML (or JSON) script. Steps name their source; a step
// without one addresses the source bound as "default".
//
//	steps:
//	  - {action: hover, source: mouse, x: 320, y: 240}
//	  - {action: drag, source: mouse, fromX: 320, fromY: 240, toX: 400, toY: 240, frames: 10, ease: out-quad}
//	  - {action: wait, frames: 3}
//	  - {action: lose, source: left}
func LoadScript(data []byte) (*ScriptRunner, error) {
	var sc script
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse script: %w", ErrEmptyScript)
	}
	for i, st := range sc.Steps {
		switch st.Action {
		case "click", "press", "release", "move", "hover", "drag", "wait", "lose":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
		if _, ok := easings[st.Ease]; !ok {
			return nil, fmt.Errorf("parse script: step %d: unknown ease %q", i, st.Ease)
		}
	}
	return &ScriptRunner{
		steps:    sc.Steps,
		pointers: make(map[string]*ScriptedPointer),
		hands:    make(map[string]*ScriptedHand),
	}, nil
}

// BindPointer makes p addressable as name.
func (r *ScriptRunner) BindPointer(name string, p *ScriptedPointer) {
	r.pointers[name] = p
}

// BindHand makes h addressable as name. Hands only accept "lose" steps.
func (r *ScriptRunner) BindHand(name string, h *ScriptedHand) {
	r.hands[name] = h
}

// Check reports steps addressing sources that are not bound.
func (r *ScriptRunner) Check() error {
	for i, st := range r.steps {
		if st.Action == "wait" {
			continue
		}
		name := sourceName(st)
		if _, ok := r.pointers[name]; ok {
			continue
		}
		if _, ok := r.hands[name]; ok && st.Action == "lose" {
			continue
		}
		return fmt.Errorf("step %d (%s): %q: %w", i, st.Action, name, ErrUnknownSource)
	}
	return nil
}

// Done reports whether all steps in the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

func sourceName(st scriptStep) string {
	if st.Source == "" {
		return "default"
	}
	return st.Source
}

func (r *ScriptRunner) pending() bool {
	for _, p := range r.pointers {
		if p.Pending() > 0 {
			return true
		}
	}
	for _, h := range r.hands {
		if h.Pending() > 0 {
			return true
		}
	}
	return false
}

// step advances the runner by one frame. Called from App.Update before the
// manager update.
func (r *ScriptRunner) step(logger *log.Logger) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if r.pending() {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	if st.Action == "wait" {
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	} else if err := r.apply(st); err != nil {
		logger.Printf("warning: script step %d skipped: %v", r.cursor-1, err)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && !r.pending() {
		r.done = true
	}
}

func (r *ScriptRunner) apply(st scriptStep) error {
	name := sourceName(st)
	if st.Action == "lose" {
		if p, ok := r.pointers[name]; ok {
			p.InjectLost()
			return nil
		}
		if h, ok := r.hands[name]; ok {
			h.InjectLost()
			return nil
		}
		return fmt.Errorf("%q: %w", name, ErrUnknownSource)
	}
	p, ok := r.pointers[name]
	if !ok {
		return fmt.Errorf("%q: %w", name, ErrUnknownSource)
	}
	switch st.Action {
	case "click":
		p.InjectClick(st.X, st.Y)
	case "press":
		p.InjectPress(st.X, st.Y)
	case "release":
		p.InjectRelease(st.X, st.Y)
	case "move":
		p.InjectMove(st.X, st.Y)
	case "hover":
		p.InjectHover(st.X, st.Y)
	case "drag":
		p.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames, easings[st.Ease])
	}
	return nil
}
