package showcase

import (
	"encoding/json"
	"fmt"
)

// Script actions understood by ScriptRunner.
const (
	ActionScreenshot = "screenshot"
	ActionClick      = "click"
	ActionDrag       = "drag"
	ActionWheel      = "wheel"
	ActionWait       = "wait"
	ActionSelect     = "select"
	ActionResize     = "resize"
)

// ScriptStep is a single scripted action. Label carries the screenshot label
// for "screenshot" and the scene title for "select".
type ScriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	DX     float64 `json:"dx,omitempty"`
	DY     float64 `json:"dy,omitempty"`
	W      float64 `json:"w,omitempty"`
	H      float64 `json:"h,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

type script struct {
	Steps []ScriptStep `json:"steps"`
}

// ScriptRunner plays a sequence of input, selection and screenshot steps
// across frames. Attach it with App.SetScriptRunner.
type ScriptRunner struct {
	steps     []ScriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON script of the form {"steps": [...]}.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(jsonData, &s); err != nil {
		return nil, fmt.Errorf("showcase: parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("showcase: parse script: no steps")
	}
	for i, st := range s.Steps {
		switch st.Action {
		case ActionScreenshot, ActionClick, ActionDrag, ActionWheel,
			ActionWait, ActionSelect, ActionResize:
		default:
			return nil, fmt.Errorf("showcase: parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

// Done reports whether every step has run and its input has drained.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame.
func (r *ScriptRunner) step(a *App) {
	if r.done {
		return
	}
	if a.PendingInput() > 0 {
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

	switch st.Action {
	case ActionScreenshot:
		a.Screenshot(st.Label)
	case ActionClick:
		a.InjectClick(st.X, st.Y)
	case ActionDrag:
		a.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case ActionWheel:
		a.InjectWheel(st.X, st.Y, st.DX, st.DY)
	case ActionSelect:
		if scene := a.SceneByTitle(st.Label); scene != nil {
			a.Select(scene)
		} else {
			debugf("script: no scene titled %q", st.Label)
		}
	case ActionResize:
		a.Resize(st.W, st.H)
	case ActionWait:
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && a.PendingInput() == 0 {
		r.done = true
	}
}
