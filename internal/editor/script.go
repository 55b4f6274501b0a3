package editor

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/isotile/internal/terrain"
)

// ErrBadStep is returned for script steps that cannot be applied.
var ErrBadStep = errors.New("bad script step")

// Script is a recorded list of gestures.
type Script struct {
	Steps []Step `yaml:"steps"`
}

// Step is one gesture. Subtile 0 means the whole face. A zero brush keeps
// the current brush; Smooth, when set, switches soften mode first.
type Step struct {
	X       int    `yaml:"x"`
	Y       int    `yaml:"y"`
	Subtile int    `yaml:"subtile"`
	Brush   [2]int `yaml:"brush,flow"`
	Drag    int    `yaml:"drag"` // levels, positive raises
	Smooth  *bool  `yaml:"smooth"`
}

// StepResult pairs a step with what it did.
type StepResult struct {
	Step    Step
	Summary Summary
	Update  Update
}

// ParseScript decodes a YAML script.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	for i, st := range s.Steps {
		if st.Subtile < 0 || st.Subtile > terrain.SubtileFace {
			return nil, fmt.Errorf("%w %d: subtile %d", ErrBadStep, i, st.Subtile)
		}
		if st.Brush[0] < 0 || st.Brush[1] < 0 {
			return nil, fmt.Errorf("%w %d: brush %v", ErrBadStep, i, st.Brush)
		}
	}
	return &s, nil
}

// LoadScript reads and decodes a script file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	return ParseScript(data)
}

// Run applies every step to the tool in order.
func (s *Script) Run(t *Tool) []StepResult {
	out := make([]StepResult, 0, len(s.Steps))
	for _, st := range s.Steps {
		if st.Brush[0] > 0 && st.Brush[1] > 0 {
			w, h := t.Brush()
			t.Resize(st.Brush[0]-w, st.Brush[1]-h)
		}
		if st.Smooth != nil && *st.Smooth != t.Smooth() {
			t.ToggleSmooth()
		}
		code := st.Subtile
		if code == terrain.SubtileNone {
			code = terrain.SubtileFace
		}
		sum, u := t.Apply(st.X, st.Y, code, st.Drag)
		out = append(out, StepResult{Step: st, Summary: sum, Update: u})
	}
	return out
}
