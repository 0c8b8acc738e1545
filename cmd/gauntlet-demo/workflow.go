package main

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/gauntlet/pkg/statemachine"
)

//go:embed workflow.yaml
var defaultWorkflow []byte

var (
	ErrNoInitialState = errors.New("workflow: initial state is required")
	ErrUnknownState   = errors.New("workflow: state is not declared")
)

// Workflow is a transition table plus the follow-up requests the demo
// subscriber issues when a state is entered.
type Workflow struct {
	Initial     string                     `yaml:"initial"`
	Transitions statemachine.Table[string] `yaml:"transitions"`
	Follow      map[string]string          `yaml:"follow"`
}

// LoadWorkflow reads a workflow from path, or the embedded default when path
// is empty.
func LoadWorkflow(path string) (Workflow, error) {
	data := defaultWorkflow
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return Workflow{}, fmt.Errorf("read workflow: %w", err)
		}
	}
	return ParseWorkflow(data)
}

// ParseWorkflow decodes and validates a YAML workflow.
func ParseWorkflow(data []byte) (Workflow, error) {
	var w Workflow
	if err := yaml.Unmarshal(data, &w); err != nil {
		return Workflow{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if err := w.validate(); err != nil {
		return Workflow{}, err
	}
	return w, nil
}

func (w Workflow) validate() error {
	if w.Initial == "" {
		return ErrNoInitialState
	}

	declared := func(s string) bool {
		if _, ok := w.Transitions[s]; ok {
			return true
		}
		for _, targets := range w.Transitions {
			for _, t := range targets {
				if t == s {
					return true
				}
			}
		}
		return false
	}

	if !declared(w.Initial) {
		return fmt.Errorf("%w: %q", ErrUnknownState, w.Initial)
	}
	for from, to := range w.Follow {
		if !declared(from) || !declared(to) {
			return fmt.Errorf("%w: follow %q -> %q", ErrUnknownState, from, to)
		}
	}
	return nil
}
