package types

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ActionType enumerates the step kinds a plan may contain.
type ActionType string

const (
	ActionNavigate ActionType = "NAVIGATE"
	ActionClick    ActionType = "CLICK"
	ActionTypeText ActionType = "TYPE"
	ActionScroll   ActionType = "SCROLL"
	ActionWait     ActionType = "WAIT"
)

// validActions is the closed set of step kinds.
var validActions = map[ActionType]bool{
	ActionNavigate: true,
	ActionClick:    true,
	ActionTypeText: true,
	ActionScroll:   true,
	ActionWait:     true,
}

// ActionStep is a single action in an execution plan.
type ActionStep struct {
	// ID is the step number within the plan.
	ID int `json:"id" yaml:"id"`

	// Action is the kind of step to perform.
	Action ActionType `json:"action_type" yaml:"action_type"`

	// Description is the human-readable intent of the step, also used as the
	// grounding hint for vision resolution.
	Description string `json:"description" yaml:"description"`

	// Value carries the step payload: the URL for NAVIGATE, the text for
	// TYPE, the direction for SCROLL, the expected text for WAIT, and an
	// optional target hint for CLICK.
	Value string `json:"value,omitempty" yaml:"value,omitempty"`

	// CachedSelector is a locator that previously worked for this step. The
	// navigator tries it first and refreshes it after a successful click.
	CachedSelector string `json:"cached_selector,omitempty" yaml:"cached_selector,omitempty"`

	// SemanticIntent is the high-level goal of the step, used when the
	// primary target cannot be found and an alternative must be chosen.
	SemanticIntent string `json:"semantic_intent,omitempty" yaml:"semantic_intent,omitempty"`

	// Alternatives lists other ways to achieve the step if the primary
	// target fails.
	Alternatives []string `json:"alternatives,omitempty" yaml:"alternatives,omitempty"`
}

// ExecutionPlan is an ordered list of action steps.
type ExecutionPlan struct {
	Steps []ActionStep `json:"steps" yaml:"steps"`

	// SourceURL is the starting URL for the plan, when known.
	SourceURL string `json:"source_url,omitempty" yaml:"source_url,omitempty"`
}

// Validate checks the plan for structural problems before execution.
func (p *ExecutionPlan) Validate() error {
	if len(p.Steps) == 0 {
		return fmt.Errorf("plan has no steps")
	}
	for i, step := range p.Steps {
		if !validActions[step.Action] {
			return fmt.Errorf("step %d: unknown action type %q", i+1, step.Action)
		}
		switch step.Action {
		case ActionNavigate:
			if step.Value == "" {
				return fmt.Errorf("step %d: NAVIGATE requires a URL in value", i+1)
			}
		case ActionTypeText:
			if step.Value == "" {
				return fmt.Errorf("step %d: TYPE requires text in value", i+1)
			}
		}
	}
	return nil
}

// LoadPlan reads an execution plan from a JSON or YAML file, chosen by
// extension, and validates it.
func LoadPlan(path string) (*ExecutionPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan: %w", err)
	}

	var plan ExecutionPlan
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &plan); err != nil {
			return nil, fmt.Errorf("parsing YAML plan: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &plan); err != nil {
			return nil, fmt.Errorf("parsing JSON plan: %w", err)
		}
	}

	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("invalid plan %s: %w", path, err)
	}
	return &plan, nil
}
