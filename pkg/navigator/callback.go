package navigator

import "github.com/entrhq/scout/pkg/types"

// Callback receives step lifecycle events during plan execution, for
// progress display or streaming to an external consumer.
type Callback interface {
	// OnStepStart is called when a step begins.
	OnStepStart(step *types.ActionStep)

	// OnStepComplete is called after a step succeeds, with the screenshot
	// captured after the action.
	OnStepComplete(step *types.ActionStep, screenshot []byte)

	// OnStepError is called when a step fails.
	OnStepError(step *types.ActionStep, err error)
}

// NopCallback ignores every event.
type NopCallback struct{}

func (NopCallback) OnStepStart(*types.ActionStep)            {}
func (NopCallback) OnStepComplete(*types.ActionStep, []byte) {}
func (NopCallback) OnStepError(*types.ActionStep, error)     {}
