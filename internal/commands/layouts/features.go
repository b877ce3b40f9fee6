package layoutscmd

import "errors"

// ErrLayoutsCommandsDisabled is returned when the feature gate is closed.
var ErrLayoutsCommandsDisabled = errors.New("layouts command: module disabled")

// FeatureGates exposes the runtime toggles read by layout command handlers.
type FeatureGates struct {
	CommandsEnabled func() bool
}

func (g FeatureGates) enabled() bool {
	if g.CommandsEnabled == nil {
		return true
	}
	return g.CommandsEnabled()
}
