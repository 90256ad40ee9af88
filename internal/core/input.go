package core

// Action represents a semantic input, abstracted from physical key presses.
type Action int

const (
	ActionNone         Action = iota
	ActionUp                  // W, Up arrow
	ActionDown                // S, Down arrow
	ActionLeft                // A, Left arrow
	ActionRight               // D, Right arrow
	ActionConfirm             // Space, Enter
	ActionBack                // Escape
	ActionQuit                // Q, Ctrl+C
	ActionSelectEasy          // 1
	ActionSelectNormal        // 2
	ActionSelectHard          // 3
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	case ActionSelectEasy:
		return "SelectEasy"
	case ActionSelectNormal:
		return "SelectNormal"
	case ActionSelectHard:
		return "SelectHard"
	default:
		return "Unknown"
	}
}

// IsDirection reports whether the action is one of the four headings.
func (a Action) IsDirection() bool {
	return a == ActionUp || a == ActionDown || a == ActionLeft || a == ActionRight
}

// InputFrame collects the actions triggered between two simulation ticks.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// lastDir is the most recent directional action, so a burst of key
	// presses between ticks resolves to the latest one.
	lastDir Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
	if a.IsDirection() {
		f.lastDir = a
	}
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Direction returns the latest directional action of this frame.
func (f InputFrame) Direction() (Action, bool) {
	if f.lastDir == ActionNone {
		return ActionNone, false
	}
	return f.lastDir, true
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.lastDir = ActionNone
}
