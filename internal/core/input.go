package core

// Action is a player intent, decoupled from the key that produced it.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionPause   // P
	ActionRestart // R, after game over
	ActionBack    // Esc, return to the caller
	ActionQuit    // Q, Ctrl+C
)

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
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame collects the intents triggered during one tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty frame.
func NewInputFrame() InputFrame {
	return InputFrame{Actions: make(map[Action]bool)}
}

// Set marks a as triggered this tick.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has reports whether a was triggered this tick.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Empty reports whether no intent was triggered.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0
}

// Clear drops every intent so the frame can be reused for the next tick.
func (f *InputFrame) Clear() {
	clear(f.Actions)
}
