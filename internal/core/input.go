package core

// Action represents a semantic input, abstracted from physical key presses.
type Action int

const (
	ActionNone      Action = iota
	ActionUp               // W, K, Up arrow - move cursor up
	ActionDown             // S, J, Down arrow - move cursor down
	ActionLeft             // A, H, Left arrow - move cursor left
	ActionRight            // D, L, Right arrow - move cursor right
	ActionPlace            // Enter, Space - activate the cell under the cursor
	ActionNextPanel        // Tab - jump to the next board panel
	ActionPrevPanel        // Shift+Tab - jump to the previous board panel
	ActionNewGame          // N - reset the board, keep scores
	ActionResetAll         // Shift+N - reset the board and scores
	ActionBack             // Esc, B - return to menu
	ActionQuit             // Q, Ctrl+C - exit
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
	case ActionPlace:
		return "Place"
	case ActionNextPanel:
		return "NextPanel"
	case ActionPrevPanel:
		return "PrevPanel"
	case ActionNewGame:
		return "NewGame"
	case ActionResetAll:
		return "ResetAll"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
