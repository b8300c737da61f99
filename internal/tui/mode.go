// Package tui provides the terminal user interface for boulanger.
package tui

// Mode represents the current UI mode.
type Mode int

const (
	ModeNormal   Mode = iota // Grid navigation
	ModeKeyword              // Keyword input has focus
	ModeAssignee             // Assignee chip selection
	ModeHelp                 // Help overlay
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeKeyword:
		return "keyword"
	case ModeAssignee:
		return "assignee"
	case ModeHelp:
		return "help"
	default:
		return "unknown"
	}
}

// IsInputMode returns true if the mode accepts text input.
func (m Mode) IsInputMode() bool {
	switch m {
	case ModeKeyword:
		return true
	case ModeNormal, ModeAssignee, ModeHelp:
		return false
	}
	return false
}
