package tui

import (
	"github.com/boulangers/boulanger/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// statusInProgress is the one tracker status rendered with the warm badge.
const statusInProgress = "In Progress"

// Colors defines the color palette for the TUI.
var Colors = struct {
	// Base colors
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Error      lipgloss.Color
	Background lipgloss.Color

	// Text colors
	TitleNormal   lipgloss.Color
	TitleSelected lipgloss.Color
	BadgeText     lipgloss.Color

	// Badge colors
	Purple lipgloss.Color
	Blue   lipgloss.Color
	Green  lipgloss.Color
	Orange lipgloss.Color
	Gray   lipgloss.Color
}{
	Primary:    lipgloss.Color("#6C5CE7"), // Purple
	Secondary:  lipgloss.Color("#A29BFE"), // Lavender
	Muted:      lipgloss.Color("#636E72"), // Gray
	Error:      lipgloss.Color("#D63031"), // Red
	Background: lipgloss.Color("#2D3436"), // Dark gray

	TitleNormal:   lipgloss.Color("#DFE6E9"), // Light gray
	TitleSelected: lipgloss.Color("#FFEAA7"), // Yellow (selected)
	BadgeText:     lipgloss.Color("#FFFFFF"),

	Purple: lipgloss.Color("#8E44AD"),
	Blue:   lipgloss.Color("#0984E3"),
	Green:  lipgloss.Color("#00B894"),
	Orange: lipgloss.Color("#E17055"),
	Gray:   lipgloss.Color("#636E72"),
}

// Styles contains all the lipgloss styles for the TUI.
type Styles struct {
	// App
	App lipgloss.Style

	// Header
	Header     lipgloss.Style
	HeaderText lipgloss.Style

	// Search bar
	InputPrompt      lipgloss.Style
	Label            lipgloss.Style
	CategoryActive   lipgloss.Style
	CategoryInactive lipgloss.Style

	// Assignee chips
	Chip         lipgloss.Style
	ChipSelected lipgloss.Style
	ChipCursor   lipgloss.Style

	// Grid
	GridHeader   lipgloss.Style
	RowNormal    lipgloss.Style
	RowSelected  lipgloss.Style
	CursorNormal lipgloss.Style
	CursorActive lipgloss.Style
	TreeMarker   lipgloss.Style
	Badge        lipgloss.Style
	Empty        lipgloss.Style

	// Help
	Help     lipgloss.Style
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	// Footer
	Footer     lipgloss.Style
	FooterHint lipgloss.Style
}

// DefaultStyles returns the default styles for the TUI.
func DefaultStyles() Styles {
	return Styles{
		App: lipgloss.NewStyle().
			Padding(1, 2),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary).
			MarginBottom(1),

		HeaderText: lipgloss.NewStyle().
			Bold(true),

		InputPrompt: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		CategoryActive: lipgloss.NewStyle().
			Foreground(Colors.TitleSelected).
			Bold(true),

		CategoryInactive: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		Chip: lipgloss.NewStyle().
			Foreground(Colors.TitleNormal).
			Padding(0, 1),

		ChipSelected: lipgloss.NewStyle().
			Foreground(Colors.BadgeText).
			Background(Colors.Primary).
			Padding(0, 1),

		ChipCursor: lipgloss.NewStyle().
			Underline(true),

		GridHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Secondary),

		RowNormal: lipgloss.NewStyle().
			Foreground(Colors.TitleNormal),

		RowSelected: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.TitleSelected),

		CursorNormal: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		CursorActive: lipgloss.NewStyle().
			Foreground(Colors.TitleSelected).
			Bold(true),

		TreeMarker: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		Badge: lipgloss.NewStyle().
			Foreground(Colors.BadgeText).
			Padding(0, 1),

		Empty: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Italic(true),

		Help: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Muted),

		HelpKey: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		Footer: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		FooterHint: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Italic(true),
	}
}

// TypeColor returns the badge color for an issue type.
func TypeColor(issueType string) lipgloss.Color {
	switch issueType {
	case domain.IssueTypeEpic:
		return Colors.Purple
	case domain.IssueTypeTask:
		return Colors.Blue
	case domain.IssueTypeSubtask, "Sub-task":
		return Colors.Green
	case domain.IssueTypeStory:
		return Colors.Orange
	default:
		return Colors.Gray
	}
}

// StatusColor returns the badge color for a status.
func StatusColor(status string) lipgloss.Color {
	if status == statusInProgress {
		return Colors.Orange
	}
	return Colors.Green
}

// AssigneeColor returns the badge color for an assignee.
func AssigneeColor(assignee string) lipgloss.Color {
	if assignee == domain.DefaultAssignee {
		return Colors.Gray
	}
	return Colors.Blue
}

// TypeBadge renders an issue type badge.
func (s Styles) TypeBadge(issueType string) string {
	return s.Badge.Background(TypeColor(issueType)).Render(issueType)
}

// StatusBadge renders a status badge.
func (s Styles) StatusBadge(status string) string {
	return s.Badge.Background(StatusColor(status)).Render(status)
}

// AssigneeBadge renders an assignee badge.
func (s Styles) AssigneeBadge(assignee string) string {
	return s.Badge.Background(AssigneeColor(assignee)).Render(assignee)
}
