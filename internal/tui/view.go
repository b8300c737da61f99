package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/boulangers/boulanger/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Fixed grid column widths. Summary takes the remaining width.
const (
	keyWidth      = 20
	parentWidth   = 14
	typeWidth     = 10
	statusWidth   = 14
	assigneeWidth = 14
	dueWidth      = 10
	minSummary    = 10
	columnGap     = 1
	cursorWidth   = 2
)

// emptyMessage is shown instead of the grid when a search returns no rows.
const emptyMessage = "No data to display."

// View renders the TUI.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string
	switch m.mode {
	case ModeHelp:
		content = m.viewHelp()
	case ModeNormal, ModeKeyword, ModeAssignee:
		content = m.viewMain()
	}

	return m.styles.App.Render(content)
}

// viewMain renders the search inputs, the grid and the footer.
func (m *Model) viewMain() string {
	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n")
	b.WriteString(m.viewSearchBar())
	b.WriteString("\n")
	b.WriteString(m.viewCategories())
	b.WriteString("\n")
	b.WriteString(m.viewChips())
	b.WriteString("\n\n")
	b.WriteString(m.viewGrid())
	b.WriteString("\n")
	b.WriteString(m.viewFooter())

	return b.String()
}

func (m *Model) viewHeader() string {
	title := m.styles.HeaderText.Render("Boulanger Issue Tracker")
	project := m.styles.Label.Render("  project " + m.container.AppConfig.Backend.ProjectKey)
	return m.styles.Header.Render(title + project)
}

func (m *Model) viewSearchBar() string {
	prompt := m.styles.Label.Render("Keyword   ")
	if m.mode == ModeKeyword {
		prompt = m.styles.InputPrompt.Render("Keyword > ")
	}
	return prompt + m.keywordInput.View()
}

func (m *Model) viewCategories() string {
	parts := make([]string, 0, len(domain.AllCategories()))
	for _, c := range domain.AllCategories() {
		if c == m.state.Category {
			parts = append(parts, m.styles.CategoryActive.Render("["+c.Display()+"]"))
			continue
		}
		parts = append(parts, m.styles.CategoryInactive.Render(" "+c.Display()+" "))
	}
	return m.styles.Label.Render("Category  ") + strings.Join(parts, " ")
}

func (m *Model) viewChips() string {
	chips := make([]string, 0, len(m.assignees))
	for i, a := range m.assignees {
		style := m.styles.Chip
		if m.state.IsSelected(a) {
			style = m.styles.ChipSelected
		}
		if m.mode == ModeAssignee && i == m.chipCursor {
			style = style.Inherit(m.styles.ChipCursor)
		}
		chips = append(chips, style.Render(a))
	}

	label := m.styles.Label.Render("Assignees ")
	if m.mode == ModeAssignee {
		label = m.styles.InputPrompt.Render("Assignees ")
	}
	return label + lipgloss.JoinHorizontal(lipgloss.Top, chips...)
}

// summaryWidth returns the width left for the summary column.
func (m *Model) summaryWidth() int {
	fixed := keyWidth + parentWidth + typeWidth + statusWidth + assigneeWidth + dueWidth
	used := m.styles.App.GetHorizontalFrameSize() + cursorWidth + fixed + 6*columnGap
	return max(m.width-used, minSummary)
}

func (m *Model) viewGrid() string {
	if len(m.state.Rows) == 0 {
		return m.styles.Empty.Render(emptyMessage) + "\n"
	}

	var b strings.Builder
	b.WriteString(m.viewGridHeader())
	b.WriteString("\n")

	rows := m.visibleRows()
	end := min(m.offset+m.pageSize(), len(rows))
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderRow(rows[i], i == m.cursor))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) viewGridHeader() string {
	cols := []string{
		cell("Key", keyWidth),
		cell("Parent", parentWidth),
		cell("Summary", m.summaryWidth()),
		cell("Type", typeWidth),
		cell("Status", statusWidth),
		cell("Assignee", assigneeWidth),
		cell("Due Date", dueWidth),
	}
	return strings.Repeat(" ", cursorWidth) + m.styles.GridHeader.Render(strings.Join(cols, " "))
}

// renderRow renders a single grid row.
func (m *Model) renderRow(row domain.Row, selected bool) string {
	text := m.styles.RowNormal
	cursor := m.styles.CursorNormal.Render("  ")
	if selected {
		text = m.styles.RowSelected
		cursor = m.styles.CursorActive.Render("> ")
	}

	parent := row.ParentID()
	if parent == "" {
		parent = "-"
	}

	cols := []string{
		text.Render(cell(m.treeKey(row), keyWidth)),
		text.Render(cell(parent, parentWidth)),
		text.Render(cell(row.Summary, m.summaryWidth())),
		m.styles.TypeBadge(cell(row.Type, typeWidth-2)),
		m.styles.StatusBadge(cell(row.Status, statusWidth-2)),
		m.styles.AssigneeBadge(cell(row.Assignee, assigneeWidth-2)),
		text.Render(cell(row.DueDate, dueWidth)),
	}
	return cursor + strings.Join(cols, " ")
}

// treeKey returns the key indented by depth with an expand marker for parents.
func (m *Model) treeKey(row domain.Row) string {
	marker := ""
	if len(m.parents) > 0 {
		switch {
		case m.collapsed[row.ID]:
			marker = "▸ "
		case m.parents[row.ID]:
			marker = "▾ "
		default:
			marker = "  "
		}
	}
	return strings.Repeat("  ", row.Depth) + marker + row.Key
}

func (m *Model) viewFooter() string {
	var status string
	switch {
	case m.state.Loading:
		status = m.styles.Footer.Render("Searching...")
	case m.state.LastError != nil:
		status = m.styles.FooterHint.Render("Last search failed; see the log file for details")
	case m.state.Applied > 0:
		visible := len(m.visibleRows())
		status = m.styles.Footer.Render(fmt.Sprintf("%d of %d rows  %s  %s",
			visible, len(m.state.Rows), m.state.Category.Display(), m.elapsed.Round(time.Millisecond)))
	default:
		status = m.styles.FooterHint.Render("Press enter to search")
	}

	return status + "\n" + m.help.ShortHelpView(m.keys.ShortHelp())
}

func (m *Model) viewHelp() string {
	return m.viewHeader() + "\n" + m.styles.Help.Render(m.help.FullHelpView(m.keys.FullHelp()))
}

// cell truncates or pads s to exactly width terminal cells.
func cell(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}
