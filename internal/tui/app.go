package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/boulangers/boulanger/internal/app"
	"github.com/boulangers/boulanger/internal/domain"
	"github.com/boulangers/boulanger/internal/usecase"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// chromeHeight is the number of lines used by everything except grid rows.
const chromeHeight = 14

// Model is the main bubbletea model for the TUI.
type Model struct {
	// Dependencies (pointers first for alignment)
	container *app.Container
	search    *usecase.SearchIssues
	logger    domain.Logger

	// State (maps and slices - contain pointers)
	collapsed map[string]bool // Row IDs whose descendants are hidden
	parents   map[string]bool // Row IDs that have at least one child
	assignees []string        // Selectable assignee chips

	// Components (structs with pointers)
	state        domain.SearchState
	keys         KeyMap
	styles       Styles
	help         help.Model
	keywordInput textinput.Model

	// Numeric state (smaller types last)
	elapsed    time.Duration
	seq        uint64
	mode       Mode
	width      int
	height     int
	cursor     int
	offset     int
	chipCursor int
}

// New creates a new TUI Model with the given container.
func New(c *app.Container) *Model {
	ki := textinput.New()
	ki.Placeholder = "Search keyword..."
	ki.CharLimit = 200
	ki.Prompt = ""

	logger := c.FileLog
	if logger == nil {
		logger = domain.NopLogger{}
	}

	return &Model{
		container:    c,
		search:       c.SearchIssuesUseCase(),
		logger:       logger,
		state:        domain.NewSearchState(),
		assignees:    c.AppConfig.Assignees.Names,
		collapsed:    make(map[string]bool),
		parents:      make(map[string]bool),
		keys:         DefaultKeyMap(),
		styles:       DefaultStyles(),
		help:         help.New(),
		keywordInput: ki,
		mode:         ModeNormal,
	}
}

// Init initializes the model.
// No request is sent until the first explicit search.
func (m *Model) Init() tea.Cmd {
	return nil
}

// State returns the current search state.
func (m *Model) State() domain.SearchState {
	return m.state
}

// startSearch issues a new search for the current inputs.
// The response is tagged with its sequence number so that only the latest
// search is applied when responses arrive out of order.
func (m *Model) startSearch() tea.Cmd {
	m.seq++
	seq := m.seq
	m.state = domain.Reduce(m.state, domain.SearchIssued{Seq: seq})

	in := usecase.SearchIssuesInput{
		Keyword:   m.state.Keyword,
		Category:  m.state.Category,
		Assignees: m.state.Assignees,
	}
	req := m.state.Request(m.container.QueryBuilder())
	m.logger.Debug("search", fmt.Sprintf("#%d GET %s", seq, req.URL(m.container.AppConfig.Backend.BaseURL)))

	uc := m.search
	return func() tea.Msg {
		out, err := uc.Execute(context.Background(), in)
		if err != nil {
			return MsgSearchFailed{Seq: seq, Err: err}
		}
		return MsgSearchDone{Seq: seq, Rows: out.Rows, Elapsed: out.Elapsed}
	}
}

// applyRows resets the grid after a new response has been applied.
func (m *Model) applyRows() {
	m.collapsed = make(map[string]bool)
	m.parents = make(map[string]bool, len(m.state.Rows))
	for _, r := range m.state.Rows {
		if p := r.ParentID(); p != "" {
			m.parents[p] = true
		}
	}
	m.cursor = 0
	m.offset = 0
}

// visibleRows returns the rows not hidden below a collapsed ancestor.
// Rows are in display order, so a parent is always visited before its children.
func (m *Model) visibleRows() []domain.Row {
	if len(m.collapsed) == 0 {
		return m.state.Rows
	}

	hidden := make(map[string]bool)
	rows := make([]domain.Row, 0, len(m.state.Rows))
	for _, r := range m.state.Rows {
		if p := r.ParentID(); p != "" && (m.collapsed[p] || hidden[p]) {
			hidden[r.ID] = true
			continue
		}
		rows = append(rows, r)
	}
	return rows
}

// SelectedRow returns the row under the cursor.
func (m *Model) SelectedRow() (domain.Row, bool) {
	rows := m.visibleRows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return domain.Row{}, false
	}
	return rows[m.cursor], true
}

// toggleCollapsed collapses or expands the selected row if it has children.
func (m *Model) toggleCollapsed() {
	row, ok := m.SelectedRow()
	if !ok || !m.parents[row.ID] {
		return
	}
	if m.collapsed[row.ID] {
		delete(m.collapsed, row.ID)
	} else {
		m.collapsed[row.ID] = true
	}
	m.clampCursor()
}

// pageSize returns the number of grid rows that fit on screen.
func (m *Model) pageSize() int {
	return max(m.height-chromeHeight, 1)
}

// moveCursor moves the cursor by delta rows and keeps it on screen.
func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := len(m.visibleRows())
	m.cursor = min(max(m.cursor, 0), max(n-1, 0))

	page := m.pageSize()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+page {
		m.offset = m.cursor - page + 1
	}
	m.offset = min(max(m.offset, 0), max(n-page, 0))
}
