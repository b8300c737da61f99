package tui

import (
	"fmt"

	"github.com/boulangers/boulanger/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.keywordInput.Width = max(msg.Width-16, 10)
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case MsgSearchDone:
		m.state = domain.Reduce(m.state, domain.SearchSucceeded{Seq: msg.Seq, Rows: msg.Rows})
		if m.state.Applied != msg.Seq {
			m.logger.Debug("search", fmt.Sprintf("#%d discarded: superseded by #%d", msg.Seq, m.state.Issued))
			return m, nil
		}
		m.elapsed = msg.Elapsed
		m.applyRows()
		m.logger.Info("search", fmt.Sprintf("#%d applied %d rows in %s", msg.Seq, len(msg.Rows), msg.Elapsed))
		return m, nil

	case MsgSearchFailed:
		m.logger.Error("search", fmt.Sprintf("#%d failed: %v", msg.Seq, msg.Err))
		m.state = domain.Reduce(m.state, domain.SearchFailed{Seq: msg.Seq, Err: msg.Err})
		return m, nil
	}

	// Cursor blink and other component messages
	if m.mode == ModeKeyword {
		var cmd tea.Cmd
		m.keywordInput, cmd = m.keywordInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKeyMsg dispatches a key press to the handler of the current mode.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeNormal:
		return m.handleNormalMode(msg)
	case ModeKeyword:
		return m.handleKeywordMode(msg)
	case ModeAssignee:
		return m.handleAssigneeMode(msg)
	case ModeHelp:
		return m.handleHelpMode(msg)
	}

	return m, nil
}

// handleNormalMode handles keys in normal mode.
func (m *Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevPage):
		m.moveCursor(-m.pageSize())
		return m, nil

	case key.Matches(msg, m.keys.NextPage):
		m.moveCursor(m.pageSize())
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
		m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.cursor = len(m.visibleRows()) - 1
		m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keys.Keyword):
		m.mode = ModeKeyword
		return m, m.keywordInput.Focus()

	case key.Matches(msg, m.keys.Category):
		m.state = domain.Reduce(m.state, domain.CategorySelected{Category: m.state.Category.Next()})
		return m, nil

	case key.Matches(msg, m.keys.Assignees):
		if len(m.assignees) == 0 {
			return m, nil
		}
		m.mode = ModeAssignee
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		m.toggleCollapsed()
		return m, nil

	case key.Matches(msg, m.keys.Search):
		return m, m.startSearch()
	}

	return m, nil
}

// handleKeywordMode handles keys while the keyword input has focus.
func (m *Model) handleKeywordMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit

	case key.Matches(msg, m.keys.Escape):
		m.mode = ModeNormal
		m.keywordInput.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		m.mode = ModeNormal
		m.keywordInput.Blur()
		return m, m.startSearch()
	}

	var cmd tea.Cmd
	m.keywordInput, cmd = m.keywordInput.Update(msg)
	if v := m.keywordInput.Value(); v != m.state.Keyword {
		m.state = domain.Reduce(m.state, domain.KeywordChanged{Keyword: v})
	}
	return m, cmd
}

// handleAssigneeMode handles keys while selecting assignee chips.
func (m *Model) handleAssigneeMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit

	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Assignees):
		m.mode = ModeNormal
		return m, nil

	case key.Matches(msg, m.keys.Left):
		m.chipCursor = (m.chipCursor - 1 + len(m.assignees)) % len(m.assignees)
		return m, nil

	case key.Matches(msg, m.keys.Right):
		m.chipCursor = (m.chipCursor + 1) % len(m.assignees)
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		m.state = domain.Reduce(m.state, domain.AssigneeToggled{Assignee: m.assignees[m.chipCursor]})
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		m.mode = ModeNormal
		return m, m.startSearch()
	}

	return m, nil
}

// handleHelpMode handles keys in help mode.
func (m *Model) handleHelpMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Quit):
		m.mode = ModeNormal
		return m, nil
	}

	return m, nil
}
