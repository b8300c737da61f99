package tui

import (
	"errors"
	"testing"
	"time"

	"github.com/boulangers/boulanger/internal/app"
	"github.com/boulangers/boulanger/internal/domain"
	"github.com/boulangers/boulanger/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fields(summary, typ string) domain.Fields {
	return domain.Fields{Summary: summary, Status: "In Progress", Assignee: "jenn.y", Type: typ}
}

// sampleTree has one epic with a task and a subtask, followed by a bare epic.
func sampleTree() *domain.SearchResult {
	return &domain.SearchResult{
		IsHierarchy: true,
		Tree: domain.Tree{Epics: []domain.Epic{
			{
				Key:    "AIP-1",
				Fields: fields("Checkout", "Epic"),
				Tasks: []domain.Task{{
					Key:      "AIP-2",
					Fields:   fields("Payment form", "Task"),
					Subtasks: []domain.Subtask{{Key: "AIP-3", Fields: fields("Card input", "Subtask")}},
				}},
			},
			{Key: "AIP-9", Fields: fields("Search", "Epic")},
		}},
	}
}

type testEnv struct {
	model  *Model
	source *testutil.MockIssueSource
	logger *testutil.MockLogger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	source := &testutil.MockIssueSource{Result: sampleTree()}
	clock := &testutil.MockClock{NowTime: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Step: 250 * time.Millisecond}
	c := app.NewWithDeps(app.Config{}, nil, source, nil, clock, nil)
	logger := &testutil.MockLogger{}
	c.FileLog = logger

	m := New(c)
	m.Update(tea.WindowSizeMsg{Width: 160, Height: 40})
	return &testEnv{model: m, source: source, logger: logger}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEscape}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
)

// press sends a key and returns the resulting command.
func (e *testEnv) press(msg tea.KeyMsg) tea.Cmd {
	_, cmd := e.model.Update(msg)
	return cmd
}

// search presses enter and delivers the response to the model.
func (e *testEnv) search(t *testing.T) {
	t.Helper()
	cmd := e.press(keyEnter)
	require.NotNil(t, cmd)
	e.model.Update(cmd())
}

func TestUpdate_SearchAppliesRows(t *testing.T) {
	e := newTestEnv(t)

	cmd := e.press(keyEnter)
	require.NotNil(t, cmd)
	assert.True(t, e.model.State().Loading)

	e.model.Update(cmd())

	state := e.model.State()
	assert.False(t, state.Loading)
	require.Len(t, state.Rows, 4)
	assert.Equal(t, []string{"AIP-1", "AIP-2", "AIP-3", "AIP-9"},
		[]string{state.Rows[0].ID, state.Rows[1].ID, state.Rows[2].ID, state.Rows[3].ID})
	assert.Equal(t, 250*time.Millisecond, e.model.elapsed)

	req := e.source.LastRequest()
	assert.Equal(t, "/project/AIP/hierarchy", req.Path)
	assert.Equal(t, map[string]string{"keyword": "", "assignees": ""}, req.Query)
}

func TestUpdate_NoSearchWithoutAction(t *testing.T) {
	e := newTestEnv(t)

	assert.Nil(t, e.model.Init())
	e.press(keyRunes("c"))
	e.press(keyRunes("/"))
	e.press(keyRunes("x"))

	assert.Empty(t, e.source.Requests)
}

func TestUpdate_StaleResponseDiscarded(t *testing.T) {
	e := newTestEnv(t)
	older := []domain.Row{{ID: "OLD-1", Key: "OLD-1"}}
	newer := []domain.Row{{ID: "NEW-1", Key: "NEW-1"}}

	e.model.startSearch()
	e.model.startSearch()

	e.model.Update(MsgSearchDone{Seq: 2, Rows: newer})
	e.model.Update(MsgSearchDone{Seq: 1, Rows: older})

	assert.Equal(t, newer, e.model.State().Rows)
	assert.Contains(t, e.logger.Snapshot(), "[DEBUG] [search] #1 discarded: superseded by #2")
}

func TestUpdate_StaleResponseBeforeLatest(t *testing.T) {
	e := newTestEnv(t)
	older := []domain.Row{{ID: "OLD-1", Key: "OLD-1"}}

	e.model.startSearch()
	e.model.startSearch()
	e.model.Update(MsgSearchDone{Seq: 1, Rows: older})

	state := e.model.State()
	assert.Empty(t, state.Rows)
	assert.True(t, state.Loading, "still waiting for the latest search")
}

func TestUpdate_SearchFailureKeepsRows(t *testing.T) {
	e := newTestEnv(t)
	e.search(t)
	require.Len(t, e.model.State().Rows, 4)

	e.source.FetchErr = errors.New("connection refused")
	e.search(t)

	state := e.model.State()
	assert.Len(t, state.Rows, 4)
	assert.False(t, state.Loading)
	require.Error(t, state.LastError)

	entries := e.logger.Snapshot()
	assert.Contains(t, entries[len(entries)-1], "[ERROR] [search] #2 failed:")
	assert.Contains(t, entries[len(entries)-1], "connection refused")
}

func TestUpdate_KeywordInput(t *testing.T) {
	e := newTestEnv(t)

	e.press(keyRunes("/"))
	assert.Equal(t, ModeKeyword, e.model.mode)

	for _, r := range "log q" {
		e.press(keyRunes(string(r)))
	}
	assert.Equal(t, "log q", e.model.State().Keyword)
	assert.Equal(t, ModeKeyword, e.model.mode, "q is typed, not quit")

	cmd := e.press(keyEnter)
	require.NotNil(t, cmd)
	assert.Equal(t, ModeNormal, e.model.mode)
	e.model.Update(cmd())

	assert.Equal(t, "log q", e.source.LastRequest().Query["keyword"])
}

func TestUpdate_KeywordEscapeKeepsValue(t *testing.T) {
	e := newTestEnv(t)

	e.press(keyRunes("/"))
	e.press(keyRunes("api"))
	cmd := e.press(keyEsc)

	assert.Nil(t, cmd)
	assert.Equal(t, ModeNormal, e.model.mode)
	assert.Equal(t, "api", e.model.State().Keyword)
}

func TestUpdate_CategoryCycle(t *testing.T) {
	e := newTestEnv(t)

	e.press(keyRunes("c"))
	assert.Equal(t, domain.CategoryEpic, e.model.State().Category)

	e.source.Result = &domain.SearchResult{Issues: []domain.Issue{{Key: "AIP-1", Fields: fields("Checkout", "Epic")}}}
	e.search(t)
	assert.Equal(t, "/project/AIP/epics", e.source.LastRequest().Path)
	assert.Len(t, e.model.State().Rows, 1)

	for range 4 {
		e.press(keyRunes("c"))
	}
	assert.Equal(t, domain.CategoryAll, e.model.State().Category)
}

func TestUpdate_AssigneeChips(t *testing.T) {
	e := newTestEnv(t)

	e.press(keyRunes("a"))
	require.Equal(t, ModeAssignee, e.model.mode)

	e.press(keyRight)
	e.press(keySpace) // dahlia.n
	e.press(keyRight)
	e.press(keySpace) // dylan.1
	assert.Equal(t, []string{"dahlia.n", "dylan.1"}, e.model.State().Assignees)

	e.press(keyLeft)
	e.press(keySpace) // deselect dahlia.n
	assert.Equal(t, []string{"dylan.1"}, e.model.State().Assignees)

	cmd := e.press(keyEnter)
	require.NotNil(t, cmd)
	assert.Equal(t, ModeNormal, e.model.mode)
	e.model.Update(cmd())
	assert.Equal(t, "dylan.1", e.source.LastRequest().Query["assignees"])
}

func TestUpdate_AssigneeCursorWraps(t *testing.T) {
	e := newTestEnv(t)

	e.press(keyRunes("a"))
	e.press(keyLeft)
	assert.Equal(t, len(e.model.assignees)-1, e.model.chipCursor)

	e.press(keyRight)
	assert.Equal(t, 0, e.model.chipCursor)

	e.press(keyEsc)
	assert.Equal(t, ModeNormal, e.model.mode)
}

func TestUpdate_CollapseExpand(t *testing.T) {
	e := newTestEnv(t)
	e.search(t)

	e.press(keySpace) // collapse AIP-1
	assert.Len(t, e.model.visibleRows(), 2)

	e.press(keySpace) // expand AIP-1
	assert.Len(t, e.model.visibleRows(), 4)

	e.press(keyRunes("j"))
	e.press(keySpace) // collapse AIP-2
	rows := e.model.visibleRows()
	require.Len(t, rows, 3)
	assert.Equal(t, "AIP-9", rows[2].ID)

	e.press(keyRunes("j"))
	row, ok := e.model.SelectedRow()
	require.True(t, ok)
	assert.Equal(t, "AIP-9", row.ID)
	e.press(keySpace) // leaf rows do not collapse
	assert.Len(t, e.model.visibleRows(), 3)
}

func TestUpdate_CollapseResetOnNewRows(t *testing.T) {
	e := newTestEnv(t)
	e.search(t)
	e.press(keySpace)
	require.Len(t, e.model.visibleRows(), 2)

	e.search(t)
	assert.Len(t, e.model.visibleRows(), 4)
}

func TestUpdate_CursorNavigation(t *testing.T) {
	e := newTestEnv(t)
	e.search(t)

	for range 10 {
		e.press(keyRunes("j"))
	}
	assert.Equal(t, 3, e.model.cursor)

	e.press(keyRunes("g"))
	assert.Equal(t, 0, e.model.cursor)

	e.press(keyRunes("G"))
	assert.Equal(t, 3, e.model.cursor)

	e.press(keyRunes("k"))
	assert.Equal(t, 2, e.model.cursor)
}

func TestUpdate_CursorScrollsSmallWindow(t *testing.T) {
	e := newTestEnv(t)
	e.model.Update(tea.WindowSizeMsg{Width: 160, Height: chromeHeight + 2})
	e.search(t)

	e.press(keyRunes("G"))
	assert.Equal(t, 3, e.model.cursor)
	assert.Equal(t, 2, e.model.offset)

	e.press(keyRunes("g"))
	assert.Equal(t, 0, e.model.offset)
}

func TestUpdate_Quit(t *testing.T) {
	e := newTestEnv(t)

	cmd := e.press(keyRunes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestUpdate_HelpMode(t *testing.T) {
	e := newTestEnv(t)

	e.press(keyRunes("?"))
	assert.Equal(t, ModeHelp, e.model.mode)

	cmd := e.press(keyRunes("q"))
	assert.Nil(t, cmd, "q closes help instead of quitting")
	assert.Equal(t, ModeNormal, e.model.mode)
}
