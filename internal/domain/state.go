package domain

import "slices"

// SearchState is the complete UI state of the issue viewer.
// It is treated as immutable: Reduce returns a new value and never
// modifies slices reachable from its input.
type SearchState struct {
	LastError error
	Keyword   string
	Category  Category
	Assignees []string // Selected assignees in selection order
	Rows      []Row    // Rows of the last applied response
	Issued    uint64   // Sequence number of the most recent search
	Applied   uint64   // Sequence number of the response shown in Rows
	Loading   bool
}

// NewSearchState returns the initial state: empty keyword, category all, no filters.
func NewSearchState() SearchState {
	return SearchState{Category: CategoryAll}
}

// IsSelected reports whether an assignee is currently selected.
func (s SearchState) IsSelected(assignee string) bool {
	return slices.Contains(s.Assignees, assignee)
}

// Request builds the backend request for the current inputs.
func (s SearchState) Request(b QueryBuilder) Request {
	return b.Build(s.Keyword, s.Category, s.Assignees)
}

// SearchEvent is the sealed set of inputs to Reduce.
//
// go-sumtype:decl SearchEvent
type SearchEvent interface {
	searchEvent()
}

// KeywordChanged replaces the search keyword.
type KeywordChanged struct {
	Keyword string
}

// CategorySelected replaces the category filter.
type CategorySelected struct {
	Category Category
}

// AssigneeToggled selects an unselected assignee or deselects a selected one.
type AssigneeToggled struct {
	Assignee string
}

// SearchIssued records that a request with sequence number Seq was sent.
type SearchIssued struct {
	Seq uint64
}

// SearchSucceeded delivers the rows of response Seq.
type SearchSucceeded struct {
	Rows []Row
	Seq  uint64
}

// SearchFailed delivers the failure of response Seq.
type SearchFailed struct {
	Err error
	Seq uint64
}

func (KeywordChanged) searchEvent()   {}
func (CategorySelected) searchEvent() {}
func (AssigneeToggled) searchEvent()  {}
func (SearchIssued) searchEvent()     {}
func (SearchSucceeded) searchEvent()  {}
func (SearchFailed) searchEvent()     {}

// Reduce applies an event to a state and returns the next state.
//
// Only the response to the most recently issued search is applied; responses
// to older searches are discarded whenever they arrive. A failed search keeps
// the previous rows.
func Reduce(s SearchState, ev SearchEvent) SearchState {
	switch ev := ev.(type) {
	case KeywordChanged:
		s.Keyword = ev.Keyword
	case CategorySelected:
		s.Category = ev.Category
	case AssigneeToggled:
		if s.IsSelected(ev.Assignee) {
			s.Assignees = slices.DeleteFunc(slices.Clone(s.Assignees), func(a string) bool {
				return a == ev.Assignee
			})
		} else {
			s.Assignees = append(slices.Clone(s.Assignees), ev.Assignee)
		}
	case SearchIssued:
		if ev.Seq > s.Issued {
			s.Issued = ev.Seq
			s.Loading = true
		}
	case SearchSucceeded:
		if ev.Seq != s.Issued {
			return s
		}
		s.Rows = ev.Rows
		s.Applied = ev.Seq
		s.Loading = false
		s.LastError = nil
	case SearchFailed:
		if ev.Seq != s.Issued {
			return s
		}
		s.Loading = false
		s.LastError = ev.Err
	}
	return s
}
