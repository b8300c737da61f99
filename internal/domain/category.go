package domain

import "strings"

// Category selects which backend listing a search targets.
type Category string

const (
	CategoryAll     Category = "all"     // Full epic -> task -> subtask hierarchy
	CategoryEpic    Category = "epic"    // Flat list of epics
	CategoryTask    Category = "task"    // Flat list of tasks
	CategorySubtask Category = "subtask" // Flat list of subtasks
	CategoryStory   Category = "story"   // Flat list of stories
)

// AllCategories returns the selectable categories in display order.
func AllCategories() []Category {
	return []Category{
		CategoryAll,
		CategoryEpic,
		CategoryTask,
		CategorySubtask,
		CategoryStory,
	}
}

// categorySuffixes maps each known category to its endpoint suffix.
var categorySuffixes = map[Category]string{
	CategoryAll:     "/hierarchy",
	CategoryEpic:    "/epics",
	CategoryTask:    "/tasks",
	CategorySubtask: "/subtasks",
	CategoryStory:   "/stories",
}

// ParseCategory converts user input into a Category.
// Matching is case-insensitive. Unknown input is returned as-is so callers
// can still build a (degenerate) request from it.
func ParseCategory(s string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := categorySuffixes[c]; ok {
		return c
	}
	return Category(s)
}

// IsValid reports whether the category is one of the known values.
func (c Category) IsValid() bool {
	_, ok := categorySuffixes[c]
	return ok
}

// Suffix returns the endpoint path suffix, or "" for unknown categories.
func (c Category) Suffix() string {
	return categorySuffixes[c]
}

// IsHierarchy reports whether the category returns a nested tree rather than a flat list.
func (c Category) IsHierarchy() bool {
	return c == CategoryAll
}

// IssueType returns the tracker issue type listed by a flat category.
// It returns "" for CategoryAll and unknown categories.
func (c Category) IssueType() string {
	switch c {
	case CategoryEpic:
		return IssueTypeEpic
	case CategoryTask:
		return IssueTypeTask
	case CategorySubtask:
		return IssueTypeSubtask
	case CategoryStory:
		return IssueTypeStory
	case CategoryAll:
		return ""
	}
	return ""
}

// Display returns a human-readable label for the category.
func (c Category) Display() string {
	switch c {
	case CategoryAll:
		return "All"
	case CategoryEpic:
		return "Epic"
	case CategoryTask:
		return "Task"
	case CategorySubtask:
		return "Subtask"
	case CategoryStory:
		return "Story"
	}
	return string(c)
}

// Next returns the category after c in display order, wrapping around.
// Unknown categories move to CategoryAll.
func (c Category) Next() Category {
	all := AllCategories()
	for i, v := range all {
		if v == c {
			return all[(i+1)%len(all)]
		}
	}
	return CategoryAll
}

// Issue type names as reported by the tracker.
const (
	IssueTypeEpic    = "Epic"
	IssueTypeTask    = "Task"
	IssueTypeSubtask = "Subtask"
	IssueTypeStory   = "Story"
	IssueTypeDefault = "Issue"
)

// NormalizeIssueType maps tracker spellings onto the canonical type names.
// Jira reports subtasks as "Sub-task"; anything unrecognised is returned unchanged.
func NormalizeIssueType(t string) string {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case "epic":
		return IssueTypeEpic
	case "task":
		return IssueTypeTask
	case "subtask", "sub-task", "sub task":
		return IssueTypeSubtask
	case "story":
		return IssueTypeStory
	case "":
		return IssueTypeDefault
	}
	return t
}
