package domain

import "strconv"

// NotAvailable is displayed for rows without a due date.
const NotAvailable = "N/A"

// RowKind tells which level of the hierarchy a row came from.
type RowKind string

const (
	RowKindEpic    RowKind = "epic"
	RowKindTask    RowKind = "task"
	RowKindSubtask RowKind = "subtask"
	RowKindIssue   RowKind = "issue" // Row from a flat listing
)

// Row is one line of the hierarchical grid.
// ID is unique within a flattened sequence; Key is the tracker key as received.
// Parent is the ID of the parent row, or nil for top-level rows.
type Row struct {
	Parent   *string `json:"parent" yaml:"parent"`
	ID       string  `json:"id" yaml:"id"`
	Key      string  `json:"key" yaml:"key"`
	Summary  string  `json:"summary" yaml:"summary"`
	Status   string  `json:"status" yaml:"status"`
	Assignee string  `json:"assignee" yaml:"assignee"`
	Type     string  `json:"type" yaml:"type"`
	DueDate  string  `json:"due_date" yaml:"due_date"`
	Kind     RowKind `json:"-" yaml:"-"`
	Depth    int     `json:"-" yaml:"-"`
}

// IsRoot returns true if the row has no parent.
func (r Row) IsRoot() bool {
	return r.Parent == nil
}

// ParentID returns the parent ID, or "" for top-level rows.
func (r Row) ParentID() string {
	if r.Parent == nil {
		return ""
	}
	return *r.Parent
}

// Path returns the grid data path: [parent, id] for children, [id] for roots.
func (r Row) Path() []string {
	if r.Parent == nil {
		return []string{r.ID}
	}
	return []string{*r.Parent, r.ID}
}

// Flatten converts a hierarchy into grid rows.
//
// Each epic is followed by its tasks, and each task immediately by its
// subtasks, before moving on. A key seen earlier in the sequence gets a
// path-qualified ID ("<parent id>/<key>") so IDs stay unique and every
// parent reference resolves to exactly one row.
func Flatten(tree Tree) []Row {
	rows := make([]Row, 0, tree.Len())
	seen := make(map[string]bool, tree.Len())

	for _, epic := range tree.Epics {
		epicID := uniqueID(seen, epic.Key, nil)
		rows = append(rows, newRow(epicID, epic.Key, epic.Fields, nil, RowKindEpic, 0))

		for _, task := range epic.Tasks {
			taskParent := epicID
			taskID := uniqueID(seen, task.Key, &taskParent)
			rows = append(rows, newRow(taskID, task.Key, task.Fields, &taskParent, RowKindTask, 1))

			for _, sub := range task.Subtasks {
				subParent := taskID
				subID := uniqueID(seen, sub.Key, &subParent)
				rows = append(rows, newRow(subID, sub.Key, sub.Fields, &subParent, RowKindSubtask, 2))
			}
		}
	}
	return rows
}

// FlattenIssues converts a flat listing into parentless rows, keeping input order.
func FlattenIssues(issues []Issue) []Row {
	rows := make([]Row, 0, len(issues))
	seen := make(map[string]bool, len(issues))
	for _, issue := range issues {
		id := uniqueID(seen, issue.Key, nil)
		rows = append(rows, newRow(id, issue.Key, issue.Fields, nil, RowKindIssue, 0))
	}
	return rows
}

func newRow(id, key string, f Fields, parent *string, kind RowKind, depth int) Row {
	due := NotAvailable
	if f.DueDate != nil && *f.DueDate != "" {
		due = *f.DueDate
	}
	return Row{
		ID:       id,
		Key:      key,
		Summary:  f.Summary,
		Status:   f.Status,
		Assignee: f.Assignee,
		Type:     f.Type,
		DueDate:  due,
		Parent:   parent,
		Kind:     kind,
		Depth:    depth,
	}
}

// uniqueID returns key if unused, otherwise a path-qualified variant.
// Roots have no path to qualify with and get an occurrence suffix instead.
func uniqueID(seen map[string]bool, key string, parent *string) string {
	id := key
	if seen[id] && parent != nil {
		id = *parent + "/" + key
	}
	base := id
	for n := 2; seen[id]; n++ {
		id = base + "#" + strconv.Itoa(n)
	}
	seen[id] = true
	return id
}
