package domain

// HierarchyStats reports what BuildHierarchy could not place.
type HierarchyStats struct {
	OrphanTasks      int // Tasks without a known epic, promoted to top level
	DroppedSubtasks  int // Subtasks without a known parent task
	IgnoredOtherType int // Issues that are neither epic, task nor subtask
}

// BuildHierarchy groups a flat issue list into an epic -> task -> subtask tree.
//
// Epics become roots in input order. A task attaches to its parent epic when
// that epic is present; otherwise it becomes a root of its own with no tasks.
// A subtask attaches to its parent task when that task is present, otherwise
// it is dropped. Stories and other types are not part of the hierarchy.
func BuildHierarchy(issues []Issue) (Tree, HierarchyStats) {
	var stats HierarchyStats
	var epics, tasks, subtasks []Issue
	for _, issue := range issues {
		switch NormalizeIssueType(issue.Type) {
		case IssueTypeEpic:
			epics = append(epics, issue)
		case IssueTypeTask:
			tasks = append(tasks, issue)
		case IssueTypeSubtask:
			subtasks = append(subtasks, issue)
		default:
			stats.IgnoredOtherType++
		}
	}

	roots := make([]Epic, 0, len(epics))
	epicIndex := make(map[string]int, len(epics))
	for _, e := range epics {
		if _, dup := epicIndex[e.Key]; dup {
			continue
		}
		epicIndex[e.Key] = len(roots)
		roots = append(roots, Epic{Key: e.Key, Fields: nodeFields(e.Fields)})
	}

	// taskLoc locates a placed task: root index and task index (-1 for promoted roots).
	type taskLoc struct{ root, task int }
	taskIndex := make(map[string]taskLoc, len(tasks))
	for _, t := range tasks {
		if _, dup := taskIndex[t.Key]; dup {
			continue
		}
		if ei, ok := epicIndex[t.Parent]; ok && t.Parent != "" {
			roots[ei].Tasks = append(roots[ei].Tasks, Task{Key: t.Key, Fields: nodeFields(t.Fields)})
			taskIndex[t.Key] = taskLoc{root: ei, task: len(roots[ei].Tasks) - 1}
			continue
		}
		stats.OrphanTasks++
		taskIndex[t.Key] = taskLoc{root: len(roots), task: -1}
		roots = append(roots, Epic{Key: t.Key, Fields: nodeFields(t.Fields)})
	}

	for _, s := range subtasks {
		loc, ok := taskIndex[s.Parent]
		if !ok || s.Parent == "" || loc.task < 0 {
			stats.DroppedSubtasks++
			continue
		}
		task := &roots[loc.root].Tasks[loc.task]
		task.Subtasks = append(task.Subtasks, Subtask{Key: s.Key, Fields: nodeFields(s.Fields)})
	}

	return Tree{Epics: roots}, stats
}

func nodeFields(f Fields) Fields {
	if f.Assignee == "" {
		f.Assignee = DefaultAssignee
	}
	if f.Type == "" {
		f.Type = IssueTypeDefault
	}
	return f
}
