package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DefaultAssignee is reported for issues without an assignee.
const DefaultAssignee = "Unassigned"

// Fields holds the display attributes shared by every issue node.
// Summary, Status, Assignee and Type are required on the wire.
type Fields struct {
	DueDate     *string  `json:"due_date"`
	StartDate   *string  `json:"start_date,omitempty"`
	Summary     string   `json:"summary"`
	Status      string   `json:"status"`
	Assignee    string   `json:"assignee"`
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Reporter    string   `json:"reporter,omitempty"`
	Priority    string   `json:"priority,omitempty"`
	Created     string   `json:"created,omitempty"`
	Updated     string   `json:"updated,omitempty"`
	Labels      []string `json:"labels,omitempty"`
	Components  []string `json:"components,omitempty"`
}

// Issue is a single tracker issue as returned by a flat listing.
// Parent is the key of the parent issue (epic for tasks, task for subtasks).
type Issue struct {
	Fields
	Key    string `json:"key"`
	Parent string `json:"parent,omitempty"`
}

// Epic is a top-level node of the hierarchy.
type Epic struct {
	Key    string
	Tasks  []Task
	Fields Fields
}

// Task is a second-level node, child of an Epic.
type Task struct {
	Key      string
	Subtasks []Subtask
	Fields   Fields
}

// Subtask is a leaf node, child of a Task.
type Subtask struct {
	Key    string
	Fields Fields
}

// Tree is the nested epic -> task -> subtask result of a hierarchy query.
// Epics, tasks and subtasks keep the key order of the JSON document they
// were decoded from.
type Tree struct {
	Epics []Epic
}

// Len returns the total number of nodes in the tree.
func (t Tree) Len() int {
	n := 0
	for _, e := range t.Epics {
		n++
		for _, task := range e.Tasks {
			n += 1 + len(task.Subtasks)
		}
	}
	return n
}

// UnmarshalJSON decodes a mapping of epic key -> epic object, preserving key order.
// A JSON null decodes to an empty tree.
func (t *Tree) UnmarshalJSON(data []byte) error {
	var epics []Epic
	err := decodeObject(data, func(key string, raw json.RawMessage) error {
		epic, err := decodeEpic(key, raw)
		if err != nil {
			return err
		}
		epics = append(epics, epic)
		return nil
	})
	if err != nil {
		return err
	}
	t.Epics = epics
	return nil
}

// MarshalJSON encodes the tree as an ordered mapping of epic key -> epic object.
func (t Tree) MarshalJSON() ([]byte, error) {
	return marshalObject(len(t.Epics), func(i int) (string, any) {
		e := t.Epics[i]
		return e.Key, struct {
			Fields
			Tasks taskList `json:"tasks"`
		}{e.Fields, taskList(e.Tasks)}
	})
}

type taskList []Task

func (l taskList) MarshalJSON() ([]byte, error) {
	return marshalObject(len(l), func(i int) (string, any) {
		task := l[i]
		return task.Key, struct {
			Fields
			Subtasks subtaskList `json:"subtasks"`
		}{task.Fields, subtaskList(task.Subtasks)}
	})
}

type subtaskList []Subtask

func (l subtaskList) MarshalJSON() ([]byte, error) {
	return marshalObject(len(l), func(i int) (string, any) {
		return l[i].Key, l[i].Fields
	})
}

// UnmarshalJSON decodes a flat issue, enforcing the required fields.
func (i *Issue) UnmarshalJSON(data []byte) error {
	var head struct {
		Key    string `json:"key"`
		Parent string `json:"parent"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	fields, _, err := decodeNode(head.Key, data)
	if err != nil {
		return err
	}
	i.Key = head.Key
	i.Parent = head.Parent
	i.Fields = fields
	return nil
}

func decodeEpic(key string, data []byte) (Epic, error) {
	fields, children, err := decodeNode(key, data)
	if err != nil {
		return Epic{}, err
	}
	epic := Epic{Key: key, Fields: fields}
	err = decodeObject(children.Tasks, func(taskKey string, raw json.RawMessage) error {
		task, err := decodeTask(taskKey, raw)
		if err != nil {
			return err
		}
		epic.Tasks = append(epic.Tasks, task)
		return nil
	})
	if err != nil {
		return Epic{}, fmt.Errorf("epic %s: %w", key, err)
	}
	return epic, nil
}

func decodeTask(key string, data []byte) (Task, error) {
	fields, children, err := decodeNode(key, data)
	if err != nil {
		return Task{}, err
	}
	task := Task{Key: key, Fields: fields}
	err = decodeObject(children.Subtasks, func(subKey string, raw json.RawMessage) error {
		subFields, _, err := decodeNode(subKey, raw)
		if err != nil {
			return err
		}
		task.Subtasks = append(task.Subtasks, Subtask{Key: subKey, Fields: subFields})
		return nil
	})
	if err != nil {
		return Task{}, fmt.Errorf("task %s: %w", key, err)
	}
	return task, nil
}

// nodeChildren holds the raw child mappings of a node, if present.
type nodeChildren struct {
	Tasks    json.RawMessage `json:"tasks"`
	Subtasks json.RawMessage `json:"subtasks"`
}

// wireFields mirrors Fields with pointers so absent required values can be detected.
type wireFields struct {
	Summary  *string `json:"summary"`
	Status   *string `json:"status"`
	Assignee *string `json:"assignee"`
	Type     *string `json:"type"`
	nodeChildren
}

// decodeNode decodes the fields of one issue node and returns its raw children.
func decodeNode(key string, data []byte) (Fields, nodeChildren, error) {
	var wire wireFields
	if err := json.Unmarshal(data, &wire); err != nil {
		return Fields{}, nodeChildren{}, fmt.Errorf("decode issue %s: %w", key, err)
	}
	required := []struct {
		name  string
		value *string
	}{
		{"summary", wire.Summary},
		{"status", wire.Status},
		{"assignee", wire.Assignee},
		{"type", wire.Type},
	}
	for _, r := range required {
		if r.value == nil {
			return Fields{}, nodeChildren{}, fmt.Errorf("%w: %s has no %s", ErrMalformedIssue, key, r.name)
		}
	}

	var fields Fields
	if err := json.Unmarshal(data, &fields); err != nil {
		return Fields{}, nodeChildren{}, fmt.Errorf("decode issue %s: %w", key, err)
	}
	return fields, wire.nodeChildren, nil
}

// decodeObject walks a JSON object in document order.
// Empty input and JSON null are treated as an empty object.
func decodeObject(data []byte, fn func(key string, value json.RawMessage) error) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTree, err)
	}
	if tok == nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("%w: expected object, got %v", ErrInvalidTree, tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidTree, err)
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("%w: unexpected token %v", ErrInvalidTree, tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidTree, err)
		}
		if err := fn(key, raw); err != nil {
			return err
		}
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTree, err)
	}
	return nil
}

// marshalObject writes n key/value entries as a JSON object in the given order.
func marshalObject(n int, entry func(i int) (string, any)) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i := 0; i < n; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, value := entry(i)
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
