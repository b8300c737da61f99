package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTree_UnmarshalJSON_PreservesKeyOrder(t *testing.T) {
	// Keys deliberately out of lexical order.
	data := []byte(`{
		"AIP-9": {"summary":"nine","status":"Open","assignee":"a","type":"Epic",
			"tasks": {
				"AIP-20": {"summary":"t20","status":"Open","assignee":"a","type":"Task",
					"subtasks": {"AIP-31": {"summary":"s31","status":"Open","assignee":"a","type":"Subtask"},
					             "AIP-30": {"summary":"s30","status":"Open","assignee":"a","type":"Subtask"}}},
				"AIP-10": {"summary":"t10","status":"Open","assignee":"a","type":"Task"}
			}},
		"AIP-1": {"summary":"one","status":"Done","assignee":"b","type":"Epic","due_date":"2024-12-31"}
	}`)

	var tree Tree
	require.NoError(t, json.Unmarshal(data, &tree))

	require.Len(t, tree.Epics, 2)
	assert.Equal(t, "AIP-9", tree.Epics[0].Key)
	assert.Equal(t, "AIP-1", tree.Epics[1].Key)
	require.Len(t, tree.Epics[0].Tasks, 2)
	assert.Equal(t, "AIP-20", tree.Epics[0].Tasks[0].Key)
	assert.Equal(t, "AIP-10", tree.Epics[0].Tasks[1].Key)
	require.Len(t, tree.Epics[0].Tasks[0].Subtasks, 2)
	assert.Equal(t, "AIP-31", tree.Epics[0].Tasks[0].Subtasks[0].Key)
	assert.Equal(t, "AIP-30", tree.Epics[0].Tasks[0].Subtasks[1].Key)
	require.NotNil(t, tree.Epics[1].Fields.DueDate)
	assert.Equal(t, "2024-12-31", *tree.Epics[1].Fields.DueDate)
	assert.Equal(t, 6, tree.Len())
}

func TestTree_UnmarshalJSON_AbsentAndNullChildren(t *testing.T) {
	data := []byte(`{
		"E1": {"summary":"e","status":"Open","assignee":"a","type":"Epic"},
		"E2": {"summary":"e","status":"Open","assignee":"a","type":"Epic","tasks":null},
		"E3": {"summary":"e","status":"Open","assignee":"a","type":"Epic","tasks":{}}
	}`)

	var tree Tree
	require.NoError(t, json.Unmarshal(data, &tree))

	require.Len(t, tree.Epics, 3)
	for _, e := range tree.Epics {
		assert.Empty(t, e.Tasks)
	}
}

func TestTree_UnmarshalJSON_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{
			name:    "missing summary",
			data:    `{"E1": {"status":"Open","assignee":"a","type":"Epic"}}`,
			wantErr: ErrMalformedIssue,
		},
		{
			name:    "missing type on nested subtask",
			data:    `{"E1": {"summary":"e","status":"Open","assignee":"a","type":"Epic","tasks":{"T1":{"summary":"t","status":"Open","assignee":"a","type":"Task","subtasks":{"S1":{"summary":"s","status":"Open","assignee":"a"}}}}}}`,
			wantErr: ErrMalformedIssue,
		},
		{
			name:    "null assignee",
			data:    `{"E1": {"summary":"e","status":"Open","assignee":null,"type":"Epic"}}`,
			wantErr: ErrMalformedIssue,
		},
		{
			name:    "tasks is an array",
			data:    `{"E1": {"summary":"e","status":"Open","assignee":"a","type":"Epic","tasks":[]}}`,
			wantErr: ErrInvalidTree,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tree Tree
			err := json.Unmarshal([]byte(tt.data), &tree)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTree_UnmarshalJSON_Null(t *testing.T) {
	var tree Tree
	require.NoError(t, json.Unmarshal([]byte(`null`), &tree))
	assert.Empty(t, tree.Epics)
}

func TestTree_MarshalJSON_KeepsOrder(t *testing.T) {
	tree := Tree{Epics: []Epic{
		{
			Key:    "B-2",
			Fields: fields("b", "Open", "a", "Epic"),
			Tasks: []Task{{
				Key:      "B-3",
				Fields:   fields("t", "Open", "a", "Task"),
				Subtasks: []Subtask{{Key: "B-4", Fields: fields("s", "Open", "a", "Subtask")}},
			}},
		},
		{Key: "A-1", Fields: fields("a", "Open", "a", "Epic")},
	}}

	data, err := json.Marshal(tree)
	require.NoError(t, err)

	var decoded Tree
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []string{"B-2", "B-3", "B-4", "A-1"}, rowIDs(Flatten(decoded)))
	assert.Contains(t, string(data), `"due_date":null`)
	assert.Contains(t, string(data), `"tasks":{}`)
}

func TestIssue_UnmarshalJSON(t *testing.T) {
	var issue Issue
	err := json.Unmarshal([]byte(`{"key":"AIP-7","summary":"s","status":"Open","assignee":"a","type":"Story","parent":"AIP-1","labels":["x"]}`), &issue)
	require.NoError(t, err)

	assert.Equal(t, "AIP-7", issue.Key)
	assert.Equal(t, "AIP-1", issue.Parent)
	assert.Equal(t, "Story", issue.Type)
	assert.Equal(t, []string{"x"}, issue.Labels)

	err = json.Unmarshal([]byte(`{"key":"AIP-8","summary":"s","assignee":"a","type":"Story"}`), &issue)
	assert.ErrorIs(t, err, ErrMalformedIssue)
}
