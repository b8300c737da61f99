package jira

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/boulangers/boulanger/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchBody = `{
  "issues": [
    {
      "key": "AIP-1",
      "fields": {
        "summary": "Checkout flow",
        "status": {"name": "In Progress"},
        "assignee": {"displayName": "jenn.y"},
        "issuetype": {"name": "Epic"},
        "customfield_10015": "2025-01-02",
        "duedate": "2025-02-01",
        "description": {
          "type": "doc",
          "content": [
            {"type": "paragraph", "content": [{"type": "text", "text": "First"}, {"type": "text", "text": "line"}]},
            {"type": "paragraph", "content": [{"type": "text", "text": "Second"}]}
          ]
        },
        "labels": ["web", "q1"],
        "components": [{"name": "frontend"}],
        "priority": {"name": "High"},
        "reporter": {"displayName": "louie.han"},
        "created": "2025-01-01T10:00:00.000+0000",
        "updated": "2025-01-03T10:00:00.000+0000"
      }
    },
    {
      "key": "AIP-2",
      "fields": {
        "summary": "Cart",
        "status": {"name": "To Do"},
        "assignee": null,
        "issuetype": {"name": "Task"},
        "duedate": "31/01/2025",
        "customfield_10014": "AIP-1"
      }
    },
    {
      "key": "AIP-3",
      "fields": {
        "summary": "Button",
        "status": {"name": "Done"},
        "issuetype": {"name": "Sub-task"},
        "parent": {"key": "AIP-2"}
      }
    },
    {
      "key": "AIP-4",
      "fields": {"summary": "No type", "status": null}
    }
  ]
}`

func testConfig(domainURL string) domain.JiraConfig {
	return domain.JiraConfig{
		Domain:         domainURL,
		Email:          "dev@acme.io",
		APIToken:       "token",
		EpicField:      domain.DefaultEpicField,
		StartDateField: domain.DefaultStartDateField,
		MaxResults:     1000,
	}
}

func TestClient_FetchIssues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, searchPath, r.URL.Path)
		assert.Equal(t, `project = "AIP"`, r.URL.Query().Get("jql"))
		assert.Equal(t, "1000", r.URL.Query().Get("maxResults"))
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "dev@acme.io", user)
		assert.Equal(t, "token", pass)
		_, _ = w.Write([]byte(searchBody))
	}))
	defer srv.Close()

	issues, err := NewClient(testConfig(srv.URL), srv.Client()).FetchIssues(context.Background(), `project = "AIP"`)
	require.NoError(t, err)
	require.Len(t, issues, 4)

	epic := issues[0]
	assert.Equal(t, "AIP-1", epic.Key)
	assert.Equal(t, "Checkout flow", epic.Summary)
	assert.Equal(t, "In Progress", epic.Status)
	assert.Equal(t, "jenn.y", epic.Assignee)
	assert.Equal(t, "Epic", epic.Type)
	require.NotNil(t, epic.StartDate)
	assert.Equal(t, "2025-01-02", *epic.StartDate)
	require.NotNil(t, epic.DueDate)
	assert.Equal(t, "2025-02-01", *epic.DueDate)
	assert.Equal(t, "First line Second", epic.Description)
	assert.Equal(t, []string{"web", "q1"}, epic.Labels)
	assert.Equal(t, []string{"frontend"}, epic.Components)
	assert.Equal(t, "High", epic.Priority)
	assert.Equal(t, "louie.han", epic.Reporter)
	assert.Empty(t, epic.Parent)

	task := issues[1]
	assert.Equal(t, domain.DefaultAssignee, task.Assignee)
	assert.Nil(t, task.DueDate, "invalid dates become null")
	assert.Equal(t, "AIP-1", task.Parent)

	sub := issues[2]
	assert.Equal(t, "AIP-2", sub.Parent)
	assert.Equal(t, domain.DefaultAssignee, sub.Assignee)

	bare := issues[3]
	assert.Equal(t, domain.IssueTypeDefault, bare.Type)
	assert.Empty(t, bare.Status)

	tree, stats := domain.BuildHierarchy(issues)
	require.Len(t, tree.Epics, 1)
	require.Len(t, tree.Epics[0].Tasks, 1)
	require.Len(t, tree.Epics[0].Tasks[0].Subtasks, 1)
	assert.Equal(t, 1, stats.IgnoredOtherType)
}

func TestClient_FetchIssues_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errorMessages":["bad jql"]}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := NewClient(testConfig(srv.URL), srv.Client()).FetchIssues(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrTrackerStatus)
	assert.Contains(t, err.Error(), "bad jql")
}

func TestClient_FetchIssues_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := NewClient(testConfig(srv.URL), srv.Client()).FetchIssues(context.Background(), "x")
	assert.Error(t, err)
}

func TestClient_FetchIssues_MissingCredentials(t *testing.T) {
	cfg := testConfig("acme")
	cfg.APIToken = ""

	_, err := NewClient(cfg, nil).FetchIssues(context.Background(), "x")
	assert.ErrorIs(t, err, domain.ErrMissingCredentials)
}

func TestClient_EpicFieldAsObject(t *testing.T) {
	c := NewClient(testConfig("acme"), nil)
	issue := c.parseIssue(rawIssue{
		Key: "AIP-9",
		Fields: map[string]json.RawMessage{
			"customfield_10014": json.RawMessage(`{"key":"AIP-1"}`),
		},
	})
	assert.Equal(t, "AIP-1", issue.Parent)
}

func TestParseDescription(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"null", `null`, ""},
		{"plain string", `"  hello "`, "hello"},
		{"empty doc", `{"type":"doc","content":[]}`, ""},
		{"nested", `{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"a"},{"type":"hardBreak"},{"type":"text","text":"b"}]}]}`, "a b"},
		{"wrong shape", `42`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseDescription(json.RawMessage(tt.raw)))
		})
	}
}
