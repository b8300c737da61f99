package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/boulangers/boulanger/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hierarchyBody = `{
  "AIP-1": {
    "summary": "Checkout", "status": "In Progress", "assignee": "jenn.y", "type": "Epic", "due_date": null,
    "tasks": {
      "AIP-2": {
        "summary": "Cart", "status": "Done", "assignee": "zet.woo", "type": "Task", "due_date": "2025-01-31",
        "subtasks": {}
      }
    }
  }
}`

func TestClient_Fetch_Hierarchy(t *testing.T) {
	var gotPath, gotKeyword, gotAssignees, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKeyword = r.URL.Query().Get("keyword")
		gotAssignees = r.URL.Query().Get("assignees")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(hierarchyBody))
	}))
	defer srv.Close()

	req := domain.NewQueryBuilder("AIP").Build("cart", domain.CategoryAll, []string{"jenn.y", "zet.woo"})
	result, err := NewClient(srv.URL+"/", time.Second).Fetch(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "/project/AIP/hierarchy", gotPath)
	assert.Equal(t, "cart", gotKeyword)
	assert.Equal(t, "jenn.y,zet.woo", gotAssignees)
	assert.NotEmpty(t, gotRequestID)

	require.True(t, result.IsHierarchy)
	rows := result.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "AIP-1", rows[0].ID)
	assert.Equal(t, domain.NotAvailable, rows[0].DueDate)
	assert.Equal(t, "AIP-2", rows[1].ID)
	assert.Equal(t, "2025-01-31", rows[1].DueDate)
}

func TestClient_Fetch_FlatListing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/project/AIP/epics", r.URL.Path)
		_, _ = w.Write([]byte(`[{"key":"AIP-1","summary":"s","status":"Open","assignee":"a","type":"Epic","due_date":null}]`))
	}))
	defer srv.Close()

	req := domain.NewQueryBuilder("AIP").Build("", domain.CategoryEpic, nil)
	result, err := NewClient(srv.URL, time.Second).Fetch(context.Background(), req)
	require.NoError(t, err)

	assert.False(t, result.IsHierarchy)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, "AIP-1", result.Issues[0].Key)
}

func TestClient_Fetch_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		wantMsg string
	}{
		{"server error with detail", http.StatusInternalServerError, `{"detail":"jira unreachable"}`, domain.ErrBackendStatus, "jira unreachable"},
		{"not found", http.StatusNotFound, `not here`, domain.ErrBackendStatus, "not here"},
		{"not json", http.StatusOK, `<html></html>`, domain.ErrUnexpectedResponse, ""},
		{"empty body", http.StatusOK, ``, domain.ErrUnexpectedResponse, ""},
		{"malformed node", http.StatusOK, `{"AIP-1":{"summary":"s"}}`, domain.ErrMalformedIssue, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, time.Second).Fetch(context.Background(), domain.NewQueryBuilder("AIP").Build("", domain.CategoryAll, nil))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestClient_Fetch_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(srv.URL, time.Second).Fetch(ctx, domain.NewQueryBuilder("AIP").Build("", domain.CategoryAll, nil))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_Fetch_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, 200*time.Millisecond).Fetch(context.Background(), domain.NewQueryBuilder("AIP").Build("", domain.CategoryAll, nil))
	assert.Error(t, err)
}

func TestDetail(t *testing.T) {
	assert.Equal(t, "boom", detail([]byte(`{"detail":"boom"}`)))
	assert.Equal(t, "plain", detail([]byte("  plain \n")))
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'x'
	}
	assert.Len(t, detail(long), maxDetailLen+3)
}
