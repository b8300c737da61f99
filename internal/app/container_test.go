package app

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/boulangers/boulanger/internal/domain"
	"github.com/boulangers/boulanger/internal/infra/backend"
	"github.com/boulangers/boulanger/internal/testutil"
	"github.com/boulangers/boulanger/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trackerIssue(key, typ, parent string) domain.Issue {
	return domain.Issue{
		Key:    key,
		Parent: parent,
		Fields: domain.Fields{Summary: key + " summary", Status: "In Progress", Assignee: "jenn.y", Type: typ},
	}
}

// The viewer's search path and the backend's serving path agree end to end.
func TestContainer_SearchAgainstServer(t *testing.T) {
	repo := &testutil.MockIssueRepository{Issues: []domain.Issue{
		trackerIssue("AIP-10", "Epic", ""),
		trackerIssue("AIP-11", "Task", "AIP-10"),
		trackerIssue("AIP-12", "Subtask", "AIP-11"),
		trackerIssue("AIP-1", "Epic", ""),
	}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	serving := NewWithDeps(Config{}, nil, nil, repo, domain.RealClock{}, logger)
	srv := httptest.NewServer(serving.ServerHandler())
	defer srv.Close()

	viewer := NewWithDeps(Config{}, nil, backend.NewClient(srv.URL, 5*time.Second), nil, domain.RealClock{}, logger)
	out, err := viewer.SearchIssuesUseCase().Execute(context.Background(), usecase.SearchIssuesInput{
		Keyword:   "login",
		Category:  domain.CategoryAll,
		Assignees: []string{"jenn.y"},
	})
	require.NoError(t, err)

	require.Len(t, out.Rows, 4)
	assert.Equal(t, "AIP-10", out.Rows[0].ID)
	assert.Equal(t, "AIP-11", out.Rows[1].ID)
	assert.Equal(t, "AIP-12", out.Rows[2].ID)
	assert.Equal(t, "AIP-1", out.Rows[3].ID, "server key order is kept")
	require.NotNil(t, out.Rows[2].Parent)
	assert.Equal(t, "AIP-11", *out.Rows[2].Parent)

	require.Len(t, repo.Queries, 1)
	assert.Equal(t, `project = "AIP" AND text ~ "login" AND assignee in ("jenn.y")`, repo.Queries[0])
}

func TestContainer_FlatSearchAgainstServer(t *testing.T) {
	repo := &testutil.MockIssueRepository{Issues: []domain.Issue{trackerIssue("AIP-3", "Story", "")}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	srv := httptest.NewServer(NewWithDeps(Config{}, nil, nil, repo, domain.RealClock{}, logger).ServerHandler())
	defer srv.Close()

	viewer := NewWithDeps(Config{}, nil, backend.NewClient(srv.URL, 5*time.Second), nil, domain.RealClock{}, logger)
	out, err := viewer.SearchIssuesUseCase().Execute(context.Background(), usecase.SearchIssuesInput{Category: domain.CategoryStory})
	require.NoError(t, err)

	require.Len(t, out.Rows, 1)
	assert.Equal(t, "AIP-3", out.Rows[0].ID)
	assert.Equal(t, domain.NotAvailable, out.Rows[0].DueDate)
	assert.Equal(t, `project = "AIP" AND issuetype = "Story"`, repo.Queries[0])
}

func TestContainer_ServerErrorSurfacesToViewer(t *testing.T) {
	repo := &testutil.MockIssueRepository{FetchErr: domain.ErrMissingCredentials}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	srv := httptest.NewServer(NewWithDeps(Config{}, nil, nil, repo, domain.RealClock{}, logger).ServerHandler())
	defer srv.Close()

	viewer := NewWithDeps(Config{}, nil, backend.NewClient(srv.URL, 5*time.Second), nil, domain.RealClock{}, logger)
	_, err := viewer.SearchIssuesUseCase().Execute(context.Background(), usecase.SearchIssuesInput{Category: domain.CategoryAll})

	require.ErrorIs(t, err, domain.ErrBackendStatus)
	assert.Contains(t, err.Error(), "credentials are not configured")
}

func TestContainer_New(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	c, err := New(t.TempDir())
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	assert.Equal(t, domain.DefaultProjectKey, c.QueryBuilder().ProjectKey)
	assert.NotNil(t, c.Source)
	assert.NotNil(t, c.Issues)
	assert.NotEmpty(t, c.Config.StateDir)
	assert.NotNil(t, c.Server(""))
}
