package usecase

import (
	"context"
	"fmt"

	"github.com/boulangers/boulanger/internal/domain"
)

// ListIssuesInput contains the parameters for listing tracker issues.
type ListIssuesInput struct {
	ProjectKey string          // Tracker project key
	Category   domain.Category // CategoryAll for the hierarchy, otherwise one issue type
	Keyword    string          // Optional free-text filter
	Assignees  []string        // Optional assignee filter
}

// ListIssuesOutput contains the result of listing tracker issues.
type ListIssuesOutput struct {
	Result *domain.SearchResult  // Hierarchy or flat listing
	JQL    string                // Query sent to the tracker
	Stats  domain.HierarchyStats // Placement stats (hierarchy only)
}

// ListIssues queries the issue tracker and shapes the answer served by the backend.
type ListIssues struct {
	issues domain.IssueRepository
	logger domain.Logger
}

// NewListIssues creates a new ListIssues use case.
func NewListIssues(issues domain.IssueRepository, logger domain.Logger) *ListIssues {
	return &ListIssues{
		issues: issues,
		logger: logger,
	}
}

// Execute lists issues for the given project and category.
func (uc *ListIssues) Execute(ctx context.Context, in ListIssuesInput) (*ListIssuesOutput, error) {
	if in.ProjectKey == "" {
		return nil, domain.ErrEmptyProjectKey
	}
	if !in.Category.IsValid() {
		return nil, fmt.Errorf("unknown category %q", in.Category)
	}

	q := domain.IssueQuery{
		ProjectKey: in.ProjectKey,
		IssueType:  in.Category.IssueType(),
		Keyword:    in.Keyword,
		Assignees:  in.Assignees,
	}
	jql := q.JQL()

	issues, err := uc.issues.FetchIssues(ctx, jql)
	if err != nil {
		return nil, fmt.Errorf("fetch issues: %w", err)
	}
	uc.logger.Debug("jira", fmt.Sprintf("%q returned %d issues", jql, len(issues)))

	out := &ListIssuesOutput{JQL: jql}
	if !in.Category.IsHierarchy() {
		if issues == nil {
			issues = []domain.Issue{}
		}
		out.Result = &domain.SearchResult{Issues: issues}
		return out, nil
	}

	tree, stats := domain.BuildHierarchy(issues)
	if stats.OrphanTasks > 0 || stats.DroppedSubtasks > 0 {
		uc.logger.Warn("hierarchy", fmt.Sprintf("%s: %d orphan tasks promoted, %d subtasks dropped",
			in.ProjectKey, stats.OrphanTasks, stats.DroppedSubtasks))
	}
	out.Result = &domain.SearchResult{Tree: tree, IsHierarchy: true}
	out.Stats = stats
	return out, nil
}
