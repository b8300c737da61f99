package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/boulangers/boulanger/internal/domain"
)

// SearchIssuesInput contains the parameters for a search.
type SearchIssuesInput struct {
	Keyword   string          // Free-text keyword (passed through unvalidated)
	Category  domain.Category // Category to search
	Assignees []string        // Selected assignees in selection order
}

// SearchIssuesOutput contains the result of a search.
// Fields are ordered to minimize memory padding.
type SearchIssuesOutput struct {
	Request     domain.Request // Request that was sent
	Rows        []domain.Row   // Flattened rows in display order
	Elapsed     time.Duration  // Time spent waiting for the backend
	IsHierarchy bool           // Whether the response was a hierarchy
}

// SearchIssues builds a backend request, fetches it and flattens the result.
type SearchIssues struct {
	source  domain.IssueSource
	builder domain.QueryBuilder
	clock   domain.Clock
}

// NewSearchIssues creates a new SearchIssues use case.
func NewSearchIssues(source domain.IssueSource, builder domain.QueryBuilder, clock domain.Clock) *SearchIssues {
	return &SearchIssues{
		source:  source,
		builder: builder,
		clock:   clock,
	}
}

// Execute performs one search.
func (uc *SearchIssues) Execute(ctx context.Context, in SearchIssuesInput) (*SearchIssuesOutput, error) {
	if uc.builder.ProjectKey == "" {
		return nil, domain.ErrEmptyProjectKey
	}

	req := uc.builder.Build(in.Keyword, in.Category, in.Assignees)

	start := uc.clock.Now()
	result, err := uc.source.Fetch(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", req.Path, err)
	}

	return &SearchIssuesOutput{
		Request:     req,
		Rows:        result.Rows(),
		Elapsed:     uc.clock.Now().Sub(start),
		IsHierarchy: result.IsHierarchy,
	}, nil
}
