package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// Query parameter names sent to the backend.
const (
	QueryParamKeyword   = "keyword"
	QueryParamAssignees = "assignees"
)

// Request is a backend request target relative to the base URL.
type Request struct {
	Query map[string]string
	Path  string
}

// URL joins the request with a backend base URL.
func (r Request) URL(baseURL string) string {
	values := url.Values{}
	for k, v := range r.Query {
		values.Set(k, v)
	}
	u := strings.TrimRight(baseURL, "/") + r.Path
	if len(values) == 0 {
		return u
	}
	return u + "?" + values.Encode()
}

// QueryBuilder builds backend requests for a fixed project.
type QueryBuilder struct {
	ProjectKey string
}

// NewQueryBuilder creates a QueryBuilder for the given project key.
func NewQueryBuilder(projectKey string) QueryBuilder {
	return QueryBuilder{ProjectKey: projectKey}
}

// Build returns the request for a search.
// The keyword and assignees are passed through unvalidated. An unknown
// category yields the bare project path with no suffix.
func (b QueryBuilder) Build(keyword string, category Category, assignees []string) Request {
	return Request{
		Path: "/project/" + url.PathEscape(b.ProjectKey) + category.Suffix(),
		Query: map[string]string{
			QueryParamKeyword:   keyword,
			QueryParamAssignees: strings.Join(assignees, ","),
		},
	}
}

// SearchResult is a decoded backend response.
// Hierarchy responses fill Tree; flat listings fill Issues.
type SearchResult struct {
	Issues      []Issue
	Tree        Tree
	IsHierarchy bool
}

// Rows flattens the result for display.
func (r *SearchResult) Rows() []Row {
	if r.IsHierarchy {
		return Flatten(r.Tree)
	}
	return FlattenIssues(r.Issues)
}

// DecodeSearchResult decodes a backend response body.
// The shape decides the interpretation: a JSON object is a hierarchy,
// a JSON array is a flat listing.
func DecodeSearchResult(data []byte) (*SearchResult, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrUnexpectedResponse)
	}
	switch trimmed[0] {
	case '{':
		var tree Tree
		if err := json.Unmarshal(trimmed, &tree); err != nil {
			return nil, err
		}
		return &SearchResult{Tree: tree, IsHierarchy: true}, nil
	case '[':
		var issues []Issue
		if err := json.Unmarshal(trimmed, &issues); err != nil {
			return nil, err
		}
		return &SearchResult{Issues: issues}, nil
	}
	return nil, fmt.Errorf("%w: body starts with %q", ErrUnexpectedResponse, trimmed[0])
}
