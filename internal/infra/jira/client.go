// Package jira implements the issue repository backed by the Jira Cloud REST API.
package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/boulangers/boulanger/internal/domain"
)

// Ensure Client implements domain.IssueRepository.
var _ domain.IssueRepository = (*Client)(nil)

const searchPath = "/rest/api/3/search"

// Client fetches issues from Jira Cloud using basic auth.
// Fields are ordered to minimize memory padding.
type Client struct {
	http           *http.Client
	baseURL        string
	email          string
	apiToken       string
	epicField      string
	startDateField string
	maxResults     int
}

// NewClient creates a new Client from tracker settings.
// If hc is nil, a client with domain.DefaultTimeout is used.
func NewClient(cfg domain.JiraConfig, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: domain.DefaultTimeout}
	}
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = domain.DefaultMaxResults
	}
	return &Client{
		http:           hc,
		baseURL:        cfg.JiraBaseURL(),
		email:          cfg.Email,
		apiToken:       cfg.APIToken,
		epicField:      cfg.EpicField,
		startDateField: cfg.StartDateField,
		maxResults:     maxResults,
	}
}

type searchResponse struct {
	Issues []rawIssue `json:"issues"`
}

type rawIssue struct {
	Fields map[string]json.RawMessage `json:"fields"`
	Key    string                     `json:"key"`
}

type named struct {
	Name string `json:"name"`
}

type person struct {
	DisplayName string `json:"displayName"`
}

type keyed struct {
	Key string `json:"key"`
}

// FetchIssues returns the issues matching jql, in the order Jira returns them.
func (c *Client) FetchIssues(ctx context.Context, jql string) ([]domain.Issue, error) {
	if c.baseURL == "" || c.email == "" || c.apiToken == "" {
		return nil, domain.ErrMissingCredentials
	}

	params := url.Values{}
	params.Set("jql", jql)
	params.Set("maxResults", strconv.Itoa(c.maxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+searchPath+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create jira request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.email, c.apiToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch from jira: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read jira response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s: %s", domain.ErrTrackerStatus, resp.Status, strings.TrimSpace(string(body)))
	}

	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("parse jira response: %w", err)
	}

	issues := make([]domain.Issue, 0, len(sr.Issues))
	for _, raw := range sr.Issues {
		issues = append(issues, c.parseIssue(raw))
	}
	return issues, nil
}

// parseIssue converts a raw Jira issue. Missing or null fields fall back to
// empty values; assignee defaults to "Unassigned" and type to "Issue".
func (c *Client) parseIssue(raw rawIssue) domain.Issue {
	f := raw.Fields

	var summary, created, updated string
	decodeField(f, "summary", &summary)
	decodeField(f, "created", &created)
	decodeField(f, "updated", &updated)

	var status, issueType, priority named
	decodeField(f, "status", &status)
	decodeField(f, "issuetype", &issueType)
	decodeField(f, "priority", &priority)

	assignee := person{DisplayName: domain.DefaultAssignee}
	decodeField(f, "assignee", &assignee)
	if assignee.DisplayName == "" {
		assignee.DisplayName = domain.DefaultAssignee
	}

	var reporter person
	decodeField(f, "reporter", &reporter)

	var labels []string
	decodeField(f, "labels", &labels)

	var components []named
	decodeField(f, "components", &components)
	var componentNames []string
	for _, comp := range components {
		if comp.Name != "" {
			componentNames = append(componentNames, comp.Name)
		}
	}

	typ := issueType.Name
	if typ == "" {
		typ = domain.IssueTypeDefault
	}

	return domain.Issue{
		Key:    raw.Key,
		Parent: c.parentKey(f),
		Fields: domain.Fields{
			Summary:     summary,
			Status:      status.Name,
			Assignee:    assignee.DisplayName,
			Type:        typ,
			Description: parseDescription(f["description"]),
			Reporter:    reporter.DisplayName,
			Priority:    priority.Name,
			Created:     created,
			Updated:     updated,
			Labels:      labels,
			Components:  componentNames,
			StartDate:   parseDate(f, c.startDateField),
			DueDate:     parseDate(f, "duedate"),
		},
	}
}

// parentKey returns the "parent" issue key, falling back to the epic link field.
// The epic link field holds either a bare key or an object with a key.
func (c *Client) parentKey(f map[string]json.RawMessage) string {
	var parent keyed
	if decodeField(f, "parent", &parent) && parent.Key != "" {
		return parent.Key
	}
	if c.epicField == "" {
		return ""
	}
	var key string
	if decodeField(f, c.epicField, &key) {
		return key
	}
	if decodeField(f, c.epicField, &parent) {
		return parent.Key
	}
	return ""
}

// decodeField decodes f[name] into v. It reports false when the field is
// absent, null, or of an unexpected shape.
func decodeField(f map[string]json.RawMessage, name string, v any) bool {
	raw, ok := f[name]
	if !ok || len(raw) == 0 || string(raw) == "null" {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}

// parseDate returns the YYYY-MM-DD value of f[name], or nil if it is missing or invalid.
func parseDate(f map[string]json.RawMessage, name string) *string {
	if name == "" {
		return nil
	}
	var s string
	if !decodeField(f, name, &s) || s == "" {
		return nil
	}
	if _, err := time.Parse(time.DateOnly, s); err != nil {
		return nil
	}
	return &s
}
