package domain

import "strings"

// IssueQuery describes which issues to fetch from the tracker.
type IssueQuery struct {
	ProjectKey string
	IssueType  string // empty = all types
	Keyword    string
	Assignees  []string
}

// JQL renders the query as a Jira Query Language expression.
func (q IssueQuery) JQL() string {
	var b strings.Builder
	b.WriteString("project = ")
	b.WriteString(quoteJQL(q.ProjectKey))
	if q.IssueType != "" {
		b.WriteString(" AND issuetype = ")
		b.WriteString(quoteJQL(q.IssueType))
	}
	if kw := strings.TrimSpace(q.Keyword); kw != "" {
		b.WriteString(" AND text ~ ")
		b.WriteString(quoteJQL(kw))
	}
	if assignees := CleanAssignees(q.Assignees); len(assignees) > 0 {
		quoted := make([]string, len(assignees))
		for i, a := range assignees {
			quoted[i] = quoteJQL(a)
		}
		b.WriteString(" AND assignee in (")
		b.WriteString(strings.Join(quoted, ", "))
		b.WriteString(")")
	}
	return b.String()
}

// CleanAssignees splits comma-separated values and drops empty entries.
// It returns nil when nothing remains, meaning "no assignee filter".
func CleanAssignees(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func quoteJQL(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
