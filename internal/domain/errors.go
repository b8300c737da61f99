package domain

import "errors"

// Domain errors.
var (
	ErrInvalidTree         = errors.New("invalid issue tree")
	ErrMalformedIssue      = errors.New("malformed issue")
	ErrUnexpectedResponse  = errors.New("unexpected response shape")
	ErrBackendStatus       = errors.New("backend returned an error status")
	ErrTrackerStatus       = errors.New("issue tracker returned an error status")
	ErrMissingCredentials  = errors.New("issue tracker credentials are not configured (set JIRA_DOMAIN, JIRA_EMAIL and JIRA_API_TOKEN)")
	ErrEmptyProjectKey     = errors.New("project key cannot be empty")
	ErrConfigExists        = errors.New("config file already exists")
	ErrUnknownOutputFormat = errors.New("unknown output format")
	ErrConfigNil           = errors.New("config is nil")
)
