package backend

import (
	"encoding/json"
	"strings"
)

const maxDetailLen = 200

// detail extracts a human-readable message from an error response body.
// The backend answers errors with {"detail": "..."}; anything else is
// returned trimmed and truncated.
func detail(body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	s := strings.TrimSpace(string(body))
	if len(s) > maxDetailLen {
		s = s[:maxDetailLen] + "..."
	}
	return s
}
