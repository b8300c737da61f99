// Package server implements the HTTP hierarchy backend.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/boulangers/boulanger/internal/domain"
	"github.com/go-chi/chi/v5"
)

// ListFunc answers an issue query for one project and category.
// CategoryAll yields a hierarchy; every other category a flat listing.
type ListFunc func(ctx context.Context, projectKey string, category domain.Category, keyword string, assignees []string) (*domain.SearchResult, error)

// NewRouter creates the chi router with all routes and middleware.
func NewRouter(list ListFunc, allowedOrigins []string, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(CORS(allowedOrigins))
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recovery(logger))

	h := &issueHandler{list: list, logger: logger}

	r.Get("/health", health)

	r.Route("/project/{projectKey}", func(r chi.Router) {
		for _, c := range domain.AllCategories() {
			r.Get(c.Suffix(), h.handle(c))
		}
	})

	return r
}

type issueHandler struct {
	list   ListFunc
	logger *slog.Logger
}

// handle serves GET /project/{projectKey}/<category>?keyword=&assignees=
func (h *issueHandler) handle(category domain.Category) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectKey := chi.URLParam(r, "projectKey")
		q := r.URL.Query()
		assignees := domain.CleanAssignees(q["assignees"])

		result, err := h.list(r.Context(), projectKey, category, q.Get("keyword"), assignees)
		if err != nil {
			h.logger.Error("list issues failed",
				"request_id", RequestIDFrom(r.Context()),
				"project", projectKey,
				"category", string(category),
				"error", err,
			)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		if result.IsHierarchy {
			writeJSON(w, http.StatusOK, result.Tree)
			return
		}
		issues := result.Issues
		if issues == nil {
			issues = []domain.Issue{}
		}
		writeJSON(w, http.StatusOK, issues)
	}
}

func health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError answers with {"detail": msg}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}
