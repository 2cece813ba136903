package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"hexageeky/internal/domain"
)

type listToolsResponse struct {
	Tools   []domain.Tool `json:"tools"`
	HasMore bool          `json:"hasMore"`
	Total   int           `json:"total"`
}

type categoryEntry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type listCategoriesResponse struct {
	Categories []categoryEntry `json:"categories"`
}

func (s *Server) handleListTools(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	state, err := s.provider.Snapshot(r.Context())
	if err != nil {
		s.metrics.ObserveListing(time.Since(started), 0, err)
		s.writeError(w, domain.Wrap(domain.CodeUnavailable, "httpapi.listTools", err))
		return
	}

	params := r.URL.Query()
	criteria := domain.FilterCriteria{
		Query:    params.Get("query"),
		Category: params.Get("category"),
	}
	matched := domain.FilterTools(state.Catalog.Tools(), criteria)
	page := domain.Paginate(matched, parsePage(params.Get("page")), domain.DefaultPageSize)

	s.metrics.ObserveListing(time.Since(started), len(matched), nil)
	s.writeJSON(w, http.StatusOK, listToolsResponse{
		Tools:   page.Tools,
		HasMore: page.HasMore,
		Total:   page.Total,
	})
}

func (s *Server) handleGetTool(w http.ResponseWriter, r *http.Request) {
	state, err := s.provider.Snapshot(r.Context())
	if err != nil {
		s.writeError(w, domain.Wrap(domain.CodeUnavailable, "httpapi.getTool", err))
		return
	}

	id := r.PathValue("id")
	tool, ok := state.Catalog.Get(id)
	if !ok {
		s.writeError(w, domain.E(domain.CodeNotFound, "httpapi.getTool",
			fmt.Sprintf("tool %q not found", id), domain.ErrToolNotFound))
		return
	}
	s.writeJSON(w, http.StatusOK, tool)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	state, err := s.provider.Snapshot(r.Context())
	if err != nil {
		s.writeError(w, domain.Wrap(domain.CodeUnavailable, "httpapi.listCategories", err))
		return
	}

	counts := state.Catalog.CategoryCounts()
	categories := make([]categoryEntry, 0, len(counts))
	for _, name := range state.Catalog.Categories() {
		categories = append(categories, categoryEntry{Name: name, Count: counts[name]})
	}
	s.writeJSON(w, http.StatusOK, listCategoriesResponse{Categories: categories})
}

// parsePage treats anything unparseable as page 1.
func parsePage(raw string) int {
	if raw == "" {
		return 1
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return page
}
