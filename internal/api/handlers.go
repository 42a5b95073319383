// Package api serves the curated front page over HTTP.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/theprob/frontpage/internal/models"
	"github.com/theprob/frontpage/internal/news"
	"github.com/theprob/frontpage/internal/storage"
)

// Handlers holds the API handlers.
type Handlers struct {
	store   *storage.ArtifactStore
	archive *storage.Archive
	news    *news.Fetcher
}

// NewHandlers creates new API handlers.
func NewHandlers(store *storage.ArtifactStore, archive *storage.Archive, newsFetcher *news.Fetcher) *Handlers {
	return &Handlers{store: store, archive: archive, news: newsFetcher}
}

// Response helpers

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func getLimit(r *http.Request, defaultLimit int) int {
	limit := defaultLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}
	return limit
}

// HealthCheck returns service health.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "frontpage",
	})
}

// GetFrontPage returns the full current selection artifact.
func (h *Handlers) GetFrontPage(w http.ResponseWriter, r *http.Request) {
	artifact, err := h.store.Load()
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "No selection available yet")
		return
	}
	respondJSON(w, http.StatusOK, artifact)
}

// GetCatalog returns the full ranked catalog.
func (h *Handlers) GetCatalog(w http.ResponseWriter, r *http.Request) {
	artifact, err := h.store.Load()
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "No selection available yet")
		return
	}

	catalog := artifact.Catalog
	if limit := getLimit(r, len(catalog)); limit < len(catalog) {
		catalog = catalog[:limit]
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"markets": catalog,
		"count":   len(catalog),
		"updated": artifact.Updated,
	})
}

// GetCatalogByCategory returns catalog markets for one category.
func (h *Handlers) GetCatalogByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	if category == "" {
		respondError(w, http.StatusBadRequest, "Category is required")
		return
	}

	artifact, err := h.store.Load()
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "No selection available yet")
		return
	}

	limit := getLimit(r, 20)
	var markets []models.Market
	for _, m := range artifact.Catalog {
		if strings.EqualFold(string(m.Category), category) {
			markets = append(markets, m)
			if len(markets) >= limit {
				break
			}
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"markets":  markets,
		"category": category,
		"count":    len(markets),
	})
}

// GetNews returns the news sidebar document.
func (h *Handlers) GetNews(w http.ResponseWriter, r *http.Request) {
	if h.news == nil {
		respondError(w, http.StatusServiceUnavailable, "News not available")
		return
	}

	doc, err := h.news.Load()
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "No news available yet")
		return
	}
	respondJSON(w, http.StatusOK, doc)
}

// GetRuns returns recent archived selection runs.
func (h *Handlers) GetRuns(w http.ResponseWriter, r *http.Request) {
	if h.archive == nil {
		respondError(w, http.StatusServiceUnavailable, "Run archive not available")
		return
	}

	limit := getLimit(r, 20)
	runs, err := h.archive.RecentRuns(r.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch runs")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"runs":  runs,
		"count": len(runs),
	})
}
