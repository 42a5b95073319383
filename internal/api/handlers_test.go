package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/theprob/frontpage/internal/models"
	"github.com/theprob/frontpage/internal/storage"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	store := storage.NewArtifactStore(filepath.Join(t.TempDir(), "markets.json"))
	hero := models.Market{
		Source:      models.SourcePolymarket,
		ID:          "iran-strike",
		Question:    "Will the US strike Iran?",
		Category:    models.CategoryWorld,
		Probability: 40,
	}
	result := &models.SelectionResult{
		Hero: &hero,
		Catalog: []models.Market{
			hero,
			{Source: models.SourceKalshi, ID: "KXFED", Question: "Fed cut?", Category: models.CategoryFinance},
		},
		GeneratedAt: time.Now().UTC(),
	}
	if err := store.Write(result); err != nil {
		t.Fatal(err)
	}

	return NewServer(store, nil, nil, nil, ":0")
}

func TestHealthCheck(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "healthy" {
		t.Errorf("status = %q", body["status"])
	}
}

func TestGetFrontPage(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/frontpage", nil)
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var artifact storage.Artifact
	if err := json.Unmarshal(rec.Body.Bytes(), &artifact); err != nil {
		t.Fatal(err)
	}
	if artifact.Hero == nil || artifact.Hero.ID != "iran-strike" {
		t.Errorf("Hero = %v", artifact.Hero)
	}
	if len(artifact.Catalog) != 2 {
		t.Errorf("Catalog size = %d", len(artifact.Catalog))
	}
}

func TestGetCatalogByCategory(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/catalog/category/finance", nil)
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body struct {
		Markets []models.Market `json:"markets"`
		Count   int             `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Count != 1 || body.Markets[0].ID != "KXFED" {
		t.Errorf("markets = %v", body.Markets)
	}
}

func TestMissingArtifact(t *testing.T) {
	store := storage.NewArtifactStore(filepath.Join(t.TempDir(), "missing.json"))
	srv := NewServer(store, nil, nil, nil, ":0")

	req := httptest.NewRequest(http.MethodGet, "/api/frontpage", nil)
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestRunsUnavailableWithoutArchive(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/runs", nil)
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}
