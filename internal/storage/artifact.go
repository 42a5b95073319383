// Package storage persists the front-page selection: the JSON artifact that
// is both the published output and the next run's repeat-penalty input, and
// an optional MongoDB archive of past runs.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/theprob/frontpage/internal/models"
)

// Artifact is the persisted document layout. Field order and names match
// what the page and newsletter read.
type Artifact struct {
	Updated    string          `json:"updated"`
	UpdatedISO string          `json:"updated_iso"`
	Hero       *models.Market  `json:"hero"`
	Movers     []models.Market `json:"movers"`
	Ticker     []models.Market `json:"ticker"`
	Catalog    []models.Market `json:"catalog"`
}

// ArtifactStore reads and writes the selection artifact at a fixed path.
type ArtifactStore struct {
	path string
}

// NewArtifactStore creates a store for the given file path.
func NewArtifactStore(path string) *ArtifactStore {
	return &ArtifactStore{path: path}
}

// LoadPriorHero returns the hero of the previous run, if a previous
// artifact exists and parses. Missing or corrupt files are not errors:
// the repeat penalty is simply skipped for this run.
func (s *ArtifactStore) LoadPriorHero() *models.Market {
	data, err := os.ReadFile(s.path)
	if err != nil {
		log.Debug().Str("path", s.path).Msg("No previous artifact, skipping repeat penalty")
		return nil
	}

	var prev Artifact
	if err := json.Unmarshal(data, &prev); err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("Previous artifact unreadable, skipping repeat penalty")
		return nil
	}
	return prev.Hero
}

// Write persists a selection result as the artifact, replacing the whole
// file atomically. One writer per scheduled run means rename is the only
// discipline needed.
func (s *ArtifactStore) Write(result *models.SelectionResult) error {
	artifact := Artifact{
		Updated:    models.FormatUpdated(result.GeneratedAt),
		UpdatedISO: result.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"),
		Hero:       result.Hero,
		Movers:     result.Movers,
		Ticker:     result.Ticker,
		Catalog:    result.Catalog,
	}

	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal artifact: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".markets-*.json")
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp artifact: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace artifact: %w", err)
	}

	log.Info().Str("path", s.path).Msg("Wrote selection artifact")
	return nil
}

// Load returns the current artifact, for serving over the API.
func (s *ArtifactStore) Load() (*Artifact, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parse artifact: %w", err)
	}
	return &a, nil
}
