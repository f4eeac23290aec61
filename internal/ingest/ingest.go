// Package ingest is the handoff boundary from fetch adapters: sources
// produce raw listing records, Run folds them into the listings map.
// Fetching itself (ATS APIs, email, browsers) lives outside this tool.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"apptrack-engine/internal/domain"
	"apptrack-engine/internal/match"
)

// Source hands over a batch of raw records.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]domain.RawListing, error)
}

// FileSource reads a JSON array of raw records exported by an external
// adapter run.
type FileSource struct {
	Path string
}

func (f FileSource) Name() string {
	return "file:" + filepath.Base(f.Path)
}

func (f FileSource) Fetch(_ context.Context) ([]domain.RawListing, error) {
	b, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Path, err)
	}
	var raws []domain.RawListing
	if err := json.Unmarshal(b, &raws); err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.Path, err)
	}
	return raws, nil
}

// Result is the per-source slice of an ingest run summary.
type Result struct {
	Source string          `json:"source"`
	Stats  match.FoldStats `json:"stats"`
	Err    string          `json:"error,omitempty"`
}

// Run folds each source into the listings map in order. A failing source
// is reported in its Result and does not stop the batch.
func Run(ctx context.Context, eng match.Engine, listings map[string]*domain.Listing, sources []Source, now time.Time) []Result {
	results := make([]Result, 0, len(sources))
	for _, src := range sources {
		res := Result{Source: src.Name()}
		raws, err := src.Fetch(ctx)
		if err != nil {
			res.Err = err.Error()
			results = append(results, res)
			continue
		}
		res.Stats = eng.Fold(listings, raws, now)
		results = append(results, res)
	}
	return results
}
