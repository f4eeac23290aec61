package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"apptrack-engine/internal/domain"
)

const listingsVersion = 1

// ListingsDoc is the whole listings document, read fully and rewritten
// fully on save.
type ListingsDoc struct {
	Version     int                        `json:"version"`
	LastUpdated string                     `json:"lastUpdated"`
	Listings    map[string]*domain.Listing `json:"listings"`
}

func NewListingsDoc() *ListingsDoc {
	return &ListingsDoc{
		Version:  listingsVersion,
		Listings: map[string]*domain.Listing{},
	}
}

// LoadListings reads the document at path. A missing or unparsable file
// falls back to an empty document: the second return is the diagnostic
// for the caller to log, never a reason to stop.
func LoadListings(path string) (*ListingsDoc, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return NewListingsDoc(), fmt.Errorf("listings document %s missing, starting empty", path)
	}
	if err != nil {
		return NewListingsDoc(), fmt.Errorf("listings document %s unreadable (%v), starting empty", path, err)
	}

	var doc ListingsDoc
	if err := json.Unmarshal(b, &doc); err != nil {
		return NewListingsDoc(), fmt.Errorf("listings document %s malformed (%v), starting empty", path, err)
	}
	if doc.Listings == nil {
		doc.Listings = map[string]*domain.Listing{}
	}
	if doc.Version == 0 {
		doc.Version = listingsVersion
	}
	return &doc, nil
}

// Save rewrites the document atomically, refreshing lastUpdated.
func (d *ListingsDoc) Save(path string, now time.Time) error {
	d.Version = listingsVersion
	d.LastUpdated = now.UTC().Format(time.RFC3339)

	b, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal listings: %w", err)
	}
	if err := writeAtomic(path, append(b, '\n')); err != nil {
		return fmt.Errorf("save listings: %w", err)
	}
	return nil
}
