package store

import (
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// Paths locates the two state documents under a data dir.
type Paths struct {
	Listings string
	State    string
}

func DefaultPaths(dataDir string) Paths {
	return Paths{
		Listings: filepath.Join(dataDir, "listings.json"),
		State:    filepath.Join(dataDir, "state.json"),
	}
}

// Load reads both documents concurrently. Warnings carry the non-fatal
// fallback diagnostics; the returned documents are always usable.
func Load(p Paths) (doc *ListingsDoc, st *SharedState, warnings []error) {
	var g errgroup.Group
	var lwarn, swarn error

	g.Go(func() error {
		doc, lwarn = LoadListings(p.Listings)
		return nil
	})
	g.Go(func() error {
		st, swarn = LoadState(p.State)
		return nil
	})
	_ = g.Wait()

	for _, w := range []error{lwarn, swarn} {
		if w != nil {
			warnings = append(warnings, w)
		}
	}
	return doc, st, warnings
}
