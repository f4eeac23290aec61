// Package queue derives the ordered review queue from materials_ready
// and drives the persisted cursor over it.
package queue

import (
	"fmt"
	"os"
	"path/filepath"

	"apptrack-engine/internal/store"
)

// Item is the review packet handed to the approval command.
type Item struct {
	QueueID string `json:"queueId"`
	Company string `json:"company"`
	Title   string `json:"title"`
	Folder  string `json:"folder"`
	Score   *int   `json:"score,omitempty"`
}

// Builder assembles the queue. FolderExists is injectable for tests;
// the default checks AppsDir on disk.
type Builder struct {
	AppsDir      string
	FolderExists func(folder string) bool
}

func (b Builder) exists(folder string) bool {
	if b.FolderExists != nil {
		return b.FolderExists(folder)
	}
	info, err := os.Stat(filepath.Join(b.AppsDir, folder))
	return err == nil && info.IsDir()
}

// Build lists materials_ready entries, in bucket order, whose folder is
// still on disk. A missing folder is not an error; the entry is simply
// not reviewable right now.
func (b Builder) Build(st *store.SharedState) []Item {
	var items []Item
	for _, e := range st.Pipeline.MaterialsReady {
		if e.FolderName == "" || !b.exists(e.FolderName) {
			continue
		}
		items = append(items, Item{
			QueueID: e.QueueID,
			Company: e.Company,
			Title:   e.Title,
			Folder:  e.FolderName,
			Score:   e.Score,
		})
	}
	return items
}

// Select resolves the current review item and persists the cursor into
// st. With a requested queue id it must match an item; otherwise the
// first non-skipped item wins, falling back to the first item when
// everything is skipped. Selecting clears the item's own skip flag.
func (b Builder) Select(st *store.SharedState, requested string) (*Item, error) {
	items := b.Build(st)
	if len(items) == 0 {
		return nil, nil
	}

	var chosen *Item
	if requested != "" {
		for i := range items {
			if items[i].QueueID == requested {
				chosen = &items[i]
				break
			}
		}
		if chosen == nil {
			return nil, fmt.Errorf("queue id %s not in review queue", requested)
		}
	} else {
		for i := range items {
			if !st.Review.IsSkipped(items[i].QueueID) {
				chosen = &items[i]
				break
			}
		}
		if chosen == nil {
			chosen = &items[0]
		}
	}

	st.Review.ClearSkip(chosen.QueueID)
	st.Review.Current = chosen.QueueID
	return chosen, nil
}

// Skip marks a queue id so the next selection advances past it. The
// bucket entry itself is untouched. An empty id skips the current item.
func Skip(st *store.SharedState, queueID string) string {
	if queueID == "" {
		queueID = st.Review.Current
	}
	if queueID == "" {
		return ""
	}
	st.Review.AddSkip(queueID)
	if st.Review.Current == queueID {
		st.Review.Current = ""
	}
	return queueID
}
