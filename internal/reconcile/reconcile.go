// Package reconcile repairs drift between the listings map and the three
// stage buckets: canonical statuses, one bucket per application, bucket
// membership backfilled from listing evidence and propagated back. The
// whole pass is deterministic for a fixed clock and idempotent: running
// it twice over its own output reports zero changes.
package reconcile

import (
	"sort"
	"time"

	"apptrack-engine/internal/domain"
	"apptrack-engine/internal/status"
)

// Snapshot is the in-memory aggregate a run operates on. Reconciliation
// mutates it; persisting (or not, for dry runs) is the caller's call.
type Snapshot struct {
	Listings map[string]*domain.Listing
	Pipeline *domain.Pipeline
}

type Options struct {
	// Threshold for the qualified/below_threshold split; zero means
	// status.DefaultThreshold.
	Threshold int
	// Now stamps synthesized bucket entries. Zero means time.Now.
	Now time.Time
}

type BucketSizes struct {
	Pending   int `json:"pending_materials"`
	Ready     int `json:"materials_ready"`
	Submitted int `json:"submitted_applications"`
}

// Summary is the machine-readable result of one reconciliation pass.
type Summary struct {
	StatusChanges      int `json:"statusChanges"`
	QueueIDsAssigned   int `json:"queueIdsAssigned"`
	BucketDupesRemoved int `json:"bucketDupesRemoved"`
	CrossBucketRemoved int `json:"crossBucketRemoved"`
	Backfilled         int `json:"backfilled"`
	BackPropagated     int `json:"backPropagated"`
	Unresolved         int `json:"unresolved"`

	Before BucketSizes `json:"before"`
	After  BucketSizes `json:"after"`
}

// Changed reports whether the pass mutated anything that persists.
func (s Summary) Changed() bool {
	return s.StatusChanges+s.QueueIDsAssigned+s.BucketDupesRemoved+
		s.CrossBucketRemoved+s.Backfilled+s.BackPropagated > 0
}

// Run executes the migration steps in order over the snapshot.
func Run(snap Snapshot, opts Options) Summary {
	if opts.Now.IsZero() {
		opts.Now = time.Now().UTC()
	}
	var sum Summary
	p := snap.Pipeline
	sum.Before = sizes(p)

	ids := sortedIDs(snap.Listings)

	// 1. Canonical status + queue id per listing.
	for _, id := range ids {
		l := snap.Listings[id]
		canon := status.Canonicalize(*l, opts.Threshold)
		if canon != l.Status {
			l.Status = canon
			sum.StatusChanges++
		}
		if l.QueueID == "" {
			l.QueueID = domain.QueueID(l.JobID, l.ApplicationFolder)
			sum.QueueIDsAssigned++
		}
	}

	// 2. Per-bucket dedupe and entry queue ids.
	for _, b := range domain.BucketOrder {
		entries := p.Bucket(b)
		seen := map[string]bool{}
		kept := entries[:0]
		for _, e := range entries {
			key := e.IdentityKey()
			if seen[key] {
				sum.BucketDupesRemoved++
				continue
			}
			seen[key] = true
			kept = append(kept, e)
		}
		for i := range kept {
			if kept[i].QueueID != "" {
				continue
			}
			if l := resolveListing(snap.Listings, ids, kept[i]); l != nil && l.QueueID != "" {
				kept[i].QueueID = l.QueueID
			} else {
				kept[i].QueueID = domain.QueueID(kept[i].JobID, kept[i].FolderName)
			}
			sum.QueueIDsAssigned++
		}
		p.SetBucket(b, kept)
	}

	// 4. Cross-bucket deconfliction: later stage wins. Membership is
	// checked against every key form an entry carries, so a submitted
	// entry recorded by folder still evicts a pending copy keyed by job.
	submittedKeys := keySet(p.SubmittedApplications)
	p.MaterialsReady, sum.CrossBucketRemoved = removeMatching(p.MaterialsReady, submittedKeys, sum.CrossBucketRemoved)
	p.PendingMaterials, sum.CrossBucketRemoved = removeMatching(p.PendingMaterials, submittedKeys, sum.CrossBucketRemoved)
	readyKeys := keySet(p.MaterialsReady)
	p.PendingMaterials, sum.CrossBucketRemoved = removeMatching(p.PendingMaterials, readyKeys, sum.CrossBucketRemoved)

	// 5. Backfill listings that have a workspace folder but no bucket
	// entry, into the bucket their canonical status implies.
	allKeys := keySet(p.PendingMaterials)
	for k := range keySet(p.MaterialsReady) {
		allKeys[k] = true
	}
	for k := range keySet(p.SubmittedApplications) {
		allKeys[k] = true
	}
	for _, id := range ids {
		l := snap.Listings[id]
		if l.ApplicationFolder == "" || inBuckets(allKeys, l) {
			continue
		}
		b := domain.StatusBucket(l.Status)
		if b == "" {
			continue
		}
		e := synthesizeEntry(l, b, opts.Now)
		p.SetBucket(b, append(p.Bucket(b), e))
		for _, k := range e.AllKeys() {
			allKeys[k] = true
		}
		sum.Backfilled++
	}

	// 6. Back-propagation: bucket membership is the source of truth
	// after deconfliction, so each entry fills the gaps in its listing
	// and forces the listing's status to its bucket's stage.
	for _, b := range domain.BucketOrder {
		entries := p.Bucket(b)
		for i := range entries {
			l := resolveListing(snap.Listings, ids, entries[i])
			if l == nil {
				sum.Unresolved++
				continue
			}
			if propagate(&entries[i], l, b) {
				sum.BackPropagated++
			}
			if want := domain.BucketStatus(b); l.Status != want {
				l.Status = want
				sum.StatusChanges++
			}
		}
	}

	sum.After = sizes(p)
	return sum
}

func sortedIDs(listings map[string]*domain.Listing) []string {
	ids := make([]string, 0, len(listings))
	for id := range listings {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func sizes(p *domain.Pipeline) BucketSizes {
	return BucketSizes{
		Pending:   len(p.PendingMaterials),
		Ready:     len(p.MaterialsReady),
		Submitted: len(p.SubmittedApplications),
	}
}

func keySet(entries []domain.Entry) map[string]bool {
	set := map[string]bool{}
	for _, e := range entries {
		for _, k := range e.AllKeys() {
			set[k] = true
		}
	}
	return set
}

func removeMatching(entries []domain.Entry, laterKeys map[string]bool, removed int) ([]domain.Entry, int) {
	kept := entries[:0]
	for _, e := range entries {
		hit := false
		for _, k := range e.AllKeys() {
			if laterKeys[k] {
				hit = true
				break
			}
		}
		if hit {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	return kept, removed
}

func inBuckets(keys map[string]bool, l *domain.Listing) bool {
	return keys["job:"+l.JobID] ||
		keys["folder:"+l.ApplicationFolder] ||
		keys["ct:"+l.Company+"|"+l.Title]
}

// resolveListing finds the listing an entry refers to: by job id, else
// by application folder. Nil when nothing matches; the caller leaves
// such entries untouched.
func resolveListing(listings map[string]*domain.Listing, sortedIDs []string, e domain.Entry) *domain.Listing {
	if e.JobID != "" {
		if l, ok := listings[e.JobID]; ok {
			return l
		}
	}
	if e.FolderName == "" {
		return nil
	}
	for _, id := range sortedIDs {
		if listings[id].ApplicationFolder == e.FolderName {
			return listings[id]
		}
	}
	return nil
}

func synthesizeEntry(l *domain.Listing, b domain.Bucket, now time.Time) domain.Entry {
	e := domain.Entry{
		FolderName:   l.ApplicationFolder,
		Company:      l.Company,
		Title:        l.Title,
		JobID:        l.JobID,
		QueueID:      l.QueueID,
		Score:        l.Score,
		BeadsIssueID: l.BeadsIssueID,
		CreatedAt:    now.Format(time.RFC3339),
	}
	switch b {
	case domain.BucketReady:
		e.MaterialsReadyAt = l.MaterialsReadyAt
		if e.MaterialsReadyAt == "" {
			e.MaterialsReadyAt = e.CreatedAt
		}
	case domain.BucketSubmitted:
		e.SubmittedAt = l.SubmittedAt
		if e.SubmittedAt == "" {
			e.SubmittedAt = e.CreatedAt
		}
		e.SubmissionChannel = l.SubmissionChannel
	}
	return e
}

// propagate copies entry fields the listing is missing. Entry -> listing
// only; the entry side was already normalized in step 2.
func propagate(e *domain.Entry, l *domain.Listing, b domain.Bucket) bool {
	changed := false
	if l.ApplicationFolder == "" && e.FolderName != "" {
		l.ApplicationFolder = e.FolderName
		changed = true
	}
	if l.BeadsIssueID == "" && e.BeadsIssueID != "" {
		l.BeadsIssueID = e.BeadsIssueID
		changed = true
	}
	if b == domain.BucketReady && l.MaterialsReadyAt == "" && e.MaterialsReadyAt != "" {
		l.MaterialsReadyAt = e.MaterialsReadyAt
		changed = true
	}
	if b == domain.BucketSubmitted {
		if l.SubmittedAt == "" && e.SubmittedAt != "" {
			l.SubmittedAt = e.SubmittedAt
			changed = true
		}
		if l.SubmissionChannel == "" && e.SubmissionChannel != "" {
			l.SubmissionChannel = e.SubmissionChannel
			changed = true
		}
	}
	return changed
}
