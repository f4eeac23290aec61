// Package status folds raw and legacy listing statuses into the
// canonical lifecycle set. Canonicalize is pure and idempotent: feeding
// its output back in is a no-op.
package status

import "apptrack-engine/internal/domain"

// DefaultThreshold splits qualified from below_threshold when inferring
// from a score. Overridable via config/CLI.
const DefaultThreshold = 70

// Legacy vocabulary from earlier versions of the tracker.
const (
	legacyFolderCreated = "application_folder_created"
	legacyResearched    = "researched"
	legacyRejected      = "rejected"
	legacyClosed        = "closed"
)

// Canonicalize maps a listing's raw status plus its observable fields to
// one canonical value. Rules, in order: legacy vocabulary first, then
// canonical pass-through (with qualified promoted to prepped when a
// folder exists; the folder is stronger evidence than a stale status
// string), then inference from folder/score evidence.
func Canonicalize(l domain.Listing, threshold int) domain.Status {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	switch string(l.Status) {
	case legacyFolderCreated:
		return domain.StatusPrepped
	case legacyResearched:
		if l.ApplicationFolder != "" {
			return domain.StatusPrepped
		}
		return domain.StatusQualified
	case legacyRejected, legacyClosed:
		return domain.StatusArchived
	}

	if l.Status.Canonical() {
		if l.Status == domain.StatusQualified && l.ApplicationFolder != "" {
			return domain.StatusPrepped
		}
		return l.Status
	}

	if l.ApplicationFolder != "" {
		return domain.StatusPrepped
	}
	if l.Score == nil {
		return domain.StatusNew
	}
	if *l.Score >= threshold {
		return domain.StatusQualified
	}
	return domain.StatusBelowThreshold
}
