package match

import (
	"sort"
	"time"

	"apptrack-engine/internal/domain"
)

// Merge folds a duplicate incoming listing into an existing one. The
// record from the higher-priority source supplies the base fields; the
// other fills gaps. Identity (jobId, queueId) always stays with the
// existing record, and an externally assigned score is authoritative:
// once scored, score/breakdown/status survive every merge.
func Merge(existing, incoming domain.Listing, now time.Time) domain.Listing {
	base, secondary := existing, incoming
	if domain.SourcePriority(incoming.Source) > domain.SourcePriority(existing.Source) {
		base, secondary = incoming, existing
	}

	out := base
	out.JobID = existing.JobID
	out.QueueID = existing.QueueID

	if existing.FirstSeen.Before(incoming.FirstSeen) || incoming.FirstSeen.IsZero() {
		out.FirstSeen = existing.FirstSeen
	} else {
		out.FirstSeen = incoming.FirstSeen
	}

	if existing.Score != nil {
		out.Score = existing.Score
		out.ScoreBreakdown = existing.ScoreBreakdown
		out.Status = existing.Status
	} else if incoming.Score == nil {
		// Neither side is scored; the lifecycle stays with the record
		// that has been tracked, not with a freshly ingested copy.
		out.Status = existing.Status
	}

	// Workspace bookkeeping only ever lives on the tracked record.
	if out.ApplicationFolder == "" {
		out.ApplicationFolder = existing.ApplicationFolder
	}
	if out.BeadsIssueID == "" {
		out.BeadsIssueID = existing.BeadsIssueID
	}
	if out.MaterialsReadyAt == "" {
		out.MaterialsReadyAt = existing.MaterialsReadyAt
	}
	if out.SubmittedAt == "" {
		out.SubmittedAt = existing.SubmittedAt
	}
	if out.SubmissionChannel == "" {
		out.SubmissionChannel = existing.SubmissionChannel
	}

	if out.SalaryMin == nil {
		out.SalaryMin = secondary.SalaryMin
	}
	if out.SalaryMax == nil {
		out.SalaryMax = secondary.SalaryMax
	}
	if out.SalaryCurrency == "" {
		out.SalaryCurrency = secondary.SalaryCurrency
	}
	if out.Location == "" {
		out.Location = secondary.Location
	}
	if out.Content == "" {
		out.Content = secondary.Content
	}

	out.AlternateSources = unionSources(
		existing.AlternateSources, incoming.AlternateSources,
		secondary.Source, out.Source,
	)

	out.ScrapedAt = now
	return out
}

// unionSources merges alternate-source sets plus the demoted record's
// primary source, dropping the winner's own source and duplicates.
func unionSources(a, b []string, demoted, primary string) []string {
	seen := map[string]bool{primary: true, "": true}
	var out []string
	for _, s := range append(append(append([]string{}, a...), b...), demoted) {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
