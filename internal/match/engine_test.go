package match

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apptrack-engine/internal/domain"
)

func TestFoldAddsNewListing(t *testing.T) {
	now := time.Now().UTC()
	listings := map[string]*domain.Listing{}

	stats := Engine{}.Fold(listings, []domain.RawListing{{
		Source:      "greenhouse",
		SourceJobID: "4512",
		Company:     "Stripe",
		Title:       "Senior PM",
	}}, now)

	assert.Equal(t, FoldStats{Added: 1}, stats)
	require.Len(t, listings, 1)
	for _, l := range listings {
		assert.Equal(t, domain.StatusNew, l.Status)
		assert.Equal(t, now, l.FirstSeen)
		assert.NotEmpty(t, l.JobID)
	}
}

func TestFoldExactDuplicateMerges(t *testing.T) {
	now := time.Now().UTC()
	listings := map[string]*domain.Listing{
		"linkedin-1": {
			JobID: "linkedin-1", Source: "linkedin",
			Company: "Stripe, Inc.", Title: "Sr PM",
			Status: domain.StatusNew, FirstSeen: now.Add(-time.Hour),
		},
	}

	stats := Engine{}.Fold(listings, []domain.RawListing{{
		Source:  "greenhouse",
		Company: "STRIPE",
		Title:   "Senior PM",
		JobURL:  "https://boards.greenhouse.io/stripe/1",
	}}, now)

	assert.Equal(t, 1, stats.Duplicates)
	assert.Equal(t, 1, stats.Updated)
	assert.Zero(t, stats.Added)
	require.Len(t, listings, 1)
	assert.Equal(t, "greenhouse", listings["linkedin-1"].Source)
	assert.Contains(t, listings["linkedin-1"].AlternateSources, "linkedin")
}

func TestFoldFuzzyTitleFallback(t *testing.T) {
	now := time.Now().UTC()
	listings := map[string]*domain.Listing{
		"lever-1": {
			JobID: "lever-1", Source: "lever",
			Company: "Acme",
			Title:   "Senior Backend Engineer, Payments Platform",
			Status:  domain.StatusNew, FirstSeen: now.Add(-time.Hour),
		},
	}

	stats := Engine{}.Fold(listings, []domain.RawListing{{
		Source:  "otta",
		Company: "Acme Inc",
		Title:   "Senior Backend Engineer - Payments Platform (Remote)",
	}}, now)

	assert.Equal(t, 1, stats.Duplicates)
	assert.Zero(t, stats.Added)
	require.Len(t, listings, 1)
}

func TestFoldBelowThresholdStaysSeparate(t *testing.T) {
	now := time.Now().UTC()
	listings := map[string]*domain.Listing{
		"lever-1": {
			JobID: "lever-1", Source: "lever",
			Company: "Acme", Title: "Senior Backend Engineer",
			Status: domain.StatusNew, FirstSeen: now.Add(-time.Hour),
		},
	}

	stats := Engine{}.Fold(listings, []domain.RawListing{{
		Source:  "otta",
		Company: "Acme",
		Title:   "Data Platform Architect",
	}}, now)

	assert.Equal(t, 1, stats.Added)
	assert.Zero(t, stats.Duplicates)
	assert.Len(t, listings, 2)
}

func TestFoldSkipsInvalidRecords(t *testing.T) {
	listings := map[string]*domain.Listing{}

	stats := Engine{}.Fold(listings, []domain.RawListing{
		{Source: "greenhouse", Title: "No Company"},
		{Company: "No Source", Title: "Engineer"},
	}, time.Now().UTC())

	assert.Equal(t, FoldStats{Skipped: 2}, stats)
	assert.Empty(t, listings)
}
