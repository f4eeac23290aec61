package match

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apptrack-engine/internal/domain"
)

func intp(n int) *int { return &n }

func TestMergeSourcePriority(t *testing.T) {
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	existing := domain.Listing{
		JobID:     "linkedin-abc",
		Source:    "linkedin",
		Company:   "Stripe",
		Title:     "Senior PM",
		JobURL:    "https://linkedin.com/jobs/1",
		Status:    domain.StatusNew,
		FirstSeen: now.Add(-48 * time.Hour),
	}
	incoming := domain.Listing{
		Source:    "greenhouse",
		Company:   "Stripe, Inc.",
		Title:     "Sr PM",
		JobURL:    "https://boards.greenhouse.io/stripe/1",
		Status:    domain.StatusNew,
		FirstSeen: now,
	}

	out := Merge(existing, incoming, now)

	assert.Equal(t, "greenhouse", out.Source)
	assert.Contains(t, out.AlternateSources, "linkedin")
	assert.Equal(t, "https://boards.greenhouse.io/stripe/1", out.JobURL)
	// Identity stays with the tracked record.
	assert.Equal(t, "linkedin-abc", out.JobID)
	// Discovery time never regresses.
	assert.Equal(t, existing.FirstSeen, out.FirstSeen)
	assert.Equal(t, now, out.ScrapedAt)
}

func TestMergeScoreIsAuthoritative(t *testing.T) {
	now := time.Now().UTC()
	existing := domain.Listing{
		JobID:   "lever-x",
		Source:  "lever",
		Company: "Acme",
		Title:   "Engineer",
		Status:  domain.StatusQualified,
		Score:   intp(82),
		ScoreBreakdown: map[string]int{
			"title": 40, "keywords": 42,
		},
		FirstSeen: now.Add(-time.Hour),
	}
	incoming := domain.Listing{
		Source:    "greenhouse",
		Company:   "Acme",
		Title:     "Engineer",
		Status:    domain.StatusNew,
		FirstSeen: now,
	}

	out := Merge(existing, incoming, now)

	require.NotNil(t, out.Score)
	assert.Equal(t, 82, *out.Score)
	assert.Equal(t, domain.StatusQualified, out.Status)
	assert.Equal(t, existing.ScoreBreakdown, out.ScoreBreakdown)
}

func TestMergeKeepsLifecycleOfUnscoredTrackedRecord(t *testing.T) {
	now := time.Now().UTC()
	existing := domain.Listing{
		JobID:             "email-y",
		Source:            "email",
		Company:           "Acme",
		Title:             "Engineer",
		Status:            domain.StatusPrepped,
		ApplicationFolder: "07-acme",
		FirstSeen:         now.Add(-time.Hour),
	}
	incoming := domain.Listing{
		Source:    "greenhouse",
		Company:   "Acme",
		Title:     "Engineer",
		Status:    domain.StatusNew,
		FirstSeen: now,
	}

	out := Merge(existing, incoming, now)

	assert.Equal(t, domain.StatusPrepped, out.Status)
	assert.Equal(t, "07-acme", out.ApplicationFolder)
}

func TestMergeSalaryGapFill(t *testing.T) {
	now := time.Now().UTC()
	existing := domain.Listing{
		JobID:     "greenhouse-z",
		Source:    "greenhouse",
		Company:   "Acme",
		Title:     "Engineer",
		SalaryMin: intp(150000),
		FirstSeen: now.Add(-time.Hour),
	}
	incoming := domain.Listing{
		Source:         "linkedin",
		Company:        "Acme",
		Title:          "Engineer",
		SalaryMin:      intp(120000), // must not overwrite
		SalaryMax:      intp(190000), // fills the gap
		SalaryCurrency: "USD",
		FirstSeen:      now,
	}

	out := Merge(existing, incoming, now)

	require.NotNil(t, out.SalaryMin)
	assert.Equal(t, 150000, *out.SalaryMin)
	require.NotNil(t, out.SalaryMax)
	assert.Equal(t, 190000, *out.SalaryMax)
	assert.Equal(t, "USD", out.SalaryCurrency)
}
