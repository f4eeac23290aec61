package status

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"apptrack-engine/internal/domain"
)

func intp(n int) *int { return &n }

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name    string
		listing domain.Listing
		want    domain.Status
	}{
		{
			name:    "legacy folder_created",
			listing: domain.Listing{Status: "application_folder_created"},
			want:    domain.StatusPrepped,
		},
		{
			name:    "legacy researched with folder",
			listing: domain.Listing{Status: "researched", ApplicationFolder: "03-acme"},
			want:    domain.StatusPrepped,
		},
		{
			name:    "legacy researched without folder",
			listing: domain.Listing{Status: "researched"},
			want:    domain.StatusQualified,
		},
		{
			name:    "legacy rejected",
			listing: domain.Listing{Status: "rejected"},
			want:    domain.StatusArchived,
		},
		{
			name:    "legacy closed",
			listing: domain.Listing{Status: "closed"},
			want:    domain.StatusArchived,
		},
		{
			name:    "qualified promoted by folder",
			listing: domain.Listing{Status: domain.StatusQualified, ApplicationFolder: "05-beta"},
			want:    domain.StatusPrepped,
		},
		{
			name:    "qualified without folder stays",
			listing: domain.Listing{Status: domain.StatusQualified, Score: intp(80)},
			want:    domain.StatusQualified,
		},
		{
			name:    "canonical applied kept",
			listing: domain.Listing{Status: domain.StatusApplied},
			want:    domain.StatusApplied,
		},
		{
			name:    "canonical archived kept even with folder",
			listing: domain.Listing{Status: domain.StatusArchived, ApplicationFolder: "09-gamma"},
			want:    domain.StatusArchived,
		},
		{
			name:    "unknown with folder",
			listing: domain.Listing{Status: "whatever", ApplicationFolder: "02-delta"},
			want:    domain.StatusPrepped,
		},
		{
			name:    "unknown without score",
			listing: domain.Listing{Status: "whatever"},
			want:    domain.StatusNew,
		},
		{
			name:    "unknown score below threshold",
			listing: domain.Listing{Status: "", Score: intp(65)},
			want:    domain.StatusBelowThreshold,
		},
		{
			name:    "unknown score at threshold",
			listing: domain.Listing{Status: "", Score: intp(70)},
			want:    domain.StatusQualified,
		},
		{
			name:    "unknown score above threshold",
			listing: domain.Listing{Status: "", Score: intp(75)},
			want:    domain.StatusQualified,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Canonicalize(tt.listing, 70))
		})
	}
}

func TestCanonicalizeIdempotent(t *testing.T) {
	// Re-applying the function to its own output is a no-op, whatever
	// the input looked like.
	inputs := []domain.Listing{
		{Status: "researched", ApplicationFolder: "03-acme"},
		{Status: "researched"},
		{Status: "application_folder_created"},
		{Status: "rejected"},
		{Status: domain.StatusQualified, ApplicationFolder: "04-x"},
		{Status: "garbage", Score: intp(12)},
		{Status: "", Score: intp(99)},
		{Status: domain.StatusMaterialsReady},
		{Status: domain.StatusApplied},
	}
	for _, in := range inputs {
		once := Canonicalize(in, 70)
		in.Status = once
		assert.Equal(t, once, Canonicalize(in, 70), "input %+v", in)
	}
}

func TestCanonicalizeThresholdSplit(t *testing.T) {
	below := domain.Listing{Score: intp(65)}
	above := domain.Listing{Score: intp(75)}
	assert.Equal(t, domain.StatusBelowThreshold, Canonicalize(below, 70))
	assert.Equal(t, domain.StatusQualified, Canonicalize(above, 70))

	// Configurable threshold moves the split.
	assert.Equal(t, domain.StatusQualified, Canonicalize(below, 60))
}
