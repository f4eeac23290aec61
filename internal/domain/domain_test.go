package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentityKeyPriority(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
		want  string
	}{
		{"job id wins", Entry{JobID: "gh-1", FolderName: "01-acme", Company: "Acme", Title: "Eng"}, "job:gh-1"},
		{"folder next", Entry{FolderName: "01-acme", Company: "Acme", Title: "Eng"}, "folder:01-acme"},
		{"company+title last", Entry{Company: "Acme", Title: "Eng"}, "ct:Acme|Eng"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entry.IdentityKey())
		})
	}
}

func TestQueueIDDeterministic(t *testing.T) {
	a := QueueID("gh-1", "01-acme")
	b := QueueID("gh-1", "01-acme")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, QueueID("gh-1", "02-acme"))
	assert.NotEqual(t, a, QueueID("gh-2", "01-acme"))
}

func TestDeriveJobIDStable(t *testing.T) {
	raw := RawListing{Source: "greenhouse", SourceJobID: "4512", Company: "Acme", Title: "Eng"}
	assert.Equal(t, DeriveJobID(raw), DeriveJobID(raw))

	// Without a native id, derivation falls back to identifying fields.
	noNative := RawListing{Source: "otta", Company: "Acme", Title: "Eng", JobURL: "https://otta.com/x"}
	assert.Equal(t, DeriveJobID(noNative), DeriveJobID(noNative))
	assert.NotEqual(t, DeriveJobID(raw), DeriveJobID(noNative))
}

func TestSourcePriorityOrdering(t *testing.T) {
	order := []string{"greenhouse", "lever", "ashby", "otta", "wellfound", "wttj", "linkedin", "email", "unknown"}
	for i := 1; i < len(order); i++ {
		assert.Greater(t, SourcePriority(order[i-1]), SourcePriority(order[i]),
			"%s should outrank %s", order[i-1], order[i])
	}
	// Unlisted sources rank as unknown.
	assert.Equal(t, SourcePriority("unknown"), SourcePriority("craigslist"))
}

func TestBucketStatusMapping(t *testing.T) {
	for _, b := range BucketOrder {
		assert.Equal(t, b, StatusBucket(BucketStatus(b)))
	}
	assert.Equal(t, Bucket(""), StatusBucket(StatusArchived))
	assert.Equal(t, Bucket(""), StatusBucket(StatusNew))
}
