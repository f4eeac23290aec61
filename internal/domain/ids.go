package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

func hashShort(s string, n int) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:n]
}

// DeriveJobID builds the stable listing id from the source plus its
// native id when the adapter supplied one, else from the fields that
// identify the posting. Deterministic so re-ingesting the same record
// lands on the same id.
func DeriveJobID(r RawListing) string {
	source := strings.TrimSpace(r.Source)
	if source == "" {
		source = "unknown"
	}
	native := strings.TrimSpace(r.SourceJobID)
	if native == "" {
		native = strings.ToLower(strings.TrimSpace(r.Company)) + "|" +
			strings.ToLower(strings.TrimSpace(r.Title)) + "|" +
			strings.TrimSpace(r.JobURL)
	}
	return source + "-" + hashShort(source+"|"+native, 12)
}

// QueueID is a pure function of (jobId, applicationFolder); once written
// into a document it is never regenerated.
func QueueID(jobID, folder string) string {
	return "q-" + hashShort(jobID+"|"+folder, 10)
}
