package domain

// Bucket names match the keys inside the shared-state job_pipeline
// section. Ordering matters: submitted supersedes ready supersedes
// pending during reconciliation.
type Bucket string

const (
	BucketPending   Bucket = "pending_materials"
	BucketReady     Bucket = "materials_ready"
	BucketSubmitted Bucket = "submitted_applications"
)

// BucketStatus is the listing status implied by membership in a bucket.
func BucketStatus(b Bucket) Status {
	switch b {
	case BucketPending:
		return StatusPrepped
	case BucketReady:
		return StatusMaterialsReady
	case BucketSubmitted:
		return StatusApplied
	}
	return ""
}

// StatusBucket is the inverse mapping, used when backfilling a listing
// into a bucket. Statuses outside the three staged ones return "".
func StatusBucket(s Status) Bucket {
	switch s {
	case StatusPrepped:
		return BucketPending
	case StatusMaterialsReady:
		return BucketReady
	case StatusApplied:
		return BucketSubmitted
	}
	return ""
}

// Entry is one row in a stage bucket. Timestamps stay as strings: the
// buckets are shared with external tooling that writes its own formats,
// and reconciliation must round-trip them untouched.
type Entry struct {
	FolderName   string `json:"folderName,omitempty"`
	Company      string `json:"company"`
	Title        string `json:"title"`
	JobID        string `json:"jobId,omitempty"`
	QueueID      string `json:"queueId,omitempty"`
	Score        *int   `json:"score,omitempty"`
	BeadsIssueID string `json:"beadsIssueId,omitempty"`

	CreatedAt         string `json:"createdAt,omitempty"`
	MaterialsReadyAt  string `json:"materialsReadyAt,omitempty"`
	ReadyChannel      string `json:"readyChannel,omitempty"`
	SubmittedAt       string `json:"submittedAt,omitempty"`
	SubmissionChannel string `json:"submissionChannel,omitempty"`
}

// IdentityKey identifies the same application across buckets: by job id
// when known, else by folder, else by company+title.
func (e Entry) IdentityKey() string {
	if e.JobID != "" {
		return "job:" + e.JobID
	}
	if e.FolderName != "" {
		return "folder:" + e.FolderName
	}
	return "ct:" + e.Company + "|" + e.Title
}

// AllKeys returns every key form the entry can be addressed by, for
// membership checks that must not miss an entry recorded under a weaker
// key than the listing's.
func (e Entry) AllKeys() []string {
	var keys []string
	if e.JobID != "" {
		keys = append(keys, "job:"+e.JobID)
	}
	if e.FolderName != "" {
		keys = append(keys, "folder:"+e.FolderName)
	}
	if e.Company != "" || e.Title != "" {
		keys = append(keys, "ct:"+e.Company+"|"+e.Title)
	}
	return keys
}

// Pipeline is the job_pipeline section of the shared-state document.
type Pipeline struct {
	PendingMaterials      []Entry `json:"pending_materials"`
	MaterialsReady        []Entry `json:"materials_ready"`
	SubmittedApplications []Entry `json:"submitted_applications"`

	LastEmailSync string `json:"last_email_sync,omitempty"`
	EmailSyncs    int    `json:"email_syncs,omitempty"`
}

// Bucket returns the named bucket slice; mutations go through SetBucket.
func (p *Pipeline) Bucket(b Bucket) []Entry {
	switch b {
	case BucketPending:
		return p.PendingMaterials
	case BucketReady:
		return p.MaterialsReady
	case BucketSubmitted:
		return p.SubmittedApplications
	}
	return nil
}

func (p *Pipeline) SetBucket(b Bucket, entries []Entry) {
	switch b {
	case BucketPending:
		p.PendingMaterials = entries
	case BucketReady:
		p.MaterialsReady = entries
	case BucketSubmitted:
		p.SubmittedApplications = entries
	}
}

// Buckets in supersession order, latest stage first.
var BucketOrder = []Bucket{BucketSubmitted, BucketReady, BucketPending}
