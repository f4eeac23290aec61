package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"apptrack-engine/internal/domain"
)

// ReviewState is the persisted review cursor: the currently selected
// queue id plus the skip set.
type ReviewState struct {
	Current string   `json:"current,omitempty"`
	Skipped []string `json:"skipped,omitempty"`
}

func (r *ReviewState) IsSkipped(queueID string) bool {
	for _, id := range r.Skipped {
		if id == queueID {
			return true
		}
	}
	return false
}

func (r *ReviewState) AddSkip(queueID string) {
	if queueID == "" || r.IsSkipped(queueID) {
		return
	}
	r.Skipped = append(r.Skipped, queueID)
}

func (r *ReviewState) ClearSkip(queueID string) {
	kept := r.Skipped[:0]
	for _, id := range r.Skipped {
		if id != queueID {
			kept = append(kept, id)
		}
	}
	r.Skipped = kept
	if len(r.Skipped) == 0 {
		r.Skipped = nil
	}
}

// SharedState is the larger shared-state document. Only job_pipeline and
// review_queue belong to this tool; every other top-level key is owned
// by neighbouring tooling and must round-trip byte-for-byte, so they are
// held as raw JSON.
type SharedState struct {
	Pipeline domain.Pipeline
	Review   ReviewState

	extra map[string]json.RawMessage
}

const (
	keyPipeline = "job_pipeline"
	keyReview   = "review_queue"
)

func NewSharedState() *SharedState {
	return &SharedState{}
}

func (s *SharedState) UnmarshalJSON(b []byte) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if v, ok := raw[keyPipeline]; ok {
		if err := json.Unmarshal(v, &s.Pipeline); err != nil {
			return fmt.Errorf("job_pipeline: %w", err)
		}
		delete(raw, keyPipeline)
	}
	if v, ok := raw[keyReview]; ok {
		if err := json.Unmarshal(v, &s.Review); err != nil {
			return fmt.Errorf("review_queue: %w", err)
		}
		delete(raw, keyReview)
	}
	s.extra = raw
	return nil
}

func (s *SharedState) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(s.extra)+2)
	for k, v := range s.extra {
		out[k] = v
	}
	pb, err := json.Marshal(&s.Pipeline)
	if err != nil {
		return nil, err
	}
	out[keyPipeline] = pb
	rb, err := json.Marshal(&s.Review)
	if err != nil {
		return nil, err
	}
	out[keyReview] = rb
	// encoding/json sorts map keys, so output ordering is stable.
	return json.Marshal(out)
}

// LoadState mirrors LoadListings: missing or malformed documents become
// an empty default plus a diagnostic.
func LoadState(path string) (*SharedState, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return NewSharedState(), fmt.Errorf("state document %s missing, starting empty", path)
	}
	if err != nil {
		return NewSharedState(), fmt.Errorf("state document %s unreadable (%v), starting empty", path, err)
	}

	st := NewSharedState()
	if err := json.Unmarshal(b, st); err != nil {
		return NewSharedState(), fmt.Errorf("state document %s malformed (%v), starting empty", path, err)
	}
	return st, nil
}

func (s *SharedState) Save(path string) error {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := writeAtomic(path, append(b, '\n')); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}
