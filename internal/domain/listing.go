package domain

import (
	"errors"
	"strings"
	"time"
)

// Status is a listing's lifecycle stage. Raw documents may carry legacy
// values ("researched", "rejected", ...); the status package folds those
// into the canonical set below.
type Status string

const (
	StatusNew            Status = "new"
	StatusQualified      Status = "qualified"
	StatusBelowThreshold Status = "below_threshold"
	StatusPrepped        Status = "prepped"
	StatusMaterialsReady Status = "materials_ready"
	StatusApplied        Status = "applied"
	StatusArchived       Status = "archived"
)

func (s Status) Canonical() bool {
	switch s {
	case StatusNew, StatusQualified, StatusBelowThreshold, StatusPrepped,
		StatusMaterialsReady, StatusApplied, StatusArchived:
		return true
	}
	return false
}

// Listing is one tracked job posting in the listings document, keyed by
// JobID. Score and salary fields are pointers: absent means "not set",
// which the merge and canonicalization logic distinguish from zero.
type Listing struct {
	JobID   string `json:"jobId"`
	Source  string `json:"source"`
	Company string `json:"company"`
	Title   string `json:"title"`

	Location       string `json:"location,omitempty"`
	SalaryMin      *int   `json:"salaryMin,omitempty"`
	SalaryMax      *int   `json:"salaryMax,omitempty"`
	SalaryCurrency string `json:"salaryCurrency,omitempty"`
	JobURL         string `json:"jobUrl,omitempty"`
	Content        string `json:"content,omitempty"`

	Status            Status         `json:"status"`
	Score             *int           `json:"score,omitempty"`
	ScoreBreakdown    map[string]int `json:"scoreBreakdown,omitempty"`
	ApplicationFolder string         `json:"applicationFolder,omitempty"`
	QueueID           string         `json:"queueId,omitempty"`

	// Stage timestamps back-propagated from pipeline entries.
	MaterialsReadyAt  string `json:"materialsReadyAt,omitempty"`
	SubmittedAt       string `json:"submittedAt,omitempty"`
	SubmissionChannel string `json:"submissionChannel,omitempty"`

	FirstSeen        time.Time `json:"firstSeen"`
	ScrapedAt        time.Time `json:"scrapedAt"`
	AlternateSources []string  `json:"alternateSources,omitempty"`
	BeadsIssueID     string    `json:"beadsIssueId,omitempty"`
}

// RawListing is the handoff record produced by fetch adapters (ATS
// clients, email digests, manual capture). Everything beyond
// source/company/title is optional; the fold step validates before
// trusting the shape.
type RawListing struct {
	Source         string `json:"source"`
	SourceJobID    string `json:"sourceJobId,omitempty"`
	Company        string `json:"company"`
	Title          string `json:"title"`
	Location       string `json:"location,omitempty"`
	SalaryMin      *int   `json:"salaryMin,omitempty"`
	SalaryMax      *int   `json:"salaryMax,omitempty"`
	SalaryCurrency string `json:"salaryCurrency,omitempty"`
	JobURL         string `json:"jobUrl,omitempty"`
	Content        string `json:"content,omitempty"`
}

func (r RawListing) Validate() error {
	if strings.TrimSpace(r.Source) == "" {
		return errors.New("raw listing: source is required")
	}
	if strings.TrimSpace(r.Company) == "" {
		return errors.New("raw listing: company is required")
	}
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("raw listing: title is required")
	}
	return nil
}
