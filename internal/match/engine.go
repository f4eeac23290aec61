package match

import (
	"log"
	"reflect"
	"sort"
	"time"

	"apptrack-engine/internal/domain"
)

// DefaultJaccardThreshold gates the fuzzy title fallback. Empirical; see
// Options to override.
const DefaultJaccardThreshold = 0.8

type Options struct {
	// JaccardThreshold above which two same-company titles are treated
	// as the same posting. Zero means DefaultJaccardThreshold.
	JaccardThreshold float64
}

func (o Options) threshold() float64 {
	if o.JaccardThreshold > 0 {
		return o.JaccardThreshold
	}
	return DefaultJaccardThreshold
}

// Engine folds incoming raw listings into the canonical listings map.
type Engine struct {
	Opts Options
}

// FoldStats is the ingest slice of the run summary.
type FoldStats struct {
	Added      int `json:"added"`
	Updated    int `json:"updated"`
	Duplicates int `json:"duplicates"`
	Skipped    int `json:"skipped"`
}

// FindMatch locates an existing duplicate of (company, title): exact
// dedup-key match first, then a full scan for same normalized company
// with title similarity above the threshold. The scan is
// O(existing x incoming); fine for a personal pipeline, do not lift this
// into anything with a large listing set.
func (e Engine) FindMatch(listings map[string]*domain.Listing, company, title string) *domain.Listing {
	key := DedupKey(company, title)
	normCompany := NormalizeCompany(company)

	ids := make([]string, 0, len(listings))
	for id := range listings {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		l := listings[id]
		if DedupKey(l.Company, l.Title) == key {
			return l
		}
	}
	for _, id := range ids {
		l := listings[id]
		if NormalizeCompany(l.Company) != normCompany {
			continue
		}
		if TitleSimilarity(l.Title, title) > e.Opts.threshold() {
			return l
		}
	}
	return nil
}

// Fold validates and merges a batch of raw records into the map. Invalid
// records are logged and skipped; nothing in a batch is fatal.
func (e Engine) Fold(listings map[string]*domain.Listing, raws []domain.RawListing, now time.Time) FoldStats {
	var stats FoldStats
	for _, raw := range raws {
		if err := raw.Validate(); err != nil {
			log.Printf("[ingest] skipping record: %v", err)
			stats.Skipped++
			continue
		}

		incoming := listingFromRaw(raw, now)

		existing := e.FindMatch(listings, raw.Company, raw.Title)
		if existing == nil {
			incoming.JobID = domain.DeriveJobID(raw)
			if _, taken := listings[incoming.JobID]; taken {
				// Same derived id but no content match; count it as a
				// duplicate rather than clobbering the tracked record.
				stats.Duplicates++
				continue
			}
			listings[incoming.JobID] = &incoming
			stats.Added++
			continue
		}

		merged := Merge(*existing, incoming, now)
		stats.Duplicates++
		prev := *existing
		prev.ScrapedAt = merged.ScrapedAt
		if !reflect.DeepEqual(prev, merged) {
			stats.Updated++
		}
		*existing = merged
	}
	return stats
}

func listingFromRaw(raw domain.RawListing, now time.Time) domain.Listing {
	return domain.Listing{
		Source:         raw.Source,
		Company:        raw.Company,
		Title:          raw.Title,
		Location:       raw.Location,
		SalaryMin:      raw.SalaryMin,
		SalaryMax:      raw.SalaryMax,
		SalaryCurrency: raw.SalaryCurrency,
		JobURL:         raw.JobURL,
		Content:        raw.Content,
		Status:         domain.StatusNew,
		FirstSeen:      now,
		ScrapedAt:      now,
	}
}
