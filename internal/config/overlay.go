// internal/config/overlay.go
package config

import "apptrack-engine/internal/match"

// ApplyMatching overlays the config's matching overrides onto the match
// package tables and returns the engine options to use. Extra suffixes
// and abbreviations extend the defaults; they never replace them.
func ApplyMatching(cfg Config) match.Options {
	for _, s := range cfg.Matching.ExtraCompanySuffixes {
		match.CompanySuffixes = append(match.CompanySuffixes, s)
	}
	for abbrev, full := range cfg.Matching.ExtraTitleAbbrevs {
		match.TitleAbbreviations[abbrev] = full
	}
	return match.Options{JaccardThreshold: cfg.Matching.JaccardThreshold}
}
