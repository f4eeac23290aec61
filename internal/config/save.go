package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

func Validate(cfg Config) error {
	var errs []string

	if cfg.Pipeline.QualifyThreshold < 0 || cfg.Pipeline.QualifyThreshold > 100 {
		errs = append(errs, "pipeline.qualify_threshold must be 0..100")
	}
	if cfg.Matching.JaccardThreshold < 0 || cfg.Matching.JaccardThreshold > 1 {
		errs = append(errs, "matching.jaccard_threshold must be 0..1")
	}
	for i, s := range cfg.Matching.ExtraCompanySuffixes {
		if strings.TrimSpace(s) == "" {
			errs = append(errs, fmt.Sprintf("matching.extra_company_suffixes[%d] cannot be empty", i))
		}
	}
	for abbrev, full := range cfg.Matching.ExtraTitleAbbrevs {
		if strings.TrimSpace(abbrev) == "" || strings.TrimSpace(full) == "" {
			errs = append(errs, "matching.extra_title_abbrevs entries cannot be empty")
		}
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n- " + strings.Join(errs, "\n- "))
	}
	return nil
}

func SaveAtomic(path string, cfg Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	b, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	bak := path + ".bak"

	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}

	_ = os.Remove(bak)
	_ = os.Rename(path, bak)

	return os.Rename(tmp, path)
}
