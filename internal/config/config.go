// internal/config/config.go
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		DataDir         string `yaml:"data_dir"`
		ApplicationsDir string `yaml:"applications_dir"`
	} `yaml:"app"`

	Pipeline struct {
		QualifyThreshold int `yaml:"qualify_threshold"`
	} `yaml:"pipeline"`

	Matching struct {
		JaccardThreshold     float64           `yaml:"jaccard_threshold"`
		ExtraCompanySuffixes []string          `yaml:"extra_company_suffixes"`
		ExtraTitleAbbrevs    map[string]string `yaml:"extra_title_abbrevs"`
	} `yaml:"matching"`
}

func Default() Config {
	var cfg Config
	cfg.App.DataDir = "."
	cfg.App.ApplicationsDir = "applications"
	cfg.Pipeline.QualifyThreshold = 70
	return cfg
}

func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	if cfg.Pipeline.QualifyThreshold == 0 {
		cfg.Pipeline.QualifyThreshold = 70
	}
	return cfg, err
}
