package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"apptrack-engine/internal/config"
	"apptrack-engine/internal/match"
	"apptrack-engine/internal/store"
)

var flagDataDir string

var rootCmd = &cobra.Command{
	Use:           "apptrack",
	Short:         "Track a personal job-application pipeline",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default $APPTRACK_DATA_DIR or .)")
	rootCmd.AddCommand(ingestCmd, reconcileCmd, queueCmd, runsCmd)
}

type appEnv struct {
	cfg     config.Config
	paths   store.Paths
	opts    match.Options
	dataDir string
}

func loadEnv() (appEnv, error) {
	dataDir := flagDataDir
	if dataDir == "" {
		dataDir = os.Getenv("APPTRACK_DATA_DIR")
	}
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return appEnv{}, err
	}

	cfgPath, err := config.EnsureUserConfig(dataDir)
	if err != nil {
		return appEnv{}, fmt.Errorf("config bootstrap failed: %w", err)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return appEnv{}, fmt.Errorf("config load failed (%s): %w", cfgPath, err)
	}
	if err := config.Validate(cfg); err != nil {
		return appEnv{}, err
	}

	return appEnv{
		cfg:     cfg,
		paths:   store.DefaultPaths(dataDir),
		opts:    config.ApplyMatching(cfg),
		dataDir: dataDir,
	}, nil
}

// lockRun takes the exclusive file lock that serializes mutating
// invocations. The core assumes sole ownership of the documents for the
// duration of a run; this is where that assumption is enforced.
func lockRun(dataDir string) (release func(), err error) {
	fl := flock.New(filepath.Join(dataDir, ".apptrack.lock"))
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("another apptrack run holds the lock in %s", dataDir)
	}
	return func() { _ = fl.Unlock() }, nil
}

func (e appEnv) appsDir() string {
	d := e.cfg.App.ApplicationsDir
	if !filepath.IsAbs(d) {
		d = filepath.Join(e.dataDir, d)
	}
	return d
}

func (e appEnv) historyPath() string {
	return filepath.Join(e.dataDir, "history.db")
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func logWarnings(warnings []error) {
	for _, w := range warnings {
		log.Printf("[store] %v", w)
	}
}
