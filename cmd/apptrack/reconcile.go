package main

import (
	"log"
	"time"

	"github.com/spf13/cobra"

	"apptrack-engine/internal/history"
	"apptrack-engine/internal/reconcile"
	"apptrack-engine/internal/store"
)

var (
	flagDryRun    bool
	flagThreshold int
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Normalize statuses and repair the stage buckets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := loadEnv()
		if err != nil {
			return err
		}

		if !flagDryRun {
			release, err := lockRun(env.dataDir)
			if err != nil {
				return err
			}
			defer release()
		}

		doc, st, warnings := store.Load(env.paths)
		logWarnings(warnings)

		threshold := env.cfg.Pipeline.QualifyThreshold
		if flagThreshold > 0 {
			threshold = flagThreshold
		}

		now := time.Now().UTC()
		sum := reconcile.Run(reconcile.Snapshot{
			Listings: doc.Listings,
			Pipeline: &st.Pipeline,
		}, reconcile.Options{Threshold: threshold, Now: now})

		printJSON(sum)

		mode := "reconcile"
		if flagDryRun {
			mode = "reconcile-dry-run"
			log.Printf("[reconcile] dry run, nothing written (changed=%v)", sum.Changed())
		} else {
			// Persisting is the only fatal step of a run.
			if err := doc.Save(env.paths.Listings, now); err != nil {
				return err
			}
			if err := st.Save(env.paths.State); err != nil {
				return err
			}
		}

		recordRun(cmd, env, mode, now, sum)
		return nil
	},
}

func init() {
	reconcileCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "compute the diff without writing")
	reconcileCmd.Flags().IntVar(&flagThreshold, "threshold", 0, "qualify threshold override")
}

// recordRun appends to the run history; failure to record is logged,
// never fatal.
func recordRun(cmd *cobra.Command, env appEnv, mode string, startedAt time.Time, summary any) {
	db, err := history.Open(env.historyPath())
	if err != nil {
		log.Printf("[history] open: %v", err)
		return
	}
	defer db.Close()
	if _, err := db.RecordRun(cmd.Context(), mode, startedAt, summary); err != nil {
		log.Printf("[history] %v", err)
	}
}
