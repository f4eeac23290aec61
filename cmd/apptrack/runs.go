package main

import (
	"github.com/spf13/cobra"

	"apptrack-engine/internal/history"
)

var flagRunsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recent ingest/reconcile runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := loadEnv()
		if err != nil {
			return err
		}
		db, err := history.Open(env.historyPath())
		if err != nil {
			return err
		}
		defer db.Close()

		runs, err := db.ListRuns(cmd.Context(), flagRunsLimit)
		if err != nil {
			return err
		}
		printJSON(runs)
		return nil
	},
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "max runs to show")
}
