package main

import (
	"log"
	"time"

	"github.com/spf13/cobra"

	"apptrack-engine/internal/ingest"
	"apptrack-engine/internal/match"
	"apptrack-engine/internal/store"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <file>...",
	Short: "Fold adapter-exported raw listings into the listings map",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv()
		if err != nil {
			return err
		}
		release, err := lockRun(env.dataDir)
		if err != nil {
			return err
		}
		defer release()

		doc, warn := store.LoadListings(env.paths.Listings)
		if warn != nil {
			log.Printf("[store] %v", warn)
		}

		sources := make([]ingest.Source, 0, len(args))
		for _, path := range args {
			sources = append(sources, ingest.FileSource{Path: path})
		}

		now := time.Now().UTC()
		eng := match.Engine{Opts: env.opts}
		results := ingest.Run(cmd.Context(), eng, doc.Listings, sources, now)
		printJSON(results)

		if err := doc.Save(env.paths.Listings, now); err != nil {
			return err
		}
		recordRun(cmd, env, "ingest", now, results)
		return nil
	},
}
