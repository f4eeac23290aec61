package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"apptrack-engine/internal/queue"
	"apptrack-engine/internal/store"
)

var flagQueueID string

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Inspect and advance the review queue",
}

var queueNextCmd = &cobra.Command{
	Use:   "next",
	Short: "Resolve and persist the current review item",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		env, err := loadEnv()
		if err != nil {
			return err
		}
		release, err := lockRun(env.dataDir)
		if err != nil {
			return err
		}
		defer release()

		st, warn := store.LoadState(env.paths.State)
		if warn != nil {
			log.Printf("[store] %v", warn)
		}

		b := queue.Builder{AppsDir: env.appsDir()}
		item, err := b.Select(st, flagQueueID)
		if err != nil {
			return err
		}
		if item == nil {
			fmt.Println("review queue is empty")
			return nil
		}
		printJSON(item)
		return st.Save(env.paths.State)
	},
}

var queueSkipCmd = &cobra.Command{
	Use:   "skip [queue-id]",
	Short: "Skip an item so the next selection advances past it",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		env, err := loadEnv()
		if err != nil {
			return err
		}
		release, err := lockRun(env.dataDir)
		if err != nil {
			return err
		}
		defer release()

		st, warn := store.LoadState(env.paths.State)
		if warn != nil {
			log.Printf("[store] %v", warn)
		}

		id := ""
		if len(args) == 1 {
			id = args[0]
		}
		skipped := queue.Skip(st, id)
		if skipped == "" {
			fmt.Println("nothing to skip")
			return nil
		}
		fmt.Printf("skipped %s\n", skipped)
		return st.Save(env.paths.State)
	},
}

var queueShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List the reviewable items",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		env, err := loadEnv()
		if err != nil {
			return err
		}
		st, warn := store.LoadState(env.paths.State)
		if warn != nil {
			log.Printf("[store] %v", warn)
		}

		b := queue.Builder{AppsDir: env.appsDir()}
		items := b.Build(st)
		for _, it := range items {
			marker := " "
			if it.QueueID == st.Review.Current {
				marker = ">"
			} else if st.Review.IsSkipped(it.QueueID) {
				marker = "s"
			}
			score := "-"
			if it.Score != nil {
				score = fmt.Sprint(*it.Score)
			}
			fmt.Printf("%s %-14s %-24s %-40s %s\n", marker, it.QueueID, it.Company, it.Title, score)
		}
		if len(items) == 0 {
			fmt.Println("review queue is empty")
		}
		return nil
	},
}

func init() {
	queueNextCmd.Flags().StringVar(&flagQueueID, "id", "", "select a specific queue id")
	queueCmd.AddCommand(queueNextCmd, queueSkipCmd, queueShowCmd)
}
