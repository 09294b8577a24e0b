package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cengizhan/substack-sync/internal/pipeline"
	"github.com/cengizhan/substack-sync/internal/store"
)

func init() {
	rootCmd.AddCommand(syncCmd)
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch posts and notes",
	Long:  `Fetch the RSS feed and the notes API, then write new or updated documents with their media.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := CheckConfig()

		s := store.NewFileStore(cfg.Substack.PostsDir, cfg.Substack.NotesDir)
		p := pipeline.NewPipeline(cfg, s)

		stats, err := p.Run(context.Background())
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		if stats.Failed > 0 {
			color.Yellow("Sync completed with failures: %s", stats)
			os.Exit(1)
		}
		color.Green("Sync completed: %s", stats)
	},
}
