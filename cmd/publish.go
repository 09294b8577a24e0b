package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cengizhan/substack-sync/internal/publisher"
	"github.com/cengizhan/substack-sync/internal/store"
	"github.com/cengizhan/substack-sync/internal/twitter"
)

var publishKind string

func init() {
	publishCmd.Flags().StringVarP(&publishKind, "kind", "k", "posts", "what to publish: posts or notes")
	rootCmd.AddCommand(publishCmd)
}

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Post unpublished items to Twitter",
	Long: `Post every stored document without a publication marker, then record
the marker. Posts go out newest first, notes oldest first.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := CheckConfig()

		client, err := twitter.NewClient(cfg.Twitter.Credentials)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		s := store.NewFileStore(cfg.Substack.PostsDir, cfg.Substack.NotesDir)
		p := publisher.NewPublisher(cfg, s, client)

		var stats publisher.Stats
		switch publishKind {
		case "posts":
			stats, err = p.PublishPosts(context.Background())
		case "notes":
			stats, err = p.PublishNotes(context.Background())
		default:
			fmt.Printf("Unknown kind %q (expected posts or notes)\n", publishKind)
			os.Exit(1)
		}
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		if stats.Failed > 0 {
			color.Yellow("Published %d, skipped %d, failed %d", stats.Posted, stats.Skipped, stats.Failed)
			os.Exit(1)
		}
		color.Green("Published %d, skipped %d", stats.Posted, stats.Skipped)
	},
}
