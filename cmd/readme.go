package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cengizhan/substack-sync/internal/readme"
	"github.com/cengizhan/substack-sync/internal/store"
)

var readmePath string
var readmeCount int

func init() {
	readmeCmd.Flags().StringVarP(&readmePath, "path", "p", "README.md", "README file to update")
	readmeCmd.Flags().IntVarP(&readmeCount, "count", "n", readme.DefaultCount, "number of posts to list")
	rootCmd.AddCommand(readmeCmd)
}

var readmeCmd = &cobra.Command{
	Use:   "readme",
	Short: "Refresh the Latest Blog Posts section",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := CheckConfig()

		s := store.NewFileStore(cfg.Substack.PostsDir, cfg.Substack.NotesDir)
		entries, err := readme.LatestPosts(s, readmeCount)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		if err := readme.Update(readmePath, entries, cfg.Substack.BaseURL); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		color.Green("Updated %s with %d posts", readmePath, len(entries))
	},
}
