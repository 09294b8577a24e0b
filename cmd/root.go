package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cengizhan/substack-sync/internal/config"
	"github.com/cengizhan/substack-sync/internal/logging"
)

var verboseInfo bool
var verboseDebug bool
var verboseTrace bool

var configPath string

var rootCmd = &cobra.Command{
	Use:   "substack-sync",
	Short: "substack-sync mirrors a Substack publication to Markdown files",
	Long: `Fetch Substack posts and notes, store them as canonical Markdown
documents with localized media, and cross-post new items to Twitter.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// The most verbose level wins when multiple flags are passed.
		logger := logging.CurrentLogger()
		if verboseInfo {
			logger.SetVerboseLevel(logging.VerboseInfo)
		}
		if verboseDebug {
			logger.SetVerboseLevel(logging.VerboseDebug)
		}
		if verboseTrace {
			logger.SetVerboseLevel(logging.VerboseTrace)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseInfo, "verbose", "v", false, "enable verbose info output")
	rootCmd.PersistentFlags().BoolVar(&verboseDebug, "verbose-debug", false, "enable verbose debug output")
	rootCmd.PersistentFlags().BoolVar(&verboseTrace, "verbose-trace", false, "enable verbose trace output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "substack.toml", "configuration file")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// CheckConfig loads the configuration or exits.
func CheckConfig() *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	return cfg
}
