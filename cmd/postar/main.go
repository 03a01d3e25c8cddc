package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev" // Set by build flags: -ldflags="-X main.version=1.0.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "postar",
		Short: "Release post generator for encoded shows",
		Long: `Postar turns folders of encoded episodes into release-post markup.

It classifies each file (episode, OP/ED, specials, extras), orders the
table the way posts expect, tracks which items were already announced
so re-runs only mark genuinely new files, and fills in show metadata
and encoding details.`,
	}

	rootCmd.AddCommand(newPostCmd())
	rootCmd.AddCommand(newPreviewCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
