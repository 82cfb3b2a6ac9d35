package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "carousel",
	Short: "Extract recent LinkedIn company posts for a rotating display",
	Long: "carousel renders LinkedIn company pages, extracts the most recent text and image posts, " +
		"caches them per company and hands them to a display overlay.",
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
