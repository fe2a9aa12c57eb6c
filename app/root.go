// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "linkdeck",
	Short: "linkdeck is a self-hosted dashboard for iframed links",
	Long: `linkdeck is a self-hosted dashboard that organizes external links
into named, ordered groups and renders each selected link inside a
managed iframe panel.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
