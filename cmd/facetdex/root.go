package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "facetdex",
	Short: "Faceted product search over OpenSearch",
	Long: `facetdex - faceted product search over OpenSearch
  serve   run the HTTP search API
  build   print the engine request for a query without sending it`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(versionCmd)
}
