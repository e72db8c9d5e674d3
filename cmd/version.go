package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spigell/resume-screener/internal/extract"
)

// Actual version can be specified in build command.
var version = "unknown"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("%s version: %s (extract backends: %s, %s)\n", app, version, extract.BackendFitz, extract.BackendPDF)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
