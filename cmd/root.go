// Package cmd implements the CLI commands using Cobra.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "videograb",
	Short: "Resolve and download online videos through a streaming proxy",
	Long: `videograb resolves a video page URL into its downloadable formats and
relays the media through a same-origin proxy. Run "videograb serve" for the web
service or "videograb get <url>" to download from the terminal.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("videograb " + Version)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(versionCmd)
}
