package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "imdbload",
	Short: "IMDb TSV bulk loader for PostgreSQL",
	Long: asciiLogo + `

imdbload streams the three public IMDb datasets (name.basics, title.basics,
title.ratings) into PostgreSQL with COPY FROM STDIN. Gzip files are
decompressed on the fly and nothing is buffered in memory, so dataset size
does not matter.

One connection, one pass, one transaction per table.

Exit Codes:
  0  - Success
  1  - General error (including database connection failure)
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  12 - Schema initialization failed
  13 - Bulk load failed`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for imdbload")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
