package cli

import (
	"github.com/spf13/cobra"
)

// datasetExtensions are the file forms the loader accepts for --name,
// --title, and --ratings. Gzip-compressed files end in .gz, so both
// extensions together cover plain and compressed TSV.
var datasetExtensions = []string{"tsv", "gz"}

// completeDatasetFiles restricts shell completion for dataset path flags
// to TSV files, plain or compressed.
func completeDatasetFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return datasetExtensions, cobra.ShellCompDirectiveFilterFileExt
}

// completeConfigFiles restricts shell completion for --config to YAML files.
func completeConfigFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{"yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
}

// completeNothing suppresses file completion for flags that take free-form
// values, like --schema.
func completeNothing(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return nil, cobra.ShellCompDirectiveNoFileComp
}
