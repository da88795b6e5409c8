// Package cmd provides the command-line interface for the repovault tool.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "repovault",
	Short: "Repovault backs up and restores repository metadata",
	Long: `Repovault backs up a GitHub repository's metadata (labels, issues,
comments, pull requests with their comments and reviews, milestones and
sub-issue hierarchies) to a directory of JSON files, and restores it into
a repository again with configurable conflict handling.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Flags shared by save and restore
	rootCmd.PersistentFlags().StringP("repository", "r", "", "GitHub repository name (e.g., 'username/repo')")
	rootCmd.PersistentFlags().StringP("dir", "d", "backup", "Backup directory holding one JSON file per entity type")

	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(restoreCmd)
}
