package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/repovault/repovault/internal/backup"
	"github.com/repovault/repovault/internal/github"
	"github.com/repovault/repovault/internal/logging"
	"github.com/repovault/repovault/internal/storage"
)

// saveCmd backs up repository metadata to the backup directory.
var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Back up repository metadata to a directory",
	Long: `Back up a repository's metadata to a directory of JSON files, one per
entity type.

Issues and pull requests support selective inclusion by number; dependent
entity types (comments, reviews, sub-issue links) follow their parents.

Example:
  repovault save -r owner/repo -d ./backup --issues 5,7`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := optionsFromFlags(cmd)
		if err != nil {
			return err
		}

		githubClient, err := github.NewClient()
		if err != nil {
			return fmt.Errorf("failed to initialize github client: %v", err)
		}

		orchestrator := backup.NewOrchestrator(githubClient, storage.NewOsStore())
		results, err := orchestrator.RunSave(cmd.Context(), opts)
		if err != nil {
			return err
		}

		logging.Info("save run finished",
			"repository", opts.Repository,
			"dir", opts.Dir)
		return reportResults(results)
	},
}

func init() {
	registerInclusionFlags(saveCmd)
}
