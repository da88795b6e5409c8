package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/repovault/repovault/internal/backup"
	"github.com/repovault/repovault/internal/github"
	"github.com/repovault/repovault/internal/logging"
	"github.com/repovault/repovault/internal/storage"
)

// restoreCmd recreates backed-up repository metadata in a repository.
var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore repository metadata from a directory",
	Long: `Restore a repository's metadata from a directory of JSON files
produced by 'repovault save'.

Entity types are restored in dependency order so parent data and id
remappings exist before dependents need them. Collisions with entities
already present in the target repository are handled by the configured
conflict strategy.

A missing file for an entity type means that type was not included in the
backup; it is reported as restored with zero items, not as an error.

Example:
  repovault restore -r owner/repo -d ./backup --conflict skip`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := optionsFromFlags(cmd)
		if err != nil {
			return err
		}

		conflictRaw, err := cmd.Flags().GetString("conflict")
		if err != nil {
			return err
		}
		if opts.Conflict, err = backup.ParseConflictStrategy(conflictRaw); err != nil {
			return err
		}

		githubClient, err := github.NewClient()
		if err != nil {
			return fmt.Errorf("failed to initialize github client: %v", err)
		}

		orchestrator := backup.NewOrchestrator(githubClient, storage.NewOsStore())
		results, err := orchestrator.RunRestore(cmd.Context(), opts)
		if err != nil {
			return err
		}

		logging.Info("restore run finished",
			"repository", opts.Repository,
			"dir", opts.Dir)
		return reportResults(results)
	},
}

func init() {
	registerInclusionFlags(restoreCmd)
	restoreCmd.Flags().String("conflict", "skip", "Conflict strategy: fail-if-existing, fail-if-conflict, delete-all, overwrite or skip")
}
