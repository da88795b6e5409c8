package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/repovault/repovault/internal/backup"
	"github.com/repovault/repovault/internal/logging"
)

// registerInclusionFlags adds the per-entity-type inclusion flags shared
// by save and restore.
func registerInclusionFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("labels", true, "Include labels")
	cmd.Flags().Bool("milestones", true, "Include milestones")
	cmd.Flags().String("issues", "all", "Include issues: 'all', 'none' or a comma-separated list of numbers")
	cmd.Flags().Bool("comments", true, "Include issue comments")
	cmd.Flags().String("pull-requests", "all", "Include pull requests: 'all', 'none' or a comma-separated list of numbers")
	cmd.Flags().Bool("pr-comments", true, "Include pull request conversation comments")
	cmd.Flags().Bool("pr-reviews", true, "Include pull request reviews")
	cmd.Flags().Bool("pr-review-comments", true, "Include pull request review comments")
	cmd.Flags().Bool("sub-issues", true, "Include sub-issue hierarchies")
}

// optionsFromFlags builds engine options from the command's flags. All
// parse failures are configuration errors reported before any I/O.
func optionsFromFlags(cmd *cobra.Command) (backup.Options, error) {
	repository, err := cmd.Flags().GetString("repository")
	if err != nil {
		return backup.Options{}, err
	}
	if repository == "" {
		return backup.Options{}, fmt.Errorf("repository flag is required")
	}

	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return backup.Options{}, err
	}

	opts := backup.DefaultOptions(repository, dir)

	if opts.Labels, err = cmd.Flags().GetBool("labels"); err != nil {
		return backup.Options{}, err
	}
	if opts.Milestones, err = cmd.Flags().GetBool("milestones"); err != nil {
		return backup.Options{}, err
	}
	if opts.Comments, err = cmd.Flags().GetBool("comments"); err != nil {
		return backup.Options{}, err
	}
	if opts.PullRequestComments, err = cmd.Flags().GetBool("pr-comments"); err != nil {
		return backup.Options{}, err
	}
	if opts.PullRequestReviews, err = cmd.Flags().GetBool("pr-reviews"); err != nil {
		return backup.Options{}, err
	}
	if opts.PullRequestReviewComments, err = cmd.Flags().GetBool("pr-review-comments"); err != nil {
		return backup.Options{}, err
	}
	if opts.SubIssues, err = cmd.Flags().GetBool("sub-issues"); err != nil {
		return backup.Options{}, err
	}

	issuesRaw, err := cmd.Flags().GetString("issues")
	if err != nil {
		return backup.Options{}, err
	}
	if opts.Issues, err = backup.ParseInclusionSpec(issuesRaw); err != nil {
		return backup.Options{}, err
	}

	pullsRaw, err := cmd.Flags().GetString("pull-requests")
	if err != nil {
		return backup.Options{}, err
	}
	if opts.PullRequests, err = backup.ParseInclusionSpec(pullsRaw); err != nil {
		return backup.Options{}, err
	}

	return opts, nil
}

// reportResults logs the per-strategy outcomes and returns an error when
// any strategy failed, so the caller can decide the exit code.
func reportResults(results []backup.OperationResult) error {
	for _, r := range results {
		switch {
		case r.Skipped:
			logging.Warn("strategy skipped",
				"entity_type", r.EntityType,
				"reason", r.SkipReason)
		case !r.Success:
			logging.Error("strategy failed",
				"entity_type", r.EntityType,
				"error", r.Error,
				"duration", r.Duration)
		default:
			logging.Info("strategy completed",
				"entity_type", r.EntityType,
				"items_processed", r.ItemsProcessed,
				"items_skipped", r.ItemsSkipped,
				"items_failed", r.ItemsFailed,
				"duration", r.Duration)
		}
	}

	if backup.AnyFailed(results) {
		return fmt.Errorf("run completed with failures, see report above")
	}
	return nil
}
