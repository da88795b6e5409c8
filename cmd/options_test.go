package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repovault/repovault/internal/backup"
)

func testCommand() *cobra.Command {
	c := &cobra.Command{Use: "test"}
	c.Flags().StringP("repository", "r", "", "")
	c.Flags().StringP("dir", "d", "backup", "")
	registerInclusionFlags(c)
	return c
}

func TestOptionsFromFlagsDefaults(t *testing.T) {
	c := testCommand()
	require.NoError(t, c.Flags().Set("repository", "octo/demo"))

	opts, err := optionsFromFlags(c)
	require.NoError(t, err)

	assert.Equal(t, "octo/demo", opts.Repository)
	assert.Equal(t, "backup", opts.Dir)
	assert.True(t, opts.Labels)
	assert.True(t, opts.Issues.Enabled())
	assert.False(t, opts.Issues.Selective())
	assert.True(t, opts.PullRequests.Enabled())
}

func TestOptionsFromFlagsSelectiveIssues(t *testing.T) {
	c := testCommand()
	require.NoError(t, c.Flags().Set("repository", "octo/demo"))
	require.NoError(t, c.Flags().Set("issues", "5,7"))
	require.NoError(t, c.Flags().Set("pull-requests", "none"))

	opts, err := optionsFromFlags(c)
	require.NoError(t, err)

	assert.True(t, opts.Issues.Selective())
	assert.False(t, opts.PullRequests.Enabled())
}

func TestOptionsFromFlagsRequiresRepository(t *testing.T) {
	c := testCommand()

	_, err := optionsFromFlags(c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "repository flag is required")
}

func TestOptionsFromFlagsRejectsBadSpec(t *testing.T) {
	c := testCommand()
	require.NoError(t, c.Flags().Set("repository", "octo/demo"))
	require.NoError(t, c.Flags().Set("issues", "5,x"))

	_, err := optionsFromFlags(c)
	require.Error(t, err)
}

func TestReportResults(t *testing.T) {
	clean := []backup.OperationResult{
		{EntityType: "labels", Success: true, ItemsProcessed: 3},
		{EntityType: "pr_reviews", Skipped: true, SkipReason: "dependency failed"},
	}
	assert.NoError(t, reportResults(clean))

	failed := []backup.OperationResult{
		{EntityType: "labels", Success: true},
		{EntityType: "milestones", Success: false, Error: "upstream unavailable"},
	}
	assert.Error(t, reportResults(failed))

	partial := []backup.OperationResult{
		{EntityType: "issues", Success: true, ItemsProcessed: 2, ItemsFailed: 1},
	}
	assert.Error(t, reportResults(partial), "per-item failures still fail the exit code")
}
