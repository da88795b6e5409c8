package backup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strategyNames(strategies []Strategy) []string {
	names := make([]string, 0, len(strategies))
	for _, s := range strategies {
		names = append(names, s.EntityName())
	}
	return names
}

func TestNewSaveStrategiesFullSet(t *testing.T) {
	strategies, err := NewSaveStrategies(DefaultOptions("octo/demo", "backup"))
	require.NoError(t, err)
	require.Len(t, strategies, 9)

	index := make(map[string]int)
	for i, s := range strategies {
		index[s.EntityName()] = i
	}
	for _, s := range strategies {
		for _, dep := range s.Dependencies() {
			assert.Less(t, index[dep], index[s.EntityName()],
				"%s must run before %s", dep, s.EntityName())
		}
	}
}

func TestNewSaveStrategiesExcludesChildWithoutParent(t *testing.T) {
	// Review comments requested with reviews disabled: the child is
	// silently excluded with a warning, not a hard failure.
	opts := DefaultOptions("octo/demo", "backup")
	opts.PullRequestReviews = false

	strategies, err := NewSaveStrategies(opts)
	require.NoError(t, err)
	assert.NotContains(t, strategyNames(strategies), EntityPRReviews)
	assert.NotContains(t, strategyNames(strategies), EntityPRReviewComments)
}

func TestNewSaveStrategiesExclusionCascades(t *testing.T) {
	// Disabling pull requests takes down reviews and, through them,
	// review comments.
	opts := DefaultOptions("octo/demo", "backup")
	opts.PullRequests = IncludeNone()

	strategies, err := NewSaveStrategies(opts)
	require.NoError(t, err)

	names := strategyNames(strategies)
	assert.NotContains(t, names, EntityPullRequests)
	assert.NotContains(t, names, EntityPRComments)
	assert.NotContains(t, names, EntityPRReviews)
	assert.NotContains(t, names, EntityPRReviewComments)
	assert.Contains(t, names, EntityIssues)
}

func TestNewRestoreStrategiesExcludesChildWithoutParent(t *testing.T) {
	opts := DefaultOptions("octo/demo", "backup")
	opts.Issues = IncludeNone()

	strategies, err := NewRestoreStrategies(opts)
	require.NoError(t, err)

	names := strategyNames(strategies)
	assert.NotContains(t, names, EntityIssues)
	assert.NotContains(t, names, EntityComments)
	assert.NotContains(t, names, EntitySubIssues)
	assert.Contains(t, names, EntityLabels)
}

func TestFactoryValidatesOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{name: "bad repository", opts: DefaultOptions("not-a-repo", "backup")},
		{name: "empty dir", opts: DefaultOptions("octo/demo", "")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSaveStrategies(tc.opts)
			require.Error(t, err)
			var cfgErr *ConfigurationError
			assert.ErrorAs(t, err, &cfgErr)

			_, err = NewRestoreStrategies(tc.opts)
			require.Error(t, err)
			assert.ErrorAs(t, err, &cfgErr)
		})
	}
}
