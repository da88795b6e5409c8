package storage

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repovault/repovault/pkg/models"
)

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store := NewStore(afero.NewMemMapFs())

	labels := []models.Label{
		{Name: "bug", Color: "ff0000", Description: "Something is broken"},
		{Name: "feature", Color: "00ff00"},
	}
	require.NoError(t, store.Save("backup/labels.json", labels))

	var loaded []models.Label
	found, err := store.Load("backup/labels.json", &loaded)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, labels, loaded)
}

func TestSaveCreatesParentDirectories(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs)

	require.NoError(t, store.Save("deeply/nested/dir/issues.json", []models.Issue{}))

	exists, err := afero.Exists(fs, "deeply/nested/dir/issues.json")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	store := NewStore(afero.NewMemMapFs())

	var loaded []models.PullRequestReview
	found, err := store.Load("backup/pr_reviews.json", &loaded)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, loaded)
}

func TestLoadMalformedFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "backup/issues.json", []byte("{not json"), 0o644))

	store := NewStore(fs)
	var loaded []models.Issue
	found, err := store.Load("backup/issues.json", &loaded)
	assert.True(t, found)
	assert.Error(t, err)
}
