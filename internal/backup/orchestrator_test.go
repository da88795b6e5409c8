package backup

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repovault/repovault/pkg/models"
)

func resultFor(t *testing.T, results []OperationResult, entity string) OperationResult {
	t.Helper()
	for _, r := range results {
		if r.EntityType == entity {
			return r
		}
	}
	t.Fatalf("no result for entity type %q", entity)
	return OperationResult{}
}

func TestRunSaveSelectiveIssues(t *testing.T) {
	svc := &mockService{
		ListIssuesFunc: func(string) ([]models.Issue, error) {
			return testIssues(1, 2, 3, 4, 5, 6, 7, 8, 9, 10), nil
		},
	}
	store := newMockStorage()

	opts := DefaultOptions("octo/demo", "backup")
	opts.Issues = IncludeNumbers(5, 7)

	results, err := NewOrchestrator(svc, store).RunSave(context.Background(), opts)
	require.NoError(t, err)

	r := resultFor(t, results, EntityIssues)
	assert.True(t, r.Success)
	assert.Equal(t, 2, r.ItemsProcessed)

	saved, ok := store.files["backup/issues.json"].([]models.Issue)
	require.True(t, ok, "issues.json not written")
	require.Len(t, saved, 2)
	assert.Equal(t, 5, saved[0].Number)
	assert.Equal(t, 7, saved[1].Number)
}

func TestRunSaveCouplesCommentsToSelectedIssues(t *testing.T) {
	svc := &mockService{
		ListIssuesFunc: func(string) ([]models.Issue, error) {
			return testIssues(5, 6, 7), nil
		},
		ListIssueCommentsFunc: func(string) ([]models.Comment, error) {
			return []models.Comment{
				{ID: 1, IssueNumber: 5, IssueURL: "https://api.github.com/repos/octo/demo/issues/5"},
				{ID: 2, IssueNumber: 6, IssueURL: "https://api.github.com/repos/octo/demo/issues/6"},
				{ID: 3, IssueNumber: 7, IssueURL: "https://api.github.com/repos/octo/demo/issues/7"},
			}, nil
		},
	}
	store := newMockStorage()

	opts := DefaultOptions("octo/demo", "backup")
	opts.Issues = IncludeNumbers(5, 7)

	_, err := NewOrchestrator(svc, store).RunSave(context.Background(), opts)
	require.NoError(t, err)

	saved, ok := store.files["backup/comments.json"].([]models.Comment)
	require.True(t, ok, "comments.json not written")
	require.Len(t, saved, 2)
	assert.Equal(t, int64(1), saved[0].ID)
	assert.Equal(t, int64(3), saved[1].ID)
}

func TestRunSaveCascadingSkipOnCollectionFailure(t *testing.T) {
	svc := &mockService{
		ListMilestonesFunc: func(string) ([]models.Milestone, error) {
			return nil, errors.New("upstream unavailable")
		},
	}
	store := newMockStorage()

	results, err := NewOrchestrator(svc, store).RunSave(context.Background(), DefaultOptions("octo/demo", "backup"))
	require.NoError(t, err, "runtime failures are recorded, not returned")

	milestones := resultFor(t, results, EntityMilestones)
	assert.False(t, milestones.Success)
	assert.False(t, milestones.Skipped)
	assert.Contains(t, milestones.Error, "milestones")

	// Direct dependents are skipped, never executed.
	issues := resultFor(t, results, EntityIssues)
	assert.True(t, issues.Skipped)
	assert.Equal(t, "dependency failed", issues.SkipReason)

	// And the skip cascades to transitive dependents.
	comments := resultFor(t, results, EntityComments)
	assert.True(t, comments.Skipped)
	subIssues := resultFor(t, results, EntitySubIssues)
	assert.True(t, subIssues.Skipped)

	// Labels have no milestone dependency and still ran.
	labels := resultFor(t, results, EntityLabels)
	assert.True(t, labels.Success)
}

func TestRunSaveConfigurationErrorPropagates(t *testing.T) {
	opts := DefaultOptions("not-a-repo", "backup")
	_, err := NewOrchestrator(&mockService{}, newMockStorage()).RunSave(context.Background(), opts)

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}

func TestRunRestoreMissingFileIsNotAnError(t *testing.T) {
	store := newMockStorage()
	// Only labels were backed up; every other file is absent.
	store.files["backup/labels.json"] = []models.Label{{Name: "bug", Color: "ff0000"}}

	results, err := NewOrchestrator(&mockService{}, store).RunRestore(context.Background(), DefaultOptions("octo/demo", "backup"))
	require.NoError(t, err)

	reviews := resultFor(t, results, EntityPRReviews)
	assert.True(t, reviews.Success)
	assert.False(t, reviews.Skipped)
	assert.Equal(t, 0, reviews.ItemsProcessed)

	labels := resultFor(t, results, EntityLabels)
	assert.True(t, labels.Success)
	assert.Equal(t, 1, labels.ItemsProcessed)
}

func TestRunRestoreLabelConflictSkip(t *testing.T) {
	created := 0
	svc := &mockService{
		ListLabelsFunc: func(string) ([]models.Label, error) {
			return []models.Label{{Name: "bug", Color: "ff0000"}}, nil
		},
		CreateLabelFunc: func(label models.Label) (*models.Label, error) {
			created++
			return &label, nil
		},
	}
	store := newMockStorage()
	store.files["backup/labels.json"] = []models.Label{
		{Name: "bug", Color: "00ff00"},
		{Name: "feature", Color: "0000ff"},
	}

	opts := DefaultOptions("octo/demo", "backup")
	opts.Conflict = ConflictSkip

	results, err := NewOrchestrator(svc, store).RunRestore(context.Background(), opts)
	require.NoError(t, err)

	r := resultFor(t, results, EntityLabels)
	assert.True(t, r.Success)
	assert.Equal(t, 1, r.ItemsProcessed, "only the new label is created")
	assert.Equal(t, 1, r.ItemsSkipped, "the colliding label is skipped")
	assert.Equal(t, 1, created, "no duplicate label created")
}

func TestRunRestoreLabelConflictFailIfExisting(t *testing.T) {
	svc := &mockService{
		ListLabelsFunc: func(string) ([]models.Label, error) {
			return []models.Label{{Name: "bug", Color: "ff0000"}}, nil
		},
	}
	store := newMockStorage()
	store.files["backup/labels.json"] = []models.Label{{Name: "bug", Color: "ff0000"}}

	opts := DefaultOptions("octo/demo", "backup")
	opts.Conflict = ConflictFailIfExisting

	results, err := NewOrchestrator(svc, store).RunRestore(context.Background(), opts)
	require.NoError(t, err)

	r := resultFor(t, results, EntityLabels)
	assert.False(t, r.Success, "fail-if-existing aborts on any collision, even field-equal ones")
	assert.Contains(t, r.Error, "bug")
}

func TestRunRestoreLabelConflictOverwrite(t *testing.T) {
	var updated []models.Label
	svc := &mockService{
		ListLabelsFunc: func(string) ([]models.Label, error) {
			return []models.Label{{Name: "bug", Color: "ff0000"}}, nil
		},
		UpdateLabelFunc: func(name string, label models.Label) (*models.Label, error) {
			updated = append(updated, label)
			return &label, nil
		},
	}
	store := newMockStorage()
	store.files["backup/labels.json"] = []models.Label{{Name: "bug", Color: "00ff00"}}

	opts := DefaultOptions("octo/demo", "backup")
	opts.Conflict = ConflictOverwrite

	results, err := NewOrchestrator(svc, store).RunRestore(context.Background(), opts)
	require.NoError(t, err)

	r := resultFor(t, results, EntityLabels)
	assert.True(t, r.Success)
	require.Len(t, updated, 1)
	assert.Equal(t, "00ff00", updated[0].Color, "incoming field values win")
}

func TestRunRestoreRemapsParentReferences(t *testing.T) {
	var createdIssues []models.Issue
	var createdComments []models.Comment
	svc := &mockService{
		CreateMilestoneFunc: func(m models.Milestone) (*models.Milestone, error) {
			// The target repository assigns a different number.
			m.Number = 3
			return &m, nil
		},
		CreateIssueFunc: func(i models.Issue) (*models.Issue, error) {
			i.Number = 100 + len(createdIssues)
			createdIssues = append(createdIssues, i)
			return &i, nil
		},
		CreateCommentFunc: func(issueNumber int, body string) (*models.Comment, error) {
			c := models.Comment{IssueNumber: issueNumber, Body: body}
			createdComments = append(createdComments, c)
			return &c, nil
		},
	}
	store := newMockStorage()
	store.files["backup/milestones.json"] = []models.Milestone{{Number: 1, Title: "v1"}}
	store.files["backup/issues.json"] = []models.Issue{
		{Number: 10, Title: "a", MilestoneNumber: 1},
	}
	store.files["backup/comments.json"] = []models.Comment{
		{ID: 1, IssueNumber: 10, Body: "on a restored issue"},
		{ID: 2, IssueNumber: 99, Body: "on an issue that was never restored"},
	}

	results, err := NewOrchestrator(svc, store).RunRestore(context.Background(), DefaultOptions("octo/demo", "backup"))
	require.NoError(t, err)

	require.Len(t, createdIssues, 1)
	assert.Equal(t, 3, createdIssues[0].MilestoneNumber, "milestone reference resolved through the remapping table")

	r := resultFor(t, results, EntityComments)
	assert.Equal(t, 1, r.ItemsProcessed)
	assert.Equal(t, 1, r.ItemsSkipped, "comment with unresolved parent is skipped, not failed")
	require.Len(t, createdComments, 1)
	assert.Equal(t, 100, createdComments[0].IssueNumber, "comment created on the remapped issue number")
}

func TestRunRestorePartialItemFailureDoesNotAbortBatch(t *testing.T) {
	calls := 0
	svc := &mockService{
		CreateIssueFunc: func(i models.Issue) (*models.Issue, error) {
			calls++
			if i.Number == 2 {
				return nil, errors.New("validation failed")
			}
			return &i, nil
		},
	}
	store := newMockStorage()
	store.files["backup/issues.json"] = testIssues(1, 2, 3)

	results, err := NewOrchestrator(svc, store).RunRestore(context.Background(), DefaultOptions("octo/demo", "backup"))
	require.NoError(t, err)

	r := resultFor(t, results, EntityIssues)
	assert.True(t, r.Success, "per-item failures do not fail the strategy")
	assert.Equal(t, 2, r.ItemsProcessed)
	assert.Equal(t, 1, r.ItemsFailed)
	assert.Equal(t, 3, calls, "remaining items still attempted")

	// Per-item failures do not block dependents; comments still ran.
	assert.True(t, AnyFailed(results), "the run still reports failures for the exit code")
}

func TestRunSavePersistFailureBlocksDependents(t *testing.T) {
	svc := &mockService{
		ListIssuesFunc: func(string) ([]models.Issue, error) {
			return testIssues(1), nil
		},
	}
	store := newMockStorage()
	store.failSave = "issues.json"

	results, err := NewOrchestrator(svc, store).RunSave(context.Background(), DefaultOptions("octo/demo", "backup"))
	require.NoError(t, err)

	issues := resultFor(t, results, EntityIssues)
	assert.False(t, issues.Success)

	comments := resultFor(t, results, EntityComments)
	assert.True(t, comments.Skipped)
}
